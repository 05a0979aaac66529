package agent

import "fmt"

// SystemPrompt restricts the model to the supplied context.
func SystemPrompt(brand string) string {
	if brand == "" {
		brand = "our company"
	}
	return fmt.Sprintf("You are an assistant for %s. "+
		"Answer the question strictly based on the provided context. "+
		"If the answer is not in the context, say 'I don't have that information'. "+
		"Be concise. "+
		"Answer in 3 to 4 lines.", brand)
}

// UserPrompt pairs the retrieved context with the user's question.
func UserPrompt(contextText, query string) string {
	return "Context: " + contextText + "\n\nQuestion: " + query
}
