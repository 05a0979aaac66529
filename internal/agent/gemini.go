package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel is the Gemini model used for grounded answers.
const GeminiModel = "gemini-2.0-flash"

// GeminiCompleter implements Completer with the Google Gen AI SDK.
type GeminiCompleter struct {
	client *genai.Client
}

// NewGeminiCompleter creates a completer backed by the Gemini API.
func NewGeminiCompleter(ctx context.Context, apiKey string) (*GeminiCompleter, error) {
	return newGeminiCompleter(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newGeminiCompleter(ctx context.Context, cc *genai.ClientConfig) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiCompleter{client: client}, nil
}

// Complete implements Completer.
func (c *GeminiCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, GeminiModel, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

// Name implements Completer.
func (c *GeminiCompleter) Name() string { return "gemini" }
