package domain

// KnowledgeRecord is one scraped page.
type KnowledgeRecord struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
