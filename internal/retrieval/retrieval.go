// Package retrieval finds the knowledge record that best matches a question.
package retrieval

import (
	"strings"

	"github.com/ashureev/onboard-assistant/internal/domain"
)

const (
	// MinScore is the lowest overlap score treated as a match.
	MinScore = 1
	// MaxContextChars caps the context handed to the answer generator.
	MaxContextChars = 1000
)

// Retrieve scores each record by how many distinct query words appear as
// substrings of its lowercased content. The first record with the highest
// score wins. It returns false when no record reaches MinScore.
func Retrieve(query string, records []domain.KnowledgeRecord) (string, bool) {
	words := tokenize(query)

	bestScore := 0
	bestContent := ""
	for _, rec := range records {
		score := overlap(words, strings.ToLower(rec.Content))
		if score > bestScore {
			bestScore = score
			bestContent = rec.Content
		}
	}

	if bestScore < MinScore {
		return "", false
	}
	return Truncate(bestContent, MaxContextChars), true
}

func tokenize(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

func overlap(words map[string]struct{}, content string) int {
	score := 0
	for w := range words {
		if strings.Contains(content, w) {
			score++
		}
	}
	return score
}

// Truncate returns the first n characters of s. It counts runes, not bytes,
// and does not respect word boundaries.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
