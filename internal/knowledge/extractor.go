// Package knowledge scrapes, persists and loads the assistant's knowledge base.
package knowledge

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ashureev/onboard-assistant/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultURL is the page scraped when no URL is given.
	DefaultURL = "https://www.occamsadvisory.com/"
	// DefaultFetchTimeout bounds a single page fetch.
	DefaultFetchTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (compatible; OnboardAssistant/1.0)"
)

// Extractor turns a single web page into a KnowledgeRecord.
type Extractor struct {
	client *resty.Client
}

// NewExtractor creates an extractor whose fetches are bounded by timeout.
func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	return &Extractor{client: client}
}

// Extract fetches url and returns its title and paragraph text.
func (e *Extractor) Extract(ctx context.Context, url string) (domain.KnowledgeRecord, error) {
	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return domain.KnowledgeRecord{}, &FetchError{URL: url, Err: err}
	}
	if resp.IsError() {
		return domain.KnowledgeRecord{}, &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return domain.KnowledgeRecord{}, &ParseError{URL: url, Reason: "invalid HTML", Err: err}
	}
	return recordFromDocument(url, doc)
}

func recordFromDocument(url string, doc *goquery.Document) (domain.KnowledgeRecord, error) {
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return domain.KnowledgeRecord{}, &ParseError{URL: url, Reason: "no title element"}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := Normalize(strings.Join(textNodes(s, nil), " ")); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return domain.KnowledgeRecord{
		URL:     url,
		Title:   Normalize(title.Text()),
		Content: Normalize(strings.Join(paragraphs, " ")),
	}, nil
}

// textNodes appends the trimmed, non-empty text nodes under s in document order.
func textNodes(s *goquery.Selection, out []string) []string {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			if text := strings.TrimSpace(child.Text()); text != "" {
				out = append(out, text)
			}
		case "#comment", "script", "style":
		default:
			out = textNodes(child, out)
		}
	})
	return out
}

// Normalize collapses every whitespace run to a single space and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
