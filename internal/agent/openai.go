package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIModel is the chat model used for grounded answers.
const OpenAIModel = "gpt-3.5-turbo"

var errEmptyCompletion = errors.New("model returned no content")

// chatGenerator is the subset of an eino chat model the completer needs.
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// OpenAICompleter implements Completer with an eino OpenAI chat model.
type OpenAICompleter struct {
	chat chatGenerator
}

type openAIOptions struct {
	baseURL string
	timeout time.Duration
}

// OpenAIOption configures an OpenAICompleter.
type OpenAIOption func(*openAIOptions)

// WithBaseURL points the client at an OpenAI-compatible endpoint.
// Empty keeps the SDK default.
func WithBaseURL(url string) OpenAIOption {
	return func(o *openAIOptions) { o.baseURL = url }
}

// WithTimeout sets the HTTP timeout of the underlying client.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(o *openAIOptions) { o.timeout = d }
}

// NewOpenAICompleter creates a completer backed by the OpenAI chat API.
func NewOpenAICompleter(ctx context.Context, apiKey string, opts ...OpenAIOption) (*OpenAICompleter, error) {
	o := openAIOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: o.baseURL,
		Model:   OpenAIModel,
		Timeout: o.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}
	return &OpenAICompleter{chat: chatModel}, nil
}

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	msg, err := c.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if msg == nil || msg.Content == "" {
		return "", errEmptyCompletion
	}
	return msg.Content, nil
}

// Name implements Completer.
func (c *OpenAICompleter) Name() string { return "openai" }
