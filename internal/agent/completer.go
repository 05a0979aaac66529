package agent

import (
	"context"
	"fmt"

	"github.com/ashureev/onboard-assistant/internal/config"
)

// Completer sends one grounded prompt to a language model.
// Implemented by the OpenAI and Gemini clients; tests substitute fakes.
type Completer interface {
	// Complete returns the model's reply to userPrompt under systemPrompt.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name identifies the provider, e.g. "openai".
	Name() string
}

// Ensure the provider clients implement Completer.
var (
	_ Completer = (*OpenAICompleter)(nil)
	_ Completer = (*GeminiCompleter)(nil)
)

// NewCompleter builds the completer for the configured provider.
// It returns nil with no error when the provider has no API key, which puts
// the Service into offline mode.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if cfg.APIKey() == "" {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := NewGeminiCompleter(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI, "":
		c, err := NewOpenAICompleter(ctx, cfg.OpenAIAPIKey, WithBaseURL(cfg.OpenAIBaseURL), WithTimeout(cfg.Timeout))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
