// Package agent produces grounded answers from retrieved context.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ashureev/onboard-assistant/internal/retrieval"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 5 * time.Second

// ModeOffline is reported by Mode when no completer is configured.
const ModeOffline = "offline"

const (
	offlinePrefix     = "I'm in offline mode. Based on my internal data: "
	offlineChars      = 300
	unavailablePrefix = "(Network unavailable) Here is what I found in my records: "
	unavailableChars  = 400
)

// ErrLLMUnavailable marks any failed model call. Generate logs it and falls back.
var ErrLLMUnavailable = errors.New("llm unavailable")

// ServiceConfig holds answer generation settings.
type ServiceConfig struct {
	BrandName string
	Timeout   time.Duration
}

// Service answers questions from retrieved context. It never fails: without a
// completer, or when the completer errors, it answers from the context itself.
type Service struct {
	completer Completer
	brand     string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewService creates an answer service. A nil completer means offline mode.
func NewService(completer Completer, cfg ServiceConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		completer: completer,
		brand:     cfg.BrandName,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

// Mode reports the provider answering questions, or "offline".
func (s *Service) Mode() string {
	if s.completer == nil {
		return ModeOffline
	}
	return s.completer.Name()
}

// Generate answers query using only contextText.
func (s *Service) Generate(ctx context.Context, contextText, query string) string {
	if s.completer == nil {
		return offlinePrefix + retrieval.Truncate(contextText, offlineChars) + "..."
	}

	answer, err := s.complete(ctx, contextText, query)
	if err != nil {
		s.logger.Warn("LLM call failed, answering from records", "provider", s.completer.Name(), "error", err)
		return unavailablePrefix + retrieval.Truncate(contextText, unavailableChars) + "..."
	}
	return answer
}

func (s *Service) complete(ctx context.Context, contextText, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.completer.Complete(ctx, SystemPrompt(s.brand), UserPrompt(contextText, query))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLMUnavailable, err)
	}
	return answer, nil
}
