// Package chat routes inbound messages to onboarding or question answering.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ashureev/onboard-assistant/internal/domain"
	"github.com/ashureev/onboard-assistant/internal/onboarding"
	"github.com/ashureev/onboard-assistant/internal/retrieval"
	"github.com/ashureev/onboard-assistant/internal/store"
)

// NoMatchReply is returned when no knowledge record matches a question.
const NoMatchReply = "I'm sorry, I couldn't find information about that on our website."

// Generator turns retrieved context into an answer. It must not fail.
type Generator interface {
	Generate(ctx context.Context, contextText, query string) string
}

// Router orchestrates one chat exchange.
type Router struct {
	sessions store.SessionStore
	machine  *onboarding.Machine
	answers  Generator
	records  []domain.KnowledgeRecord
	logger   *slog.Logger
}

// NewRouter creates a Router over a read-only set of knowledge records.
func NewRouter(sessions store.SessionStore, machine *onboarding.Machine, answers Generator, records []domain.KnowledgeRecord, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		sessions: sessions,
		machine:  machine,
		answers:  answers,
		records:  records,
		logger:   logger,
	}
}

// Handle processes message for sessionID. Errors come only from the session store.
func (r *Router) Handle(ctx context.Context, sessionID, message string) (domain.ChatResponse, error) {
	msg := strings.TrimSpace(message)

	session, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.ChatResponse{}, fmt.Errorf("load session: %w", err)
	}

	if session == nil {
		session = domain.NewSession(sessionID)
		greeting, _ := r.machine.Advance(session, "")
		if err := r.sessions.Put(ctx, session); err != nil {
			return domain.ChatResponse{}, fmt.Errorf("save session: %w", err)
		}
		r.logger.Info("Session started", "session_id", sessionID)
		return domain.ChatResponse{Response: greeting, State: session.Step}, nil
	}

	current := session.Step

	// Onboarding answers take priority unless the user asked a question.
	if !current.IsCompleted() && !isQuestion(msg) {
		if reply, ok := r.machine.Advance(session, msg); ok {
			if err := r.sessions.Put(ctx, session); err != nil {
				return domain.ChatResponse{}, fmt.Errorf("save session: %w", err)
			}
			if session.Step != current {
				r.logger.Info("Onboarding advanced", "session_id", sessionID, "from", current, "to", session.Step)
			}
			return domain.ChatResponse{Response: reply, State: session.Step}, nil
		}
	}

	answer := r.answer(ctx, msg)
	if !current.IsCompleted() {
		answer += nudge(current)
	}

	return domain.ChatResponse{Response: answer, State: current}, nil
}

func (r *Router) answer(ctx context.Context, msg string) string {
	contextText, ok := retrieval.Retrieve(msg, r.records)
	if !ok {
		return NoMatchReply
	}
	return r.answers.Generate(ctx, contextText, msg)
}

func isQuestion(msg string) bool {
	return strings.Contains(msg, "?")
}

func nudge(step domain.Step) string {
	return fmt.Sprintf("\n\n(By the way, I still need your %s to finish your setup!)", step.MissingField())
}
