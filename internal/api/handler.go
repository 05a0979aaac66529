// Package api provides HTTP handlers for the onboarding assistant.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashureev/onboard-assistant/internal/domain"
	"github.com/ashureev/onboard-assistant/internal/store"
	"github.com/go-chi/chi/v5"
)

// defaultMaxRequestBodySize is the default maximum allowed request body size (1MB).
const defaultMaxRequestBodySize = 1 << 20

// Chatter processes one chat exchange.
type Chatter interface {
	Handle(ctx context.Context, sessionID, message string) (domain.ChatResponse, error)
}

// Handler serves the chat and debug endpoints.
type Handler struct {
	chat        Chatter
	sessions    store.SessionStore
	maxBodySize int64
}

// NewHandler creates a new Handler. maxBodySize <= 0 selects the 1MB default.
func NewHandler(chat Chatter, sessions store.SessionStore, maxBodySize int64) *Handler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxRequestBodySize
	}
	return &Handler{
		chat:        chat,
		sessions:    sessions,
		maxBodySize: maxBodySize,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.Chat)
	r.Get("/debug/{session_id}", h.Debug)
	r.Get("/ws/chat", h.ChatSocket)
}

// Chat handles a single chat message.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusBadRequest, "request body too large")
			return
		}
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, status, msg := h.exchange(r.Context(), req)
	if status != http.StatusOK {
		Error(w, status, msg)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// exchange runs req through the chat router. Any session_id, including an
// empty one, names a session.
func (h *Handler) exchange(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, int, string) {
	resp, err := h.chat.Handle(ctx, req.SessionID, req.Message)
	if err != nil {
		slog.Error("Chat failed", "error", err, "session_id", req.SessionID)
		return domain.ChatResponse{}, http.StatusInternalServerError, "failed to process message"
	}
	return resp, http.StatusOK, ""
}

// Debug returns the raw session state, or an empty object for unknown sessions.
func (h *Handler) Debug(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	session, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		slog.Error("Failed to load session", "error", err, "session_id", sessionID)
		Error(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if session == nil {
		JSON(w, http.StatusOK, struct{}{})
		return
	}
	JSON(w, http.StatusOK, session)
}
