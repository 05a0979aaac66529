package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashureev/onboard-assistant/internal/store"
	"github.com/go-chi/chi/v5"
)

const defaultHealthCheckTimeout = 5 * time.Second

// HealthInfo describes the static parts of the health report.
type HealthInfo struct {
	KnowledgeRecords int
	LLMMode          string
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	sessions store.SessionStore
	info     HealthInfo
	timeout  time.Duration
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(sessions store.SessionStore, info HealthInfo) *HealthHandler {
	return &HealthHandler{sessions: sessions, info: info, timeout: defaultHealthCheckTimeout}
}

// Health returns the health status of the API and its dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	checks := map[string]interface{}{
		"api":               "ok",
		"knowledge_records": h.info.KnowledgeRecords,
		"llm_mode":          h.info.LLMMode,
	}
	status := map[string]interface{}{
		"status": "healthy",
		"checks": checks,
	}
	statusCode := http.StatusOK

	if err := h.sessions.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		status["status"] = "degraded"
		checks["sessions"] = "unreachable"
		statusCode = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = "ok"
	}

	JSON(w, statusCode, status)
}

// RegisterHealth registers the health check route.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}
