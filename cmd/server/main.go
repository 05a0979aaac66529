// Onboarding Assistant Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/onboard-assistant/internal/agent"
	"github.com/ashureev/onboard-assistant/internal/api"
	"github.com/ashureev/onboard-assistant/internal/chat"
	"github.com/ashureev/onboard-assistant/internal/config"
	"github.com/ashureev/onboard-assistant/internal/knowledge"
	"github.com/ashureev/onboard-assistant/internal/middleware"
	"github.com/ashureev/onboard-assistant/internal/onboarding"
	"github.com/ashureev/onboard-assistant/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "session_store", cfg.SessionStore, "llm_provider", cfg.LLM.Provider)

	// Knowledge base.
	kb, err := knowledge.Load(cfg.KnowledgePath)
	switch {
	case errors.Is(err, knowledge.ErrNotFound):
		slog.Warn("Knowledge base not found, questions will go unanswered", "path", cfg.KnowledgePath)
	case err != nil:
		slog.Error("Failed to load knowledge base", "error", err, "path", cfg.KnowledgePath)
		os.Exit(1)
	default:
		slog.Info("Knowledge base loaded", "path", cfg.KnowledgePath, "records", kb.Len())
	}

	// Session store.
	sessions, err := openSessionStore(cfg.SessionStore)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()

	if err := sessions.Ping(context.Background()); err != nil {
		slog.Error("Session store health check failed", "error", err)
		os.Exit(1)
	}

	// Answer generator. Any provider problem degrades to offline mode.
	completer, err := agent.NewCompleter(context.Background(), cfg.LLM)
	if err != nil {
		slog.Warn("Failed to initialize LLM client, running in offline mode", "provider", cfg.LLM.Provider, "error", err)
		completer = nil
	}
	answers := agent.NewService(completer, agent.ServiceConfig{
		BrandName: cfg.BrandName,
		Timeout:   cfg.LLM.Timeout,
	}, logger)
	slog.Info("Answer generator ready", "mode", answers.Mode())

	router := chat.NewRouter(sessions, onboarding.NewMachine(cfg.BrandName), answers, kb.Records(), logger)

	// Initialize handlers.
	chatHandler := api.NewHandler(router, sessions, cfg.MaxRequestBodySize)
	healthHandler := api.NewHealthHandler(sessions, api.HealthInfo{
		KnowledgeRecords: kb.Len(),
		LLMMode:          answers.Mode(),
	})

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	healthHandler.RegisterHealth(r)
	chatHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // WebSocket connections are long-lived
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func openSessionStore(backend string) (store.SessionStore, error) {
	if backend == config.SessionStoreSQLite {
		s, err := store.NewSQLite()
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return store.NewMemory(), nil
}
