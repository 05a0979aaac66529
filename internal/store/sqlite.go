package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ashureev/onboard-assistant/internal/domain"
	"github.com/ashureev/onboard-assistant/internal/shared"
	_ "modernc.org/sqlite"
)

// memoryDSN opens a private in-memory database. Sessions never outlive the process.
const memoryDSN = ":memory:"

// SQLiteStore implements SessionStore using an in-memory SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed session store.
func NewSQLite() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so keep exactly one alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		step TEXT NOT NULL,
		data_json TEXT NOT NULL,
		history_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get retrieves a session by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT session_id, step, data_json, history_json FROM sessions WHERE session_id = ?`

	var session domain.Session
	var step, dataJSON, historyJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &step, &dataJSON, &historyJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	session.Step = domain.Step(step)
	if err := json.Unmarshal([]byte(dataJSON), &session.Data); err != nil {
		return nil, fmt.Errorf("decode session data: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &session.History); err != nil {
		return nil, fmt.Errorf("decode session history: %w", err)
	}
	if session.Data == nil {
		session.Data = make(map[string]string)
	}
	if session.History == nil {
		session.History = []string{}
	}

	return &session, nil
}

// Put creates or replaces a session.
func (s *SQLiteStore) Put(ctx context.Context, session *domain.Session) error {
	dataJSON, err := json.Marshal(session.Data)
	if err != nil {
		return fmt.Errorf("encode session data: %w", err)
	}
	history := session.History
	if history == nil {
		history = []string{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode session history: %w", err)
	}

	query := `
	INSERT INTO sessions (session_id, step, data_json, history_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		step = excluded.step,
		data_json = excluded.data_json,
		history_json = excluded.history_json,
		updated_at = excluded.updated_at`

	now := time.Now().Unix()
	err = shared.RetryOnConflict(ctx, shared.DefaultRetry, func() error {
		_, execErr := s.db.ExecContext(ctx, query,
			session.ID, string(session.Step), string(dataJSON), string(historyJSON), now, now)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Len returns the number of stored sessions.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database connection. All sessions are discarded.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
