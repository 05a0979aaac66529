// Package store provides session persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/ashureev/onboard-assistant/internal/domain"
)

// SessionStore keeps onboarding sessions for the lifetime of the process.
//
// Any string is a valid session id, including the empty string.
//
// Get and Put are independent operations: a caller that reads, mutates and
// writes back a session is not protected against a concurrent request for the
// same session id. The later Put wins.
type SessionStore interface {
	// Get retrieves a session by id. Returns nil with no error when unknown.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Put creates or replaces a session.
	Put(ctx context.Context, session *domain.Session) error

	// Ping verifies the store is usable.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
