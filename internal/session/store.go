// Package session persists per-session conversation history for the HTTP
// surface. The chat core never touches this: it receives the session
// wholesale on every turn.
package session

import (
	"context"
	"time"

	"github.com/bokji-cloud/genie/internal/domain"
)

// Store is the session persistence contract.
type Store interface {
	// Get returns a stored session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (domain.Session, error)
	// Put stores a session, refreshing its TTL.
	Put(ctx context.Context, s domain.Session) error
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
	Close()
}

// DefaultTTL keeps idle sessions for a day, matching how long a
// conversation realistically stays resumable.
const DefaultTTL = 24 * time.Hour
