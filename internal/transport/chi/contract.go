package chi

import (
	"context"

	"github.com/bokji-cloud/genie/internal/domain"
	"github.com/bokji-cloud/genie/internal/health"
	"github.com/bokji-cloud/genie/internal/keyword"
)

// ChatService runs one conversation turn.
type ChatService interface {
	Respond(ctx context.Context, session domain.Session) (domain.Answer, error)
}

// SessionStore persists conversation state between turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Put(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, id string) error
}

// SchemaProvider exposes the catalog's category schema.
type SchemaProvider interface {
	Schema() domain.SchemaContext
}

// KeywordSearcher runs full-text search over the catalog.
type KeywordSearcher interface {
	Search(queryText, minorCategory string, limit int) ([]keyword.Result, error)
}

// HealthService runs component health checks.
type HealthService interface {
	Check(ctx context.Context) health.Report
}
