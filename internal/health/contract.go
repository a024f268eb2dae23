package health

import "context"

// CatalogCounter reports how many records the catalog holds.
type CatalogCounter interface {
	Len() int
}

// SessionPinger checks session store availability.
type SessionPinger interface {
	Ping(ctx context.Context) error
}

// LLMChecker checks chat-model provider availability.
type LLMChecker interface {
	HealthCheck(ctx context.Context) error
}
