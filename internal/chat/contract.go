package chat

import (
	"context"

	"github.com/bokji-cloud/genie/internal/domain"
)

// Catalog is the record-store contract the orchestrator consumes directly
// (fallback lookup and planner schema context).
type Catalog interface {
	LookupAll(filters map[string]string) []domain.Record
	Schema() domain.SchemaContext
}

// Retriever executes the retrieval phases of one turn.
type Retriever interface {
	FastTrack(query string) (batch []domain.Record, remaining string)
	ExecutePlan(plan domain.SearchPlan) []domain.Record
	Crisis() []domain.Record
}

// Planner obtains a search plan for the remaining query text. It recovers
// all failures internally by returning the degenerate plan.
type Planner interface {
	Plan(ctx context.Context, question, schemaContext, history string) domain.SearchPlan
}

// Synthesizer turns assembled context into final prose.
type Synthesizer interface {
	Write(ctx context.Context, kind domain.TemplateKind, question, contextStr, history string) (string, error)
}
