package retrieval

import "github.com/bokji-cloud/genie/internal/domain"

// Catalog is the record-store contract the retrieval engine consumes.
type Catalog interface {
	Lookup(field, value string) []domain.Record
	LookupAll(filters map[string]string) []domain.Record
	Schema() domain.SchemaContext
}
