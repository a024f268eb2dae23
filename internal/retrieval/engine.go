package retrieval

import (
	"strings"

	"go.uber.org/zap"

	"github.com/bokji-cloud/genie/internal/domain"
)

// Engine executes the retrieval phases against the catalog.
type Engine struct {
	catalog        Catalog
	crisisCategory string
	logger         *zap.Logger
}

// NewEngine creates a retrieval engine. crisisCategory is the major
// category whose records are appended to every run.
func NewEngine(catalog Catalog, crisisCategory string, logger *zap.Logger) *Engine {
	return &Engine{catalog: catalog, crisisCategory: crisisCategory, logger: logger}
}

// FastTrack runs the detect/reduce loop over the query. Every detected
// entry name yields one exact lookup accumulated into the batch, even when
// the subsequent reduction fails; a failed reduction ends the loop with the
// pre-removal text intact.
func (e *Engine) FastTrack(query string) (batch []domain.Record, remaining string) {
	remaining = strings.TrimSpace(query)
	names := e.catalog.Schema().EntryNames

	for remaining != "" {
		name, ok := DetectEntryName(remaining, names)
		if !ok {
			break
		}
		e.logger.Debug("fast track detected entry name", zap.String("entry_name", name))

		if found := e.catalog.Lookup(domain.FieldEntryName, name); len(found) > 0 {
			batch = append(batch, found...)
		}

		reduced, changed := ReduceQuery(remaining, name)
		if !changed {
			e.logger.Debug("fast track reduction failed, stopping",
				zap.String("entry_name", name))
			break
		}
		remaining = reduced
	}
	return batch, remaining
}

// ExecutePlan runs the plan's steps in list order and accumulates the
// surviving records. Per step: records matching any minor-category filter
// (prefix match), then the audience filter over base conditions. Steps
// without category filters contribute nothing; there is no deduplication
// across steps.
func (e *Engine) ExecutePlan(plan domain.SearchPlan) []domain.Record {
	var batch []domain.Record

	for _, step := range plan.Steps {
		if len(step.MinorCategoryFilters) == 0 {
			e.logger.Debug("plan step has no minor-category filters, skipping",
				zap.Int("priority", step.Priority))
			continue
		}

		var categoryRecords []domain.Record
		for _, category := range step.MinorCategoryFilters {
			categoryRecords = append(categoryRecords,
				e.catalog.Lookup(domain.FieldMinorCategory, category)...)
		}
		if len(categoryRecords) == 0 {
			e.logger.Debug("no records for minor categories",
				zap.Strings("categories", step.MinorCategoryFilters))
			continue
		}

		survivors := filterByAudience(categoryRecords, step.BaseCondition)
		e.logger.Debug("plan step executed",
			zap.Int("priority", step.Priority),
			zap.String("reason", step.Reason),
			zap.Int("category_records", len(categoryRecords)),
			zap.Int("survivors", len(survivors)))

		batch = append(batch, survivors...)
	}
	return batch
}

// filterByAudience keeps records whose whitespace-stripped target group
// contains at least one whitespace-stripped base-condition token. An empty
// condition list passes everything through.
func filterByAudience(records []domain.Record, baseConditions []string) []domain.Record {
	if len(baseConditions) == 0 {
		return records
	}
	var kept []domain.Record
	for _, r := range records {
		target := stripSpace(r.TargetGroup)
		for _, bc := range baseConditions {
			if strings.Contains(target, stripSpace(bc)) {
				kept = append(kept, r)
				break
			}
		}
	}
	return kept
}

// Crisis returns every record of the crisis-support chapter. It runs for
// every request regardless of query content or plan outcome.
func (e *Engine) Crisis() []domain.Record {
	return e.catalog.Lookup(domain.FieldMajorCategory, e.crisisCategory)
}

// Aggregate concatenates the three phase batches in fixed order. No
// cross-phase deduplication: a record reachable by two phases appears
// twice, and the context assembler's per-group set semantics absorb it.
func Aggregate(fastTrack, planned, crisis []domain.Record) []domain.Record {
	final := make([]domain.Record, 0, len(fastTrack)+len(planned)+len(crisis))
	final = append(final, fastTrack...)
	final = append(final, planned...)
	final = append(final, crisis...)
	return final
}
