// Package keyword provides a full-text index over catalog records for the
// advanced search endpoint. It is a separate capability and is not on the
// chat retrieval path.
package keyword

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/bokji-cloud/genie/internal/domain"
)

const indexBatchSize = 100

// Index is an in-memory bleve index over the loaded records.
type Index struct {
	idx     bleve.Index
	records []domain.Record
}

// Result is one keyword hit.
type Result struct {
	Record domain.Record
	Score  float64
}

// NewIndex builds a mem-only index over the records. Document IDs are the
// record's position in the catalog.
func NewIndex(records []domain.Record) (*Index, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for i, r := range records {
		doc := map[string]string{
			"body":         r.Body,
			"entry_name":   r.EntryName,
			"overview":     r.Overview,
			"target_group": r.TargetGroup,
			"detail":       r.Detail,
		}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index record %d: %w", i, err)
		}
		if batch.Size() >= indexBatchSize {
			if err := idx.Batch(batch); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("flush batch: %w", err)
			}
			batch = idx.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("flush final batch: %w", err)
		}
	}

	return &Index{idx: idx, records: records}, nil
}

// Search runs a match query, optionally restricted to records whose minor
// category starts with minorCategory (the catalog's prefix semantics).
func (x *Index) Search(queryText, minorCategory string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	match := bleve.NewMatchQuery(queryText)
	req := bleve.NewSearchRequest(match)

	if minorCategory != "" {
		ids := x.idsByMinorCategory(minorCategory)
		if len(ids) == 0 {
			return nil, nil
		}
		req = bleve.NewSearchRequest(
			bleve.NewConjunctionQuery(match, bleve.NewDocIDQuery(ids)),
		)
	}
	req.Size = limit

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(x.records) {
			continue
		}
		results = append(results, Result{Record: x.records[i], Score: hit.Score})
	}
	return results, nil
}

func (x *Index) idsByMinorCategory(category string) []string {
	var ids []string
	for i, r := range x.records {
		if r.MinorCategory != "" && strings.HasPrefix(r.MinorCategory, category) {
			ids = append(ids, strconv.Itoa(i))
		}
	}
	return ids
}

// Close releases the index.
func (x *Index) Close() error {
	if err := x.idx.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	return nil
}
