// Package catalog holds the read-only, in-memory welfare record store.
// Records are loaded once at process start from a JSONL file and never
// mutated afterwards.
package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bokji-cloud/genie/internal/domain"
)

// maxLineBytes bounds a single JSONL line; record bodies carry whole
// serialized guidebook sections.
const maxLineBytes = 4 * 1024 * 1024

// Store is the in-memory catalog.
type Store struct {
	records []domain.Record
	schema  domain.SchemaContext
}

// New builds a store over the given records and computes the schema context.
func New(records []domain.Record) *Store {
	return &Store{
		records: records,
		schema:  domain.BuildSchemaContext(records),
	}
}

// Load reads a JSONL catalog file: one JSON-encoded record per line,
// blank lines ignored.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var records []domain.Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var r domain.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("parse catalog line %d: %w", line, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrCatalogNotLoaded)
	}

	return New(records), nil
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns all records in load order. Callers must not mutate the
// returned slice.
func (s *Store) Records() []domain.Record { return s.records }

// Schema returns the precomputed schema context.
func (s *Store) Schema() domain.SchemaContext { return s.schema }

// Lookup returns all records whose field value starts with the given value,
// preserving load order. A record with the field empty never matches.
func (s *Store) Lookup(field, value string) []domain.Record {
	return s.LookupAll(map[string]string{field: value})
}

// LookupAll returns records matching every filter pair under Lookup's
// prefix semantics.
func (s *Store) LookupAll(filters map[string]string) []domain.Record {
	var matched []domain.Record
	for _, r := range s.records {
		if matchesAll(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matchesAll(r domain.Record, filters map[string]string) bool {
	for field, value := range filters {
		v, ok := r.Field(field)
		if !ok || v == "" || !strings.HasPrefix(v, value) {
			return false
		}
	}
	return true
}
