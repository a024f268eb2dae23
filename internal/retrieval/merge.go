package retrieval

import "github.com/bokji-cloud/genie/internal/domain"

// MergeDeduplicate unions two ordered record sequences, preserving
// first-seen order and dropping records whose (body, entry name) pair was
// already seen. The chat pipeline aggregates by plain concatenation and
// does not call this; it is kept as a reusable utility.
func MergeDeduplicate(a, b []domain.Record) []domain.Record {
	type key struct {
		body      string
		entryName string
	}
	seen := make(map[key]struct{}, len(a)+len(b))
	merged := make([]domain.Record, 0, len(a)+len(b))

	for _, r := range append(append([]domain.Record{}, a...), b...) {
		k := key{body: r.Body, entryName: r.EntryName}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}
