package domain

import (
	"sort"
	"strings"
)

// SchemaContext is the derived catalog structure handed to the planner LLM:
// the major/minor category hierarchy rendered as text, plus the sorted set
// of distinct entry names. Computed once at startup, immutable afterwards.
type SchemaContext struct {
	ContextString string
	EntryNames    []string
}

// BuildSchemaContext derives the schema context from all records.
// Major categories keep first-seen order; minor categories within each
// major category are sorted alphabetically.
func BuildSchemaContext(records []Record) SchemaContext {
	nameSet := make(map[string]struct{})
	majorOrder := make([]string, 0, 16)
	hierarchy := make(map[string]map[string]struct{})

	for _, r := range records {
		if r.EntryName != "" {
			nameSet[r.EntryName] = struct{}{}
		}
		if r.MajorCategory == "" || r.MinorCategory == "" {
			continue
		}
		minors, ok := hierarchy[r.MajorCategory]
		if !ok {
			minors = make(map[string]struct{})
			hierarchy[r.MajorCategory] = minors
			majorOrder = append(majorOrder, r.MajorCategory)
		}
		minors[r.MinorCategory] = struct{}{}
	}

	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := []string{"# [전체 카테고리 목록]"}
	for _, major := range majorOrder {
		parts = append(parts, "## "+major)
		minors := make([]string, 0, len(hierarchy[major]))
		for m := range hierarchy[major] {
			minors = append(minors, m)
		}
		sort.Strings(minors)
		for _, m := range minors {
			parts = append(parts, "- "+m)
		}
		parts = append(parts, "")
	}

	return SchemaContext{
		ContextString: strings.Join(parts, "\n"),
		EntryNames:    names,
	}
}
