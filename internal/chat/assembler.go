package chat

import (
	"sort"
	"strings"

	"github.com/bokji-cloud/genie/internal/domain"
)

// Rendered-block labels.
const (
	labelOverview      = "**개요**: "
	labelTargetGroup   = "**지원 대상**: "
	labelSupportDetail = "**지원 내용**: "
	labelBodyDetail    = "**세부 정보**:\n"
	labelBodyRaw       = "**내용**: "
	labelMethod        = "**신청 방법**: "
	contactKey         = "문의처"
)

// AssembleContext turns the final record batch into the context string for
// the answer synthesizer. Records are grouped by entry name in first-seen
// order; entries whose name contains a navigational marker are structural
// and dropped. Within a group, byte-identical blocks collapse and the rest
// sort lexicographically, so the output is deterministic regardless of how
// many phases retrieved the same record.
func AssembleContext(records []domain.Record, navigationMarkers []string) string {
	type group struct {
		name   string
		blocks map[string]struct{}
	}
	var order []*group
	byName := make(map[string]*group)

	for _, r := range records {
		if r.EntryName == "" || containsAny(r.EntryName, navigationMarkers) {
			continue
		}
		g, ok := byName[r.EntryName]
		if !ok {
			g = &group{name: r.EntryName, blocks: make(map[string]struct{})}
			byName[r.EntryName] = g
			order = append(order, g)
		}
		if block := renderRecord(r); block != "" {
			g.blocks[block] = struct{}{}
		}
	}

	sections := make([]string, 0, len(order))
	for _, g := range order {
		blocks := make([]string, 0, len(g.blocks))
		for b := range g.blocks {
			blocks = append(blocks, b)
		}
		sort.Strings(blocks)
		sections = append(sections,
			"### 서비스명: "+g.name+"\n"+strings.Join(blocks, "\n\n")+"\n")
	}
	return strings.Join(sections, "\n---\n")
}

// renderRecord builds one content block from a record's present fields.
// The two alternate support-detail keys render under one label; when both
// are set, the 지원내용 value overwrites the 내용 value (last write wins).
func renderRecord(r domain.Record) string {
	var parts []string

	if r.Overview != "" {
		parts = append(parts, labelOverview+r.Overview)
	}
	if r.TargetGroup != "" {
		parts = append(parts, labelTargetGroup+r.TargetGroup)
	}

	supportIdx := -1
	if r.Detail != "" {
		parts = append(parts, labelSupportDetail+r.Detail)
		supportIdx = len(parts) - 1
	}
	if r.SupportDetail != "" {
		if supportIdx >= 0 {
			parts[supportIdx] = labelSupportDetail + r.SupportDetail
		} else {
			parts = append(parts, labelSupportDetail+r.SupportDetail)
		}
	}

	if r.Body != "" {
		if parsed, err := parseOrdered(r.Body); err == nil {
			if formatted := formatContent(parsed, 0); formatted != "" {
				parts = append(parts, labelBodyDetail+formatted)
			}
		} else {
			parts = append(parts, labelBodyRaw+r.Body)
		}
	}

	if r.ApplicationMethod != "" {
		parts = append(parts, labelMethod+r.ApplicationMethod)
	}
	if r.Contact != "" {
		contact := formatContent([]member{{key: contactKey, value: r.Contact}}, 0)
		if contact != "" {
			parts = append(parts, contact)
		}
	}

	return strings.Join(parts, "\n")
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}
