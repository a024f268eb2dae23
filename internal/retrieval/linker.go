// Package retrieval implements the multi-stage record retrieval pipeline:
// the fast-track entry-name loop, the planned category/audience filtering,
// and the unconditional crisis augmentation.
package retrieval

import (
	"strings"
	"unicode"
	"unicode/utf8"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// fuzzyThreshold is the minimum partial-ratio score (0-100) for the fuzzy
// pass to accept a candidate entry name.
const fuzzyThreshold = 80

// minExactRunes: names this short or shorter are ignored by the exact pass
// to avoid matching on generic two-character fragments.
const minExactRunes = 2

// stripSpace removes all whitespace from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// DetectEntryName finds a known catalog entry name inside free text.
// The exact pass walks entryNames in their given order and returns the
// first name (longer than minExactRunes once whitespace-stripped) that is a
// substring of the whitespace-stripped text; no longest-match tie-break.
// If nothing matches exactly, the fuzzy pass scores every name with a
// partial ratio and returns the best one when it reaches fuzzyThreshold.
func DetectEntryName(text string, entryNames []string) (string, bool) {
	if len(entryNames) == 0 {
		return "", false
	}
	normalized := stripSpace(text)

	for _, name := range entryNames {
		if name == "" {
			continue
		}
		stripped := stripSpace(name)
		if utf8.RuneCountInString(stripped) > minExactRunes && strings.Contains(normalized, stripped) {
			return name, true
		}
	}

	best, bestScore := "", -1
	for _, name := range entryNames {
		if name == "" {
			continue
		}
		if score := fuzzy.PartialRatio(normalized, stripSpace(name)); score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore >= fuzzyThreshold {
		return best, true
	}
	return "", false
}
