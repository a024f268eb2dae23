package retrieval

import (
	"regexp"
	"strings"
)

// ReduceQuery removes the first occurrence of a detected entry name from
// text, tolerating arbitrary whitespace between the name's characters.
// Returns the reduced text and true, or the original text and false when
// the name is not literally present (a fuzzy-only detection): the caller
// must then stop the fast-track loop.
func ReduceQuery(text, name string) (string, bool) {
	stripped := stripSpace(name)
	if stripped == "" {
		return text, false
	}

	var pattern strings.Builder
	pattern.WriteString("(?i)")
	for _, ch := range stripped {
		pattern.WriteString(regexp.QuoteMeta(string(ch)))
		pattern.WriteString(`\s*`)
	}

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return text, false
	}

	loc := re.FindStringIndex(text)
	if loc == nil {
		return text, false
	}

	reduced := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	if reduced == text {
		return text, false
	}
	return reduced, true
}
