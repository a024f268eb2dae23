package chat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record bodies frequently hold a serialized JSON object. For rendering,
// the object is parsed with a token-level decoder so key order follows the
// document, keeping the rendered context byte-deterministic.

type member struct {
	key   string
	value any
}

// parseOrdered decodes a JSON document into order-preserving values:
// objects become []member, arrays []any, scalars string/json.Number/bool/nil.
func parseOrdered(data string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		var obj []member
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			key, _ := keyTok.(string)
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: key, value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read object end: %w", err)
		}
		return obj, nil
	case '[':
		var arr []any
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read array end: %w", err)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// formatContent renders a parsed body as nested bullet lines. Object
// members with non-blank string values become one bullet each; nested
// objects and arrays indent one level; non-string scalars inside objects
// are dropped. Array items render at the same level, blank items skipped.
func formatContent(v any, indentLevel int) string {
	indent := strings.Repeat("  ", indentLevel)
	var parts []string

	switch t := v.(type) {
	case []member:
		for _, m := range t {
			switch val := m.value.(type) {
			case string:
				if s := strings.TrimSpace(val); s != "" {
					parts = append(parts, indent+"- **"+m.key+"**: "+s)
				}
			case []member, []any:
				if sub := formatContent(val, indentLevel+1); sub != "" {
					parts = append(parts, indent+"- **"+m.key+"**:")
					parts = append(parts, sub)
				}
			}
		}
	case []any:
		for _, item := range t {
			if isBlank(item) {
				continue
			}
			if s := formatContent(item, indentLevel); s != "" {
				parts = append(parts, s)
			}
		}
	default:
		if s := strings.TrimSpace(stringify(t)); s != "" {
			parts = append(parts, indent+"- "+s)
		}
	}

	return strings.Join(parts, "\n")
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	}
	return false
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
