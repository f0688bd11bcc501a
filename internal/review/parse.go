package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// OutputExtractionError means no JSON object could be found in the model
// output. Raw is the text exactly as received.
type OutputExtractionError struct {
	Raw string
}

func (e *OutputExtractionError) Error() string {
	return "no JSON object found in model output"
}

// wrapMarkers are stripped from either end of the text, longest first.
var wrapMarkers = []string{"```json", "```JSON", "```", `"""`}

var firstObject = regexp.MustCompile(`\{[\s\S]*?\}`)

// Extract locates the JSON object in raw model text. It tries, in order:
// the whole trimmed text, the text with wrapping markers removed, the first
// non-greedy {...} match, the first balanced {...} span, and finally a
// repaired version of the outermost {...} span. Only objects are accepted.
func Extract(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)

	if obj, ok := decodeObject(text); ok {
		return obj, nil
	}
	if obj, ok := decodeObject(stripMarkers(text)); ok {
		return obj, nil
	}
	if m := firstObject.FindString(text); m != "" {
		if obj, ok := decodeObject(m); ok {
			return obj, nil
		}
	}
	for _, span := range balancedObjects(text) {
		if obj, ok := decodeObject(span); ok {
			return obj, nil
		}
	}
	if obj, ok := repairObject(text); ok {
		return obj, nil
	}
	return nil, &OutputExtractionError{Raw: raw}
}

func stripMarkers(s string) string {
	for _, m := range wrapMarkers {
		if rest, ok := strings.CutPrefix(s, m); ok {
			s = rest
			break
		}
	}
	for _, m := range wrapMarkers {
		if rest, ok := strings.CutSuffix(s, m); ok {
			s = rest
			break
		}
	}
	return strings.TrimSpace(s)
}

// decodeObject parses s as exactly one JSON object, keeping numbers as
// json.Number.
func decodeObject(s string) (map[string]any, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return obj, true
}

// balancedObjects returns each top-level {...} span whose braces balance,
// ignoring braces inside JSON strings.
func balancedObjects(s string) []string {
	var spans []string
	for start := strings.IndexByte(s, '{'); start >= 0; {
		end := matchBrace(s, start)
		if end < 0 {
			break
		}
		spans = append(spans, s[start:end+1])
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return spans
}

func matchBrace(s string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// repairObject runs jsonrepair over the outermost {...} span. It only fires
// when the text has an opening brace followed later by a closing one.
func repairObject(text string) (map[string]any, bool) {
	start, end := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	fixed, err := jsonrepair.JSONRepair(text[start : end+1])
	if err != nil {
		return nil, false
	}
	return decodeObject(strings.TrimSpace(fixed))
}

// canonical rewrites integral json.Number values as int64 so that decoding
// into int fields accepts "85.0".
func canonical(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = canonical(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = canonical(e)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f)
		}
		return t
	}
	return v
}

// decodeInto converts a validated object into out.
func decodeInto(obj map[string]any, out any) error {
	data, err := json.Marshal(canonical(obj))
	if err != nil {
		return fmt.Errorf("re-encoding model output: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding model output: %w", err)
	}
	return nil
}
