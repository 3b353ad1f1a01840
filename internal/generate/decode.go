package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// decodeModel turns a raw provider response into a validated model. Code
// fences are stripped first; if the remainder still fails to parse, the
// first balanced JSON object in the text is tried before giving up.
func decodeModel(raw string) (*content.Model, error) {
	text := stripCodeFences(raw)

	var m content.Model
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		repaired := firstJSONObject(text)
		if repaired == "" {
			return nil, fmt.Errorf("%w: no JSON object found: %v", ErrMalformedResponse, err)
		}
		if err2 := json.Unmarshal([]byte(repaired), &m); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err2)
		}
	}

	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &m, nil
}

// stripCodeFences removes a surrounding ```json ... ``` fence if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// firstJSONObject scans for the first balanced top-level object. Braces
// inside strings are skipped so content text cannot unbalance the scan.
func firstJSONObject(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if start != -1 {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
