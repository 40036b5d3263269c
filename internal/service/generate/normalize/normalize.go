// Package normalize turns raw model text into a JSON document.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how forgiving Output is.
type Mode string

const (
	// Strict parses the text as-is.
	Strict Mode = "strict"
	// Lenient additionally strips markdown fences and falls back to the first
	// balanced JSON object or array found in the text.
	Lenient Mode = "lenient"
)

// ParseMode maps a config value to a Mode, defaulting to Strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Strict:
		return Strict, nil
	case Lenient:
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown output mode %q", s)
	}
}

// Output returns the compacted JSON contained in text. On failure the error is
// the parser error of the unmodified text, whatever the mode.
func Output(text string, mode Mode) (json.RawMessage, error) {
	out, err := compact(text)
	if err == nil || mode != Lenient {
		return out, err
	}
	if unfenced, ok := stripFence(text); ok {
		if out, ferr := compact(unfenced); ferr == nil {
			return out, nil
		}
	}
	if candidate, ok := ExtractJSON(text); ok {
		if out, cerr := compact(candidate); cerr == nil {
			return out, nil
		}
	}
	return nil, err
}

func compact(text string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(text))); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

// stripFence removes a surrounding ``` or ```json fence.
func stripFence(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return "", false
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		// drop the info string ("json", "JSON", ...)
		t = t[nl+1:]
	}
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")
	return t, true
}

// ExtractJSON returns the first balanced {...} or [...] span in text,
// ignoring brackets inside string literals.
func ExtractJSON(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
