package llm

import (
	"encoding/json"
	"strings"
)

// ParseResult is the outcome of normalizing a raw model response. Callers
// must branch on OK and supply a domain fallback when parsing failed; the
// normalizer itself never panics and never discards the raw text.
type ParseResult struct {
	OK     bool
	Fields map[string]interface{}
	Raw    string
	Reason string
}

func parseFailure(raw, reason string) ParseResult {
	return ParseResult{OK: false, Raw: raw, Reason: reason}
}

// ParseStructured converts a free-form model response into a validated JSON
// object. The steps are ordered to match the failure modes the rest of the
// pipeline depends on:
//
//  1. strip a surrounding code fence (and a bare "json" language tag)
//  2. direct parse when the remainder is a brace-delimited object
//  3. otherwise scan the ORIGINAL raw text for the first balanced object,
//     tracking quoted-string and escape state
//
// requiredKeys varies per call site; a parse that succeeds but misses a
// required key is a failure, not a partial success.
func ParseStructured(raw string, requiredKeys []string) ParseResult {
	if strings.TrimSpace(raw) == "" {
		return parseFailure(raw, "empty response")
	}

	text := strings.TrimSpace(raw)
	text = stripCodeFence(text)

	direct := strings.TrimSpace(text)
	if strings.HasPrefix(direct, "{") && strings.HasSuffix(direct, "}") {
		if fields, ok := tryParseObject(direct, requiredKeys); ok {
			return ParseResult{OK: true, Fields: fields, Raw: raw}
		}
	}

	candidate := extractBalancedObject(raw)
	if candidate != "" {
		if fields, ok := tryParseObject(candidate, requiredKeys); ok {
			return ParseResult{OK: true, Fields: fields, Raw: raw}
		}
	}

	return parseFailure(raw, "no parseable JSON object with required keys")
}

func tryParseObject(s string, requiredKeys []string) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, false
	}
	for _, key := range requiredKeys {
		if _, present := fields[key]; !present {
			return nil, false
		}
	}
	return fields, true
}

// stripCodeFence removes a leading/trailing triple-backtick fence. Some
// models emit the language tag on its own line inside the fence; that line
// is dropped as well.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], "```") {
		lines = lines[:len(lines)-1]
	}

	text = strings.TrimSpace(strings.Join(lines, "\n"))
	if strings.HasPrefix(strings.ToLower(text), "json") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = ""
		}
	}
	return text
}

// extractBalancedObject returns the first brace-balanced span in s, or ""
// when no balanced object exists. A quote toggles string state; a backslash
// inside a string escapes the next character and must not toggle it.
func extractBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
