// Package llmjson extracts structured values from free-form LLM text
// output. Models nominally wrap JSON in <json></json> tags but routinely
// omit delimiters, emit Python-literal quoting, leave trailing commas, or
// separate key/value runs with blank lines; this package repairs those
// defects before evaluation. It is the single shared parsing component for
// every call site that needs JSON out of a model response.
package llmjson

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	openTag  = "<json>"
	closeTag = "</json>"
)

var blankLines = regexp.MustCompile(`\n\n+`)

// Parse extracts a structured value (object, array, string, number or
// bool) from a raw model response. The delimiter span is evaluated as-is
// first; each repair is applied only when the previous candidate fails, so
// well-formed output is never damaged by a repair meant for broken output.
// The returned error is a repair failure, not a programming error; callers
// that must never abort degrade it to an empty mapping via ParseOrEmpty.
func Parse(raw string) (any, error) {
	span := extractSpan(raw)

	v, err := evalLiteral(span)
	if err == nil {
		return v, nil
	}

	// Blank-line separated key/value runs become comma separated, and
	// truncated output gets its brackets completed.
	text := blankLines.ReplaceAllString(span, ",")
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		text = "{" + text
	}
	if !strings.HasSuffix(text, "}") && !strings.HasSuffix(text, "]") {
		text = text + "}"
	}
	if v, err = evalLiteral(text); err == nil {
		return v, nil
	}

	// Doubled braces come from upstream template escaping.
	text = strings.ReplaceAll(text, "}}", "}")
	text = strings.ReplaceAll(text, "{{", "{")
	return evalLiteral(text)
}

// ParseAttributes parses a raw model response and requires the result to
// be a mapping, which is how attribute extraction output is keyed.
func ParseAttributes(raw string) (map[string]any, error) {
	v, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsed value is %T, not a mapping", v)
	}
	return m, nil
}

// ParseOrEmpty implements the degrade-to-empty contract: any repair
// failure yields an empty mapping and is reported on the returned flag,
// never as an error.
func ParseOrEmpty(raw string) (map[string]any, bool) {
	m, err := ParseAttributes(raw)
	if err != nil {
		return map[string]any{}, false
	}
	return m, true
}

// extractSpan returns the inner span of the <json></json> delimiter pair
// when present, otherwise the whole trimmed text. An unterminated open tag
// keeps everything after it.
func extractSpan(raw string) string {
	text := raw
	if i := strings.Index(text, openTag); i >= 0 {
		text = text[i+len(openTag):]
		if j := strings.LastIndex(text, closeTag); j >= 0 {
			text = text[:j]
		}
	}
	return strings.TrimSpace(text)
}
