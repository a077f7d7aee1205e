// Package prompt assembles model prompts from template families:
// named-attribute extraction (text and page-image variants) and claim
// summarization. Templates are data, not code; swapping task only changes
// which header and tail text is selected.
package prompt

import (
	"fmt"
	"strings"

	"docsift/internal/domain"
)

// Template is a parameterized prompt with named placeholders. The declared
// InputVariables are the exact set of values a caller must supply to
// Render; templates are built once per request and never mutated.
type Template struct {
	Text           string
	InputVariables []string
}

// Render substitutes every declared placeholder and unescapes doubled
// braces used for literal JSON in the template text. A declared
// placeholder with no supplied value fails with ErrMissingPlaceholder.
func (t *Template) Render(values map[string]string) (string, error) {
	out := t.Text
	for _, name := range t.InputVariables {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrMissingPlaceholder, name)
		}
		out = strings.ReplaceAll(out, "{"+name+"}", v)
	}
	out = strings.ReplaceAll(out, "{{", "{")
	out = strings.ReplaceAll(out, "}}", "}")
	return out, nil
}

// FewShotInputVar returns the placeholder name for the i-th example input.
func FewShotInputVar(i int) string { return fmt.Sprintf("few_shot_input_%d", i) }

// FewShotOutputVar returns the placeholder name for the i-th example output.
func FewShotOutputVar(i int) string { return fmt.Sprintf("few_shot_output_%d", i) }

// FragmentVar returns the placeholder name for the i-th summary fragment.
func FragmentVar(i int) string { return fmt.Sprintf("fragment_%d", i) }

// FormatAttributes renders an ordered attribute list into the numbered
// form the extraction templates embed between <attributes> tags.
func FormatAttributes(attrs []domain.AttributeSpec) string {
	var b strings.Builder
	for i, a := range attrs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s: %s", i+1, a.Name, a.Description)
	}
	return b.String()
}

// FewShotValues maps ordered examples onto their per-shot placeholder
// names. Ordering is preserved and directly controls prompt ordering.
func FewShotValues(shots []domain.FewShotExample) map[string]string {
	values := make(map[string]string, 2*len(shots))
	for i, shot := range shots {
		values[FewShotInputVar(i)] = shot.Input
		values[FewShotOutputVar(i)] = shot.Output
	}
	return values
}
