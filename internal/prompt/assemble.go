package prompt

import (
	"fmt"
	"strings"

	"docsift/internal/domain"
)

// Build composes a prompt template for the given family: header, repeated
// few-shot blocks, tail, and an optional instructions block. When
// instructions are blank the instructions marker is removed entirely. The
// returned template declares exactly the placeholder names the caller must
// supply.
func Build(kind domain.PromptKind, numFewShots int, instructions string) (*Template, error) {
	var header, fewShot, tail string
	switch kind {
	case domain.PromptKindExtraction:
		header, fewShot, tail = extractionHeader, extractionFewShot, extractionTail
	case domain.PromptKindMultimodal:
		header, fewShot, tail = multimodalHeader, multimodalFewShot, multimodalTail
	default:
		return nil, fmt.Errorf("unknown prompt kind %q", kind)
	}

	vars := []string{"attributes"}
	if kind == domain.PromptKindExtraction {
		vars = append(vars, "document")
	}

	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < numFewShots; i++ {
		fmt.Fprintf(&b, fewShot, FewShotInputVar(i), FewShotOutputVar(i))
		vars = append(vars, FewShotInputVar(i), FewShotOutputVar(i))
	}
	b.WriteString(tail)

	text := b.String()
	if strings.TrimSpace(instructions) != "" {
		text = strings.ReplaceAll(text, instructionsMarker, instructionsBlock)
		vars = append(vars, "instructions")
	} else {
		text = strings.ReplaceAll(text, "\n"+instructionsMarker+"\n", "\n")
	}

	return &Template{Text: text, InputVariables: vars}, nil
}

// BuildSummary composes the claim-summary template over numFragments
// per-document attribute JSON fragments.
func BuildSummary(numFragments int) *Template {
	var b strings.Builder
	b.WriteString(summaryHeader)

	vars := make([]string, 0, numFragments)
	for i := 0; i < numFragments; i++ {
		fmt.Fprintf(&b, summaryFragment, FragmentVar(i))
		vars = append(vars, FragmentVar(i))
	}
	b.WriteString(summaryTail)

	return &Template{Text: b.String(), InputVariables: vars}
}
