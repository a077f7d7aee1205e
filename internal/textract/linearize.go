package textract

import (
	"regexp"
	"strings"
)

// LinearizeOptions controls which layout regions are suppressed when
// flattening analyzed pages into plain text.
type LinearizeOptions struct {
	HideHeaders     bool
	HideFooters     bool
	HidePageNumbers bool
}

var (
	specialSymbols = strings.NewReplacer("™", "", "®", "", "©", "")
	newlineRuns    = regexp.MustCompile(`\n+`)
)

// CleanTextSnippet strips trademark symbols and surrounding whitespace.
// When maxLength > 0 and the text is longer, it is truncated with an
// ellipsis suffix.
func CleanTextSnippet(text string, maxLength int) string {
	text = strings.TrimSpace(specialSymbols.Replace(text))
	if maxLength > 0 && len(text) > maxLength {
		text = text[:maxLength] + "..."
	}
	return text
}

// TightenNewlines collapses runs of blank lines into single line breaks
// and trims the result. Dense text costs fewer prompt tokens.
func TightenNewlines(text string) string {
	return strings.TrimSpace(newlineRuns.ReplaceAllString(text, "\n"))
}
