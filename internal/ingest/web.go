package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankRuns = regexp.MustCompile(`\n{2,}`)

// readHTML extracts the visible text of an HTML document, dropping
// script and style content.
func readHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var lines []string
	for _, raw := range strings.Split(root.Text(), "\n") {
		if line := strings.Join(strings.Fields(raw), " "); line != "" {
			lines = append(lines, line)
		}
	}

	text := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return pageHeader(1) + text + "\n", nil
}
