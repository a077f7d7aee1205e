package textract

import (
	"bytes"
	"encoding/csv"
	"regexp"
	"strings"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeCSV renders a logical table as CSV, header row first. The output
// starts with a BOM so spreadsheet tools pick up UTF-8.
func EncodeCSV(table *LogicalTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		padded := row
		if len(row) < len(table.Columns) {
			padded = make([]string, len(table.Columns))
			copy(padded, row)
		}
		if err := w.Write(padded); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeTitle cleans a table title for use as an object key segment.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeTitle(title string) string {
	s := nonAlphanumeric.ReplaceAllString(title, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
