// Package textract adapts document-analysis output into linearized text
// and logical tables. Analysis emits one table fragment per page; tables
// that span page breaks arrive as separate fragments and are merged back
// together using title and column-signature continuity.
package textract

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"docsift/internal/port"
)

// LogicalTable is the reconciled accumulation of table fragments sharing
// a title and column signature across consecutive pages.
type LogicalTable struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// ReconcileTables merges per-page table fragments into logical tables.
// Fragments must arrive in document order; reordering changes the result
// and is disallowed by the contract. Pages supply each page's running
// title and header so that table titles merely repeating them are
// discarded as accidental duplicates.
//
// A fragment continues the previous logical table when its title matches
// (or is an auto-generated placeholder) and its column signature matches:
// identical named columns, or default positional columns at the same
// cardinality. Merged fragments adopt the first fragment's column names.
func ReconcileTables(fragments []port.TableFragment, pages []port.AnalyzedPage) []*LogicalTable {
	var tables []*LogicalTable
	seen := map[string]int{}
	var last *LogicalTable

	for i, frag := range fragments {
		placeholder := fmt.Sprintf("table_%d", i+1)

		title := strings.TrimSpace(frag.Title)
		if title != "" && repeatsPageChrome(title, frag.Page, pages) {
			log.Printf("textract.ReconcileTables: title %q repeats the page header, using %s", title, placeholder)
			title = placeholder
		}
		if title == "" {
			title = placeholder
		}

		columns := frag.Columns
		if len(columns) == 0 {
			columns = defaultColumns(columnCount(frag))
		}

		continues := last != nil &&
			(title == last.Title || title == placeholder) &&
			len(columns) == len(last.Columns) &&
			(equalColumns(columns, last.Columns) || isDefaultColumns(columns))

		if continues {
			// Later fragments' headers are discarded once matched; the
			// merged table keeps the first fragment's column names.
			last.Rows = append(last.Rows, frag.Rows...)
			continue
		}

		name := title
		if n, dup := seen[title]; dup {
			name = fmt.Sprintf("%s_%d", title, n+1)
		}
		seen[title]++

		last = &LogicalTable{Title: name, Columns: columns, Rows: frag.Rows}
		tables = append(tables, last)
	}
	return tables
}

// repeatsPageChrome reports whether a candidate table title occurs inside
// the running title or header of its page.
func repeatsPageChrome(title string, pageNum int, pages []port.AnalyzedPage) bool {
	for _, p := range pages {
		if p.Number != pageNum {
			continue
		}
		return strings.Contains(p.Title, title) || strings.Contains(p.Header, title)
	}
	return false
}

func columnCount(frag port.TableFragment) int {
	if len(frag.Columns) > 0 {
		return len(frag.Columns)
	}
	max := 0
	for _, row := range frag.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func defaultColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = strconv.Itoa(i)
	}
	return cols
}

func isDefaultColumns(cols []string) bool {
	for i, c := range cols {
		if c != strconv.Itoa(i) {
			return false
		}
	}
	return len(cols) > 0
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
