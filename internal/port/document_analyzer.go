package port

import "context"

// AnalyzedPage is the layout-level output of document analysis for one
// page: linearized lines plus the page's running title and header text,
// used to suppress table titles that merely repeat them.
type AnalyzedPage struct {
	Number int
	Lines  []string
	Title  string
	Header string
}

// TableFragment is a single page-table as emitted by document analysis.
type TableFragment struct {
	Title   string
	Columns []string
	Rows    [][]string
	Page    int
}

// AnalyzedDocument is the full analysis result the OCR ingestion stage
// consumes: pages in order and table fragments in document order.
type AnalyzedDocument struct {
	Pages  []AnalyzedPage
	Tables []TableFragment
}

// DocumentAnalyzer abstracts the OCR/layout analysis service.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, bucket, key string, withTables bool) (*AnalyzedDocument, error)
}
