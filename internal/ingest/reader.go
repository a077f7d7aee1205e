// Package ingest converts office and web documents into plain text with
// page markers, ready for prompt assembly. Each supported extension maps
// to a reader; unknown extensions are rejected up front so callers can
// route scanned formats to OCR instead.
package ingest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"docsift/internal/domain"
)

// ReadFunc converts one document's raw bytes into linearized text.
type ReadFunc func(data []byte) (string, error)

var readers = map[string]ReadFunc{
	".txt":  readPlain,
	".md":   readPlain,
	".html": readHTML,
	".htm":  readHTML,
	".xlsx": readWorkbook,
	".docx": readWordDocument,
	".pptx": readPresentation,
}

// SupportedExtensions returns the registered extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(readers))
	for ext := range readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether a file name has a registered reader.
func IsSupported(fileName string) bool {
	_, ok := readers[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// Read dispatches on the file extension and returns page-marked text.
func Read(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	read, ok := readers[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}

	text, err := read(data)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", fileName, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyDocument
	}
	return text, nil
}

func readPlain(data []byte) (string, error) {
	return pageHeader(1) + strings.TrimSpace(string(data)) + "\n", nil
}

func pageHeader(n int) string {
	return fmt.Sprintf("[page %d]\n", n)
}
