package service

import (
	"fmt"
	"strings"

	"docsift/internal/domain"
)

// Artifact keys are derived from the uploaded object key. The leading
// prefix segment (e.g. "originals/") is dropped and only the remainder
// identifies the document across pipeline stages.

// documentName strips the leading prefix segment from an object key.
func documentName(fileKey string) string {
	if _, rest, ok := strings.Cut(fileKey, "/"); ok {
		return rest
	}
	return fileKey
}

// processedKey returns the cached plain-text key for a document.
func processedKey(fileKey string) string {
	name := documentName(fileKey)
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return fmt.Sprintf("%s/%s.txt", domain.PrefixProcessed, name)
}

// tablePrefix returns the key prefix under which a document's table CSVs
// are stored.
func tablePrefix(fileKey string) string {
	return strings.TrimSuffix(processedKey(fileKey), ".txt")
}

// attributesKey returns the key under which extraction results are
// persisted for a document.
func attributesKey(fileKey string) string {
	return fmt.Sprintf("%s/%s.json", domain.PrefixAttributes,
		strings.TrimSuffix(documentName(fileKey), ".txt"))
}

// transcriptKey returns the raw transcription-job output key; the plain
// transcript is stored next to it with a _plain suffix.
func transcriptKey(fileKey string) string {
	base := fileKey
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return fmt.Sprintf("%s/%s.txt", domain.PrefixTranscripts, base)
}

func plainTranscriptKey(fileKey string) string {
	return strings.TrimSuffix(transcriptKey(fileKey), ".txt") + "_plain.txt"
}
