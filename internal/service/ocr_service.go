package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/port"
	"docsift/internal/textract"
)

// OCRService defines the scanned-document ingestion contract.
type OCRService interface {
	Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error)
}

type ocrService struct {
	analyzer port.DocumentAnalyzer
	storage  port.ObjectStorage
	s3cfg    *config.S3Config
	cfg      *config.TextractConfig
}

// NewOCRService creates a new OCRService implementation.
func NewOCRService(
	analyzer port.DocumentAnalyzer,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	cfg *config.TextractConfig,
) OCRService {
	return &ocrService{
		analyzer: analyzer,
		storage:  storage,
		s3cfg:    s3cfg,
		cfg:      cfg,
	}
}

// Ingest linearizes a scanned document into processed plain text plus one
// CSV per reconciled table. Re-ingesting a document is a cache hit: the
// processed text and existing CSVs are returned without re-analysis.
func (s *ocrService) Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error) {
	if fileKey == "" {
		return nil, domain.ErrMissingStorageKey
	}

	procKey := processedKey(fileKey)
	result := &domain.IngestionResult{
		FileKey:          procKey,
		OriginalFileName: fileKey,
	}

	if cached, err := s.storage.Download(ctx, s.s3cfg.Bucket, procKey); err == nil && len(cached) > 0 {
		log.Printf("ocrService.Ingest: found processed text at %s, skipping analysis", procKey)
		result.Content = textract.CleanTextSnippet(string(cached), 0)
		if s.cfg.UseTables {
			result.CSVTables = s.listTables(ctx, fileKey)
		}
		return result, nil
	}

	// Plain text uploads skip analysis and are copied straight into the
	// processed prefix.
	if strings.HasSuffix(strings.ToLower(fileKey), ".txt") {
		data, err := s.storage.Download(ctx, s.s3cfg.Bucket, fileKey)
		if err != nil {
			return nil, fmt.Errorf("downloading text document %s: %w", fileKey, err)
		}
		result.Content = textract.CleanTextSnippet(string(data), 0)
		if err := s.persistText(ctx, procKey, result.Content); err != nil {
			return nil, err
		}
		return result, nil
	}

	doc, err := s.analyzer.AnalyzeDocument(ctx, s.s3cfg.Bucket, fileKey, s.cfg.UseTables)
	if err != nil {
		return nil, fmt.Errorf("analyzing document %s: %w", fileKey, err)
	}

	var sb strings.Builder
	for _, page := range doc.Pages {
		for _, line := range page.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	result.Content = textract.TightenNewlines(sb.String())
	if err := s.persistText(ctx, procKey, result.Content); err != nil {
		return nil, err
	}

	for _, table := range textract.ReconcileTables(doc.Tables, doc.Pages) {
		data, err := textract.EncodeCSV(table)
		if err != nil {
			return nil, fmt.Errorf("encoding table %s: %w", table.Title, err)
		}
		key := fmt.Sprintf("%s/%s.csv", tablePrefix(fileKey), textract.SanitizeTitle(table.Title))
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3cfg.Bucket,
			Key:         key,
			Body:        bytes.NewReader(data),
			ContentType: "text/csv",
			Size:        int64(len(data)),
		}); err != nil {
			return nil, fmt.Errorf("persisting table to %s: %w", key, err)
		}
		log.Printf("ocrService.Ingest: persisted table %q to %s", table.Title, key)
		result.CSVTables = append(result.CSVTables, key)
	}

	return result, nil
}

func (s *ocrService) persistText(ctx context.Context, key, content string) error {
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        strings.NewReader(content),
		ContentType: "text/plain",
		Size:        int64(len(content)),
	}); err != nil {
		return fmt.Errorf("persisting processed text to %s: %w", key, err)
	}
	log.Printf("ocrService.Ingest: persisted processed text to %s", key)
	return nil
}

func (s *ocrService) listTables(ctx context.Context, fileKey string) []string {
	prefix := tablePrefix(fileKey) + "/"
	keys, err := s.storage.List(ctx, s.s3cfg.Bucket, prefix)
	if err != nil {
		log.Printf("ocrService.Ingest: listing tables under %s failed: %v", prefix, err)
		return nil
	}

	var tables []string
	for _, key := range keys {
		if strings.HasSuffix(key, ".csv") {
			tables = append(tables, key)
		}
	}
	return tables
}
