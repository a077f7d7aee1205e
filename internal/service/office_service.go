package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/ingest"
	"docsift/internal/port"
)

// OfficeService defines the office-document ingestion contract.
type OfficeService interface {
	Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error)
}

type officeService struct {
	storage port.ObjectStorage
	s3cfg   *config.S3Config
}

// NewOfficeService creates a new OfficeService implementation.
func NewOfficeService(storage port.ObjectStorage, s3cfg *config.S3Config) OfficeService {
	return &officeService{storage: storage, s3cfg: s3cfg}
}

// Ingest converts an office or web document into page-marked plain text
// under the processed prefix. Already-processed documents are returned
// from cache.
func (s *officeService) Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error) {
	if fileKey == "" {
		return nil, domain.ErrMissingStorageKey
	}
	if !ingest.IsSupported(fileKey) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileKey)
	}

	procKey := processedKey(fileKey)
	result := &domain.IngestionResult{
		FileKey:          procKey,
		OriginalFileName: fileKey,
	}

	if cached, err := s.storage.Download(ctx, s.s3cfg.Bucket, procKey); err == nil && len(cached) > 0 {
		log.Printf("officeService.Ingest: found processed text at %s, skipping conversion", procKey)
		result.Content = string(cached)
		return result, nil
	}

	data, err := s.storage.Download(ctx, s.s3cfg.Bucket, fileKey)
	if err != nil {
		return nil, fmt.Errorf("downloading document %s: %w", fileKey, err)
	}

	text, err := ingest.Read(fileKey, data)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         procKey,
		Body:        strings.NewReader(text),
		ContentType: "text/plain",
		Size:        int64(len(text)),
	}); err != nil {
		return nil, fmt.Errorf("persisting processed text to %s: %w", procKey, err)
	}
	log.Printf("officeService.Ingest: persisted processed text to %s", procKey)

	result.Content = text
	return result, nil
}
