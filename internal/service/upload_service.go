package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/port"
)

// UploadInput is the DTO for direct document upload requests.
type UploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// UploadResult describes a stored original document.
type UploadResult struct {
	FileKey     string `json:"file_key"`
	Bucket      string `json:"bucket"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// PresignResult carries a presigned upload URL for browser-direct uploads.
type PresignResult struct {
	URL     string `json:"url"`
	FileKey string `json:"file_key"`
	Expiry  int64  `json:"expiry_seconds"`
}

// UploadService defines the document intake contract.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*UploadResult, error)
	PresignUpload(ctx context.Context, fileName, contentType string) (*PresignResult, error)
	PresignDownload(ctx context.Context, fileKey string) (string, error)
}

type uploadService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(storage port.ObjectStorage, cfg *config.S3Config) UploadService {
	return &uploadService{storage: storage, cfg: cfg}
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	fileName := filepath.Base(input.Header.Filename)
	if fileName == "" || fileName == "." {
		return nil, domain.ErrMissingStorageKey
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Detect the content type from the leading bytes rather than trusting
	// the client-supplied header.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := fmt.Sprintf("%s/%s", domain.PrefixOriginals, fileName)
	log.Printf("uploadService.Upload: uploading %s (%s, %d bytes) to %s",
		fileName, contentType, input.Header.Size, key)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	}); err != nil {
		log.Printf("uploadService.Upload: upload failed for %s: %v", key, err)
		return nil, domain.ErrUploadFailed
	}

	return &UploadResult{
		FileKey:     key,
		Bucket:      s.cfg.Bucket,
		ContentType: contentType,
		Size:        input.Header.Size,
	}, nil
}

func (s *uploadService) PresignUpload(ctx context.Context, fileName, contentType string) (*PresignResult, error) {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." {
		return nil, domain.ErrMissingStorageKey
	}

	key := fmt.Sprintf("%s/%s", domain.PrefixOriginals, fileName)
	url, err := s.storage.GetPresignedPutURL(ctx, s.cfg.Bucket, key, contentType, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning upload for %s: %w", key, err)
	}

	return &PresignResult{
		URL:     url,
		FileKey: key,
		Expiry:  s.cfg.PresignExpiry,
	}, nil
}

func (s *uploadService) PresignDownload(ctx context.Context, fileKey string) (string, error) {
	if fileKey == "" {
		return "", domain.ErrMissingStorageKey
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, fileKey, s.cfg.PresignExpiry)
}
