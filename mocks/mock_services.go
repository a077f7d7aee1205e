package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsift/internal/domain"
	"docsift/internal/service"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) Extract(ctx context.Context, input service.ExtractInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockExtractService) ExtractImage(ctx context.Context, input service.ExtractInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockExtractService) Summarize(ctx context.Context, input service.SummarizeInput) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

// MockOCRService is a mock implementation of service.OCRService.
type MockOCRService struct {
	mock.Mock
}

func (m *MockOCRService) Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionResult), args.Error(1)
}

// MockOfficeService is a mock implementation of service.OfficeService.
type MockOfficeService struct {
	mock.Mock
}

func (m *MockOfficeService) Ingest(ctx context.Context, fileKey string) (*domain.IngestionResult, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionResult), args.Error(1)
}

// MockTranscriptionService is a mock implementation of service.TranscriptionService.
type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) Ingest(ctx context.Context, fileKey string) (*domain.TranscriptionResult, error) {
	args := m.Called(ctx, fileKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranscriptionResult), args.Error(1)
}

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, input service.UploadInput) (*service.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockUploadService) PresignUpload(ctx context.Context, fileName, contentType string) (*service.PresignResult, error) {
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PresignResult), args.Error(1)
}

func (m *MockUploadService) PresignDownload(ctx context.Context, fileKey string) (string, error) {
	args := m.Called(ctx, fileKey)
	return args.String(0), args.Error(1)
}
