package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/port"
	"docsift/internal/service"
	"docsift/mocks"
)

func testTextractConfig() config.TextractConfig {
	return config.TextractConfig{
		Region:    "us-east-1",
		UseTables: true,
	}
}

func newOCRService(analyzer *mocks.MockDocumentAnalyzer, storage *mocks.MockObjectStorage) service.OCRService {
	s3cfg := testS3Config()
	cfg := testTextractConfig()
	return service.NewOCRService(analyzer, storage, &s3cfg, &cfg)
}

func TestOCRService_Ingest_AnalyzesAndPersists(t *testing.T) {
	analyzer := new(mocks.MockDocumentAnalyzer)
	storage := new(mocks.MockObjectStorage)
	svc := newOCRService(analyzer, storage)

	// no cached processed text
	storage.On("Download", mock.Anything, "test-bucket", "processed/scan.txt").
		Return(nil, errors.New("NoSuchKey"))

	analyzer.On("AnalyzeDocument", mock.Anything, "test-bucket", "originals/scan.pdf", true).
		Return(&port.AnalyzedDocument{
			Pages: []port.AnalyzedPage{
				{Number: 1, Lines: []string{"Accident Report", "", "Date: 2024-03-01"}},
				{Number: 2, Lines: []string{"Signed by the adjuster"}},
			},
			Tables: []port.TableFragment{
				{Title: "Damages", Columns: []string{"Item", "Amount"}, Rows: [][]string{{"Bumper", "450"}}, Page: 1},
			},
		}, nil)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Key == "processed/scan.txt" && in.ContentType == "text/plain"
	})).Return(&port.UploadOutput{}, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Key == "processed/scan/Damages.csv" && in.ContentType == "text/csv"
	})).Return(&port.UploadOutput{}, nil)

	result, err := svc.Ingest(context.Background(), "originals/scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, "processed/scan.txt", result.FileKey)
	assert.Equal(t, "originals/scan.pdf", result.OriginalFileName)
	assert.Equal(t, "Accident Report\nDate: 2024-03-01\nSigned by the adjuster", result.Content)
	assert.Equal(t, []string{"processed/scan/Damages.csv"}, result.CSVTables)

	analyzer.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestOCRService_Ingest_CacheHit(t *testing.T) {
	analyzer := new(mocks.MockDocumentAnalyzer)
	storage := new(mocks.MockObjectStorage)
	svc := newOCRService(analyzer, storage)

	storage.On("Download", mock.Anything, "test-bucket", "processed/scan.txt").
		Return([]byte("cached text"), nil)
	storage.On("List", mock.Anything, "test-bucket", "processed/scan/").
		Return([]string{"processed/scan/Damages.csv", "processed/scan/notes.json"}, nil)

	result, err := svc.Ingest(context.Background(), "originals/scan.pdf")

	require.NoError(t, err)
	assert.Equal(t, "cached text", result.Content)
	assert.Equal(t, []string{"processed/scan/Damages.csv"}, result.CSVTables)
	analyzer.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOCRService_Ingest_TextPassthrough(t *testing.T) {
	analyzer := new(mocks.MockDocumentAnalyzer)
	storage := new(mocks.MockObjectStorage)
	svc := newOCRService(analyzer, storage)

	storage.On("Download", mock.Anything, "test-bucket", "processed/notes.txt").
		Return(nil, errors.New("NoSuchKey"))
	storage.On("Download", mock.Anything, "test-bucket", "originals/notes.txt").
		Return([]byte("plain notes ™"), nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Key == "processed/notes.txt"
	})).Return(&port.UploadOutput{}, nil)

	result, err := svc.Ingest(context.Background(), "originals/notes.txt")

	require.NoError(t, err)
	assert.Equal(t, "plain notes", result.Content)
	assert.Empty(t, result.CSVTables)
	analyzer.AssertNotCalled(t, "AnalyzeDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOCRService_Ingest_MissingKey(t *testing.T) {
	svc := newOCRService(new(mocks.MockDocumentAnalyzer), new(mocks.MockObjectStorage))

	_, err := svc.Ingest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingStorageKey)
}

func TestOCRService_Ingest_AnalyzerError(t *testing.T) {
	analyzer := new(mocks.MockDocumentAnalyzer)
	storage := new(mocks.MockObjectStorage)
	svc := newOCRService(analyzer, storage)

	storage.On("Download", mock.Anything, "test-bucket", "processed/scan.txt").
		Return(nil, errors.New("NoSuchKey"))
	analyzer.On("AnalyzeDocument", mock.Anything, "test-bucket", "originals/scan.pdf", true).
		Return(nil, errors.New("job failed"))

	_, err := svc.Ingest(context.Background(), "originals/scan.pdf")
	assert.ErrorContains(t, err, "job failed")
}
