package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docsift/internal/domain"
	"docsift/internal/port"
	"docsift/internal/service"
	"docsift/mocks"
)

func newOfficeService(storage *mocks.MockObjectStorage) service.OfficeService {
	s3cfg := testS3Config()
	return service.NewOfficeService(storage, &s3cfg)
}

func TestOfficeService_Ingest_ConvertsAndPersists(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := newOfficeService(storage)

	storage.On("Download", mock.Anything, "test-bucket", "processed/memo.txt").
		Return(nil, errors.New("NoSuchKey"))
	storage.On("Download", mock.Anything, "test-bucket", "originals/memo.md").
		Return([]byte("# Incident memo\n\nThe vehicle was towed."), nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Key == "processed/memo.txt" && in.ContentType == "text/plain"
	})).Return(&port.UploadOutput{}, nil)

	result, err := svc.Ingest(context.Background(), "originals/memo.md")

	require.NoError(t, err)
	assert.Equal(t, "processed/memo.txt", result.FileKey)
	assert.Equal(t, "originals/memo.md", result.OriginalFileName)
	assert.Equal(t, "[page 1]\n# Incident memo\n\nThe vehicle was towed.\n", result.Content)
	storage.AssertExpectations(t)
}

func TestOfficeService_Ingest_CacheHit(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := newOfficeService(storage)

	storage.On("Download", mock.Anything, "test-bucket", "processed/memo.txt").
		Return([]byte("[page 1]\ncached"), nil)

	result, err := svc.Ingest(context.Background(), "originals/memo.md")

	require.NoError(t, err)
	assert.Equal(t, "[page 1]\ncached", result.Content)
	storage.AssertNumberOfCalls(t, "Download", 1)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestOfficeService_Ingest_UnsupportedType(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := newOfficeService(storage)

	_, err := svc.Ingest(context.Background(), "originals/scan.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestOfficeService_Ingest_MissingKey(t *testing.T) {
	svc := newOfficeService(new(mocks.MockObjectStorage))

	_, err := svc.Ingest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrMissingStorageKey)
}
