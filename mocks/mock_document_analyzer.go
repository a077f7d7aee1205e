package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsift/internal/port"
)

// MockDocumentAnalyzer is a mock implementation of port.DocumentAnalyzer.
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) AnalyzeDocument(ctx context.Context, bucket, key string, withTables bool) (*port.AnalyzedDocument, error) {
	args := m.Called(ctx, bucket, key, withTables)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AnalyzedDocument), args.Error(1)
}
