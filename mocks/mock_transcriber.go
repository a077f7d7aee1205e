package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docsift/internal/port"
)

// MockTranscriber is a mock implementation of port.Transcriber.
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Run(ctx context.Context, input port.TranscribeInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
