package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docsift/internal/config"
	"docsift/internal/domain"
	"docsift/internal/port"
)

// TranscriptionService defines the audio ingestion contract.
type TranscriptionService interface {
	Ingest(ctx context.Context, fileKey string) (*domain.TranscriptionResult, error)
}

type transcriptionService struct {
	transcriber port.Transcriber
	storage     port.ObjectStorage
	s3cfg       *config.S3Config
	cfg         *config.TranscribeConfig
}

// NewTranscriptionService creates a new TranscriptionService implementation.
func NewTranscriptionService(
	transcriber port.Transcriber,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	cfg *config.TranscribeConfig,
) TranscriptionService {
	return &transcriptionService{
		transcriber: transcriber,
		storage:     storage,
		s3cfg:       s3cfg,
		cfg:         cfg,
	}
}

// transcriptionOutput is the job output document written by the
// transcription service.
type transcriptionOutput struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// Ingest transcribes an uploaded audio object and stores the plain
// transcript next to the raw job output under the transcripts prefix.
func (s *transcriptionService) Ingest(ctx context.Context, fileKey string) (*domain.TranscriptionResult, error) {
	if fileKey == "" {
		return nil, domain.ErrMissingStorageKey
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileKey)), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileKey)
	}

	jobName := fmt.Sprintf("transcription_%s", uuid.New())
	outputKey := transcriptKey(fileKey)

	log.Printf("transcriptionService.Ingest: transcribing %s (job %s)", fileKey, jobName)
	err := s.transcriber.Run(ctx, port.TranscribeInput{
		JobName:     jobName,
		MediaURI:    fmt.Sprintf("s3://%s/%s", s.s3cfg.Bucket, fileKey),
		MediaFormat: ext,
		Language:    s.cfg.Language,
		OutputKey:   outputKey,
	})
	if err != nil {
		return nil, err
	}

	data, err := s.storage.Download(ctx, s.cfg.OutputBucket, outputKey)
	if err != nil {
		return nil, fmt.Errorf("downloading transcript %s: %w", outputKey, err)
	}

	var output transcriptionOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("decoding transcript %s: %w", outputKey, err)
	}
	if len(output.Results.Transcripts) == 0 {
		return nil, fmt.Errorf("transcript %s contains no transcribed text", outputKey)
	}
	content := output.Results.Transcripts[0].Transcript

	plainKey := plainTranscriptKey(fileKey)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.OutputBucket,
		Key:         plainKey,
		Body:        strings.NewReader(content),
		ContentType: "text/plain",
		Size:        int64(len(content)),
	}); err != nil {
		return nil, fmt.Errorf("persisting plain transcript to %s: %w", plainKey, err)
	}
	log.Printf("transcriptionService.Ingest: persisted plain transcript to %s", plainKey)

	return &domain.TranscriptionResult{
		JobName:        jobName,
		OutputLocation: fmt.Sprintf("s3://%s/%s", s.cfg.OutputBucket, outputKey),
		Content:        content,
	}, nil
}
