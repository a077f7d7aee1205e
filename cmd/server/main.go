package main

import (
	"fmt"
	"log"

	"docsift/internal/bedrock"
	"docsift/internal/config"
	"docsift/internal/handler"
	"docsift/internal/model"
	"docsift/internal/router"
	"docsift/internal/service"
	s3storage "docsift/internal/storage/s3"
	"docsift/internal/textract"
	"docsift/internal/transcribe"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := model.CheckRegistry(); err != nil {
		return fmt.Errorf("model registry check failed: %w", err)
	}

	// Initialize AWS clients
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	invoker, err := bedrock.NewClient(&cfg.Bedrock)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock client: %w", err)
	}
	analyzer, err := textract.NewAnalyzer(&cfg.Textract)
	if err != nil {
		return fmt.Errorf("failed to initialize Textract client: %w", err)
	}
	transcriber, err := transcribe.NewTranscriber(&cfg.Transcribe)
	if err != nil {
		return fmt.Errorf("failed to initialize Transcribe client: %w", err)
	}

	// Initialize services
	uploadSvc := service.NewUploadService(s3Client, &cfg.S3)
	ocrSvc := service.NewOCRService(analyzer, s3Client, &cfg.S3, &cfg.Textract)
	officeSvc := service.NewOfficeService(s3Client, &cfg.S3)
	transcriptionSvc := service.NewTranscriptionService(transcriber, s3Client, &cfg.S3, &cfg.Transcribe)
	extractSvc := service.NewExtractService(invoker, s3Client, &cfg.S3, &cfg.Generation, &cfg.Extract)

	// Initialize handlers
	uploadH := handler.NewUploadHandler(uploadSvc)
	ingestH := handler.NewIngestHandler(ocrSvc, officeSvc, transcriptionSvc)
	extractH := handler.NewExtractHandler(extractSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, uploadH, ingestH, extractH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
