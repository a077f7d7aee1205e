package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docsift/internal/service"
)

// IngestHandler handles document ingestion endpoints. Each endpoint turns
// an uploaded original into the processed plain-text artifact that the
// extraction endpoints consume.
type IngestHandler struct {
	ocrService           service.OCRService
	officeService        service.OfficeService
	transcriptionService service.TranscriptionService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(
	ocrService service.OCRService,
	officeService service.OfficeService,
	transcriptionService service.TranscriptionService,
) *IngestHandler {
	return &IngestHandler{
		ocrService:           ocrService,
		officeService:        officeService,
		transcriptionService: transcriptionService,
	}
}

type ingestRequest struct {
	FileKey string `json:"file_key" binding:"required"`
}

// OCR handles POST /api/v1/ingest/ocr. It analyzes a scanned document or
// image and persists its linearized text and reconstructed tables.
func (h *IngestHandler) OCR(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_key is required")
		return
	}

	result, err := h.ocrService.Ingest(c.Request.Context(), req.FileKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Office handles POST /api/v1/ingest/office. It converts office and web
// documents into page-marked plain text.
func (h *IngestHandler) Office(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_key is required")
		return
	}

	result, err := h.officeService.Ingest(c.Request.Context(), req.FileKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Transcribe handles POST /api/v1/ingest/transcribe. It runs speech
// recognition over an audio file and persists the transcript.
func (h *IngestHandler) Transcribe(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_key is required")
		return
	}

	result, err := h.transcriptionService.Ingest(c.Request.Context(), req.FileKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
