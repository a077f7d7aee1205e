package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docsift/internal/domain"
	"docsift/internal/service"
)

// ExtractHandler handles attribute extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService}
}

type extractRequest struct {
	Document         string                  `json:"document"`
	FileKey          string                  `json:"file_key"`
	OriginalFileName string                  `json:"original_file_name"`
	Attributes       []domain.AttributeSpec  `json:"attributes" binding:"required"`
	FewShots         []domain.FewShotExample `json:"few_shots"`
	Instructions     string                  `json:"instructions"`
	ModelParams      domain.ModelParams      `json:"model_params"`
}

func (r *extractRequest) validTypes() bool {
	for _, attr := range r.Attributes {
		if attr.Type != "" && !domain.ValidAttributeTypes[attr.Type] {
			return false
		}
	}
	return true
}

func (r *extractRequest) toInput() service.ExtractInput {
	return service.ExtractInput{
		Document:         r.Document,
		FileKey:          r.FileKey,
		OriginalFileName: r.OriginalFileName,
		Attributes:       r.Attributes,
		FewShots:         r.FewShots,
		Instructions:     r.Instructions,
		Model:            r.ModelParams,
	}
}

// Extract handles POST /api/v1/extract. It runs attribute extraction over
// the processed text document stored under file_key.
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "attributes are required")
		return
	}
	if !req.validTypes() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "attribute type must be 'auto', 'character', 'number', or 'true_false'")
		return
	}

	result, err := h.extractService.Extract(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExtractImage handles POST /api/v1/extract/image. It runs attribute
// extraction over the page images of the document stored under file_key.
func (h *ExtractHandler) ExtractImage(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "attributes are required")
		return
	}
	if !req.validTypes() {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "attribute type must be 'auto', 'character', 'number', or 'true_false'")
		return
	}

	result, err := h.extractService.ExtractImage(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Summarize handles POST /api/v1/extract/summary. It condenses previously
// extracted attribute payloads into a single summary structure.
func (h *ExtractHandler) Summarize(c *gin.Context) {
	var req struct {
		Fragments   []string           `json:"fragments" binding:"required"`
		ModelParams domain.ModelParams `json:"model_params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "fragments are required")
		return
	}

	result, err := h.extractService.Summarize(c.Request.Context(), service.SummarizeInput{
		Fragments: req.Fragments,
		Model:     req.ModelParams,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
