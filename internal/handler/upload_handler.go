package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docsift/internal/service"
)

// UploadHandler handles document intake endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/uploads. It stores a multipart document
// under the originals prefix and returns its storage key.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// PresignUpload handles POST /api/v1/uploads/presign. It returns a
// presigned PUT URL for browser-direct uploads.
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var req struct {
		FileName    string `json:"file_name" binding:"required"`
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_name is required")
		return
	}

	result, err := h.uploadService.PresignUpload(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Download handles GET /api/v1/uploads/download. It returns a presigned
// GET URL for the stored object named by the file_key query parameter.
func (h *UploadHandler) Download(c *gin.Context) {
	fileKey := c.Query("file_key")
	if fileKey == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_key is required")
		return
	}

	url, err := h.uploadService.PresignDownload(c.Request.Context(), fileKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url, "file_key": fileKey})
}
