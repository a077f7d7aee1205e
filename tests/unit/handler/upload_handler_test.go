package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docsift/internal/domain"
	"docsift/internal/handler"
	"docsift/internal/service"
	"docsift/mocks"
)

func TestUploadHandler_Upload_Success(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	expected := &service.UploadResult{
		FileKey:     "originals/claim.pdf",
		Bucket:      "claims",
		ContentType: "application/pdf",
		Size:        21,
	}
	mockSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.UploadInput")).
		Return(expected, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "claim.pdf")
	part.Write([]byte("%PDF-1.4 test content"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "originals/claim.pdf", data["file_key"])
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Upload_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/uploads", nil)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Upload")
}

func TestUploadHandler_Upload_FileTooLarge(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.UploadInput")).
		Return(nil, domain.ErrFileTooLarge)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "huge.pdf")
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
}

func TestUploadHandler_PresignUpload_Success(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	expected := &service.PresignResult{
		URL:     "https://claims.s3.amazonaws.com/originals/claim.pdf?sig=abc",
		FileKey: "originals/claim.pdf",
		Expiry:  3600,
	}
	mockSvc.On("PresignUpload", mock.Anything, "claim.pdf", "application/pdf").
		Return(expected, nil)

	w, c := postJSON(t, gin.H{"file_name": "claim.pdf", "content_type": "application/pdf"})

	h.PresignUpload(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data := resp.Data.(map[string]any)
	assert.Equal(t, "originals/claim.pdf", data["file_key"])
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_PresignUpload_MissingFileName(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	w, c := postJSON(t, gin.H{"content_type": "application/pdf"})

	h.PresignUpload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "PresignUpload")
}

func TestUploadHandler_Download_Success(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	mockSvc.On("PresignDownload", mock.Anything, "originals/claim.pdf").
		Return("https://claims.s3.amazonaws.com/originals/claim.pdf?sig=abc", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/uploads/download?file_key=originals%2Fclaim.pdf", nil)

	h.Download(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data := resp.Data.(map[string]any)
	assert.Equal(t, "originals/claim.pdf", data["file_key"])
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Download_MissingFileKey(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/uploads/download", nil)

	h.Download(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "PresignDownload")
}
