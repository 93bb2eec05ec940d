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
	"github.com/stretchr/testify/require"

	"mathsolver/internal/extract"
	"mathsolver/internal/handler"
	"mathsolver/internal/service"
	"mathsolver/internal/solver"
	"mathsolver/internal/validator"
	"mathsolver/mocks"
)

func newUploadHandler(maxFileSize int64) *handler.UploadHandler {
	processor := service.NewProcessor(
		new(mocks.MockProblemSource),
		new(mocks.MockSubmissionRepo),
		new(mocks.MockRunRepo),
		validator.New(maxFileSize, 0.1),
		extract.New(10, nil),
		solver.New(),
		new(mocks.MockMailTransport),
		nil, "ops@example.com", "https://github.com/acme/math/blob/main",
	)
	return handler.NewUploadHandler(processor)
}

func multipartFile(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postUpload(h *handler.UploadHandler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/upload", body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	h.Upload(c)
	return w
}

func TestUploadHandler_SolvesInProcess(t *testing.T) {
	h := newUploadHandler(50 << 20)

	body, contentType := multipartFile(t, "quadratic.txt", []byte("Solve the equation x^2 - 9 = 0"))
	w := postUpload(h, body, contentType)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    handler.UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "quadratic.txt", resp.Data.FileName)
	assert.Equal(t, "equation", resp.Data.ProblemType)
	assert.Contains(t, resp.Data.Solution, "x = 3")
	assert.Contains(t, resp.Data.Solution, "x = -3")
	assert.NotEmpty(t, resp.Data.Steps)
}

func TestUploadHandler_NoFile(t *testing.T) {
	h := newUploadHandler(50 << 20)

	w := postUpload(h, bytes.NewBuffer(nil), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_FILE")
}

func TestUploadHandler_UnsupportedFormat(t *testing.T) {
	h := newUploadHandler(50 << 20)

	body, contentType := multipartFile(t, "problem.exe", []byte("Solve x + 1 = 0"))
	w := postUpload(h, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestUploadHandler_FileTooLarge(t *testing.T) {
	h := newUploadHandler(16)

	body, contentType := multipartFile(t, "big.txt", []byte("Solve the equation x^2 - 9 = 0"))
	w := postUpload(h, body, contentType)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
}

func TestUploadHandler_NotMathematical(t *testing.T) {
	h := newUploadHandler(50 << 20)

	body, contentType := multipartFile(t, "recipe.txt", []byte("Preheat the oven and whisk the eggs until fluffy."))
	w := postUpload(h, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_MATHEMATICAL")
}
