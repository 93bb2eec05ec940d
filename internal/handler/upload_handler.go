package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mathsolver/internal/service"
)

// UploadHandler solves a problem file supplied directly in the request,
// without going through the repository polling pipeline. Nothing is
// published, persisted, or mailed; the result goes straight back to the
// caller.
type UploadHandler struct {
	processor *service.Processor
}

func NewUploadHandler(processor *service.Processor) *UploadHandler {
	return &UploadHandler{processor: processor}
}

// UploadResult is the payload returned for a directly uploaded problem.
type UploadResult struct {
	FileName    string   `json:"file_name"`
	ProblemType string   `json:"problem_type"`
	Solution    string   `json:"solution"`
	Steps       []string `json:"steps"`
	SolveTimeMS int64    `json:"solve_time_ms"`
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		RespondError(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		HandleError(c, err)
		return
	}

	started := time.Now()
	solution, err := h.processor.SolveDirect(c.Request.Context(), fileHeader.Filename, content)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, UploadResult{
		FileName:    fileHeader.Filename,
		ProblemType: string(solution.ProblemType),
		Solution:    solution.Text,
		Steps:       solution.Steps,
		SolveTimeMS: time.Since(started).Milliseconds(),
	})
}
