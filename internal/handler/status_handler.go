package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mathsolver/internal/middleware"
	"mathsolver/internal/service"
)

// PublicConfig is the non-sensitive configuration exposed by GET /api/config.
type PublicConfig struct {
	Repository       string   `json:"repository"`
	Branch           string   `json:"branch"`
	UploadFolder     string   `json:"upload_folder"`
	SolutionsFolder  string   `json:"solutions_folder"`
	CheckInterval    string   `json:"check_interval"`
	EmailProvider    string   `json:"email_provider"`
	MaxFileSizeMB    int64    `json:"max_file_size_mb"`
	SupportedFormats []string `json:"supported_formats"`
}

// StatusHandler handles the status API endpoints.
type StatusHandler struct {
	status    *service.StatusService
	scheduler *service.Scheduler
	public    PublicConfig
}

// NewStatusHandler creates a new StatusHandler. scheduler may be nil when the
// process runs in web-only mode.
func NewStatusHandler(status *service.StatusService, scheduler *service.Scheduler, public PublicConfig) *StatusHandler {
	return &StatusHandler{status: status, scheduler: scheduler, public: public}
}

// GetStatus handles GET /api/status
func (h *StatusHandler) GetStatus(c *gin.Context) {
	st, err := h.status.Status(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, st)
}

// Trigger handles POST /api/trigger
func (h *StatusHandler) Trigger(c *gin.Context) {
	if h.scheduler == nil {
		RespondError(c, http.StatusServiceUnavailable, "SCHEDULER_UNAVAILABLE", "scheduler is not running in this process")
		return
	}

	log.Printf("handler.Status: manual trigger by %q", middleware.GetOperator(c))
	run, err := h.scheduler.Trigger(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, run)
}

// ListSolutions handles GET /api/solutions
func (h *StatusHandler) ListSolutions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	results, err := h.status.RecentSolutions(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// GetConfig handles GET /api/config
func (h *StatusHandler) GetConfig(c *gin.Context) {
	RespondOK(c, h.public)
}

// TestEmail handles POST /api/test-email
func (h *StatusHandler) TestEmail(c *gin.Context) {
	if err := h.status.TestEmail(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "test email sent"})
}
