package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"mathsolver/internal/service"
)

// HealthHandler handles health check endpoints. scheduler is nil in web-only
// mode.
type HealthHandler struct {
	db        *sqlx.DB
	scheduler *service.Scheduler
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, scheduler *service.Scheduler) *HealthHandler {
	return &HealthHandler{db: db, scheduler: scheduler}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Ready means the database answers a ping;
// the scheduler fields report whether this process polls and whether a run
// is currently executing.
func (h *HealthHandler) Readiness(c *gin.Context) {
	body := gin.H{
		"status":        "ok",
		"scheduler":     h.scheduler != nil,
		"run_in_flight": h.scheduler != nil && h.scheduler.Running(),
	}

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		body["status"] = "unavailable"
		body["error"] = "database not reachable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
