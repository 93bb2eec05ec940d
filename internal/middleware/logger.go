package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each request with the same "component:" prefix the rest of the
// service uses. Liveness and readiness checks fire continuously and would
// drown the log file, so they are logged only when they fail.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		path := c.Request.URL.Path
		status := c.Writer.Status()
		if (path == "/healthz" || path == "/readyz") && status < 400 {
			return
		}

		requestID, _ := c.Get("request_id")
		log.Printf("http: %s %s %d %s id=%s",
			c.Request.Method,
			path,
			status,
			latency,
			requestID,
		)
	}
}

// Recovery turns panics into the standard error envelope instead of an empty
// 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID, _ := c.Get("request_id")
		log.Printf("http: panic recovered id=%s: %v", requestID, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}
