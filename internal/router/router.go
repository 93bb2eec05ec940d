package router

import (
	"github.com/gin-gonic/gin"

	"mathsolver/internal/handler"
	"mathsolver/internal/middleware"
	"mathsolver/internal/service"
)

// defaultOrigins are the dashboard origins allowed by CORS.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5000",
	"http://127.0.0.1:5000",
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokens *service.TokenService,
	statusH *handler.StatusHandler,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(defaultOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	api := r.Group("/api")

	// Read-only routes
	api.GET("/status", statusH.GetStatus)
	api.GET("/solutions", statusH.ListSolutions)
	api.GET("/config", statusH.GetConfig)

	// Mutating routes - require operator token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.POST("/trigger", statusH.Trigger)
	protected.POST("/upload", uploadH.Upload)
	protected.POST("/test-email", statusH.TestEmail)

	return r
}
