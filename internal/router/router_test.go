package router_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/config"
	"mathsolver/internal/domain"
	"mathsolver/internal/extract"
	"mathsolver/internal/handler"
	"mathsolver/internal/router"
	"mathsolver/internal/service"
	"mathsolver/internal/solver"
	"mathsolver/internal/validator"
	"mathsolver/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *service.TokenService, *mocks.MockRunRepo) {
	t.Helper()

	runs := new(mocks.MockRunRepo)
	statusSvc := service.NewStatusService(
		runs,
		new(mocks.MockSubmissionRepo),
		new(mocks.MockProblemSource),
		new(mocks.MockMailTransport),
		nil, "ops@example.com", 30*time.Minute,
	)
	tokens := service.NewTokenService(config.APIConfig{
		JWTSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "mathsolver",
	})
	statusH := handler.NewStatusHandler(statusSvc, nil, handler.PublicConfig{Repository: "acme/math"})
	uploadH := handler.NewUploadHandler(service.NewProcessor(
		new(mocks.MockProblemSource),
		new(mocks.MockSubmissionRepo),
		new(mocks.MockRunRepo),
		validator.New(50<<20, 0.1),
		extract.New(10, nil),
		solver.New(),
		new(mocks.MockMailTransport),
		nil, "ops@example.com", "https://github.com/acme/math/blob/main",
	))
	healthH := handler.NewHealthHandler(nil, nil)

	return router.Setup(tokens, statusH, uploadH, healthH), tokens, runs
}

func TestRouter_HealthzPublic(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_StatusPublic(t *testing.T) {
	r, _, runs := setupRouter(t)
	runs.On("Stats", mock.Anything).Return(&domain.Stats{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/status", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_TriggerRequiresToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/trigger", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_TriggerWithToken(t *testing.T) {
	r, tokens, _ := setupRouter(t)

	token, _, err := tokens.Issue("alex")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/trigger", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	// Web-only mode has no scheduler, so an authorized trigger is refused
	// with 503 rather than 401.
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_UploadRequiresToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/upload", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_UploadWithToken(t *testing.T) {
	r, tokens, _ := setupRouter(t)

	token, _, err := tokens.Issue("alex")
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "quadratic.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Solve the equation x^2 - 9 = 0"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "x = 3")
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/nope", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
