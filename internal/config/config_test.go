package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Equal(t, "problems", cfg.GitHub.UploadFolder)
	assert.Equal(t, "solutions", cfg.GitHub.SolutionsFolder)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.Interval())
	assert.Equal(t, 0.1, cfg.Solver.MinMathScore)
	assert.Equal(t, 10, cfg.Solver.MaxPDFPages)
	assert.Equal(t, []string{"eng", "ita"}, cfg.Solver.OCRLanguages)
	assert.Equal(t, int64(50*1024*1024), cfg.Security.MaxFileSize())
	assert.Equal(t, "smtp", cfg.Email.Provider)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.API.TokenExpiry)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MATHSOLVER_GITHUB_REPOSITORY", "acme/problems")
	t.Setenv("MATHSOLVER_SCHEDULER_CHECK_INTERVAL_MINUTES", "5")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("EMAIL_SENDER", "bot@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "acme/problems", cfg.GitHub.Repository)
	assert.Equal(t, "acme", cfg.GitHub.Owner())
	assert.Equal(t, "problems", cfg.GitHub.Name())
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.Interval())
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "bot@example.com", cfg.Email.Sender)
	assert.Equal(t, "bot@example.com", cfg.Email.To())
	assert.Equal(t, "app-password", cfg.Email.Password)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
github:
  repository: acme/math
  branch: develop
email:
  provider: ses
  recipient: ops@example.com
server:
  port: 8080
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "acme/math", cfg.GitHub.Repository)
	assert.Equal(t, "develop", cfg.GitHub.Branch)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "ops@example.com", cfg.Email.To())
	assert.Equal(t, 8080, cfg.Server.Port)
	// Unset keys keep their defaults.
	assert.Equal(t, "problems", cfg.GitHub.UploadFolder)
}

func TestLoadRejectsMalformedRepository(t *testing.T) {
	t.Setenv("MATHSOLVER_GITHUB_REPOSITORY", "no-slash")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "owner/name")
}

func TestLoadBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github: [not: valid"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := config.DBConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "math", SSLMode: "require",
	}
	assert.Equal(t, "postgres://u:p@db:5433/math?sslmode=require", d.DSN())
}
