package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	GitHub    GitHubConfig
	Scheduler SchedulerConfig
	Solver    SolverConfig
	Security  SecurityConfig
	Email     EmailConfig
	Server    ServerConfig
	DB        DBConfig
	Archive   ArchiveConfig
	Log       LogConfig
	API       APIConfig
}

// GitHubConfig identifies the monitored repository.
type GitHubConfig struct {
	Token           string `mapstructure:"token"`
	Repository      string `mapstructure:"repository"` // "owner/name"
	Branch          string `mapstructure:"branch"`
	UploadFolder    string `mapstructure:"upload_folder"`
	SolutionsFolder string `mapstructure:"solutions_folder"`
}

// Owner returns the repository owner part of "owner/name".
func (g *GitHubConfig) Owner() string {
	owner, _, _ := strings.Cut(g.Repository, "/")
	return owner
}

// Name returns the repository name part of "owner/name".
func (g *GitHubConfig) Name() string {
	_, name, _ := strings.Cut(g.Repository, "/")
	return name
}

// SchedulerConfig holds the polling loop settings.
type SchedulerConfig struct {
	CheckIntervalMinutes int `mapstructure:"check_interval_minutes"`
}

// Interval returns the tick interval as a duration.
func (s *SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.CheckIntervalMinutes) * time.Minute
}

// SolverConfig holds text extraction and solving settings.
type SolverConfig struct {
	MinMathScore float64  `mapstructure:"min_math_score"`
	MaxPDFPages  int      `mapstructure:"max_pdf_pages"`
	OCRLanguages []string `mapstructure:"ocr_languages"`
}

// SecurityConfig holds content guardrail settings.
type SecurityConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSize returns the size limit in bytes.
func (s *SecurityConfig) MaxFileSize() int64 {
	return s.MaxFileSizeMB * 1024 * 1024
}

// EmailConfig holds notification settings. Provider is one of
// "smtp", "ses", or "noop".
type EmailConfig struct {
	Provider   string `mapstructure:"provider"`
	SMTPServer string `mapstructure:"smtp_server"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	Sender     string `mapstructure:"sender"`
	Password   string `mapstructure:"password"`
	Recipient  string `mapstructure:"recipient"`
	Region     string `mapstructure:"region"`
}

// To returns the notification recipient, defaulting to the sender address.
func (e *EmailConfig) To() string {
	if e.Recipient != "" {
		return e.Recipient
	}
	return e.Sender
}

// ServerConfig holds HTTP server settings for the status API.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ArchiveConfig holds optional S3 artifact archive settings.
type ArchiveConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// APIConfig holds status API auth settings.
type APIConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// Load reads configuration from config.yaml (when present) and environment
// variables with the MATHSOLVER_ prefix. GITHUB_TOKEN, EMAIL_SENDER, and
// EMAIL_PASSWORD are honored without a prefix.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MATHSOLVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
			// Missing config file is fine; env and defaults apply.
		}
	}

	// GitHub defaults
	v.SetDefault("github.repository", "")
	v.SetDefault("github.branch", "main")
	v.SetDefault("github.upload_folder", "problems")
	v.SetDefault("github.solutions_folder", "solutions")

	// Scheduler defaults
	v.SetDefault("scheduler.check_interval_minutes", 30)

	// Solver defaults
	v.SetDefault("solver.min_math_score", 0.1)
	v.SetDefault("solver.max_pdf_pages", 10)
	v.SetDefault("solver.ocr_languages", "eng,ita")

	// Security defaults
	v.SetDefault("security.max_file_size_mb", 50)

	// Email defaults
	v.SetDefault("email.provider", "smtp")
	v.SetDefault("email.smtp_server", "smtp.gmail.com")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.recipient", "")
	v.SetDefault("email.region", "us-east-1")

	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "mathsolver")
	v.SetDefault("db.password", "mathsolver_secret")
	v.SetDefault("db.name", "mathsolver_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Archive defaults
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "mathsolver")
	v.SetDefault("archive.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/math_solver.log")

	// API defaults
	v.SetDefault("api.jwt_secret", "change-me-in-production")
	v.SetDefault("api.token_expiry", "24h")
	v.SetDefault("api.issuer", "mathsolver")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"github.repository":                "MATHSOLVER_GITHUB_REPOSITORY",
		"github.branch":                    "MATHSOLVER_GITHUB_BRANCH",
		"github.upload_folder":             "MATHSOLVER_GITHUB_UPLOAD_FOLDER",
		"github.solutions_folder":          "MATHSOLVER_GITHUB_SOLUTIONS_FOLDER",
		"scheduler.check_interval_minutes": "MATHSOLVER_SCHEDULER_CHECK_INTERVAL_MINUTES",
		"solver.min_math_score":            "MATHSOLVER_SOLVER_MIN_MATH_SCORE",
		"solver.max_pdf_pages":             "MATHSOLVER_SOLVER_MAX_PDF_PAGES",
		"solver.ocr_languages":             "MATHSOLVER_SOLVER_OCR_LANGUAGES",
		"security.max_file_size_mb":        "MATHSOLVER_SECURITY_MAX_FILE_SIZE_MB",
		"email.provider":                   "MATHSOLVER_EMAIL_PROVIDER",
		"email.smtp_server":                "MATHSOLVER_EMAIL_SMTP_SERVER",
		"email.smtp_port":                  "MATHSOLVER_EMAIL_SMTP_PORT",
		"email.recipient":                  "MATHSOLVER_EMAIL_RECIPIENT",
		"email.region":                     "MATHSOLVER_EMAIL_REGION",
		"server.host":                      "MATHSOLVER_SERVER_HOST",
		"server.port":                      "MATHSOLVER_SERVER_PORT",
		"server.read_timeout":              "MATHSOLVER_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "MATHSOLVER_SERVER_WRITE_TIMEOUT",
		"db.host":                          "MATHSOLVER_DB_HOST",
		"db.port":                          "MATHSOLVER_DB_PORT",
		"db.user":                          "MATHSOLVER_DB_USER",
		"db.password":                      "MATHSOLVER_DB_PASSWORD",
		"db.name":                          "MATHSOLVER_DB_NAME",
		"db.sslmode":                       "MATHSOLVER_DB_SSLMODE",
		"db.max_open":                      "MATHSOLVER_DB_MAX_OPEN",
		"db.max_idle":                      "MATHSOLVER_DB_MAX_IDLE",
		"archive.enabled":                  "MATHSOLVER_ARCHIVE_ENABLED",
		"archive.region":                   "MATHSOLVER_ARCHIVE_REGION",
		"archive.bucket":                   "MATHSOLVER_ARCHIVE_BUCKET",
		"archive.prefix":                   "MATHSOLVER_ARCHIVE_PREFIX",
		"archive.endpoint":                 "MATHSOLVER_ARCHIVE_ENDPOINT",
		"archive.access_key":               "MATHSOLVER_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":               "MATHSOLVER_ARCHIVE_SECRET_KEY",
		"log.level":                        "MATHSOLVER_LOG_LEVEL",
		"log.file":                         "MATHSOLVER_LOG_FILE",
		"api.jwt_secret":                   "MATHSOLVER_API_JWT_SECRET",
		"api.token_expiry":                 "MATHSOLVER_API_TOKEN_EXPIRY",
		"api.issuer":                       "MATHSOLVER_API_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Credentials documented without a prefix.
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("email.sender", "EMAIL_SENDER")
	_ = v.BindEnv("email.password", "EMAIL_PASSWORD")

	cfg := &Config{}

	cfg.GitHub = GitHubConfig{
		Token:           v.GetString("github.token"),
		Repository:      v.GetString("github.repository"),
		Branch:          v.GetString("github.branch"),
		UploadFolder:    v.GetString("github.upload_folder"),
		SolutionsFolder: v.GetString("github.solutions_folder"),
	}
	cfg.Scheduler = SchedulerConfig{
		CheckIntervalMinutes: v.GetInt("scheduler.check_interval_minutes"),
	}
	cfg.Solver = SolverConfig{
		MinMathScore: v.GetFloat64("solver.min_math_score"),
		MaxPDFPages:  v.GetInt("solver.max_pdf_pages"),
		OCRLanguages: splitList(v.GetString("solver.ocr_languages")),
	}
	cfg.Security = SecurityConfig{
		MaxFileSizeMB: v.GetInt64("security.max_file_size_mb"),
	}
	cfg.Email = EmailConfig{
		Provider:   v.GetString("email.provider"),
		SMTPServer: v.GetString("email.smtp_server"),
		SMTPPort:   v.GetInt("email.smtp_port"),
		Sender:     v.GetString("email.sender"),
		Password:   v.GetString("email.password"),
		Recipient:  v.GetString("email.recipient"),
		Region:     v.GetString("email.region"),
	}
	cfg.Server = ServerConfig{
		Host:         v.GetString("server.host"),
		Port:         v.GetInt("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled:   v.GetBool("archive.enabled"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Prefix:    v.GetString("archive.prefix"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
		File:  v.GetString("log.file"),
	}
	cfg.API = APIConfig{
		JWTSecret:   v.GetString("api.jwt_secret"),
		TokenExpiry: v.GetDuration("api.token_expiry"),
		Issuer:      v.GetString("api.issuer"),
	}

	if cfg.GitHub.Repository != "" && !strings.Contains(cfg.GitHub.Repository, "/") {
		return nil, fmt.Errorf("github.repository must be in owner/name form, got %q", cfg.GitHub.Repository)
	}

	return cfg, nil
}

// splitList parses a comma-separated string, or passes through a YAML list
// that viper already joined.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
