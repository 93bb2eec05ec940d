package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	s3archive "mathsolver/internal/archive/s3"
	"mathsolver/internal/config"
	"mathsolver/internal/email/noop"
	"mathsolver/internal/email/ses"
	"mathsolver/internal/email/smtp"
	"mathsolver/internal/extract"
	githubsrc "mathsolver/internal/github"
	"mathsolver/internal/port"
	"mathsolver/internal/repository/postgres"
	"mathsolver/internal/service"
	"mathsolver/internal/solver"
	"mathsolver/internal/validator"
)

// app holds the wired application components shared by the CLI commands.
type app struct {
	cfg         *config.Config
	db          *sqlx.DB
	source      *githubsrc.Source
	submissions port.SubmissionRepository
	runs        port.RunRepository
	mailer      port.MailTransport
	processor   *service.Processor
}

// newApp wires repositories, the problem source, and the processing pipeline.
// A missing email configuration downgrades to the noop transport with a
// warning instead of failing startup.
func newApp(cfg *config.Config) (*app, error) {
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	submissions := postgres.NewSubmissionRepo(db)
	runs := postgres.NewRunRepo(db)
	source := githubsrc.NewSource(&cfg.GitHub)

	mailer, err := newMailer(cfg)
	if err != nil {
		log.Printf("app: %v; email notifications disabled", err)
		mailer = noop.NewTransport()
	}

	var archive port.ArtifactStore
	if cfg.Archive.Enabled {
		archive, err = s3archive.NewStore(&cfg.Archive)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize artifact archive: %w", err)
		}
	}

	processor := service.NewProcessor(
		source,
		submissions,
		runs,
		validator.New(cfg.Security.MaxFileSize(), cfg.Solver.MinMathScore),
		extract.New(cfg.Solver.MaxPDFPages, cfg.Solver.OCRLanguages),
		solver.New(),
		mailer,
		archive,
		cfg.Email.To(),
		repoWebBase(&cfg.GitHub),
	)

	return &app{
		cfg:         cfg,
		db:          db,
		source:      source,
		submissions: submissions,
		runs:        runs,
		mailer:      mailer,
		processor:   processor,
	}, nil
}

func (a *app) Close() {
	a.db.Close()
}

// newMailer builds the transport named by email.provider.
func newMailer(cfg *config.Config) (port.MailTransport, error) {
	switch cfg.Email.Provider {
	case "smtp":
		return smtp.NewTransport(cfg.Email.SMTPServer, cfg.Email.SMTPPort, cfg.Email.Sender, cfg.Email.Password)
	case "ses":
		return ses.NewTransport(cfg.Email.Region, cfg.Email.Sender)
	case "noop", "":
		return noop.NewTransport(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}

// repoWebBase is the browser URL prefix for files on the monitored branch.
func repoWebBase(gh *config.GitHubConfig) string {
	return fmt.Sprintf("https://github.com/%s/blob/%s", gh.Repository, gh.Branch)
}

// newStatusService builds the status surface. scheduler may be nil.
func (a *app) newStatusService(scheduler *service.Scheduler) *service.StatusService {
	return service.NewStatusService(
		a.runs,
		a.submissions,
		a.source,
		a.mailer,
		scheduler,
		a.cfg.Email.To(),
		a.cfg.Scheduler.Interval(),
	)
}
