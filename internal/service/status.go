package service

import (
	"context"
	"fmt"
	"time"

	"mathsolver/internal/domain"
	"mathsolver/internal/email"
	"mathsolver/internal/port"
)

// Status is the live system snapshot served by the API and the status
// command.
type Status struct {
	SchedulerRunning bool          `json:"scheduler_running"`
	RunInFlight      bool          `json:"run_in_flight"`
	CheckInterval    string        `json:"check_interval"`
	NextRun          *time.Time    `json:"next_run,omitempty"`
	Uptime           string        `json:"uptime"`
	Stats            *domain.Stats `json:"stats"`
}

// StatusService aggregates run history and exposes the connectivity tests.
type StatusService struct {
	runs        port.RunRepository
	submissions port.SubmissionRepository
	source      port.ProblemSource
	mailer      port.MailTransport
	scheduler   *Scheduler
	recipient   string
	interval    time.Duration
	startedAt   time.Time
}

// NewStatusService creates a StatusService. scheduler may be nil when the
// process runs in web-only mode.
func NewStatusService(
	runs port.RunRepository,
	submissions port.SubmissionRepository,
	source port.ProblemSource,
	mailer port.MailTransport,
	scheduler *Scheduler,
	recipient string,
	interval time.Duration,
) *StatusService {
	return &StatusService{
		runs:        runs,
		submissions: submissions,
		source:      source,
		mailer:      mailer,
		scheduler:   scheduler,
		recipient:   recipient,
		interval:    interval,
		startedAt:   time.Now(),
	}
}

// Status returns the current system snapshot.
func (s *StatusService) Status(ctx context.Context) (*Status, error) {
	stats, err := s.runs.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	st := &Status{
		SchedulerRunning: s.scheduler != nil,
		CheckInterval:    s.interval.String(),
		Uptime:           time.Since(s.startedAt).Round(time.Second).String(),
		Stats:            stats,
	}
	if s.scheduler != nil {
		st.RunInFlight = s.scheduler.Running()
		if stats.LastRun != nil {
			next := stats.LastRun.Add(s.interval)
			st.NextRun = &next
		}
	}
	return st, nil
}

// RecentSolutions returns the latest processed submissions.
func (s *StatusService) RecentSolutions(ctx context.Context, limit int) ([]domain.Result, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.submissions.ListRecent(ctx, limit)
}

// TestGitHub verifies repository access and returns its metadata.
func (s *StatusService) TestGitHub(ctx context.Context) (*domain.RepoStats, error) {
	return s.source.Stats(ctx)
}

// TestEmail sends a test message to the configured recipient.
func (s *StatusService) TestEmail(ctx context.Context) error {
	return s.mailer.Send(ctx, email.TestMail(s.recipient))
}

// SendStatusReport emails the aggregate statistics to the recipient.
func (s *StatusService) SendStatusReport(ctx context.Context) error {
	stats, err := s.runs.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	return s.mailer.Send(ctx, email.StatusMail(s.recipient, stats))
}
