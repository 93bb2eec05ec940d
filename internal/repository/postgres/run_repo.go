package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mathsolver/internal/domain"
	"mathsolver/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Start(ctx context.Context, run *domain.Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, trigger, started_at) VALUES ($1, $2, $3)`,
		run.ID, run.Trigger, run.StartedAt)
	if err != nil {
		return fmt.Errorf("runRepo.Start: %w", err)
	}
	return nil
}

func (r *runRepo) Finish(ctx context.Context, run *domain.Run) error {
	now := time.Now().UTC()
	run.FinishedAt = &now

	_, err := r.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = $1, files_found = $2, solved = $3,
		 rejected = $4, failed = $5, error = $6 WHERE id = $7`,
		run.FinishedAt, run.FilesFound, run.Solved, run.Rejected, run.Failed,
		run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("runRepo.Finish: %w", err)
	}
	return nil
}

func (r *runRepo) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats

	err := r.db.GetContext(ctx, &stats, `SELECT
		COUNT(*) AS total_runs,
		COUNT(*) FILTER (WHERE finished_at IS NOT NULL AND error = '') AS successful_runs,
		COUNT(*) FILTER (WHERE error <> '') AS failed_runs,
		MAX(started_at) AS last_run,
		MAX(started_at) FILTER (WHERE finished_at IS NOT NULL AND error = '') AS last_success
		FROM runs`)
	if err != nil {
		return nil, fmt.Errorf("runRepo.Stats runs: %w", err)
	}

	err = r.db.GetContext(ctx, &stats, `SELECT
		COUNT(*) FILTER (WHERE outcome = 'solved') AS problems_solved,
		COUNT(*) FILTER (WHERE outcome = 'rejected') AS problems_rejected,
		COUNT(*) FILTER (WHERE outcome = 'failed') AS problems_failed
		FROM submissions`)
	if err != nil {
		return nil, fmt.Errorf("runRepo.Stats submissions: %w", err)
	}

	var lastError *string
	err = r.db.GetContext(ctx, &lastError,
		`SELECT error FROM runs WHERE error <> '' ORDER BY started_at DESC LIMIT 1`)
	if err == nil && lastError != nil {
		stats.LastError = *lastError
	}

	return &stats, nil
}
