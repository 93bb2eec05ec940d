package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mathsolver/internal/domain"
	"mathsolver/internal/port"
)

type submissionRepo struct {
	db *sqlx.DB
}

// NewSubmissionRepo creates a new PostgreSQL-backed SubmissionRepository.
func NewSubmissionRepo(db *sqlx.DB) port.SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) FilterUnseen(ctx context.Context, files []domain.RemoteFile) ([]domain.RemoteFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	query, args, err := sqlx.In("SELECT path FROM submissions WHERE path IN (?)", paths)
	if err != nil {
		return nil, fmt.Errorf("submissionRepo.FilterUnseen: %w", err)
	}
	query = r.db.Rebind(query)

	var seen []string
	if err := r.db.SelectContext(ctx, &seen, query, args...); err != nil {
		return nil, fmt.Errorf("submissionRepo.FilterUnseen: %w", err)
	}

	seenSet := make(map[string]struct{}, len(seen))
	for _, p := range seen {
		seenSet[p] = struct{}{}
	}

	unseen := make([]domain.RemoteFile, 0, len(files))
	for _, f := range files {
		if _, ok := seenSet[f.Path]; !ok {
			unseen = append(unseen, f)
		}
	}
	return unseen, nil
}

func (r *submissionRepo) Claim(ctx context.Context, sub *domain.Submission) (*domain.Result, error) {
	now := time.Now().UTC()
	res := &domain.Result{
		ID:        uuid.New(),
		Path:      sub.Path,
		Name:      sub.Name,
		Format:    sub.Format,
		Size:      sub.Size,
		Outcome:   domain.OutcomeProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// uploaded_at is NULL when the source could not resolve a commit time.
	var uploadedAt *time.Time
	if !sub.UploadedAt.IsZero() {
		uploadedAt = &sub.UploadedAt
	}

	query := `INSERT INTO submissions
		(id, path, name, format, size, sha, uploaded_at, outcome, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (path) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query,
		res.ID, res.Path, res.Name, res.Format, res.Size, sub.SHA, uploadedAt,
		res.Outcome, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("submissionRepo.Claim: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("submissionRepo.Claim: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrAlreadySeen
	}
	return res, nil
}

func (r *submissionRepo) Finish(ctx context.Context, res *domain.Result) error {
	res.UpdatedAt = time.Now().UTC()

	query := `UPDATE submissions SET
		outcome = $1, problem_type = $2, solution = $3, solution_path = $4,
		reason = $5, solve_time_ms = $6, updated_at = $7
		WHERE id = $8`

	_, err := r.db.ExecContext(ctx, query,
		res.Outcome, res.ProblemType, res.Solution, res.SolutionPath,
		res.Reason, res.SolveTimeMS, res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("submissionRepo.Finish: %w", err)
	}
	return nil
}

func (r *submissionRepo) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE submissions SET notified_at = $1, updated_at = $2 WHERE id = $3",
		at, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("submissionRepo.MarkNotified: %w", err)
	}
	return nil
}

const resultColumns = `id, path, name, format, size, outcome, problem_type,
	solution, solution_path, reason, solve_time_ms, notified_at, created_at, updated_at`

func (r *submissionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Result, error) {
	var results []domain.Result
	err := r.db.SelectContext(ctx, &results,
		"SELECT "+resultColumns+" FROM submissions ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("submissionRepo.ListRecent: %w", err)
	}
	return results, nil
}

func (r *submissionRepo) ListAll(ctx context.Context) ([]domain.Result, error) {
	var results []domain.Result
	err := r.db.SelectContext(ctx, &results,
		"SELECT "+resultColumns+" FROM submissions ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("submissionRepo.ListAll: %w", err)
	}
	return results, nil
}
