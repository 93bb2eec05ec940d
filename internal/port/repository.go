package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mathsolver/internal/domain"
)

// SubmissionRepository persists the seen-set and per-submission outcomes.
// A submission path present in the store is never reprocessed.
type SubmissionRepository interface {
	// FilterUnseen returns the subset of files whose paths have no recorded
	// result yet, preserving input order.
	FilterUnseen(ctx context.Context, files []domain.RemoteFile) ([]domain.RemoteFile, error)

	// Claim inserts a processing-state row for the submission, adding its
	// path to the seen-set. Returns domain.ErrAlreadySeen if the path is
	// already present.
	Claim(ctx context.Context, sub *domain.Submission) (*domain.Result, error)

	// Finish records the final outcome for a claimed submission.
	Finish(ctx context.Context, res *domain.Result) error

	// MarkNotified stamps the time the outcome email was sent.
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error

	// ListRecent returns the most recently processed submissions.
	ListRecent(ctx context.Context, limit int) ([]domain.Result, error)

	// ListAll returns the full processing history, oldest first.
	ListAll(ctx context.Context) ([]domain.Result, error)
}

// RunRepository persists tick history and aggregate statistics.
type RunRepository interface {
	Start(ctx context.Context, run *domain.Run) error
	Finish(ctx context.Context, run *domain.Run) error
	Stats(ctx context.Context) (*domain.Stats, error)
}
