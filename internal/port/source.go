package port

import (
	"context"

	"mathsolver/internal/domain"
)

// ProblemSource is the remote repository holding problem uploads and
// published solutions.
type ProblemSource interface {
	// ListProblems lists the files currently present in the upload folder.
	ListProblems(ctx context.Context) ([]domain.RemoteFile, error)

	// Download fetches the content of one remote file.
	Download(ctx context.Context, file domain.RemoteFile) (*domain.Submission, error)

	// PublishSolution writes the solution markdown under the solutions
	// folder and returns the remote path it was written to.
	PublishSolution(ctx context.Context, problemName, content string) (string, error)

	// UpdateIndexPage prepends an entry to the Recent Solutions section of
	// the repository index page.
	UpdateIndexPage(ctx context.Context, entry domain.IndexEntry) error

	// Stats returns repository metadata, used by connectivity tests.
	Stats(ctx context.Context) (*domain.RepoStats, error)
}
