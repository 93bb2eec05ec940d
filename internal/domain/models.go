package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a problem file fetched from the monitored repository folder.
// It is immutable once downloaded.
type Submission struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Path       string     `db:"path" json:"path"`
	Name       string     `db:"name" json:"name"`
	Format     FileFormat `db:"format" json:"format"`
	Size       int64      `db:"size" json:"size"`
	SHA        string     `db:"sha" json:"sha"`
	UploadedAt time.Time  `db:"uploaded_at" json:"uploaded_at"`
	Content    []byte     `db:"-" json:"-"`
}

// Result is the recorded outcome of processing one submission.
type Result struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Path         string      `db:"path" json:"path"`
	Name         string      `db:"name" json:"name"`
	Format       FileFormat  `db:"format" json:"format"`
	Size         int64       `db:"size" json:"size"`
	Outcome      Outcome     `db:"outcome" json:"outcome"`
	ProblemType  ProblemType `db:"problem_type" json:"problem_type"`
	Solution     string      `db:"solution" json:"solution,omitempty"`
	SolutionPath string      `db:"solution_path" json:"solution_path,omitempty"`
	Reason       string      `db:"reason" json:"reason,omitempty"`
	SolveTimeMS  int64       `db:"solve_time_ms" json:"solve_time_ms"`
	NotifiedAt   *time.Time  `db:"notified_at" json:"notified_at,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// Run records one watch-and-process cycle, scheduled or manually triggered.
type Run struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Trigger    string     `db:"trigger" json:"trigger"` // "schedule" or "manual"
	StartedAt  time.Time  `db:"started_at" json:"started_at"`
	FinishedAt *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	FilesFound int        `db:"files_found" json:"files_found"`
	Solved     int        `db:"solved" json:"solved"`
	Rejected   int        `db:"rejected" json:"rejected"`
	Failed     int        `db:"failed" json:"failed"`
	Error      string     `db:"error" json:"error,omitempty"`
}

// Stats aggregates run and submission history for the status surface.
type Stats struct {
	TotalRuns        int        `db:"total_runs" json:"total_runs"`
	SuccessfulRuns   int        `db:"successful_runs" json:"successful_runs"`
	FailedRuns       int        `db:"failed_runs" json:"failed_runs"`
	ProblemsSolved   int        `db:"problems_solved" json:"problems_solved"`
	ProblemsRejected int        `db:"problems_rejected" json:"problems_rejected"`
	ProblemsFailed   int        `db:"problems_failed" json:"problems_failed"`
	LastRun          *time.Time `db:"last_run" json:"last_run,omitempty"`
	LastSuccess      *time.Time `db:"last_success" json:"last_success,omitempty"`
	LastError        string     `db:"last_error" json:"last_error,omitempty"`
}

// Solution is the solver's answer to one problem.
type Solution struct {
	ProblemType ProblemType
	Text        string
	Steps       []string
	Expressions []string
}

// RemoteFile describes an entry in the monitored repository folder before it
// has been downloaded.
type RemoteFile struct {
	Path string
	Name string
	SHA  string
	Size int64
}

// IndexEntry is one "Recent Solutions" line item on the repository index page.
type IndexEntry struct {
	ProblemName    string
	Status         string
	SolutionPath   string
	ProcessingTime time.Duration
}

// RepoStats is a snapshot of the monitored repository, used by `test --github`.
type RepoStats struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	OpenIssues  int    `json:"open_issues"`
}
