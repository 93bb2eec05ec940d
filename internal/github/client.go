// Package github implements the problem source against the GitHub contents
// API: listing the upload folder, downloading problem files, and publishing
// solution files back to the repository.
package github

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	gh "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"mathsolver/internal/config"
	"mathsolver/internal/domain"
	"mathsolver/internal/port"
)

// Source talks to one GitHub repository.
type Source struct {
	client          *gh.Client
	owner           string
	repo            string
	branch          string
	uploadFolder    string
	solutionsFolder string
}

var _ port.ProblemSource = (*Source)(nil)

// NewSource builds a Source authenticated with the configured token.
func NewSource(cfg *config.GitHubConfig) *Source {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return &Source{
		client:          gh.NewClient(httpClient),
		owner:           cfg.Owner(),
		repo:            cfg.Name(),
		branch:          cfg.Branch,
		uploadFolder:    cfg.UploadFolder,
		solutionsFolder: cfg.SolutionsFolder,
	}
}

// ListProblems returns the files currently in the upload folder. A missing
// folder is not an error; it just means nothing has been uploaded yet.
func (s *Source) ListProblems(ctx context.Context) ([]domain.RemoteFile, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: s.branch}
	_, dir, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, s.uploadFolder, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s/%s/%s: %w", s.owner, s.repo, s.uploadFolder, err)
	}

	files := make([]domain.RemoteFile, 0, len(dir))
	for _, entry := range dir {
		if entry.GetType() != "file" {
			continue
		}
		files = append(files, domain.RemoteFile{
			Path: entry.GetPath(),
			Name: entry.GetName(),
			SHA:  entry.GetSHA(),
			Size: int64(entry.GetSize()),
		})
	}
	return files, nil
}

// Download fetches one problem file's content.
func (s *Source) Download(ctx context.Context, file domain.RemoteFile) (*domain.Submission, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: s.branch}
	rc, _, err := s.client.Repositories.DownloadContents(ctx, s.owner, s.repo, file.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", file.Path, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file.Path, err)
	}

	format, ok := domain.FormatFromPath(file.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, file.Name)
	}

	uploadedAt, err := s.lastCommitTime(ctx, file.Path)
	if err != nil {
		// The upload time is informational; the content is what matters.
		log.Printf("github.Source: commit time for %s: %v", file.Path, err)
	}

	log.Printf("github.Source: downloaded %s (%d bytes)", file.Path, len(content))
	return &domain.Submission{
		Path:       file.Path,
		Name:       file.Name,
		Format:     format,
		Size:       int64(len(content)),
		SHA:        file.SHA,
		UploadedAt: uploadedAt,
		Content:    content,
	}, nil
}

// lastCommitTime returns the committer timestamp of the most recent commit
// touching path, which is when the problem was uploaded.
func (s *Source) lastCommitTime(ctx context.Context, path string) (time.Time, error) {
	opts := &gh.CommitsListOptions{
		Path:        path,
		SHA:         s.branch,
		ListOptions: gh.ListOptions{PerPage: 1},
	}
	commits, _, err := s.client.Repositories.ListCommits(ctx, s.owner, s.repo, opts)
	if err != nil {
		return time.Time{}, fmt.Errorf("list commits for %s: %w", path, err)
	}
	if len(commits) == 0 {
		return time.Time{}, nil
	}
	return commits[0].GetCommit().GetCommitter().GetDate().Time, nil
}

// Stats returns repository metadata; used by the connectivity test command.
func (s *Source) Stats(ctx context.Context) (*domain.RepoStats, error) {
	repo, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", s.owner, s.repo, err)
	}
	return &domain.RepoStats{
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
	}, nil
}
