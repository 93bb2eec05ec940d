package github

import (
	"context"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"
	"time"

	gh "github.com/google/go-github/v62/github"

	"mathsolver/internal/domain"
)

// indexCandidates are checked in order when updating the repository index
// page; the first one that exists wins.
var indexCandidates = []string{"README.md", "index.md"}

var lastUpdatedPattern = regexp.MustCompile(`\*Last updated:.*?\*`)

const noSolutionsPlaceholder = "*No solutions yet. Upload a mathematical problem to get started!*"

// PublishSolution writes the solution markdown to the solutions folder under
// a timestamped name and returns the path it was committed to.
func (s *Source) PublishSolution(ctx context.Context, problemName, content string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	stem := strings.TrimSuffix(problemName, path.Ext(problemName))
	solutionPath := fmt.Sprintf("%s/solution_%s_%s.md", s.solutionsFolder, stem, timestamp)
	message := fmt.Sprintf("Add solution for %s - %s", problemName, timestamp)

	if err := s.writeFile(ctx, solutionPath, message, content); err != nil {
		return "", fmt.Errorf("publish solution for %s: %w", problemName, err)
	}
	log.Printf("github.Source: published %s", solutionPath)
	return solutionPath, nil
}

// UpdateIndexPage adds the entry to the Recent Solutions section of the
// repository's main page, creating index.md when no page exists.
func (s *Source) UpdateIndexPage(ctx context.Context, entry domain.IndexEntry) error {
	opts := &gh.RepositoryContentGetOptions{Ref: s.branch}

	var pagePath, current string
	var sha *string
	for _, candidate := range indexCandidates {
		file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, candidate, opts)
		if err != nil || file == nil {
			continue
		}
		decoded, err := file.GetContent()
		if err != nil {
			continue
		}
		pagePath = candidate
		current = decoded
		sha = file.SHA
		break
	}
	if pagePath == "" {
		pagePath = "index.md"
		current = initialIndexPage()
	}

	updated := addSolutionEntry(current, entry)
	message := fmt.Sprintf("Update main page with new solution: %s", entry.ProblemName)

	fileOpts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: []byte(updated),
		Branch:  gh.String(s.branch),
		SHA:     sha,
	}
	var err error
	if sha != nil {
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, pagePath, fileOpts)
	} else {
		_, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, pagePath, fileOpts)
	}
	if err != nil {
		return fmt.Errorf("update index page %s: %w", pagePath, err)
	}
	log.Printf("github.Source: updated index page %s", pagePath)
	return nil
}

// writeFile creates the file, or updates it when a commit under the same
// path already exists.
func (s *Source) writeFile(ctx context.Context, filePath, message, content string) error {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: []byte(content),
		Branch:  gh.String(s.branch),
	}

	getOpts := &gh.RepositoryContentGetOptions{Ref: s.branch}
	existing, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, filePath, getOpts)
	if err == nil && existing != nil {
		opts.SHA = existing.SHA
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.owner, s.repo, filePath, opts)
		return err
	}

	_, _, err = s.client.Repositories.CreateFile(ctx, s.owner, s.repo, filePath, opts)
	return err
}

func initialIndexPage() string {
	return fmt.Sprintf(`# Automated Math Solver

This is an automated mathematical problem solving system that:
- Monitors a GitHub repository for new mathematical problems
- Processes and solves problems automatically
- Publishes solutions with timestamps
- Sends email notifications

## Recent Solutions

%s

---
*Last updated: %s*
`, noSolutionsPlaceholder, time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
}

// addSolutionEntry inserts the entry right under the Recent Solutions
// heading so the newest solution always appears first.
func addSolutionEntry(current string, entry domain.IndexEntry) string {
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	item := fmt.Sprintf(`
### %s
- **Solved**: %s
- **Status**: %s
- **Solution**: [View Solution](%s)
- **Processing Time**: %s

`, entry.ProblemName, timestamp, entry.Status, entry.SolutionPath,
		entry.ProcessingTime.Round(time.Millisecond))

	const heading = "## Recent Solutions"
	var updated string
	if before, after, found := strings.Cut(current, heading); found {
		after = strings.Replace(after, noSolutionsPlaceholder, "", 1)
		updated = before + heading + "\n" + item + after
	} else {
		updated = current + "\n" + heading + "\n" + item
	}

	if lastUpdatedPattern.MatchString(updated) {
		updated = lastUpdatedPattern.ReplaceAllString(updated, "*Last updated: "+timestamp+"*")
	} else {
		updated += "\n---\n*Last updated: " + timestamp + "*\n"
	}
	return updated
}
