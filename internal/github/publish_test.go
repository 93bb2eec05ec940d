package github

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/domain"
)

func TestAddSolutionEntryInsertsUnderHeading(t *testing.T) {
	page := initialIndexPage()
	entry := domain.IndexEntry{
		ProblemName:    "algebra_1.txt",
		Status:         "Solved",
		SolutionPath:   "solutions/solution_algebra_1_20250101_120000.md",
		ProcessingTime: 1234 * time.Millisecond,
	}

	updated := addSolutionEntry(page, entry)

	assert.Contains(t, updated, "### algebra_1.txt")
	assert.Contains(t, updated, "solutions/solution_algebra_1_20250101_120000.md")
	assert.Contains(t, updated, "1.234s")
	assert.NotContains(t, updated, noSolutionsPlaceholder)

	headingIdx := strings.Index(updated, "## Recent Solutions")
	entryIdx := strings.Index(updated, "### algebra_1.txt")
	require.Greater(t, entryIdx, headingIdx)
}

func TestAddSolutionEntryNewestFirst(t *testing.T) {
	page := initialIndexPage()
	first := domain.IndexEntry{ProblemName: "first.txt", Status: "Solved", SolutionPath: "solutions/a.md"}
	second := domain.IndexEntry{ProblemName: "second.txt", Status: "Solved", SolutionPath: "solutions/b.md"}

	updated := addSolutionEntry(addSolutionEntry(page, first), second)

	firstIdx := strings.Index(updated, "### first.txt")
	secondIdx := strings.Index(updated, "### second.txt")
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, secondIdx, firstIdx)
}

func TestAddSolutionEntryWithoutHeading(t *testing.T) {
	updated := addSolutionEntry("# My Repo\n", domain.IndexEntry{
		ProblemName:  "p.txt",
		Status:       "Solved",
		SolutionPath: "solutions/s.md",
	})

	assert.Contains(t, updated, "## Recent Solutions")
	assert.Contains(t, updated, "### p.txt")
	assert.Contains(t, updated, "*Last updated:")
}

func TestAddSolutionEntryRefreshesTimestampOnce(t *testing.T) {
	page := initialIndexPage()
	updated := addSolutionEntry(page, domain.IndexEntry{ProblemName: "p.txt"})
	updated = addSolutionEntry(updated, domain.IndexEntry{ProblemName: "q.txt"})

	assert.Equal(t, 1, strings.Count(updated, "*Last updated:"))
}
