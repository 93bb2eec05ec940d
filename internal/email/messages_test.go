package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mathsolver/internal/domain"
)

func TestSolutionMail(t *testing.T) {
	result := &domain.Result{
		Name:        "algebra_1.txt",
		ProblemType: domain.ProblemEquation,
		Solution:    "x = 3, x = -3",
		SolveTimeMS: 420,
	}
	m := SolutionMail("user@example.com", result, "https://github.com/o/r/blob/main/solutions/s.md")

	assert.Equal(t, "user@example.com", m.To)
	assert.Equal(t, "Math Problem Solved: algebra_1.txt", m.Subject)
	assert.Contains(t, m.TextBody, "x = 3, x = -3")
	assert.Contains(t, m.TextBody, "equation")
	assert.Contains(t, m.HTMLBody, "solutions/s.md")
	assert.Contains(t, m.HTMLBody, "<html>")
}

func TestErrorMail(t *testing.T) {
	m := ErrorMail("user@example.com", "bad.pdf", "could not extract text content")

	assert.Equal(t, "Math Problem Processing Error: bad.pdf", m.Subject)
	assert.Contains(t, m.TextBody, "could not extract text content")
	assert.Contains(t, m.HTMLBody, "bad.pdf")
}

func TestErrorMailEscapesHTML(t *testing.T) {
	m := ErrorMail("user@example.com", "<script>.txt", "reason <b>bold</b>")

	assert.NotContains(t, m.HTMLBody, "<script>")
	assert.NotContains(t, m.HTMLBody, "<b>bold</b>")
}

func TestStatusMail(t *testing.T) {
	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := StatusMail("user@example.com", &domain.Stats{
		TotalRuns:      12,
		SuccessfulRuns: 10,
		FailedRuns:     2,
		ProblemsSolved: 7,
		LastRun:        &last,
	})

	assert.Contains(t, m.Subject, "Math Solver Status Report")
	assert.Contains(t, m.TextBody, "Total Runs: 12")
	assert.Contains(t, m.TextBody, "2025-06-01T12:00:00Z")
	assert.Contains(t, m.TextBody, "Last Success: Never")
	assert.Contains(t, m.HTMLBody, "<strong>Problems Solved:</strong> 7")
}

func TestTestMail(t *testing.T) {
	m := TestMail("user@example.com")

	assert.Equal(t, "Math Solver Email Test", m.Subject)
	assert.Contains(t, m.TextBody, "Email delivery is working.")
}
