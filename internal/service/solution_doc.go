package service

import (
	"fmt"
	"strings"
	"time"

	"mathsolver/internal/domain"
)

// formatSolutionDocument renders the markdown document published to the
// solutions folder.
func formatSolutionDocument(fileName, originalText string, sol *domain.Solution, startedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Mathematical Problem Solution\n\n")

	b.WriteString("## Original Problem\n```\n")
	b.WriteString(strings.TrimSpace(originalText))
	b.WriteString("\n```\n\n")

	fmt.Fprintf(&b, "## Problem Type\n%s\n\n", sol.ProblemType)

	fmt.Fprintf(&b, "## Solution\n%s\n\n", strings.TrimSpace(sol.Text))

	b.WriteString("## Solution Steps\n")
	if len(sol.Steps) == 0 {
		b.WriteString("No detailed steps available.\n")
	} else {
		for i, step := range sol.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Processing Information\n")
	fmt.Fprintf(&b, "- **File Name**: %s\n", fileName)
	fmt.Fprintf(&b, "- **Processed At**: %s\n", startedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Processing Time**: %s\n", time.Since(startedAt).Round(time.Millisecond))

	b.WriteString("\n---\n*Generated by Automated Math Solver*\n")
	return b.String()
}
