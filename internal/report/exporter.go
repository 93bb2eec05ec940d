// Package report exports the processing history as an Excel workbook with a
// summary sheet and a per-submission history sheet.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"mathsolver/internal/domain"
	"mathsolver/internal/port"
)

const (
	summarySheet = "Summary"
	historySheet = "History"
)

// Exporter writes processing history workbooks.
type Exporter struct {
	submissions port.SubmissionRepository
	runs        port.RunRepository
}

// NewExporter creates an Exporter.
func NewExporter(submissions port.SubmissionRepository, runs port.RunRepository) *Exporter {
	return &Exporter{submissions: submissions, runs: runs}
}

// Export writes the workbook to path.
func (e *Exporter) Export(ctx context.Context, path string) error {
	stats, err := e.runs.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	results, err := e.submissions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummarySheet(f, stats); err != nil {
		return err
	}
	if err := writeHistorySheet(f, results); err != nil {
		return err
	}

	// Drop the default sheet so Summary opens first.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, stats *domain.Stats) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Runs", stats.TotalRuns},
		{"Successful Runs", stats.SuccessfulRuns},
		{"Failed Runs", stats.FailedRuns},
		{"Problems Solved", stats.ProblemsSolved},
		{"Problems Rejected", stats.ProblemsRejected},
		{"Problems Failed", stats.ProblemsFailed},
		{"Last Run", formatTimePtr(stats.LastRun)},
		{"Last Success", formatTimePtr(stats.LastSuccess)},
		{"Last Error", stats.LastError},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeHistorySheet(f *excelize.File, results []domain.Result) error {
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("create history sheet: %w", err)
	}

	header := []interface{}{
		"Processed At", "File", "Format", "Size (bytes)", "Outcome",
		"Problem Type", "Solution Path", "Reason", "Solve Time (ms)",
	}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return fmt.Errorf("write history header: %w", err)
	}

	for i, r := range results {
		row := []interface{}{
			r.CreatedAt.Format(time.RFC3339),
			r.Name,
			string(r.Format),
			r.Size,
			string(r.Outcome),
			string(r.ProblemType),
			r.SolutionPath,
			r.Reason,
			r.SolveTimeMS,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return fmt.Errorf("write history row %d: %w", i+2, err)
		}
	}
	return nil
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Format(time.RFC3339)
}
