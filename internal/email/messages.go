// Package email renders notification messages and exposes the transports
// that deliver them (smtp, ses, noop subpackages).
package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"mathsolver/internal/domain"
	"mathsolver/internal/port"
)

const footerText = `---
This email was generated automatically by the Math Solver system.`

const footerHTML = `<hr>
    <p class="disclaimer">This email was generated automatically by the Math Solver system.</p>`

const styleBlock = `<style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background-color: #f4f4f4; padding: 20px; border-radius: 5px; }
        .content { padding: 20px; }
        .info { background-color: #e9ecef; padding: 10px; border-radius: 3px; }
        .solution { background-color: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; }
        .error-box { background-color: #f8d7da; padding: 15px; border-left: 4px solid #dc3545; }
        .stats { background-color: #f8f9fa; padding: 15px; border-radius: 5px; }
        .disclaimer { font-size: 12px; color: #666; font-style: italic; }
    </style>`

// SolutionMail renders the "problem solved" notification.
func SolutionMail(to string, result *domain.Result, solutionURL string) port.OutboundMail {
	elapsed := time.Duration(result.SolveTimeMS) * time.Millisecond

	text := fmt.Sprintf(`Mathematical Problem Solved

Problem Details:
- File: %s
- Status: Successfully Solved
- Processing Time: %s
- Problem Type: %s

Solution:
%s

View Full Solution:
%s

%s
`, result.Name, elapsed, result.ProblemType, result.Solution, solutionURL, footerText)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    %s
</head>
<body>
    <div class="header"><h2>Mathematical Problem Solved</h2></div>
    <div class="content">
        <h3>Problem Details</h3>
        <div class="info">
            <p><strong>File:</strong> %s</p>
            <p><strong>Status:</strong> Successfully Solved</p>
            <p><strong>Processing Time:</strong> %s</p>
            <p><strong>Problem Type:</strong> %s</p>
        </div>
        <h3>Solution</h3>
        <div class="solution"><pre>%s</pre></div>
        <h3>View Full Solution</h3>
        <p><a href="%s" target="_blank">Click here to view the complete solution on GitHub</a></p>
        %s
    </div>
</body>
</html>`, styleBlock, html.EscapeString(result.Name), elapsed, result.ProblemType,
		html.EscapeString(result.Solution), solutionURL, footerHTML)

	return port.OutboundMail{
		To:       to,
		Subject:  fmt.Sprintf("Math Problem Solved: %s", result.Name),
		TextBody: text,
		HTMLBody: htmlBody,
	}
}

// ErrorMail renders the failure or rejection notification.
func ErrorMail(to, problemName, reason string) port.OutboundMail {
	now := time.Now().Format(time.RFC3339)

	text := fmt.Sprintf(`Mathematical Problem Processing Error

Error Details:
- File: %s
- Timestamp: %s

Error Message:
%s

Next Steps:
- Check if the file contains valid mathematical content
- Ensure the file format is supported
- Review the problem text for clarity
- Check system logs for additional details

%s
`, problemName, now, reason, footerText)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    %s
</head>
<body>
    <div class="header"><h2>Mathematical Problem Processing Error</h2></div>
    <div class="content">
        <h3>Error Details</h3>
        <p><strong>File:</strong> %s</p>
        <p><strong>Timestamp:</strong> %s</p>
        <h3>Error Message</h3>
        <div class="error-box"><pre>%s</pre></div>
        <h3>Next Steps</h3>
        <ul>
            <li>Check if the file contains valid mathematical content</li>
            <li>Ensure the file format is supported</li>
            <li>Review the problem text for clarity</li>
            <li>Check system logs for additional details</li>
        </ul>
        %s
    </div>
</body>
</html>`, styleBlock, html.EscapeString(problemName), now, html.EscapeString(reason), footerHTML)

	return port.OutboundMail{
		To:       to,
		Subject:  fmt.Sprintf("Math Problem Processing Error: %s", problemName),
		TextBody: text,
		HTMLBody: htmlBody,
	}
}

// StatusMail renders the periodic status report.
func StatusMail(to string, stats *domain.Stats) port.OutboundMail {
	lastRun := "Never"
	if stats.LastRun != nil {
		lastRun = stats.LastRun.Format(time.RFC3339)
	}
	lastSuccess := "Never"
	if stats.LastSuccess != nil {
		lastSuccess = stats.LastSuccess.Format(time.RFC3339)
	}

	lines := []string{
		fmt.Sprintf("- Total Runs: %d", stats.TotalRuns),
		fmt.Sprintf("- Successful Runs: %d", stats.SuccessfulRuns),
		fmt.Sprintf("- Failed Runs: %d", stats.FailedRuns),
		fmt.Sprintf("- Problems Solved: %d", stats.ProblemsSolved),
		fmt.Sprintf("- Problems Rejected: %d", stats.ProblemsRejected),
		fmt.Sprintf("- Problems Failed: %d", stats.ProblemsFailed),
		fmt.Sprintf("- Last Run: %s", lastRun),
		fmt.Sprintf("- Last Success: %s", lastSuccess),
	}

	text := fmt.Sprintf(`Math Solver Status Report

System Statistics:
%s

%s
`, strings.Join(lines, "\n"), footerText)

	var rows strings.Builder
	for _, l := range lines {
		label, value, _ := strings.Cut(strings.TrimPrefix(l, "- "), ": ")
		fmt.Fprintf(&rows, "            <p><strong>%s:</strong> %s</p>\n", label, value)
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    %s
</head>
<body>
    <div class="header"><h2>Math Solver Status Report</h2></div>
    <div class="content">
        <div class="stats">
            <h3>System Statistics</h3>
%s        </div>
        %s
    </div>
</body>
</html>`, styleBlock, rows.String(), footerHTML)

	return port.OutboundMail{
		To:       to,
		Subject:  fmt.Sprintf("Math Solver Status Report - %s", time.Now().Format("2006-01-02")),
		TextBody: text,
		HTMLBody: htmlBody,
	}
}

// TestMail renders the message sent by the connectivity test command.
func TestMail(to string) port.OutboundMail {
	now := time.Now().Format(time.RFC3339)
	return port.OutboundMail{
		To:       to,
		Subject:  "Math Solver Email Test",
		TextBody: fmt.Sprintf("Email delivery is working.\n\nSent at: %s\n\n%s\n", now, footerText),
		HTMLBody: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
    <p>Email delivery is working.</p>
    <p><strong>Sent at:</strong> %s</p>
    %s
</body>
</html>`, now, footerHTML),
	}
}
