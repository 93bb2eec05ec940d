// Package service contains the processing pipeline and the scheduler that
// drives it: list new problem files, validate, extract text, solve, publish
// the solution, and notify by email.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"mathsolver/internal/domain"
	"mathsolver/internal/email"
	"mathsolver/internal/port"
	"mathsolver/internal/solver"
	"mathsolver/internal/validator"
)

// Processor runs the full pipeline for one batch of problem files.
type Processor struct {
	source      port.ProblemSource
	submissions port.SubmissionRepository
	runs        port.RunRepository
	validator   *validator.Validator
	extractor   port.TextExtractor
	solver      *solver.Solver
	mailer      port.MailTransport
	archive     port.ArtifactStore // nil when archiving is disabled
	recipient   string
	repoWebBase string // e.g. https://github.com/owner/name/blob/main
}

// NewProcessor wires the pipeline. archive may be nil.
func NewProcessor(
	source port.ProblemSource,
	submissions port.SubmissionRepository,
	runs port.RunRepository,
	v *validator.Validator,
	extractor port.TextExtractor,
	s *solver.Solver,
	mailer port.MailTransport,
	archive port.ArtifactStore,
	recipient string,
	repoWebBase string,
) *Processor {
	return &Processor{
		source:      source,
		submissions: submissions,
		runs:        runs,
		validator:   v,
		extractor:   extractor,
		solver:      s,
		mailer:      mailer,
		archive:     archive,
		recipient:   recipient,
		repoWebBase: strings.TrimSuffix(repoWebBase, "/"),
	}
}

// ProcessAll performs one check-and-process cycle: every unseen file in the
// upload folder goes through the pipeline exactly once. The returned run is
// always non-nil and carries the per-outcome counts.
func (p *Processor) ProcessAll(ctx context.Context, trigger string) (*domain.Run, error) {
	run := &domain.Run{
		ID:        uuid.New(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
	}
	if err := p.runs.Start(ctx, run); err != nil {
		return run, fmt.Errorf("record run start: %w", err)
	}

	log.Printf("processor: starting %s run %s", trigger, run.ID)

	files, err := p.source.ListProblems(ctx)
	if err != nil {
		run.Error = err.Error()
		p.finishRun(ctx, run)
		return run, fmt.Errorf("list problems: %w", err)
	}

	unseen, err := p.submissions.FilterUnseen(ctx, files)
	if err != nil {
		run.Error = err.Error()
		p.finishRun(ctx, run)
		return run, fmt.Errorf("filter seen files: %w", err)
	}
	run.FilesFound = len(unseen)

	if len(unseen) == 0 {
		log.Printf("processor: no new files found")
		p.finishRun(ctx, run)
		return run, nil
	}

	log.Printf("processor: found %d new files to process", len(unseen))

	for _, f := range unseen {
		res, err := p.ProcessOne(ctx, f)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadySeen) {
				continue
			}
			log.Printf("processor: %s: %v", f.Name, err)
			run.Failed++
			continue
		}
		switch res.Outcome {
		case domain.OutcomeSolved:
			run.Solved++
		case domain.OutcomeRejected:
			run.Rejected++
		default:
			run.Failed++
		}
	}

	p.finishRun(ctx, run)
	log.Printf("processor: run %s completed: %d solved, %d rejected, %d failed",
		run.ID, run.Solved, run.Rejected, run.Failed)
	return run, nil
}

// ProcessOne takes a single file through the pipeline. The claim makes the
// path seen before any work happens, so a file is processed at most once
// even across overlapping triggers or restarts.
func (p *Processor) ProcessOne(ctx context.Context, f domain.RemoteFile) (*domain.Result, error) {
	sub := &domain.Submission{Path: f.Path, Name: f.Name, Size: f.Size, SHA: f.SHA}
	if format, ok := domain.FormatFromPath(f.Path); ok {
		sub.Format = format
	}

	res, err := p.submissions.Claim(ctx, sub)
	if err != nil {
		return nil, err
	}

	log.Printf("processor: processing %s", f.Path)
	started := time.Now()

	outcome := p.run(ctx, f, sub, res)
	res.SolveTimeMS = time.Since(started).Milliseconds()
	res.Outcome = outcome.outcome
	res.Reason = outcome.reason

	if err := p.submissions.Finish(ctx, res); err != nil {
		log.Printf("processor: record outcome for %s: %v", f.Path, err)
	}

	p.notify(ctx, res)
	return res, nil
}

// SolveDirect runs the validate, extract, and solve stages on content
// supplied by a caller, bypassing the repository, the seen-set, and email.
// It backs the direct upload endpoint, where the result goes straight back
// to the caller instead of being published.
func (p *Processor) SolveDirect(ctx context.Context, fileName string, content []byte) (*domain.Solution, error) {
	f := domain.RemoteFile{Path: fileName, Name: fileName, Size: int64(len(content))}
	if err := p.validator.ValidateFile(f); err != nil {
		return nil, err
	}

	format, _ := domain.FormatFromPath(fileName)
	sub := &domain.Submission{
		Path:    fileName,
		Name:    fileName,
		Format:  format,
		Size:    f.Size,
		Content: content,
	}

	text, err := p.extractor.Extract(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if err := p.validator.ValidateContent(text); err != nil {
		return nil, err
	}

	return p.solver.Solve(text)
}

type stepResult struct {
	outcome domain.Outcome
	reason  string
}

func rejected(reason string) stepResult {
	return stepResult{outcome: domain.OutcomeRejected, reason: reason}
}

func failed(reason string) stepResult {
	return stepResult{outcome: domain.OutcomeFailed, reason: reason}
}

// run executes the pipeline steps, mutating res as it learns more about the
// submission. The returned stepResult is the final outcome.
func (p *Processor) run(ctx context.Context, f domain.RemoteFile, sub *domain.Submission, res *domain.Result) stepResult {
	if err := p.validator.ValidateFile(f); err != nil {
		return rejected(err.Error())
	}

	downloaded, err := p.source.Download(ctx, f)
	if err != nil {
		return failed(fmt.Sprintf("download failed: %v", err))
	}
	sub.Content = downloaded.Content
	sub.Size = downloaded.Size
	sub.Format = downloaded.Format
	res.Format = downloaded.Format
	res.Size = downloaded.Size

	p.archiveProblem(ctx, sub)

	text, err := p.extractor.Extract(ctx, sub)
	if err != nil {
		return failed(fmt.Sprintf("text extraction failed: %v", err))
	}

	if err := p.validator.ValidateContent(text); err != nil {
		return rejected(err.Error())
	}

	solution, err := p.solver.Solve(text)
	if err != nil {
		return failed(fmt.Sprintf("solver: %v", err))
	}
	res.ProblemType = solution.ProblemType
	res.Solution = solution.Text

	doc := formatSolutionDocument(sub.Name, text, solution, res.CreatedAt)
	solutionPath, err := p.source.PublishSolution(ctx, sub.Name, doc)
	if err != nil {
		return failed(fmt.Sprintf("publish solution: %v", err))
	}
	res.SolutionPath = solutionPath

	p.archiveSolution(ctx, solutionPath, doc)

	entry := domain.IndexEntry{
		ProblemName:    sub.Name,
		Status:         "Solved",
		SolutionPath:   p.solutionURL(solutionPath),
		ProcessingTime: time.Since(res.CreatedAt),
	}
	if err := p.source.UpdateIndexPage(ctx, entry); err != nil {
		// The solution is already published; a stale index page is not
		// worth failing the submission over.
		log.Printf("processor: update index page for %s: %v", sub.Name, err)
	}

	return stepResult{outcome: domain.OutcomeSolved}
}

// notify sends exactly one email per submission and stamps the time it went
// out. Delivery failure is logged, not retried; the outcome is already
// recorded.
func (p *Processor) notify(ctx context.Context, res *domain.Result) {
	var m port.OutboundMail
	if res.Outcome == domain.OutcomeSolved {
		m = email.SolutionMail(p.recipient, res, p.solutionURL(res.SolutionPath))
	} else {
		m = email.ErrorMail(p.recipient, res.Name, res.Reason)
	}

	if err := p.mailer.Send(ctx, m); err != nil {
		log.Printf("processor: notification for %s failed: %v", res.Name, err)
		return
	}

	now := time.Now().UTC()
	res.NotifiedAt = &now
	if err := p.submissions.MarkNotified(ctx, res.ID, now); err != nil {
		log.Printf("processor: mark %s notified: %v", res.Name, err)
	}
}

func (p *Processor) archiveProblem(ctx context.Context, sub *domain.Submission) {
	if p.archive == nil {
		return
	}
	if err := p.archive.Put(ctx, sub.Path, sub.Content, contentTypeFor(sub.Format)); err != nil {
		log.Printf("processor: archive %s: %v", sub.Path, err)
	}
}

func (p *Processor) archiveSolution(ctx context.Context, path, doc string) {
	if p.archive == nil {
		return
	}
	if err := p.archive.Put(ctx, path, []byte(doc), "text/markdown"); err != nil {
		log.Printf("processor: archive %s: %v", path, err)
	}
}

func (p *Processor) solutionURL(solutionPath string) string {
	if p.repoWebBase == "" || solutionPath == "" {
		return solutionPath
	}
	return p.repoWebBase + "/" + solutionPath
}

func contentTypeFor(f domain.FileFormat) string {
	switch f {
	case domain.FormatPDF:
		return "application/pdf"
	case domain.FormatJPG:
		return "image/jpeg"
	case domain.FormatPNG:
		return "image/png"
	case domain.FormatMD:
		return "text/markdown"
	default:
		return "text/plain"
	}
}

func (p *Processor) finishRun(ctx context.Context, run *domain.Run) {
	if err := p.runs.Finish(ctx, run); err != nil {
		log.Printf("processor: record run finish: %v", err)
	}
}
