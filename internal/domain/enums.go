package domain

import (
	"path"
	"strings"
)

// FileFormat represents the allowed problem file formats.
type FileFormat string

const (
	FormatPDF FileFormat = "pdf"
	FormatJPG FileFormat = "jpg"
	FormatPNG FileFormat = "png"
	FormatTXT FileFormat = "txt"
	FormatMD  FileFormat = "md"
)

// AllowedExtensions maps file extensions (without dot) to FileFormat.
var AllowedExtensions = map[string]FileFormat{
	"pdf":  FormatPDF,
	"jpg":  FormatJPG,
	"jpeg": FormatJPG,
	"png":  FormatPNG,
	"txt":  FormatTXT,
	"md":   FormatMD,
}

// FormatFromPath returns the FileFormat for a file path, or false if the
// extension is not supported.
func FormatFromPath(p string) (FileFormat, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	f, ok := AllowedExtensions[ext]
	return f, ok
}

// IsImage reports whether the format requires OCR to extract text.
func (f FileFormat) IsImage() bool {
	return f == FormatJPG || f == FormatPNG
}

// IsText reports whether the format carries its text content directly.
func (f FileFormat) IsText() bool {
	return f == FormatTXT || f == FormatMD
}

// Outcome represents the lifecycle of a processed submission.
type Outcome string

const (
	OutcomeProcessing Outcome = "processing"
	OutcomeSolved     Outcome = "solved"
	OutcomeRejected   Outcome = "rejected"
	OutcomeFailed     Outcome = "failed"
)

// ProblemType classifies the kind of mathematical problem detected in a
// submission.
type ProblemType string

const (
	ProblemEquation     ProblemType = "equation"
	ProblemDerivative   ProblemType = "derivative"
	ProblemIntegral     ProblemType = "integral"
	ProblemLimit        ProblemType = "limit"
	ProblemMatrix       ProblemType = "matrix"
	ProblemSimplify     ProblemType = "simplify"
	ProblemOptimization ProblemType = "optimization"
	ProblemGeneral      ProblemType = "general"
	ProblemUnknown      ProblemType = "unknown"
)
