package port

import (
	"context"

	"mathsolver/internal/domain"
)

// TextExtractor turns a submission's bytes into problem text. PDF inputs use
// the text layer, images go through OCR, text inputs pass through.
type TextExtractor interface {
	Extract(ctx context.Context, sub *domain.Submission) (string, error)
}
