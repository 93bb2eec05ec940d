// Package extract turns downloaded problem files into plain text: direct
// decoding for text files, text-layer extraction for PDFs, and OCR for
// images.
package extract

import (
	"context"
	"fmt"

	"mathsolver/internal/domain"
)

// Extractor dispatches by file format to the right extraction strategy.
type Extractor struct {
	maxPDFPages  int
	ocrLanguages []string
}

// New builds an Extractor. maxPDFPages caps how many PDF pages are read;
// ocrLanguages are Tesseract language codes tried on images.
func New(maxPDFPages int, ocrLanguages []string) *Extractor {
	if maxPDFPages <= 0 {
		maxPDFPages = 10
	}
	if len(ocrLanguages) == 0 {
		ocrLanguages = []string{"eng", "ita"}
	}
	return &Extractor{maxPDFPages: maxPDFPages, ocrLanguages: ocrLanguages}
}

// Extract returns the text content of the submission. The submission's
// Content field must already hold the downloaded bytes.
func (e *Extractor) Extract(ctx context.Context, sub *domain.Submission) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case sub.Format.IsText():
		return fromText(sub.Content)
	case sub.Format == domain.FormatPDF:
		return e.fromPDF(sub.Content)
	case sub.Format.IsImage():
		return e.fromImage(sub.Content)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, sub.Format)
	}
}
