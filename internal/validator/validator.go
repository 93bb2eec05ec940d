// Package validator gates problem files before they reach the solver:
// size and format checks on the file, then content filtering and a
// mathematical-content score on the extracted text.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"mathsolver/internal/domain"
)

// mathKeywords covers the English mathematical vocabulary, weighted by
// length when scoring so specific terms count more than generic ones.
var mathKeywords = []string{
	// Basic terms
	"solve", "equation", "calculate", "find", "prove", "show",
	"determine", "compute", "evaluate", "simplify",

	// Algebra
	"algebra", "polynomial", "quadratic", "linear", "variable",
	"coefficient", "factor", "expand", "expression",

	// Calculus
	"calculus", "derivative", "integral", "limit", "continuity",
	"differentiate", "integrate", "optimization", "chain rule",

	// Geometry
	"geometry", "triangle", "circle", "angle", "area", "volume",
	"perimeter", "theorem", "proof", "coordinate", "vector",

	// Trigonometry
	"trigonometry", "sin", "cos", "tan", "sine", "cosine", "tangent",
	"radian", "degree", "amplitude", "period", "frequency",

	// Statistics and probability
	"statistics", "probability", "mean", "median", "mode", "variance",
	"standard deviation", "distribution", "sample", "population",
	"correlation", "regression", "hypothesis",

	// Advanced topics
	"matrix", "determinant", "eigenvalue", "eigenvector", "linear algebra",
	"differential equation", "partial derivative", "series", "sequence",
	"convergence", "divergence", "fourier", "laplace",

	// Symbols and notation
	"∫", "∑", "∏", "∂", "∇", "∆", "lim", "max", "min", "log", "ln",
	"√", "∞", "≤", "≥", "≠", "≈", "∈", "∉", "⊂", "⊆", "∪", "∩",

	// Units
	"meter", "centimeter", "kilometer", "gram", "kilogram", "second",
	"minute", "hour", "degree celsius", "fahrenheit", "kelvin",
}

// italianKeywords extends the vocabulary for Italian problem statements.
var italianKeywords = []string{
	"risolvere", "equazione", "calcolare", "trovare", "dimostrare",
	"determinare", "semplificare", "algebra", "geometria", "calcolo",
	"derivata", "integrale", "limite", "funzione", "grafico",
	"triangolo", "cerchio", "angolo", "area", "volume", "perimetro",
	"statistica", "probabilità", "media", "mediana", "varianza",
	"matrice", "determinante", "vettore", "polinomio", "radice",
}

// forbiddenKeywords block a file outright regardless of its math score.
var forbiddenKeywords = []string{
	"hack", "crack", "exploit", "malware", "virus", "password",
	"personal", "private", "confidential", "secret", "illegal",
	"violence", "weapon", "drug", "adult", "explicit",
}

// symbolPatterns recognize mathematical structure that keyword matching
// misses; each hit counts double when scoring.
var symbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[+\-*/=]\s*\d+`), // arithmetic
	regexp.MustCompile(`[xy]\s*[+\-]\s*\d+`),   // variables with numbers
	regexp.MustCompile(`\b\d+x\b`),             // coefficient notation
	regexp.MustCompile(`[a-z]\(\w+\)`),         // function notation
	regexp.MustCompile(`\b\d+/\d+\b`),          // fractions
	regexp.MustCompile(`\^\d+`),                // exponents
	regexp.MustCompile(`√\d+`),                 // square roots
	regexp.MustCompile(`∫|∑|∏|∂|∇|∆`),
	regexp.MustCompile(`[≤≥≠≈∈∉⊂⊆∪∩]`),
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Validator applies size, format, and content checks to problem files.
type Validator struct {
	maxFileSize int64
	minScore    float64
	keywords    []string
}

// New builds a Validator. maxFileSize is in bytes; minScore is the minimum
// mathematical-content score in [0, 1] a file must reach.
func New(maxFileSize int64, minScore float64) *Validator {
	keywords := make([]string, 0, len(mathKeywords)+len(italianKeywords))
	keywords = append(keywords, mathKeywords...)
	keywords = append(keywords, italianKeywords...)
	return &Validator{
		maxFileSize: maxFileSize,
		minScore:    minScore,
		keywords:    keywords,
	}
}

// ValidateFile checks the file metadata before any download happens.
func (v *Validator) ValidateFile(f domain.RemoteFile) error {
	if f.Size > v.maxFileSize {
		return fmt.Errorf("%w: %.1fMB (max %.1fMB)", domain.ErrFileTooLarge,
			float64(f.Size)/(1024*1024), float64(v.maxFileSize)/(1024*1024))
	}
	if _, ok := domain.FormatFromPath(f.Path); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, f.Name)
	}
	return nil
}

// ValidateContent checks the extracted text: it must be non-empty, contain
// no forbidden keywords, and score at least the configured minimum.
func (v *Validator) ValidateContent(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyContent
	}
	lower := strings.ToLower(text)
	for _, kw := range forbiddenKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Errorf("%w: %q", domain.ErrForbiddenContent, kw)
		}
	}
	if score := v.Score(text); score < v.minScore {
		return fmt.Errorf("%w (score: %.2f)", domain.ErrNotMathematical, score)
	}
	return nil
}

// Score estimates how mathematical the text is, from 0 to 1. Keywords score
// proportionally to their length, structural patterns count double, and the
// total is normalized against half the word count.
func (v *Validator) Score(text string) float64 {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)
	words := wordPattern.FindAllString(lower, -1)
	if len(words) == 0 {
		return 0
	}

	var keywordScore float64
	for _, kw := range v.keywords {
		if n := strings.Count(lower, kw); n > 0 {
			weight := float64(len(kw))/10.0 + 1.0
			keywordScore += float64(n) * weight
		}
	}

	var symbolScore float64
	for _, p := range symbolPatterns {
		symbolScore += float64(len(p.FindAllString(text, -1))) * 2
	}

	maxPossible := float64(len(words)) * 0.5
	score := (keywordScore + symbolScore) / maxPossible
	if score > 1 {
		score = 1
	}
	return score
}
