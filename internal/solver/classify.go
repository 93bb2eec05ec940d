package solver

import (
	"regexp"
	"strings"

	"mathsolver/internal/domain"
)

// symbolReplacements normalizes unicode math notation to the ASCII forms the
// parser understands.
var symbolReplacements = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"²", "^2",
	"³", "^3",
	"√", "sqrt",
	"∞", "oo",
	"≤", "<=",
	"≥", ">=",
	"≠", "!=",
	"±", "+/-",
	"π", "pi",
	"θ", "theta",
	"Δ", "Delta",
	"∂", "d",
	"−", "-",
	"·", "*",
)

var problemPatterns = []struct {
	kind    domain.ProblemType
	pattern *regexp.Regexp
}{
	{domain.ProblemDerivative, regexp.MustCompile(`(?i)derivative|differentiate|d/dx|derivata`)},
	{domain.ProblemIntegral, regexp.MustCompile(`(?i)integral|integrate|∫|integrale`)},
	{domain.ProblemLimit, regexp.MustCompile(`(?i)\blimit\b|\blim\b|approaches|limite`)},
	{domain.ProblemMatrix, regexp.MustCompile(`(?i)matrix|determinant|eigenvalue|matrice`)},
	{domain.ProblemOptimization, regexp.MustCompile(`(?i)maxim(um|i[zs]e)|minim(um|i[zs]e)|optimi[zs]e|extrema|massimo|minimo`)},
	{domain.ProblemSimplify, regexp.MustCompile(`(?i)simplify|reduce|factor|expand|semplificare`)},
	{domain.ProblemEquation, regexp.MustCompile(`(?i)(solve|find|calculate|risolvere|trovare)[^=]*=`)},
}

var (
	instructionWords = regexp.MustCompile(`(?i)\b(solve|find|calculate|determine|compute|evaluate|simplify|differentiate|integrate|the|of|for|with respect to|risolvere|trovare|calcolare)\b`)
	equationPattern  = regexp.MustCompile(`[a-zA-Z0-9(][a-zA-Z0-9+\-*/^().\s]*=\s*[a-zA-Z0-9+\-*/^().\s]+`)
	exprPatterns     = []*regexp.Regexp{
		regexp.MustCompile(`\([a-zA-Z0-9+\-*/^().\s]+\)\s*\([a-zA-Z0-9+\-*/^().\s]+\)`), // products like (a+b)(a-b)
		regexp.MustCompile(`[a-zA-Z0-9(][a-zA-Z0-9+\-*/^().\s]*[a-zA-Z0-9)]`),
	}
	variableRef = regexp.MustCompile(`[a-z]`)
)

// Preprocess collapses whitespace and normalizes unicode math notation.
func Preprocess(text string) string {
	text = symbolReplacements.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// Classify identifies the kind of problem the text asks for. Keyword patterns
// win over structure; an unmatched text with an "=" and a variable is treated
// as an equation, one with arithmetic operators as simplification.
func Classify(text string) domain.ProblemType {
	for _, p := range problemPatterns {
		if p.pattern.MatchString(text) {
			return p.kind
		}
	}
	if strings.Contains(text, "=") && variableRef.MatchString(strings.ToLower(text)) {
		return domain.ProblemEquation
	}
	if strings.ContainsAny(text, "+-*/^") {
		return domain.ProblemSimplify
	}
	return domain.ProblemGeneral
}

var alphaWord = regexp.MustCompile(`[A-Za-z]{2,}`)

// ExtractExpressions pulls candidate mathematical expressions out of prose.
// Equations take priority; standalone expressions are the fallback. Words
// that are not function names act as expression boundaries so prose never
// leaks into the parser.
func ExtractExpressions(text string) []string {
	cleaned := instructionWords.ReplaceAllString(text, " ")
	cleaned = alphaWord.ReplaceAllStringFunc(cleaned, func(w string) string {
		if knownFuncs[strings.ToLower(w)] || w == "pi" || w == "oo" {
			return w
		}
		return " ; "
	})
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = strings.Trim(s, " .,;:")
		if len(s) <= 2 {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, m := range equationPattern.FindAllString(cleaned, -1) {
		add(m)
	}
	if len(out) > 0 {
		return out
	}

	for _, p := range exprPatterns {
		for _, m := range p.FindAllString(cleaned, -1) {
			add(m)
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}
