// Package solver parses mathematical problem text and produces symbolic
// solutions: polynomial equations, derivatives, antiderivatives,
// simplification, and plain arithmetic.
package solver

import (
	"fmt"
	"strings"

	"mathsolver/internal/domain"
)

// Solver is the symbolic engine. It is stateless and safe for reuse.
type Solver struct{}

// New creates a Solver.
func New() *Solver {
	return &Solver{}
}

// Solve interprets the problem text and returns a solution. A nil error with
// a populated Solution means solved; any error means the problem was
// understood to be mathematical but could not be worked (a Failed outcome).
func (s *Solver) Solve(text string) (*domain.Solution, error) {
	cleaned := Preprocess(text)
	kind := Classify(cleaned)

	switch kind {
	case domain.ProblemLimit, domain.ProblemMatrix, domain.ProblemOptimization:
		return nil, fmt.Errorf("%s solving is not supported", kind)
	}

	exprs := ExtractExpressions(cleaned)
	if len(exprs) == 0 {
		return nil, domain.ErrNoExpressions
	}

	switch kind {
	case domain.ProblemEquation:
		return s.solveEquations(exprs)
	case domain.ProblemDerivative:
		return s.solveDerivatives(exprs)
	case domain.ProblemIntegral:
		return s.solveIntegrals(exprs)
	case domain.ProblemSimplify:
		return s.solveSimplify(exprs)
	default:
		return s.solveGeneral(exprs)
	}
}

func (s *Solver) solveEquations(exprs []string) (*domain.Solution, error) {
	sol := &domain.Solution{ProblemType: domain.ProblemEquation}
	var b strings.Builder
	b.WriteString("Equation Solutions:\n")

	solvedAny := false
	var lastErr error
	for _, raw := range exprs {
		left, right, found := strings.Cut(raw, "=")
		if !found {
			continue
		}
		lhs, err := Parse(strings.TrimSpace(left))
		if err != nil {
			lastErr = err
			continue
		}
		rhs, err := Parse(strings.TrimSpace(right))
		if err != nil {
			lastErr = err
			continue
		}
		diff := Binary{Op: "-", L: lhs, R: rhs}

		vars := freeVars(diff)
		if len(vars) == 0 {
			lastErr = fmt.Errorf("equation %q has no variable to solve for", raw)
			continue
		}
		if len(vars) > 1 {
			lastErr = fmt.Errorf("multivariate equation %q is not supported", raw)
			continue
		}
		v := vars[0]

		poly, ok := extractPoly(diff, v)
		if !ok {
			lastErr = fmt.Errorf("equation %q is not polynomial in %s", raw, v)
			continue
		}
		roots, err := solvePoly(poly)
		if err != nil {
			lastErr = fmt.Errorf("solving %q: %w", raw, err)
			continue
		}

		solvedAny = true
		sol.Expressions = append(sol.Expressions, raw)
		fmt.Fprintf(&b, "\nFor variable %s:\n", v)
		rootStrs := make([]string, 0, len(roots))
		for _, r := range roots {
			fmt.Fprintf(&b, "  %s = %s\n", v, r)
			rootStrs = append(rootStrs, r.String())
		}
		sol.Steps = append(sol.Steps,
			fmt.Sprintf("Solving %s for %s: %s = %s", raw, v, v, strings.Join(rootStrs, ", ")))
	}

	if !solvedAny {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.ErrUnsolvable
	}
	sol.Text = b.String()
	return sol, nil
}

func (s *Solver) solveDerivatives(exprs []string) (*domain.Solution, error) {
	sol := &domain.Solution{ProblemType: domain.ProblemDerivative}
	var b strings.Builder
	b.WriteString("Derivative Solutions:\n\n")

	solvedAny := false
	var lastErr error
	for _, raw := range exprs {
		e, err := Parse(strings.TrimSpace(raw))
		if err != nil {
			lastErr = err
			continue
		}
		vars := freeVars(e)
		if len(vars) == 0 {
			continue
		}
		for _, v := range vars {
			d, err := Differentiate(e, v)
			if err != nil {
				lastErr = err
				continue
			}
			solvedAny = true
			sol.Expressions = append(sol.Expressions, raw)
			step := fmt.Sprintf("d/d%s(%s) = %s", v, e, d)
			fmt.Fprintf(&b, "%s\n", step)
			sol.Steps = append(sol.Steps, step)
		}
	}

	if !solvedAny {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.ErrUnsolvable
	}
	sol.Text = b.String()
	return sol, nil
}

func (s *Solver) solveIntegrals(exprs []string) (*domain.Solution, error) {
	sol := &domain.Solution{ProblemType: domain.ProblemIntegral}
	var b strings.Builder
	b.WriteString("Integral Solutions:\n\n")

	solvedAny := false
	var lastErr error
	for _, raw := range exprs {
		e, err := Parse(strings.TrimSpace(raw))
		if err != nil {
			lastErr = err
			continue
		}
		vars := freeVars(e)
		if len(vars) == 0 {
			vars = []string{"x"}
		}
		for _, v := range vars {
			in, err := Integrate(e, v)
			if err != nil {
				lastErr = err
				continue
			}
			solvedAny = true
			sol.Expressions = append(sol.Expressions, raw)
			step := fmt.Sprintf("integral of %s d%s = %s + C", e, v, in)
			fmt.Fprintf(&b, "%s\n", step)
			sol.Steps = append(sol.Steps, step)
		}
	}

	if !solvedAny {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.ErrUnsolvable
	}
	sol.Text = b.String()
	return sol, nil
}

func (s *Solver) solveSimplify(exprs []string) (*domain.Solution, error) {
	sol := &domain.Solution{ProblemType: domain.ProblemSimplify}
	var b strings.Builder
	b.WriteString("Simplified Expressions:\n\n")

	solvedAny := false
	var lastErr error
	for _, raw := range exprs {
		e, err := Parse(strings.TrimSpace(raw))
		if err != nil {
			lastErr = err
			continue
		}
		simplified := Simplify(e)
		solvedAny = true
		sol.Expressions = append(sol.Expressions, raw)
		step := fmt.Sprintf("%s = %s", e, simplified)
		fmt.Fprintf(&b, "%s\n", step)
		sol.Steps = append(sol.Steps, step)
	}

	if !solvedAny {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.ErrUnsolvable
	}
	sol.Text = b.String()
	return sol, nil
}

// solveGeneral evaluates closed expressions numerically and simplifies
// everything else.
func (s *Solver) solveGeneral(exprs []string) (*domain.Solution, error) {
	sol := &domain.Solution{ProblemType: domain.ProblemGeneral}
	var b strings.Builder
	b.WriteString("General solution:\n")

	solvedAny := false
	var lastErr error
	for _, raw := range exprs {
		e, err := Parse(strings.TrimSpace(raw))
		if err != nil {
			lastErr = err
			continue
		}
		var step string
		if v, err := eval(e); err == nil {
			step = fmt.Sprintf("%s = %s", e, formatNum(v))
		} else {
			step = fmt.Sprintf("%s = %s", e, Simplify(e))
		}
		solvedAny = true
		sol.Expressions = append(sol.Expressions, raw)
		fmt.Fprintf(&b, "%s\n", step)
		sol.Steps = append(sol.Steps, step)
	}

	if !solvedAny {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, domain.ErrUnsolvable
	}
	sol.Text = b.String()
	return sol, nil
}
