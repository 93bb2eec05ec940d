package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/domain"
)

func TestSolveQuadraticEquation(t *testing.T) {
	s := New()

	sol, err := s.Solve("Solve x^2 - 9 = 0")
	require.NoError(t, err)
	require.NotNil(t, sol)

	assert.Equal(t, domain.ProblemEquation, sol.ProblemType)
	assert.Contains(t, sol.Text, "For variable x:")
	assert.Contains(t, sol.Text, "x = 3")
	assert.Contains(t, sol.Text, "x = -3")
}

func TestSolveLinearEquation(t *testing.T) {
	s := New()

	sol, err := s.Solve("Solve the equation 2x + 4 = 0")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemEquation, sol.ProblemType)
	assert.Contains(t, sol.Text, "x = -2")
}

func TestSolveComplexRoots(t *testing.T) {
	s := New()

	sol, err := s.Solve("Solve x^2 + 1 = 0")
	require.NoError(t, err)

	assert.Contains(t, sol.Text, "i")
}

func TestSolveDerivative(t *testing.T) {
	s := New()

	sol, err := s.Solve("Find the derivative of x^3 + 2x")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemDerivative, sol.ProblemType)
	assert.Contains(t, sol.Text, "3*x^2 + 2")
}

func TestSolveIntegral(t *testing.T) {
	s := New()

	sol, err := s.Solve("Compute the integral of 2x + 1")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemIntegral, sol.ProblemType)
	assert.Contains(t, sol.Text, "x^2")
	assert.Contains(t, sol.Text, "+ C")
}

func TestSolveSimplify(t *testing.T) {
	s := New()

	sol, err := s.Solve("Simplify 2x + 3x")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemSimplify, sol.ProblemType)
	assert.Contains(t, sol.Text, "5*x")
}

func TestSolveArithmetic(t *testing.T) {
	s := New()

	sol, err := s.Solve("What is 2 + 3 * 4?")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemSimplify, sol.ProblemType)
	assert.Contains(t, sol.Text, "= 14")
}

func TestSolveGeneral(t *testing.T) {
	s := New()

	sol, err := s.Solve("What is sqrt(16)?")
	require.NoError(t, err)

	assert.Equal(t, domain.ProblemGeneral, sol.ProblemType)
	assert.Contains(t, sol.Text, "= 4")
}

func TestSolveUnicodeInput(t *testing.T) {
	s := New()

	sol, err := s.Solve("Risolvi x² − 9 = 0")
	require.NoError(t, err)

	assert.Contains(t, sol.Text, "x = 3")
	assert.Contains(t, sol.Text, "x = -3")
}

func TestSolveUnsupportedTypes(t *testing.T) {
	s := New()

	for _, text := range []string{
		"Find the limit of 1/x as x approaches 0",
		"Compute the determinant of the matrix [[1, 2], [3, 4]]",
		"Maximize the function x^2 - 4x",
	} {
		_, err := s.Solve(text)
		assert.Error(t, err, text)
		assert.Contains(t, err.Error(), "not supported")
	}
}

func TestSolveNoExpressions(t *testing.T) {
	s := New()

	_, err := s.Solve("hello there, nothing to see")
	assert.Error(t, err)
}

func TestParsePrecedence(t *testing.T) {
	e, err := Parse("2 + 3 * 4 ^ 2")
	require.NoError(t, err)

	v, err := eval(e)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, v, 1e-9)
}

func TestParseImplicitMultiplication(t *testing.T) {
	e, err := Parse("2x(x + 1)")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"x"}, freeVars(e))

	d, err := Differentiate(e, "x")
	require.NoError(t, err)
	assert.Contains(t, Simplify(d).String(), "4*x")
}

func TestParseRightAssociativePower(t *testing.T) {
	e, err := Parse("2^3^2")
	require.NoError(t, err)

	v, err := eval(e)
	require.NoError(t, err)
	assert.InDelta(t, 512.0, v, 1e-9)
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "2 +", "(1 + 2", "* 3", "sin()"} {
		_, err := Parse(input)
		assert.Error(t, err, input)
	}
}

func TestSimplifyIdentities(t *testing.T) {
	cases := map[string]string{
		"x + 0":     "x",
		"1 * x":     "x",
		"x ^ 1":     "x",
		"x ^ 0":     "1",
		"0 * x":     "0",
		"2 + 3":     "5",
		"x + x + x": "3*x",
	}
	for input, want := range cases {
		e, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, Simplify(e).String(), input)
	}
}

func TestDifferentiateChainRule(t *testing.T) {
	e, err := Parse("sin(x^2)")
	require.NoError(t, err)

	d, err := Differentiate(e, "x")
	require.NoError(t, err)
	assert.Contains(t, d.String(), "cos(x^2)")
}

func TestIntegratePowerRule(t *testing.T) {
	e, err := Parse("x^2")
	require.NoError(t, err)

	in, err := Integrate(e, "x")
	require.NoError(t, err)

	d, err := Differentiate(in, "x")
	require.NoError(t, err)
	assert.Equal(t, "x^2", Simplify(d).String())
}

func TestIntegrateReciprocal(t *testing.T) {
	e, err := Parse("1/x")
	require.NoError(t, err)

	in, err := Integrate(e, "x")
	require.NoError(t, err)
	assert.Contains(t, in.String(), "ln(x)")
}

func TestClassify(t *testing.T) {
	cases := map[string]domain.ProblemType{
		"Find the derivative of x^2":      domain.ProblemDerivative,
		"Calcola la derivata di x^2":      domain.ProblemDerivative,
		"Evaluate the integral of sin(x)": domain.ProblemIntegral,
		"Solve 3x - 6 = 0":                domain.ProblemEquation,
		"Simplify (x+1)(x-1)":             domain.ProblemSimplify,
		"What is 7 * 6":                   domain.ProblemSimplify,
		"What is sqrt(9)":                 domain.ProblemGeneral,
	}
	for text, want := range cases {
		assert.Equal(t, want, Classify(Preprocess(text)), text)
	}
}

func TestExtractExpressions(t *testing.T) {
	exprs := ExtractExpressions(Preprocess("Solve x^2 - 9 = 0 please"))
	require.NotEmpty(t, exprs)
	assert.Contains(t, exprs[0], "=")
}

func TestSolvePolyHigherDegree(t *testing.T) {
	// x^3 - 6x^2 + 11x - 6 has roots 1, 2, 3.
	s := New()

	sol, err := s.Solve("Solve x^3 - 6x^2 + 11x - 6 = 0")
	require.NoError(t, err)

	assert.Contains(t, sol.Text, "x = 3")
	assert.Contains(t, sol.Text, "x = 2")
	assert.Contains(t, sol.Text, "x = 1")
}
