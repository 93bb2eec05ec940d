package solver

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Expr is a node in a parsed mathematical expression tree.
type Expr interface {
	// String renders the expression in conventional infix notation.
	String() string
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

// Var is a free symbol such as x or y.
type Var struct {
	Name string
}

// Unary is a unary operation; only negation is produced by the parser.
type Unary struct {
	Op string // "-"
	X  Expr
}

// Binary is a binary operation: + - * / ^.
type Binary struct {
	Op   string
	L, R Expr
}

// Call is a function application such as sin(x) or sqrt(2).
type Call struct {
	Name string
	Arg  Expr
}

func (n Num) String() string { return formatNum(n.Value) }
func (v Var) String() string { return v.Name }

func (u Unary) String() string {
	if needsParens(u.X, 25, false) {
		return "-(" + u.X.String() + ")"
	}
	return "-" + u.X.String()
}

func (b Binary) String() string {
	prec := opPrecedence(b.Op)
	l := b.L.String()
	if needsParens(b.L, prec, false) {
		l = "(" + l + ")"
	}
	r := b.R.String()
	// Subtraction, division, and exponentiation bind their right side tighter.
	if needsParens(b.R, prec, b.Op == "-" || b.Op == "/" || b.Op == "^") {
		r = "(" + r + ")"
	}
	switch b.Op {
	case "+", "-":
		return l + " " + b.Op + " " + r
	default:
		return l + b.Op + r
	}
}

func (c Call) String() string {
	return c.Name + "(" + c.Arg.String() + ")"
}

func opPrecedence(op string) int {
	switch op {
	case "+", "-":
		return 10
	case "*", "/":
		return 20
	case "^":
		return 30
	default:
		return 0
	}
}

func needsParens(e Expr, parentPrec int, right bool) bool {
	switch x := e.(type) {
	case Binary:
		p := opPrecedence(x.Op)
		if p < parentPrec {
			return true
		}
		return p == parentPrec && right
	case Unary:
		return 25 < parentPrec
	case Num:
		return x.Value < 0 && parentPrec >= 20
	default:
		return false
	}
}

// formatNum renders a float the way a person writes it: integers without a
// decimal point, everything else trimmed to six significant decimals.
func formatNum(v float64) string {
	if math.IsInf(v, 1) {
		return "oo"
	}
	if math.IsInf(v, -1) {
		return "-oo"
	}
	if r := math.Round(v); math.Abs(v-r) < 1e-9 && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// freeVars returns the variable names appearing in e, sorted.
func freeVars(e Expr) []string {
	set := map[string]struct{}{}
	collectVars(e, set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectVars(e Expr, set map[string]struct{}) {
	switch x := e.(type) {
	case Var:
		set[x.Name] = struct{}{}
	case Unary:
		collectVars(x.X, set)
	case Binary:
		collectVars(x.L, set)
		collectVars(x.R, set)
	case Call:
		collectVars(x.Arg, set)
	}
}

// eval numerically evaluates a closed expression. It fails when a free
// variable or unknown function is encountered.
func eval(e Expr) (float64, error) {
	switch x := e.(type) {
	case Num:
		return x.Value, nil
	case Var:
		switch x.Name {
		case "pi":
			return math.Pi, nil
		case "e":
			return math.E, nil
		}
		return 0, fmt.Errorf("free variable %s", x.Name)
	case Unary:
		v, err := eval(x.X)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case Binary:
		l, err := eval(x.L)
		if err != nil {
			return 0, err
		}
		r, err := eval(x.R)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return l / r, nil
		case "^":
			return math.Pow(l, r), nil
		}
		return 0, fmt.Errorf("unknown operator %s", x.Op)
	case Call:
		v, err := eval(x.Arg)
		if err != nil {
			return 0, err
		}
		switch x.Name {
		case "sin":
			return math.Sin(v), nil
		case "cos":
			return math.Cos(v), nil
		case "tan":
			return math.Tan(v), nil
		case "exp":
			return math.Exp(v), nil
		case "ln", "log":
			if v <= 0 {
				return 0, fmt.Errorf("log of non-positive value")
			}
			return math.Log(v), nil
		case "sqrt":
			if v < 0 {
				return 0, fmt.Errorf("square root of negative value")
			}
			return math.Sqrt(v), nil
		case "abs":
			return math.Abs(v), nil
		}
		return 0, fmt.Errorf("unknown function %s", x.Name)
	}
	return 0, fmt.Errorf("unknown expression node")
}
