package solver

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// maxPolyDegree caps the polynomial machinery. Anything denser than this is
// left as-is by Simplify and rejected by the equation solver.
const maxPolyDegree = 8

// polynomial maps exponent to coefficient for a single variable.
type polynomial map[int]float64

func (p polynomial) degree() int {
	d := 0
	for exp, c := range p {
		if c != 0 && exp > d {
			d = exp
		}
	}
	return d
}

func (p polynomial) add(q polynomial) polynomial {
	out := polynomial{}
	for e, c := range p {
		out[e] += c
	}
	for e, c := range q {
		out[e] += c
	}
	return out
}

func (p polynomial) scale(k float64) polynomial {
	out := polynomial{}
	for e, c := range p {
		out[e] = c * k
	}
	return out
}

func (p polynomial) mul(q polynomial) polynomial {
	out := polynomial{}
	for e1, c1 := range p {
		for e2, c2 := range q {
			out[e1+e2] += c1 * c2
		}
	}
	return out
}

// extractPoly converts an expression into polynomial form over variable v.
// It fails on non-polynomial structure (division by the variable, fractional
// exponents, variable inside a function call).
func extractPoly(e Expr, v string) (polynomial, bool) {
	switch x := e.(type) {
	case Num:
		return polynomial{0: x.Value}, true
	case Var:
		if x.Name == v {
			return polynomial{1: 1}, true
		}
		switch x.Name {
		case "pi":
			return polynomial{0: math.Pi}, true
		case "e":
			return polynomial{0: math.E}, true
		}
		return nil, false
	case Unary:
		p, ok := extractPoly(x.X, v)
		if !ok {
			return nil, false
		}
		return p.scale(-1), true
	case Binary:
		switch x.Op {
		case "+", "-":
			l, ok := extractPoly(x.L, v)
			if !ok {
				return nil, false
			}
			r, ok := extractPoly(x.R, v)
			if !ok {
				return nil, false
			}
			if x.Op == "-" {
				r = r.scale(-1)
			}
			return l.add(r), true
		case "*":
			l, ok := extractPoly(x.L, v)
			if !ok {
				return nil, false
			}
			r, ok := extractPoly(x.R, v)
			if !ok {
				return nil, false
			}
			p := l.mul(r)
			if p.degree() > maxPolyDegree {
				return nil, false
			}
			return p, true
		case "/":
			divisor, err := eval(x.R)
			if err != nil || divisor == 0 {
				return nil, false
			}
			l, ok := extractPoly(x.L, v)
			if !ok {
				return nil, false
			}
			return l.scale(1 / divisor), true
		case "^":
			expVal, err := eval(x.R)
			if err != nil {
				return nil, false
			}
			n := int(math.Round(expVal))
			if float64(n) != expVal || n < 0 || n > maxPolyDegree {
				return nil, false
			}
			base, ok := extractPoly(x.L, v)
			if !ok {
				return nil, false
			}
			out := polynomial{0: 1}
			for i := 0; i < n; i++ {
				out = out.mul(base)
				if out.degree() > maxPolyDegree {
					return nil, false
				}
			}
			return out, true
		}
		return nil, false
	case Call:
		val, err := eval(x)
		if err != nil {
			return nil, false
		}
		return polynomial{0: val}, true
	}
	return nil, false
}

// toExpr rebuilds a canonical expression, highest-degree term first.
func (p polynomial) toExpr(v string) Expr {
	exps := make([]int, 0, len(p))
	for e, c := range p {
		if math.Abs(c) > 1e-12 {
			exps = append(exps, e)
		}
	}
	if len(exps) == 0 {
		return Num{}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(exps)))

	var out Expr
	for _, exp := range exps {
		c := p[exp]
		term := monomial(math.Abs(c), exp, v)
		switch {
		case out == nil && c < 0:
			out = fold(Unary{Op: "-", X: term})
		case out == nil:
			out = term
		case c < 0:
			out = Binary{Op: "-", L: out, R: term}
		default:
			out = Binary{Op: "+", L: out, R: term}
		}
	}
	return out
}

func monomial(c float64, exp int, v string) Expr {
	var pow Expr
	switch exp {
	case 0:
		return Num{Value: c}
	case 1:
		pow = Var{Name: v}
	default:
		pow = Binary{Op: "^", L: Var{Name: v}, R: Num{Value: float64(exp)}}
	}
	if math.Abs(c-1) < 1e-12 {
		return pow
	}
	return Binary{Op: "*", L: Num{Value: c}, R: pow}
}

// root is a solution of a polynomial equation; Imag is zero for real roots.
type root struct {
	Real float64
	Imag float64
}

func (r root) String() string {
	if math.Abs(r.Imag) < 1e-9 {
		return formatNum(r.Real)
	}
	sign := "+"
	im := r.Imag
	if im < 0 {
		sign = "-"
		im = -im
	}
	if math.Abs(r.Real) < 1e-9 {
		if sign == "-" {
			return "-" + formatNum(im) + "i"
		}
		return formatNum(im) + "i"
	}
	return fmt.Sprintf("%s %s %si", formatNum(r.Real), sign, formatNum(im))
}

// solvePoly returns the roots of p(x) = 0. Degrees one and two are solved in
// closed form; higher degrees fall back to the eigenvalues of the companion
// matrix.
func solvePoly(p polynomial) ([]root, error) {
	deg := p.degree()
	switch {
	case deg == 0:
		if math.Abs(p[0]) < 1e-12 {
			return nil, fmt.Errorf("equation holds for all values")
		}
		return nil, fmt.Errorf("equation has no solution")
	case deg == 1:
		return []root{{Real: -p[0] / p[1]}}, nil
	case deg == 2:
		return solveQuadratic(p[2], p[1], p[0]), nil
	case deg <= maxPolyDegree:
		return companionRoots(p, deg)
	default:
		return nil, fmt.Errorf("polynomial degree %d exceeds supported maximum %d", deg, maxPolyDegree)
	}
}

func solveQuadratic(a, b, c float64) []root {
	disc := b*b - 4*a*c
	if disc >= 0 {
		sq := math.Sqrt(disc)
		return []root{
			{Real: (-b + sq) / (2 * a)},
			{Real: (-b - sq) / (2 * a)},
		}
	}
	sq := math.Sqrt(-disc)
	return []root{
		{Real: -b / (2 * a), Imag: sq / (2 * a)},
		{Real: -b / (2 * a), Imag: -sq / (2 * a)},
	}
}

// companionRoots computes polynomial roots as eigenvalues of the monic
// companion matrix.
func companionRoots(p polynomial, deg int) ([]root, error) {
	lead := p[deg]
	m := mat.NewDense(deg, deg, nil)
	for i := 0; i < deg; i++ {
		m.Set(0, i, -p[deg-1-i]/lead)
	}
	for i := 1; i < deg; i++ {
		m.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigenvalue computation failed")
	}
	values := eig.Values(nil)
	roots := make([]root, 0, deg)
	for _, v := range values {
		roots = append(roots, root{Real: real(v), Imag: imag(v)})
	}
	sort.Slice(roots, func(i, j int) bool {
		if roots[i].Real != roots[j].Real {
			return roots[i].Real > roots[j].Real
		}
		return roots[i].Imag > roots[j].Imag
	})
	return roots, nil
}
