package solver

import "math"

// Simplify applies constant folding and algebraic identities, then collapses
// single-variable polynomials into canonical form so like terms combine.
func Simplify(e Expr) Expr {
	s := fold(e)
	if vars := freeVars(s); len(vars) == 1 {
		if poly, ok := extractPoly(s, vars[0]); ok && poly.degree() <= maxPolyDegree {
			return poly.toExpr(vars[0])
		}
	}
	return s
}

func fold(e Expr) Expr {
	switch x := e.(type) {
	case Unary:
		inner := fold(x.X)
		if n, ok := inner.(Num); ok {
			return Num{Value: -n.Value}
		}
		if u, ok := inner.(Unary); ok {
			return u.X
		}
		return Unary{Op: "-", X: inner}
	case Binary:
		l := fold(x.L)
		r := fold(x.R)
		ln, lNum := l.(Num)
		rn, rNum := r.(Num)
		switch x.Op {
		case "+":
			if lNum && rNum {
				return Num{Value: ln.Value + rn.Value}
			}
			if lNum && ln.Value == 0 {
				return r
			}
			if rNum && rn.Value == 0 {
				return l
			}
		case "-":
			if lNum && rNum {
				return Num{Value: ln.Value - rn.Value}
			}
			if rNum && rn.Value == 0 {
				return l
			}
			if lNum && ln.Value == 0 {
				return fold(Unary{Op: "-", X: r})
			}
		case "*":
			if lNum && rNum {
				return Num{Value: ln.Value * rn.Value}
			}
			if lNum {
				if ln.Value == 0 {
					return Num{}
				}
				if ln.Value == 1 {
					return r
				}
			}
			if rNum {
				if rn.Value == 0 {
					return Num{}
				}
				if rn.Value == 1 {
					return l
				}
				// Keep the numeric coefficient on the left.
				return Binary{Op: "*", L: rn, R: l}
			}
		case "/":
			if lNum && rNum && rn.Value != 0 {
				return Num{Value: ln.Value / rn.Value}
			}
			if rNum && rn.Value == 1 {
				return l
			}
			if lNum && ln.Value == 0 {
				return Num{}
			}
		case "^":
			if rNum {
				if rn.Value == 0 {
					return Num{Value: 1}
				}
				if rn.Value == 1 {
					return l
				}
			}
			if lNum && rNum {
				return Num{Value: math.Pow(ln.Value, rn.Value)}
			}
		}
		return Binary{Op: x.Op, L: l, R: r}
	case Call:
		arg := fold(x.Arg)
		if n, ok := arg.(Num); ok {
			if v, err := eval(Call{Name: x.Name, Arg: n}); err == nil {
				return Num{Value: v}
			}
		}
		return Call{Name: x.Name, Arg: arg}
	default:
		return e
	}
}
