package solver

import "fmt"

// Differentiate returns the derivative of e with respect to v.
func Differentiate(e Expr, v string) (Expr, error) {
	d, err := diff(e, v)
	if err != nil {
		return nil, err
	}
	return Simplify(d), nil
}

func diff(e Expr, v string) (Expr, error) {
	switch x := e.(type) {
	case Num:
		return Num{}, nil
	case Var:
		if x.Name == v {
			return Num{Value: 1}, nil
		}
		return Num{}, nil
	case Unary:
		d, err := diff(x.X, v)
		if err != nil {
			return nil, err
		}
		return Unary{Op: "-", X: d}, nil
	case Binary:
		switch x.Op {
		case "+", "-":
			dl, err := diff(x.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := diff(x.R, v)
			if err != nil {
				return nil, err
			}
			return Binary{Op: x.Op, L: dl, R: dr}, nil
		case "*":
			dl, err := diff(x.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := diff(x.R, v)
			if err != nil {
				return nil, err
			}
			// Product rule: (uv)' = u'v + uv'.
			return Binary{Op: "+",
				L: Binary{Op: "*", L: dl, R: x.R},
				R: Binary{Op: "*", L: x.L, R: dr},
			}, nil
		case "/":
			dl, err := diff(x.L, v)
			if err != nil {
				return nil, err
			}
			dr, err := diff(x.R, v)
			if err != nil {
				return nil, err
			}
			// Quotient rule: (u/w)' = (u'w - uw') / w^2.
			num := Binary{Op: "-",
				L: Binary{Op: "*", L: dl, R: x.R},
				R: Binary{Op: "*", L: x.L, R: dr},
			}
			den := Binary{Op: "^", L: x.R, R: Num{Value: 2}}
			return Binary{Op: "/", L: num, R: den}, nil
		case "^":
			if n, ok := x.R.(Num); ok {
				// Power rule with chain rule: (u^n)' = n*u^(n-1)*u'.
				du, err := diff(x.L, v)
				if err != nil {
					return nil, err
				}
				return Binary{Op: "*",
					L: Binary{Op: "*",
						L: Num{Value: n.Value},
						R: Binary{Op: "^", L: x.L, R: Num{Value: n.Value - 1}},
					},
					R: du,
				}, nil
			}
			if base, ok := x.L.(Num); ok {
				// (a^u)' = a^u * ln(a) * u'.
				du, err := diff(x.R, v)
				if err != nil {
					return nil, err
				}
				return Binary{Op: "*",
					L: Binary{Op: "*", L: x, R: Call{Name: "ln", Arg: base}},
					R: du,
				}, nil
			}
			return nil, fmt.Errorf("cannot differentiate %s: variable exponent over variable base", x.String())
		}
		return nil, fmt.Errorf("cannot differentiate operator %q", x.Op)
	case Call:
		du, err := diff(x.Arg, v)
		if err != nil {
			return nil, err
		}
		var outer Expr
		switch x.Name {
		case "sin":
			outer = Call{Name: "cos", Arg: x.Arg}
		case "cos":
			outer = Unary{Op: "-", X: Call{Name: "sin", Arg: x.Arg}}
		case "tan":
			outer = Binary{Op: "/",
				L: Num{Value: 1},
				R: Binary{Op: "^", L: Call{Name: "cos", Arg: x.Arg}, R: Num{Value: 2}},
			}
		case "exp":
			outer = Call{Name: "exp", Arg: x.Arg}
		case "ln", "log":
			outer = Binary{Op: "/", L: Num{Value: 1}, R: x.Arg}
		case "sqrt":
			outer = Binary{Op: "/",
				L: Num{Value: 1},
				R: Binary{Op: "*", L: Num{Value: 2}, R: Call{Name: "sqrt", Arg: x.Arg}},
			}
		default:
			return nil, fmt.Errorf("cannot differentiate function %q", x.Name)
		}
		return Binary{Op: "*", L: outer, R: du}, nil
	}
	return nil, fmt.Errorf("cannot differentiate expression")
}

// Integrate returns an antiderivative of e with respect to v (without the
// integration constant). Only term-wise power-rule and elementary function
// forms are supported; anything else is an error, never a guess.
func Integrate(e Expr, v string) (Expr, error) {
	in, err := integrate(fold(e), v)
	if err != nil {
		return nil, err
	}
	return Simplify(in), nil
}

func integrate(e Expr, v string) (Expr, error) {
	switch x := e.(type) {
	case Num:
		return Binary{Op: "*", L: x, R: Var{Name: v}}, nil
	case Var:
		if x.Name != v {
			return Binary{Op: "*", L: x, R: Var{Name: v}}, nil
		}
		return Binary{Op: "/",
			L: Binary{Op: "^", L: Var{Name: v}, R: Num{Value: 2}},
			R: Num{Value: 2},
		}, nil
	case Unary:
		in, err := integrate(x.X, v)
		if err != nil {
			return nil, err
		}
		return Unary{Op: "-", X: in}, nil
	case Binary:
		switch x.Op {
		case "+", "-":
			il, err := integrate(x.L, v)
			if err != nil {
				return nil, err
			}
			ir, err := integrate(x.R, v)
			if err != nil {
				return nil, err
			}
			return Binary{Op: x.Op, L: il, R: ir}, nil
		case "*":
			// Constant factors move outside the integral.
			if c, err := eval(x.L); err == nil {
				in, err := integrate(x.R, v)
				if err != nil {
					return nil, err
				}
				return Binary{Op: "*", L: Num{Value: c}, R: in}, nil
			}
			if c, err := eval(x.R); err == nil {
				in, err := integrate(x.L, v)
				if err != nil {
					return nil, err
				}
				return Binary{Op: "*", L: Num{Value: c}, R: in}, nil
			}
			return nil, fmt.Errorf("cannot integrate product %s", x.String())
		case "/":
			if c, err := eval(x.R); err == nil && c != 0 {
				in, err := integrate(x.L, v)
				if err != nil {
					return nil, err
				}
				return Binary{Op: "/", L: in, R: Num{Value: c}}, nil
			}
			// 1/x and c/x integrate to logarithms.
			if c, err := eval(x.L); err == nil {
				if denom, ok := x.R.(Var); ok && denom.Name == v {
					return Binary{Op: "*", L: Num{Value: c}, R: Call{Name: "ln", Arg: Var{Name: v}}}, nil
				}
			}
			return nil, fmt.Errorf("cannot integrate quotient %s", x.String())
		case "^":
			base, baseIsVar := x.L.(Var)
			n, expIsNum := x.R.(Num)
			if baseIsVar && base.Name == v && expIsNum {
				if n.Value == -1 {
					return Call{Name: "ln", Arg: Var{Name: v}}, nil
				}
				return Binary{Op: "/",
					L: Binary{Op: "^", L: Var{Name: v}, R: Num{Value: n.Value + 1}},
					R: Num{Value: n.Value + 1},
				}, nil
			}
			return nil, fmt.Errorf("cannot integrate power %s", x.String())
		}
		return nil, fmt.Errorf("cannot integrate operator %q", x.Op)
	case Call:
		arg, argIsVar := x.Arg.(Var)
		if !argIsVar || arg.Name != v {
			if c, err := eval(x); err == nil {
				return Binary{Op: "*", L: Num{Value: c}, R: Var{Name: v}}, nil
			}
			return nil, fmt.Errorf("cannot integrate composite function %s", x.String())
		}
		switch x.Name {
		case "sin":
			return Unary{Op: "-", X: Call{Name: "cos", Arg: x.Arg}}, nil
		case "cos":
			return Call{Name: "sin", Arg: x.Arg}, nil
		case "exp":
			return Call{Name: "exp", Arg: x.Arg}, nil
		}
		return nil, fmt.Errorf("cannot integrate function %q", x.Name)
	}
	return nil, fmt.Errorf("cannot integrate expression")
}
