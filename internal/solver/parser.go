package solver

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// knownFuncs are identifiers treated as function application when followed
// by an opening parenthesis; any other identifier before "(" is implicit
// multiplication, e.g. x(x+1).
var knownFuncs = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"exp": true, "ln": true, "log": true,
	"sqrt": true, "abs": true,
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp    // + - * / ^
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type lexer struct {
	input string
	pos   int
	toks  []token
}

// Parse parses a single mathematical expression into an AST.
func Parse(input string) (Expr, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q in expression %q", p.peek().text, input)
	}
	return e, nil
}

func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for l.pos < len(l.input) {
		c := rune(l.input[l.pos])
		switch {
		case unicode.IsSpace(c):
			l.pos++
		case unicode.IsDigit(c) || c == '.':
			if err := l.lexNumber(); err != nil {
				return nil, err
			}
		case unicode.IsLetter(c):
			l.lexIdent()
		case strings.ContainsRune("+-*/^", c):
			l.emit(token{kind: tokOp, text: string(c)})
			l.pos++
		case c == '(':
			l.emit(token{kind: tokLParen, text: "("})
			l.pos++
		case c == ')':
			l.emit(token{kind: tokRParen, text: ")"})
			l.pos++
		default:
			return nil, fmt.Errorf("unexpected character %q in expression %q", c, input)
		}
	}
	l.toks = append(l.toks, token{kind: tokEOF})
	return l.toks, nil
}

// emit appends a token, inserting an implicit multiplication where two value
// tokens abut, so 2x, 2(x+1), and (x+1)(x-1) parse as products.
func (l *lexer) emit(t token) {
	if n := len(l.toks); n > 0 {
		prev := l.toks[n-1]
		prevValue := prev.kind == tokNumber || prev.kind == tokIdent || prev.kind == tokRParen
		startsValue := t.kind == tokNumber || t.kind == tokIdent ||
			(t.kind == tokLParen && !(prev.kind == tokIdent && knownFuncs[prev.text]))
		if prevValue && startsValue {
			l.toks = append(l.toks, token{kind: tokOp, text: "*"})
		}
	}
	l.toks = append(l.toks, t)
}

func (l *lexer) lexNumber() error {
	start := l.pos
	seenDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		l.pos++
	}
	text := l.input[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	l.emit(token{kind: tokNumber, text: text, num: v})
	return nil
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.input) && unicode.IsLetter(rune(l.input[l.pos])) {
		l.pos++
	}
	name := l.input[start:l.pos]
	if knownFuncs[name] || name == "pi" || name == "oo" {
		l.emit(token{kind: tokIdent, text: name})
		return
	}
	// Concatenated single-letter symbols multiply: "xy" is x*y.
	for _, r := range name {
		l.emit(token{kind: tokIdent, text: string(r)})
	}
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseExpr is a precedence-climbing parser. Exponentiation is
// right-associative, everything else left-associative.
func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp {
			break
		}
		prec := opPrecedence(t.text)
		if prec < minPrec {
			break
		}
		p.next()
		nextMin := prec + 1
		if t.text == "^" {
			nextMin = prec
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = Binary{Op: t.text, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if t.text == "-" {
			return Unary{Op: "-", X: x}, nil
		}
		return x, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		base := Expr(Num{Value: t.num})
		return p.parsePostfix(base)
	case tokIdent:
		if knownFuncs[t.text] && p.peek().kind == tokLParen {
			p.next() // consume "("
			arg, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if p.peek().kind != tokRParen {
				return nil, fmt.Errorf("missing closing parenthesis after %s(", t.text)
			}
			p.next()
			return p.parsePostfix(Call{Name: t.text, Arg: arg})
		}
		return p.parsePostfix(Var{Name: t.text})
	case tokLParen:
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.next()
		return p.parsePostfix(e)
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}

// parsePostfix handles exponentiation directly after a primary so that the
// right-associative chain x^2^3 parses as x^(2^3).
func (p *parser) parsePostfix(base Expr) (Expr, error) {
	if t := p.peek(); t.kind == tokOp && t.text == "^" {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		exp, err = p.parsePostfix(exp)
		if err != nil {
			return nil, err
		}
		return Binary{Op: "^", L: base, R: exp}, nil
	}
	return base, nil
}
