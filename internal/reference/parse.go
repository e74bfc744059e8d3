package reference

import (
	"strings"

	"github.com/zephyrtronium/calculator"
)

// Expr = num | const | Call | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr
//
// Signs are part of number tokens, so there are no unary operators.

// Expr is a parsed expression.
type Expr struct {
	n *node
}

type parser struct {
	toks []calculator.Token
	k    int
}

// peek returns the next token without consuming it. ok is false at the end of
// input.
func (p *parser) peek() (tok calculator.Token, ok bool) {
	if p.k >= len(p.toks) {
		return calculator.Token{}, false
	}
	return p.toks[p.k], true
}

// Parse parses a tokenized expression into a tree.
func Parse(toks []calculator.Token) (*Expr, error) {
	p := parser{toks: toks}
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		// parseterm only stops early on a close paren.
		return nil, &calculator.EvaluationError{
			Kind:   calculator.MismatchedParentheses,
			Reason: "close paren with no open paren",
			Col:    tok.Col,
		}
	}
	return &Expr{n: n}, nil
}

// ParseString tokenizes and parses an expression.
func ParseString(src string) (*Expr, error) {
	toks, err := calculator.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parseterm parses operands joined by operators that bind more tightly than
// until. It stops before a close paren or at the end of input.
func (p *parser) parseterm(until operator) (*node, error) {
	n, err := p.parselhs()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == calculator.TokenRightParen {
			return n, nil
		}
		if tok.Kind != calculator.TokenOperator {
			return nil, &calculator.EvaluationError{
				Kind:   calculator.InvalidExpression,
				Reason: "expected operator before " + tok.Text,
				Col:    tok.Col,
			}
		}
		prec := binop(tok.Text)
		if prec.op == nodeNone {
			return nil, &calculator.EvaluationError{Kind: calculator.UnknownSymbol, Text: tok.Text, Col: tok.Col}
		}
		if !prec.moreBinding(until) {
			return n, nil
		}
		p.k++
		rhs, err := p.parseterm(prec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, left: n, right: rhs}
	}
}

// parselhs parses a single operand.
func (p *parser) parselhs() (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.missing()
	}
	p.k++
	switch tok.Kind {
	case calculator.TokenNumber:
		return &node{kind: nodeNum, name: tok.Text}, nil
	case calculator.TokenConstant:
		if consts[tok.Text] == nil {
			return nil, &calculator.EvaluationError{Kind: calculator.UnknownSymbol, Text: tok.Text, Col: tok.Col}
		}
		return &node{kind: nodeConst, name: tok.Text}, nil
	case calculator.TokenFunction:
		fn := funcs[tok.Text]
		if fn == nil {
			return nil, &calculator.EvaluationError{Kind: calculator.UnknownSymbol, Text: tok.Text, Col: tok.Col}
		}
		open, ok := p.peek()
		if !ok || open.Kind != calculator.TokenLeftParen {
			return nil, &calculator.EvaluationError{
				Kind:   calculator.InvalidExpression,
				Reason: "expected ( after " + tok.Text,
				Col:    tok.Col,
			}
		}
		p.k++
		arg, err := p.group(open)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.Text, fn: fn, left: arg}, nil
	case calculator.TokenLeftParen:
		return p.group(tok)
	case calculator.TokenOperator:
		return nil, &calculator.EvaluationError{Kind: calculator.InsufficientOperands, Text: tok.Text, Col: tok.Col}
	case calculator.TokenRightParen:
		p.k--
		return nil, p.missing()
	default:
		panic("reference: unknown token: " + tok.String())
	}
}

// group parses the contents of a parenthesized expression after its open
// paren and consumes the close paren.
func (p *parser) group(open calculator.Token) (*node, error) {
	n, err := p.parseterm(exprprec)
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(); !ok {
		return nil, &calculator.EvaluationError{
			Kind:   calculator.MismatchedParentheses,
			Reason: "open paren with no close paren",
			Col:    open.Col,
		}
	}
	p.k++
	return n, nil
}

// missing returns an error for an operand missing at the current position.
func (p *parser) missing() error {
	if p.k > 0 {
		if prev := p.toks[p.k-1]; prev.Kind == calculator.TokenOperator {
			return &calculator.EvaluationError{Kind: calculator.InsufficientOperands, Text: prev.Text, Col: prev.Col}
		}
	}
	return &calculator.EvaluationError{Kind: calculator.InvalidExpression, Reason: "no value"}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
