package reference

import (
	"errors"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/calculator"
)

// DefaultPrec is the default precision, in bits, of evaluation.
const DefaultPrec = 256

// context holds the value stack for a single evaluation. It is not safe to use
// a context concurrently.
type context struct {
	stack []*big.Float
	prec  uint
}

// Eval evaluates the expression to prec bits of precision. If prec is 0,
// DefaultPrec is used.
func (e *Expr) Eval(prec uint) (r *big.Float, err error) {
	if prec == 0 {
		prec = DefaultPrec
	}
	ctx := context{prec: prec}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		// Arithmetic on infinities, e.g. Inf - Inf, panics with ErrNaN.
		var nan big.ErrNaN
		if pe, ok := p.(error); ok && errors.As(pe, &nan) {
			r, err = nil, &UnsupportedError{Func: "arithmetic", Reason: nan.Error()}
			return
		}
		panic(p)
	}()
	if err := e.n.eval(&ctx); err != nil {
		return nil, err
	}
	if len(ctx.stack) != 1 {
		panic("reference: inconsistent stack after evaluation")
	}
	return ctx.stack[0], nil
}

// EvalString parses and evaluates an expression.
func EvalString(src string, prec uint) (*big.Float, error) {
	e, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return e.Eval(prec)
}

// Close reports whether x is within a relative tolerance rel of r. Near zero
// the tolerance is absolute. Infinities are close only to the same infinity,
// and NaN is close to nothing.
func Close(x float64, r *big.Float, rel float64) bool {
	y, _ := r.Float64()
	if math.IsNaN(x) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	d := math.Abs(x - y)
	return d <= rel*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
}

// push ensures a settable value on the stack.
func (ctx *context) push() *big.Float {
	r := new(big.Float).SetPrec(ctx.prec)
	ctx.stack = append(ctx.stack, r)
	return r
}

// pop removes the top from the stack and returns it.
func (ctx *context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num parses a number literal.
func (ctx *context) num(s string) *big.Float {
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 0)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// N.B. s is non-empty, otherwise we couldn't overflow.
		r = new(big.Float).SetInf(s[0] == '-')
	default:
		panic("reference: invalid number: " + s + " (" + err.Error() + ")")
	}
	return r
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
		return nil
	case nodeConst:
		consts[n.name](ctx.push())
		return nil
	case nodeCall:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		in := ctx.top()
		r := new(big.Float).SetPrec(ctx.prec)
		if err := n.fn.call(n.name, r, in); err != nil {
			return err
		}
		in.Set(r)
		return nil
	}
	if err := n.left.eval(ctx); err != nil {
		return err
	}
	if err := n.right.eval(ctx); err != nil {
		return err
	}
	r := ctx.pop()
	l := ctx.top()
	switch n.kind {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		if r.Sign() == 0 {
			return &calculator.EvaluationError{Kind: calculator.DivisionByZero, Text: "/"}
		}
		if l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case nodeMod:
		if r.Sign() == 0 {
			return &calculator.EvaluationError{Kind: calculator.DivisionByZero, Text: "%"}
		}
		return mod(l, new(big.Float).Copy(l), r)
	case nodePow:
		return pow(l, new(big.Float).Copy(l), r)
	default:
		panic("reference: invalid AST node " + n.kind.String())
	}
	return nil
}
