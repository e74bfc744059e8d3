package reference

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/calculator"
)

// maxFactorial is the largest argument for which factorial computes an exact
// product. Larger arguments are unsupported.
const maxFactorial = 10000

var errTooLarge = errors.New("argument too large")

// monadic is a function of one variable. f sets out to its result to the
// precision of out. dom, if non-nil, reports why an argument is outside the
// function's domain, or the empty string if it is inside. If f is nil, the
// function has no arbitrary precision implementation.
type monadic struct {
	f   func(out, in *big.Float) *big.Float
	dom func(x *big.Float) string
}

// call evaluates the function named name on in and stores the result in r.
// in is not modified.
func (m *monadic) call(name string, r, in *big.Float) (err error) {
	if m.f == nil {
		return &UnsupportedError{Func: name}
	}
	if in.IsInf() {
		return &UnsupportedError{Func: name, Reason: "infinite argument"}
	}
	if m.dom != nil {
		if why := m.dom(in); why != "" {
			return &calculator.EvaluationError{Kind: calculator.DomainError, Text: name, Reason: why}
		}
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e := p.(error) // panic if not error
		if errors.Is(e, errTooLarge) {
			err = &UnsupportedError{Func: name, Reason: e.Error()}
			return
		}
		if errors.As(e, &big.ErrNaN{}) {
			err = &DomainError{X: new(big.Float).Copy(in), Func: name}
			return
		}
		panic(p)
	}()
	if v := m.f(r, in); v != r {
		r.Set(v)
	}
	return nil
}

var funcs = map[string]*monadic{
	"sqrt": {f: (*big.Float).Sqrt, dom: negative("square root of negative number")},
	"ln":   {f: bigfloat.Log, dom: nonPositive("logarithm of non-positive number")},
	"log": {f: func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
		bigfloat.Log(ten, ten)
		return out.Quo(out, ten)
	}, dom: nonPositive("logarithm of non-positive number")},
	"square": {f: func(out, in *big.Float) *big.Float {
		return out.Mul(in, in)
	}},
	"cube": {f: func(out, in *big.Float) *big.Float {
		out.Mul(in, in)
		return out.Mul(out, in)
	}},
	"tenPowerX": {f: func(out, in *big.Float) *big.Float {
		return bigpow(out, new(big.Float).SetPrec(out.Prec()).SetInt64(10), in)
	}},
	"twoPowerX": {f: func(out, in *big.Float) *big.Float {
		return bigpow(out, new(big.Float).SetPrec(out.Prec()).SetInt64(2), in)
	}},
	"factorial": {f: factorial, dom: func(x *big.Float) string {
		switch {
		case x.Sign() < 0:
			return "factorial of negative number"
		case !x.IsInt():
			return "factorial of non-integer"
		}
		return ""
	}},

	// trig, not implemented in dependencies
	"sin":  {},
	"cos":  {},
	"tan":  {},
	"asin": {},
	"acos": {},
	"atan": {},
}

var consts = map[string]func(out *big.Float) *big.Float{
	"pi": bigfloat.Pi,
	"e": func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	},
}

func negative(why string) func(*big.Float) string {
	return func(x *big.Float) string {
		if x.Sign() < 0 {
			return why
		}
		return ""
	}
}

func nonPositive(why string) func(*big.Float) string {
	return func(x *big.Float) string {
		if x.Sign() <= 0 {
			return why
		}
		return ""
	}
}

func factorial(out, in *big.Float) *big.Float {
	n, _ := in.Int64()
	if n > maxFactorial {
		panic(errTooLarge)
	}
	var p big.Int
	return out.SetInt(p.MulRange(1, n))
}

// maxIntPow bounds exponents computed by repeated squaring.
const maxIntPow = 1 << 20

// bigpow sets z to x**y for positive x at z's precision and returns z.
// Integer exponents are computed by repeated squaring, so integral results
// that fit in z's precision are exact. bigfloat.Pow may return a new value
// instead of setting its receiver.
func bigpow(z, x, y *big.Float) *big.Float {
	if n, acc := y.Int64(); y.IsInt() && acc == big.Exact && -maxIntPow <= n && n <= maxIntPow {
		return powint(z, x, n)
	}
	prec := z.Prec()
	v := bigfloat.Pow(z, x, y)
	return z.SetPrec(prec).Set(v)
}

func powint(z, x *big.Float, n int64) *big.Float {
	neg := n < 0
	if neg {
		n = -n
	}
	prec := z.Prec() + 64
	b := new(big.Float).SetPrec(prec).Set(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r.Mul(r, b)
		}
		b.Mul(b, b)
	}
	if neg {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}
	return z.Set(r)
}

// pow sets z to x^y. A negative base requires an integer exponent.
func pow(z, x, y *big.Float) error {
	if x.IsInf() || y.IsInf() {
		return &UnsupportedError{Func: "^", Reason: "infinite argument"}
	}
	switch {
	case x.Sign() == 0:
		switch y.Sign() {
		case 1:
			z.SetInt64(0)
		case 0:
			z.SetInt64(1)
		default:
			z.SetInf(false)
		}
	case x.Sign() > 0:
		bigpow(z, x, y)
	case y.IsInt():
		odd := false
		if i, _ := y.Int(nil); i.Bit(0) == 1 {
			odd = true
		}
		bigpow(z, new(big.Float).Abs(x), y)
		if odd {
			z.Neg(z)
		}
	default:
		return &DomainError{X: new(big.Float).Copy(x), Func: "^"}
	}
	return nil
}

// mod sets z to the remainder of x/y truncated toward zero, taking the sign of
// x. y must be nonzero.
func mod(z, x, y *big.Float) error {
	if x.IsInf() || y.IsInf() {
		return &UnsupportedError{Func: "%", Reason: "infinite argument"}
	}
	q := new(big.Float).SetPrec(z.Prec()).Quo(x, y)
	i, _ := q.Int(nil)
	q.SetInt(i)
	q.Mul(q, y)
	z.Sub(x, q)
	return nil
}

// DomainError is an error returned when an operation has no real result for
// its arguments. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

// UnsupportedError is an error returned for functions or arguments that have
// no arbitrary precision implementation.
type UnsupportedError struct {
	// Func is the function or operator.
	Func string
	// Reason is set when only some arguments are unsupported.
	Reason string
}

func (err *UnsupportedError) Error() string {
	if err.Reason != "" {
		return err.Func + " unsupported: " + err.Reason
	}
	return err.Func + " unsupported"
}

// ErrUnsupported matches any *UnsupportedError with errors.Is.
var ErrUnsupported = &UnsupportedError{}

func (err *UnsupportedError) Is(target error) bool {
	_, ok := target.(*UnsupportedError)
	return ok
}
