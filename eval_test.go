package calculator_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/calculator"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"div", "320/5", 64},
		{"mod", "3%5", 3},
		{"mod-frac", "7.5%2", 1.5},
		{"mod-neg", "-7%3", -1},
		{"pow", "5^3", 125},
		{"pow-right", "2^3^2", 512},
		{"pow-neg-exp", "2^-1", 0.5},
		{"pow-frac", "4^0.5", 2},
		{"add-neg", "-5+3", -2},
		{"mul-neg", "3*-2", -6},
		{"sub-neg", "3--2", 5},
		{"plus", "+4", 4},
		{"sub-left", "10-4-3", 3},
		{"div-left", "100/10/5", 2},
		{"prec", "2+3*4", 14},
		{"paren", "2*(3+4)", 14},
		{"nested-paren", "((2))", 2},
		{"spaces", " 1 + 2 * 3 ", 7},
		{"sci", "1e3+1", 1001},
		{"sci-neg", "2.5e-1*4", 1},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"sqrt", "sqrt(4)", 2},
		{"square", "square(3)", 9},
		{"cube", "cube(2)", 8},
		{"cube-neg", "cube(-2)", -8},
		{"sin", "sin(0)", 0},
		{"cos", "cos(0)", 1},
		{"tan", "tan(pi/4)", math.Tan(math.Pi / 4)},
		{"asin", "asin(1)", math.Asin(1)},
		{"acos", "acos(0)", math.Acos(0)},
		{"atan", "atan(1)", math.Atan(1)},
		{"log", "log(1000)", math.Log10(1000)},
		{"ln", "ln(e)", math.Log(math.E)},
		{"fact0", "factorial(0)", 1},
		{"fact1", "factorial(1)", 1},
		{"fact5", "factorial(5)", 120},
		{"fact-expr", "factorial(2+1)", 6},
		{"ten", "tenPowerX(3)", 1000},
		{"two", "twoPowerX(10)", 1024},
		{"func-pow", "3+5*sin(2)^2", 3 + 5*math.Pow(math.Sin(2), 2)},
		{"func-nested", "sqrt(square(3)+square(4))", 5},
		{"func-neg", "sqrt(-4+8)", 2},
		{"func-bare", "sqrt 9", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.r, r)
		})
	}
}

func TestEvaluateNonFinite(t *testing.T) {
	cases := []struct {
		name string
		src  string
		nan  bool
		sign int
	}{
		{"cbrt-neg", "(-8)^(1/3)", true, 0},
		{"asin-domain", "asin(2)", true, 0},
		{"literal", "1e400", false, 1},
		{"overflow", "10^400", false, 1},
		{"fact-big", "factorial(171)", false, 1},
		{"fact-huge", "factorial(1e18)", false, 1},
		{"neg-overflow", "-1e308*10", false, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			require.NoError(t, err)
			if c.nan {
				assert.True(t, math.IsNaN(r), "want NaN, got %v", r)
				return
			}
			assert.True(t, math.IsInf(r, c.sign), "want Inf(%d), got %v", c.sign, r)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
		col  int
	}{
		{"div-zero", "3/0", calculator.ErrDivisionByZero, 2},
		{"mod-zero", "3%0", calculator.ErrDivisionByZero, 2},
		{"div-zero-expr", "5/(2-2)", calculator.ErrDivisionByZero, 2},
		{"div-neg-zero", "1/-0", calculator.ErrDivisionByZero, 2},
		{"sqrt-neg", "sqrt(-1)", calculator.ErrDomain, 1},
		{"log-zero", "log(0)", calculator.ErrDomain, 1},
		{"ln-neg", "ln(-1)", calculator.ErrDomain, 1},
		{"fact-neg", "factorial(-1)", calculator.ErrDomain, 1},
		{"fact-frac", "factorial(2.5)", calculator.ErrDomain, 1},
		{"fact-nan", "factorial((-8)^(1/3))", calculator.ErrDomain, 1},
		{"unclosed", "(3+4", calculator.ErrMismatchedParentheses, 1},
		{"unopened", "3+4)", calculator.ErrMismatchedParentheses, 4},
		{"trailing-op", "3+", calculator.ErrInsufficientOperands, 2},
		{"lone-op", "*", calculator.ErrInsufficientOperands, 1},
		{"lone-plus", "+", calculator.ErrInsufficientOperands, 1},
		{"neg-paren", "-(2)", calculator.ErrInsufficientOperands, 1},
		{"neg-const", "-pi", calculator.ErrInsufficientOperands, 1},
		{"empty-call", "sqrt()", calculator.ErrInsufficientOperands, 1},
		{"unknown-char", "3$4", calculator.ErrUnknownSymbol, 2},
		{"unknown-name", "foo(1)", calculator.ErrUnknownSymbol, 1},
		{"empty", "", calculator.ErrInvalidExpression, 0},
		{"blank", "   ", calculator.ErrInvalidExpression, 0},
		{"empty-parens", "()", calculator.ErrInvalidExpression, 0},
		{"juxtaposed", "3(4)", calculator.ErrInvalidExpression, 0},
		{"exp-missing", "2e", calculator.ErrInvalidExpression, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculator.Evaluate(c.src)
			require.Error(t, err, "got result %v", r)
			assert.True(t, errors.Is(err, c.kind), "want %v, got %v", c.kind, err)
			var e *calculator.EvaluationError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, c.col, e.Pos(), "wrong position in %v", err)
		})
	}
}

func TestEvaluateErrorMessages(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"3/0", "2: division by zero"},
		{"sqrt(-1)", "1: domain error in sqrt: square root of negative number"},
		{"log(-1)", "1: domain error in log: logarithm of non-positive number"},
		{"factorial(0.5)", "1: domain error in factorial: factorial of non-integer"},
		{"(1", "1: mismatched parentheses: open paren with no close paren"},
		{"1)", "2: mismatched parentheses: close paren with no open paren"},
		{"1+", `2: insufficient operands for "+"`},
		{"1#", `2: unknown symbol "#"`},
		{"1 2 (3)", "invalid expression: 2 values with no operator between them"},
		{"", "invalid expression: no value"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := calculator.Evaluate(c.src)
			require.Error(t, err)
			assert.Equal(t, c.want, err.Error())
		})
	}
}

func TestErrorIsText(t *testing.T) {
	_, err := calculator.Evaluate("2%0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &calculator.EvaluationError{Kind: calculator.DivisionByZero, Text: "%"}))
	assert.False(t, errors.Is(err, &calculator.EvaluationError{Kind: calculator.DivisionByZero, Text: "/"}))
	assert.False(t, errors.Is(err, calculator.ErrDomain))
}

func TestEvaluatePostfixInvalid(t *testing.T) {
	// Sequences ToPostfix never produces.
	cases := []struct {
		name string
		toks []calculator.Token
		kind error
	}{
		{"paren", []calculator.Token{{Kind: calculator.TokenLeftParen, Text: "("}}, calculator.ErrInvalidExpression},
		{"constant", []calculator.Token{{Kind: calculator.TokenConstant, Text: "pi"}}, calculator.ErrInvalidExpression},
		{"bad-op", []calculator.Token{
			{Kind: calculator.TokenNumber, Text: "1", Value: 1},
			{Kind: calculator.TokenNumber, Text: "1", Value: 1},
			{Kind: calculator.TokenOperator, Text: "&"},
		}, calculator.ErrUnknownSymbol},
		{"bad-func", []calculator.Token{
			{Kind: calculator.TokenNumber, Text: "1", Value: 1},
			{Kind: calculator.TokenFunction, Text: "exp"},
		}, calculator.ErrUnknownSymbol},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calculator.EvaluatePostfix(c.toks)
			assert.True(t, errors.Is(err, c.kind), "want %v, got %v", c.kind, err)
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	srcs := []string{"3+5*sin(2)^2", "pi", "e", "2^0.5", "(-8)^(1/3)", "1/3"}
	for _, src := range srcs {
		a, errA := calculator.Evaluate(src)
		b, errB := calculator.Evaluate(src)
		require.Equal(t, errA, errB)
		assert.Equal(t, math.Float64bits(a), math.Float64bits(b), "%s: %v != %v", src, a, b)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	srcs := []string{"3+5*sin(2)^2", "2^3^2", "sqrt(-1)", "factorial(20)", "(1+2", "tenPowerX(2)%7"}
	want := make([]float64, len(srcs))
	wantErr := make([]error, len(srcs))
	for i, src := range srcs {
		want[i], wantErr[i] = calculator.Evaluate(src)
	}
	var g errgroup.Group
	for k := 0; k < 8; k++ {
		g.Go(func() error {
			for i, src := range srcs {
				r, err := calculator.Evaluate(src)
				if r != want[i] || (err == nil) != (wantErr[i] == nil) || err != nil && err.Error() != wantErr[i].Error() {
					return errors.New("different result for " + src)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestRegistry(t *testing.T) {
	for _, r := range calculator.Operators {
		op, ok := calculator.LookupOperator(string(r))
		require.True(t, ok, "no operator for %c", r)
		assert.Equal(t, string(r), op.Symbol)
		assert.Equal(t, 2, op.Arity)
	}
	prec := map[string]int{"+": 1, "-": 1, "*": 2, "/": 2, "%": 2, "^": 3}
	for sym, p := range prec {
		op, _ := calculator.LookupOperator(sym)
		assert.Equal(t, p, op.Prec, sym)
		want := calculator.Left
		if sym == "^" {
			want = calculator.Right
		}
		assert.Equal(t, want, op.Assoc, sym)
	}
	names := calculator.Functions()
	assert.Equal(t, []string{
		"acos", "asin", "atan", "cos", "cube", "factorial", "ln", "log",
		"sin", "sqrt", "square", "tan", "tenPowerX", "twoPowerX",
	}, names)
	for _, name := range names {
		f, ok := calculator.LookupFunction(name)
		require.True(t, ok)
		assert.Equal(t, name, f.Name)
		assert.Equal(t, 1, f.Arity)
		// Every function name tokenizes as a function.
		toks, err := calculator.Tokenize(name)
		require.NoError(t, err)
		assert.Equal(t, calculator.TokenFunction, toks[0].Kind)
	}
	assert.Equal(t, []string{"e", "pi"}, calculator.Constants())
	_, ok := calculator.LookupFunction("SIN")
	assert.False(t, ok)
	_, ok = calculator.LookupFunction(strings.ToUpper("pi"))
	assert.False(t, ok)
}
