package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(text string, v float64, col int) Token {
	return Token{Kind: TokenNumber, Text: text, Value: v, Col: col}
}

func op(text string, col int) Token {
	return Token{Kind: TokenOperator, Text: text, Col: col}
}

func fn(text string, col int) Token {
	return Token{Kind: TokenFunction, Text: text, Col: col}
}

func cst(text string, col int) Token {
	return Token{Kind: TokenConstant, Text: text, Col: col}
}

func lp(col int) Token { return Token{Kind: TokenLeftParen, Text: "(", Col: col} }
func rp(col int) Token { return Token{Kind: TokenRightParen, Text: ")", Col: col} }

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		// numbers
		{"zero", "0", []Token{num("0", 0, 1)}},
		{"digits", "9876543210", []Token{num("9876543210", 9876543210, 1)}},
		{"split", "1 0", []Token{num("10", 10, 1)}},
		{"decimal", "1.5", []Token{num("1.5", 1.5, 1)}},
		{"leading-dot", ".5", []Token{num(".5", 0.5, 1)}},
		{"trailing-dot", "5.", []Token{num("5.", 5, 1)}},
		{"two-dots", "1.2.3", []Token{num("1.2", 1.2, 1), num(".3", 0.3, 4)}},
		{"exp", "1e3", []Token{num("1e3", 1000, 1)}},
		{"exp-sign", "1E-2", []Token{num("1E-2", 0.01, 1)}},
		{"exp-plus", "2.5e+1", []Token{num("2.5e+1", 25, 1)}},
		{"exp-missing", "2e", []Token{num("2", 2, 1), cst("e", 2)}},
		{"exp-sign-missing", "2e+", []Token{num("2", 2, 1), cst("e", 2), op("+", 3)}},
		// signs
		{"neg", "-1", []Token{num("-1", -1, 1)}},
		{"plus", "+1", []Token{num("+1", 1, 1)}},
		{"neg-dot", "-.5", []Token{num("-.5", -0.5, 1)}},
		{"neg-spaced", "- 5", []Token{num("-5", -5, 1)}},
		{"sub", "3-2", []Token{num("3", 3, 1), op("-", 2), num("2", 2, 3)}},
		{"mul-neg", "3*-2", []Token{num("3", 3, 1), op("*", 2), num("-2", -2, 3)}},
		{"sub-neg", "3--2", []Token{num("3", 3, 1), op("-", 2), num("-2", -2, 3)}},
		{"paren-neg", "(-2)", []Token{lp(1), num("-2", -2, 2), rp(4)}},
		{"neg-paren", "-(2)", []Token{op("-", 1), lp(2), num("2", 2, 3), rp(4)}},
		{"neg-neg", "--5", []Token{op("-", 1), num("-5", -5, 2)}},
		{"neg-const", "-pi", []Token{op("-", 1), cst("pi", 2)}},
		{"after-const", "pi-1", []Token{cst("pi", 1), op("-", 3), num("1", 1, 4)}},
		{"after-paren", "(1)-1", []Token{lp(1), num("1", 1, 2), rp(3), op("-", 4), num("1", 1, 5)}},
		// identifiers
		{"func", "sin(pi)", []Token{fn("sin", 1), lp(4), cst("pi", 5), rp(7)}},
		{"camel", "tenPowerX(2)", []Token{fn("tenPowerX", 1), lp(10), num("2", 2, 11), rp(12)}},
		{"e", "e", []Token{cst("e", 1)}},
		// operators
		{"ops", "1+2*3/4%5^6", []Token{
			num("1", 1, 1), op("+", 2), num("2", 2, 3), op("*", 4), num("3", 3, 5),
			op("/", 6), num("4", 4, 7), op("%", 8), num("5", 5, 9), op("^", 10), num("6", 6, 11),
		}},
		{"columns", " 1 +  2", []Token{num("1", 1, 2), op("+", 4), num("2", 2, 7)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		text string
		col  int
	}{
		{"dollar", "$", "$", 1},
		{"mid", "3$4", "$", 2},
		{"spaced", "1 $", "$", 3},
		{"ident", "foo", "foo", 1},
		{"case", "Sin(1)", "Sin", 1},
		{"ident-digits", "sin2x", "x", 5},
		{"dot", ".", ".", 1},
		{"sign-dot", "-.", "-.", 1},
		{"comma", "1,2", ",", 2},
		{"bracket", "[1]", "[", 1},
		{"unicode", "π", "π", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			require.Error(t, err)
			assert.Nil(t, toks)
			assert.True(t, errors.Is(err, ErrUnknownSymbol), "wrong kind: %v", err)
			var e *EvaluationError
			require.True(t, errors.As(err, &e))
			assert.Equal(t, c.text, e.Text)
			assert.Equal(t, c.col, e.Pos())
		})
	}
}

func TestTokenizeOverflow(t *testing.T) {
	toks, err := Tokenize("1e400")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.True(t, math.IsInf(toks[0].Value, 1), "want +Inf, got %v", toks[0].Value)
}
