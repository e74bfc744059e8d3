// Package display renders calculator results for people.
package display

import (
	"math"
	"strconv"
	"strings"

	"github.com/zephyrtronium/calculator"
)

// maxPlain is the magnitude from which integral results use exponent notation.
const maxPlain = 1e21

// Format renders a result. Integral values print without a fractional part,
// others in the shortest form that parses back to the same value. Negative
// zero prints as 0.
func Format(f float64) string {
	switch {
	case f == 0:
		return "0"
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case f == math.Trunc(f) && math.Abs(f) < maxPlain:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Postfix renders tokens in postfix order separated by spaces. Numbers are
// written by value, except constants, which keep their names.
func Postfix(toks []calculator.Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		if tok.Kind == calculator.TokenNumber && !isName(tok.Text) {
			b.WriteString(Format(tok.Value))
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func isName(s string) bool {
	_, ok := calculator.LookupConstant(s)
	return ok
}
