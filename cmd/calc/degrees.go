package main

import (
	"math"

	"github.com/zephyrtronium/calculator"
)

var (
	toRadians = map[string]bool{"sin": true, "cos": true, "tan": true}
	toDegrees = map[string]bool{"asin": true, "acos": true, "atan": true}
)

// degrees rewrites a postfix sequence so that trigonometric functions take
// and inverse trigonometric functions return angles in degrees. A function
// whose operand is missing is left alone, as is everything after it, so the
// evaluator reports the same error it would without the rewrite.
func degrees(post []calculator.Token) []calculator.Token {
	r := make([]calculator.Token, 0, len(post))
	depth := 0
	for i, tok := range post {
		switch tok.Kind {
		case calculator.TokenNumber:
			depth++
		case calculator.TokenOperator:
			if depth < 2 {
				return append(r, post[i:]...)
			}
			depth--
		case calculator.TokenFunction:
			if depth < 1 {
				return append(r, post[i:]...)
			}
		}
		switch {
		case tok.Kind != calculator.TokenFunction:
			r = append(r, tok)
		case toRadians[tok.Text]:
			r = append(r, scale(tok, math.Pi/180)...)
			r = append(r, tok)
		case toDegrees[tok.Text]:
			r = append(r, tok)
			r = append(r, scale(tok, 180/math.Pi)...)
		default:
			r = append(r, tok)
		}
	}
	return r
}

// scale returns tokens that multiply the top of the stack by k.
func scale(at calculator.Token, k float64) []calculator.Token {
	return []calculator.Token{
		{Kind: calculator.TokenNumber, Value: k, Col: at.Col},
		{Kind: calculator.TokenOperator, Text: "*", Col: at.Col},
	}
}

// convert tokenizes src and converts it to postfix.
func convert(src string) ([]calculator.Token, error) {
	toks, err := calculator.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return calculator.ToPostfix(toks)
}

// evaluate evaluates src, measuring angles in degrees if deg is set.
func evaluate(src string, deg bool) (float64, error) {
	if !deg {
		return calculator.Evaluate(src)
	}
	post, err := convert(src)
	if err != nil {
		return 0, err
	}
	return calculator.EvaluatePostfix(degrees(post))
}
