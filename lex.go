package calculator

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	// src is the input with whitespace removed.
	src []rune
	// cols holds the input column of each rune in src.
	cols []int
	// k is the index of the next rune to scan.
	k    int
	toks []Token
}

func lex(s string) *lexer {
	l := lexer{
		src:  make([]rune, 0, len(s)),
		cols: make([]int, 0, len(s)),
	}
	col := 0
	for _, r := range s {
		col++
		if unicode.IsSpace(r) {
			continue
		}
		l.src = append(l.src, r)
		l.cols = append(l.cols, col)
	}
	return &l
}

// Tokenize splits an expression into tokens. Whitespace is discarded before
// scanning, so "1 2" is the single number 12. A + or - at the start of the
// expression, after (, or after another operator is folded into the number
// literal that immediately follows it.
func Tokenize(expression string) ([]Token, error) {
	l := lex(expression)
	for l.k < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.toks, nil
}

// peek returns the rune i places after the next one, or -1 past the end.
func (l *lexer) peek(i int) rune {
	if l.k+i >= len(l.src) {
		return -1
	}
	return l.src[l.k+i]
}

func (l *lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
}

// next scans one token.
func (l *lexer) next() error {
	r := l.src[l.k]
	col := l.cols[l.k]
	switch {
	case isDigit(r), r == '.':
		return l.scanNum()
	case unicode.IsLetter(r):
		return l.scanIdent()
	case r == '(':
		l.k++
		l.emit(Token{Kind: TokenLeftParen, Text: "(", Col: col})
	case r == ')':
		l.k++
		l.emit(Token{Kind: TokenRightParen, Text: ")", Col: col})
	case strings.ContainsRune(Operators, r):
		if (r == '+' || r == '-') && l.unary() {
			if s := l.peek(1); isDigit(s) || s == '.' {
				return l.scanNum()
			}
		}
		l.k++
		l.emit(Token{Kind: TokenOperator, Text: string(r), Col: col})
	default:
		return &EvaluationError{Kind: UnknownSymbol, Text: string(r), Col: col}
	}
	return nil
}

// unary reports whether the next token is in unary position.
func (l *lexer) unary() bool {
	if len(l.toks) == 0 {
		return true
	}
	switch l.toks[len(l.toks)-1].Kind {
	case TokenLeftParen, TokenOperator:
		return true
	}
	return false
}

// scanNum scans an optionally signed number literal with an optional
// exponent. The exponent marker belongs to the number only if digits follow
// it, so "2e" is 2 followed by the constant e.
func (l *lexer) scanNum() error {
	start := l.k
	if r := l.src[l.k]; r == '+' || r == '-' {
		l.k++
	}
	var dig, dot bool
scan:
	for l.k < len(l.src) {
		switch r := l.src[l.k]; {
		case isDigit(r):
			dig = true
		case r == '.' && !dot:
			dot = true
		default:
			break scan
		}
		l.k++
	}
	text := string(l.src[start:l.k])
	if !dig {
		return &EvaluationError{Kind: UnknownSymbol, Text: text, Reason: "number has no digits", Col: l.cols[start]}
	}
	if r := l.peek(0); r == 'e' || r == 'E' {
		n := 1
		if s := l.peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			l.k += n
			for isDigit(l.peek(0)) {
				l.k++
			}
			text = string(l.src[start:l.k])
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	// Out of range literals are ±Inf, which ParseFloat returns with the error.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return &EvaluationError{Kind: UnknownSymbol, Text: text, Reason: "invalid number", Col: l.cols[start]}
	}
	l.emit(Token{Kind: TokenNumber, Text: text, Value: v, Col: l.cols[start]})
	return nil
}

// scanIdent scans a run of letters and classifies it as a function or
// constant.
func (l *lexer) scanIdent() error {
	start := l.k
	for l.k < len(l.src) && unicode.IsLetter(l.src[l.k]) {
		l.k++
	}
	name := string(l.src[start:l.k])
	col := l.cols[start]
	if _, ok := LookupFunction(name); ok {
		l.emit(Token{Kind: TokenFunction, Text: name, Col: col})
		return nil
	}
	if _, ok := LookupConstant(name); ok {
		l.emit(Token{Kind: TokenConstant, Text: name, Col: col})
		return nil
	}
	return &EvaluationError{Kind: UnknownSymbol, Text: name, Col: col}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
