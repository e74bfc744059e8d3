package calculator

import (
	"strconv"
	"strings"
)

// Token is a lexical token of an expression. Tokens are values; nothing
// modifies a token after the tokenizer produces it.
type Token struct {
	// Kind is the token's type.
	Kind TokenKind
	// Text is the source text of the token. For numbers synthesized from
	// constants, it is the constant's name.
	Text string
	// Value is the numeric value of a TokenNumber.
	Value float64
	// Col is the 1-based rune column of the token in the input.
	Col int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNumber is a numeric literal, possibly signed.
	TokenNumber
	// TokenOperator is one of the binary operators in Operators.
	TokenOperator
	// TokenFunction is the name of a registered function.
	TokenFunction
	// TokenConstant is the name of a registered constant.
	TokenConstant
	// TokenLeftParen is (.
	TokenLeftParen
	// TokenRightParen is ).
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenFunction:
		return "Function"
	case TokenConstant:
		return "Constant"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Join formats a token sequence as the texts of its tokens separated by
// spaces, e.g. "3 4 2 * +" for a postfix sequence.
func Join(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
