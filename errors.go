package calculator

import "strconv"

// ErrorKind classifies an EvaluationError.
type ErrorKind int8

const (
	kindNone ErrorKind = iota
	// UnknownSymbol is an unrecognized character or identifier.
	UnknownSymbol
	// MismatchedParentheses is a close paren with no open paren or vice versa.
	MismatchedParentheses
	// InsufficientOperands is an operator or function with nothing to apply to.
	InsufficientOperands
	// DivisionByZero is a / or % with a divisor of exactly zero.
	DivisionByZero
	// DomainError is a function argument outside the function's domain.
	DomainError
	// InvalidExpression is a postfix stream which does not reduce to exactly
	// one value.
	InvalidExpression
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownSymbol:
		return "UnknownSymbol"
	case MismatchedParentheses:
		return "MismatchedParentheses"
	case InsufficientOperands:
		return "InsufficientOperands"
	case DivisionByZero:
		return "DivisionByZero"
	case DomainError:
		return "DomainError"
	case InvalidExpression:
		return "InvalidExpression"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// EvaluationError is the error type for every failure of Tokenize, ToPostfix,
// EvaluatePostfix, and Evaluate.
type EvaluationError struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Text is the symbol, operator, or function name involved, if any.
	Text string
	// Reason describes the violated precondition, e.g. for DomainError.
	Reason string
	// Col is the 1-based rune column of the token that caused the error, or 0
	// if the error is not attributable to a single token.
	Col int
}

// Sentinel errors for use with errors.Is. An EvaluationError matches a
// sentinel of the same Kind.
var (
	ErrUnknownSymbol         = &EvaluationError{Kind: UnknownSymbol}
	ErrMismatchedParentheses = &EvaluationError{Kind: MismatchedParentheses}
	ErrInsufficientOperands  = &EvaluationError{Kind: InsufficientOperands}
	ErrDivisionByZero        = &EvaluationError{Kind: DivisionByZero}
	ErrDomain                = &EvaluationError{Kind: DomainError}
	ErrInvalidExpression     = &EvaluationError{Kind: InvalidExpression}
)

func (err *EvaluationError) Error() string {
	var msg string
	switch err.Kind {
	case UnknownSymbol:
		msg = "unknown symbol " + strconv.Quote(err.Text)
	case MismatchedParentheses:
		msg = "mismatched parentheses"
	case InsufficientOperands:
		msg = "insufficient operands for " + strconv.Quote(err.Text)
	case DivisionByZero:
		msg = "division by zero"
	case DomainError:
		msg = "domain error"
		if err.Text != "" {
			msg += " in " + err.Text
		}
	case InvalidExpression:
		msg = "invalid expression"
	default:
		msg = "evaluation error"
	}
	if err.Reason != "" {
		msg += ": " + err.Reason
	}
	return errpos(err.Col, msg)
}

// Is reports whether target is an *EvaluationError of the same kind. If
// target has non-empty Text, it must also match.
func (err *EvaluationError) Is(target error) bool {
	t, ok := target.(*EvaluationError)
	if !ok {
		return false
	}
	return t.Kind == err.Kind && (t.Text == "" || t.Text == err.Text)
}

// Pos returns the rune column of the error, or 0 if it has none.
func (err *EvaluationError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of the
	// token that caused it, or 0 if no single token did.
	Pos() int
}

var _ InputError = (*EvaluationError)(nil)
