package calculator

import "strconv"

// Evaluate computes the value of an infix expression. It is safe to call
// concurrently; all state lives for the duration of the call.
func Evaluate(expression string) (float64, error) {
	toks, err := Tokenize(expression)
	if err != nil {
		return 0, err
	}
	post, err := ToPostfix(toks)
	if err != nil {
		return 0, err
	}
	return EvaluatePostfix(post)
}

// stack is a stack of values for evaluating postfix sequences.
type stack []float64

func (s *stack) push(x float64) {
	*s = append(*s, x)
}

// pop removes the top from the stack and returns it.
func (s *stack) pop() float64 {
	r := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return r
}

// EvaluatePostfix evaluates a token sequence in postfix order, as produced
// by ToPostfix.
func EvaluatePostfix(tokens []Token) (float64, error) {
	s := make(stack, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			s.push(tok.Value)
		case TokenFunction:
			f, ok := LookupFunction(tok.Text)
			if !ok {
				return 0, &EvaluationError{Kind: UnknownSymbol, Text: tok.Text, Col: tok.Col}
			}
			if len(s) < f.Arity {
				return 0, &EvaluationError{Kind: InsufficientOperands, Text: tok.Text, Col: tok.Col}
			}
			r, err := f.Call(s.pop())
			if err != nil {
				return 0, at(err, tok)
			}
			s.push(r)
		case TokenOperator:
			op, ok := LookupOperator(tok.Text)
			if !ok {
				return 0, &EvaluationError{Kind: UnknownSymbol, Text: tok.Text, Col: tok.Col}
			}
			if len(s) < op.Arity {
				return 0, &EvaluationError{Kind: InsufficientOperands, Text: tok.Text, Col: tok.Col}
			}
			b := s.pop()
			a := s.pop()
			r, err := op.Apply(a, b)
			if err != nil {
				return 0, at(err, tok)
			}
			s.push(r)
		default:
			// Parens and constants never survive ToPostfix.
			return 0, &EvaluationError{Kind: InvalidExpression, Text: tok.Text, Reason: "unexpected " + tok.Kind.String() + " in postfix", Col: tok.Col}
		}
	}
	switch len(s) {
	case 0:
		return 0, &EvaluationError{Kind: InvalidExpression, Reason: "no value"}
	case 1:
		return s[0], nil
	default:
		return 0, &EvaluationError{Kind: InvalidExpression, Reason: strconv.Itoa(len(s)) + " values with no operator between them"}
	}
}

// at attaches the position of tok to an EvaluationError which lacks one.
func at(err error, tok Token) error {
	if e, ok := err.(*EvaluationError); ok && e.Col == 0 {
		r := *e
		r.Col = tok.Col
		return &r
	}
	return err
}
