package calculator

// ToPostfix reorders tokens from infix to postfix order using the
// shunting-yard algorithm. The result contains only numbers, operators, and
// functions: constants become numbers, and parentheses are consumed.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2)
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNumber:
			out = append(out, tok)
		case TokenConstant:
			v, ok := LookupConstant(tok.Text)
			if !ok {
				return nil, &EvaluationError{Kind: UnknownSymbol, Text: tok.Text, Col: tok.Col}
			}
			out = append(out, Token{Kind: TokenNumber, Text: tok.Text, Value: v, Col: tok.Col})
		case TokenFunction, TokenLeftParen:
			stack = append(stack, tok)
		case TokenRightParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenLeftParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &EvaluationError{Kind: MismatchedParentheses, Reason: "close paren with no open paren", Col: tok.Col}
			}
			stack = stack[:len(stack)-1]
			// A function directly before the group binds to it.
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunction {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case TokenOperator:
			op, ok := LookupOperator(tok.Text)
			if !ok {
				return nil, &EvaluationError{Kind: UnknownSymbol, Text: tok.Text, Col: tok.Col}
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOperator || !yields(op, operators[top.Text]) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		default:
			panic("calculator: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == TokenLeftParen || top.Kind == TokenRightParen {
			return nil, &EvaluationError{Kind: MismatchedParentheses, Reason: "open paren with no close paren", Col: top.Col}
		}
		out = append(out, top)
		stack = stack[:len(stack)-1]
	}
	return out, nil
}

// yields reports whether an incoming operator op causes top to be popped from
// the stack first.
func yields(op, top OperatorSpec) bool {
	if op.Assoc == Right {
		return op.Prec < top.Prec
	}
	return op.Prec <= top.Prec
}
