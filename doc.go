// Package calculator implements a float64 scientific calculator.
//
// Evaluate runs an expression through three stages: Tokenize splits it into
// tokens, ToPostfix reorders them with the shunting-yard algorithm, and
// EvaluatePostfix reduces the result on a value stack. Operators are
// + - * / % ^, with ^ binding tightest and grouping to the right, so "2^3^2"
// is 512. Functions take one argument, as in "sqrt(2)", and the constants pi
// and e are available by name. Trigonometric functions work in radians.
//
// A sign at the start of an expression, after an open paren, or after another
// operator is part of the number that follows it: "3*-2" is -6. There is no
// separate negation operator, so "-(2)" is an error.
//
// All errors are of type *EvaluationError, which can be tested against the
// Err* sentinels with errors.Is.
package calculator
