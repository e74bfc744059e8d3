// Package reference evaluates calculator expressions to arbitrary precision.
//
// It parses the same tokens as package calculator with a separate
// precedence-climbing parser and computes with math/big, so its results can be
// used to check the float64 evaluator. Trigonometric functions have no
// arbitrary precision implementation and return ErrUnsupported.
package reference
