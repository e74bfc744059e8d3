package calculator

import "math"

// maxFactorial is the largest n for which n! is finite in float64.
const maxFactorial = 170

func add(a, b float64) (float64, error) { return a + b, nil }
func sub(a, b float64) (float64, error) { return a - b, nil }
func mul(a, b float64) (float64, error) { return a * b, nil }

func quo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &EvaluationError{Kind: DivisionByZero, Text: "/"}
	}
	return a / b, nil
}

func mod(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &EvaluationError{Kind: DivisionByZero, Text: "%"}
	}
	return math.Mod(a, b), nil
}

// pow has no domain restriction. Negative bases with fractional exponents
// produce NaN.
func pow(a, b float64) (float64, error) {
	return math.Pow(a, b), nil
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, &EvaluationError{Kind: DomainError, Text: "sqrt", Reason: "square root of negative number"}
	}
	return math.Sqrt(x), nil
}

func log10(x float64) (float64, error) {
	if x <= 0 {
		return 0, &EvaluationError{Kind: DomainError, Text: "log", Reason: "logarithm of non-positive number"}
	}
	return math.Log10(x), nil
}

func ln(x float64) (float64, error) {
	if x <= 0 {
		return 0, &EvaluationError{Kind: DomainError, Text: "ln", Reason: "logarithm of non-positive number"}
	}
	return math.Log(x), nil
}

func square(x float64) float64 { return x * x }

func cube(x float64) float64 { return x * x * x }

func tenPowerX(x float64) float64 { return math.Pow(10, x) }

// factorial computes x! for non-negative integral x as the product 2..x.
func factorial(x float64) (float64, error) {
	if x < 0 {
		return 0, &EvaluationError{Kind: DomainError, Text: "factorial", Reason: "factorial of negative number"}
	}
	// NaN fails this too.
	if x != math.Floor(x) {
		return 0, &EvaluationError{Kind: DomainError, Text: "factorial", Reason: "factorial of non-integer"}
	}
	if x > maxFactorial {
		return math.Inf(1), nil
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}
