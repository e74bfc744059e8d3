package calculator

import "math"

// Assoc is the associativity of a binary operator.
type Assoc int8

const (
	// Left groups a op b op c as (a op b) op c.
	Left Assoc = iota
	// Right groups a op b op c as a op (b op c).
	Right
)

func (a Assoc) String() string {
	if a == Right {
		return "Right"
	}
	return "Left"
}

// OperatorSpec describes a binary infix operator.
type OperatorSpec struct {
	// Symbol is the operator's single-character text.
	Symbol string
	// Prec is the precedence. Higher is more binding.
	Prec int
	// Assoc is the associativity among operators of equal precedence.
	Assoc Assoc
	// Arity is always 2.
	Arity int

	apply func(a, b float64) (float64, error)
}

// Apply computes a op b.
func (op OperatorSpec) Apply(a, b float64) (float64, error) {
	return op.apply(a, b)
}

// FunctionSpec describes a named function of one argument.
type FunctionSpec struct {
	// Name is the identifier that calls the function.
	Name string
	// Arity is always 1.
	Arity int

	eval func(x float64) (float64, error)
}

// Call evaluates the function at x.
func (f FunctionSpec) Call(x float64) (float64, error) {
	return f.eval(x)
}

// Operators contains the runes which are binary operators.
const Operators = "+-*/%^"

var operators = map[string]OperatorSpec{
	"+": {Symbol: "+", Prec: 1, Assoc: Left, Arity: 2, apply: add},
	"-": {Symbol: "-", Prec: 1, Assoc: Left, Arity: 2, apply: sub},
	"*": {Symbol: "*", Prec: 2, Assoc: Left, Arity: 2, apply: mul},
	"/": {Symbol: "/", Prec: 2, Assoc: Left, Arity: 2, apply: quo},
	"%": {Symbol: "%", Prec: 2, Assoc: Left, Arity: 2, apply: mod},
	"^": {Symbol: "^", Prec: 3, Assoc: Right, Arity: 2, apply: pow},
}

var functions = map[string]FunctionSpec{
	"sin":       monadic("sin", math.Sin),
	"cos":       monadic("cos", math.Cos),
	"tan":       monadic("tan", math.Tan),
	"asin":      monadic("asin", math.Asin),
	"acos":      monadic("acos", math.Acos),
	"atan":      monadic("atan", math.Atan),
	"log":       {Name: "log", Arity: 1, eval: log10},
	"ln":        {Name: "ln", Arity: 1, eval: ln},
	"sqrt":      {Name: "sqrt", Arity: 1, eval: sqrt},
	"square":    monadic("square", square),
	"cube":      monadic("cube", cube),
	"factorial": {Name: "factorial", Arity: 1, eval: factorial},
	"tenPowerX": monadic("tenPowerX", tenPowerX),
	"twoPowerX": monadic("twoPowerX", math.Exp2),
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// monadic wraps a total function of one variable into a FunctionSpec.
func monadic(name string, f func(float64) float64) FunctionSpec {
	return FunctionSpec{
		Name:  name,
		Arity: 1,
		eval: func(x float64) (float64, error) {
			return f(x), nil
		},
	}
}

// LookupOperator returns the operator with the given symbol.
func LookupOperator(symbol string) (OperatorSpec, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// LookupFunction returns the function with the given name. Lookup is exact
// and case-sensitive.
func LookupFunction(name string) (FunctionSpec, bool) {
	f, ok := functions[name]
	return f, ok
}

// LookupConstant returns the value of the named constant.
func LookupConstant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

// Functions returns the sorted names of all functions.
func Functions() []string {
	return sortedKeys(functions)
}

// Constants returns the sorted names of all constants.
func Constants() []string {
	return sortedKeys(constants)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
