package netsym

import (
	"fmt"
	"math"
	"sort"

	"github.com/njchilds90/netsym/sym"
)

// Evaluate computes the value at the given points of the domain
// variable. Impulses evaluate to +Inf at their argument's zero, the
// step is one for non-negative arguments, and square roots of negative
// reals land on the positive imaginary axis.
func (x Expr) Evaluate(points ...float64) ([]complex128, error) {
	v := x.domain.Variable()
	out := make([]complex128, len(points))
	for i, p := range points {
		bindings := map[string]complex128{}
		if v != "" {
			bindings[v] = complex(p, 0)
		}
		val, ok := x.e.EvalComplex(bindings)
		if !ok {
			return nil, &EvaluationError{
				Detail: fmt.Sprintf("cannot evaluate %s: unbound symbols %v", x.e, freeParams(x))}
		}
		out[i] = val
	}
	return out, nil
}

// EvaluateComplex computes the value at complex points, for probing the
// s and z planes directly.
func (x Expr) EvaluateComplex(points ...complex128) ([]complex128, error) {
	v := x.domain.Variable()
	if v == "" {
		return nil, &EvaluationError{Detail: "the " + x.domain.String() + " domain has no variable to bind"}
	}
	out := make([]complex128, len(points))
	for i, p := range points {
		val, ok := x.e.EvalComplex(map[string]complex128{v: p})
		if !ok {
			return nil, &EvaluationError{
				Detail: fmt.Sprintf("cannot evaluate %s: unbound symbols %v", x.e, freeParams(x))}
		}
		out[i] = val
	}
	return out, nil
}

// EvaluateReal is Evaluate for values expected to be real; a residual
// imaginary part beyond rounding noise is an error.
func (x Expr) EvaluateReal(points ...float64) ([]float64, error) {
	vals, err := x.Evaluate(points...)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		if math.Abs(imag(v)) > 1e-9*(1+math.Abs(real(v))) {
			return nil, &EvaluationError{
				Detail: fmt.Sprintf("value %v at point %d is not real", v, i)}
		}
		out[i] = real(v)
	}
	return out, nil
}

// freeParams lists the free symbols other than the domain variable.
func freeParams(x Expr) []string {
	v := x.domain.Variable()
	var out []string
	for name := range sym.FreeSymbols(x.e) {
		if name != v {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
