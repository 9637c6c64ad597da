package netsym

import (
	"fmt"

	"github.com/njchilds90/netsym/sym"
)

// Discrete-time operations. Sequences live in the n domain with an
// implicit sample interval carried by the dt symbol; their spectra live
// in the z domain, in f through the DTFT, or in the bin index k through
// the DFT.

// Z computes the unilateral z-transform of a sequence.
func (x Expr) Z() (Expr, error) {
	if x.domain != DiscreteTimeDomain {
		return Expr{}, &TransformError{From: x.domain, To: ZDomain, Detail: "not a sequence"}
	}
	e, err := sym.ZTransform(x.e, "n", "z")
	if err != nil {
		return Expr{}, &TransformError{From: DiscreteTimeDomain, To: ZDomain, Detail: err.Error()}
	}
	x.e = e
	x.domain = ZDomain
	return x, nil
}

// Sequence inverts a z-domain value back to a sequence, valid for
// non-negative indices.
func (x Expr) Sequence() (Expr, error) {
	if x.domain != ZDomain {
		return Expr{}, &TransformError{From: x.domain, To: DiscreteTimeDomain, Detail: "not a z-domain value"}
	}
	e, err := sym.InverseZ(x.e, "z", "n")
	if err != nil {
		return Expr{}, &TransformError{From: ZDomain, To: DiscreteTimeDomain, Detail: err.Error()}
	}
	x.e = e
	x.domain = DiscreteTimeDomain
	return x, nil
}

// DTFT computes the discrete-time Fourier transform. Finite impulse
// combinations transform exactly; other sequences must be causal and go
// through the z-transform with z = exp(j 2 pi f dt).
func (x Expr) DTFT() (Expr, error) {
	if x.domain != DiscreteTimeDomain {
		return Expr{}, &TransformError{From: x.domain, To: FourierDomain, Detail: "not a sequence"}
	}
	e, err := sym.DTFT(x.e, "n", "f", "dt", x.assume.Causal)
	if err != nil {
		return Expr{}, &TransformError{From: DiscreteTimeDomain, To: FourierDomain, Detail: err.Error()}
	}
	x.e = e
	x.domain = FourierDomain
	return x, nil
}

// DFT computes the length-N discrete Fourier transform of a finite
// impulse combination.
func (x Expr) DFT(size int) (Expr, error) {
	if x.domain != DiscreteTimeDomain {
		return Expr{}, &TransformError{From: x.domain, To: DiscreteFourierDomain, Detail: "not a sequence"}
	}
	if size <= 0 {
		return Expr{}, &TransformError{From: DiscreteTimeDomain, To: DiscreteFourierDomain,
			Detail: "transform length must be positive"}
	}
	terms := sym.Terms(sym.Expand(sym.Simplify(x.e)))
	out := make([]sym.Expr, 0, len(terms))
	for _, term := range terms {
		c, shift, err := impulseTerm(term, "n")
		if err != nil {
			return Expr{}, &TransformError{From: DiscreteTimeDomain, To: DiscreteFourierDomain, Detail: err.Error()}
		}
		// uimp(n-m) -> exp(-j 2 pi k m / N)
		out = append(out, sym.MulOf(c,
			sym.Exp(sym.MulOf(sym.F(-2, int64(size)), sym.J(), sym.Pi(), sym.S("k"), shift))))
	}
	x.e = sym.AddOf(out...).Simplify()
	x.domain = DiscreteFourierDomain
	return x, nil
}

// InverseDFT inverts a length-N spectrum given as a combination of bin
// impulses.
func (x Expr) InverseDFT(size int) (Expr, error) {
	if x.domain != DiscreteFourierDomain {
		return Expr{}, &TransformError{From: x.domain, To: DiscreteTimeDomain, Detail: "not a spectrum"}
	}
	if size <= 0 {
		return Expr{}, &TransformError{From: DiscreteFourierDomain, To: DiscreteTimeDomain,
			Detail: "transform length must be positive"}
	}
	terms := sym.Terms(sym.Expand(sym.Simplify(x.e)))
	out := make([]sym.Expr, 0, len(terms))
	for _, term := range terms {
		c, shift, err := impulseTerm(term, "k")
		if err != nil {
			return Expr{}, &TransformError{From: DiscreteFourierDomain, To: DiscreteTimeDomain, Detail: err.Error()}
		}
		// uimp(k-m) -> exp(j 2 pi m n / N) / N
		out = append(out, sym.MulOf(c, sym.F(1, int64(size)),
			sym.Exp(sym.MulOf(sym.F(2, int64(size)), sym.J(), sym.Pi(), sym.S("n"), shift))))
	}
	x.e = sym.AddOf(out...).Simplify()
	x.domain = DiscreteTimeDomain
	return x, nil
}

// impulseTerm matches c * uimp(v - m) and returns c and m.
func impulseTerm(term sym.Expr, varName string) (c, shift sym.Expr, err error) {
	constPart, varPart := sym.SplitConst(term, varName)
	fn, ok := varPart.(*sym.Func)
	if !ok || fn.FuncName() != "uimp" {
		return nil, nil, fmt.Errorf("term %s is not a shifted unit impulse", term)
	}
	c1, c0, lok := sym.LinearCoeffs(fn.Args()[0], varName)
	if !lok || !c1.Equal(sym.N(1)) {
		return nil, nil, fmt.Errorf("term %s is not a shifted unit impulse", term)
	}
	return constPart, sym.Neg(c0).Simplify(), nil
}

// Difference returns the first backward difference scaled by the sample
// interval: (x[n] - x[n-1]) / dt.
func (x Expr) Difference() (Expr, error) {
	if x.domain != DiscreteTimeDomain {
		return Expr{}, &TransformError{From: x.domain, To: DiscreteTimeDomain, Detail: "not a sequence"}
	}
	prev := sym.Subst(x.e, "n", sym.SubOf(sym.S("n"), sym.N(1)))
	x.e = sym.DivOf(sym.SubOf(x.e, prev), sym.S("dt")).Simplify()
	return x, nil
}

// RunningSum returns the running sum scaled by the sample interval,
// the discrete counterpart of integration from zero. Constant terms and
// shifted impulses are supported.
func (x Expr) RunningSum() (Expr, error) {
	if x.domain != DiscreteTimeDomain {
		return Expr{}, &TransformError{From: x.domain, To: DiscreteTimeDomain, Detail: "not a sequence"}
	}
	n := sym.S("n")
	dt := sym.S("dt")
	terms := sym.Terms(sym.Expand(sym.Simplify(x.e)))
	out := make([]sym.Expr, 0, len(terms))
	for _, term := range terms {
		constPart, varPart := sym.SplitConst(term, "n")
		switch {
		case !dependsOnN(varPart):
			// Sum of a constant over 0..n is (n+1) samples.
			out = append(out, sym.MulOf(constPart, varPart, dt, sym.AddOf(n, sym.N(1))))
		default:
			fn, ok := varPart.(*sym.Func)
			if !ok || fn.FuncName() != "uimp" {
				return Expr{}, &TransformError{From: DiscreteTimeDomain, To: DiscreteTimeDomain,
					Detail: fmt.Sprintf("cannot sum %s", term)}
			}
			c1, c0, lok := sym.LinearCoeffs(fn.Args()[0], "n")
			if !lok || !c1.Equal(sym.N(1)) {
				return Expr{}, &TransformError{From: DiscreteTimeDomain, To: DiscreteTimeDomain,
					Detail: fmt.Sprintf("cannot sum %s", term)}
			}
			// An impulse at m accumulates into a step from m onward.
			out = append(out, sym.MulOf(constPart, dt, sym.Heaviside(sym.AddOf(n, c0))))
		}
	}
	x.e = sym.AddOf(out...).Simplify()
	return x, nil
}

func dependsOnN(e sym.Expr) bool {
	_, ok := sym.FreeSymbols(e)["n"]
	return ok
}
