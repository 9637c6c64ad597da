package netsym

import "github.com/njchilds90/netsym/sym"

// Domain conversions. Each conversion preserves the role and carries the
// signal assumptions across; causality decides both the route taken
// (causal signals reach the Fourier domain through s -> j 2 pi f) and
// the gating of inverse transforms.

func jTwoPiF() sym.Expr {
	return sym.MulOf(sym.J(), sym.N(2), sym.Pi(), sym.S("f"))
}

// Laplace converts to the s domain.
func (x Expr) Laplace() (Expr, error) {
	switch x.domain {
	case LaplaceDomain:
		return x, nil
	case ConstantDomain:
		// A constant held for all time transforms like a step level.
		x.e = sym.DivOf(x.e, sym.S("s")).Simplify()
		x.domain = LaplaceDomain
		return x, nil
	case TimeDomain:
		e, err := sym.Laplace(x.e, "t", "s")
		if err != nil {
			return Expr{}, &TransformError{From: TimeDomain, To: LaplaceDomain, Detail: err.Error()}
		}
		x.e = e
		x.domain = LaplaceDomain
		return x, nil
	case FourierDomain:
		// f = s / (j 2 pi)
		x.e = sym.Subst(x.e, "f", sym.DivOf(sym.S("s"), sym.MulOf(sym.J(), sym.N(2), sym.Pi())))
		x.domain = LaplaceDomain
		return x, nil
	case AngularFourierDomain:
		// omega = s / j = -j s
		x.e = sym.Subst(x.e, "omega", sym.MulOf(sym.N(-1), sym.J(), sym.S("s")))
		x.domain = LaplaceDomain
		return x, nil
	case PhasorDomain:
		t, err := x.Time()
		if err != nil {
			return Expr{}, err
		}
		return t.Laplace()
	}
	return Expr{}, &TransformError{From: x.domain, To: LaplaceDomain, Detail: "no conversion defined"}
}

// Time converts to the time domain. For Laplace-domain values the
// causal assumption gates the result with a unit step; dc and ac values
// extend to all t; otherwise the result is only valid for t >= 0.
func (x Expr) Time() (Expr, error) {
	switch x.domain {
	case TimeDomain:
		return x, nil
	case ConstantDomain:
		x.domain = TimeDomain
		return x, nil
	case LaplaceDomain:
		e, err := sym.InverseLaplace(x.e, "s", "t")
		if err != nil {
			return Expr{}, &TransformError{From: LaplaceDomain, To: TimeDomain, Detail: err.Error()}
		}
		if x.assume.Causal {
			e = gateWithStep(e)
		}
		x.e = e.Simplify()
		x.domain = TimeDomain
		return x, nil
	case FourierDomain:
		if e, err := sym.InverseFourier(x.e, "f", "t"); err == nil {
			x.e = e
			x.domain = TimeDomain
			return x, nil
		}
		ls, err := x.Laplace()
		if err != nil {
			return Expr{}, err
		}
		return ls.Time()
	case AngularFourierDomain:
		f, err := x.Fourier()
		if err != nil {
			return Expr{}, err
		}
		return f.Time()
	case PhasorDomain:
		re, im, err := sym.RealImag(x.e)
		if err != nil {
			return Expr{}, &TransformError{From: PhasorDomain, To: TimeDomain, Detail: err.Error()}
		}
		wt := sym.MulOf(x.omega, sym.S("t"))
		// x(t) = Re{X e^(j omega t)}
		x.e = sym.SubOf(sym.MulOf(re, sym.Cos(wt)), sym.MulOf(im, sym.Sin(wt))).Simplify()
		x.domain = TimeDomain
		x.omega = nil
		x.assume = Assumptions{AC: true}
		return x, nil
	}
	return Expr{}, &TransformError{From: x.domain, To: TimeDomain, Detail: "no conversion defined"}
}

// gateWithStep multiplies non-impulsive terms by u(t). Impulses at the
// origin are left alone.
func gateWithStep(e sym.Expr) sym.Expr {
	terms := sym.Terms(e.Simplify())
	out := make([]sym.Expr, len(terms))
	for i, t := range terms {
		if sym.HasFunc(t, "delta") || sym.HasFunc(t, "u") {
			out[i] = t
			continue
		}
		out[i] = sym.MulOf(t, sym.Heaviside(sym.S("t")))
	}
	return sym.AddOf(out...)
}

// Fourier converts to the ordinary-frequency domain.
func (x Expr) Fourier() (Expr, error) {
	switch x.domain {
	case FourierDomain:
		return x, nil
	case ConstantDomain:
		x.e = sym.MulOf(x.e, sym.DiracDelta(sym.S("f"))).Simplify()
		x.domain = FourierDomain
		return x, nil
	case TimeDomain:
		if x.assume.Causal {
			ls, err := x.Laplace()
			if err != nil {
				return Expr{}, err
			}
			return ls.Fourier()
		}
		e, err := sym.Fourier(x.e, "t", "f")
		if err != nil {
			return Expr{}, &TransformError{From: TimeDomain, To: FourierDomain, Detail: err.Error()}
		}
		x.e = e
		x.domain = FourierDomain
		return x, nil
	case LaplaceDomain:
		// s = j 2 pi f along the imaginary axis.
		x.e = sym.Subst(x.e, "s", jTwoPiF())
		x.domain = FourierDomain
		return x, nil
	case AngularFourierDomain:
		x.e = sym.Subst(x.e, "omega", sym.MulOf(sym.N(2), sym.Pi(), sym.S("f")))
		x.domain = FourierDomain
		return x, nil
	case PhasorDomain:
		t, err := x.Time()
		if err != nil {
			return Expr{}, err
		}
		return t.Fourier()
	}
	return Expr{}, &TransformError{From: x.domain, To: FourierDomain, Detail: "no conversion defined"}
}

// AngularFourier converts to the omega domain.
func (x Expr) AngularFourier() (Expr, error) {
	switch x.domain {
	case AngularFourierDomain:
		return x, nil
	case LaplaceDomain:
		// s = j omega
		x.e = sym.Subst(x.e, "s", sym.MulOf(sym.J(), sym.S("omega")))
		x.domain = AngularFourierDomain
		return x, nil
	case FourierDomain:
		// f = omega / (2 pi)
		x.e = sym.Subst(x.e, "f", sym.DivOf(sym.S("omega"), sym.MulOf(sym.N(2), sym.Pi())))
		x.domain = AngularFourierDomain
		return x, nil
	case ConstantDomain, TimeDomain, PhasorDomain:
		f, err := x.Fourier()
		if err != nil {
			return Expr{}, err
		}
		return f.AngularFourier()
	}
	return Expr{}, &TransformError{From: x.domain, To: AngularFourierDomain, Detail: "no conversion defined"}
}

// Phasor extracts the complex amplitude of a single-tone ac signal.
func (x Expr) Phasor() (Expr, error) {
	switch x.domain {
	case PhasorDomain:
		return x, nil
	case TimeDomain:
		amp, omega, ok := phasorOfTime(x.e)
		if !ok {
			return Expr{}, &TransformError{From: TimeDomain, To: PhasorDomain,
				Detail: "not a single-frequency sinusoid"}
		}
		return NewPhasor(x.role, amp, omega)
	}
	return Expr{}, &TransformError{From: x.domain, To: PhasorDomain, Detail: "no conversion defined"}
}

// phasorOfTime matches a sum of sinusoids at one angular frequency and
// returns amplitude and carrier. cos maps to 1, sin to -j, phase offsets
// to e^(j phi).
func phasorOfTime(e sym.Expr) (amp, omega sym.Expr, ok bool) {
	terms := sym.Terms(sym.Expand(e.Simplify()))
	var total sym.Expr = sym.N(0)
	for _, term := range terms {
		a, w, ok := phasorOfTerm(term)
		if !ok {
			return nil, nil, false
		}
		if omega == nil {
			omega = w
		} else if !omega.Equal(w) {
			return nil, nil, false
		}
		total = sym.AddOf(total, a)
	}
	if omega == nil {
		return nil, nil, false
	}
	return total.Simplify(), omega, true
}

func phasorOfTerm(term sym.Expr) (amp, omega sym.Expr, ok bool) {
	constPart, varPart := sym.SplitConst(term, "t")
	f, isFunc := varPart.(*sym.Func)
	if !isFunc {
		return nil, nil, false
	}
	var base sym.Expr
	switch f.FuncName() {
	case "cos":
		base = sym.N(1)
	case "sin":
		base = sym.MulOf(sym.N(-1), sym.J())
	default:
		return nil, nil, false
	}
	c1, c0, lok := sym.LinearCoeffs(f.Args()[0], "t")
	if !lok || c1.Equal(sym.N(0)) {
		return nil, nil, false
	}
	phase := sym.N(1).Simplify()
	if !c0.Equal(sym.N(0)) {
		// e^(j phi)
		phase = sym.AddOf(sym.Cos(c0), sym.MulOf(sym.J(), sym.Sin(c0)))
	}
	return sym.MulOf(constPart, base, phase).Simplify(), c1, true
}
