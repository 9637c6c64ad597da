package sym

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Shared helpers
// ============================================================

// LinearCoeffs views e as c1*name + c0 and returns both coefficients.
func LinearCoeffs(e Expr, name string) (c1, c0 Expr, ok bool) {
	coeffs, polyOK := PolyCoeffs(e, name)
	if !polyOK {
		return nil, nil, false
	}
	for d := range coeffs {
		if d > 1 {
			return nil, nil, false
		}
	}
	c1 = coeffs[1]
	if c1 == nil {
		c1 = N(0)
	}
	c0 = coeffs[0]
	if c0 == nil {
		c0 = N(0)
	}
	return c1.Simplify(), c0.Simplify(), true
}

func factorial(n int) *Num {
	acc := N(1)
	for i := int64(2); i <= int64(n); i++ {
		acc = numMul(acc, N(i))
	}
	return acc
}

// ratSqrtExpr returns an exact square root when r is a perfect square,
// otherwise a float approximation.
func ratSqrtExpr(r *big.Rat) Expr {
	if r.Sign() < 0 {
		panic("sym: square root of negative rational")
	}
	nSqrt := new(big.Int).Sqrt(r.Num())
	dSqrt := new(big.Int).Sqrt(r.Denom())
	check := new(big.Int)
	if check.Mul(nSqrt, nSqrt).Cmp(r.Num()) == 0 {
		check2 := new(big.Int)
		if check2.Mul(dSqrt, dSqrt).Cmp(r.Denom()) == 0 {
			return &Num{val: new(big.Rat).SetFrac(nSqrt, dSqrt)}
		}
	}
	f, _ := r.Float64()
	return NFloat(math.Sqrt(f))
}

// ============================================================
// Laplace transform
// ============================================================

// Laplace computes the unilateral Laplace transform of e from timeVar
// to sVar.
func Laplace(e Expr, timeVar, sVar string) (Expr, error) {
	e = Expand(e.Simplify())
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			lt, err := Laplace(t, timeVar, sVar)
			if err != nil {
				return nil, err
			}
			terms[i] = lt
		}
		return AddOf(terms...), nil
	}
	constPart, varPart := SplitConst(e, timeVar)
	lt, err := laplaceTerm(varPart, timeVar, sVar)
	if err != nil {
		return nil, err
	}
	return MulOf(constPart, lt).Simplify(), nil
}

// laplaceTerm transforms a single product depending on timeVar. The
// factors are classified as powers of t, a real/complex exponential, at
// most one sinusoid, a gating step, or an impulse; the transform is
// composed as table lookup + frequency shift + repeated s-differentiation.
func laplaceTerm(e Expr, timeVar, sVar string) (Expr, error) {
	if isZero(e) {
		return N(0), nil
	}
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}

	tPow := 0
	expArg := Expr(N(0))
	var trig *Func
	var impulse *Func
	for _, f := range factors {
		switch v := f.(type) {
		case *Num, *Imag:
			// Numeric factors are split off by the caller.
		case *Sym:
			if v.name == timeVar {
				tPow++
			}
		case *Pow:
			s, isSym := v.base.(*Sym)
			n, isNum := v.exp.(*Num)
			if isSym && s.name == timeVar && isNum && n.IsInteger() && n.IsPositive() {
				tPow += int(n.Int64())
				continue
			}
			return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
		case *Func:
			switch v.name {
			case "exp":
				c1, c0, ok := linearArgOver(v.args[0], timeVar)
				if !ok {
					return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
				}
				if !isZero(c0.Simplify()) {
					return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
				}
				expArg = AddOf(expArg, c1)
			case "sin", "cos":
				if trig != nil {
					return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
				}
				trig = v
			case "u":
				// Step gating at the origin matches the unilateral
				// transform; a shifted step is not supported here.
				c1, c0, ok := linearArgOver(v.args[0], timeVar)
				if !ok || !isZero(c0.Simplify()) || !c1.Equal(N(1)) {
					return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
				}
			case "delta":
				impulse = v
			default:
				return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
			}
		default:
			return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
		}
	}

	s := S(sVar)
	if impulse != nil {
		if tPow != 0 || trig != nil || !isZero(expArg.Simplify()) {
			return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
		}
		c1, c0, ok := linearArgOver(impulse.args[0], timeVar)
		if !ok || !c1.Equal(N(1)) {
			return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
		}
		// delta(t - T) -> exp(-s T)
		return Exp(MulOf(s, c0)).Simplify(), nil
	}

	var base Expr
	if trig == nil {
		base = PowOf(s, N(-1))
	} else {
		c1, c0, ok := linearArgOver(trig.args[0], timeVar)
		if !ok {
			return nil, fmt.Errorf("sym: no Laplace transform for %s", e)
		}
		w := c1
		if !isZero(c0.Simplify()) {
			// Expand the phase and restart on the sum.
			var expanded Expr
			inner := MulOf(w, S(timeVar))
			if trig.name == "sin" {
				expanded = AddOf(
					MulOf(Cos(c0), funcOf("sin", inner)),
					MulOf(Sin(c0), funcOf("cos", inner)))
			} else {
				expanded = SubOf(
					MulOf(Cos(c0), funcOf("cos", inner)),
					MulOf(Sin(c0), funcOf("sin", inner)))
			}
			rest := DivOf(e, trig)
			return Laplace(MulOf(rest, expanded), timeVar, sVar)
		}
		den := AddOf(PowOf(s, N(2)), PowOf(w, N(2)))
		if trig.name == "sin" {
			base = DivOf(w, den)
		} else {
			base = DivOf(s, den)
		}
	}

	// Frequency shift for the exponential factor.
	if !isZero(expArg.Simplify()) {
		base = base.Subst(sVar, SubOf(s, expArg))
	}
	// Each power of t differentiates in s with a sign flip.
	for i := 0; i < tPow; i++ {
		base = Neg(Together(base.Diff(sVar)))
	}
	return base.Simplify(), nil
}

// linearArgOver is LinearCoeffs tolerant of an imaginary-unit factor.
func linearArgOver(e Expr, name string) (c1, c0 Expr, ok bool) {
	constPart, varPart := SplitConst(e.Simplify(), name)
	if a, isAdd := e.Simplify().(*Add); isAdd {
		var c1Acc, c0Acc Expr = N(0), N(0)
		for _, t := range a.terms {
			tc1, tc0, tok := linearArgOver(t, name)
			if !tok {
				return nil, nil, false
			}
			c1Acc = AddOf(c1Acc, tc1)
			c0Acc = AddOf(c0Acc, tc0)
		}
		return c1Acc, c0Acc, true
	}
	if !dependsOn(varPart, name) {
		return N(0), e.Simplify(), true
	}
	if s, isSym := varPart.(*Sym); isSym && s.name == name {
		return constPart, N(0), true
	}
	return nil, nil, false
}

// ============================================================
// Inverse Laplace transform
// ============================================================

// InverseLaplace inverts a rational function of sVar, optionally scaled
// by delay factors exp(-s T). The result is valid for timeVar >= 0; the
// caller decides step gating.
func InverseLaplace(e Expr, sVar, timeVar string) (Expr, error) {
	e = e.Simplify()
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			it, err := InverseLaplace(t, sVar, timeVar)
			if err != nil {
				return nil, err
			}
			terms[i] = it
		}
		return AddOf(terms...), nil
	}

	// Peel off a delay factor exp(-s T).
	if delay, rest, ok := splitDelay(e, sVar); ok {
		inner, err := InverseLaplace(rest, sVar, timeVar)
		if err != nil {
			return nil, err
		}
		shifted := inner.Subst(timeVar, SubOf(S(timeVar), delay))
		// A pure impulse delay needs explicit gating on the shift point.
		return shifted.Simplify(), nil
	}

	dec, err := PartialTerms(e, sVar)
	if err != nil {
		return nil, err
	}
	t := S(timeVar)
	terms := []Expr{}

	// Polynomial part: a constant inverts to an impulse; higher powers
	// of s would need impulse derivatives.
	q := ratPolyTrim(dec.Quotient)
	if len(q) > 1 {
		return nil, fmt.Errorf("sym: cannot invert improper rational function %s", e)
	}
	if q[0].Sign() != 0 {
		terms = append(terms, MulOf(&Num{val: new(big.Rat).Set(q[0])}, DiracDelta(t)))
	}

	for _, lt := range dec.Linear {
		c := &Num{val: new(big.Rat).Set(lt.Coeff)}
		root := &Num{val: new(big.Rat).Set(lt.Root)}
		// c/(s-a)^k -> c t^(k-1) e^(a t) / (k-1)!
		var term Expr = c
		if lt.Order > 1 {
			term = MulOf(term,
				PowOf(t, N(int64(lt.Order-1))),
				PowOf(factorial(lt.Order-1), N(-1)))
		}
		if !root.IsZero() {
			term = MulOf(term, Exp(MulOf(root, t)))
		}
		terms = append(terms, term)
	}

	for _, qt := range dec.Quads {
		// (A s + B)/(s^2 + P s + Q) with complex roots sigma +/- j omega:
		// e^(sigma t) (A cos(omega t) + (B + A sigma)/omega sin(omega t))
		sigma := new(big.Rat).Quo(qt.P, big.NewRat(-2, 1))
		w2 := new(big.Rat).Sub(qt.Q, new(big.Rat).Mul(sigma, sigma))
		if w2.Sign() <= 0 {
			return nil, fmt.Errorf("sym: reducible quadratic factor in %s", e)
		}
		omega := ratSqrtExpr(w2)
		sigmaN := &Num{val: sigma}
		a := &Num{val: new(big.Rat).Set(qt.A)}
		b := &Num{val: new(big.Rat).Set(qt.B)}
		sinCoeff := DivOf(AddOf(b, MulOf(a, sigmaN)), omega)
		osc := AddOf(
			MulOf(a, Cos(MulOf(omega, t))),
			MulOf(sinCoeff, Sin(MulOf(omega, t))))
		if !sigmaN.IsZero() {
			osc = MulOf(Exp(MulOf(sigmaN, t)), osc)
		}
		terms = append(terms, osc)
	}

	if len(terms) == 0 {
		return N(0), nil
	}
	return AddOf(terms...).Simplify(), nil
}

// splitDelay detects a factor exp(-s T) with T free of sVar and returns
// (T, remaining, true).
func splitDelay(e Expr, sVar string) (delay, rest Expr, ok bool) {
	m, isMul := e.(*Mul)
	factors := []Expr{e}
	if isMul {
		factors = m.factors
	}
	for i, f := range factors {
		fn, isFunc := f.(*Func)
		if !isFunc || fn.name != "exp" || !dependsOn(fn.args[0], sVar) {
			continue
		}
		c1, c0, lok := linearArgOver(fn.args[0], sVar)
		if !lok || !isZero(c0.Simplify()) {
			return nil, nil, false
		}
		t := Neg(c1).Simplify()
		others := make([]Expr, 0, len(factors)-1)
		for j, of := range factors {
			if j != i {
				others = append(others, of)
			}
		}
		if len(others) == 0 {
			return t, N(1), true
		}
		return t, MulOf(others...), true
	}
	return nil, nil, false
}

// ============================================================
// Fourier transform
// ============================================================

// Fourier computes the Fourier transform of e from timeVar to freqVar
// (ordinary frequency). Only impulsive spectra and steps are tabulated;
// causal signals should go through the Laplace route instead.
func Fourier(e Expr, timeVar, freqVar string) (Expr, error) {
	e = Expand(e.Simplify())
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			ft, err := Fourier(t, timeVar, freqVar)
			if err != nil {
				return nil, err
			}
			terms[i] = ft
		}
		return AddOf(terms...), nil
	}
	constPart, varPart := SplitConst(e, timeVar)
	ft, err := fourierTerm(varPart, timeVar, freqVar)
	if err != nil {
		return nil, err
	}
	return MulOf(constPart, ft).Simplify(), nil
}

func fourierTerm(e Expr, timeVar, freqVar string) (Expr, error) {
	f := S(freqVar)
	twoPi := MulOf(N(2), Pi())
	if !dependsOn(e, timeVar) {
		// Constant -> impulse at zero frequency.
		return MulOf(e, DiracDelta(f)), nil
	}
	switch v := e.(type) {
	case *Func:
		switch v.name {
		case "delta":
			c1, c0, ok := linearArgOver(v.args[0], timeVar)
			if ok && c1.Equal(N(1)) {
				if isZero(c0.Simplify()) {
					return N(1), nil
				}
				// delta(t - T) -> exp(-j 2 pi f T)
				return Exp(MulOf(J(), twoPi, f, c0)).Simplify(), nil
			}
		case "cos":
			c1, c0, ok := linearArgOver(v.args[0], timeVar)
			if ok && isZero(c0.Simplify()) {
				f0 := DivOf(c1, twoPi)
				return MulOf(F(1, 2), AddOf(
					DiracDelta(SubOf(f, f0)),
					DiracDelta(AddOf(f, f0)))).Simplify(), nil
			}
		case "sin":
			c1, c0, ok := linearArgOver(v.args[0], timeVar)
			if ok && isZero(c0.Simplify()) {
				f0 := DivOf(c1, twoPi)
				return MulOf(F(-1, 2), J(), SubOf(
					DiracDelta(SubOf(f, f0)),
					DiracDelta(AddOf(f, f0)))).Simplify(), nil
			}
		case "exp":
			// exp(j w t) -> delta(f - w/(2 pi))
			c1, c0, ok := linearArgOver(v.args[0], timeVar)
			if ok && isZero(c0.Simplify()) {
				cj := DivOf(c1, J()).Simplify()
				if !HasImag(cj) {
					return DiracDelta(SubOf(f, DivOf(cj, twoPi))).Simplify(), nil
				}
			}
		case "u":
			c1, c0, ok := linearArgOver(v.args[0], timeVar)
			if ok && c1.Equal(N(1)) && isZero(c0.Simplify()) {
				return AddOf(
					MulOf(F(1, 2), DiracDelta(f)),
					PowOf(MulOf(J(), twoPi, f), N(-1))).Simplify(), nil
			}
		}
	}
	return nil, fmt.Errorf("sym: no Fourier transform for %s", e)
}

// HasImag reports whether e contains the imaginary unit.
func HasImag(e Expr) bool {
	switch v := e.(type) {
	case *Imag:
		return true
	case *Add:
		for _, t := range v.terms {
			if HasImag(t) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if HasImag(f) {
				return true
			}
		}
	case *Pow:
		return HasImag(v.base) || HasImag(v.exp)
	case *Func:
		for _, a := range v.args {
			if HasImag(a) {
				return true
			}
		}
	}
	return false
}

// InverseFourier inverts impulsive spectra back to the time domain.
func InverseFourier(e Expr, freqVar, timeVar string) (Expr, error) {
	e = Expand(e.Simplify())
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			it, err := InverseFourier(t, freqVar, timeVar)
			if err != nil {
				return nil, err
			}
			terms[i] = it
		}
		return AddOf(terms...), nil
	}
	constPart, varPart := SplitConst(e, freqVar)
	if !dependsOn(varPart, freqVar) {
		// Constant spectrum -> impulse.
		return MulOf(constPart, DiracDelta(S(timeVar))).Simplify(), nil
	}
	if fn, ok := varPart.(*Func); ok && fn.name == "delta" {
		c1, c0, lok := linearArgOver(fn.args[0], freqVar)
		if lok && c1.Equal(N(1)) {
			// delta(f - f0) -> exp(j 2 pi f0 t)
			f0 := Neg(c0).Simplify()
			if isZero(f0) {
				return constPart.Simplify(), nil
			}
			return MulOf(constPart,
				Exp(MulOf(J(), N(2), Pi(), f0, S(timeVar)))).Simplify(), nil
		}
	}
	return nil, fmt.Errorf("sym: no inverse Fourier transform for %s", e)
}

// ============================================================
// z-transform and inverse
// ============================================================

// ZTransform computes the unilateral z-transform of e from seqVar to zVar.
func ZTransform(e Expr, seqVar, zVar string) (Expr, error) {
	e = Expand(e.Simplify())
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			zt, err := ZTransform(t, seqVar, zVar)
			if err != nil {
				return nil, err
			}
			terms[i] = zt
		}
		return AddOf(terms...), nil
	}
	constPart, varPart := SplitConst(e, seqVar)
	zt, err := zTerm(varPart, seqVar, zVar)
	if err != nil {
		return nil, err
	}
	return MulOf(constPart, zt).Simplify(), nil
}

func zTerm(e Expr, seqVar, zVar string) (Expr, error) {
	z := S(zVar)
	if !dependsOn(e, seqVar) {
		// Constant sequence == constant * u(n) under the unilateral sum.
		return MulOf(e, z, PowOf(SubOf(z, N(1)), N(-1))), nil
	}
	switch v := e.(type) {
	case *Sym:
		if v.name == seqVar {
			// n -> z/(z-1)^2
			return MulOf(z, PowOf(SubOf(z, N(1)), N(-2))), nil
		}
	case *Func:
		switch v.name {
		case "uimp":
			c1, c0, ok := linearArgOver(v.args[0], seqVar)
			if ok && c1.Equal(N(1)) {
				shift := Neg(c0).Simplify()
				if isZero(shift) {
					return N(1), nil
				}
				return PowOf(z, Neg(shift)).Simplify(), nil
			}
		case "u":
			c1, c0, ok := linearArgOver(v.args[0], seqVar)
			if ok && c1.Equal(N(1)) && isZero(c0.Simplify()) {
				return MulOf(z, PowOf(SubOf(z, N(1)), N(-1))), nil
			}
		case "exp":
			// exp(a n) -> z/(z - e^a)
			c1, c0, ok := linearArgOver(v.args[0], seqVar)
			if ok && isZero(c0.Simplify()) {
				return MulOf(z, PowOf(SubOf(z, Exp(c1)), N(-1))).Simplify(), nil
			}
		}
	case *Pow:
		// a^n -> z/(z-a)
		if s, ok := v.exp.(*Sym); ok && s.name == seqVar && !dependsOn(v.base, seqVar) {
			return MulOf(z, PowOf(SubOf(z, v.base), N(-1))).Simplify(), nil
		}
	case *Mul:
		// n * a^n -> a z/(z-a)^2
		var pow Expr
		hasN := false
		ok := true
		for _, f := range v.factors {
			if s, isSym := f.(*Sym); isSym && s.name == seqVar {
				hasN = true
				continue
			}
			if p, isPow := f.(*Pow); isPow {
				if s, isSym := p.exp.(*Sym); isSym && s.name == seqVar && !dependsOn(p.base, seqVar) {
					pow = p.base
					continue
				}
			}
			ok = false
		}
		if ok && hasN && pow != nil {
			return MulOf(pow, z, PowOf(SubOf(z, pow), N(-2))).Simplify(), nil
		}
	}
	return nil, fmt.Errorf("sym: no z-transform for %s", e)
}

// InverseZ inverts simple rational z-domain forms back to a sequence in
// seqVar, valid for non-negative indices.
func InverseZ(e Expr, zVar, seqVar string) (Expr, error) {
	e = e.Simplify()
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			it, err := InverseZ(t, zVar, seqVar)
			if err != nil {
				return nil, err
			}
			terms[i] = it
		}
		return AddOf(terms...), nil
	}
	constPart, varPart := SplitConst(e, zVar)
	n := S(seqVar)
	if !dependsOn(varPart, zVar) {
		return MulOf(constPart, UnitImpulse(n)).Simplify(), nil
	}
	// X(z)/z is decomposed so each piece maps back through z/(z-a).
	z := S(zVar)
	dec, err := PartialTerms(DivOf(varPart, z), zVar)
	if err != nil {
		return nil, fmt.Errorf("sym: no inverse z-transform for %s", e)
	}
	terms := []Expr{}
	q := ratPolyTrim(dec.Quotient)
	if len(q) > 1 || len(dec.Quads) > 0 {
		return nil, fmt.Errorf("sym: no inverse z-transform for %s", e)
	}
	if q[0].Sign() != 0 {
		// Constant in X(z)/z means a z^1 term in X(z).
		return nil, fmt.Errorf("sym: no inverse z-transform for %s", e)
	}
	for _, lt := range dec.Linear {
		c := &Num{val: new(big.Rat).Set(lt.Coeff)}
		root := &Num{val: new(big.Rat).Set(lt.Root)}
		switch {
		case root.IsZero():
			// c/z^k in X(z)/z is c z^-(k-1) in X(z).
			terms = append(terms, MulOf(c, UnitImpulse(SubOf(n, N(int64(lt.Order-1))))))
		case lt.Order == 1 && root.IsOne():
			// c z/(z-1) -> c u(n)
			terms = append(terms, MulOf(c, Heaviside(n)))
		case lt.Order == 1:
			// c z/(z-a) -> c a^n
			terms = append(terms, MulOf(c, PowOf(root, n)))
		case lt.Order == 2 && root.IsOne():
			// c z/(z-1)^2 -> c n
			terms = append(terms, MulOf(c, n))
		case lt.Order == 2:
			// c z/(z-a)^2 -> (c/a) n a^n
			terms = append(terms, MulOf(DivOf(c, root), n, PowOf(root, n)))
		default:
			return nil, fmt.Errorf("sym: no inverse z-transform for %s", e)
		}
	}
	if len(terms) == 0 {
		return N(0), nil
	}
	return MulOf(constPart, AddOf(terms...)).Simplify(), nil
}

// ============================================================
// Discrete-time Fourier transform
// ============================================================

// DTFT transforms a sequence in seqVar to ordinary frequency freqVar with
// sample interval given by the symbol dtVar. Finite-support sequences are
// summed directly; causal sequences go through the z-transform with
// z -> exp(j 2 pi f dt).
func DTFT(e Expr, seqVar, freqVar, dtVar string, causal bool) (Expr, error) {
	e = Expand(e.Simplify())
	f := S(freqVar)
	dt := S(dtVar)
	phase := MulOf(J(), N(2), Pi(), f, dt)

	if finite, ok := dtftFinite(e, seqVar, phase); ok {
		return finite, nil
	}
	if !causal {
		return nil, fmt.Errorf("sym: no discrete-time Fourier transform for %s", e)
	}
	zt, err := ZTransform(e, seqVar, "__z")
	if err != nil {
		return nil, err
	}
	return zt.Subst("__z", Exp(phase)).Simplify(), nil
}

// dtftFinite handles sums of shifted unit impulses, which transform
// exactly regardless of causality.
func dtftFinite(e Expr, seqVar string, phase Expr) (Expr, bool) {
	terms := Terms(e)
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		constPart, varPart := SplitConst(t, seqVar)
		fn, ok := varPart.(*Func)
		if !ok || fn.name != "uimp" {
			return nil, false
		}
		c1, c0, lok := linearArgOver(fn.args[0], seqVar)
		if !lok || !c1.Equal(N(1)) {
			return nil, false
		}
		shift := Neg(c0).Simplify()
		// uimp(n - m) -> exp(-j 2 pi f m dt)
		out = append(out, MulOf(constPart, Exp(MulOf(N(-1), shift, phase))))
	}
	return AddOf(out...).Simplify(), true
}

// ============================================================
// Half-line integration
// ============================================================

// IntegrateHalfLine integrates e over name from zero to infinity. The
// integrand table covers the shapes power spectra take after
// first-order networks: sums of Lorentzian terms c/(a + b*x^2), each
// integrating to c*pi/(2*sqrt(a*b)). Shapes with unbounded area,
// constants included, are errors.
func IntegrateHalfLine(e Expr, name string) (Expr, error) {
	e = Expand(e.Simplify())
	if a, ok := e.(*Add); ok {
		terms := make([]Expr, len(a.terms))
		for i, t := range a.terms {
			it, err := IntegrateHalfLine(t, name)
			if err != nil {
				return nil, err
			}
			terms[i] = it
		}
		return AddOf(terms...).Simplify(), nil
	}
	if isZero(e) {
		return N(0), nil
	}
	constPart, varPart := SplitConst(e, name)
	if !dependsOn(varPart, name) {
		return nil, fmt.Errorf("sym: unbounded integral of %s over [0, oo)", e)
	}
	p, ok := varPart.(*Pow)
	if !ok {
		return nil, fmt.Errorf("sym: no half-line integral for %s", e)
	}
	if n, isNum := p.exp.(*Num); !isNum || !n.Equal(N(-1)) {
		return nil, fmt.Errorf("sym: no half-line integral for %s", e)
	}
	coeffs, polyOK := PolyCoeffs(p.base, name)
	if !polyOK {
		return nil, fmt.Errorf("sym: no half-line integral for %s", e)
	}
	for d := range coeffs {
		if d != 0 && d != 2 {
			return nil, fmt.Errorf("sym: no half-line integral for %s", e)
		}
	}
	a0, b2 := coeffs[0], coeffs[2]
	if a0 == nil || b2 == nil || isZero(Simplify(a0)) || isZero(Simplify(b2)) {
		return nil, fmt.Errorf("sym: unbounded integral of %s over [0, oo)", e)
	}
	area := MulOf(N(4), a0, b2).Simplify()
	invRoot := PowOf(area, F(-1, 2))
	if n, isNum := area.(*Num); isNum && n.IsPositive() {
		invRoot = DivOf(N(1), ratSqrtExpr(n.val))
	}
	return MulOf(constPart, Pi(), invRoot).Simplify(), nil
}
