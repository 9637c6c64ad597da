package netsym

import (
	"errors"
	"testing"

	"github.com/njchilds90/netsym/sym"
)

// sameValue compares two symbolic values up to term ordering.
func sameValue(a, b sym.Expr) bool {
	return sym.AddOf(a, sym.Neg(b)).Simplify().Equal(sym.N(0))
}

func TestNew_RejectsForeignVariable(t *testing.T) {
	_, err := New(LaplaceDomain, Voltage, sym.MulOf(sym.S("s"), sym.S("t")))
	var dv *DomainViolationError
	if !errors.As(err, &dv) {
		t.Fatalf("want DomainViolationError, got %v", err)
	}
	if dv.Variable != "t" {
		t.Errorf("want variable t, got %q", dv.Variable)
	}
}

func TestNew_AllowsParameters(t *testing.T) {
	x, err := New(LaplaceDomain, Impedance,
		sym.AddOf(sym.S("R"), sym.MulOf(sym.S("s"), sym.S("L"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x.Domain() != LaplaceDomain || x.Role() != Impedance {
		t.Errorf("bad classification: %s/%s", x.Role(), x.Domain())
	}
}

func TestNewPhasor_RejectsTimeVariable(t *testing.T) {
	_, err := NewPhasor(Voltage, sym.S("t"), sym.N(100))
	var dv *DomainViolationError
	if !errors.As(err, &dv) {
		t.Fatalf("want DomainViolationError, got %v", err)
	}
}

func TestNewPhasor_SetsACAssumption(t *testing.T) {
	ph, err := NewPhasor(Voltage, sym.N(2), sym.N(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ph.Assumptions().AC {
		t.Error("phasors must carry the ac assumption")
	}
	if !ph.Omega().Equal(sym.N(100)) {
		t.Errorf("want carrier 100, got %s", ph.Omega())
	}
}

func TestSubs_ReplacesParameter(t *testing.T) {
	x := MustNew(LaplaceDomain, Transfer,
		sym.DivOf(sym.N(1), sym.AddOf(sym.S("s"), sym.S("a"))))
	got, err := x.Subs("a", sym.N(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.DivOf(sym.N(1), sym.AddOf(sym.S("s"), sym.N(2))).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestSubs_RejectsReservedVariable(t *testing.T) {
	x := MustNew(LaplaceDomain, Transfer, sym.S("s"))
	if _, err := x.Subs("s", sym.N(1)); err == nil {
		t.Error("substituting the domain variable must fail")
	}
}

func TestMagnitudePhase_Rectangular(t *testing.T) {
	x := MustNew(ConstantDomain, Undefined,
		sym.AddOf(sym.N(3), sym.MulOf(sym.N(4), sym.J())))
	mag := x.Magnitude()
	wantMag := sym.SqrtOf(sym.N(25)).Simplify()
	if !mag.Sym().Equal(wantMag) {
		t.Errorf("magnitude: want %s, got %s", wantMag, mag)
	}
	phase, err := x.Phase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPhase := sym.Atan2(sym.N(4), sym.N(3))
	if !phase.Sym().Equal(wantPhase) {
		t.Errorf("phase: want %s, got %s", wantPhase, phase)
	}
	if phase.Role() != Undefined {
		t.Error("phase must drop the role")
	}
}

func TestRealImagPart(t *testing.T) {
	x := MustNew(ConstantDomain, Undefined,
		sym.AddOf(sym.S("a"), sym.MulOf(sym.J(), sym.S("b"))))
	re, err := x.RealPart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.Sym().Equal(sym.S("a")) {
		t.Errorf("real part: want a, got %s", re)
	}
	im, err := x.ImagPart()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !im.Sym().Equal(sym.S("b")) {
		t.Errorf("imag part: want b, got %s", im)
	}
}

func TestRealPart_RejectsComplexSymbol(t *testing.T) {
	ctx := NewContext()
	ctx.DeclareComplex("a")
	x := MustNew(ConstantDomain, Undefined, sym.S("a")).WithContext(ctx)
	if _, err := x.RealPart(); err == nil {
		t.Error("splitting a declared-complex symbol must fail")
	}
}

func TestDB_OfGainTen(t *testing.T) {
	x := MustNew(ConstantDomain, Transfer, sym.N(10))
	got := x.DB()
	want := sym.MulOf(sym.N(20), sym.Log10(sym.Abs(sym.N(10)))).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestNumerDenom_Views(t *testing.T) {
	h := MustNew(LaplaceDomain, Impedance,
		sym.DivOf(sym.AddOf(sym.S("s"), sym.N(1)), sym.AddOf(sym.S("s"), sym.N(2))))
	n := h.Numer()
	if !n.Sym().Equal(sym.AddOf(sym.S("s"), sym.N(1))) {
		t.Errorf("numerator: got %s", n)
	}
	d := h.Denom()
	if !d.Sym().Equal(sym.AddOf(sym.S("s"), sym.N(2))) {
		t.Errorf("denominator: got %s", d)
	}
	if d.Role() != Undefined {
		t.Error("the denominator alone has no role")
	}
}

func TestPartfrac_DistinctPoles(t *testing.T) {
	s := sym.S("s")
	h := MustNew(LaplaceDomain, Transfer,
		sym.DivOf(sym.N(1), sym.MulOf(sym.AddOf(s, sym.N(1)), sym.AddOf(s, sym.N(2)))))
	got, err := h.Partfrac()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.AddOf(
		sym.DivOf(sym.N(1), sym.AddOf(s, sym.N(1))),
		sym.Neg(sym.DivOf(sym.N(1), sym.AddOf(s, sym.N(2))))).Simplify()
	if !sameValue(got.Sym(), want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestZPK_SimpleTransfer(t *testing.T) {
	s := sym.S("s")
	h := MustNew(LaplaceDomain, Transfer,
		sym.DivOf(sym.MulOf(sym.N(2), sym.AddOf(s, sym.N(1))),
			sym.MulOf(sym.AddOf(s, sym.N(2)), sym.AddOf(s, sym.N(3)))))
	gain, zeros, poles, err := h.ZPK()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gain.Equal(sym.N(2)) {
		t.Errorf("gain: want 2, got %s", gain)
	}
	if len(zeros) != 1 || !zeros[0].Equal(sym.N(-1)) {
		t.Errorf("zeros: got %v", zeros)
	}
	if len(poles) != 2 {
		t.Fatalf("poles: got %v", poles)
	}
}

func TestDifferentiate_LaplaceMultipliesByS(t *testing.T) {
	x := MustNew(LaplaceDomain, Voltage, sym.DivOf(sym.N(1), sym.S("s")))
	got, err := x.Differentiate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Sym().Equal(sym.N(1)) {
		t.Errorf("want 1, got %s", got)
	}
}

func TestDelay_LaplaceAddsExponential(t *testing.T) {
	x := MustNew(LaplaceDomain, Voltage, sym.DivOf(sym.N(1), sym.S("s")))
	got, err := x.Delay(sym.N(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(
		sym.DivOf(sym.N(1), sym.S("s")),
		sym.Exp(sym.MulOf(sym.N(-2), sym.S("s")))).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInitialValue(t *testing.T) {
	s := sym.S("s")
	// X(s) = (2s+1)/(s^2+3s+2): x(0+) = 2.
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.AddOf(sym.MulOf(sym.N(2), s), sym.N(1)),
			sym.AddOf(sym.PowOf(s, sym.N(2)), sym.MulOf(sym.N(3), s), sym.N(2))))
	got, err := x.InitialValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(sym.N(2)) {
		t.Errorf("want 2, got %s", got)
	}
}

func TestFinalValue(t *testing.T) {
	s := sym.S("s")
	// X(s) = 5/(s(s+3)): x(inf) = 5/3.
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.N(5), sym.MulOf(s, sym.AddOf(s, sym.N(3)))))
	got, err := x.FinalValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(sym.F(5, 3)) {
		t.Errorf("want 5/3, got %s", got)
	}
}

func TestFinalValue_DoublePoleAtOrigin(t *testing.T) {
	s := sym.S("s")
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.N(1), sym.PowOf(s, sym.N(2))))
	if _, err := x.FinalValue(); err == nil {
		t.Error("a ramp has no final value")
	}
}

func TestParallel_EqualResistances(t *testing.T) {
	r := MustNew(LaplaceDomain, Impedance, sym.S("R"))
	got, err := r.Parallel(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(sym.F(1, 2), sym.S("R")).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
	if got.Role() != Impedance {
		t.Errorf("want impedance, got %s", got.Role())
	}
}

func TestParallel_RejectsMixedRoles(t *testing.T) {
	z := MustNew(LaplaceDomain, Impedance, sym.S("R"))
	y := MustNew(LaplaceDomain, Admittance, sym.S("G"))
	if _, err := z.Parallel(y); err == nil {
		t.Error("parallel needs matching roles")
	}
}

func TestExpr_ZeroValue(t *testing.T) {
	var zero Expr
	if zero.IsZero() {
		t.Error("a zero value carries no payload and is not the number zero")
	}
	if zero.Equal(MustNew(ConstantDomain, Undefined, sym.N(0))) {
		t.Error("a zero value equals nothing")
	}
	if zero.Equal(zero) {
		t.Error("a zero value equals nothing, itself included")
	}
}

func TestAssumptions_MergeAdd(t *testing.T) {
	dc := Assumptions{DC: true}
	ac := Assumptions{AC: true}
	if got := mergeAdd(dc, dc); !got.DC {
		t.Error("dc + dc must stay dc")
	}
	if got := mergeAdd(dc, ac); !got.Unknown() {
		t.Errorf("dc + ac must be unknown, got %s", got)
	}
	if got := mergeAdd(Assumptions{Causal: true}, dc); !got.Causal {
		t.Errorf("a causal operand must make the sum causal, got %s", got)
	}
	if got := mergeAdd(ac, Assumptions{Causal: true}); !got.Causal {
		t.Errorf("a causal operand must make the sum causal, got %s", got)
	}
}

func TestAssumptions_MergeMul(t *testing.T) {
	if got := mergeMul(Assumptions{Causal: true}, Assumptions{AC: true}); !got.Causal {
		t.Errorf("causal factor must dominate, got %s", got)
	}
	if got := mergeMul(Assumptions{DC: true}, Assumptions{AC: true}); !got.AC {
		t.Errorf("dc times ac must be ac, got %s", got)
	}
}

func TestContext_ScopeShadowing(t *testing.T) {
	root := NewContext()
	root.DeclareReal("R")
	inner := root.Enter()
	inner.DeclareComplex("R")
	if !inner.IsComplex("R") {
		t.Error("inner scope must shadow the parent")
	}
	if outer := inner.Exit(); outer.IsComplex("R") {
		t.Error("exiting must restore the parent declaration")
	}
}
