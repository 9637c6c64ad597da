package netsym

import (
	"testing"

	"github.com/njchilds90/netsym/sym"
)

func TestLaplace_OfConstant(t *testing.T) {
	c := MustNew(ConstantDomain, Voltage, sym.N(5))
	got, err := c.Laplace()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.DivOf(sym.N(5), sym.S("s")).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
	if got.Domain() != LaplaceDomain {
		t.Errorf("want laplace, got %s", got.Domain())
	}
}

func TestLaplace_OfGatedExponential(t *testing.T) {
	tv := sym.S("t")
	x := MustNew(TimeDomain, Voltage,
		sym.MulOf(sym.N(5), sym.Exp(sym.MulOf(sym.N(-3), tv)), sym.Heaviside(tv)))
	got, err := x.Laplace()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.DivOf(sym.N(5), sym.AddOf(sym.S("s"), sym.N(3))).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestTime_CausalGating(t *testing.T) {
	tv := sym.S("t")
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.N(5), sym.AddOf(sym.S("s"), sym.N(3)))).
		WithAssumptions(Assumptions{Causal: true})
	got, err := x.Time()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(sym.N(5), sym.Exp(sym.MulOf(sym.N(-3), tv)), sym.Heaviside(tv)).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestTime_WithoutCausalAssumption(t *testing.T) {
	tv := sym.S("t")
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.N(5), sym.AddOf(sym.S("s"), sym.N(3))))
	got, err := x.Time()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(sym.N(5), sym.Exp(sym.MulOf(sym.N(-3), tv))).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFourier_FromLaplace(t *testing.T) {
	x := MustNew(LaplaceDomain, Transfer, sym.S("s"))
	got, err := x.Fourier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(sym.J(), sym.N(2), sym.Pi(), sym.S("f")).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
	if got.Domain() != FourierDomain {
		t.Errorf("want fourier, got %s", got.Domain())
	}
}

func TestAngularFourier_FromLaplace(t *testing.T) {
	x := MustNew(LaplaceDomain, Impedance,
		sym.MulOf(sym.S("s"), sym.S("L")))
	got, err := x.AngularFourier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.MulOf(sym.J(), sym.S("omega"), sym.S("L")).Simplify()
	if !got.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_FourierRoundTrip(t *testing.T) {
	x := MustNew(LaplaceDomain, Transfer,
		sym.DivOf(sym.N(1), sym.AddOf(sym.S("s"), sym.N(1))))
	f, err := x.Fourier()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := f.Laplace()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Sym().Equal(x.Sym()) {
		t.Errorf("round trip: want %s, got %s", x, back)
	}
}

func TestPhasor_FromSinusoid(t *testing.T) {
	tv := sym.S("t")
	// 3 cos(100t) - 4 sin(100t) has phasor 3 + 4j.
	x := MustNew(TimeDomain, Voltage,
		sym.AddOf(
			sym.MulOf(sym.N(3), sym.Cos(sym.MulOf(sym.N(100), tv))),
			sym.MulOf(sym.N(-4), sym.Sin(sym.MulOf(sym.N(100), tv)))))
	ph, err := x.Phasor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := sym.AddOf(sym.N(3), sym.MulOf(sym.N(4), sym.J())).Simplify()
	if !ph.Sym().Equal(want) {
		t.Errorf("want %s, got %s", want, ph)
	}
	if !ph.Omega().Equal(sym.N(100)) {
		t.Errorf("want carrier 100, got %s", ph.Omega())
	}
}

func TestPhasor_TimeRoundTrip(t *testing.T) {
	ph, err := NewPhasor(Voltage,
		sym.AddOf(sym.N(3), sym.MulOf(sym.N(4), sym.J())), sym.N(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := ph.Time()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tv := sym.S("t")
	want := sym.AddOf(
		sym.MulOf(sym.N(3), sym.Cos(sym.MulOf(sym.N(100), tv))),
		sym.MulOf(sym.N(-4), sym.Sin(sym.MulOf(sym.N(100), tv)))).Simplify()
	if !sameValue(back.Sym(), want) {
		t.Errorf("want %s, got %s", want, back)
	}
}

func TestPhasor_RejectsMultiTone(t *testing.T) {
	tv := sym.S("t")
	x := MustNew(TimeDomain, Voltage,
		sym.AddOf(
			sym.Cos(sym.MulOf(sym.N(100), tv)),
			sym.Cos(sym.MulOf(sym.N(200), tv))))
	if _, err := x.Phasor(); err == nil {
		t.Error("a two-tone signal has no single phasor")
	}
}

func TestPhasor_SymbolicCarrier(t *testing.T) {
	tv := sym.S("t")
	x := MustNew(TimeDomain, Current,
		sym.Cos(sym.MulOf(sym.S("omega"), tv)))
	ph, err := x.Phasor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ph.Sym().Equal(sym.N(1)) {
		t.Errorf("want 1, got %s", ph)
	}
	if !ph.Omega().Equal(sym.S("omega")) {
		t.Errorf("want carrier omega, got %s", ph.Omega())
	}
}

func TestTime_StepFromIntegrator(t *testing.T) {
	x := MustNew(LaplaceDomain, Voltage,
		sym.DivOf(sym.N(1), sym.S("s"))).
		WithAssumptions(Assumptions{Causal: true})
	got, err := x.Time()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Sym().Equal(sym.Heaviside(sym.S("t"))) {
		t.Errorf("want u(t), got %s", got)
	}
	vals, err := got.Evaluate(-1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vals[0] != 0 || vals[1] != 1 {
		t.Errorf("want [0 1], got %v", vals)
	}
}
