package sym

import "testing"

func TestLaplace_Constant(t *testing.T) {
	got, err := Laplace(N(5), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(5), PowOf(S("s"), N(-1)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_Ramp(t *testing.T) {
	got, err := Laplace(S("t"), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PowOf(S("s"), N(-2))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_Exponential(t *testing.T) {
	got, err := Laplace(Exp(MulOf(N(-3), S("t"))), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PowOf(AddOf(S("s"), N(3)), N(-1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_Sinusoid(t *testing.T) {
	got, err := Laplace(Sin(MulOf(N(2), S("t"))), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(2), PowOf(AddOf(PowOf(S("s"), N(2)), N(4)), N(-1)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}

	got, err = Laplace(Cos(MulOf(N(2), S("t"))), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = MulOf(S("s"), PowOf(AddOf(PowOf(S("s"), N(2)), N(4)), N(-1)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_SteppedExponential(t *testing.T) {
	e := MulOf(Heaviside(S("t")), Exp(MulOf(N(-2), S("t"))))
	got, err := Laplace(e, "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PowOf(AddOf(S("s"), N(2)), N(-1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_Impulse(t *testing.T) {
	got, err := Laplace(DiracDelta(S("t")), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(N(1)) {
		t.Errorf("want 1, got %s", got)
	}
}

func TestLaplace_DelayedImpulse(t *testing.T) {
	got, err := Laplace(DiracDelta(AddOf(S("t"), N(-2))), "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Exp(MulOf(N(-2), S("s")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_DampedSinusoid(t *testing.T) {
	// e^-t sin(2t) -> 2/((s+1)^2 + 4)
	e := MulOf(Exp(MulOf(N(-1), S("t"))), Sin(MulOf(N(2), S("t"))))
	got, err := Laplace(e, "t", "s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(2), PowOf(AddOf(PowOf(AddOf(S("s"), N(1)), N(2)), N(4)), N(-1)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplace_Unsupported(t *testing.T) {
	if _, err := Laplace(Log(S("t")), "t", "s"); err == nil {
		t.Error("expected an error for ln(t)")
	}
}

func TestInverseLaplace_SimplePole(t *testing.T) {
	e := PowOf(AddOf(S("s"), N(3)), N(-1))
	got, err := InverseLaplace(e, "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Exp(MulOf(N(-3), S("t")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseLaplace_RepeatedPole(t *testing.T) {
	// 1/(s+1)^2 -> t e^-t
	e := PowOf(AddOf(S("s"), N(1)), N(-2))
	got, err := InverseLaplace(e, "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(S("t"), Exp(MulOf(N(-1), S("t"))))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseLaplace_Oscillator(t *testing.T) {
	// s/(s^2+4) -> cos(2t)
	e := DivOf(S("s"), AddOf(PowOf(S("s"), N(2)), N(4)))
	got, err := InverseLaplace(e, "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Cos(MulOf(N(2), S("t")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseLaplace_DampedOscillator(t *testing.T) {
	// 2/((s+1)^2+4) -> e^-t sin(2t)
	e := MulOf(N(2), PowOf(AddOf(PowOf(AddOf(S("s"), N(1)), N(2)), N(4)), N(-1)))
	got, err := InverseLaplace(e, "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(Exp(MulOf(N(-1), S("t"))), Sin(MulOf(N(2), S("t"))))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseLaplace_Constant(t *testing.T) {
	got, err := InverseLaplace(N(3), "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(3), DiracDelta(S("t")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseLaplace_Delay(t *testing.T) {
	// e^(-2s)/(s+1) -> e^-(t-2)
	e := MulOf(Exp(MulOf(N(-2), S("s"))), PowOf(AddOf(S("s"), N(1)), N(-1)))
	got, err := InverseLaplace(e, "s", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Exp(MulOf(N(-1), AddOf(S("t"), N(-2))))
	if !got.Equal(want.Simplify()) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestLaplaceRoundTrip(t *testing.T) {
	signals := []Expr{
		Exp(MulOf(N(-3), S("t"))),
		Sin(MulOf(N(2), S("t"))),
		MulOf(S("t"), Exp(MulOf(N(-1), S("t")))),
	}
	for _, sig := range signals {
		ls, err := Laplace(sig, "t", "s")
		if err != nil {
			t.Fatalf("laplace %s: %v", sig, err)
		}
		back, err := InverseLaplace(ls, "s", "t")
		if err != nil {
			t.Fatalf("inverse %s: %v", ls, err)
		}
		if !back.Equal(sig.Simplify()) {
			t.Errorf("round trip: want %s, got %s", sig, back)
		}
	}
}

func TestFourier_Cosine(t *testing.T) {
	// cos(2 pi t) -> (delta(f-1) + delta(f+1))/2
	e := Cos(MulOf(N(2), Pi(), S("t")))
	got, err := Fourier(e, "t", "f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(F(1, 2), AddOf(
		DiracDelta(AddOf(S("f"), N(-1))),
		DiracDelta(AddOf(S("f"), N(1)))))
	if !got.Equal(want.Simplify()) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFourier_Constant(t *testing.T) {
	got, err := Fourier(N(4), "t", "f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(4), DiracDelta(S("f")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestFourier_Impulse(t *testing.T) {
	got, err := Fourier(DiracDelta(S("t")), "t", "f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(N(1)) {
		t.Errorf("want 1, got %s", got)
	}
}

func TestInverseFourier_Impulse(t *testing.T) {
	got, err := InverseFourier(MulOf(N(4), DiracDelta(S("f"))), "f", "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(N(4)) {
		t.Errorf("want 4, got %s", got)
	}
}

func TestZTransform_Table(t *testing.T) {
	n, z := S("n"), S("z")
	cases := []struct {
		e    Expr
		want Expr
	}{
		{UnitImpulse(n), N(1)},
		{UnitImpulse(AddOf(n, N(-3))), PowOf(z, N(-3))},
		{Heaviside(n), MulOf(z, PowOf(AddOf(z, N(-1)), N(-1)))},
		{PowOf(F(1, 2), n), MulOf(z, PowOf(AddOf(z, F(-1, 2)), N(-1)))},
		{n, MulOf(z, PowOf(AddOf(z, N(-1)), N(-2)))},
	}
	for _, c := range cases {
		got, err := ZTransform(c.e, "n", "z")
		if err != nil {
			t.Fatalf("transform %s: %v", c.e, err)
		}
		if !got.Equal(c.want.Simplify()) {
			t.Errorf("Z{%s}: want %s, got %s", c.e, c.want, got)
		}
	}
}

func TestInverseZ_Geometric(t *testing.T) {
	// z/(z-1/2) -> (1/2)^n
	e := MulOf(S("z"), PowOf(AddOf(S("z"), F(-1, 2)), N(-1)))
	got, err := InverseZ(e, "z", "n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PowOf(F(1, 2), S("n"))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestInverseZ_Step(t *testing.T) {
	e := MulOf(S("z"), PowOf(AddOf(S("z"), N(-1)), N(-1)))
	got, err := InverseZ(e, "z", "n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(Heaviside(S("n"))) {
		t.Errorf("want u(n), got %s", got)
	}
}

func TestZRoundTrip(t *testing.T) {
	seqs := []Expr{
		Heaviside(S("n")),
		PowOf(F(1, 3), S("n")),
	}
	for _, seq := range seqs {
		zt, err := ZTransform(seq, "n", "z")
		if err != nil {
			t.Fatalf("transform %s: %v", seq, err)
		}
		back, err := InverseZ(zt, "z", "n")
		if err != nil {
			t.Fatalf("inverse %s: %v", zt, err)
		}
		if !back.Equal(seq.Simplify()) {
			t.Errorf("round trip: want %s, got %s", seq, back)
		}
	}
}

func TestDTFT_ShiftedImpulse(t *testing.T) {
	e := UnitImpulse(AddOf(S("n"), N(-1)))
	got, err := DTFT(e, "n", "f", "dt", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Exp(MulOf(N(-1), J(), N(2), Pi(), S("f"), S("dt")))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestDTFT_CausalViaZ(t *testing.T) {
	got, err := DTFT(PowOf(F(1, 2), S("n")), "n", "f", "dt", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phase := Exp(MulOf(J(), N(2), Pi(), S("f"), S("dt")))
	want := MulOf(phase, PowOf(AddOf(phase, F(-1, 2)), N(-1)))
	if !got.Equal(want.Simplify()) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestIntegrateHalfLine_Lorentzian(t *testing.T) {
	// 4/(1 + w^2) integrates to 2*pi over [0, oo).
	e := MulOf(N(4), PowOf(AddOf(N(1), PowOf(S("w"), N(2))), N(-1)))
	got, err := IntegrateHalfLine(e, "w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(N(2), Pi()).Simplify()
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestIntegrateHalfLine_SymbolicCorner(t *testing.T) {
	// 1/(a + b*w^2) integrates to pi/(2*sqrt(a*b)).
	e := PowOf(AddOf(S("a"), MulOf(S("b"), PowOf(S("w"), N(2)))), N(-1))
	got, err := IntegrateHalfLine(e, "w")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := MulOf(Pi(), PowOf(MulOf(N(4), S("a"), S("b")), F(-1, 2))).Simplify()
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestIntegrateHalfLine_RejectsConstant(t *testing.T) {
	if _, err := IntegrateHalfLine(N(3), "w"); err == nil {
		t.Fatal("expected an error for unbounded area")
	}
}
