package sym

import "testing"

func TestAdd_CollectsLikeTerms(t *testing.T) {
	e := AddOf(S("x"), S("x"))
	want := MulOf(N(2), S("x"))
	if !e.Equal(want) {
		t.Errorf("want %s, got %s", want, e)
	}
}

func TestAdd_CancelsToZero(t *testing.T) {
	e := AddOf(S("x"), MulOf(N(-1), S("x")))
	if !e.Equal(N(0)) {
		t.Errorf("want 0, got %s", e)
	}
}

func TestMul_FoldsImaginarySquare(t *testing.T) {
	e := MulOf(J(), J())
	if !e.Equal(N(-1)) {
		t.Errorf("want -1, got %s", e)
	}
}

func TestMul_MergesRepeatedBases(t *testing.T) {
	e := MulOf(S("s"), S("s"))
	want := PowOf(S("s"), N(2))
	if !e.Equal(want) {
		t.Errorf("want %s, got %s", want, e)
	}
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	e := MulOf(N(0), S("x"), Sin(S("t")))
	if !e.Equal(N(0)) {
		t.Errorf("want 0, got %s", e)
	}
}

func TestPow_ImaginaryCycle(t *testing.T) {
	cases := []struct {
		exp  int64
		want Expr
	}{
		{0, N(1)},
		{1, J()},
		{2, N(-1)},
		{3, MulOf(N(-1), J())},
		{4, N(1)},
		{-1, MulOf(N(-1), J())},
	}
	for _, c := range cases {
		got := PowOf(J(), N(c.exp))
		if !got.Equal(c.want) {
			t.Errorf("j^%d: want %s, got %s", c.exp, c.want, got)
		}
	}
}

func TestPow_NumericFolding(t *testing.T) {
	e := PowOf(N(2), N(10))
	if !e.Equal(N(1024)) {
		t.Errorf("want 1024, got %s", e)
	}
	e = PowOf(N(2), N(-2))
	if !e.Equal(F(1, 4)) {
		t.Errorf("want 1/4, got %s", e)
	}
}

func TestFunc_SpecialValues(t *testing.T) {
	cases := []struct {
		got  Expr
		want Expr
	}{
		{Sin(N(0)), N(0)},
		{Cos(N(0)), N(1)},
		{Exp(N(0)), N(1)},
		{Log(N(1)), N(0)},
		{Heaviside(N(-1)), N(0)},
		{Heaviside(N(2)), N(1)},
		{UnitImpulse(N(0)), N(1)},
		{UnitImpulse(N(3)), N(0)},
		{DiracDelta(N(5)), N(0)},
		{Abs(N(-7)), N(7)},
		{Sign(N(-3)), N(-1)},
	}
	for _, c := range cases {
		if !c.got.Equal(c.want) {
			t.Errorf("want %s, got %s", c.want, c.got)
		}
	}
}

func TestFunc_OddEvenSymmetry(t *testing.T) {
	// sin(-x) = -sin(x), cos(-x) = cos(x)
	e := Sin(MulOf(N(-1), S("x")))
	want := MulOf(N(-1), Sin(S("x")))
	if !e.Equal(want) {
		t.Errorf("want %s, got %s", want, e)
	}
	e = Cos(MulOf(N(-1), S("x")))
	if !e.Equal(Cos(S("x"))) {
		t.Errorf("want cos(x), got %s", e)
	}
}

func TestDiff_Basics(t *testing.T) {
	cases := []struct {
		e    Expr
		want Expr
	}{
		{Sin(S("t")), Cos(S("t"))},
		{Exp(S("t")), Exp(S("t"))},
		{PowOf(S("t"), N(3)), MulOf(N(3), PowOf(S("t"), N(2)))},
		{Heaviside(S("t")), DiracDelta(S("t"))},
	}
	for _, c := range cases {
		got := Diff(c.e, "t")
		if !got.Equal(c.want) {
			t.Errorf("d/dt %s: want %s, got %s", c.e, c.want, got)
		}
	}
}

func TestDiff_ChainRule(t *testing.T) {
	got := Diff(Sin(MulOf(N(2), S("t"))), "t")
	want := MulOf(N(2), Cos(MulOf(N(2), S("t"))))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestSubst_ReplacesSymbol(t *testing.T) {
	e := AddOf(PowOf(S("s"), N(2)), S("s"))
	got := Subst(e, "s", N(3))
	if !got.Equal(N(12)) {
		t.Errorf("want 12, got %s", got)
	}
}

func TestRealImag_Split(t *testing.T) {
	e := AddOf(S("a"), MulOf(J(), S("b")))
	re, im, err := RealImag(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.Equal(S("a")) {
		t.Errorf("real part: want a, got %s", re)
	}
	if !im.Equal(S("b")) {
		t.Errorf("imag part: want b, got %s", im)
	}
}

func TestRealImag_Reciprocal(t *testing.T) {
	// 1/(1+j) = (1-j)/2
	e := PowOf(AddOf(N(1), J()), N(-1))
	re, im, err := RealImag(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.Simplify().Equal(F(1, 2)) {
		t.Errorf("real part: want 1/2, got %s", re.Simplify())
	}
	if !im.Simplify().Equal(F(-1, 2)) {
		t.Errorf("imag part: want -1/2, got %s", im.Simplify())
	}
}

func TestConjugate(t *testing.T) {
	e := AddOf(N(1), MulOf(N(2), J()))
	got := Conjugate(e)
	want := AddOf(N(1), MulOf(N(-2), J()))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpand_DifferenceOfSquares(t *testing.T) {
	e := MulOf(AddOf(S("a"), N(1)), AddOf(S("a"), N(-1)))
	got := Expand(e)
	want := AddOf(PowOf(S("a"), N(2)), N(-1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpand_SquaredSymbol(t *testing.T) {
	e := PowOf(S("x"), N(2))
	got := Expand(e)
	if !got.Equal(e) {
		t.Errorf("want %s, got %s", e, got)
	}
}

func TestExpand_SquaredSum(t *testing.T) {
	e := PowOf(AddOf(S("a"), N(1)), N(2))
	got := Expand(e)
	want := AddOf(PowOf(S("a"), N(2)), MulOf(N(2), S("a")), N(1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestExpand_CubedSum(t *testing.T) {
	e := PowOf(AddOf(S("a"), S("b")), N(3))
	got := Expand(e)
	want := AddOf(
		PowOf(S("a"), N(3)),
		MulOf(N(3), PowOf(S("a"), N(2)), S("b")),
		MulOf(N(3), S("a"), PowOf(S("b"), N(2))),
		PowOf(S("b"), N(3)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestPolyCoeffs_Quadratic(t *testing.T) {
	e := AddOf(MulOf(N(2), PowOf(S("s"), N(2))), MulOf(N(3), S("s")), N(4))
	coeffs, ok := PolyCoeffs(e, "s")
	if !ok {
		t.Fatal("expected polynomial")
	}
	if !coeffs[2].Equal(N(2)) || !coeffs[1].Equal(N(3)) || !coeffs[0].Equal(N(4)) {
		t.Errorf("bad coefficients: %v", coeffs)
	}
}

func TestDegree(t *testing.T) {
	e := AddOf(MulOf(S("a"), PowOf(S("s"), N(3))), S("s"))
	if d := Degree(e, "s"); d != 3 {
		t.Errorf("want degree 3, got %d", d)
	}
}

func TestFreeSymbols_ExcludesPi(t *testing.T) {
	e := MulOf(N(2), Pi(), S("f"), S("t"))
	syms := FreeSymbols(e)
	if len(syms) != 2 {
		t.Errorf("want 2 free symbols, got %v", syms)
	}
	if _, ok := syms[PiName]; ok {
		t.Error("pi must not count as a free symbol")
	}
}

func TestEvalComplex_ImaginaryUnit(t *testing.T) {
	v, ok := J().EvalComplex(nil)
	if !ok || v != complex(0, 1) {
		t.Errorf("want i, got %v (%v)", v, ok)
	}
}

func TestEvalComplex_NegativeSqrt(t *testing.T) {
	v, ok := SqrtOf(N(-4)).EvalComplex(nil)
	if !ok {
		t.Fatal("expected a value")
	}
	if v != complex(0, 2) {
		t.Errorf("want 2i, got %v", v)
	}
}

func TestEvalComplex_Bindings(t *testing.T) {
	e := AddOf(PowOf(S("s"), N(2)), N(1))
	v, ok := e.EvalComplex(map[string]complex128{"s": 2})
	if !ok || v != 5 {
		t.Errorf("want 5, got %v (%v)", v, ok)
	}
}

func TestSplitConst_Product(t *testing.T) {
	e := MulOf(N(3), S("R"), Sin(S("t")))
	constPart, varPart := SplitConst(e, "t")
	if !constPart.Simplify().Equal(MulOf(N(3), S("R"))) {
		t.Errorf("const part: got %s", constPart)
	}
	if !varPart.Simplify().Equal(Sin(S("t"))) {
		t.Errorf("var part: got %s", varPart)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	exprs := []Expr{
		N(42),
		F(-3, 7),
		S("omega"),
		J(),
		AddOf(MulOf(N(2), S("s")), N(1)),
		PowOf(AddOf(S("s"), N(3)), N(-2)),
		Sin(MulOf(N(2), Pi(), S("f"), S("t"))),
		Atan2(S("y"), S("x")),
	}
	for _, e := range exprs {
		data, err := MarshalExpr(e)
		if err != nil {
			t.Fatalf("marshal %s: %v", e, err)
		}
		back, err := UnmarshalExpr(data)
		if err != nil {
			t.Fatalf("unmarshal %s: %v", e, err)
		}
		if !back.Equal(e) {
			t.Errorf("round trip: want %s, got %s", e, back)
		}
	}
}
