package netsym

import (
	"fmt"

	"github.com/njchilds90/netsym/sym"
)

// Component impedances and admittances in the s domain.

// ZR is the impedance of a resistance.
func ZR(r sym.Expr) Expr {
	return MustNew(LaplaceDomain, Impedance, r)
}

// ZL is the impedance of an inductance: s L.
func ZL(l sym.Expr) Expr {
	return MustNew(LaplaceDomain, Impedance, sym.MulOf(sym.S("s"), l))
}

// ZC is the impedance of a capacitance: 1 / (s C).
func ZC(c sym.Expr) Expr {
	return MustNew(LaplaceDomain, Impedance, sym.DivOf(sym.N(1), sym.MulOf(sym.S("s"), c)))
}

// YR is the admittance of a resistance: 1 / R.
func YR(r sym.Expr) Expr {
	return MustNew(LaplaceDomain, Admittance, sym.DivOf(sym.N(1), r))
}

// YL is the admittance of an inductance: 1 / (s L).
func YL(l sym.Expr) Expr {
	return MustNew(LaplaceDomain, Admittance, sym.DivOf(sym.N(1), sym.MulOf(sym.S("s"), l)))
}

// YC is the admittance of a capacitance: s C.
func YC(c sym.Expr) Expr {
	return MustNew(LaplaceDomain, Admittance, sym.MulOf(sym.S("s"), c))
}

// TF builds a transfer function from numerator and denominator
// coefficients, highest degree first.
func TF(num, den []sym.Expr) (Expr, error) {
	if len(den) == 0 {
		return Expr{}, fmt.Errorf("netsym: transfer function needs denominator coefficients")
	}
	return New(LaplaceDomain, Transfer,
		sym.DivOf(polyFromCoeffs(num), polyFromCoeffs(den)))
}

// ZP2TF builds a transfer function from zeros, poles and gain.
func ZP2TF(zeros, poles []sym.Expr, gain sym.Expr) (Expr, error) {
	s := sym.S("s")
	e := gain
	for _, z := range zeros {
		e = sym.MulOf(e, sym.SubOf(s, z))
	}
	for _, p := range poles {
		e = sym.DivOf(e, sym.SubOf(s, p))
	}
	return New(LaplaceDomain, Transfer, e)
}

func polyFromCoeffs(coeffs []sym.Expr) sym.Expr {
	s := sym.S("s")
	var e sym.Expr = sym.N(0)
	for _, c := range coeffs {
		e = sym.AddOf(sym.MulOf(e, s), c)
	}
	return e
}

// DeltaWye converts a delta of impedances to the equivalent wye.
// The inputs are the delta branches opposite each wye arm.
func DeltaWye(za, zb, zc Expr) (Expr, Expr, Expr, error) {
	if err := checkImpedanceTriple(za, zb, zc); err != nil {
		return Expr{}, Expr{}, Expr{}, err
	}
	total := sym.AddOf(za.e, zb.e, zc.e)
	z1 := za
	z1.e = sym.DivOf(sym.MulOf(zb.e, zc.e), total).Simplify()
	z2 := za
	z2.e = sym.DivOf(sym.MulOf(za.e, zc.e), total).Simplify()
	z3 := za
	z3.e = sym.DivOf(sym.MulOf(za.e, zb.e), total).Simplify()
	return z1, z2, z3, nil
}

// WyeDelta converts a wye of impedances to the equivalent delta.
func WyeDelta(z1, z2, z3 Expr) (Expr, Expr, Expr, error) {
	if err := checkImpedanceTriple(z1, z2, z3); err != nil {
		return Expr{}, Expr{}, Expr{}, err
	}
	cross := sym.AddOf(
		sym.MulOf(z1.e, z2.e),
		sym.MulOf(z2.e, z3.e),
		sym.MulOf(z3.e, z1.e))
	za := z1
	za.e = sym.DivOf(cross, z1.e).Simplify()
	zb := z1
	zb.e = sym.DivOf(cross, z2.e).Simplify()
	zc := z1
	zc.e = sym.DivOf(cross, z3.e).Simplify()
	return za, zb, zc, nil
}

func checkImpedanceTriple(a, b, c Expr) error {
	for _, z := range []Expr{a, b, c} {
		if z.role != Impedance {
			return &IncompatibilityError{Op: "convert", Left: z, Right: z,
				Reason: "expected an impedance"}
		}
		if z.domain != a.domain {
			return &IncompatibilityError{Op: "convert", Left: a, Right: z,
				Reason: "impedances must share a domain"}
		}
	}
	return nil
}
