package sym

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ============================================================
// Rational roots
// ============================================================

// rationalRoots strips all rational roots from p (with multiplicity) and
// returns them together with the deflated remainder polynomial.
func rationalRoots(p []*big.Rat) ([]*big.Rat, []*big.Rat) {
	p = ratPolyTrim(p)
	var roots []*big.Rat

	// Roots at zero.
	for len(p) > 1 && p[0].Sign() == 0 {
		roots = append(roots, new(big.Rat))
		p = p[1:]
	}
	if len(p) <= 1 {
		return roots, p
	}

	// Clear denominators to get an integer polynomial.
	lcmDen := big.NewInt(1)
	for _, c := range p {
		lcmDen = lcm(lcmDen, c.Denom())
	}
	ints := make([]*big.Int, len(p))
	for i, c := range p {
		scaled := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcmDen))
		ints[i] = new(big.Int).Set(scaled.Num())
	}

	numDivs := divisors(ints[0])
	denDivs := divisors(ints[len(ints)-1])
	var candidates []*big.Rat
	for _, nd := range numDivs {
		for _, dd := range denDivs {
			r := new(big.Rat).SetFrac(nd, dd)
			candidates = append(candidates, r, new(big.Rat).Neg(r))
		}
	}

	for _, cand := range candidates {
		for len(p) > 1 && ratPolyEval(p, cand).Sign() == 0 {
			roots = append(roots, new(big.Rat).Set(cand))
			p, _ = ratPolyDiv(p, []*big.Rat{new(big.Rat).Neg(cand), new(big.Rat).SetInt64(1)})
		}
	}
	return roots, p
}

func lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return big.NewInt(0)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	out := new(big.Int).Mul(a, b)
	out.Abs(out)
	return out.Div(out, g)
}

// divisors returns the positive divisors of |n|. Values too large for
// trial division fall back to {1, |n|}.
func divisors(n *big.Int) []*big.Int {
	abs := new(big.Int).Abs(n)
	if abs.Sign() == 0 {
		return []*big.Int{big.NewInt(1)}
	}
	if !abs.IsInt64() || abs.Int64() > 1<<32 {
		return []*big.Int{big.NewInt(1), abs}
	}
	v := abs.Int64()
	var out []*big.Int
	for i := int64(1); i*i <= v; i++ {
		if v%i == 0 {
			out = append(out, big.NewInt(i))
			if i != v/i {
				out = append(out, big.NewInt(v/i))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

// ============================================================
// Numeric roots (companion-matrix eigenvalues)
// ============================================================

// NumericRoots finds all complex roots of the polynomial with the given
// rational coefficients (low degree first) via the eigenvalues of its
// companion matrix.
func NumericRoots(p []*big.Rat) ([]complex128, error) {
	p = ratPolyTrim(p)
	deg := len(p) - 1
	if deg < 1 {
		return nil, nil
	}
	lead, _ := p[deg].Float64()
	if lead == 0 {
		return nil, fmt.Errorf("sym: zero leading coefficient")
	}
	coeffs := make([]float64, deg)
	for i := 0; i < deg; i++ {
		f, _ := p[i].Float64()
		coeffs[i] = f / lead
	}
	comp := mat.NewDense(deg, deg, nil)
	for i := 0; i < deg; i++ {
		comp.Set(0, i, -coeffs[deg-1-i])
	}
	for i := 1; i < deg; i++ {
		comp.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, fmt.Errorf("sym: eigenvalue computation failed")
	}
	values := make([]complex128, deg)
	eig.Values(values)
	sort.Slice(values, func(i, j int) bool {
		if real(values[i]) != real(values[j]) {
			return real(values[i]) < real(values[j])
		}
		return imag(values[i]) < imag(values[j])
	})
	return values, nil
}

const rootTol = 1e-8

// numericFactors factors a polynomial numerically into real linear factors
// and conjugate-pair quadratics.
func numericFactors(p []*big.Rat) ([]linFactor, []quadFactor, error) {
	roots, err := NumericRoots(p)
	if err != nil {
		return nil, nil, err
	}
	var lins []linFactor
	var quads []quadFactor
	used := make([]bool, len(roots))
	for i, r := range roots {
		if used[i] {
			continue
		}
		if math.Abs(imag(r)) < rootTol {
			root := new(big.Rat).SetFloat64(real(r))
			matched := false
			for k := range lins {
				rf, _ := lins[k].root.Float64()
				if math.Abs(rf-real(r)) < rootTol {
					lins[k].mult++
					matched = true
					break
				}
			}
			if !matched {
				lins = append(lins, linFactor{root: root, mult: 1})
			}
			used[i] = true
			continue
		}
		if imag(r) < 0 {
			continue // handled with its conjugate
		}
		// Pair with the conjugate root.
		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}
			if math.Abs(real(roots[j])-real(r)) < rootTol && math.Abs(imag(roots[j])+imag(r)) < rootTol {
				used[j] = true
				break
			}
		}
		used[i] = true
		quads = append(quads, quadFactor{
			p:    new(big.Rat).SetFloat64(-2 * real(r)),
			q:    new(big.Rat).SetFloat64(real(r)*real(r) + imag(r)*imag(r)),
			mult: 1,
		})
	}
	return lins, quads, nil
}

// ============================================================
// Symbolic root listing
// ============================================================

// PolyRootsOf returns the roots of e viewed as a polynomial in name.
// Rational roots are exact; the rest are numeric, with conjugate pairs
// expressed through the imaginary unit.
func PolyRootsOf(e Expr, name string) ([]Expr, error) {
	coeffs, err := RatCoeffs(Expand(e), name)
	if err != nil {
		return nil, err
	}
	if len(coeffs) <= 1 {
		return nil, nil
	}
	ratRoots, remaining := rationalRoots(coeffs)
	var out []Expr
	for _, r := range ratRoots {
		out = append(out, &Num{val: new(big.Rat).Set(r)})
	}
	if len(remaining) > 1 {
		if len(remaining) == 3 {
			// Exact quadratic formula.
			a, _ := remaining[2].Float64()
			b, _ := remaining[1].Float64()
			c, _ := remaining[0].Float64()
			disc := b*b - 4*a*c
			if disc >= 0 {
				sq := math.Sqrt(disc)
				out = append(out, NFloat((-b+sq)/(2*a)), NFloat((-b-sq)/(2*a)))
			} else {
				sq := math.Sqrt(-disc)
				re := NFloat(-b / (2 * a))
				im := NFloat(sq / (2 * a))
				out = append(out,
					AddOf(re, MulOf(J(), im)),
					AddOf(re, MulOf(N(-1), J(), im)))
			}
		} else {
			numeric, err := NumericRoots(remaining)
			if err != nil {
				return nil, err
			}
			for _, r := range numeric {
				if imag(r) == 0 {
					out = append(out, NFloat(real(r)))
				} else {
					out = append(out, AddOf(NFloat(real(r)), MulOf(J(), NFloat(imag(r)))))
				}
			}
		}
	}
	return out, nil
}

// ZPK returns the gain, zeros and poles of the rational function e in name.
func ZPK(e Expr, name string) (gain Expr, zeros, poles []Expr, err error) {
	nExpr, dExpr := NumerDenom(e)
	nc, err := RatCoeffs(Expand(nExpr), name)
	if err != nil {
		return nil, nil, nil, err
	}
	dc, err := RatCoeffs(Expand(dExpr), name)
	if err != nil {
		return nil, nil, nil, err
	}
	zeros, err = PolyRootsOf(PolyExpr(nc, name), name)
	if err != nil {
		return nil, nil, nil, err
	}
	poles, err = PolyRootsOf(PolyExpr(dc, name), name)
	if err != nil {
		return nil, nil, nil, err
	}
	k := new(big.Rat).Quo(nc[len(nc)-1], dc[len(dc)-1])
	return &Num{val: k}, zeros, poles, nil
}
