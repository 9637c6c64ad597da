package sym

import (
	"fmt"
	"math/big"
)

// ============================================================
// Numerator / Denominator splitting
// ============================================================

// NumerDenom splits e into a numerator and denominator without expanding.
func NumerDenom(e Expr) (Expr, Expr) {
	switch v := e.(type) {
	case *Num:
		if v.val.IsInt() {
			return v, N(1)
		}
		return &Num{val: new(big.Rat).SetInt(v.val.Num())},
			&Num{val: new(big.Rat).SetInt(v.val.Denom())}
	case *Mul:
		nums := []Expr{}
		dens := []Expr{}
		for _, f := range v.factors {
			fn, fd := NumerDenom(f)
			nums = append(nums, fn)
			dens = append(dens, fd)
		}
		return MulOf(nums...), MulOf(dens...)
	case *Pow:
		if en, ok := v.exp.(*Num); ok && en.IsInteger() && en.IsNegative() {
			bn, bd := NumerDenom(v.base)
			flipped := numNeg(en)
			return PowOf(bd, flipped), PowOf(bn, flipped)
		}
		if en, ok := v.exp.(*Num); ok && en.IsInteger() && en.IsPositive() {
			bn, bd := NumerDenom(v.base)
			return PowOf(bn, en), PowOf(bd, en)
		}
		return e, N(1)
	case *Add:
		nums := make([]Expr, len(v.terms))
		dens := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			nums[i], dens[i] = NumerDenom(t)
		}
		// Combine over the common denominator.
		den := Expr(N(1))
		for _, d := range dens {
			den = MulOf(den, d)
		}
		combined := make([]Expr, len(v.terms))
		for i := range v.terms {
			others := Expr(N(1))
			for j, d := range dens {
				if j != i {
					others = MulOf(others, d)
				}
			}
			combined[i] = MulOf(nums[i], others)
		}
		return AddOf(combined...), den
	}
	return e, N(1)
}

// Together rewrites e as a single fraction.
func Together(e Expr) Expr {
	n, d := NumerDenom(e)
	return DivOf(n, d)
}

// ============================================================
// Rational polynomial arithmetic (coefficients low degree first)
// ============================================================

func ratPolyTrim(p []*big.Rat) []*big.Rat {
	for len(p) > 1 && p[len(p)-1].Sign() == 0 {
		p = p[:len(p)-1]
	}
	return p
}

func ratPolyAdd(a, b []*big.Rat) []*big.Rat {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
	}
	return ratPolyTrim(out)
}

func ratPolyMul(a, b []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, ai := range a {
		for j, bj := range b {
			term := new(big.Rat).Mul(ai, bj)
			out[i+j].Add(out[i+j], term)
		}
	}
	return ratPolyTrim(out)
}

func ratPolyScale(p []*big.Rat, k *big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Mul(c, k)
	}
	return ratPolyTrim(out)
}

// ratPolyDiv returns quotient and remainder of a / b.
func ratPolyDiv(a, b []*big.Rat) (q, r []*big.Rat) {
	a = ratPolyTrim(a)
	b = ratPolyTrim(b)
	if len(b) == 1 && b[0].Sign() == 0 {
		panic("sym: polynomial division by zero")
	}
	r = make([]*big.Rat, len(a))
	for i, c := range a {
		r[i] = new(big.Rat).Set(c)
	}
	if len(a) < len(b) {
		return []*big.Rat{new(big.Rat)}, ratPolyTrim(r)
	}
	q = make([]*big.Rat, len(a)-len(b)+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lead := b[len(b)-1]
	for d := len(r) - len(b); d >= 0; d-- {
		coef := new(big.Rat).Quo(r[d+len(b)-1], lead)
		q[d].Set(coef)
		for i, bc := range b {
			term := new(big.Rat).Mul(coef, bc)
			r[d+i].Sub(r[d+i], term)
		}
	}
	return ratPolyTrim(q), ratPolyTrim(r)
}

func ratPolyEval(p []*big.Rat, x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

func ratPolyIsZero(p []*big.Rat) bool {
	for _, c := range p {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// RatCoeffs extracts the coefficients of e as a polynomial in name with
// numeric coefficients, low degree first.
func RatCoeffs(e Expr, name string) ([]*big.Rat, error) {
	coeffs, ok := PolyCoeffs(e, name)
	if !ok {
		return nil, fmt.Errorf("sym: %s is not polynomial in %s", e, name)
	}
	maxDeg := 0
	for d := range coeffs {
		if d > maxDeg {
			maxDeg = d
		}
	}
	out := make([]*big.Rat, maxDeg+1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for d, c := range coeffs {
		n, ok := c.Simplify().Eval()
		if !ok {
			return nil, fmt.Errorf("sym: coefficient %s of degree %d is not numeric", c, d)
		}
		out[d].Set(n.val)
	}
	return ratPolyTrim(out), nil
}

// PolyExpr builds the symbolic polynomial with the given coefficients.
func PolyExpr(coeffs []*big.Rat, name string) Expr {
	terms := []Expr{}
	for d, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		cn := &Num{val: new(big.Rat).Set(c)}
		switch d {
		case 0:
			terms = append(terms, cn)
		case 1:
			terms = append(terms, MulOf(cn, S(name)))
		default:
			terms = append(terms, MulOf(cn, PowOf(S(name), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// ============================================================
// Canonical forms
// ============================================================

// General rewrites e as a single fraction with expanded numerator and
// denominator, collected by powers of name.
func General(e Expr, name string) Expr {
	n, d := NumerDenom(e)
	n = Collect(Expand(n), name)
	d = Collect(Expand(d), name)
	return DivOf(n, d)
}

// Canonical rewrites e as a fraction whose denominator is monic in name.
// Symbolic coefficients are allowed.
func Canonical(e Expr, name string) Expr {
	n, d := NumerDenom(e)
	n = Expand(n)
	d = Expand(d)
	dCoeffs, ok := PolyCoeffs(d, name)
	if !ok {
		return DivOf(Collect(n, name), Collect(d, name))
	}
	maxDeg := 0
	for deg := range dCoeffs {
		if deg > maxDeg {
			maxDeg = deg
		}
	}
	lead := dCoeffs[maxDeg]
	if lead == nil {
		return DivOf(Collect(n, name), Collect(d, name))
	}
	n = Collect(Expand(DivOf(n, lead)), name)
	d = Collect(Expand(DivOf(d, lead)), name)
	return DivOf(n, d)
}

// ZeroLimit evaluates the limit of a rational expression as name
// approaches zero. A common power of name shared by numerator and
// denominator cancels before the substitution, so x/(x+a*x^2) gives
// the same answer as 1/(1+a*x). A surviving pole at zero is an error.
func ZeroLimit(e Expr, name string) (Expr, error) {
	n, d := NumerDenom(e)
	ncs, okN := PolyCoeffs(Collect(Expand(n), name), name)
	dcs, okD := PolyCoeffs(Collect(Expand(d), name), name)
	if !okN || !okD {
		return nil, fmt.Errorf("sym: not a rational function of %s", name)
	}
	kn, haveN := lowestOrder(ncs)
	kd, haveD := lowestOrder(dcs)
	if !haveD {
		return nil, fmt.Errorf("sym: zero denominator in limit at %s = 0", name)
	}
	switch {
	case !haveN || kn > kd:
		return N(0), nil
	case kn == kd:
		return DivOf(ncs[kn], dcs[kd]).Simplify(), nil
	}
	return nil, fmt.Errorf("sym: pole at %s = 0", name)
}

// lowestOrder finds the smallest degree with a structurally nonzero
// coefficient.
func lowestOrder(c map[int]Expr) (int, bool) {
	best, found := 0, false
	for deg, coeff := range c {
		if Simplify(coeff).Equal(N(0)) {
			continue
		}
		if !found || deg < best {
			best, found = deg, true
		}
	}
	return best, found
}

// ============================================================
// Structured partial-fraction decomposition
// ============================================================

// LinearTerm is Coeff / (x - Root)^Order.
type LinearTerm struct {
	Coeff *big.Rat
	Root  *big.Rat
	Order int
}

// QuadTerm is (A x + B) / (x^2 + P x + Q) with the quadratic irreducible
// over the rationals.
type QuadTerm struct {
	A, B, P, Q *big.Rat
}

// RatDecomp is a rational function decomposed as
// quotient + sum of linear terms + sum of quadratic terms.
type RatDecomp struct {
	Var      string
	Quotient []*big.Rat
	Linear   []LinearTerm
	Quads    []QuadTerm
}

// PartialTerms decomposes e, viewed as a rational function of name with
// numeric coefficients, into partial fractions.
func PartialTerms(e Expr, name string) (*RatDecomp, error) {
	nExpr, dExpr := NumerDenom(e)
	num, err := RatCoeffs(Expand(nExpr), name)
	if err != nil {
		return nil, err
	}
	den, err := RatCoeffs(Expand(dExpr), name)
	if err != nil {
		return nil, err
	}
	if ratPolyIsZero(den) {
		return nil, fmt.Errorf("sym: zero denominator")
	}
	quotient, rem := ratPolyDiv(num, den)
	dec := &RatDecomp{Var: name, Quotient: quotient}
	if ratPolyIsZero(rem) {
		dec.Quotient = quotient
		return dec, nil
	}
	lins, quads, err := factorRatPoly(den)
	if err != nil {
		return nil, err
	}
	if err := solvePartialFractions(dec, rem, den, lins, quads); err != nil {
		return nil, err
	}
	return dec, nil
}

type linFactor struct {
	root *big.Rat
	mult int
}

type quadFactor struct {
	p, q *big.Rat // x^2 + p x + q
	mult int
}

// factorRatPoly factors a rational-coefficient polynomial into linear
// factors with rational roots plus irreducible monic quadratics. Degrees
// beyond what exact factoring handles fall back to numeric root finding.
func factorRatPoly(p []*big.Rat) ([]linFactor, []quadFactor, error) {
	p = ratPolyTrim(p)
	var lins []linFactor
	roots, remaining := rationalRoots(p)
	for _, r := range roots {
		found := false
		for i := range lins {
			if lins[i].root.Cmp(r) == 0 {
				lins[i].mult++
				found = true
			}
		}
		if !found {
			lins = append(lins, linFactor{root: r, mult: 1})
		}
	}
	deg := len(remaining) - 1
	switch {
	case deg <= 0:
		return lins, nil, nil
	case deg == 2:
		// Known irreducible over the rationals (rational roots removed).
		lead := remaining[2]
		pp := new(big.Rat).Quo(remaining[1], lead)
		qq := new(big.Rat).Quo(remaining[0], lead)
		return lins, []quadFactor{{p: pp, q: qq, mult: 1}}, nil
	}
	numLins, numQuads, err := numericFactors(remaining)
	if err != nil {
		return nil, nil, err
	}
	return append(lins, numLins...), numQuads, nil
}

// solvePartialFractions determines the unknown numerator coefficients by
// equating polynomial coefficients and solving the resulting linear system
// with exact rational arithmetic.
func solvePartialFractions(dec *RatDecomp, rem, den []*big.Rat, lins []linFactor, quads []quadFactor) error {
	// Normalise: make the denominator monic and scale the remainder.
	lead := den[len(den)-1]
	denMonic := ratPolyScale(den, new(big.Rat).Inv(lead))
	remScaled := ratPolyScale(rem, new(big.Rat).Inv(lead))

	// Basis polynomial for each unknown: denMonic divided by the factor
	// power the unknown belongs to.
	type unknown struct {
		basis []*big.Rat // multiplies the unknown coefficient
		lin   *LinearTerm
		quadI int // index into dec.Quads, -1 for linear
		isA   bool
	}
	var unknowns []unknown
	for _, lf := range lins {
		for k := 1; k <= lf.mult; k++ {
			// denMonic / (x - root)^k
			// Remainders from numerically-derived roots are dropped.
			basis := denMonic
			for i := 0; i < k; i++ {
				basis, _ = ratPolyDiv(basis, []*big.Rat{new(big.Rat).Neg(lf.root), new(big.Rat).SetInt64(1)})
			}
			unknowns = append(unknowns, unknown{
				basis: basis,
				lin:   &LinearTerm{Root: new(big.Rat).Set(lf.root), Order: k},
			})
		}
	}
	for qi, qf := range quads {
		if qf.mult != 1 {
			return fmt.Errorf("sym: repeated irreducible quadratic factors are not supported")
		}
		quadPoly := []*big.Rat{new(big.Rat).Set(qf.q), new(big.Rat).Set(qf.p), new(big.Rat).SetInt64(1)}
		basis, _ := ratPolyDiv(denMonic, quadPoly)
		dec.Quads = append(dec.Quads, QuadTerm{
			A: new(big.Rat), B: new(big.Rat),
			P: new(big.Rat).Set(qf.p), Q: new(big.Rat).Set(qf.q),
		})
		// B contributes basis, A contributes x*basis.
		unknowns = append(unknowns, unknown{basis: basis, quadI: qi})
		xBasis := ratPolyMul([]*big.Rat{new(big.Rat), new(big.Rat).SetInt64(1)}, basis)
		unknowns = append(unknowns, unknown{basis: xBasis, quadI: qi, isA: true})
	}

	nUnknowns := len(unknowns)
	degree := len(denMonic) - 1
	if nUnknowns != degree {
		return fmt.Errorf("sym: factorization degree mismatch (%d unknowns for degree %d)", nUnknowns, degree)
	}

	// Row i: coefficient of x^i; column j: unknown j.
	A := make([][]*big.Rat, degree)
	b := make([]*big.Rat, degree)
	for i := 0; i < degree; i++ {
		A[i] = make([]*big.Rat, nUnknowns)
		for j := 0; j < nUnknowns; j++ {
			A[i][j] = new(big.Rat)
			if i < len(unknowns[j].basis) {
				A[i][j].Set(unknowns[j].basis[i])
			}
		}
		b[i] = new(big.Rat)
		if i < len(remScaled) {
			b[i].Set(remScaled[i])
		}
	}
	sol, err := solveRatSystem(A, b)
	if err != nil {
		return err
	}
	for j, u := range unknowns {
		switch {
		case u.lin != nil:
			u.lin.Coeff = sol[j]
			dec.Linear = append(dec.Linear, *u.lin)
		case u.isA:
			dec.Quads[u.quadI].A = sol[j]
		default:
			dec.Quads[u.quadI].B = sol[j]
		}
	}
	return nil
}

// solveRatSystem solves A x = b by Gaussian elimination over the rationals.
func solveRatSystem(A [][]*big.Rat, b []*big.Rat) ([]*big.Rat, error) {
	n := len(A)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if A[row][col].Sign() != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, fmt.Errorf("sym: singular system in partial fractions")
		}
		A[col], A[pivot] = A[pivot], A[col]
		b[col], b[pivot] = b[pivot], b[col]
		inv := new(big.Rat).Inv(A[col][col])
		for j := col; j < n; j++ {
			A[col][j].Mul(A[col][j], inv)
		}
		b[col].Mul(b[col], inv)
		for row := 0; row < n; row++ {
			if row == col || A[row][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(A[row][col])
			for j := col; j < n; j++ {
				t := new(big.Rat).Mul(factor, A[col][j])
				A[row][j].Sub(A[row][j], t)
			}
			t := new(big.Rat).Mul(factor, b[col])
			b[row].Sub(b[row], t)
		}
	}
	return b, nil
}

// Expr rebuilds the symbolic form of the decomposition.
func (d *RatDecomp) Expr() Expr {
	terms := []Expr{}
	if !ratPolyIsZero(d.Quotient) {
		terms = append(terms, PolyExpr(d.Quotient, d.Var))
	}
	x := S(d.Var)
	for _, lt := range d.Linear {
		c := &Num{val: new(big.Rat).Set(lt.Coeff)}
		shift := SubOf(x, &Num{val: new(big.Rat).Set(lt.Root)})
		terms = append(terms, MulOf(c, PowOf(shift, N(int64(-lt.Order)))))
	}
	for _, qt := range d.Quads {
		numer := AddOf(
			MulOf(&Num{val: new(big.Rat).Set(qt.A)}, x),
			&Num{val: new(big.Rat).Set(qt.B)})
		denom := AddOf(
			PowOf(x, N(2)),
			MulOf(&Num{val: new(big.Rat).Set(qt.P)}, x),
			&Num{val: new(big.Rat).Set(qt.Q)})
		terms = append(terms, DivOf(numer, denom))
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// Partfrac rewrites e as a sum of partial fractions in name.
func Partfrac(e Expr, name string) (Expr, error) {
	dec, err := PartialTerms(e, name)
	if err != nil {
		return nil, err
	}
	return dec.Expr(), nil
}

// Mixedfrac rewrites e as polynomial quotient plus proper fraction.
func Mixedfrac(e Expr, name string) (Expr, error) {
	nExpr, dExpr := NumerDenom(e)
	num, err := RatCoeffs(Expand(nExpr), name)
	if err != nil {
		return nil, err
	}
	den, err := RatCoeffs(Expand(dExpr), name)
	if err != nil {
		return nil, err
	}
	q, r := ratPolyDiv(num, den)
	if ratPolyIsZero(r) {
		return PolyExpr(q, name), nil
	}
	frac := DivOf(PolyExpr(r, name), PolyExpr(den, name))
	if ratPolyIsZero(q) {
		return frac, nil
	}
	return AddOf(PolyExpr(q, name), frac), nil
}
