package netsym

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/njchilds90/netsym/sym"
)

// Expr is an immutable typed expression: a symbolic value tagged with a
// domain, a role and signal assumptions. Phasor expressions additionally
// carry their angular carrier frequency.
type Expr struct {
	e      sym.Expr
	domain Domain
	role   Role
	assume Assumptions
	omega  sym.Expr
	ctx    *Context
}

// New builds a typed expression, rejecting reserved domain variables
// that do not belong to d.
func New(d Domain, r Role, e sym.Expr) (Expr, error) {
	e = e.Simplify()
	if err := checkVariables(d, e); err != nil {
		return Expr{}, err
	}
	return Expr{e: e, domain: d, role: r}, nil
}

// MustNew is New for expressions known to be well formed.
func MustNew(d Domain, r Role, e sym.Expr) Expr {
	x, err := New(d, r, e)
	if err != nil {
		panic(err)
	}
	return x
}

// NewPhasor builds a phasor with complex amplitude e at angular
// frequency omega. The amplitude must be free of domain variables;
// the carrier may be the omega symbol itself or any constant.
func NewPhasor(r Role, e, omega sym.Expr) (Expr, error) {
	e = e.Simplify()
	if err := checkVariables(PhasorDomain, e); err != nil {
		return Expr{}, err
	}
	omega = omega.Simplify()
	for name := range sym.FreeSymbols(omega) {
		if reservedVars[name] && name != "omega" {
			return Expr{}, &DomainViolationError{Domain: PhasorDomain, Variable: name}
		}
	}
	return Expr{e: e, domain: PhasorDomain, role: r, omega: omega, assume: Assumptions{AC: true}}, nil
}

func checkVariables(d Domain, e sym.Expr) error {
	allowed := d.Variable()
	names := make([]string, 0, 4)
	for name := range sym.FreeSymbols(e) {
		if reservedVars[name] && name != allowed {
			// The omega*t idiom: angular-frequency scalars may ride
			// along in time-domain payloads.
			if d == TimeDomain && name == "omega" {
				continue
			}
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return &DomainViolationError{Domain: d, Variable: names[0]}
}

// WithAssumptions returns a copy carrying the given signal assumptions.
func (x Expr) WithAssumptions(a Assumptions) Expr {
	x.assume = a
	return x
}

// WithContext returns a copy evaluated under the given symbol context.
func (x Expr) WithContext(ctx *Context) Expr {
	x.ctx = ctx
	return x
}

func (x Expr) context() *Context {
	if x.ctx == nil {
		return defaultContext
	}
	return x.ctx
}

func (x Expr) Sym() sym.Expr             { return x.e }
func (x Expr) Domain() Domain            { return x.domain }
func (x Expr) Role() Role                { return x.role }
func (x Expr) Assumptions() Assumptions  { return x.assume }
func (x Expr) Omega() sym.Expr           { return x.omega }
func (x Expr) String() string            { return x.e.String() }
func (x Expr) IsZero() bool              { return x.e != nil && sym.Simplify(x.e).Equal(sym.N(0)) }

// Equal compares through the additive coercion: constants adopt the
// other operand's domain and an Undefined role matches any role.
// Assumptions do not participate. A zero value carries no payload and
// equals nothing.
func (x Expr) Equal(y Expr) bool {
	if x.e == nil || y.e == nil {
		return false
	}
	x, y, err := reconcileDomains("compare", x, y)
	if err != nil {
		return false
	}
	if _, ok := addRole(x, y); !ok {
		return false
	}
	return x.e.Equal(y.e)
}

// Subs substitutes a parameter symbol. Reserved domain variables cannot
// be substituted this way; use a transform instead.
func (x Expr) Subs(name string, value sym.Expr) (Expr, error) {
	if reservedVars[name] {
		return Expr{}, &DomainViolationError{Domain: x.domain, Variable: name}
	}
	x.e = sym.Subst(x.e, name, value)
	return x, nil
}

// ============================================================
// Rectangular and polar accessors
// ============================================================

// realImagParts splits the value structurally, treating free symbols as
// real unless the context declares them complex.
func (x Expr) realImagParts() (re, im sym.Expr, err error) {
	for name := range sym.FreeSymbols(x.e) {
		if x.context().IsComplex(name) {
			return nil, nil, fmt.Errorf("netsym: symbol %q is declared complex", name)
		}
	}
	return sym.RealImag(x.e)
}

// RealPart returns the real part of the value.
func (x Expr) RealPart() (Expr, error) {
	re, _, err := x.realImagParts()
	if err != nil {
		return Expr{}, err
	}
	x.e = re.Simplify()
	return x, nil
}

// ImagPart returns the imaginary part of the value.
func (x Expr) ImagPart() (Expr, error) {
	_, im, err := x.realImagParts()
	if err != nil {
		return Expr{}, err
	}
	x.e = im.Simplify()
	return x, nil
}

// Magnitude returns |x|. When the value cannot be split into real and
// imaginary parts an abs() wrapper is returned instead.
func (x Expr) Magnitude() Expr {
	re, im, err := x.realImagParts()
	if err != nil {
		x.e = sym.Abs(x.e)
		return x
	}
	im = im.Simplify()
	if im.Equal(sym.N(0)) {
		x.e = sym.Abs(re)
		return x
	}
	x.e = sym.SqrtOf(sym.AddOf(
		sym.PowOf(re, sym.N(2)),
		sym.PowOf(im, sym.N(2)))).Simplify()
	return x
}

// Phase returns the argument of x in radians.
func (x Expr) Phase() (Expr, error) {
	re, im, err := x.realImagParts()
	if err != nil {
		return Expr{}, err
	}
	x.e = sym.Atan2(im.Simplify(), re.Simplify())
	x.role = Undefined
	return x, nil
}

// DB returns the magnitude in decibels.
func (x Expr) DB() Expr {
	m := x.Magnitude()
	m.e = sym.MulOf(sym.N(20), sym.Log10(m.e)).Simplify()
	m.role = Undefined
	return m
}

// Conjugate returns the complex conjugate.
func (x Expr) Conjugate() Expr {
	x.e = sym.Conjugate(x.e)
	return x
}

// ============================================================
// Rational-function views
// ============================================================

// Numer returns the numerator of the value as a fraction.
func (x Expr) Numer() Expr {
	n, _ := sym.NumerDenom(x.e)
	x.e = n.Simplify()
	return x
}

// Denom returns the denominator of the value as a fraction.
func (x Expr) Denom() Expr {
	_, d := sym.NumerDenom(x.e)
	x.e = d.Simplify()
	x.role = Undefined
	return x
}

// Canonical rewrites the value with a monic denominator in the domain
// variable.
func (x Expr) Canonical() Expr {
	v := x.domain.Variable()
	if v == "" {
		return x
	}
	x.e = sym.Canonical(x.e, v)
	return x
}

// General rewrites the value as a single expanded fraction.
func (x Expr) General() Expr {
	v := x.domain.Variable()
	if v == "" {
		return x
	}
	x.e = sym.General(x.e, v)
	return x
}

// Partfrac rewrites the value as a sum of partial fractions in the
// domain variable.
func (x Expr) Partfrac() (Expr, error) {
	v := x.domain.Variable()
	if v == "" {
		return x, nil
	}
	e, err := sym.Partfrac(x.e, v)
	if err != nil {
		return Expr{}, err
	}
	x.e = e
	return x, nil
}

// Mixedfrac rewrites the value as a polynomial plus a proper fraction.
func (x Expr) Mixedfrac() (Expr, error) {
	v := x.domain.Variable()
	if v == "" {
		return x, nil
	}
	e, err := sym.Mixedfrac(x.e, v)
	if err != nil {
		return Expr{}, err
	}
	x.e = e
	return x, nil
}

// Zeros returns the roots of the numerator in the domain variable.
func (x Expr) Zeros() ([]sym.Expr, error) {
	_, zeros, _, err := x.zpk()
	return zeros, err
}

// Poles returns the roots of the denominator in the domain variable.
func (x Expr) Poles() ([]sym.Expr, error) {
	_, _, poles, err := x.zpk()
	return poles, err
}

// ZPK returns the gain, zeros and poles of the value.
func (x Expr) ZPK() (sym.Expr, []sym.Expr, []sym.Expr, error) {
	return x.zpk()
}

func (x Expr) zpk() (sym.Expr, []sym.Expr, []sym.Expr, error) {
	v := x.domain.Variable()
	if v == "" {
		return nil, nil, nil, &TransformError{From: x.domain, To: x.domain,
			Detail: "no domain variable for pole/zero analysis"}
	}
	return sym.ZPK(x.e, v)
}

// ============================================================
// Laplace-domain helpers
// ============================================================

// Differentiate maps to d/dt: multiplication by s in the Laplace domain,
// symbolic differentiation in the time domain.
func (x Expr) Differentiate() (Expr, error) {
	switch x.domain {
	case LaplaceDomain:
		x.e = sym.MulOf(sym.S("s"), x.e).Simplify()
		return x, nil
	case TimeDomain:
		x.e = sym.Diff(x.e, "t")
		return x, nil
	}
	return Expr{}, &TransformError{From: x.domain, To: x.domain,
		Detail: "differentiation needs the time or laplace domain"}
}

// Integrate maps to integration from zero: division by s in the Laplace
// domain.
func (x Expr) Integrate() (Expr, error) {
	if x.domain != LaplaceDomain {
		return Expr{}, &TransformError{From: x.domain, To: x.domain,
			Detail: "integration needs the laplace domain"}
	}
	x.e = sym.DivOf(x.e, sym.S("s")).Simplify()
	return x, nil
}

// Delay shifts the signal by tau: multiplication by exp(-s tau) in the
// Laplace domain, argument substitution in the time domain.
func (x Expr) Delay(tau sym.Expr) (Expr, error) {
	switch x.domain {
	case LaplaceDomain:
		x.e = sym.MulOf(x.e,
			sym.Exp(sym.MulOf(sym.N(-1), sym.S("s"), tau))).Simplify()
		return x, nil
	case TimeDomain:
		x.e = sym.Subst(x.e, "t", sym.SubOf(sym.S("t"), tau))
		return x, nil
	}
	return Expr{}, &TransformError{From: x.domain, To: x.domain,
		Detail: "delay needs the time or laplace domain"}
}

// laplaceRatio extracts numeric numerator and denominator coefficients
// of the value as a rational function of s.
func (x Expr) laplaceRatio() (num, den []*big.Rat, err error) {
	if x.domain != LaplaceDomain {
		return nil, nil, &TransformError{From: x.domain, To: LaplaceDomain,
			Detail: "value theorems need the laplace domain"}
	}
	nExpr, dExpr := sym.NumerDenom(x.e)
	num, err = sym.RatCoeffs(sym.Expand(nExpr), "s")
	if err != nil {
		return nil, nil, err
	}
	den, err = sym.RatCoeffs(sym.Expand(dExpr), "s")
	if err != nil {
		return nil, nil, err
	}
	return num, den, nil
}

// InitialValue applies the initial value theorem: lim s->inf of s X(s).
func (x Expr) InitialValue() (sym.Expr, error) {
	num, den, err := x.laplaceRatio()
	if err != nil {
		return nil, err
	}
	if len(num) == 1 && num[0].Sign() == 0 {
		return sym.N(0), nil
	}
	sNumDeg := len(num) // deg(s num) = len(num)-1+1
	denDeg := len(den) - 1
	switch {
	case sNumDeg < denDeg:
		return sym.N(0), nil
	case sNumDeg == denDeg:
		return sym.NRat(new(big.Rat).Quo(num[len(num)-1], den[len(den)-1])), nil
	}
	return nil, &EvaluationError{Detail: "initial value is unbounded"}
}

// FinalValue applies the final value theorem: lim s->0 of s X(s).
func (x Expr) FinalValue() (sym.Expr, error) {
	num, den, err := x.laplaceRatio()
	if err != nil {
		return nil, err
	}
	if len(num) == 1 && num[0].Sign() == 0 {
		return sym.N(0), nil
	}
	// Cancel common roots at s = 0 first.
	for num[0].Sign() == 0 && den[0].Sign() == 0 {
		num = num[1:]
		den = den[1:]
	}
	zeros := 0
	for zeros < len(den)-1 && den[zeros].Sign() == 0 {
		zeros++
	}
	switch zeros {
	case 0:
		return sym.N(0), nil
	case 1:
		return sym.NRat(new(big.Rat).Quo(num[0], den[1])), nil
	}
	return nil, &EvaluationError{Detail: "final value is unbounded"}
}

// Parallel combines two like quantities as a b / (a + b).
func (x Expr) Parallel(y Expr) (Expr, error) {
	if x.domain != y.domain || x.role != y.role {
		return Expr{}, &IncompatibilityError{Op: "parallel", Left: x, Right: y,
			Reason: "operands must share domain and role"}
	}
	x.e = sym.DivOf(sym.MulOf(x.e, y.e), sym.AddOf(x.e, y.e)).Simplify()
	x.assume = mergeAdd(x.assume, y.assume)
	return x, nil
}
