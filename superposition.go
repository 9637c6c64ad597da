package netsym

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/njchilds90/netsym/sym"
)

// Superposition decomposes a signal into independently analysable
// components: a dc level, one phasor per ac carrier frequency, a
// Laplace-domain residual under the "s" key, and a noise spectral
// density under the "noise" key. Components combine linearly except
// noise, which adds in quadrature.
type Superposition struct {
	role  Role
	order []string
	comps map[string]Expr
	// causalResidual records that the s component came from step-gated
	// time signals, so the inverse transform restores the gating.
	causalResidual bool
}

// NewSuperposition returns an empty superposition of the given quantity.
func NewSuperposition(role Role) *Superposition {
	return &Superposition{role: role, comps: map[string]Expr{}}
}

func (sp *Superposition) Role() Role { return sp.role }

// Keys lists the component keys: "dc" first, carrier frequencies in
// sorted order, then "s" and "noise".
func (sp *Superposition) Keys() []string {
	out := make([]string, len(sp.order))
	copy(out, sp.order)
	sort.Slice(out, func(i, j int) bool { return keyLess(out[i], out[j]) })
	return out
}

func keyClass(k string) int {
	switch k {
	case "dc":
		return 0
	case "s":
		return 2
	case "noise":
		return 3
	}
	return 1
}

// keyLess orders "dc" first, then carriers by numeric frequency with
// symbolic carriers after them, then "s" and "noise".
func keyLess(a, b string) bool {
	ca, cb := keyClass(a), keyClass(b)
	if ca != cb {
		return ca < cb
	}
	if ca != 1 {
		return false
	}
	ra, okA := new(big.Rat).SetString(a)
	rb, okB := new(big.Rat).SetString(b)
	switch {
	case okA && okB:
		return ra.Cmp(rb) < 0
	case okA:
		return true
	case okB:
		return false
	}
	return a < b
}

// Component returns the component stored under key.
func (sp *Superposition) Component(key string) (Expr, bool) {
	x, ok := sp.comps[key]
	return x, ok
}

// IsDC reports whether the superposition is a pure dc level.
func (sp *Superposition) IsDC() bool {
	_, ok := sp.comps["dc"]
	return ok && len(sp.comps) == 1
}

// IsAC reports whether the superposition contains only phasors.
func (sp *Superposition) IsAC() bool {
	if len(sp.comps) == 0 {
		return false
	}
	for k := range sp.comps {
		if k == "dc" || k == "s" || k == "noise" {
			return false
		}
	}
	return true
}

func (sp *Superposition) String() string {
	if len(sp.comps) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(sp.comps))
	for _, k := range sp.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, sp.comps[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (sp *Superposition) setRole(r Role) error {
	switch {
	case r == Undefined, sp.role == r:
		return nil
	case sp.role == Undefined:
		sp.role = r
		return nil
	}
	return fmt.Errorf("netsym: cannot mix %s and %s in one superposition", sp.role, r)
}

func (sp *Superposition) put(key string, x Expr) {
	if _, seen := sp.comps[key]; !seen {
		sp.order = append(sp.order, key)
	}
	sp.comps[key] = x
	if x.IsZero() {
		delete(sp.comps, key)
		for i, k := range sp.order {
			if k == key {
				sp.order = append(sp.order[:i], sp.order[i+1:]...)
				break
			}
		}
	}
}

// Add merges a value into the superposition. Accepted values: int,
// float64, sym.Expr (treated as dc), Expr in the constant, time, phasor,
// laplace or noise domains, and other superpositions.
func (sp *Superposition) Add(v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case int:
		return sp.Add(MustNew(ConstantDomain, sp.role, sym.N(int64(val))))
	case int64:
		return sp.Add(MustNew(ConstantDomain, sp.role, sym.N(val)))
	case float64:
		return sp.Add(MustNew(ConstantDomain, sp.role, sym.NFloat(val)))
	case sym.Expr:
		x, err := New(ConstantDomain, sp.role, val)
		if err != nil {
			return err
		}
		return sp.Add(x)
	case Expr:
		return sp.addExpr(val)
	case *Superposition:
		return sp.addSuper(val)
	}
	return &UnsupportedValueError{Value: v}
}

func (sp *Superposition) addExpr(x Expr) error {
	if x.IsZero() {
		return nil
	}
	if err := sp.setRole(x.role); err != nil {
		return err
	}
	switch x.domain {
	case ConstantDomain:
		return sp.addDC(x)
	case TimeDomain:
		return sp.decompose(x)
	case PhasorDomain:
		return sp.addTone(x)
	case LaplaceDomain:
		return sp.addResidual(x)
	case NoiseDomain:
		return sp.addNoise(x)
	}
	return fmt.Errorf("netsym: cannot superpose a %s-domain expression", x.domain)
}

func (sp *Superposition) addDC(x Expr) error {
	x.domain = ConstantDomain
	x.role = sp.role
	x.assume = Assumptions{DC: true}
	if old, ok := sp.comps["dc"]; ok {
		x.e = sym.AddOf(old.e, x.e)
	}
	sp.put("dc", x)
	return nil
}

func (sp *Superposition) addTone(x Expr) error {
	key := x.omega.String()
	x.role = sp.role
	if old, ok := sp.comps[key]; ok {
		x.e = sym.AddOf(old.e, x.e)
	}
	sp.put(key, x)
	return nil
}

func (sp *Superposition) addResidual(x Expr) error {
	x.role = sp.role
	causal := x.assume.Causal
	if old, ok := sp.comps["s"]; ok {
		x.e = sym.AddOf(old.e, x.e)
		causal = causal && sp.causalResidual
	}
	x.assume = Assumptions{}
	sp.put("s", x)
	sp.causalResidual = causal
	return nil
}

// addNoise combines amplitude spectral densities in quadrature.
func (sp *Superposition) addNoise(x Expr) error {
	x.role = sp.role
	if old, ok := sp.comps["noise"]; ok {
		x.e = sym.SqrtOf(sym.AddOf(
			sym.PowOf(old.e, sym.N(2)),
			sym.PowOf(x.e, sym.N(2)))).Simplify()
	}
	sp.put("noise", x)
	return nil
}

// decompose splits a time-domain signal into dc, per-frequency phasor
// and Laplace residual components.
func (sp *Superposition) decompose(x Expr) error {
	terms := sym.Terms(sym.Expand(sym.Simplify(x.e)))
	var residual []sym.Expr
	residualCausal := true
	for _, term := range terms {
		if !dependsOnTime(term) {
			if err := sp.addDC(Expr{e: term, domain: ConstantDomain, role: sp.role}); err != nil {
				return err
			}
			continue
		}
		if amp, omega, ok := phasorOfTerm(term); ok {
			tone, err := NewPhasor(sp.role, amp, omega)
			if err != nil {
				return err
			}
			if err := sp.addTone(tone); err != nil {
				return err
			}
			continue
		}
		residual = append(residual, term)
		if !sym.HasFunc(term, "u") && !sym.HasFunc(term, "delta") {
			residualCausal = false
		}
	}
	if len(residual) == 0 {
		return nil
	}
	ls, err := sym.Laplace(sym.AddOf(residual...), "t", "s")
	if err != nil {
		return fmt.Errorf("netsym: cannot decompose %s: %w", x.e, err)
	}
	res := Expr{e: ls, domain: LaplaceDomain, role: sp.role}
	res.assume.Causal = residualCausal || x.assume.Causal
	return sp.addResidual(res)
}

func dependsOnTime(e sym.Expr) bool {
	_, ok := sym.FreeSymbols(e)["t"]
	return ok
}

// ============================================================
// Reconstruction
// ============================================================

// Time reassembles the superposition as a time-domain expression. The
// noise component has no time-domain form and is excluded.
func (sp *Superposition) Time() (Expr, error) {
	total := MustNew(TimeDomain, sp.role, sym.N(0))
	for _, key := range sp.Keys() {
		if key == "noise" {
			continue
		}
		comp := sp.comps[key]
		if key == "s" {
			comp.assume.Causal = sp.causalResidual
		}
		ct, err := comp.Time()
		if err != nil {
			return Expr{}, err
		}
		total.e = sym.AddOf(total.e, ct.e)
	}
	total.e = total.e.Simplify()
	return total, nil
}

// Laplace reassembles the superposition as a single s-domain expression.
func (sp *Superposition) Laplace() (Expr, error) {
	total := MustNew(LaplaceDomain, sp.role, sym.N(0))
	for _, key := range sp.Keys() {
		if key == "noise" {
			continue
		}
		cl, err := sp.comps[key].Laplace()
		if err != nil {
			return Expr{}, err
		}
		total.e = sym.AddOf(total.e, cl.e)
	}
	total.e = total.e.Simplify()
	return total, nil
}

// Scale multiplies every component by a dimensionless constant. Noise
// scales by the magnitude.
func (sp *Superposition) Scale(k sym.Expr) (*Superposition, error) {
	out := NewSuperposition(sp.role)
	out.causalResidual = sp.causalResidual
	for _, key := range sp.Keys() {
		comp := sp.comps[key]
		factor := k
		if key == "noise" {
			factor = sym.Abs(k)
		}
		scaled, err := comp.Scale(factor)
		if err != nil {
			return nil, err
		}
		out.put(key, scaled)
	}
	return out, nil
}

// Neg negates every component except noise, which is sign-free.
func (sp *Superposition) Neg() *Superposition {
	out := NewSuperposition(sp.role)
	out.causalResidual = sp.causalResidual
	for _, key := range sp.Keys() {
		comp := sp.comps[key]
		if key != "noise" {
			comp = comp.Neg()
		}
		out.put(key, comp)
	}
	return out
}

// RMS returns the root-mean-square value of a dc + ac + noise
// superposition. The noise contribution is the one-sided power
// integral of its spectral density over omega.
func (sp *Superposition) RMS() (sym.Expr, error) {
	var sum sym.Expr = sym.N(0)
	for key, comp := range sp.comps {
		switch key {
		case "dc":
			sum = sym.AddOf(sum, sym.PowOf(comp.e, sym.N(2)))
		case "noise":
			density2 := sym.PowOf(comp.e, sym.N(2)).Simplify()
			p, err := sym.IntegrateHalfLine(density2, NoiseDomain.Variable())
			if err != nil {
				return nil, fmt.Errorf("netsym: noise rms: %w", err)
			}
			sum = sym.AddOf(sum, sym.DivOf(p, sym.MulOf(sym.N(2), sym.Pi())))
		case "s":
			return nil, fmt.Errorf("netsym: rms needs a dc + ac superposition, found %q", key)
		default:
			re, im, err := sym.RealImag(comp.e)
			if err != nil {
				return nil, err
			}
			mag2 := sym.AddOf(sym.PowOf(re, sym.N(2)), sym.PowOf(im, sym.N(2)))
			sum = sym.AddOf(sum, sym.DivOf(mag2, sym.N(2)))
		}
	}
	return sym.SqrtOf(sum).Simplify(), nil
}

// ============================================================
// Network responses
// ============================================================

// applyResponse multiplies each component by the frequency response h
// (an s-domain impedance, admittance or transfer function) evaluated at
// the component's own frequency.
func (sp *Superposition) applyResponse(h Expr) (*Superposition, error) {
	if h.domain != LaplaceDomain {
		return nil, &IncompatibilityError{Op: "apply", Left: h, Right: h,
			Reason: "frequency responses live in the laplace domain"}
	}
	newRole, ok := mulRoles[rolePair{sp.role, h.role}]
	if !ok {
		if sp.role == Undefined {
			newRole = h.role
		} else if h.role == Undefined {
			newRole = sp.role
		} else {
			return nil, fmt.Errorf("netsym: no product is defined for a %s and a %s", sp.role, h.role)
		}
	}
	out := NewSuperposition(newRole)
	out.causalResidual = sp.causalResidual
	for _, key := range sp.Keys() {
		comp := sp.comps[key]
		comp.role = newRole
		switch key {
		case "dc":
			// Response at s = 0, taken as a limit so shared factors
			// of s cancel before the substitution.
			resp, err := sym.ZeroLimit(h.e, "s")
			if err != nil {
				return nil, fmt.Errorf("netsym: dc response: %w", err)
			}
			comp.e = sym.MulOf(comp.e, resp).Simplify()
		case "s":
			comp.e = sym.MulOf(comp.e, h.e).Simplify()
		case "noise":
			// Spectral densities scale by the magnitude at s = j omega.
			resp := Expr{e: sym.Subst(h.e, "s", sym.MulOf(sym.J(), sym.S("omega"))), domain: NoiseDomain}
			comp.e = sym.MulOf(comp.e, resp.Magnitude().e).Simplify()
		default:
			// Phasor at s = j omega0.
			comp.e = sym.MulOf(comp.e,
				sym.Subst(h.e, "s", sym.MulOf(sym.J(), comp.omega))).Simplify()
		}
		out.put(key, comp)
	}
	return out, nil
}

// Apply multiplies every component by an s-domain response, promoting
// the role through the product table.
func (sp *Superposition) Apply(h Expr) (*Superposition, error) {
	return sp.applyResponse(h)
}

// MulImpedance converts a current superposition to voltage.
func (sp *Superposition) MulImpedance(z Expr) (*Superposition, error) {
	if z.role != Impedance {
		return nil, &IncompatibilityError{Op: "apply", Left: z, Right: z,
			Reason: "expected an impedance"}
	}
	return sp.applyResponse(z)
}

// MulAdmittance converts a voltage superposition to current.
func (sp *Superposition) MulAdmittance(y Expr) (*Superposition, error) {
	if y.role != Admittance {
		return nil, &IncompatibilityError{Op: "apply", Left: y, Right: y,
			Reason: "expected an admittance"}
	}
	return sp.applyResponse(y)
}

// DivImpedance divides by an impedance via the reciprocal admittance.
func (sp *Superposition) DivImpedance(z Expr) (*Superposition, error) {
	if z.role != Impedance {
		return nil, &IncompatibilityError{Op: "apply", Left: z, Right: z,
			Reason: "expected an impedance"}
	}
	y, err := z.Reciprocal()
	if err != nil {
		return nil, err
	}
	return sp.applyResponse(y)
}

// DivAdmittance divides by an admittance via the reciprocal impedance.
func (sp *Superposition) DivAdmittance(y Expr) (*Superposition, error) {
	if y.role != Admittance {
		return nil, &IncompatibilityError{Op: "apply", Left: y, Right: y,
			Reason: "expected an admittance"}
	}
	z, err := y.Reciprocal()
	if err != nil {
		return nil, err
	}
	return sp.applyResponse(z)
}

func (sp *Superposition) addSuper(other *Superposition) error {
	if err := sp.setRole(other.role); err != nil {
		return err
	}
	for _, key := range other.Keys() {
		comp := other.comps[key]
		var err error
		switch key {
		case "dc":
			err = sp.addDC(comp)
		case "s":
			comp.assume.Causal = other.causalResidual
			err = sp.addResidual(comp)
		case "noise":
			err = sp.addNoise(comp)
		default:
			err = sp.addTone(comp)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
