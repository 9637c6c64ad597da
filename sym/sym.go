// Package sym provides a deterministic symbolic algebra kernel used as the
// manipulation oracle for circuit-quantity expressions.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Deterministic simplification and stable output
//   - First-class imaginary unit for phasor and spectrum work
//   - Signal primitives: Heaviside step, Dirac delta, unit impulse
package sym

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an immutable symbolic expression node.
type Expr interface {
	Simplify() Expr
	String() string
	Subst(name string, value Expr) Expr
	Diff(name string) Expr
	Eval() (*Num, bool)
	EvalComplex(bindings map[string]complex128) (complex128, bool)
	Equal(other Expr) bool
	kind() string
}

// ============================================================
// Num — exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("sym: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }
func NRat(r *big.Rat) *Num  { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr          { return n }
func (n *Num) Subst(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr        { return N(0) }
func (n *Num) Eval() (*Num, bool)      { return n, true }
func (n *Num) EvalComplex(map[string]complex128) (complex128, bool) {
	return complex(n.Float64(), 0), true
}
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) kind() string          { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Int64() int64          { return n.val.Num().Int64() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }

var (
	ratOne    = new(big.Rat).SetInt64(1)
	ratNegOne = new(big.Rat).SetInt64(-1)
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("sym: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }
func numCmp(a, b *Num) int  { return a.val.Cmp(b.val) }

// ============================================================
// Sym — symbolic variable
// ============================================================

// Pi is the reserved symbol name recognised by numeric evaluation.
const PiName = "pi"

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

// Pi returns the symbolic constant pi.
func Pi() Expr { return S(PiName) }

func (s *Sym) Simplify() Expr    { return s }
func (s *Sym) String() string    { return s.name }
func (s *Sym) Eval() (*Num, bool) { return nil, false }
func (s *Sym) EvalComplex(bindings map[string]complex128) (complex128, bool) {
	if s.name == PiName {
		return complex(math.Pi, 0), true
	}
	if v, ok := bindings[s.name]; ok {
		return v, true
	}
	return 0, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) kind() string          { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Subst(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}
func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Imag — the imaginary unit j
// ============================================================

type Imag struct{}

// J returns the imaginary unit.
func J() Expr { return &Imag{} }

func (i *Imag) Simplify() Expr          { return i }
func (i *Imag) String() string          { return "j" }
func (i *Imag) Subst(string, Expr) Expr { return i }
func (i *Imag) Diff(string) Expr        { return N(0) }
func (i *Imag) Eval() (*Num, bool)      { return nil, false }
func (i *Imag) EvalComplex(map[string]complex128) (complex128, bool) {
	return complex(0, 1), true
}
func (i *Imag) Equal(other Expr) bool { _, ok := other.(*Imag); return ok }
func (i *Imag) kind() string          { return "imag" }

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// SubOf returns a - b.
func SubOf(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Neg returns -a.
func Neg(a Expr) Expr { return MulOf(N(-1), a) }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	// Collect like terms by their non-numeric part.
	numAccum := N(0)
	type bucket struct {
		coeff *Num
		rest  Expr
	}
	order := []string{}
	buckets := map[string]*bucket{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := SplitCoeff(t)
		key := rest.String()
		if b, seen := buckets[key]; seen {
			b.coeff = numAdd(b.coeff, coeff)
		} else {
			order = append(order, key)
			buckets[key] = &bucket{coeff: coeff, rest: rest}
		}
	}
	result := []Expr{}
	for _, key := range order {
		b := buckets[key]
		if b.coeff.IsZero() {
			continue
		}
		if b.coeff.IsOne() {
			result = append(result, b.rest)
		} else {
			result = append(result, mulNoSimplifyCoeff(b.coeff, b.rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func mulNoSimplifyCoeff(c *Num, rest Expr) Expr {
	if m, ok := rest.(*Mul); ok {
		return &Mul{factors: append([]Expr{c}, m.factors...)}
	}
	return &Mul{factors: []Expr{c, rest}}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Subst(name string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Subst(name, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(name string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(name)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) EvalComplex(bindings map[string]complex128) (complex128, bool) {
	acc := complex(0, 0)
	for _, t := range a.terms {
		v, ok := t.EvalComplex(bindings)
		if !ok {
			return 0, false
		}
		acc += v
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) kind() string { return "add" }
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// DivOf returns a / b.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	jcount := 0
	others := []Expr{}
	for _, f := range flat {
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Imag:
			jcount++
		default:
			others = append(others, f)
		}
	}
	// Fold powers of j: j^2 = -1.
	switch jcount % 4 {
	case 1:
		others = append(others, J())
	case 2:
		coeff = numNeg(coeff)
	case 3:
		coeff = numNeg(coeff)
		others = append(others, J())
	}
	if coeff.IsZero() {
		return N(0)
	}
	// Merge repeated bases into powers.
	others = mergeBases(others)
	if len(others) == 0 {
		return coeff
	}

	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}
	others = sorted

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// mergeBases combines x * x into x^2 and x^a * x^b into x^(a+b) when the
// exponents are numeric.
func mergeBases(factors []Expr) []Expr {
	type entry struct {
		base Expr
		exp  *Num
		raw  []Expr // factors with non-numeric exponents pass through
	}
	order := []string{}
	entries := map[string]*entry{}
	var passthrough []Expr
	for _, f := range factors {
		base := f
		exp := N(1)
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 {
				base = p.base
				exp = en
			} else {
				passthrough = append(passthrough, f)
				continue
			}
		}
		key := base.String()
		if e, seen := entries[key]; seen {
			e.exp = numAdd(e.exp, exp)
		} else {
			order = append(order, key)
			entries[key] = &entry{base: base, exp: exp}
		}
	}
	out := []Expr{}
	for _, key := range order {
		e := entries[key]
		if e.exp.IsZero() {
			continue
		}
		if e.exp.IsOne() {
			out = append(out, e.base)
			continue
		}
		out = append(out, PowOf(e.base, e.exp))
	}
	return append(out, passthrough...)
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Subst(name string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Subst(name, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(name)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) EvalComplex(bindings map[string]complex128) (complex128, bool) {
	acc := complex(1, 0)
	for _, f := range m.factors {
		v, ok := f.EvalComplex(bindings)
		if !ok {
			return 0, false
		}
		acc *= v
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) kind() string    { return "mul" }
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// SqrtOf returns base^(1/2).
func SqrtOf(base Expr) Expr { return PowOf(base, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 && (en.IsZero() || en.IsNegative()) {
			return &Pow{base: base, exp: exp}
		}
		return N(0)
	}
	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if _, ok := base.(*Imag); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			switch ((en.Int64() % 4) + 4) % 4 {
			case 0:
				return N(1)
			case 1:
				return J()
			case 2:
				return N(-1)
			case 3:
				return MulOf(N(-1), J())
			}
		}
	}
	if bn, ok := base.(*Num); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.Int64()
			if e >= 0 && e <= 64 {
				result := N(1)
				for i := int64(0); i < e; i++ {
					result = numMul(result, bn)
				}
				return result
			}
			if e < 0 && e >= -64 {
				result := N(1)
				for i := int64(0); i < -e; i++ {
					result = numMul(result, bn)
				}
				return numRecip(result)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	// Distribute integer powers over products.
	if m, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			raised := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				raised[i] = PowOf(f, en)
			}
			return MulOf(raised...)
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	expStr := p.exp.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	}
	if n, ok := p.exp.(*Num); ok && !n.IsInteger() || strings.ContainsAny(expStr, " +*") {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Subst(name string, value Expr) Expr {
	return PowOf(p.base.Subst(name, value), p.exp.Subst(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		return MulOf(PowOf(p.base, p.exp), Log(p.base), dv)
	}
	logTerm := MulOf(dv, Log(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if e.IsInteger() {
		if v := PowOf(b, e); v != nil {
			if n, ok := v.(*Num); ok {
				return n, true
			}
		}
		return nil, false
	}
	pf := math.Pow(b.Float64(), e.Float64())
	if math.IsNaN(pf) || math.IsInf(pf, 0) {
		return nil, false
	}
	return NFloat(pf), true
}

func (p *Pow) EvalComplex(bindings map[string]complex128) (complex128, bool) {
	b, ok1 := p.base.EvalComplex(bindings)
	e, ok2 := p.exp.EvalComplex(bindings)
	if !ok1 || !ok2 {
		return 0, false
	}
	// Branch-cut safe square root: negative real maps to the positive
	// imaginary axis.
	if e == 0.5 && imag(b) == 0 && real(b) < 0 {
		return complex(0, math.Sqrt(-real(b))), true
	}
	// Small integer exponents multiply out exactly.
	if imag(e) == 0 && real(e) == math.Trunc(real(e)) && math.Abs(real(e)) <= 64 {
		n := int(real(e))
		if n == 0 {
			return 1, true
		}
		acc := complex(1, 0)
		for i := 0; i < n; i++ {
			acc *= b
		}
		for i := 0; i > n; i-- {
			if b == 0 {
				return 0, false
			}
			acc /= b
		}
		return acc, true
	}
	v := cmplx.Pow(b, e)
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return 0, false
	}
	return v, true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) kind() string  { return "pow" }
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	args []Expr
}

func funcOf(name string, args ...Expr) *Func { return &Func{name: name, args: args} }

func Sin(arg Expr) Expr          { return funcOf("sin", arg).Simplify() }
func Cos(arg Expr) Expr          { return funcOf("cos", arg).Simplify() }
func Tan(arg Expr) Expr          { return funcOf("tan", arg).Simplify() }
func Exp(arg Expr) Expr          { return funcOf("exp", arg).Simplify() }
func Log(arg Expr) Expr          { return funcOf("ln", arg).Simplify() }
func Log10(arg Expr) Expr        { return DivOf(Log(arg), Log(N(10))) }
func Abs(arg Expr) Expr          { return funcOf("abs", arg).Simplify() }
func Sign(arg Expr) Expr         { return funcOf("sign", arg).Simplify() }
func Atan2(y, x Expr) Expr       { return funcOf("atan2", y, x).Simplify() }
func Conj(arg Expr) Expr         { return funcOf("conj", arg).Simplify() }
func Heaviside(arg Expr) Expr    { return funcOf("u", arg).Simplify() }
func DiracDelta(arg Expr) Expr   { return funcOf("delta", arg).Simplify() }
func UnitImpulse(arg Expr) Expr  { return funcOf("uimp", arg).Simplify() }

func (f *Func) Simplify() Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Simplify()
	}
	arg := args[0]
	if n, ok := arg.(*Num); ok && len(args) == 1 {
		if out, done := evalFuncNum(f.name, n); done {
			return out
		}
	}
	switch f.name {
	case "sin":
		if isZero(arg) {
			return N(0)
		}
		if c, rest := SplitCoeff(arg); c.IsNegative() {
			return Neg(funcOf("sin", mulCoeff(numNeg(c), rest)).Simplify())
		}
	case "cos":
		if isZero(arg) {
			return N(1)
		}
		if c, rest := SplitCoeff(arg); c.IsNegative() {
			return funcOf("cos", mulCoeff(numNeg(c), rest)).Simplify()
		}
	case "exp":
		if isZero(arg) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.args[0]
		}
	case "ln":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.args[0]
		}
	case "abs":
		if c, rest := SplitCoeff(arg); c.IsNegative() {
			return funcOf("abs", mulCoeff(numNeg(c), rest)).Simplify()
		}
	case "conj":
		if re, im, err := RealImag(arg); err == nil {
			return AddOf(re, MulOf(N(-1), J(), im))
		}
	case "atan2":
		if len(args) == 2 {
			y, okY := args[0].(*Num)
			x, okX := args[1].(*Num)
			if okY && okX && !(y.IsZero() && x.IsZero()) {
				return NFloat(math.Atan2(y.Float64(), x.Float64()))
			}
		}
	}
	return &Func{name: f.name, args: args}
}

func mulCoeff(c *Num, rest Expr) Expr {
	if c.IsOne() {
		return rest
	}
	return MulOf(c, rest)
}

func evalFuncNum(name string, n *Num) (Expr, bool) {
	v := n.Float64()
	switch name {
	case "sin":
		if n.IsZero() {
			return N(0), true
		}
		return NFloat(math.Sin(v)), true
	case "cos":
		if n.IsZero() {
			return N(1), true
		}
		return NFloat(math.Cos(v)), true
	case "tan":
		return NFloat(math.Tan(v)), true
	case "exp":
		if n.IsZero() {
			return N(1), true
		}
		return NFloat(math.Exp(v)), true
	case "ln":
		if v > 0 {
			return NFloat(math.Log(v)), true
		}
	case "abs":
		if n.IsNegative() {
			return numNeg(n), true
		}
		return n, true
	case "sign":
		switch {
		case n.IsPositive():
			return N(1), true
		case n.IsNegative():
			return N(-1), true
		default:
			return N(0), true
		}
	case "u":
		if n.IsNegative() {
			return N(0), true
		}
		return N(1), true
	case "delta":
		if !n.IsZero() {
			return N(0), true
		}
	case "uimp":
		if n.IsZero() {
			return N(1), true
		}
		return N(0), true
	case "conj":
		return n, true
	}
	return nil, false
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

func (f *Func) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) Subst(name string, value Expr) Expr {
	newArgs := make([]Expr, len(f.args))
	for i, a := range f.args {
		newArgs[i] = a.Subst(name, value)
	}
	return funcOf(f.name, newArgs...).Simplify()
}

func (f *Func) Diff(name string) Expr {
	du := f.args[0].Diff(name)
	var outer Expr
	switch f.name {
	case "sin":
		outer = Cos(f.args[0])
	case "cos":
		outer = Neg(Sin(f.args[0]))
	case "tan":
		outer = AddOf(N(1), PowOf(Tan(f.args[0]), N(2)))
	case "exp":
		outer = Exp(f.args[0])
	case "ln":
		outer = PowOf(f.args[0], N(-1))
	case "u":
		outer = DiracDelta(f.args[0])
	default:
		return MulOf(funcOf("D["+f.name+"]", f.args...), du)
	}
	return MulOf(outer, du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	if len(f.args) == 1 {
		n, ok := f.args[0].Eval()
		if !ok {
			return nil, false
		}
		if out, done := evalFuncNum(f.name, n); done {
			if on, ok2 := out.(*Num); ok2 {
				return on, true
			}
		}
	}
	return nil, false
}

func (f *Func) EvalComplex(bindings map[string]complex128) (complex128, bool) {
	vals := make([]complex128, len(f.args))
	for i, a := range f.args {
		v, ok := a.EvalComplex(bindings)
		if !ok {
			return 0, false
		}
		vals[i] = v
	}
	v := vals[0]
	switch f.name {
	case "sin":
		return cmplx.Sin(v), true
	case "cos":
		return cmplx.Cos(v), true
	case "tan":
		return cmplx.Tan(v), true
	case "exp":
		// Clamp to avoid overflow to +Inf for large real exponents.
		if real(v) > 500 {
			v = complex(500, imag(v))
		}
		return cmplx.Exp(v), true
	case "ln":
		return cmplx.Log(v), true
	case "abs":
		return complex(cmplx.Abs(v), 0), true
	case "sign":
		switch {
		case real(v) > 0:
			return 1, true
		case real(v) < 0:
			return -1, true
		}
		return 0, true
	case "u":
		// Heaviside unit step.
		if real(v) >= 0 {
			return 1, true
		}
		return 0, true
	case "delta":
		// Dirac delta: infinite at zero, zero elsewhere.
		if v == 0 {
			return complex(math.Inf(1), 0), true
		}
		return 0, true
	case "uimp":
		if v == 0 {
			return 1, true
		}
		return 0, true
	case "conj":
		return cmplx.Conj(v), true
	case "atan2":
		if len(vals) == 2 {
			return complex(math.Atan2(real(vals[0]), real(vals[1])), 0), true
		}
	}
	return 0, false
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	if !ok || f.name != o.name || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (f *Func) kind() string   { return "func" }
func (f *Func) FuncName() string { return f.name }
func (f *Func) Args() []Expr   { return f.args }

// ============================================================
// Coefficient extraction
// ============================================================

// SplitCoeff splits e into a numeric coefficient and the remaining factor.
func SplitCoeff(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	if n, ok := e.(*Num); ok {
		return n, N(1)
	}
	return N(1), e
}

// SplitConst splits a product into the factor free of name and the factor
// depending on name.
func SplitConst(e Expr, name string) (Expr, Expr) {
	m, ok := e.(*Mul)
	if !ok {
		if dependsOn(e, name) {
			return N(1), e
		}
		return e, N(1)
	}
	var constF, varF []Expr
	for _, f := range m.factors {
		if dependsOn(f, name) {
			varF = append(varF, f)
		} else {
			constF = append(constF, f)
		}
	}
	return mulOrOne(constF), mulOrOne(varF)
}

func mulOrOne(factors []Expr) Expr {
	switch len(factors) {
	case 0:
		return N(1)
	case 1:
		return factors[0]
	}
	return &Mul{factors: factors}
}

func dependsOn(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

// ============================================================
// Free symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		if v.name != PiName {
			out[v.name] = struct{}{}
		}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		for _, a := range v.args {
			collectSymbols(a, out)
		}
	}
}

// HasFunc reports whether e contains a function application named name.
func HasFunc(e Expr, name string) bool {
	switch v := e.(type) {
	case *Func:
		if v.name == name {
			return true
		}
		for _, a := range v.args {
			if HasFunc(a, name) {
				return true
			}
		}
	case *Add:
		for _, t := range v.terms {
			if HasFunc(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if HasFunc(f, name) {
				return true
			}
		}
	case *Pow:
		return HasFunc(v.base, name) || HasFunc(v.exp, name)
	}
	return false
}

// ============================================================
// Expansion
// ============================================================

func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			if a, ok := f.(*Add); ok {
				rest := make([]Expr, 0, len(expanded)-1)
				for j, ef := range expanded {
					if j != i {
						rest = append(rest, ef)
					}
				}
				terms := make([]Expr, len(a.terms))
				for k, t := range a.terms {
					terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
				}
				return expandExpr(AddOf(terms...))
			}
		}
		return MulOf(expanded...)
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			exp := n.Int64()
			base := expandExpr(v.base)
			// Only a summed base distributes; term-by-term products
			// cannot refold into a power of the sum.
			if a, ok2 := base.(*Add); ok2 && exp >= 2 && exp <= 16 {
				terms := append([]Expr(nil), a.terms...)
				for i := int64(1); i < exp; i++ {
					next := make([]Expr, 0, len(terms)*len(a.terms))
					for _, t := range terms {
						for _, u := range a.terms {
							next = append(next, MulOf(t, u))
						}
					}
					terms = next
				}
				return AddOf(terms...)
			}
			return PowOf(base, v.exp)
		}
		return PowOf(expandExpr(v.base), expandExpr(v.exp))
	}
	return e
}

// ============================================================
// Polynomial utilities
// ============================================================

func Degree(e Expr, name string) int {
	e = e.Simplify()
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == name {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.Int64())
			}
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, name); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		total := 0
		for _, f := range v.factors {
			total += Degree(f, name)
		}
		return total
	}
	return 0
}

// PolyCoeffs returns the coefficients of e viewed as a polynomial in name,
// keyed by degree. The second return value is false if e is not polynomial
// in name.
func PolyCoeffs(e Expr, name string) (map[int]Expr, bool) {
	out := map[int]Expr{}
	if !extractCoeffs(Expand(e), name, out) {
		return nil, false
	}
	return out, true
}

func extractCoeffs(e Expr, name string, out map[int]Expr) bool {
	switch v := e.(type) {
	case *Num, *Imag:
		addCoeff(out, 0, e)
	case *Sym:
		if v.name == name {
			addCoeff(out, 1, N(1))
		} else {
			addCoeff(out, 0, v)
		}
	case *Pow:
		if s, ok := v.base.(*Sym); ok && s.name == name {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() && n.IsPositive() {
				addCoeff(out, int(n.Int64()), N(1))
				return true
			}
			return false
		}
		if dependsOn(e, name) {
			return false
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if !dependsOn(f, name) {
				coeffFactors = append(coeffFactors, f)
				continue
			}
			switch fv := f.(type) {
			case *Sym:
				deg++
			case *Pow:
				s, ok := fv.base.(*Sym)
				n, ok2 := fv.exp.(*Num)
				if !ok || s.name != name || !ok2 || !n.IsInteger() || !n.IsPositive() {
					return false
				}
				deg += int(n.Int64())
			default:
				return false
			}
		}
		addCoeff(out, deg, mulOrOne(coeffFactors))
	case *Add:
		for _, t := range v.terms {
			if !extractCoeffs(t, name, out) {
				return false
			}
		}
	case *Func:
		if dependsOn(e, name) {
			return false
		}
		addCoeff(out, 0, e)
	}
	return true
}

func addCoeff(out map[int]Expr, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val.Simplify()
	}
}

// Collect groups terms by powers of name, highest degree first.
func Collect(e Expr, name string) Expr {
	coeffs, ok := PolyCoeffs(e, name)
	if !ok {
		return e.Simplify()
	}
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if cn, ok := c.(*Num); ok && cn.IsZero() {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(name)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(name), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// ============================================================
// Real / imaginary decomposition
// ============================================================

// RealImag splits e into real and imaginary parts, treating every free
// symbol as real-valued. It fails for constructs whose parts cannot be
// separated structurally.
func RealImag(e Expr) (re, im Expr, err error) {
	switch v := e.(type) {
	case *Num:
		return v, N(0), nil
	case *Sym:
		return v, N(0), nil
	case *Imag:
		return N(0), N(1), nil
	case *Add:
		res := Expr(N(0))
		ims := Expr(N(0))
		for _, t := range v.terms {
			tr, ti, err := RealImag(t)
			if err != nil {
				return nil, nil, err
			}
			res = AddOf(res, tr)
			ims = AddOf(ims, ti)
		}
		return res, ims, nil
	case *Mul:
		ar, ai := Expr(N(1)), Expr(N(0))
		for _, f := range v.factors {
			fr, fi, err := RealImag(f)
			if err != nil {
				return nil, nil, err
			}
			// (ar + j ai)(fr + j fi)
			newRe := SubOf(MulOf(ar, fr), MulOf(ai, fi))
			newIm := AddOf(MulOf(ar, fi), MulOf(ai, fr))
			ar, ai = newRe, newIm
		}
		return ar, ai, nil
	case *Pow:
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInteger() {
			_, bi, err := RealImag(v.base)
			if err != nil {
				return nil, nil, err
			}
			if isZero(bi.Simplify()) {
				return e, N(0), nil
			}
			return nil, nil, fmt.Errorf("sym: cannot separate %s into real and imaginary parts", e)
		}
		n := en.Int64()
		if n >= 0 {
			re, im := Expr(N(1)), Expr(N(0))
			for i := int64(0); i < n; i++ {
				br, bi, err := RealImag(v.base)
				if err != nil {
					return nil, nil, err
				}
				newRe := SubOf(MulOf(re, br), MulOf(im, bi))
				newIm := AddOf(MulOf(re, bi), MulOf(im, br))
				re, im = newRe, newIm
			}
			return re, im, nil
		}
		// x^-n = conj^n / |x|^2n applied one power at a time.
		br, bi, err := RealImag(PowOf(v.base, N(-n)))
		if err != nil {
			return nil, nil, err
		}
		mag2 := AddOf(PowOf(br, N(2)), PowOf(bi, N(2)))
		return DivOf(br, mag2), DivOf(Neg(bi), mag2), nil
	case *Func:
		switch v.name {
		case "conj":
			r, i, err := RealImag(v.args[0])
			if err != nil {
				return nil, nil, err
			}
			return r, Neg(i), nil
		}
		for _, a := range v.args {
			ar, ai, err := RealImag(a)
			if err != nil {
				return nil, nil, err
			}
			_ = ar
			if !isZero(ai.Simplify()) {
				return nil, nil, fmt.Errorf("sym: cannot separate %s into real and imaginary parts", e)
			}
		}
		return e, N(0), nil
	}
	return nil, nil, fmt.Errorf("sym: cannot separate %s into real and imaginary parts", e)
}

// Conjugate returns the complex conjugate of e, assuming free symbols are
// real. If structural separation fails it falls back to a conj() wrapper.
func Conjugate(e Expr) Expr {
	re, im, err := RealImag(e)
	if err != nil {
		return funcOf("conj", e)
	}
	return AddOf(re, MulOf(N(-1), J(), im)).Simplify()
}

// ============================================================
// Top-level conveniences
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }

func Subst(e Expr, name string, value Expr) Expr {
	return e.Subst(name, value).Simplify()
}

func Diff(e Expr, name string) Expr {
	return e.Diff(name).Simplify()
}

// Terms returns the additive terms of e.
func Terms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}
