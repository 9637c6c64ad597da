package netsym

import "github.com/njchilds90/netsym/sym"

// Arithmetic on typed expressions runs in two stages: the domains are
// reconciled (constants adopt the other operand's domain, phasors must
// share a carrier, anything else must match exactly), then the roles are
// combined through explicit promotion tables. Pairings outside the
// tables fail with an IncompatibilityError rather than guessing.

// reconcileDomains returns both operands lifted to a common domain.
func reconcileDomains(op string, x, y Expr) (Expr, Expr, error) {
	switch {
	case x.domain == y.domain:
		if x.domain == PhasorDomain && !x.omega.Equal(y.omega) {
			return Expr{}, Expr{}, &IncompatibilityError{Op: op, Left: x, Right: y,
				Reason: "phasors have different carrier frequencies"}
		}
		return x, y, nil
	case x.domain == ConstantDomain:
		x.domain = y.domain
		x.omega = y.omega
		return x, y, nil
	case y.domain == ConstantDomain:
		y.domain = x.domain
		y.omega = x.omega
		return x, y, nil
	}
	return Expr{}, Expr{}, &IncompatibilityError{Op: op, Left: x, Right: y,
		Reason: "domains do not match"}
}

// addRole combines roles across addition: like roles add, Undefined
// adopts the other operand.
func addRole(x, y Expr) (Role, bool) {
	switch {
	case x.role == y.role:
		return x.role, true
	case x.role == Undefined:
		return y.role, true
	case y.role == Undefined:
		return x.role, true
	}
	return Undefined, false
}

// Add returns x + y.
func (x Expr) Add(y Expr) (Expr, error) {
	x, y, err := reconcileDomains("add", x, y)
	if err != nil {
		return Expr{}, err
	}
	role, ok := addRole(x, y)
	if !ok {
		return Expr{}, &IncompatibilityError{Op: "add", Left: x, Right: y,
			Reason: "cannot add a " + x.role.String() + " to a " + y.role.String()}
	}
	x.e = sym.AddOf(x.e, y.e)
	x.role = role
	x.assume = mergeAdd(x.assume, y.assume)
	return x, nil
}

// Sub returns x - y.
func (x Expr) Sub(y Expr) (Expr, error) {
	return x.Add(y.Neg())
}

// Neg returns -x.
func (x Expr) Neg() Expr {
	x.e = sym.Neg(x.e).Simplify()
	return x
}

// Scale multiplies by a dimensionless symbolic factor.
func (x Expr) Scale(k sym.Expr) (Expr, error) {
	if err := checkVariables(x.domain, k); err != nil {
		return Expr{}, err
	}
	x.e = sym.MulOf(k, x.e).Simplify()
	return x, nil
}

// frequencyDomain reports whether role promotion applies: impedance
// relations hold pointwise in frequency, not in time.
func frequencyDomain(d Domain) bool {
	switch d {
	case LaplaceDomain, FourierDomain, AngularFourierDomain, PhasorDomain,
		ZDomain, DiscreteFourierDomain, ConstantDomain, NoiseDomain:
		return true
	}
	return false
}

type rolePair struct{ a, b Role }

// mulRoles is the multiplicative promotion table for frequency domains.
var mulRoles = map[rolePair]Role{
	{Impedance, Current}:    Voltage,
	{Current, Impedance}:    Voltage,
	{Admittance, Voltage}:   Current,
	{Voltage, Admittance}:   Current,
	{Impedance, Admittance}: Transfer,
	{Admittance, Impedance}: Transfer,
	{Transfer, Voltage}:     Voltage,
	{Voltage, Transfer}:     Voltage,
	{Transfer, Current}:     Current,
	{Current, Transfer}:     Current,
	{Transfer, Impedance}:   Impedance,
	{Impedance, Transfer}:   Impedance,
	{Transfer, Admittance}:  Admittance,
	{Admittance, Transfer}:  Admittance,
	{Transfer, Transfer}:    Transfer,
}

// divRoles is the promotion table for division.
var divRoles = map[rolePair]Role{
	{Voltage, Current}:      Impedance,
	{Current, Voltage}:      Admittance,
	{Voltage, Impedance}:    Current,
	{Current, Admittance}:   Voltage,
	{Voltage, Voltage}:      Transfer,
	{Current, Current}:      Transfer,
	{Impedance, Impedance}:  Transfer,
	{Admittance, Admittance}: Transfer,
	{Voltage, Transfer}:     Voltage,
	{Current, Transfer}:     Current,
	{Impedance, Transfer}:   Impedance,
	{Admittance, Transfer}:  Admittance,
	{Transfer, Transfer}:    Transfer,
	{Undefined, Impedance}:  Admittance,
	{Undefined, Admittance}: Impedance,
	{Undefined, Transfer}:   Transfer,
}

// liftOmegaTime is the controlled domain-crossing for the omega*t
// idiom: an angular-frequency scalar multiplying a time-domain value
// survives as time-domain.
func liftOmegaTime(x, y Expr) (Expr, Expr) {
	if x.domain == AngularFourierDomain && y.domain == TimeDomain {
		x.domain = TimeDomain
	}
	if y.domain == AngularFourierDomain && x.domain == TimeDomain {
		y.domain = TimeDomain
	}
	return x, y
}

// Mul returns x * y with role promotion.
func (x Expr) Mul(y Expr) (Expr, error) {
	x, y = liftOmegaTime(x, y)
	x, y, err := reconcileDomains("multiply", x, y)
	if err != nil {
		return Expr{}, err
	}
	role, err := mulRole(x, y)
	if err != nil {
		return Expr{}, err
	}
	x.e = sym.MulOf(x.e, y.e).Simplify()
	x.role = role
	x.assume = mergeMul(x.assume, y.assume)
	return x, nil
}

func mulRole(x, y Expr) (Role, error) {
	switch {
	case x.role == Undefined:
		return y.role, nil
	case y.role == Undefined:
		return x.role, nil
	}
	if !frequencyDomain(x.domain) {
		return Undefined, &IncompatibilityError{Op: "multiply", Left: x, Right: y,
			Reason: "quantity products are only defined pointwise in frequency domains"}
	}
	if r, ok := mulRoles[rolePair{x.role, y.role}]; ok {
		return r, nil
	}
	return Undefined, &IncompatibilityError{Op: "multiply", Left: x, Right: y,
		Reason: "no product is defined for these roles"}
}

// Div returns x / y with role promotion.
func (x Expr) Div(y Expr) (Expr, error) {
	x, y = liftOmegaTime(x, y)
	x, y, err := reconcileDomains("divide", x, y)
	if err != nil {
		return Expr{}, err
	}
	role, err := divRole(x, y)
	if err != nil {
		return Expr{}, err
	}
	x.e = sym.DivOf(x.e, y.e).Simplify()
	x.role = role
	x.assume = mergeMul(x.assume, y.assume)
	return x, nil
}

func divRole(x, y Expr) (Role, error) {
	if y.role == Undefined {
		return x.role, nil
	}
	if !frequencyDomain(x.domain) {
		return Undefined, &IncompatibilityError{Op: "divide", Left: x, Right: y,
			Reason: "quantity ratios are only defined pointwise in frequency domains"}
	}
	if r, ok := divRoles[rolePair{x.role, y.role}]; ok {
		return r, nil
	}
	return Undefined, &IncompatibilityError{Op: "divide", Left: x, Right: y,
		Reason: "no ratio is defined for these roles"}
}

// Reciprocal returns 1 / x, swapping impedance and admittance.
func (x Expr) Reciprocal() (Expr, error) {
	one := Expr{e: sym.N(1), domain: x.domain, omega: x.omega}
	return one.Div(x)
}

// Pow raises a dimensionless expression to a power.
func (x Expr) Pow(n int64) (Expr, error) {
	if x.role != Undefined && x.role != Transfer {
		return Expr{}, &IncompatibilityError{Op: "raise", Left: x, Right: x,
			Reason: "powers are only defined for dimensionless quantities"}
	}
	x.e = sym.PowOf(x.e, sym.N(n))
	return x, nil
}
