// Package netsym provides typed symbolic expressions for electrical
// network quantities. An expression carries a domain (time, Laplace,
// Fourier, phasor, discrete ...), a role (voltage, current, impedance,
// admittance, transfer function) and signal assumptions (dc, ac,
// causal). Arithmetic between expressions is checked for domain and
// role compatibility, transforms move expressions between domains with
// assumption bookkeeping, and superpositions decompose signals into
// independently analysable components.
package netsym

// Domain identifies the independent variable of an expression.
type Domain int

const (
	// ConstantDomain is for expressions with no independent variable.
	ConstantDomain Domain = iota
	// TimeDomain expressions depend on t.
	TimeDomain
	// LaplaceDomain expressions depend on the complex frequency s.
	LaplaceDomain
	// FourierDomain expressions depend on the ordinary frequency f.
	FourierDomain
	// AngularFourierDomain expressions depend on omega = 2 pi f.
	AngularFourierDomain
	// PhasorDomain expressions are complex amplitudes at a single
	// carrier frequency.
	PhasorDomain
	// DiscreteTimeDomain expressions depend on the sample index n.
	DiscreteTimeDomain
	// ZDomain expressions depend on z.
	ZDomain
	// DiscreteFourierDomain expressions depend on the bin index k.
	DiscreteFourierDomain
	// NoiseDomain expressions are amplitude spectral densities in
	// omega, combined in quadrature rather than linearly.
	NoiseDomain
)

var domainNames = map[Domain]string{
	ConstantDomain:        "constant",
	TimeDomain:            "time",
	LaplaceDomain:         "laplace",
	FourierDomain:         "fourier",
	AngularFourierDomain:  "angular fourier",
	PhasorDomain:          "phasor",
	DiscreteTimeDomain:    "discrete time",
	ZDomain:               "z",
	DiscreteFourierDomain: "discrete fourier",
	NoiseDomain:           "noise",
}

func (d Domain) String() string {
	if s, ok := domainNames[d]; ok {
		return s
	}
	return "unknown"
}

// Variable returns the reserved symbol name for the domain, or "" for
// domains without one.
func (d Domain) Variable() string {
	switch d {
	case TimeDomain:
		return "t"
	case LaplaceDomain:
		return "s"
	case FourierDomain:
		return "f"
	case AngularFourierDomain, NoiseDomain:
		return "omega"
	case DiscreteTimeDomain:
		return "n"
	case ZDomain:
		return "z"
	case DiscreteFourierDomain:
		return "k"
	}
	return ""
}

// reservedVars maps each reserved symbol name to true. An expression may
// only use the variable of its own domain.
var reservedVars = map[string]bool{
	"t": true, "s": true, "f": true, "omega": true,
	"n": true, "z": true, "k": true,
}

// Role identifies the electrical quantity an expression represents.
type Role int

const (
	Undefined Role = iota
	Voltage
	Current
	Impedance
	Admittance
	Transfer
)

var roleNames = map[Role]string{
	Undefined:  "undefined",
	Voltage:    "voltage",
	Current:    "current",
	Impedance:  "impedance",
	Admittance: "admittance",
	Transfer:   "transfer function",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}
