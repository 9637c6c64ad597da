package netsym

// Assumptions records what is known about a signal's shape. At most one
// of DC, AC and Causal is set; all false means nothing is known.
type Assumptions struct {
	DC     bool
	AC     bool
	Causal bool
}

// Unknown reports whether no signal assumption is held.
func (a Assumptions) Unknown() bool { return !a.DC && !a.AC && !a.Causal }

func (a Assumptions) String() string {
	switch {
	case a.DC:
		return "dc"
	case a.AC:
		return "ac"
	case a.Causal:
		return "causal"
	}
	return "unknown"
}

// mergeAdd combines assumptions across addition: causality of either
// operand makes the sum causal; dc/ac survive only when both operands
// agree.
func mergeAdd(a, b Assumptions) Assumptions {
	if a.Causal || b.Causal {
		return Assumptions{Causal: true}
	}
	if a == b {
		return a
	}
	return Assumptions{}
}

// mergeMul combines assumptions across multiplication. Causality of
// either factor makes the product causal; a dc factor leaves the other
// factor's shape unchanged; the product of two sinusoids at a common
// frequency is still ac.
func mergeMul(a, b Assumptions) Assumptions {
	switch {
	case a.Causal || b.Causal:
		return Assumptions{Causal: true}
	case a.DC && b.DC:
		return Assumptions{DC: true}
	case a.AC && b.DC, a.DC && b.AC, a.AC && b.AC:
		return Assumptions{AC: true}
	}
	return Assumptions{}
}
