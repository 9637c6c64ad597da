package netsym

import "fmt"

// DomainViolationError reports an expression using a reserved variable
// that does not belong to its domain.
type DomainViolationError struct {
	Domain   Domain
	Variable string
}

func (e *DomainViolationError) Error() string {
	return fmt.Sprintf("netsym: variable %q is not allowed in the %s domain", e.Variable, e.Domain)
}

// IncompatibilityError reports an arithmetic operation on two
// expressions whose domains or roles cannot be combined.
type IncompatibilityError struct {
	Op          string
	Left, Right Expr
	Reason      string
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("netsym: cannot %s %s (%s/%s) and %s (%s/%s): %s",
		e.Op,
		e.Left.String(), e.Left.Role(), e.Left.Domain(),
		e.Right.String(), e.Right.Role(), e.Right.Domain(),
		e.Reason)
}

// TransformError reports a domain conversion that is not defined for the
// expression.
type TransformError struct {
	From, To Domain
	Detail   string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("netsym: cannot transform from the %s domain to the %s domain: %s", e.From, e.To, e.Detail)
}

// EvaluationError reports a numeric evaluation failure, usually an
// unbound symbol.
type EvaluationError struct {
	Detail string
}

func (e *EvaluationError) Error() string {
	return "netsym: " + e.Detail
}

// UnsupportedValueError reports a value that the superposition engine
// does not accept.
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("netsym: unsupported value %v (%T)", e.Value, e.Value)
}
