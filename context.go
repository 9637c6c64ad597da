package netsym

// SymAttr describes what is assumed about a free symbol.
type SymAttr struct {
	Real     bool
	Positive bool
	Complex  bool
}

// Context is a scoped table of symbol assumptions. Entering a scope
// shadows the parent; exiting restores it. Contexts are threaded
// explicitly rather than held in package state.
type Context struct {
	parent  *Context
	symbols map[string]SymAttr
}

// NewContext returns a root context with the domain variables declared
// real.
func NewContext() *Context {
	c := &Context{symbols: map[string]SymAttr{}}
	for _, v := range []string{"t", "f", "omega", "n", "k"} {
		c.symbols[v] = SymAttr{Real: true}
	}
	return c
}

// Enter opens a nested scope.
func (c *Context) Enter() *Context {
	return &Context{parent: c, symbols: map[string]SymAttr{}}
}

// Exit closes the scope and returns the parent. Exiting the root scope
// returns the root itself.
func (c *Context) Exit() *Context {
	if c.parent == nil {
		return c
	}
	return c.parent
}

// Declare records assumptions for a symbol in the current scope.
func (c *Context) Declare(name string, attr SymAttr) {
	c.symbols[name] = attr
}

// DeclareReal marks a symbol as real-valued.
func (c *Context) DeclareReal(name string) {
	c.Declare(name, SymAttr{Real: true})
}

// DeclarePositive marks a symbol as real and positive.
func (c *Context) DeclarePositive(name string) {
	c.Declare(name, SymAttr{Real: true, Positive: true})
}

// DeclareComplex marks a symbol as complex-valued.
func (c *Context) DeclareComplex(name string) {
	c.Declare(name, SymAttr{Complex: true})
}

// Lookup resolves a symbol through the scope chain.
func (c *Context) Lookup(name string) (SymAttr, bool) {
	for scope := c; scope != nil; scope = scope.parent {
		if attr, ok := scope.symbols[name]; ok {
			return attr, true
		}
	}
	return SymAttr{}, false
}

// IsComplex reports whether name is declared complex. Undeclared symbols
// default to real.
func (c *Context) IsComplex(name string) bool {
	attr, ok := c.Lookup(name)
	return ok && attr.Complex
}

var defaultContext = NewContext()

// DefaultContext returns the shared root context.
func DefaultContext() *Context { return defaultContext }
