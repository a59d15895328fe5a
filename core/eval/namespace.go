package eval

import (
	"io"
	"sort"
)

// Keywords are names with fixed values that can't be assigned.
var Keywords = map[string]interface{}{
	"None":  nil,
	"True":  true,
	"False": false,
}

// Call holds the arguments of a builtin invocation.
type Call struct {
	Name   string
	Args   []interface{}
	Kwargs map[string]interface{}
	Stdout io.Writer
}

// Expect checks the number of positional arguments.
func (c *Call) Expect(min, max int) error {
	n := len(c.Args)
	switch {
	case n < min && min == max:
		return typeError("%s() takes exactly %d argument(s) (%d given)", c.Name, min, n)
	case n < min:
		return typeError("%s() takes at least %d argument(s) (%d given)", c.Name, min, n)
	case max >= 0 && n > max:
		return typeError("%s() takes at most %d argument(s) (%d given)", c.Name, max, n)
	}
	return nil
}

// Kwarg returns the keyword argument name, removing it from the call.
func (c *Call) Kwarg(name string) (interface{}, bool) {
	v, ok := c.Kwargs[name]
	delete(c.Kwargs, name)
	return v, ok
}

// NoKwargs fails if any keyword arguments weren't consumed.
func (c *Call) NoKwargs() error {
	for name := range c.Kwargs {
		return typeError("%s() got an unexpected keyword argument '%s'", c.Name, name)
	}
	return nil
}

// Builtin is a function callable from the session.
type Builtin struct {
	Name string
	Doc  string
	Func func(call *Call) (interface{}, error)
}

func (b *Builtin) String() string {
	return "<built-in function " + b.Name + ">"
}

// Namespace holds the names visible in a session.
type Namespace struct {
	vars     map[string]interface{}
	builtins map[string]*Builtin
}

// NewNamespace creates a namespace with the standard builtins installed.
func NewNamespace() *Namespace {
	ns := &Namespace{
		vars:     make(map[string]interface{}),
		builtins: make(map[string]*Builtin),
	}
	for _, b := range standardBuiltins(ns) {
		ns.Install(b)
	}
	return ns
}

// Install adds or replaces a builtin.
func (n *Namespace) Install(b *Builtin) {
	n.builtins[b.Name] = b
}

// Builtin looks up an installed builtin by name.
func (n *Namespace) Builtin(name string) (*Builtin, bool) {
	b, ok := n.builtins[name]
	return b, ok
}

// Set binds a variable, shadowing any builtin of the same name.
func (n *Namespace) Set(name string, v interface{}) {
	n.vars[name] = v
}

// Get resolves a name, variables first and then builtins.
func (n *Namespace) Get(name string) (interface{}, bool) {
	if v, ok := n.vars[name]; ok {
		return v, true
	}
	if b, ok := n.builtins[name]; ok {
		return b, true
	}
	return nil, false
}

// Delete removes a variable.
func (n *Namespace) Delete(name string) {
	delete(n.vars, name)
}

// Names returns every visible name, sorted.
func (n *Namespace) Names() []string {
	seen := make(map[string]bool)
	var out []string
	for name := range n.vars {
		seen[name] = true
		out = append(out, name)
	}
	for name := range n.builtins {
		if !seen[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Callable reports whether name currently resolves to a builtin.
func (n *Namespace) Callable(name string) bool {
	v, ok := n.Get(name)
	if !ok {
		return false
	}
	_, ok = v.(*Builtin)
	return ok
}
