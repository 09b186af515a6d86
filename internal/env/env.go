// Package env implements the scoped lexical environment the annotator
// walks expressions against: a chain of lookup scopes mapping bound
// names to their Typeable.
package env

import "github.com/dar-lang/darc/internal/solve"

// Env is one scope in a lookup chain. Its parent pointer is fixed at
// construction and never changes; its own bindings map is mutable, so a
// single scope can accumulate bindings (function parameters, then a
// sequence of let bindings) as the annotator descends into it.
type Env struct {
	parent   *Env
	bindings map[string]*solve.Typeable
}

// New returns an empty root scope with no parent.
func New() *Env {
	return &Env{bindings: make(map[string]*solve.Typeable)}
}

// Child returns a new scope nested under e. Bindings added to the child
// shadow same-named bindings in e without mutating e.
func (e *Env) Child() *Env {
	return &Env{parent: e, bindings: make(map[string]*solve.Typeable)}
}

// Bind adds or overwrites a binding in this scope.
func (e *Env) Bind(name string, t *solve.Typeable) {
	e.bindings[name] = t
}

// Lookup walks from this scope outward through its parents, returning
// the first binding found for name.
func (e *Env) Lookup(name string) (*solve.Typeable, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.bindings[name]; ok {
			return t, true
		}
	}
	return nil, false
}
