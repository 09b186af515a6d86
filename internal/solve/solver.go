// Package solve implements the union-find Typeable abstraction and its
// family of per-kind Solvers (primitive, function, tuple, disjoint
// union). This is the unification engine the annotator and specializer
// drive; it knows nothing about the AST.
package solve

import (
	"fmt"

	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/types"
)

// Error is the error type returned by every solver and typeable
// operation. Callers that need a source location wrap it into a
// *diag.Error once they know where the failing node is; Error carries
// just enough (a diag.Code and message) to make that wrapping mechanical.
type Error struct {
	Code    diag.Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func incompatible(format string, args ...any) *Error {
	return &Error{Code: diag.TY001, Message: fmt.Sprintf(format, args...)}
}

func indeterminate(format string, args ...any) *Error {
	return &Error{Code: diag.TY002, Message: fmt.Sprintf(format, args...)}
}

// Solver is the per-kind constraint store attached to a union-find root
// Typeable. merge performs a flat match on the dynamic kind of other,
// failing with TYPE_INCOMPATIBLE for any heterogeneous pairing; solve
// materializes the solver's current constraints into a concrete Type.
type Solver interface {
	merge(other Solver) error
	solve() (types.Type, error)
}

// mutableRecursive is implemented by the composite type kinds whose
// Recursive flag is patched after the fact by Typeable.Solve once it
// knows whether solving this root emitted any Recurrence stubs.
type mutableRecursive interface {
	SetRecursive(bool)
}

func unifyTags(a, b string) (string, error) {
	if a == "" {
		return b, nil
	}
	if b == "" {
		return a, nil
	}
	if a != b {
		return "", incompatible("conflicting tuple tags %q and %q", a, b)
	}
	return a, nil
}
