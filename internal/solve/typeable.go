package solve

import "github.com/dar-lang/darc/internal/types"

// Typeable is a union-find node. A root owns a Solver (or owns nothing,
// for a still-unconstrained typeable); a non-root just points at its
// parent. Unify merges two equivalence classes; Solve materializes the
// root's solver into a concrete types.Type, handling cycles by emitting
// types.Recurrence stubs and patching them once the enclosing composite
// is known.
type Typeable struct {
	parent *Typeable
	solver Solver

	inProgress bool
	stubs      []*types.Recurrence
}

// New allocates a root Typeable constrained by solver.
func New(solver Solver) *Typeable {
	return &Typeable{solver: solver}
}

// NewUnconstrained allocates a root Typeable with no solver at all. It
// becomes solvable once Unify merges it with a constrained class.
func NewUnconstrained() *Typeable {
	return &Typeable{}
}

// root finds the representative of t's equivalence class, compressing
// the path to it as it goes.
func (t *Typeable) root() *Typeable {
	r := t
	for r.parent != nil {
		r = r.parent
	}
	for t.parent != nil {
		next := t.parent
		t.parent = r
		t = next
	}
	return r
}

// Unify merges the equivalence classes of t and other. If both roots own
// a solver, the two solvers are merged via their flat type-switch match;
// a mismatch surfaces as TYPE_INCOMPATIBLE. If only one side owns a
// solver, the unconstrained side simply joins the constrained side's
// class. Idempotent: unifying a typeable with itself, or re-unifying an
// already-merged pair, is a no-op. Commutative up to root identity: the
// resulting equivalence class is the same regardless of call order,
// though which typeable ends up as root may differ.
func (t *Typeable) Unify(other *Typeable) error {
	a := t.root()
	b := other.root()
	if a == b {
		return nil
	}
	switch {
	case a.solver != nil && b.solver != nil:
		if err := a.solver.merge(b.solver); err != nil {
			return err
		}
		b.parent = a
		b.solver = nil
	case a.solver != nil:
		b.parent = a
	default:
		// Either b alone owns a solver, or neither does; in both cases a
		// joins b's class, which is harmless when both are unconstrained.
		a.parent = b
	}
	return nil
}

// Solve materializes the equivalence class's current constraints into a
// concrete Type. Re-entering Solve on a root that is already being
// solved (a cycle) returns a fresh, unpatched types.Recurrence stub
// instead of recursing forever; once the outermost call on that root
// finishes, every stub handed out during the call is patched to point at
// the freshly built composite, and the composite's Recursive flag is set.
func (t *Typeable) Solve() (types.Type, error) {
	root := t.root()
	if root.solver == nil {
		return nil, indeterminate("type could not be determined")
	}
	if root.inProgress {
		stub := types.NewRecurrence()
		root.stubs = append(root.stubs, stub)
		return stub, nil
	}

	root.inProgress = true
	ty, err := root.solver.solve()
	root.inProgress = false

	if err != nil {
		root.stubs = nil
		return nil, err
	}

	if len(root.stubs) > 0 {
		if mr, ok := ty.(mutableRecursive); ok {
			mr.SetRecursive(true)
		}
		for _, stub := range root.stubs {
			stub.Parent = ty
		}
	}
	root.stubs = nil
	return ty, nil
}

// IsSolvable reports whether Solve would succeed, discarding the result.
func (t *Typeable) IsSolvable() bool {
	_, err := t.Solve()
	return err == nil
}
