package solve

import "github.com/dar-lang/darc/internal/types"

// DisjointSolver constrains a typeable to an ordered, first-seen list of
// pairwise non-unifiable variants. It is produced by Guard annotation
// falling back from a single equivalence class to a disjoint union once
// two case values refuse to unify, and by FromType when rebuilding a
// materialized DisjointUnion.
type DisjointSolver struct {
	variants []*Typeable
}

// NewDisjointSolver allocates a disjoint solver over the given variant
// typeables, in first-seen order. At least one variant is required.
func NewDisjointSolver(variants ...*Typeable) *DisjointSolver {
	return &DisjointSolver{variants: variants}
}

// Add appends another variant typeable, in first-seen order.
func (s *DisjointSolver) Add(t *Typeable) {
	s.variants = append(s.variants, t)
}

// Variants returns the variant typeables in order.
func (s *DisjointSolver) Variants() []*Typeable { return s.variants }

func (s *DisjointSolver) merge(other Solver) error {
	o, ok := other.(*DisjointSolver)
	if !ok {
		return incompatible("cannot unify a disjoint union with a non-union type")
	}
	if len(s.variants) != len(o.variants) {
		return incompatible("cannot unify disjoint unions of %d and %d variants", len(s.variants), len(o.variants))
	}
	for i := range s.variants {
		if err := s.variants[i].Unify(o.variants[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *DisjointSolver) solve() (types.Type, error) {
	if len(s.variants) == 0 {
		return nil, indeterminate("disjoint union has no variants")
	}
	variantTypes := make([]types.Type, len(s.variants))
	for i, v := range s.variants {
		ty, err := v.Solve()
		if err != nil {
			return nil, err
		}
		variantTypes[i] = ty
	}
	return types.NewDisjointUnion(variantTypes), nil
}

// Disjoint is a convenience constructor for a root Typeable constrained
// to a fresh disjoint solver over the given variants.
func Disjoint(variants ...*Typeable) *Typeable {
	return New(NewDisjointSolver(variants...))
}
