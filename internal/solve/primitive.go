package solve

import "github.com/dar-lang/darc/internal/types"

// PrimitiveSolver constrains a typeable to a single fixed scalar kind.
// It never changes shape after construction; merging two primitive
// solvers either confirms they agree or fails outright.
type PrimitiveSolver struct {
	kind types.PrimitiveKind
}

// NewPrimitiveSolver constrains a fresh typeable to kind.
func NewPrimitiveSolver(kind types.PrimitiveKind) *PrimitiveSolver {
	return &PrimitiveSolver{kind: kind}
}

func (s *PrimitiveSolver) merge(other Solver) error {
	o, ok := other.(*PrimitiveSolver)
	if !ok {
		return incompatible("cannot unify %s with a non-primitive type", s.kind)
	}
	if s.kind != o.kind {
		return incompatible("cannot unify %s with %s", s.kind, o.kind)
	}
	return nil
}

func (s *PrimitiveSolver) solve() (types.Type, error) {
	return &types.Primitive{Kind: s.kind}, nil
}

// Primitive is a convenience constructor for a root Typeable already
// pinned to kind, used by literal annotation and intrinsic registration.
func Primitive(kind types.PrimitiveKind) *Typeable {
	return New(NewPrimitiveSolver(kind))
}
