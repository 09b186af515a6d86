package solve

import "github.com/dar-lang/darc/internal/types"

// FromType rebuilds a solver tree that solves back to exactly t. Used to
// seed a typeable with a required concrete type — a library root's
// declared argument types, or the Int64 return type main must produce —
// without going through unification against some other typeable.
//
// Recurrence is not reconstructible from a bare types.Type (its back-edge
// only makes sense inside the materialization that produced it), so a
// Recurrence here seeds an unconstrained typeable instead; no caller in
// this module currently seeds a root with a recursive required type.
func FromType(t types.Type) *Typeable {
	switch v := t.(type) {
	case *types.Primitive:
		return Primitive(v.Kind)
	case *types.Tuple:
		ts := NewTupleSolver(len(v.Items))
		for i, item := range v.Items {
			if item.Tag != "" {
				_ = ts.TagItem(i, item.Tag)
			}
			_ = ts.Item(i).Unify(FromType(item.Ty))
		}
		return New(ts)
	case *types.Function:
		fs := NewFunctionSolver(len(v.Args))
		for i, a := range v.Args {
			_ = fs.Arg(i).Unify(FromType(a))
		}
		_ = fs.Yields().Unify(FromType(v.Yields))
		return New(fs)
	case *types.DisjointUnion:
		variants := make([]*Typeable, len(v.Variants))
		for i, variant := range v.Variants {
			variants[i] = FromType(variant)
		}
		return Disjoint(variants...)
	default:
		return NewUnconstrained()
	}
}
