package solve

import "github.com/dar-lang/darc/internal/types"

type tupleSlot struct {
	tag string
	ty  *Typeable
}

// TupleSolver constrains a typeable to a fixed-arity heterogeneous
// aggregate. Items are addressed either by position or, once tagged, by
// name through a side table; the side table is reconciled against the
// ordered items only at solve time.
type TupleSolver struct {
	items []tupleSlot
	byTag map[string]*Typeable
}

// NewTupleSolver allocates a tuple solver with n untagged, unconstrained
// item slots.
func NewTupleSolver(n int) *TupleSolver {
	items := make([]tupleSlot, n)
	for i := range items {
		items[i] = tupleSlot{ty: NewUnconstrained()}
	}
	return &TupleSolver{items: items, byTag: make(map[string]*Typeable)}
}

// Arity reports the number of item slots.
func (s *TupleSolver) Arity() int { return len(s.items) }

// Item returns the typeable for the i-th item slot.
func (s *TupleSolver) Item(i int) *Typeable { return s.items[i].ty }

// TagItem records that the i-th item carries tag. A second, conflicting
// tag assignment to the same item fails; re-asserting the same tag, or
// tagging an item that was already reached through ItemWithTag, is fine.
func (s *TupleSolver) TagItem(i int, tag string) error {
	unified, err := unifyTags(s.items[i].tag, tag)
	if err != nil {
		return err
	}
	s.items[i].tag = unified
	return nil
}

// ItemWithTag returns the typeable addressed by a tagged-field reference,
// creating a fresh unconstrained typeable in the side table the first
// time tag is seen. The side table is reconciled against the ordered
// item list in solve.
func (s *TupleSolver) ItemWithTag(tag string) *Typeable {
	if t, ok := s.byTag[tag]; ok {
		return t
	}
	t := NewUnconstrained()
	s.byTag[tag] = t
	return t
}

func (s *TupleSolver) merge(other Solver) error {
	o, ok := other.(*TupleSolver)
	if !ok {
		return incompatible("cannot unify a tuple type with a non-tuple type")
	}
	if len(s.items) != len(o.items) {
		return incompatible("cannot unify tuples of arity %d and %d", len(s.items), len(o.items))
	}
	for i := range s.items {
		unified, err := unifyTags(s.items[i].tag, o.items[i].tag)
		if err != nil {
			return err
		}
		s.items[i].tag = unified
		if err := s.items[i].ty.Unify(o.items[i].ty); err != nil {
			return err
		}
	}
	for tag, t := range o.byTag {
		if existing, ok := s.byTag[tag]; ok {
			if err := existing.Unify(t); err != nil {
				return err
			}
		} else {
			s.byTag[tag] = t
		}
	}
	return nil
}

func (s *TupleSolver) solve() (types.Type, error) {
	tagToIndex := make(map[string]int, len(s.items))
	for i, it := range s.items {
		if it.tag == "" {
			continue
		}
		if _, dup := tagToIndex[it.tag]; dup {
			return nil, incompatible("duplicate tuple tag %q", it.tag)
		}
		tagToIndex[it.tag] = i
	}

	for tag, t := range s.byTag {
		idx, ok := tagToIndex[tag]
		if !ok {
			return nil, incompatible("tagged field %q has no corresponding tuple item", tag)
		}
		if err := t.Unify(s.items[idx].ty); err != nil {
			return nil, err
		}
	}

	result := make([]types.TupleItem, len(s.items))
	for i, it := range s.items {
		ty, err := it.ty.Solve()
		if err != nil {
			return nil, err
		}
		result[i] = types.TupleItem{Tag: it.tag, Ty: ty}
	}
	return types.NewTuple(result), nil
}

// Tuple is a convenience constructor for a root Typeable constrained to a
// fresh tuple solver of the given arity.
func Tuple(n int) *Typeable {
	return New(NewTupleSolver(n))
}
