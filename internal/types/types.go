// Package types defines the materialized type terms that a Typeable
// solves down to. Every value here is immutable once produced by a
// solver's Solve method, with two exceptions made once, in place, when a
// composite type that closes a cycle finishes materializing: each
// Recurrence's parent pointer is patched to it, and its Recursive flag is
// set through SetRecursive.
package types

import (
	"fmt"
	"strings"
)

// PrimitiveKind enumerates the built-in scalar kinds.
type PrimitiveKind int

const (
	Int64 PrimitiveKind = iota
	Float
	Bool
	String
)

func (k PrimitiveKind) String() string {
	switch k {
	case Int64:
		return "Int64"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case String:
		return "String"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// hashTag returns the single-character hash code for a primitive kind,
// per the structural hash grammar in the data model: i, f, b, s.
func (k PrimitiveKind) hashTag() string {
	switch k {
	case Int64:
		return "i"
	case Float:
		return "f"
	case Bool:
		return "b"
	case String:
		return "s"
	default:
		return "?"
	}
}

// Type is a materialized, concrete type. Every Type reports whether it
// lies on a cycle (Recursive) and exposes a deterministic structural
// Hash used by the back-end to dedupe code-gen artifacts and by tests for
// equality.
type Type interface {
	String() string
	Hash() string
	Recursive() bool
}

// Primitive is one of the fixed built-in scalar kinds.
type Primitive struct {
	Kind PrimitiveKind
}

func (t *Primitive) String() string  { return t.Kind.String() }
func (t *Primitive) Hash() string    { return t.Kind.hashTag() }
func (t *Primitive) Recursive() bool { return false }

// TupleItem is one (optional tag, type) item of a Tuple type, in the
// order the tuple was constructed.
type TupleItem struct {
	Tag string // empty means untagged
	Ty  Type
}

// Tuple is a heterogeneous ordered aggregate.
type Tuple struct {
	Items     []TupleItem
	recursive bool
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		if it.Tag != "" {
			parts[i] = fmt.Sprintf("~%s:%s", it.Tag, it.Ty.String())
		} else {
			parts[i] = it.Ty.String()
		}
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t *Tuple) Hash() string {
	var b strings.Builder
	fmt.Fprintf(&b, "T%d", len(t.Items))
	for _, it := range t.Items {
		fmt.Fprintf(&b, "[%s]", it.Ty.Hash())
	}
	return b.String()
}

func (t *Tuple) Recursive() bool { return t.recursive }

// SetRecursive marks this tuple as lying on a cycle. Called at most once,
// by the union-find solver, immediately after materialization.
func (t *Tuple) SetRecursive(r bool) { t.recursive = r }

// NewTuple constructs a Tuple type. Its Recursive flag starts false and is
// patched by SetRecursive if solving it turned out to re-enter a cycle.
func NewTuple(items []TupleItem) *Tuple {
	return &Tuple{Items: items}
}

// Function is a materialized function signature.
type Function struct {
	Args      []Type
	Yields    Type
	recursive bool
}

func (t *Function) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Yields.String())
}

func (t *Function) Hash() string {
	var b strings.Builder
	fmt.Fprintf(&b, "F%d", len(t.Args))
	for _, a := range t.Args {
		fmt.Fprintf(&b, "[%s]", a.Hash())
	}
	fmt.Fprintf(&b, "[%s]", t.Yields.Hash())
	return b.String()
}

func (t *Function) Recursive() bool { return t.recursive }

// SetRecursive marks this function as lying on a cycle. Called at most
// once, by the union-find solver, immediately after materialization.
func (t *Function) SetRecursive(r bool) { t.recursive = r }

// NewFunction constructs a Function type.
func NewFunction(args []Type, yields Type) *Function {
	return &Function{Args: args, Yields: yields}
}

// DisjointUnion is an ordered, non-empty list of pairwise non-unifiable
// variants, materialized from a Guard expression whose cases could not all
// be unified into one equivalence class.
type DisjointUnion struct {
	Variants  []Type
	recursive bool
}

func (t *DisjointUnion) String() string {
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		parts[i] = v.String()
	}
	return fmt.Sprintf("<%s>", strings.Join(parts, " | "))
}

func (t *DisjointUnion) Hash() string {
	var b strings.Builder
	b.WriteString("D")
	for _, v := range t.Variants {
		fmt.Fprintf(&b, "[%s]", v.Hash())
	}
	return b.String()
}

func (t *DisjointUnion) Recursive() bool { return t.recursive }

// SetRecursive marks this union as lying on a cycle. Called at most once,
// by the union-find solver, immediately after materialization.
func (t *DisjointUnion) SetRecursive(r bool) { t.recursive = r }

// NewDisjointUnion constructs a DisjointUnion type from a non-empty,
// first-seen-ordered list of variants.
func NewDisjointUnion(variants []Type) *DisjointUnion {
	if len(variants) == 0 {
		panic("types: DisjointUnion requires at least one variant")
	}
	return &DisjointUnion{Variants: variants}
}

// Recurrence is a placeholder standing in for a self-loop edge to some
// ancestor Type within the same materialization. It is produced when
// Typeable.Solve is re-entered on a root that is still being solved; its
// Parent pointer is nil until the outermost Solve call on that root
// completes, at which point every stub produced during that call is
// patched to point at the freshly built composite.
type Recurrence struct {
	Parent Type
}

func (t *Recurrence) String() string {
	return "self"
}

func (t *Recurrence) Hash() string {
	// Recurrence back-edges are excluded from structural hashing (ignored
	// per the round-trip equality property: hashes compare shape, not
	// the tying-the-knot wiring).
	return "self"
}

func (t *Recurrence) Recursive() bool { return true }

// NewRecurrence allocates an unpatched stub. Callers must later set
// Parent exactly once.
func NewRecurrence() *Recurrence {
	return &Recurrence{}
}
