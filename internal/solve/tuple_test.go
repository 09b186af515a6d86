package solve

import (
	"testing"

	"github.com/dar-lang/darc/internal/types"
)

func TestTupleTagAddressing(t *testing.T) {
	tup := Tuple(2)
	ts := tup.solver.(*TupleSolver)
	if err := ts.TagItem(0, "x"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	if err := ts.TagItem(1, "y"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	if err := ts.ItemWithTag("x").Unify(Primitive(types.Int64)); err != nil {
		t.Fatalf("constraining tagged item failed: %v", err)
	}
	if err := ts.ItemWithTag("y").Unify(Primitive(types.Bool)); err != nil {
		t.Fatalf("constraining tagged item failed: %v", err)
	}

	ty, err := tup.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	want := "(~x:Int64, ~y:Bool)"
	if got := ty.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTupleUnresolvedTagFails(t *testing.T) {
	tup := Tuple(1)
	ts := tup.solver.(*TupleSolver)
	// Reference a tag that was never assigned to any ordered item.
	ts.ItemWithTag("missing")
	if _, err := tup.Solve(); err == nil {
		t.Fatal("expected Solve to fail for a tag with no corresponding item")
	}
}

func TestTupleDuplicateTagFails(t *testing.T) {
	tup := Tuple(2)
	ts := tup.solver.(*TupleSolver)
	if err := ts.TagItem(0, "x"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	if err := ts.TagItem(1, "x"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	if _, err := tup.Solve(); err == nil {
		t.Fatal("expected Solve to fail for duplicate tuple tags")
	}
}

func TestTupleArityMismatchFails(t *testing.T) {
	a := Tuple(1)
	b := Tuple(2)
	if err := a.Unify(b); err == nil {
		t.Fatal("expected tuple arity mismatch to fail")
	}
}

func TestTupleZeroArity(t *testing.T) {
	tup := Tuple(0)
	ty, err := tup.Solve()
	if err != nil {
		t.Fatalf("Solve failed for a zero-item tuple: %v", err)
	}
	if got := ty.String(); got != "()" {
		t.Errorf("got %q, want ()", got)
	}
}

func TestTupleConflictingTagsFail(t *testing.T) {
	a := Tuple(1)
	as := a.solver.(*TupleSolver)
	if err := as.TagItem(0, "x"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	b := Tuple(1)
	bs := b.solver.(*TupleSolver)
	if err := bs.TagItem(0, "y"); err != nil {
		t.Fatalf("TagItem failed: %v", err)
	}
	if err := a.Unify(b); err == nil {
		t.Fatal("expected conflicting tags on the same item to fail unification")
	}
}
