package solve

import (
	"testing"

	"github.com/dar-lang/darc/internal/types"
)

func solvedString(t *testing.T, tv *Typeable) string {
	t.Helper()
	ty, err := tv.Solve()
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}
	return ty.String()
}

func TestUnifyPrimitiveSameKind(t *testing.T) {
	a := Primitive(types.Int64)
	b := Primitive(types.Int64)
	if err := a.Unify(b); err != nil {
		t.Fatalf("unifying two Int64 typeables failed: %v", err)
	}
	if got := solvedString(t, a); got != "Int64" {
		t.Errorf("got %q, want Int64", got)
	}
}

func TestUnifyPrimitiveMismatchFails(t *testing.T) {
	a := Primitive(types.Int64)
	b := Primitive(types.Bool)
	err := a.Unify(b)
	if err == nil {
		t.Fatal("expected unification of Int64 and Bool to fail")
	}
	se, ok := err.(*Error)
	if !ok || se.Code != "TY001" {
		t.Errorf("expected TY001 error, got %v", err)
	}
}

func TestUnifyIdempotent(t *testing.T) {
	a := Primitive(types.Int64)
	if err := a.Unify(a); err != nil {
		t.Fatalf("self-unify failed: %v", err)
	}
	if got := solvedString(t, a); got != "Int64" {
		t.Errorf("got %q, want Int64", got)
	}
}

func TestUnifyCommutative(t *testing.T) {
	x := Primitive(types.Int64)
	y := Primitive(types.Int64)
	if err := x.Unify(y); err != nil {
		t.Fatalf("x.Unify(y) failed: %v", err)
	}
	want := solvedString(t, x)

	a := Primitive(types.Int64)
	b := Primitive(types.Int64)
	if err := b.Unify(a); err != nil {
		t.Fatalf("b.Unify(a) failed: %v", err)
	}
	got := solvedString(t, a)

	if got != want {
		t.Errorf("unification order changed the result: %q vs %q", got, want)
	}
}

func TestUnconstrainedJoinsConstrained(t *testing.T) {
	free := NewUnconstrained()
	fixed := Primitive(types.String)
	if err := free.Unify(fixed); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if got := solvedString(t, free); got != "String" {
		t.Errorf("got %q, want String", got)
	}
	if got := solvedString(t, fixed); got != "String" {
		t.Errorf("got %q, want String", got)
	}
}

func TestUnconstrainedNotSolvable(t *testing.T) {
	free := NewUnconstrained()
	if free.IsSolvable() {
		t.Fatal("unconstrained typeable reported solvable")
	}
}

func TestFunctionUnifyStructural(t *testing.T) {
	f1 := Function(1)
	f2 := Function(1)
	if err := f1.Unify(f2); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	fs1 := f1.solver.(*FunctionSolver)
	if err := fs1.Arg(0).Unify(Primitive(types.Int64)); err != nil {
		t.Fatalf("constraining arg failed: %v", err)
	}
	if err := fs1.Yields().Unify(Primitive(types.Bool)); err != nil {
		t.Fatalf("constraining yield failed: %v", err)
	}
	if got := solvedString(t, f1); got != "(Int64) -> Bool" {
		t.Errorf("got %q, want (Int64) -> Bool", got)
	}
	if got := solvedString(t, f2); got != "(Int64) -> Bool" {
		t.Errorf("merged function typeable got %q, want (Int64) -> Bool", got)
	}
}

func TestFunctionArityMismatchFails(t *testing.T) {
	f1 := Function(1)
	f2 := Function(2)
	if err := f1.Unify(f2); err == nil {
		t.Fatal("expected arity mismatch to fail")
	}
}

func TestRecursiveTypeProducesStubAndPatches(t *testing.T) {
	// Build a self-referential tuple: t := (t-item) where item unifies
	// back to the tuple's own typeable, forcing Solve to re-enter an
	// in-progress root and hand back a Recurrence stub.
	root := Tuple(1)
	ts := root.solver.(*TupleSolver)
	if err := ts.Item(0).Unify(root); err != nil {
		t.Fatalf("self-referential unify failed: %v", err)
	}

	ty, err := root.Solve()
	if err != nil {
		t.Fatalf("Solve() on recursive type failed: %v", err)
	}
	if !ty.Recursive() {
		t.Fatal("expected materialized recursive type to report Recursive() = true")
	}
	tup, ok := ty.(*types.Tuple)
	if !ok {
		t.Fatalf("expected *types.Tuple, got %T", ty)
	}
	rec, ok := tup.Items[0].Ty.(*types.Recurrence)
	if !ok {
		t.Fatalf("expected item 0 to be a *types.Recurrence stub, got %T", tup.Items[0].Ty)
	}
	if rec.Parent != ty {
		t.Error("Recurrence.Parent was not patched to the enclosing composite")
	}
}

func TestSolveDeterministic(t *testing.T) {
	build := func() string {
		fn := Function(2)
		fs := fn.solver.(*FunctionSolver)
		_ = fs.Arg(0).Unify(Primitive(types.Int64))
		_ = fs.Arg(1).Unify(Primitive(types.String))
		_ = fs.Yields().Unify(Primitive(types.Bool))
		ty, err := fn.Solve()
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		return ty.Hash()
	}
	first := build()
	second := build()
	if first != second {
		t.Errorf("solving structurally identical types produced different hashes: %q vs %q", first, second)
	}
}
