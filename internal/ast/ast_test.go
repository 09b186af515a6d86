package ast

import (
	"encoding/json"
	"testing"
)

func TestNodeIDsAreUniqueAndMonotonic(t *testing.T) {
	pos := Pos{File: "f", Line: 1, Column: 1}
	a := NewIntegralLiteral(pos, 1)
	b := NewIntegralLiteral(pos, 2)
	if a.ID() == b.ID() {
		t.Fatal("two distinct nodes got the same id")
	}
	if b.ID() <= a.ID() {
		t.Errorf("ids are not monotonically increasing: %d then %d", a.ID(), b.ID())
	}
}

func TestDeclarationPolymorphicFlag(t *testing.T) {
	pos := Pos{File: "f", Line: 1, Column: 1}
	main := NewDeclaration(pos, "main", nil, NewIntegralLiteral(pos, 0), false)
	other := NewDeclaration(pos, "f", []string{"x"}, NewIdExpression(pos, "x"), true)
	if main.Polymorphic {
		t.Error("main should not be polymorphic")
	}
	if !other.Polymorphic {
		t.Error("non-main declaration should be polymorphic")
	}
}

func TestPrintProducesValidJSON(t *testing.T) {
	pos := Pos{File: "f", Line: 1, Column: 1}
	mod := NewModule(pos, []*Declaration{
		NewDeclaration(pos, "main", nil, NewIntegralLiteral(pos, 42), false),
	})
	out := Print(mod)
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Print output was not valid JSON: %v\n%s", err, out)
	}
	if decoded["type"] != "Module" {
		t.Errorf("got type %v, want Module", decoded["type"])
	}
}

func TestTupleStringWithTags(t *testing.T) {
	pos := Pos{File: "f", Line: 1, Column: 1}
	tup := NewTuple(pos, []TupleItem{
		{Tag: "x", Value: NewIntegralLiteral(pos, 1)},
		{Value: NewIntegralLiteral(pos, 2)},
	})
	want := "(~x 1, 2)"
	if got := tup.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGuardString(t *testing.T) {
	pos := Pos{File: "f", Line: 1, Column: 1}
	guard := NewGuard(pos,
		[]GuardCase{{Condition: NewBooleanLiteral(pos, true), Value: NewIntegralLiteral(pos, 1)}},
		NewIntegralLiteral(pos, 2),
	)
	want := "{ true : 1 ; * : 2 }"
	if got := guard.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
