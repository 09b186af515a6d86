package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dar-lang/darc/internal/solve"
	"github.com/dar-lang/darc/internal/specialize"
	"github.com/dar-lang/darc/internal/types"
)

func TestSymbolNameMain(t *testing.T) {
	fn := types.NewFunction(nil, &types.Primitive{Kind: types.Int64})
	if got := symbolName("main", fn); got != "main" {
		t.Errorf("got %q, want main", got)
	}
}

func TestSymbolNameExcludesYieldHash(t *testing.T) {
	fn := types.NewFunction([]types.Type{&types.Primitive{Kind: types.Int64}}, &types.Primitive{Kind: types.Bool})
	got := symbolName("add", fn)
	want := "add_F1[i]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "[b]") {
		t.Error("symbol name should exclude the yield's hash")
	}
}

func TestDisassemblerEmit(t *testing.T) {
	fs := solve.NewFunctionSolver(1)
	if err := fs.Arg(0).Unify(solve.Primitive(types.Int64)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Yields().Unify(solve.Primitive(types.Int64)); err != nil {
		t.Fatal(err)
	}
	funcTypeable := solve.New(fs)

	var buf bytes.Buffer
	d := NewDisassembler(&buf)
	spec := &specialize.Specialization{
		Typeables:    map[int64]*solve.Typeable{7: fs.Arg(0)},
		FuncTypeable: funcTypeable,
	}
	if err := d.Emit("id", spec); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "id_F1[i]") {
		t.Errorf("output missing expected symbol name:\n%s", out)
	}
	if !strings.Contains(out, "node 7: Int64") {
		t.Errorf("output missing expected node listing:\n%s", out)
	}
}

func TestEmitAllIsDeterministic(t *testing.T) {
	m := specialize.Map{
		"b": {{FuncTypeable: solve.Function(0)}},
		"a": {{FuncTypeable: solve.Function(0)}},
	}
	var order []string
	backend := &recordingBackend{emit: func(name string, _ *specialize.Specialization) error {
		order = append(order, name)
		return nil
	}}
	if err := EmitAll(backend, m); err != nil {
		t.Fatalf("EmitAll failed: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("got order %v, want [a b]", order)
	}
}

type recordingBackend struct {
	emit func(string, *specialize.Specialization) error
}

func (r *recordingBackend) Emit(name string, spec *specialize.Specialization) error {
	return r.emit(name, spec)
}
