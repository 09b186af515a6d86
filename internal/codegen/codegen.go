// Package codegen defines the consumer contract for the specialization
// map this module's core produces. Instruction selection, symbol
// naming, and aggregate layout are out of scope for this repository; the
// one implementation here, Disassembler, stands in for a real back end
// so that `darc compile` produces visible output end to end.
package codegen

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dar-lang/darc/internal/specialize"
	"github.com/dar-lang/darc/internal/types"
)

// Backend consumes one callee's specializations. EmitAll calls Emit once
// per (name, specialization) pair, in callee-name order and then
// first-seen order within a callee.
type Backend interface {
	Emit(name string, spec *specialize.Specialization) error
}

// Disassembler is a trivial Backend that writes a human-readable listing
// of each specialization's materialized function type, its node→type
// table, and structural hashes. It never emits real IR.
type Disassembler struct {
	w io.Writer
}

// NewDisassembler returns a Disassembler writing to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Emit writes one specialization's listing.
func (d *Disassembler) Emit(name string, spec *specialize.Specialization) error {
	funcType, err := spec.FuncTypeable.Solve()
	if err != nil {
		return fmt.Errorf("codegen: %s: %w", name, err)
	}

	if _, err := fmt.Fprintf(d.w, "%s :: %s\n", symbolName(name, funcType), funcType.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.w, "  hash: %s\n", funcType.Hash()); err != nil {
		return err
	}

	ids := make([]int64, 0, len(spec.Typeables))
	for id := range spec.Typeables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		ty, err := spec.Typeables[id].Solve()
		if err != nil {
			if _, err := fmt.Fprintf(d.w, "  node %d: <unsolved: %v>\n", id, err); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(d.w, "  node %d: %s\n", id, ty.String()); err != nil {
			return err
		}
	}
	return nil
}

// symbolName implements the symbol naming convention:
// <callee>_F<n>[<arg-hash-1>]…[<arg-hash-n>] (the yield's hash is not
// part of the name), except the program entry point,
// which is emitted unsuffixed.
func symbolName(callee string, funcType types.Type) string {
	if callee == "main" {
		return callee
	}
	fn, ok := funcType.(*types.Function)
	if !ok {
		return fmt.Sprintf("%s_%s", callee, funcType.Hash())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "F%d", len(fn.Args))
	for _, a := range fn.Args {
		fmt.Fprintf(&b, "[%s]", a.Hash())
	}
	return fmt.Sprintf("%s_%s", callee, b.String())
}

// EmitAll runs b over every specialization in m, in callee-name order and
// then first-seen order within a callee, so output is deterministic.
func EmitAll(b Backend, m specialize.Map) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, spec := range m[name] {
			if err := b.Emit(name, spec); err != nil {
				return err
			}
		}
	}
	return nil
}
