// Package specialize implements the monomorphizing specializer: it
// memoizes, per callee, an orthogonal (pairwise non-unifiable) list of
// concrete Specializations and drives the expression annotator over a
// declaration's body the first time a given argument-type tuple is seen.
package specialize

import (
	"fmt"

	"github.com/dar-lang/darc/internal/annotate"
	"github.com/dar-lang/darc/internal/ast"
	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/env"
	"github.com/dar-lang/darc/internal/solve"
	"github.com/dar-lang/darc/internal/trace"
)

// Specialization is one monomorphized instance of a declaration: the
// node-id-keyed typeable map produced by annotating its body, and the
// function typeable the body's resolved type was checked against.
type Specialization struct {
	Typeables    map[int64]*solve.Typeable
	FuncTypeable *solve.Typeable
}

// Map holds, for every callee name, its orthogonal list of
// specializations in first-seen order.
type Map map[string][]*Specialization

// Specializer is the authority on monomorphization. It owns the
// declaration index and the resulting specialization map.
type Specializer struct {
	decls map[string]*ast.Declaration
	specs Map
	trace *trace.Recorder
}

// New returns a Specializer over decls, with an empty specialization map.
func New(decls map[string]*ast.Declaration) *Specializer {
	return &Specializer{decls: decls, specs: make(Map)}
}

// SetTrace attaches a trace recorder; every subsequent Specialize call
// records whether it reused an existing specialization or created a new
// one. A nil recorder (the default) disables tracing with no overhead.
func (s *Specializer) SetTrace(r *trace.Recorder) {
	s.trace = r
}

// Specializations returns the specialization map built so far. The
// caller must not mutate it.
func (s *Specializer) Specializations() Map {
	return s.specs
}

// AddExternal registers a pre-materialized, already-solvable function
// typeable as an existing specialization of callee, used to seed
// intrinsics before any root is specialized.
func (s *Specializer) AddExternal(callee string, funcTypeable *solve.Typeable) error {
	if !funcTypeable.IsSolvable() {
		return &solve.Error{Code: diag.TY002, Message: fmt.Sprintf("external specialization for %q is not solvable", callee)}
	}
	s.specs[callee] = append(s.specs[callee], &Specialization{
		Typeables:    make(map[int64]*solve.Typeable),
		FuncTypeable: funcTypeable,
	})
	return nil
}

// Specialize resolves a call to callee with the given (already-annotated)
// argument typeables, returning the yield typeable for the call site.
// Every argument must already be solvable; callers (the annotator) are
// responsible for that by construction, since arguments are themselves
// the product of annotating sub-expressions first.
func (s *Specializer) Specialize(callee string, args []*solve.Typeable, loc ast.Pos) (*solve.Typeable, error) {
	for _, arg := range args {
		if !arg.IsSolvable() {
			return nil, &solve.Error{Code: diag.TY002, Message: fmt.Sprintf("cannot specialize %q with an unsolved argument", callee)}
		}
	}

	decl, declared := s.decls[callee]
	if !declared && len(s.specs[callee]) == 0 {
		return nil, diag.Fatal(diag.ID001, diag.PhaseSpecialize, loc, "could not specialize undeclared function %q", callee)
	}
	if declared && len(decl.Params) != len(args) {
		return nil, diag.Fatal(diag.TY001, diag.PhaseSpecialize, loc,
			"%q takes %d argument(s), called with %d", callee, len(decl.Params), len(args))
	}

	fs := solve.NewFunctionSolver(len(args))
	funcTypeable := solve.New(fs)
	for i, arg := range args {
		if err := fs.Arg(i).Unify(arg); err != nil {
			return nil, err
		}
	}
	yield := fs.Yields()

	for _, existing := range s.specs[callee] {
		if err := existing.FuncTypeable.Unify(funcTypeable); err == nil {
			if s.trace != nil {
				ty, _ := funcTypeable.Solve()
				s.trace.Record(callee, true, ty)
			}
			return yield, nil
		}
	}
	if !declared {
		return nil, diag.Fatal(diag.ID001, diag.PhaseSpecialize, loc, "undeclared function %q: no external signature matches the call", callee)
	}

	// No existing specialization matched: append the new one before
	// recursing into the body, so a direct or mutual recursive call back
	// to this same (callee, arg-types) pair finds and unifies against
	// this in-progress entry instead of looping forever.
	spec := &Specialization{Typeables: make(map[int64]*solve.Typeable), FuncTypeable: funcTypeable}
	s.specs[callee] = append(s.specs[callee], spec)

	bodyScope := env.New()
	for i, name := range decl.Params {
		bodyScope.Bind(name, fs.Arg(i))
	}

	annotator := annotate.New(s)
	bodyTypeable, err := annotator.Annotate(decl.Body, bodyScope)
	if err != nil {
		return nil, err
	}
	spec.Typeables = annotator.Typeables

	if err := bodyTypeable.Unify(yield); err != nil {
		return nil, wrap(err, decl.Body.Position())
	}

	if s.trace != nil {
		ty, _ := funcTypeable.Solve()
		s.trace.Record(callee, false, ty)
	}

	return yield, nil
}

func wrap(err error, loc ast.Pos) error {
	if se, ok := err.(*solve.Error); ok {
		return diag.Fatal(se.Code, diag.PhaseSpecialize, loc, se.Message)
	}
	return err
}
