// Package annotate walks expressions and produces a Typeable for every
// node, recording each into a per-specialization map keyed by node id.
package annotate

import (
	"github.com/dar-lang/darc/internal/ast"
	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/env"
	"github.com/dar-lang/darc/internal/solve"
	"github.com/dar-lang/darc/internal/types"
)

// Specializer is the narrow slice of the specializer the annotator needs
// to resolve an Invocation. Declared here, not imported from the
// specialize package, to avoid the annotator/specializer import cycle —
// the specialize package imports this one and builds an *Annotator for
// every declaration body it walks.
type Specializer interface {
	Specialize(callee string, args []*solve.Typeable, loc ast.Pos) (*solve.Typeable, error)
}

// Annotator walks expression trees and drives the specializer on every
// Invocation it encounters.
type Annotator struct {
	Specializer Specializer
	Typeables   map[int64]*solve.Typeable
}

// New returns an Annotator backed by spec.
func New(spec Specializer) *Annotator {
	return &Annotator{Specializer: spec, Typeables: make(map[int64]*solve.Typeable)}
}

// Annotate visits expr, records its Typeable under expr's node id, and
// returns it.
func (a *Annotator) Annotate(expr ast.Expr, scope *env.Env) (*solve.Typeable, error) {
	t, err := a.visit(expr, scope)
	if err != nil {
		return nil, err
	}
	a.Typeables[expr.ID()] = t
	return t, nil
}

func (a *Annotator) visit(expr ast.Expr, scope *env.Env) (*solve.Typeable, error) {
	switch n := expr.(type) {
	case *ast.IdExpression:
		return a.visitID(n, scope)
	case *ast.IntegralLiteral:
		return solve.Primitive(types.Int64), nil
	case *ast.BooleanLiteral:
		return solve.Primitive(types.Bool), nil
	case *ast.StringLiteral:
		return solve.Primitive(types.String), nil
	case *ast.Invocation:
		return a.visitInvocation(n, scope)
	case *ast.Guard:
		return a.visitGuard(n, scope)
	case *ast.Bind:
		return a.visitBind(n, scope)
	case *ast.Tuple:
		return a.visitTuple(n, scope)
	default:
		return nil, diag.Fatal(diag.TY003, diag.PhaseAnnotate, expr.Position(), "unimplemented expression kind %T", expr)
	}
}

func (a *Annotator) visitID(n *ast.IdExpression, scope *env.Env) (*solve.Typeable, error) {
	bound, ok := scope.Lookup(n.Name)
	if !ok {
		return nil, diag.Fatal(diag.ID001, diag.PhaseAnnotate, n.Position(), "undeclared identifier %q", n.Name)
	}
	fresh := solve.NewUnconstrained()
	if err := fresh.Unify(bound); err != nil {
		return nil, wrap(err, n.Position())
	}
	return fresh, nil
}

func (a *Annotator) visitInvocation(n *ast.Invocation, scope *env.Env) (*solve.Typeable, error) {
	args := make([]*solve.Typeable, len(n.Args))
	for i, arg := range n.Args {
		t, err := a.Annotate(arg, scope)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	yield, err := a.Specializer.Specialize(n.Callee, args, n.Position())
	if err != nil {
		return nil, wrap(err, n.Position())
	}
	return yield, nil
}

// visitGuard anneals each case's value (and, for recording purposes
// only, each condition — the boolean constraint on a condition is left
// to whatever intrinsic produced it, per the language's equality/is
// callees) and attempts to unify every case's typeable, plus the
// wildcard's, into one equivalence class. Pairs that cannot unify are
// partitioned into maximal mutually-unifiable groups, first-seen order;
// more than one surviving group becomes a DisjointUnion.
func (a *Annotator) visitGuard(n *ast.Guard, scope *env.Env) (*solve.Typeable, error) {
	values := make([]*solve.Typeable, 0, len(n.Cases)+1)
	for _, c := range n.Cases {
		if _, err := a.Annotate(c.Condition, scope); err != nil {
			return nil, err
		}
		vt, err := a.Annotate(c.Value, scope)
		if err != nil {
			return nil, err
		}
		values = append(values, vt)
	}
	wt, err := a.Annotate(n.Wildcard, scope)
	if err != nil {
		return nil, err
	}
	values = append(values, wt)

	groups := make([]*solve.Typeable, 0, len(values))
	for _, t := range values {
		placed := false
		for _, rep := range groups {
			if err := rep.Unify(t); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, t)
		}
	}

	if len(groups) == 1 {
		return groups[0], nil
	}
	return solve.Disjoint(groups...), nil
}

func (a *Annotator) visitBind(n *ast.Bind, scope *env.Env) (*solve.Typeable, error) {
	vt, err := a.Annotate(n.Value, scope)
	if err != nil {
		return nil, err
	}
	inner := scope.Child()
	inner.Bind(n.Identifier, vt)
	return a.Annotate(n.Body, inner)
}

func (a *Annotator) visitTuple(n *ast.Tuple, scope *env.Env) (*solve.Typeable, error) {
	ts := solve.NewTupleSolver(len(n.Items))
	typeable := solve.New(ts)
	for i, item := range n.Items {
		if item.Tag != "" {
			if err := ts.TagItem(i, item.Tag); err != nil {
				return nil, wrap(err, n.Position())
			}
		}
		vt, err := a.Annotate(item.Value, scope)
		if err != nil {
			return nil, err
		}
		if err := ts.Item(i).Unify(vt); err != nil {
			return nil, wrap(err, n.Position())
		}
	}
	return typeable, nil
}

// wrap converts a bare *solve.Error into a located *diag.Error. Errors
// already carrying a location (bubbled up from a nested Annotate or
// Specialize call) pass through unchanged.
func wrap(err error, loc ast.Pos) error {
	if se, ok := err.(*solve.Error); ok {
		return diag.Fatal(se.Code, diag.PhaseAnnotate, loc, se.Message)
	}
	return err
}
