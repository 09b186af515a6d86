// Package driver orchestrates a single compilation: build the
// declaration index, register intrinsics, determine roots, specialize
// each one, and hand the resulting specialization map to a back end.
package driver

import (
	"context"
	"fmt"

	"github.com/dar-lang/darc/internal/ast"
	"github.com/dar-lang/darc/internal/config"
	"github.com/dar-lang/darc/internal/diag"
	"github.com/dar-lang/darc/internal/solve"
	"github.com/dar-lang/darc/internal/specialize"
	"github.com/dar-lang/darc/internal/trace"
	"github.com/dar-lang/darc/internal/types"
)

// Options configures one Compile call.
type Options struct {
	// Manifest supplies the intrinsic signature table. If nil, the
	// embedded default manifest is used.
	Manifest *config.IntrinsicManifest

	// LibraryRoots seeds library-mode root selection: for a module with
	// no main declaration, every non-polymorphic declaration named here
	// is specialized against the given concrete argument types. A
	// non-polymorphic declaration with no entry here is not specialized.
	// Ignored when the module defines main.
	LibraryRoots map[string][]types.Type

	// Trace, if non-nil, records every specialization decision made
	// during this compile.
	Trace *trace.Recorder
}

// Result is the output of a successful Compile: the specialization map
// ready for a back end, plus the declaration index it was built against.
type Result struct {
	Specializations specialize.Map
	Decls           map[string]*ast.Declaration
}

// Compile runs the full pipeline over an already-parsed module. ctx is
// sampled between root specializations, not during the core's internal
// recursion; cancellation takes effect at the next root boundary.
func Compile(ctx context.Context, mod *ast.Module, opts Options) (*Result, error) {
	decls := buildIndex(mod)
	spec := specialize.New(decls)
	if opts.Trace != nil {
		spec.SetTrace(opts.Trace)
	}

	manifest := opts.Manifest
	if manifest == nil {
		m, err := config.Default()
		if err != nil {
			return nil, err
		}
		manifest = m
	}
	if err := registerIntrinsics(spec, manifest); err != nil {
		return nil, err
	}

	roots, err := determineRoots(mod, decls, opts.LibraryRoots)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		args := make([]*solve.Typeable, len(root.ArgTypes))
		for i, t := range root.ArgTypes {
			args[i] = solve.FromType(t)
		}

		yield, err := spec.Specialize(root.Name, args, root.Decl.Position())
		if err != nil {
			return nil, err
		}

		if root.ReturnType != nil {
			required := solve.FromType(root.ReturnType)
			if err := yield.Unify(required); err != nil {
				if se, ok := err.(*solve.Error); ok {
					return nil, diag.Fatal(se.Code, diag.PhaseDriver, root.Decl.Position(),
						"root %q: %s", root.Name, se.Message)
				}
				return nil, err
			}
		}

		if opts.Trace != nil {
			solved, solveErr := yield.Solve()
			opts.Trace.RecordRoot(root.Name, solved, solveErr)
		}
	}

	return &Result{Specializations: spec.Specializations(), Decls: decls}, nil
}

func buildIndex(mod *ast.Module) map[string]*ast.Declaration {
	idx := make(map[string]*ast.Declaration, len(mod.Decls))
	for _, d := range mod.Decls {
		idx[d.Name] = d
	}
	return idx
}

func registerIntrinsics(spec *specialize.Specializer, manifest *config.IntrinsicManifest) error {
	for _, intr := range manifest.Intrinsics {
		for _, sig := range intr.Signatures {
			fs := solve.NewFunctionSolver(len(sig.Args))
			for i, argKind := range sig.Args {
				kind, err := config.ParseKind(argKind)
				if err != nil {
					return fmt.Errorf("driver: intrinsic %q: %w", intr.Name, err)
				}
				if err := fs.Arg(i).Unify(solve.Primitive(kind)); err != nil {
					return fmt.Errorf("driver: intrinsic %q: %w", intr.Name, err)
				}
			}
			yieldKind, err := config.ParseKind(sig.Yield)
			if err != nil {
				return fmt.Errorf("driver: intrinsic %q: %w", intr.Name, err)
			}
			if err := fs.Yields().Unify(solve.Primitive(yieldKind)); err != nil {
				return fmt.Errorf("driver: intrinsic %q: %w", intr.Name, err)
			}
			if err := spec.AddExternal(intr.Name, solve.New(fs)); err != nil {
				return fmt.Errorf("driver: intrinsic %q: %w", intr.Name, err)
			}
		}
	}
	return nil
}

// root is one declaration selected to seed specialization.
type root struct {
	Name       string
	Decl       *ast.Declaration
	ArgTypes   []types.Type
	ReturnType types.Type // nil means no required return type to check
}

// determineRoots implements §4.5 step 3 and the library-mode Open
// Question resolution: program mode (a main declaration present) seeds
// exactly one zero-arg root required to yield Int64; library mode seeds
// one root per non-polymorphic declaration for which the caller supplied
// concrete argument types, in declaration order.
func determineRoots(mod *ast.Module, decls map[string]*ast.Declaration, libraryRoots map[string][]types.Type) ([]root, error) {
	if main, ok := decls["main"]; ok {
		if len(main.Params) != 0 {
			return nil, diag.Fatal(diag.TY001, diag.PhaseDriver, main.Position(),
				"main must take zero arguments, got %d", len(main.Params))
		}
		return []root{{
			Name:       "main",
			Decl:       main,
			ArgTypes:   nil,
			ReturnType: &types.Primitive{Kind: types.Int64},
		}}, nil
	}

	var roots []root
	for _, decl := range mod.Decls {
		if decl.Polymorphic {
			continue
		}
		argTypes, ok := libraryRoots[decl.Name]
		if !ok {
			continue
		}
		if len(argTypes) != len(decl.Params) {
			return nil, diag.Fatal(diag.TY001, diag.PhaseDriver, decl.Position(),
				"library root %q expects %d arguments, got %d supplied types", decl.Name, len(decl.Params), len(argTypes))
		}
		roots = append(roots, root{Name: decl.Name, Decl: decl, ArgTypes: argTypes})
	}
	return roots, nil
}
