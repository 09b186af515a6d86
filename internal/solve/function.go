package solve

import "github.com/dar-lang/darc/internal/types"

// FunctionSolver constrains a typeable to a function of fixed arity. Its
// argument and yield slots are themselves typeables, unified structurally
// against any function it is merged with.
type FunctionSolver struct {
	args   []*Typeable
	yields *Typeable
}

// NewFunctionSolver allocates a function solver of the given arity, with
// fresh unconstrained typeables for every argument slot and the yield.
func NewFunctionSolver(arity int) *FunctionSolver {
	args := make([]*Typeable, arity)
	for i := range args {
		args[i] = NewUnconstrained()
	}
	return &FunctionSolver{args: args, yields: NewUnconstrained()}
}

// Arg returns the typeable for the i-th argument slot.
func (s *FunctionSolver) Arg(i int) *Typeable { return s.args[i] }

// Arity reports the number of argument slots.
func (s *FunctionSolver) Arity() int { return len(s.args) }

// Yields returns the typeable for the function's result.
func (s *FunctionSolver) Yields() *Typeable { return s.yields }

func (s *FunctionSolver) merge(other Solver) error {
	o, ok := other.(*FunctionSolver)
	if !ok {
		return incompatible("cannot unify a function type with a non-function type")
	}
	if len(s.args) != len(o.args) {
		return incompatible("cannot unify functions of arity %d and %d", len(s.args), len(o.args))
	}
	for i := range s.args {
		if err := s.args[i].Unify(o.args[i]); err != nil {
			return err
		}
	}
	return s.yields.Unify(o.yields)
}

func (s *FunctionSolver) solve() (types.Type, error) {
	argTypes := make([]types.Type, len(s.args))
	for i, a := range s.args {
		ty, err := a.Solve()
		if err != nil {
			return nil, err
		}
		argTypes[i] = ty
	}
	yieldType, err := s.yields.Solve()
	if err != nil {
		return nil, err
	}
	return types.NewFunction(argTypes, yieldType), nil
}

// Function is a convenience constructor for a root Typeable constrained
// to a fresh function solver of the given arity.
func Function(arity int) *Typeable {
	return New(NewFunctionSolver(arity))
}
