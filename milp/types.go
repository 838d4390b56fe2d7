package milp

import (
	"context"
	"errors"
)

// Sentinel errors. Every message is prefixed with "milp: " so wrapped chains
// stay greppable; callers match with errors.Is.
var (
	// ErrNoIncumbent is returned when the whole tree was pruned without ever
	// accepting an integer-feasible solution.
	ErrNoIncumbent = errors.New("milp: no integer-feasible solution")

	// ErrNumericalInstability marks relaxation values that cannot be judged
	// against Tolerance (NaN, ±Inf, or clearly negative for a non-negative variable).
	ErrNumericalInstability = errors.New("milp: numerically unstable relaxation")

	// ErrSolver wraps a failure of the relaxation collaborator that is not a
	// legitimate infeasibility. It aborts the search.
	ErrSolver = errors.New("milp: relaxation solver failure")

	// ErrTimeLimit is returned when Options.TimeLimit elapsed before the tree
	// was exhausted.
	ErrTimeLimit = errors.New("milp: time limit exceeded")

	// ErrUnknownVariable is returned when a VarID is outside the model.
	ErrUnknownVariable = errors.New("milp: unknown variable")

	// ErrNotInteger is returned when a bound targets a continuous variable.
	ErrNotInteger = errors.New("milp: variable is not integer")

	// ErrInvalidCoefficient is returned for NaN or ±Inf costs, coefficients or right-hand sides.
	ErrInvalidCoefficient = errors.New("milp: invalid coefficient")

	// ErrModelFrozen is returned when a model is edited after a snapshot was taken.
	ErrModelFrozen = errors.New("milp: model is frozen")

	// ErrEmptyModel is returned when a model without variables is solved.
	ErrEmptyModel = errors.New("milp: model has no variables")

	// ErrNilRelaxer is returned when Solve is called without a relaxation solver.
	ErrNilRelaxer = errors.New("milp: nil relaxer")

	// ErrInvalidSeed is returned when Options.Seed is not integer-feasible for the model.
	ErrInvalidSeed = errors.New("milp: seed is not integer-feasible")

	// ErrInvalidOptions is returned for negative Workers or TimeLimit, or an unknown rule.
	ErrInvalidOptions = errors.New("milp: invalid options")
)

// VarID is a dense variable index, assigned in insertion order.
type VarID int

// VarKind tells whether the search must drive a variable to an integer.
type VarKind uint8

const (
	// Continuous variables are never branched on.
	Continuous VarKind = iota
	// Integer variables must end within Tolerance of an integer.
	Integer
)

func (k VarKind) String() string {
	if k == Integer {
		return "integer"
	}

	return "continuous"
}

// Variable is a non-negative decision variable with its objective cost.
type Variable struct {
	Name string
	Kind VarKind
	Cost float64
}

// Sense is the relation of a linear constraint.
type Sense uint8

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "=="
	}
}

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  VarID
	Coef float64
}

// Constraint is Σ Terms (Sense) RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// LHS evaluates the left-hand side at values.
func (c Constraint) LHS(values Values) float64 {
	var sum float64
	for _, t := range c.Terms {
		sum += t.Coef * values.At(t.Var)
	}

	return sum
}

// Satisfied reports whether values meet the constraint within tol.
func (c Constraint) Satisfied(values Values, tol float64) bool {
	lhs := c.LHS(values)
	switch c.Sense {
	case LessEq:
		return lhs <= c.RHS+tol
	case GreaterEq:
		return lhs >= c.RHS-tol
	default:
		return lhs >= c.RHS-tol && lhs <= c.RHS+tol
	}
}

// Values maps every VarID of a model to a real value (Values[id]).
type Values []float64

// At returns the value of id, or 0 when id is out of range.
func (v Values) At(id VarID) float64 {
	if id < 0 || int(id) >= len(v) {
		return 0
	}

	return v[id]
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	return append(Values(nil), v...)
}

// Solution is a point together with its objective value.
type Solution struct {
	Values    Values
	Objective float64
}

// Status is the outcome class of a relaxation.
type Status uint8

const (
	StatusOptimal Status = iota
	StatusInfeasible
)

func (s Status) String() string {
	if s == StatusInfeasible {
		return "infeasible"
	}

	return "optimal"
}

// Relaxation is the answer of the LP collaborator for one snapshot.
// Values and Objective are meaningful only when Status == StatusOptimal.
type Relaxation struct {
	Status    Status
	Values    Values
	Objective float64
}

// Relaxer solves the continuous relaxation of a snapshot.
//
// Contract:
//   - Infeasibility is reported as StatusInfeasible with a nil error.
//   - A non-nil error is a solver failure; the search aborts on it.
//   - The result must be deterministic for a given snapshot.
type Relaxer interface {
	Relax(ctx context.Context, s *Snapshot) (Relaxation, error)
}

// RelaxerFunc adapts a function to the Relaxer interface.
type RelaxerFunc func(ctx context.Context, s *Snapshot) (Relaxation, error)

// Relax calls f(ctx, s).
func (f RelaxerFunc) Relax(ctx context.Context, s *Snapshot) (Relaxation, error) {
	return f(ctx, s)
}
