package milp

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Model is the root description of a minimisation MILP: non-negative
// variables with objective costs and the permanent constraints.
//
// A Model is editable until the first Snapshot is taken from it; after that
// it is shared read-only by every node of a search and edits fail with
// ErrModelFrozen.
type Model struct {
	vars   []Variable
	cons   []Constraint
	frozen atomic.Bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// AddVariable appends a variable and returns its id.
//
// Errors: ErrModelFrozen, ErrInvalidCoefficient (non-finite cost).
func (m *Model) AddVariable(name string, kind VarKind, cost float64) (VarID, error) {
	if m.frozen.Load() {
		return 0, ErrModelFrozen
	}
	if !finite(cost) {
		return 0, fmt.Errorf("variable %q cost: %w", name, ErrInvalidCoefficient)
	}
	m.vars = append(m.vars, Variable{Name: name, Kind: kind, Cost: cost})

	return VarID(len(m.vars) - 1), nil
}

// AddConstraint appends a permanent constraint. Terms are copied.
//
// Errors: ErrModelFrozen, ErrUnknownVariable, ErrInvalidCoefficient.
func (m *Model) AddConstraint(c Constraint) error {
	if m.frozen.Load() {
		return ErrModelFrozen
	}
	if err := m.validateConstraint(c); err != nil {
		return err
	}
	c.Terms = append([]Term(nil), c.Terms...)
	m.cons = append(m.cons, c)

	return nil
}

func (m *Model) validateConstraint(c Constraint) error {
	if !finite(c.RHS) {
		return fmt.Errorf("constraint %q rhs: %w", c.Name, ErrInvalidCoefficient)
	}
	for _, t := range c.Terms {
		if !m.has(t.Var) {
			return fmt.Errorf("constraint %q var %d: %w", c.Name, t.Var, ErrUnknownVariable)
		}
		if !finite(t.Coef) {
			return fmt.Errorf("constraint %q var %d: %w", c.Name, t.Var, ErrInvalidCoefficient)
		}
	}

	return nil
}

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int { return len(m.vars) }

// NumConstraints returns the number of permanent constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Variable returns the variable with the given id.
func (m *Model) Variable(id VarID) (Variable, error) {
	if !m.has(id) {
		return Variable{}, ErrUnknownVariable
	}

	return m.vars[id], nil
}

// Variables returns a copy of all variables in id order.
func (m *Model) Variables() []Variable {
	return append([]Variable(nil), m.vars...)
}

// Constraints returns a copy of the permanent constraints.
func (m *Model) Constraints() []Constraint {
	return append([]Constraint(nil), m.cons...)
}

// Objective evaluates Σ cost·value.
func (m *Model) Objective(values Values) float64 {
	var sum float64
	for i, v := range m.vars {
		sum += v.Cost * values.At(VarID(i))
	}

	return sum
}

// Feasible reports whether values satisfy non-negativity and every permanent
// constraint within tol.
func (m *Model) Feasible(values Values, tol float64) bool {
	if len(values) != len(m.vars) {
		return false
	}
	for _, x := range values {
		if x < -tol {
			return false
		}
	}
	for _, c := range m.cons {
		if !c.Satisfied(values, tol) {
			return false
		}
	}

	return true
}

// Frozen reports whether a snapshot has been taken.
func (m *Model) Frozen() bool { return m.frozen.Load() }

func (m *Model) has(id VarID) bool { return id >= 0 && int(id) < len(m.vars) }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
