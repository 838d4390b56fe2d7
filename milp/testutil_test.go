// Package milp_test holds the shared fixtures of the milp tests: two tiny
// models with hand-checked search trees and a scripted relaxer.
package milp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0just0/optimization-course/milp"
	"github.com/0just0/optimization-course/relax"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	// epsObj compares objectives coming out of the simplex.
	epsObj = 1e-6

	// repeatRuns is how often determinism tests re-run the same search.
	repeatRuns = 5
)

// -----------------------------------------------------------------------------
// Models
// -----------------------------------------------------------------------------

// textbook returns
//
//	min −5x − 4y  s.t.  6x + 4y ≤ 24,  x + 2y ≤ 6,  x, y ∈ ℤ≥0
//
// whose tree is fully known:
//
//	root      (3, 1.5)    −21       branch y, "y ≤ 1" first
//	y≤1       (3.33, 1)   −20.67    branch x, "x ≤ 3" first
//	y≤1 x≤3   (3, 1)      −19       accepted
//	y≤1 x≥4   (4, 0)      −20       accepted
//	y≥2       (2, 2)      −18       pruned, not improving
func textbook(t testing.TB) (m *milp.Model, x, y milp.VarID) {
	t.Helper()
	m = milp.NewModel()
	x = mustVar(t, m, "x", milp.Integer, -5)
	y = mustVar(t, m, "y", milp.Integer, -4)
	require.NoError(t, m.AddConstraint(milp.Constraint{
		Name: "c1", Terms: []milp.Term{{Var: x, Coef: 6}, {Var: y, Coef: 4}}, Sense: milp.LessEq, RHS: 24,
	}))
	require.NoError(t, m.AddConstraint(milp.Constraint{
		Name: "c2", Terms: []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, Sense: milp.LessEq, RHS: 6,
	}))

	return m, x, y
}

// halfOnly returns 2x = 1 with x integer: the root relaxes to 0.5 and both
// children are infeasible.
func halfOnly(t testing.TB) *milp.Model {
	t.Helper()
	m := milp.NewModel()
	x := mustVar(t, m, "x", milp.Integer, 1)
	require.NoError(t, m.AddConstraint(milp.Constraint{
		Name: "half", Terms: []milp.Term{{Var: x, Coef: 2}}, Sense: milp.Equal, RHS: 1,
	}))

	return m
}

// pair returns two unconstrained integer variables with unit cost.
func pair(t testing.TB) *milp.Model {
	t.Helper()
	m := milp.NewModel()
	mustVar(t, m, "a", milp.Integer, 1)
	mustVar(t, m, "b", milp.Integer, 1)

	return m
}

func mustVar(t testing.TB, m *milp.Model, name string, kind milp.VarKind, cost float64) milp.VarID {
	t.Helper()
	id, err := m.AddVariable(name, kind, cost)
	require.NoError(t, err)

	return id
}

// -----------------------------------------------------------------------------
// Relaxers
// -----------------------------------------------------------------------------

// fixed always answers rel.
func fixed(rel milp.Relaxation) milp.Relaxer {
	return milp.RelaxerFunc(func(context.Context, *milp.Snapshot) (milp.Relaxation, error) {
		return rel, nil
	})
}

// simplex is the production relaxer used by end-to-end tests.
func simplex() milp.Relaxer { return relax.NewSimplex() }

// -----------------------------------------------------------------------------
// Event capture
// -----------------------------------------------------------------------------

// events collects the events of a sequential run.
type events struct {
	branches   []milp.Branch
	incumbents []float64
	verdicts   []milp.Verdict
}

func (e *events) hook(ev milp.Event) {
	switch ev.Kind {
	case milp.EventBranch:
		e.branches = append(e.branches, ev.Branch)
	case milp.EventIncumbent:
		e.incumbents = append(e.incumbents, ev.Objective)
	case milp.EventSolved:
		e.verdicts = append(e.verdicts, ev.Verdict)
	}
}
