package relax

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/0just0/optimization-course/milp"
)

func newModel(t *testing.T, costs ...float64) *milp.Model {
	t.Helper()
	m := milp.NewModel()
	for _, c := range costs {
		_, err := m.AddVariable("v", milp.Integer, c)
		require.NoError(t, err)
	}

	return m
}

func addCons(t *testing.T, m *milp.Model, cs ...milp.Constraint) {
	t.Helper()
	for _, c := range cs {
		require.NoError(t, m.AddConstraint(c))
	}
}

func TestStandardForm_SlacksAndSigns(t *testing.T) {
	m := newModel(t, -5, -4)
	addCons(t, m,
		milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: 6}, {Var: 1, Coef: 4}}, Sense: milp.LessEq, RHS: 24},
		milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: 1}, {Var: 1, Coef: -1}}, Sense: milp.GreaterEq, RHS: -2},
		milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: 1}, {Var: 1, Coef: 1}}, Sense: milp.Equal, RHS: 3},
	)

	sf, err := toStandardForm(milp.NewSnapshot(m))
	require.NoError(t, err)
	require.False(t, sf.infeasible)
	require.Equal(t, []milp.VarID{0, 1}, sf.cols)
	require.Equal(t, []float64{-5, -4, 0, 0}, sf.c)
	require.Equal(t, []float64{24, 2, 3}, sf.b)

	want := mat.NewDense(3, 4, []float64{
		6, 4, 1, 0,
		-1, 1, 0, 1, // x − y − s ≥ −2, negated
		1, 1, 0, 0,
	})
	require.True(t, mat.Equal(want, sf.a), "got\n%v", mat.Formatted(sf.a))
}

func TestStandardForm_BoundsBecomeRows(t *testing.T) {
	m := newModel(t, 1)
	s, err := milp.NewSnapshot(m).CloneWithBound(0, milp.Lower, 2)
	require.NoError(t, err)
	s, err = s.CloneWithBound(0, milp.Upper, 5)
	require.NoError(t, err)

	sf, err := toStandardForm(s)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5}, sf.b)
	require.True(t, mat.Equal(mat.NewDense(2, 3, []float64{
		1, -1, 0,
		1, 0, 1,
	}), sf.a))
}

func TestStandardForm_MergesDuplicateTerms(t *testing.T) {
	m := newModel(t, 1)
	addCons(t, m, milp.Constraint{
		Terms: []milp.Term{{Var: 0, Coef: 1}, {Var: 0, Coef: 1}}, Sense: milp.LessEq, RHS: 4,
	})

	sf, err := toStandardForm(milp.NewSnapshot(m))
	require.NoError(t, err)
	require.Equal(t, 2.0, sf.a.At(0, 0))
}

func TestStandardForm_RepeatedEqualities(t *testing.T) {
	row := func(a, b, rhs float64) milp.Constraint {
		return milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: a}, {Var: 1, Coef: b}}, Sense: milp.Equal, RHS: rhs}
	}
	cases := []struct {
		name       string
		cons       []milp.Constraint
		rows       int
		infeasible bool
	}{
		{"repeated", []milp.Constraint{row(1, 1, 2), row(1, 1, 2)}, 1, false},
		{"negated", []milp.Constraint{row(1, 1, 2), row(-1, -1, -2)}, 1, false},
		{"scaled is kept", []milp.Constraint{row(1, 1, 2), row(2, 2, 4)}, 2, false},
		{"conflicting", []milp.Constraint{row(1, 1, 2), row(1, 1, 3)}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newModel(t, -1, 0)
			addCons(t, m, tc.cons...)

			sf, err := toStandardForm(milp.NewSnapshot(m))
			require.NoError(t, err)
			require.Equal(t, tc.infeasible, sf.infeasible)
			require.Len(t, sf.b, tc.rows)
		})
	}
}

func TestStandardForm_ZeroRows(t *testing.T) {
	zero := []milp.Term{{Var: 0, Coef: 0}}
	cases := []struct {
		name       string
		c          milp.Constraint
		infeasible bool
	}{
		{"le holds", milp.Constraint{Terms: zero, Sense: milp.LessEq, RHS: 1}, false},
		{"ge fails", milp.Constraint{Terms: zero, Sense: milp.GreaterEq, RHS: 1}, true},
		{"eq holds", milp.Constraint{Terms: zero, Sense: milp.Equal, RHS: 0}, false},
		{"eq fails", milp.Constraint{Terms: zero, Sense: milp.Equal, RHS: -3}, true},
		{"cancelling terms", milp.Constraint{
			Terms: []milp.Term{{Var: 0, Coef: 2}, {Var: 0, Coef: -2}}, Sense: milp.LessEq, RHS: -1,
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newModel(t, 1)
			addCons(t, m, tc.c)

			sf, err := toStandardForm(milp.NewSnapshot(m))
			require.NoError(t, err)
			require.Equal(t, tc.infeasible, sf.infeasible)
			if !tc.infeasible {
				require.Nil(t, sf.a, "dropped row leaves nothing to solve")
				require.Empty(t, sf.cols)
			}
		})
	}
}

func TestStandardForm_UnusedColumns(t *testing.T) {
	m := newModel(t, 1, 3)
	addCons(t, m, milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: 1}}, Sense: milp.LessEq, RHS: 4})

	sf, err := toStandardForm(milp.NewSnapshot(m))
	require.NoError(t, err)
	require.Equal(t, []milp.VarID{0}, sf.cols)

	m = newModel(t, 1, -3)
	addCons(t, m, milp.Constraint{Terms: []milp.Term{{Var: 0, Coef: 1}}, Sense: milp.LessEq, RHS: 4})
	_, err = toStandardForm(milp.NewSnapshot(m))
	require.ErrorIs(t, err, milp.ErrSolver)
	require.ErrorIs(t, err, lp.ErrUnbounded)
}

func TestWithTolerance(t *testing.T) {
	require.Equal(t, DefaultTolerance, gatherOptions(nil).tol)
	require.Equal(t, 1e-8, gatherOptions([]Option{nil, WithTolerance(1e-8)}).tol)
	require.PanicsWithValue(t, panicToleranceInvalid, func() { WithTolerance(0) })
	require.Panics(t, func() { WithTolerance(-1) })
}
