// Package relax: conversion of a snapshot into simplex standard form.
//
// gonum's lp.Simplex wants min cᵀx s.t. A·x = b, x ≥ 0. Model constraints
// and snapshot bounds are merged into dense rows, inequalities gain one slack
// column each, and rows with a negative right-hand side are negated.
//
// Rationale (succinct):
//  1. Rows with no variables are decided here: dropped when they hold,
//     reported as infeasible when they do not.
//  2. Columns for variables that appear in no row are removed; they sit at
//     zero, or make the relaxation unbounded when their cost is negative.
//  3. Exact repeats of an equality row (up to sign) are removed so A keeps
//     full row rank; conflicting repeats mean the form is infeasible.
//
// Complexity:
//   - O(rows · (vars + slacks)) time and memory for the dense A.
//   - O(rows² · vars) for the repeated-equality scan.

package relax

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/0just0/optimization-course/milp"
)

// feasTol decides whether an all-zero row 0 (sense) rhs holds.
const feasTol = 1e-9

// denseRow is one constraint with its terms merged into a dense coefficient row.
type denseRow struct {
	coef  []float64
	sense milp.Sense
	rhs   float64
}

// standardForm is min cᵀx s.t. A·x = b, x ≥ 0, with b ≥ 0.
// Columns 0..len(cols)-1 are model variables (cols[k] is the VarID); the
// rest are one slack per inequality row.
type standardForm struct {
	c    []float64
	a    *mat.Dense
	b    []float64
	cols []milp.VarID

	// infeasible is set when a row without variables cannot hold.
	infeasible bool
}

// toStandardForm converts the constraints of snap:
//   - Σ a·x ≤ r  →  Σ a·x + s = r
//   - Σ a·x ≥ r  →  Σ a·x − s = r
//   - Σ a·x = r  →  unchanged
//
// and then negates every row with r < 0. Rows without variables are checked
// and dropped; variables that appear in no row are dropped (they sit at 0,
// or make the problem unbounded when their cost is negative).
//
// An equality row that repeats an earlier one, up to sign, is dropped; one
// that repeats it with a different rhs marks the form infeasible. Other
// linearly dependent equality rows leave A singular, and gonum rejects them.
func toStandardForm(snap *milp.Snapshot) (standardForm, error) {
	var (
		model = snap.Model()
		vars  = model.Variables()
		n     = len(vars)
		rows  []denseRow
		used  = make([]bool, n)
		sf    standardForm
	)

	for _, c := range snap.Constraints() {
		row := denseRow{coef: make([]float64, n), sense: c.Sense, rhs: c.RHS}
		for _, t := range c.Terms {
			row.coef[t.Var] += t.Coef
		}
		empty := true
		for j, a := range row.coef {
			if a != 0 {
				empty = false
				used[j] = true
			}
		}
		if empty {
			if !zeroRowHolds(row) {
				sf.infeasible = true

				return sf, nil
			}
			continue
		}
		if repeat, conflict := repeatsEquality(rows, row); repeat {
			if conflict {
				sf.infeasible = true

				return sf, nil
			}
			continue
		}
		rows = append(rows, row)
	}

	for j, v := range vars {
		if used[j] {
			sf.cols = append(sf.cols, milp.VarID(j))
			continue
		}
		if v.Cost < 0 {
			return sf, fmt.Errorf("%w: %s is unconstrained with negative cost: %w",
				milp.ErrSolver, v.Name, lp.ErrUnbounded)
		}
	}
	if len(rows) == 0 {
		return sf, nil
	}

	slacks := 0
	for _, r := range rows {
		if r.sense != milp.Equal {
			slacks++
		}
	}
	width := len(sf.cols) + slacks
	if len(rows) > width {
		return sf, fmt.Errorf("%w: %d rows exceed %d columns", milp.ErrSolver, len(rows), width)
	}

	sf.c = make([]float64, width)
	for k, id := range sf.cols {
		sf.c[k] = vars[id].Cost
	}
	sf.a = mat.NewDense(len(rows), width, nil)
	sf.b = make([]float64, len(rows))

	s := len(sf.cols)
	for i, r := range rows {
		for k, id := range sf.cols {
			sf.a.Set(i, k, r.coef[id])
		}
		switch r.sense {
		case milp.LessEq:
			sf.a.Set(i, s, 1)
			s++
		case milp.GreaterEq:
			sf.a.Set(i, s, -1)
			s++
		}
		sf.b[i] = r.rhs
		if r.rhs < 0 {
			negateRow(sf.a, i)
			sf.b[i] = -r.rhs
		}
	}

	return sf, nil
}

// repeatsEquality reports whether the equality row r has the same
// coefficients as a kept equality row, or their negation, and whether the
// two right-hand sides then disagree.
func repeatsEquality(kept []denseRow, r denseRow) (repeat, conflict bool) {
	if r.sense != milp.Equal {
		return false, false
	}
	for _, k := range kept {
		if k.sense != milp.Equal {
			continue
		}
		for _, sign := range [2]float64{1, -1} {
			if sameCoefs(k.coef, r.coef, sign) {
				return true, math.Abs(k.rhs-sign*r.rhs) > feasTol
			}
		}
	}

	return false, false
}

func sameCoefs(a, b []float64, sign float64) bool {
	for j := range a {
		if a[j] != sign*b[j] {
			return false
		}
	}

	return true
}

func zeroRowHolds(r denseRow) bool {
	switch r.sense {
	case milp.LessEq:
		return 0 <= r.rhs+feasTol
	case milp.GreaterEq:
		return 0 >= r.rhs-feasTol
	default:
		return r.rhs >= -feasTol && r.rhs <= feasTol
	}
}

func negateRow(a *mat.Dense, i int) {
	_, cols := a.Dims()
	for j := 0; j < cols; j++ {
		a.Set(i, j, -a.At(i, j))
	}
}
