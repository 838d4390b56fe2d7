package relax

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/0just0/optimization-course/milp"
)

// Simplex relaxes snapshots with gonum's dense simplex. It holds no per-call
// state and is safe for concurrent use.
type Simplex struct {
	tol float64
}

var _ milp.Relaxer = (*Simplex)(nil)

// NewSimplex returns a Simplex relaxer.
func NewSimplex(opts ...Option) *Simplex {
	o := gatherOptions(opts)

	return &Simplex{tol: o.tol}
}

// Relax solves the continuous relaxation of snap.
//
// lp.ErrInfeasible becomes StatusInfeasible with a nil error; every other
// simplex failure is returned wrapped in milp.ErrSolver.
//
// Equality rows must be linearly independent once exact repeats are
// dropped; otherwise gonum reports a singular A and Relax fails.
func (s *Simplex) Relax(ctx context.Context, snap *milp.Snapshot) (rel milp.Relaxation, err error) {
	if err = ctx.Err(); err != nil {
		return milp.Relaxation{}, err
	}

	sf, err := toStandardForm(snap)
	if err != nil {
		return milp.Relaxation{}, err
	}
	if sf.infeasible {
		return milp.Relaxation{Status: milp.StatusInfeasible}, nil
	}

	values := make(milp.Values, snap.Model().NumVariables())
	if sf.a == nil {
		// Nothing constrains the kept columns: every variable rests at 0.
		return milp.Relaxation{Status: milp.StatusOptimal, Values: values}, nil
	}

	// gonum panics on shape errors; the form is built here, so a panic is a
	// bug in the conversion and is reported as a solver failure.
	defer func() {
		if r := recover(); r != nil {
			rel, err = milp.Relaxation{}, fmt.Errorf("%w: simplex panic: %v", milp.ErrSolver, r)
		}
	}()

	opt, x, err := lp.Simplex(sf.c, sf.a, sf.b, s.tol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return milp.Relaxation{Status: milp.StatusInfeasible}, nil
	case err != nil:
		return milp.Relaxation{}, fmt.Errorf("%w: %w", milp.ErrSolver, err)
	}

	for k, id := range sf.cols {
		v := x[k]
		if v < 0 && v > -milp.Tolerance {
			v = 0
		}
		values[id] = v
	}

	return milp.Relaxation{Status: milp.StatusOptimal, Values: values, Objective: opt}, nil
}
