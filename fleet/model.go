package fleet

import (
	"fmt"
	"math"

	"github.com/0just0/optimization-course/milp"
)

// Layout maps the instance onto model variables.
type Layout struct {
	Trips [NumPlaneTypes][NumRoutes]milp.VarID
	Empty [NumRoutes]milp.VarID
}

// Build encodes in as a MILP:
//
//	minimise   Σ_ij cost_ij·trips_ij·x_ij + Σ_j penalty_j·e_j
//	subject to Σ_j x_ij ≤ fleet_i                            (per plane type)
//	           Σ_i capacity_i·trips_ij·x_ij + e_j = demand_j (per route)
//	           x_ij ≥ 0 integer, e_j ≥ 0 continuous
//
// Variables are created plane-major (x_00..x_03, x_10, ..., x_23) followed
// by e_0..e_3, so VarIDs are stable across calls.
func Build(in Instance) (*milp.Model, Layout, error) {
	var lay Layout
	if err := in.Validate(); err != nil {
		return nil, lay, err
	}

	m := milp.NewModel()
	for i := range in.Planes {
		for j := 0; j < NumRoutes; j++ {
			id, err := m.AddVariable(tripName(i, j), milp.Integer, in.TripCost(i, j))
			if err != nil {
				return nil, lay, err
			}
			lay.Trips[i][j] = id
		}
	}
	for j := 0; j < NumRoutes; j++ {
		id, err := m.AddVariable(fmt.Sprintf("empty_r%d", j+1), milp.Continuous, in.Penalty[j])
		if err != nil {
			return nil, lay, err
		}
		lay.Empty[j] = id
	}

	for i, p := range in.Planes {
		terms := make([]milp.Term, 0, NumRoutes)
		for j := 0; j < NumRoutes; j++ {
			terms = append(terms, milp.Term{Var: lay.Trips[i][j], Coef: 1})
		}
		c := milp.Constraint{Name: fmt.Sprintf("fleet_p%d", i+1), Terms: terms, Sense: milp.LessEq, RHS: p.Fleet}
		if err := m.AddConstraint(c); err != nil {
			return nil, lay, err
		}
	}
	for j := 0; j < NumRoutes; j++ {
		terms := make([]milp.Term, 0, NumPlaneTypes+1)
		for i := range in.Planes {
			terms = append(terms, milp.Term{Var: lay.Trips[i][j], Coef: in.Seats(i, j)})
		}
		terms = append(terms, milp.Term{Var: lay.Empty[j], Coef: 1})
		c := milp.Constraint{Name: fmt.Sprintf("demand_r%d", j+1), Terms: terms, Sense: milp.Equal, RHS: in.Demand[j]}
		if err := m.AddConstraint(c); err != nil {
			return nil, lay, err
		}
	}

	return m, lay, nil
}

func tripName(i, j int) string { return fmt.Sprintf("trips_p%d_r%d", i+1, j+1) }

// Evaluate derives the empty seats and objective of a trip matrix and checks
// it against the fleet ceilings and the demand.
func Evaluate(in Instance, trips [NumPlaneTypes][NumRoutes]int) (Assignment, error) {
	a := Assignment{Trips: trips}
	if err := in.Validate(); err != nil {
		return a, err
	}

	for i, p := range in.Planes {
		used := 0
		for j := 0; j < NumRoutes; j++ {
			if trips[i][j] < 0 {
				return a, fmt.Errorf("%s on route %d: negative trips: %w", p.Name, j+1, ErrInfeasibleAssignment)
			}
			used += trips[i][j]
			a.Objective += in.TripCost(i, j) * float64(trips[i][j])
		}
		if float64(used) > p.Fleet+milp.Tolerance {
			return a, fmt.Errorf("%s: %d trips exceed fleet of %g: %w", p.Name, used, p.Fleet, ErrInfeasibleAssignment)
		}
	}
	for j := 0; j < NumRoutes; j++ {
		seats := 0.0
		for i := range in.Planes {
			seats += in.Seats(i, j) * float64(trips[i][j])
		}
		empty := in.Demand[j] - seats
		if empty < -milp.Tolerance {
			return a, fmt.Errorf("route %d: %g seats exceed demand of %g: %w", j+1, seats, in.Demand[j], ErrInfeasibleAssignment)
		}
		a.EmptySeats[j] = math.Max(empty, 0)
		a.Objective += in.Penalty[j] * a.EmptySeats[j]
	}

	return a, nil
}

// Values lays a out as a model point.
func (lay Layout) Values(a Assignment) milp.Values {
	values := make(milp.Values, NumPlaneTypes*NumRoutes+NumRoutes)
	for i := 0; i < NumPlaneTypes; i++ {
		for j := 0; j < NumRoutes; j++ {
			values[lay.Trips[i][j]] = float64(a.Trips[i][j])
		}
	}
	for j := 0; j < NumRoutes; j++ {
		values[lay.Empty[j]] = a.EmptySeats[j]
	}

	return values
}

// Decode reads a model solution back into an Assignment. Trip counts are
// rounded to the nearest integer.
func (lay Layout) Decode(sol milp.Solution) Assignment {
	a := Assignment{Objective: sol.Objective}
	for i := 0; i < NumPlaneTypes; i++ {
		for j := 0; j < NumRoutes; j++ {
			a.Trips[i][j] = int(math.Round(sol.Values.At(lay.Trips[i][j])))
		}
	}
	for j := 0; j < NumRoutes; j++ {
		a.EmptySeats[j] = sol.Values.At(lay.Empty[j])
	}

	return a
}
