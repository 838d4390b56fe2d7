// Package fleet assigns daily trips of three plane types to four routes.
//
// Each plane type i has a seat capacity, a fleet ceiling and, per route j, a
// number of daily rotations trips_ij and a cost per rotation cost_ij. Each
// route has a passenger demand and a penalty per empty seat. The integer
// decision x_ij is the trip count of type i on route j:
//
//	min  Σ cost_ij·trips_ij·x_ij + Σ penalty_j·e_j
//	s.t. Σ_j x_ij ≤ fleet_i
//	     Σ_i capacity_i·trips_ij·x_ij + e_j = demand_j
//	     x_ij ∈ ℤ≥0, e_j ≥ 0
//
// Build encodes an Instance as a milp.Model; Solve runs the search with the
// gonum simplex relaxation and decodes the result:
//
//	a, res, err := fleet.Solve(ctx, fleet.DefaultInstance(), fleet.DefaultSolveOptions())
//
// RoundedIncumbent rounds the root relaxation down into a feasible warm
// start. LoadInstance and LoadSolveOptions read both halves from a config file.
package fleet
