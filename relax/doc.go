// Package relax provides the LP relaxation solver consumed by package milp.
//
// Simplex turns a milp.Snapshot into standard form (one slack column per
// inequality, b ≥ 0) and hands it to gonum's optimize/convex/lp.Simplex:
//
//	relaxer := relax.NewSimplex()
//	res, err := milp.Solve(ctx, model, relaxer, milp.DefaultOptions())
//
// The solver is deterministic (Bland's rule, no randomisation), so the same
// snapshot always yields the same vertex. Infeasible relaxations are reported
// as milp.StatusInfeasible; anything else that goes wrong is wrapped in
// milp.ErrSolver.
package relax
