// Package optimizationcourse solves the fleet-assignment MILP with a small,
// readable branch-and-bound engine.
//
// 🚀 What is inside?
//
//	• milp:  the search: model, snapshots, nodes, incumbent, branching rules, Solve
//	• relax: LP relaxation of a snapshot via gonum's dense simplex
//	• fleet: the 3 plane types × 4 routes instance, its model, warm start and config loading
//
// ✨ How the pieces fit:
//
//	fleet.Instance ──Build──▶ milp.Model ──Solve──▶ milp.Result ──Layout.Decode──▶ fleet.Assignment
//	                                  ▲
//	                        relax.Simplex (per node)
//
// The sequential search (Workers ≤ 1) is deterministic: the same instance
// always yields the same branch sequence and the same assignment. With more
// workers the optimal objective is unchanged but, among equal-objective
// solutions, the one returned may differ.
//
//	go get github.com/0just0/optimization-course/fleet
package optimizationcourse
