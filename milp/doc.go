// Package milp is a small branch-and-bound engine for minimisation MILPs.
//
// 🚀 What does it do?
//
//	Given a Model (non-negative variables, some of them Integer, a linear
//	objective and linear constraints) and a Relaxer that solves continuous
//	relaxations, Solve searches a binary tree of Snapshots for the best
//	integer-feasible point:
//
//	  root relaxation ──▶ fractional? ──▶ split x on ⌊x⌋
//	                                       ├── x ≤ ⌊x⌋
//	                                       └── x ≥ ⌊x⌋+1
//
// Building blocks:
//   - Snapshot: base model + persistent append-only chain of bounds;
//     CloneWithBound never touches the receiver.
//   - Node: owns a snapshot, solves it and returns a Verdict
//     (Infeasible, Accepted, PrunedNotImproving, PrunedBound, Branching).
//   - SearchContext: the incumbent; improved only by strictly better
//     objectives, via compare-and-update.
//   - SelectBranch: NearestInteger (default) or MostFractional policy.
//   - Solve: depth-first driver, sequential or with parallel siblings.
//
// Integrality is judged with the single constant Tolerance (1e-5) everywhere.
//
// Determinism: with Options.Workers ≤ 1 and a deterministic Relaxer, two runs
// produce the same node sequence, branch decisions and result.
//
// Complexity: exponential in the worst case; each node costs one relaxation
// plus O(n) for the integrality scan and branching choice. Snapshots share
// their bound prefix, so a node adds O(1) memory beyond its relaxation values.
//
// Errors are sentinels (ErrNoIncumbent, ErrSolver, ErrTimeLimit, …) matched
// with errors.Is. Infeasible relaxations are verdicts, not errors.
package milp
