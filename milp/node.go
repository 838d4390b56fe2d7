// Package milp: tree nodes and the five-way verdict.
//
// A Node owns one Snapshot and, once solved, its relaxation and lower bound.
// Node.Solve is the only place a verdict is decided.
//
// Rationale (succinct):
//  1. Classification uses strict comparisons against the incumbent value
//     current at the check, with no epsilon:
//     infeasible → Infeasible; integral and better → Accepted; integral and
//     not better → PrunedNotImproving; fractional and better → Branching;
//     fractional and not better → PrunedBound.
//  2. Acceptance goes through SearchContext.Offer, a compare-and-update.
//     A concurrent sibling that got there first turns Accepted into
//     PrunedNotImproving.
//  3. Relaxation output is checked before use: NaN, ±Inf, values below
//     −Tolerance or a wrong length abort the search with
//     ErrNumericalInstability.
//  4. Children are created lazily from the chosen Branch, at most two per
//     node; each gets the parent snapshot plus one bound.
//
// Complexity:
//   - Solve: one relaxation + O(n) checks.
//   - CreateChild: O(1); the snapshot shares its parent's bound list.
//   - Walk: O(nodes) over whatever subtree was kept.

package milp

import (
	"context"
	"fmt"
	"math"
)

// Verdict is what a node decided after solving its relaxation.
type Verdict uint8

const (
	// Unsolved nodes were created but never visited.
	Unsolved Verdict = iota
	// Infeasible nodes have an empty relaxation and are pruned.
	Infeasible
	// Accepted nodes are integral and improved the incumbent.
	Accepted
	// PrunedNotImproving nodes are integral but no better than the incumbent.
	PrunedNotImproving
	// PrunedBound nodes are fractional with an objective ≥ the incumbent.
	PrunedBound
	// Branching nodes are fractional and promising; they get two children.
	Branching
)

func (v Verdict) String() string {
	switch v {
	case Infeasible:
		return "infeasible"
	case Accepted:
		return "accepted"
	case PrunedNotImproving:
		return "pruned-not-improving"
	case PrunedBound:
		return "pruned-bound"
	case Branching:
		return "branch"
	default:
		return "unsolved"
	}
}

// Terminal reports whether the verdict ends its subtree.
func (v Verdict) Terminal() bool { return v != Branching && v != Unsolved }

// Node is one vertex of the branch-and-bound tree. It owns its snapshot and
// at most two children; a node with no relaxation solution or with an
// integral one stays a leaf.
type Node struct {
	id       int
	snapshot *Snapshot

	solution   *Solution // nil until solved, and when infeasible
	lowerBound float64
	incumbent  float64 // incumbent bound observed at the pruning check
	verdict    Verdict

	children [2]*Node
}

// NewRootNode wraps the root snapshot of m (freezing m).
func NewRootNode(m *Model) *Node {
	return &Node{snapshot: NewSnapshot(m), lowerBound: math.Inf(-1)}
}

// ID is the creation-order id (unique within one run).
func (n *Node) ID() int { return n.id }

// Snapshot returns the node's snapshot.
func (n *Node) Snapshot() *Snapshot { return n.snapshot }

// Depth is the number of branching bounds above the node.
func (n *Node) Depth() int { return n.snapshot.Depth() }

// Solution returns the last relaxation solution, if any.
func (n *Node) Solution() (Solution, bool) {
	if n.solution == nil {
		return Solution{}, false
	}

	return *n.solution, true
}

// LowerBound is the relaxation objective (−Inf before solving, +Inf if infeasible).
func (n *Node) LowerBound() float64 { return n.lowerBound }

// IncumbentAtCheck is the incumbent value the pruning decision compared against.
func (n *Node) IncumbentAtCheck() float64 { return n.incumbent }

// Verdict returns the decision of the last Solve.
func (n *Node) Verdict() Verdict { return n.verdict }

// Children returns the children in creation order (nil entries when absent).
func (n *Node) Children() [2]*Node { return n.children }

// Solve relaxes the node's snapshot and classifies the result:
//
//	infeasible                      → Infeasible
//	integral,   obj <  incumbent    → Accepted (incumbent updated)
//	integral,   obj >= incumbent    → PrunedNotImproving
//	fractional, obj <  incumbent    → Branching
//	fractional, obj >= incumbent    → PrunedBound
//
// The incumbent update is a compare-and-update against the value current at
// update time; losing that race turns Accepted into PrunedNotImproving.
// Errors are fatal: ErrSolver (wrapped), ErrNumericalInstability, ctx errors.
func (n *Node) Solve(ctx context.Context, r Relaxer, sc *SearchContext) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Unsolved, err
	}
	rel, err := r.Relax(ctx, n.snapshot)
	if err != nil {
		return Unsolved, fmt.Errorf("node %d: %w", n.id, err)
	}

	if rel.Status == StatusInfeasible {
		n.solution = nil
		n.lowerBound = math.Inf(1)
		n.incumbent = sc.Bound()
		n.verdict = Infeasible

		return n.verdict, nil
	}

	m := n.snapshot.model
	if err = checkNumerics(rel.Values, m.NumVariables()); err != nil {
		return Unsolved, fmt.Errorf("node %d: %w", n.id, err)
	}
	if !finite(rel.Objective) {
		return Unsolved, fmt.Errorf("node %d objective: %w", n.id, ErrNumericalInstability)
	}

	n.solution = &Solution{Values: rel.Values.Clone(), Objective: rel.Objective}
	n.lowerBound = rel.Objective
	n.incumbent = sc.Bound()

	integral := IntegerFeasible(m, rel.Values)
	switch {
	case integral && rel.Objective < n.incumbent:
		if sc.Offer(*n.solution) {
			n.verdict = Accepted
		} else {
			n.incumbent = sc.Bound()
			n.verdict = PrunedNotImproving
		}
	case integral:
		n.verdict = PrunedNotImproving
	case rel.Objective < n.incumbent:
		n.verdict = Branching
	default:
		n.verdict = PrunedBound
	}

	return n.verdict, nil
}

// CreateChild attaches an unsolved child whose snapshot is the node's plus
// one bound. The child occupies the first free slot; a third child is refused.
func (n *Node) CreateChild(v VarID, op BoundOp, threshold int) (*Node, error) {
	slot := -1
	for i, c := range n.children {
		if c == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil, fmt.Errorf("node %d already has two children", n.id)
	}
	snap, err := n.snapshot.CloneWithBound(v, op, threshold)
	if err != nil {
		return nil, err
	}
	child := &Node{snapshot: snap, lowerBound: math.Inf(-1)}
	n.children[slot] = child

	return child, nil
}

// Walk visits the subtree rooted at n in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}

	return true
}
