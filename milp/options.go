package milp

import (
	"time"

	"go.uber.org/zap"
)

// EventKind classifies search events delivered to Options.OnEvent.
type EventKind uint8

const (
	// EventSolved follows every node relaxation.
	EventSolved EventKind = iota
	// EventBranch follows every split decision.
	EventBranch
	// EventIncumbent follows every incumbent improvement.
	EventIncumbent
)

func (k EventKind) String() string {
	switch k {
	case EventBranch:
		return "branch"
	case EventIncumbent:
		return "incumbent"
	default:
		return "solved"
	}
}

// Event describes one step of the search.
//
//   - EventSolved:    Node, Depth, Verdict, Objective (relaxation), Incumbent (bound at check).
//   - EventBranch:    Node, Depth, Branch.
//   - EventIncumbent: Node, Depth, Objective (new incumbent).
type Event struct {
	Kind      EventKind
	RunID     string
	Node      int
	Depth     int
	Verdict   Verdict
	Objective float64
	Incumbent float64
	Branch    Branch
}

// Options configures Solve.
//
//   - Rule:      branching policy (default NearestInteger).
//   - Workers:   ≤1 runs the deterministic sequential DFS; >1 lets sibling
//     subtrees run on up to Workers−1 extra goroutines.
//   - TimeLimit: soft budget checked before each node; 0 disables it.
//   - Seed:      optional integer-feasible solution installed as the initial
//     incumbent (tighter pruning from the first node).
//   - KeepTree:  retain the explored tree in Result.Root.
//   - Logger:    structured logger; nil means zap.NewNop().
//   - OnEvent:   optional hook; with Workers>1 it must be safe for concurrent use.
type Options struct {
	Rule      BranchRule
	Workers   int
	TimeLimit time.Duration
	Seed      *Solution
	KeepTree  bool
	Logger    *zap.Logger
	OnEvent   func(Event)
}

// DefaultOptions returns the sequential, deterministic configuration.
func DefaultOptions() Options {
	return Options{
		Rule:     NearestInteger,
		Workers:  1,
		KeepTree: true,
	}
}

// Stats counts what happened during one run.
type Stats struct {
	Nodes              int
	Infeasible         int
	Accepted           int
	PrunedNotImproving int
	PrunedBound        int
	Branched           int
	MaxDepth           int
}

// Result is the outcome of Solve.
type Result struct {
	// Solution is the best integer-feasible solution found (or the seed when
	// the tree found nothing better).
	Solution Solution
	// FromSeed is true when Solution is the seed itself.
	FromSeed bool
	// RootBound is the objective of the root relaxation (a global lower bound).
	RootBound float64
	// Root is the explored tree when Options.KeepTree is set.
	Root  *Node
	Stats Stats
	RunID string
}
