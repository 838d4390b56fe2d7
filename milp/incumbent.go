package milp

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// SearchContext is the state shared by every node of one search run: the
// incumbent (best integer-feasible objective and solution), the run id and
// the node id counter. Solve creates a fresh one per call, so an aborted run
// leaves nothing behind for the next.
//
// The incumbent only ever improves: Offer replaces it iff the new objective
// is strictly below the value held at the moment of the update.
type SearchContext struct {
	mu     sync.RWMutex
	bound  float64
	best   *Solution
	seeded bool

	runID  uuid.UUID
	nextID atomic.Int64
}

// NewSearchContext returns a context whose incumbent is +Inf.
func NewSearchContext() *SearchContext {
	return &SearchContext{bound: math.Inf(1), runID: uuid.New()}
}

// NewSeededSearchContext returns a context whose incumbent is seed, typically
// a rounded feasible solution computed before the search.
func NewSeededSearchContext(seed Solution) *SearchContext {
	sc := NewSearchContext()
	s := Solution{Values: seed.Values.Clone(), Objective: seed.Objective}
	sc.bound = seed.Objective
	sc.best = &s
	sc.seeded = true

	return sc
}

// RunID identifies the run in logs and events.
func (sc *SearchContext) RunID() string { return sc.runID.String() }

// Bound returns the current incumbent objective (+Inf if none).
func (sc *SearchContext) Bound() float64 {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.bound
}

// Best returns a copy of the incumbent solution.
func (sc *SearchContext) Best() (Solution, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.best == nil {
		return Solution{}, false
	}

	return Solution{Values: sc.best.Values.Clone(), Objective: sc.best.Objective}, true
}

// Seeded reports whether the incumbent was initialised from a seed solution.
func (sc *SearchContext) Seeded() bool { return sc.seeded }

// Offer installs sol as the incumbent iff sol.Objective is strictly below the
// current bound, and reports whether it did.
func (sc *SearchContext) Offer(sol Solution) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !(sol.Objective < sc.bound) {
		return false
	}
	s := Solution{Values: sol.Values.Clone(), Objective: sol.Objective}
	sc.bound = sol.Objective
	sc.best = &s

	return true
}

func (sc *SearchContext) newNodeID() int {
	return int(sc.nextID.Add(1) - 1)
}
