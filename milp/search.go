// Package milp: depth-first branch-and-bound driver.
//
// Solve walks the tree from the root snapshot. Each node is relaxed by the
// Relaxer, classified against the shared incumbent, and either closed or
// split into two children on one fractional integer variable.
//
// Rationale (succinct):
//  1. Inputs are validated up front (validate.go); the search itself only
//     fails on solver errors, numerical instability, the deadline or ctx.
//  2. Optional seed: a known feasible solution becomes the starting
//     incumbent, so pruning bites from the first node. Without one the
//     incumbent starts at +Inf.
//  3. Depth-first order: the child the rule prefers is fully explored
//     before its sibling. This finds integral leaves early and keeps only
//     the current path alive (unless Options.KeepTree is set).
//  4. Deadline: checked before every relaxation. Expiry returns
//     ErrTimeLimit together with the best solution found so far.
//  5. Parallel mode: when a semaphore slot is free, the second child runs
//     on its own goroutine under an errgroup; the first stays inline. The
//     incumbent is the only shared search state.
//
// Complexity:
//   - Worst case exponential in the number of integer variables.
//   - Per node: one relaxation plus O(n) for the integrality scan and branching.
//   - Memory: O(depth) nodes on the active path; snapshots share bound prefixes.
//
// Governance:
//   - Options.Rule:    NearestInteger (default) or MostFractional; see branching.go.
//   - Options.Workers: ≤ 1 is sequential and deterministic; more bounds the
//     extra goroutines at Workers−1.
//   - Options.TimeLimit, Options.Seed, Options.KeepTree, Options.Logger, Options.OnEvent.

package milp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// searcher holds everything one run needs. Only sc and stats are written
// from more than one goroutine.
type searcher struct {
	relaxer  Relaxer
	sc       *SearchContext
	rule     BranchRule
	keepTree bool
	log      *zap.Logger
	onEvent  func(Event)

	useDeadline bool
	deadline    time.Time

	// sem caps the extra goroutines; nil in sequential mode.
	sem *semaphore.Weighted

	mu    sync.Mutex
	stats Stats
}

// Solve runs depth-first branch-and-bound on m, relaxing every node with r.
//
// Each node is relaxed; accepted nodes update the incumbent, pruned nodes
// end their subtree, branching nodes split on the variable chosen by
// opts.Rule and the two children are explored in the rule's order. A
// subtree returns nothing, its single solution, or the better of its two
// children's solutions.
//
// Errors:
//   - ErrNoIncumbent when no integer-feasible solution exists (and no seed was given).
//   - ErrTimeLimit when opts.TimeLimit elapsed; Result still carries the best so far.
//   - ctx.Err() on cancellation, ErrSolver / ErrNumericalInstability from nodes.
//   - ErrEmptyModel, ErrNilRelaxer, ErrInvalidOptions, ErrInvalidSeed on bad input.
func Solve(ctx context.Context, m *Model, r Relaxer, opts Options) (Result, error) {
	if err := validateInputs(m, r, opts); err != nil {
		return Result{}, err
	}

	sc := NewSearchContext()
	if opts.Seed != nil {
		seed := Solution{Values: opts.Seed.Values.Clone(), Objective: m.Objective(opts.Seed.Values)}
		sc = NewSeededSearchContext(seed)
	}

	s := &searcher{
		relaxer:  r,
		sc:       sc,
		rule:     opts.Rule,
		keepTree: opts.KeepTree,
		log:      opts.Logger,
		onEvent:  opts.OnEvent,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if opts.TimeLimit > 0 {
		s.useDeadline = true
		s.deadline = time.Now().Add(opts.TimeLimit)
	}
	if opts.Workers > 1 {
		s.sem = semaphore.NewWeighted(int64(opts.Workers - 1))
	}

	root := NewRootNode(m)
	root.id = sc.newNodeID()

	s.log.Info("milp: search started",
		zap.String("run_id", sc.RunID()),
		zap.Int("variables", m.NumVariables()),
		zap.Int("constraints", m.NumConstraints()),
		zap.Stringer("rule", opts.Rule),
		zap.Int("workers", opts.Workers),
		zap.Float64("incumbent", sc.Bound()),
	)

	best, err := s.expand(ctx, root)

	res := Result{
		RootBound: root.lowerBound,
		Stats:     s.snapshotStats(),
		RunID:     sc.RunID(),
	}
	if s.keepTree {
		res.Root = root
	}

	if err != nil {
		if sol, ok := sc.Best(); ok {
			res.Solution = sol
			res.FromSeed = sc.Seeded() && res.Stats.Accepted == 0
		}
		s.log.Warn("milp: search aborted",
			zap.String("run_id", sc.RunID()),
			zap.Int("nodes", res.Stats.Nodes),
			zap.Error(err),
		)

		return res, err
	}

	switch {
	case best != nil:
		res.Solution = *best
	case sc.Seeded():
		res.Solution, _ = sc.Best()
		res.FromSeed = true
	default:
		s.log.Info("milp: no integer-feasible solution",
			zap.String("run_id", sc.RunID()),
			zap.Int("nodes", res.Stats.Nodes),
		)

		return res, ErrNoIncumbent
	}

	s.log.Info("milp: search finished",
		zap.String("run_id", sc.RunID()),
		zap.Int("nodes", res.Stats.Nodes),
		zap.Int("max_depth", res.Stats.MaxDepth),
		zap.Float64("objective", res.Solution.Objective),
		zap.Float64("root_bound", res.RootBound),
		zap.Bool("from_seed", res.FromSeed),
	)

	return res, nil
}

// expand solves n and, when it branches, recurses into both children.
// A nil solution means the subtree holds nothing better than the incumbent.
func (s *searcher) expand(ctx context.Context, n *Node) (*Solution, error) {
	if s.useDeadline && time.Now().After(s.deadline) {
		return nil, ErrTimeLimit
	}

	verdict, err := n.Solve(ctx, s.relaxer, s.sc)
	if err != nil {
		return nil, err
	}
	s.record(n, verdict)

	switch verdict {
	case Accepted:
		sol := Solution{Values: n.solution.Values.Clone(), Objective: n.solution.Objective}

		return &sol, nil
	case Branching:
	default:
		return nil, nil
	}

	br, ok := SelectBranch(n.snapshot.model, n.solution.Values, s.rule)
	if !ok {
		// Branching implies a fractional integer variable; reaching here means
		// the integrality test and the candidate scan disagreed.
		return nil, fmt.Errorf("node %d: no branching candidate: %w", n.id, ErrNumericalInstability)
	}
	s.emit(Event{Kind: EventBranch, Node: n.id, Depth: n.Depth(), Branch: br})
	s.log.Debug("milp: branch",
		zap.Int("node", n.id),
		zap.Int("var", int(br.Var)),
		zap.Float64("value", br.Value),
		zap.Int("threshold", br.Threshold),
		zap.Stringer("first", br.First),
	)

	var kids [2]*Node
	for i, b := range br.Bounds() {
		if kids[i], err = n.CreateChild(b.Var, b.Op, b.Threshold); err != nil {
			return nil, err
		}
		kids[i].id = s.sc.newNodeID()
	}

	var results [2]*Solution
	if s.sem != nil && s.sem.TryAcquire(1) {
		results, err = s.expandParallel(ctx, kids)
	} else {
		for i, k := range kids {
			if results[i], err = s.expand(ctx, k); err != nil {
				break
			}
		}
	}
	if !s.keepTree {
		n.children = [2]*Node{}
	}
	if err != nil {
		return nil, err
	}

	return better(results[0], results[1]), nil
}

// expandParallel runs the second child on its own goroutine (the caller has
// already acquired a semaphore slot for it) and the first child inline.
func (s *searcher) expandParallel(ctx context.Context, kids [2]*Node) ([2]*Solution, error) {
	var results [2]*Solution

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(cctx)
	g.Go(func() error {
		defer s.sem.Release(1)
		var err error
		results[1], err = s.expand(gctx, kids[1])

		return err
	})

	var err error
	results[0], err = s.expand(gctx, kids[0])
	if err != nil {
		cancel()
	}
	if werr := g.Wait(); err == nil || (errors.Is(err, context.Canceled) && werr != nil) {
		err = werr
	}

	return results, err
}

// better returns the solution with the smaller objective; a wins ties.
func better(a, b *Solution) *Solution {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Objective < a.Objective:
		return b
	default:
		return a
	}
}

func (s *searcher) record(n *Node, v Verdict) {
	s.mu.Lock()
	s.stats.Nodes++
	if d := n.Depth(); d > s.stats.MaxDepth {
		s.stats.MaxDepth = d
	}
	switch v {
	case Infeasible:
		s.stats.Infeasible++
	case Accepted:
		s.stats.Accepted++
	case PrunedNotImproving:
		s.stats.PrunedNotImproving++
	case PrunedBound:
		s.stats.PrunedBound++
	case Branching:
		s.stats.Branched++
	}
	s.mu.Unlock()

	s.emit(Event{
		Kind:      EventSolved,
		Node:      n.id,
		Depth:     n.Depth(),
		Verdict:   v,
		Objective: n.lowerBound,
		Incumbent: n.incumbent,
	})
	s.log.Debug("milp: node solved",
		zap.Int("node", n.id),
		zap.Int("depth", n.Depth()),
		zap.Stringer("verdict", v),
		zap.Float64("objective", n.lowerBound),
		zap.Float64("incumbent", n.incumbent),
	)
	if v == Accepted {
		s.emit(Event{Kind: EventIncumbent, Node: n.id, Depth: n.Depth(), Objective: n.lowerBound})
		s.log.Debug("milp: new incumbent", zap.Int("node", n.id), zap.Float64("objective", n.lowerBound))
	}
}

func (s *searcher) emit(e Event) {
	if s.onEvent == nil {
		return
	}
	e.RunID = s.sc.RunID()
	s.onEvent(e)
}

func (s *searcher) snapshotStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stats
}
