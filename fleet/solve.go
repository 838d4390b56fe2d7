package fleet

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/0just0/optimization-course/milp"
	"github.com/0just0/optimization-course/relax"
)

// SolveOptions configures Solve.
type SolveOptions struct {
	// Relaxer solves node relaxations; nil means relax.NewSimplex().
	Relaxer milp.Relaxer

	// WarmStart seeds the search with RoundedIncumbent.
	WarmStart bool

	Rule      milp.BranchRule
	Workers   int
	TimeLimit time.Duration
	KeepTree  bool
	Logger    *zap.Logger
	OnEvent   func(milp.Event)
}

// DefaultSolveOptions returns a sequential, warm-started configuration.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		WarmStart: true,
		Rule:      milp.NearestInteger,
		Workers:   1,
	}
}

// Solve builds the model of in and runs branch-and-bound on it.
//
// The returned milp.Result carries search statistics (and the tree when
// KeepTree is set). On ErrTimeLimit or cancellation the best assignment found
// so far is still decoded when one exists; otherwise the Assignment is zero.
func Solve(ctx context.Context, in Instance, opts SolveOptions) (Assignment, milp.Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := opts.Relaxer
	if r == nil {
		r = relax.NewSimplex()
	}

	m, lay, err := Build(in)
	if err != nil {
		return Assignment{}, milp.Result{}, err
	}

	mopts := milp.Options{
		Rule:      opts.Rule,
		Workers:   opts.Workers,
		TimeLimit: opts.TimeLimit,
		KeepTree:  opts.KeepTree,
		Logger:    log,
		OnEvent:   opts.OnEvent,
	}
	if opts.WarmStart {
		seed, err := RoundedIncumbent(ctx, in, r)
		if err != nil {
			return Assignment{}, milp.Result{}, err
		}
		mopts.Seed = &milp.Solution{Values: lay.Values(seed), Objective: seed.Objective}
		log.Info("fleet: warm start", zap.Float64("objective", seed.Objective))
	}

	res, err := milp.Solve(ctx, m, r, mopts)
	if res.Solution.Values == nil {
		return Assignment{}, res, err
	}

	return lay.Decode(res.Solution), res, err
}
