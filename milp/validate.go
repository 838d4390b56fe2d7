package milp

import "fmt"

// validateInputs checks the model, the relaxer and the options before a run.
// It has no side effects; the model is frozen later, when the root snapshot is taken.
func validateInputs(m *Model, r Relaxer, opts Options) error {
	if m == nil || m.NumVariables() == 0 {
		return ErrEmptyModel
	}
	if r == nil {
		return ErrNilRelaxer
	}
	if err := validateOptions(opts); err != nil {
		return err
	}
	if opts.Seed != nil {
		if err := validateSeed(m, *opts.Seed); err != nil {
			return err
		}
	}

	return nil
}

func validateOptions(opts Options) error {
	if opts.Workers < 0 {
		return fmt.Errorf("workers %d: %w", opts.Workers, ErrInvalidOptions)
	}
	if opts.TimeLimit < 0 {
		return fmt.Errorf("time limit %s: %w", opts.TimeLimit, ErrInvalidOptions)
	}
	switch opts.Rule {
	case NearestInteger, MostFractional:
	default:
		return fmt.Errorf("branch rule %d: %w", opts.Rule, ErrInvalidOptions)
	}

	return nil
}

// validateSeed requires a point that satisfies every permanent constraint and
// is integral on every integer variable.
func validateSeed(m *Model, seed Solution) error {
	if len(seed.Values) != m.NumVariables() {
		return fmt.Errorf("seed has %d values for %d variables: %w",
			len(seed.Values), m.NumVariables(), ErrInvalidSeed)
	}
	if !m.Feasible(seed.Values, Tolerance) {
		return fmt.Errorf("seed violates a constraint: %w", ErrInvalidSeed)
	}
	if !IntegerFeasible(m, seed.Values) {
		return fmt.Errorf("seed is fractional: %w", ErrInvalidSeed)
	}

	return nil
}
