package fleet

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/0just0/optimization-course/milp"
)

// EnvPrefix prefixes environment overrides of solver keys,
// e.g. FLEET_SOLVER_WORKERS=4.
const EnvPrefix = "FLEET"

// Configuration keys.
const (
	keyPlanes    = "planes"
	keyDemand    = "demand"
	keyPenalty   = "penalty"
	keyWorkers   = "solver.workers"
	keyTimeLimit = "solver.time_limit"
	keyBranching = "solver.branching"
	keyWarmStart = "solver.warm_start"
)

// LoadInstance reads an instance from a YAML, JSON or TOML file (the format
// follows the extension):
//
//	planes:
//	  - {name: Plane1, capacity: 50, fleet: 7, trips: [3, 2, 2, 1], costs: [1000, 1100, 1200, 1500]}
//	  ...
//	demand:  [1000, 2000, 900, 1200]
//	penalty: [40, 50, 45, 70]
//
// The decoded instance is validated.
func LoadInstance(path string) (Instance, error) {
	v, err := readConfig(path)
	if err != nil {
		return Instance{}, err
	}

	return instanceFrom(v)
}

// LoadSolveOptions reads the solver section of a config file. Missing keys
// fall back to DefaultSolveOptions; FLEET_SOLVER_* environment variables
// override the file.
//
//	solver:
//	  workers: 4
//	  time_limit: 30s
//	  branching: nearest-integer
//	  warm_start: true
func LoadSolveOptions(path string) (SolveOptions, error) {
	v, err := readConfig(path)
	if err != nil {
		return SolveOptions{}, err
	}

	return solveOptionsFrom(v)
}

func readConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultSolveOptions()
	v.SetDefault(keyWorkers, def.Workers)
	v.SetDefault(keyTimeLimit, def.TimeLimit)
	v.SetDefault(keyBranching, def.Rule.String())
	v.SetDefault(keyWarmStart, def.WarmStart)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
	}

	return v, nil
}

func instanceFrom(v *viper.Viper) (Instance, error) {
	if !v.IsSet(keyPlanes) || !v.IsSet(keyDemand) || !v.IsSet(keyPenalty) {
		return Instance{}, fmt.Errorf("%w: %s, %s and %s are required", ErrConfig, keyPlanes, keyDemand, keyPenalty)
	}

	var in Instance
	if err := v.UnmarshalKey(keyPlanes, &in.Planes); err != nil {
		return Instance{}, fmt.Errorf("%w: %s: %w", ErrConfig, keyPlanes, err)
	}
	if err := v.UnmarshalKey(keyDemand, &in.Demand); err != nil {
		return Instance{}, fmt.Errorf("%w: %s: %w", ErrConfig, keyDemand, err)
	}
	if err := v.UnmarshalKey(keyPenalty, &in.Penalty); err != nil {
		return Instance{}, fmt.Errorf("%w: %s: %w", ErrConfig, keyPenalty, err)
	}
	if err := in.Validate(); err != nil {
		return Instance{}, err
	}

	return in, nil
}

func solveOptionsFrom(v *viper.Viper) (SolveOptions, error) {
	opts := DefaultSolveOptions()

	rule, err := milp.ParseBranchRule(v.GetString(keyBranching))
	if err != nil {
		return SolveOptions{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	opts.Rule = rule
	opts.Workers = v.GetInt(keyWorkers)
	opts.TimeLimit = v.GetDuration(keyTimeLimit)
	opts.WarmStart = v.GetBool(keyWarmStart)

	if opts.Workers < 0 || opts.TimeLimit < 0 {
		return SolveOptions{}, fmt.Errorf("%w: workers %d, time limit %s", ErrConfig, opts.Workers, opts.TimeLimit)
	}

	return opts, nil
}
