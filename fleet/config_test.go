package fleet_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/0just0/optimization-course/fleet"
	"github.com/0just0/optimization-course/milp"
)

const referenceYAML = `
planes:
  - name: Plane1
    capacity: 50
    fleet: 7
    trips: [3, 2, 2, 1]
    costs: [1000, 1100, 1200, 1500]
  - name: Plane2
    capacity: 30
    fleet: 15
    trips: [4, 3, 3, 2]
    costs: [800, 900, 1000, 1000]
  - name: Plane3
    capacity: 20
    fleet: 2
    trips: [5, 5, 4, 2]
    costs: [600, 800, 800, 900]
demand: [1000, 2000, 900, 1200]
penalty: [40, 50, 45, 70]
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadInstance_YAML(t *testing.T) {
	in, err := fleet.LoadInstance(writeConfig(t, "fleet.yaml", referenceYAML))
	require.NoError(t, err)
	require.Equal(t, fleet.DefaultInstance(), in)
}

func TestLoadInstance_JSON(t *testing.T) {
	body := `{
  "planes": [
    {"name": "A", "capacity": 10, "fleet": 1, "trips": [1, 1, 1, 1], "costs": [1, 2, 3, 4]},
    {"name": "B", "capacity": 10, "fleet": 1, "trips": [1, 1, 1, 1], "costs": [1, 2, 3, 4]},
    {"name": "C", "capacity": 10, "fleet": 1, "trips": [1, 1, 1, 1], "costs": [1, 2, 3, 4]}
  ],
  "demand": [5, 5, 5, 5.5],
  "penalty": [1, 1, 1, 1]
}`
	in, err := fleet.LoadInstance(writeConfig(t, "fleet.json", body))
	require.NoError(t, err)
	require.Equal(t, "C", in.Planes[2].Name)
	require.Equal(t, 5.5, in.Demand[3])
}

func TestLoadInstance_Errors(t *testing.T) {
	_, err := fleet.LoadInstance(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, fleet.ErrConfig)

	_, err = fleet.LoadInstance(writeConfig(t, "broken.yaml", "planes: [\n"))
	require.ErrorIs(t, err, fleet.ErrConfig)

	_, err = fleet.LoadInstance(writeConfig(t, "nodemand.yaml", "planes: []\npenalty: [1, 1, 1, 1]\n"))
	require.ErrorIs(t, err, fleet.ErrConfig)

	badType := "planes: []\ndemand: [a, b, c, d]\npenalty: [1, 1, 1, 1]\n"
	_, err = fleet.LoadInstance(writeConfig(t, "badtype.yaml", badType))
	require.ErrorIs(t, err, fleet.ErrConfig)

	short := "planes: []\ndemand: [1, 2, 3, 4]\npenalty: [1, 2, 3, 4]\n"
	_, err = fleet.LoadInstance(writeConfig(t, "short.yaml", short))
	require.ErrorIs(t, err, fleet.ErrShape)
}

func TestLoadSolveOptions(t *testing.T) {
	body := referenceYAML + `
solver:
  workers: 4
  time_limit: 30s
  branching: most-fractional
  warm_start: false
`
	opts, err := fleet.LoadSolveOptions(writeConfig(t, "fleet.yaml", body))
	require.NoError(t, err)
	require.Equal(t, 4, opts.Workers)
	require.Equal(t, 30*time.Second, opts.TimeLimit)
	require.Equal(t, milp.MostFractional, opts.Rule)
	require.False(t, opts.WarmStart)
}

func TestLoadSolveOptions_Defaults(t *testing.T) {
	opts, err := fleet.LoadSolveOptions(writeConfig(t, "fleet.yaml", referenceYAML))
	require.NoError(t, err)
	require.Equal(t, fleet.DefaultSolveOptions(), opts)
}

func TestLoadSolveOptions_EnvOverride(t *testing.T) {
	t.Setenv("FLEET_SOLVER_WORKERS", "3")
	t.Setenv("FLEET_SOLVER_BRANCHING", "fractional")

	opts, err := fleet.LoadSolveOptions(writeConfig(t, "fleet.yaml", referenceYAML+"solver:\n  workers: 8\n"))
	require.NoError(t, err)
	require.Equal(t, 3, opts.Workers)
	require.Equal(t, milp.MostFractional, opts.Rule)
}

func TestLoadSolveOptions_Errors(t *testing.T) {
	_, err := fleet.LoadSolveOptions(writeConfig(t, "rule.yaml", "solver:\n  branching: random\n"))
	require.ErrorIs(t, err, fleet.ErrConfig)
	require.ErrorIs(t, err, milp.ErrInvalidOptions)

	_, err = fleet.LoadSolveOptions(writeConfig(t, "workers.yaml", "solver:\n  workers: -1\n"))
	require.ErrorIs(t, err, fleet.ErrConfig)
}
