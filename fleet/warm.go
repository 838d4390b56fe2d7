package fleet

import (
	"context"
	"fmt"
	"math"

	"github.com/0just0/optimization-course/milp"
)

// RoundedIncumbent builds a feasible starting assignment from the root
// relaxation: every trip count is rounded down and each route's empty seats
// absorb the difference. A count within Tolerance below an integer is taken
// as that integer, unless doing so overfills its route or its plane's fleet;
// then it falls back to the floor. Floors of a feasible relaxation always
// satisfy both constraint families.
func RoundedIncumbent(ctx context.Context, in Instance, r milp.Relaxer) (Assignment, error) {
	m, lay, err := Build(in)
	if err != nil {
		return Assignment{}, err
	}

	rel, err := r.Relax(ctx, milp.NewSnapshot(m))
	if err != nil {
		return Assignment{}, fmt.Errorf("root relaxation: %w", err)
	}
	if rel.Status == milp.StatusInfeasible {
		return Assignment{}, fmt.Errorf("root relaxation: %w", milp.ErrNoIncumbent)
	}

	var (
		trips [NumPlaneTypes][NumRoutes]int
		up    [NumPlaneTypes][NumRoutes]bool // rounded up across an integer
	)
	for i := 0; i < NumPlaneTypes; i++ {
		for j := 0; j < NumRoutes; j++ {
			x := math.Max(rel.Values.At(lay.Trips[i][j]), 0)
			k := math.Floor(x + milp.Tolerance)
			trips[i][j] = int(k)
			up[i][j] = k > math.Floor(x)
		}
	}
	settleRoundUps(in, &trips, &up)

	return Evaluate(in, trips)
}

// settleRoundUps undoes round-ups on every route and plane whose capacity
// they exceed, using the same slack Evaluate allows.
func settleRoundUps(in Instance, trips *[NumPlaneTypes][NumRoutes]int, up *[NumPlaneTypes][NumRoutes]bool) {
	for j := 0; j < NumRoutes; j++ {
		for i := 0; i < NumPlaneTypes && routeSeats(in, trips, j) > in.Demand[j]+milp.Tolerance; i++ {
			if up[i][j] {
				trips[i][j]--
				up[i][j] = false
			}
		}
	}
	for i, p := range in.Planes {
		for j := 0; j < NumRoutes && float64(planeTrips(trips, i)) > p.Fleet+milp.Tolerance; j++ {
			if up[i][j] {
				trips[i][j]--
				up[i][j] = false
			}
		}
	}
}

func routeSeats(in Instance, trips *[NumPlaneTypes][NumRoutes]int, j int) float64 {
	seats := 0.0
	for i := range in.Planes {
		seats += in.Seats(i, j) * float64(trips[i][j])
	}

	return seats
}

func planeTrips(trips *[NumPlaneTypes][NumRoutes]int, i int) int {
	used := 0
	for _, t := range trips[i] {
		used += t
	}

	return used
}
