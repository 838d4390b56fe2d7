package fleet

import (
	"errors"
	"fmt"
	"math"
)

// Fixed problem shape.
const (
	NumPlaneTypes = 3
	NumRoutes     = 4
)

var (
	// ErrShape is returned when an instance is not 3 plane types × 4 routes.
	ErrShape = errors.New("fleet: instance must have 3 plane types and 4 routes")

	// ErrNegative is returned for negative, NaN or infinite instance data.
	ErrNegative = errors.New("fleet: instance values must be finite and non-negative")

	// ErrInfeasibleAssignment is returned when trip counts break a fleet ceiling
	// or seat more passengers than a route demands.
	ErrInfeasibleAssignment = errors.New("fleet: assignment is infeasible")

	// ErrConfig is returned when a configuration file cannot be read or decoded.
	ErrConfig = errors.New("fleet: invalid configuration")
)

// PlaneType describes one aircraft type.
type PlaneType struct {
	Name     string  `mapstructure:"name"`
	Capacity float64 `mapstructure:"capacity"` // seats per trip
	Fleet    float64 `mapstructure:"fleet"`    // ceiling on Σ_route trip counts

	// Trips is the per-route multiplier of one unit of trip count
	// (daily rotations); Costs is the operating cost per rotation.
	Trips []float64 `mapstructure:"trips"`
	Costs []float64 `mapstructure:"costs"`
}

// Instance is the full set of constants of the fleet-assignment MILP.
type Instance struct {
	Planes  []PlaneType `mapstructure:"planes"`
	Demand  []float64   `mapstructure:"demand"`  // passengers per route per day
	Penalty []float64   `mapstructure:"penalty"` // cost per empty seat per route
}

// DefaultInstance returns the reference instance: fleet ceilings {7,15,2},
// demand {1000,2000,900,1200}, empty-seat penalties {40,50,45,70}.
func DefaultInstance() Instance {
	return Instance{
		Planes: []PlaneType{
			{Name: "Plane1", Capacity: 50, Fleet: 7, Trips: []float64{3, 2, 2, 1}, Costs: []float64{1000, 1100, 1200, 1500}},
			{Name: "Plane2", Capacity: 30, Fleet: 15, Trips: []float64{4, 3, 3, 2}, Costs: []float64{800, 900, 1000, 1000}},
			{Name: "Plane3", Capacity: 20, Fleet: 2, Trips: []float64{5, 5, 4, 2}, Costs: []float64{600, 800, 800, 900}},
		},
		Demand:  []float64{1000, 2000, 900, 1200},
		Penalty: []float64{40, 50, 45, 70},
	}
}

// Clone returns a deep copy.
func (in Instance) Clone() Instance {
	out := Instance{
		Planes:  make([]PlaneType, len(in.Planes)),
		Demand:  append([]float64(nil), in.Demand...),
		Penalty: append([]float64(nil), in.Penalty...),
	}
	for i, p := range in.Planes {
		p.Trips = append([]float64(nil), p.Trips...)
		p.Costs = append([]float64(nil), p.Costs...)
		out.Planes[i] = p
	}

	return out
}

// Validate checks the shape and that every number is finite and non-negative.
func (in Instance) Validate() error {
	if len(in.Planes) != NumPlaneTypes || len(in.Demand) != NumRoutes || len(in.Penalty) != NumRoutes {
		return ErrShape
	}
	for _, p := range in.Planes {
		if len(p.Trips) != NumRoutes || len(p.Costs) != NumRoutes {
			return fmt.Errorf("plane %q: %w", p.Name, ErrShape)
		}
		if !nonNegative(p.Capacity, p.Fleet) || !nonNegative(p.Trips...) || !nonNegative(p.Costs...) {
			return fmt.Errorf("plane %q: %w", p.Name, ErrNegative)
		}
	}
	if !nonNegative(in.Demand...) || !nonNegative(in.Penalty...) {
		return ErrNegative
	}

	return nil
}

// Seats is the number of seats one unit of trip count of plane i offers on route j.
func (in Instance) Seats(i, j int) float64 {
	return in.Planes[i].Capacity * in.Planes[i].Trips[j]
}

// TripCost is the objective coefficient of the trip count of plane i on route j.
func (in Instance) TripCost(i, j int) float64 {
	return in.Planes[i].Costs[j] * in.Planes[i].Trips[j]
}

// Assignment is an integer solution of the instance.
type Assignment struct {
	// Trips[i][j] is the trip count of plane type i on route j.
	Trips [NumPlaneTypes][NumRoutes]int
	// EmptySeats[j] is demand[j] minus the seats offered on route j.
	EmptySeats [NumRoutes]float64
	Objective  float64
}

func nonNegative(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return false
		}
	}

	return true
}
