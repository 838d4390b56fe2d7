package fleet_test

import (
	"context"
	"fmt"

	"github.com/0just0/optimization-course/fleet"
)

// ExampleSolve solves the reference instance with the default options.
func ExampleSolve() {
	a, _, err := fleet.Solve(context.Background(), fleet.DefaultInstance(), fleet.DefaultSolveOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("objective=%.0f\n", a.Objective)
	// Output:
	// objective=208700
}

// ExampleEvaluate prices an idle fleet: every seat goes empty.
func ExampleEvaluate() {
	var idle [fleet.NumPlaneTypes][fleet.NumRoutes]int
	a, err := fleet.Evaluate(fleet.DefaultInstance(), idle)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("objective=%.0f empty=%v\n", a.Objective, a.EmptySeats)
	// Output:
	// objective=264500 empty=[1000 2000 900 1200]
}
