package milp

import "math"

// Tolerance is the single integrality tolerance of the package. Integrality
// tests, branching candidates and branching thresholds are all derived from
// it so the three can never disagree.
const Tolerance = 1e-5

// IsIntegral reports whether x is within Tolerance of an integer.
func IsIntegral(x float64) bool {
	return math.Abs(x-math.Round(x)) <= Tolerance
}

// split returns ⌊x⌋ and the fractional part x−⌊x⌋.
// For a non-integral x the fractional part lies in (Tolerance, 1−Tolerance).
func split(x float64) (floor, frac float64) {
	floor = math.Floor(x)

	return floor, x - floor
}

// IntegerFeasible reports whether every Integer variable of m is integral in values.
// Continuous variables are exempt.
func IntegerFeasible(m *Model, values Values) bool {
	for i, v := range m.vars {
		if v.Kind == Integer && !IsIntegral(values.At(VarID(i))) {
			return false
		}
	}

	return true
}

// checkNumerics rejects values that cannot be compared against Tolerance.
func checkNumerics(values Values, n int) error {
	if len(values) != n {
		return ErrNumericalInstability
	}
	for _, x := range values {
		if !finite(x) || x < -Tolerance {
			return ErrNumericalInstability
		}
	}

	return nil
}
