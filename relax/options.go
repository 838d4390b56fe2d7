package relax

import "math"

// DefaultTolerance is the pivoting tolerance handed to the simplex routine.
// It is unrelated to milp.Tolerance, which governs integrality.
const DefaultTolerance = 1e-10

const panicToleranceInvalid = "relax: WithTolerance: tol must be finite and > 0"

// Option configures a Simplex. Constructors panic only on nonsensical values.
type Option func(*options)

type options struct {
	tol float64
}

func defaultOptions() options {
	return options{tol: DefaultTolerance}
}

// WithTolerance sets the simplex pivoting tolerance.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
