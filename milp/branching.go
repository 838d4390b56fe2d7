package milp

import (
	"fmt"
	"math"
	"strings"
)

// BranchRule selects the branching policy.
type BranchRule uint8

const (
	// NearestInteger splits the single most nearly integral variable.
	// With f the fractional part of every fractional integer variable:
	//   - f_min     = smallest f         (closest to its floor),
	//   - 1 − f_max = smallest 1 − f     (closest to its ceiling).
	// If f_min ≤ 1 − f_max the floor-side variable is split and the "≤ floor"
	// child is explored first; otherwise the ceiling-side variable is split
	// and the "≥ ceil" child goes first. Ties between variables keep the
	// lowest VarID.
	NearestInteger BranchRule = iota

	// MostFractional splits the variable whose fractional part is closest to
	// ½ (lowest VarID on ties) and explores the "≤ floor" child first.
	MostFractional
)

func (r BranchRule) String() string {
	if r == MostFractional {
		return "most-fractional"
	}

	return "nearest-integer"
}

// ParseBranchRule maps "nearest-integer" or "most-fractional" (case-insensitive)
// to a BranchRule. The empty string selects NearestInteger.
func ParseBranchRule(s string) (BranchRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest-integer", "nearest":
		return NearestInteger, nil
	case "most-fractional", "fractional":
		return MostFractional, nil
	}

	return NearestInteger, fmt.Errorf("branching rule %q: %w", s, ErrInvalidOptions)
}

// Branch is a split decision: the variable, the shared threshold ⌊value⌋ and
// the side explored first.
type Branch struct {
	Var       VarID
	Value     float64
	Threshold int
	First     BoundOp
}

// Order returns the two child bounds in exploration order.
func (b Branch) Order() [2]BoundOp {
	if b.First == Lower {
		return [2]BoundOp{Lower, Upper}
	}

	return [2]BoundOp{Upper, Lower}
}

// Bounds returns the two child bounds in exploration order.
func (b Branch) Bounds() [2]Bound {
	ops := b.Order()

	return [2]Bound{
		{Var: b.Var, Op: ops[0], Threshold: b.Threshold},
		{Var: b.Var, Op: ops[1], Threshold: b.Threshold},
	}
}

// SelectBranch applies rule to a relaxation of m. It returns false when every
// integer variable is already integral.
func SelectBranch(m *Model, values Values, rule BranchRule) (Branch, bool) {
	var (
		floorVar = VarID(-1) // smallest fractional part
		ceilVar  = VarID(-1) // smallest distance to the ceiling
		halfVar  = VarID(-1) // fractional part closest to ½

		fMin     = math.Inf(1)
		ceilGap  = math.Inf(1)
		halfDist = math.Inf(1)

		floorFl, ceilFl, halfFl float64
	)

	for i, v := range m.vars {
		if v.Kind != Integer {
			continue
		}
		x := values.At(VarID(i))
		if IsIntegral(x) {
			continue
		}
		fl, f := split(x)
		if f < fMin {
			fMin, floorVar, floorFl = f, VarID(i), fl
		}
		if 1-f < ceilGap {
			ceilGap, ceilVar, ceilFl = 1-f, VarID(i), fl
		}
		if d := math.Abs(f - 0.5); d < halfDist {
			halfDist, halfVar, halfFl = d, VarID(i), fl
		}
	}
	if floorVar < 0 {
		return Branch{}, false
	}

	if rule == MostFractional {
		return Branch{Var: halfVar, Value: values.At(halfVar), Threshold: int(halfFl), First: Upper}, true
	}
	if fMin <= ceilGap {
		return Branch{Var: floorVar, Value: values.At(floorVar), Threshold: int(floorFl), First: Upper}, true
	}

	return Branch{Var: ceilVar, Value: values.At(ceilVar), Threshold: int(ceilFl), First: Lower}, true
}
