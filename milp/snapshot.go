package milp

import (
	"fmt"
	"math"
	"strconv"
)

// BoundOp selects the side of a branching bound.
type BoundOp uint8

const (
	// Upper is Var ≤ Threshold.
	Upper BoundOp = iota
	// Lower is Var ≥ Threshold+1.
	Lower
)

func (op BoundOp) String() string {
	if op == Lower {
		return "lower"
	}

	return "upper"
}

// Bound is one branching constraint added on a tree edge.
// Both children of a split share the same Threshold (the floor of the
// fractional value) and differ only in Op.
type Bound struct {
	Var       VarID
	Op        BoundOp
	Threshold int
}

// Admits reports whether x satisfies the bound within Tolerance.
func (b Bound) Admits(x float64) bool {
	if b.Op == Upper {
		return x <= float64(b.Threshold)+Tolerance
	}

	return x >= float64(b.Threshold+1)-Tolerance
}

// Constraint renders the bound as a linear constraint.
func (b Bound) Constraint() Constraint {
	c := Constraint{Terms: []Term{{Var: b.Var, Coef: 1}}}
	if b.Op == Upper {
		c.Name = "bb_x" + strconv.Itoa(int(b.Var)) + "_le_" + strconv.Itoa(b.Threshold)
		c.Sense = LessEq
		c.RHS = float64(b.Threshold)
	} else {
		c.Name = "bb_x" + strconv.Itoa(int(b.Var)) + "_ge_" + strconv.Itoa(b.Threshold+1)
		c.Sense = GreaterEq
		c.RHS = float64(b.Threshold + 1)
	}

	return c
}

func (b Bound) String() string {
	if b.Op == Upper {
		return fmt.Sprintf("x%d <= %d", b.Var, b.Threshold)
	}

	return fmt.Sprintf("x%d >= %d", b.Var, b.Threshold+1)
}

// boundLink is a cell of the persistent, append-only bound list. Children
// point at their parent's tail, so the root→node prefix is shared, never copied.
type boundLink struct {
	bound  Bound
	parent *boundLink
}

// Snapshot is the model as seen by one node: the shared base model plus the
// chain of branching bounds from the root to that node. It is immutable.
type Snapshot struct {
	model *Model
	tail  *boundLink
	depth int
}

// NewSnapshot returns the root snapshot of m and freezes m.
func NewSnapshot(m *Model) *Snapshot {
	m.frozen.Store(true)

	return &Snapshot{model: m}
}

// CloneWithBound returns a new snapshot equal to s plus one bound:
// v ≤ threshold for Upper, v ≥ threshold+1 for Lower. s is left untouched.
//
// Errors: ErrUnknownVariable, ErrNotInteger (continuous variables are never branched on).
func (s *Snapshot) CloneWithBound(v VarID, op BoundOp, threshold int) (*Snapshot, error) {
	variable, err := s.model.Variable(v)
	if err != nil {
		return nil, err
	}
	if variable.Kind != Integer {
		return nil, fmt.Errorf("%s: %w", variable.Name, ErrNotInteger)
	}

	return &Snapshot{
		model: s.model,
		tail:  &boundLink{bound: Bound{Var: v, Op: op, Threshold: threshold}, parent: s.tail},
		depth: s.depth + 1,
	}, nil
}

// Model returns the shared base model.
func (s *Snapshot) Model() *Model { return s.model }

// Depth is the number of branching bounds (tree depth of the owning node).
func (s *Snapshot) Depth() int { return s.depth }

// NumConstraints counts permanent constraints plus branching bounds.
func (s *Snapshot) NumConstraints() int { return s.model.NumConstraints() + s.depth }

// Bounds returns the branching bounds in root→leaf order.
func (s *Snapshot) Bounds() []Bound {
	out := make([]Bound, s.depth)
	i := s.depth - 1
	for l := s.tail; l != nil; l = l.parent {
		out[i] = l.bound
		i--
	}

	return out
}

// Constraints returns the permanent constraints followed by the bound
// constraints in root→leaf order.
func (s *Snapshot) Constraints() []Constraint {
	out := make([]Constraint, 0, s.NumConstraints())
	out = append(out, s.model.cons...)
	for _, b := range s.Bounds() {
		out = append(out, b.Constraint())
	}

	return out
}

// VarRange returns the tightest [lo, hi] the branching bounds impose on v
// (lo=0, hi=+Inf when unbounded). lo > hi means the chain is contradictory.
func (s *Snapshot) VarRange(v VarID) (lo, hi float64) {
	lo, hi = 0, math.Inf(1)
	for l := s.tail; l != nil; l = l.parent {
		if l.bound.Var != v {
			continue
		}
		if l.bound.Op == Upper {
			hi = math.Min(hi, float64(l.bound.Threshold))
		} else {
			lo = math.Max(lo, float64(l.bound.Threshold+1))
		}
	}

	return lo, hi
}

// Admits reports whether values satisfy the base model and every bound within Tolerance.
func (s *Snapshot) Admits(values Values) bool {
	if !s.model.Feasible(values, Tolerance) {
		return false
	}
	for l := s.tail; l != nil; l = l.parent {
		if !l.bound.Admits(values.At(l.bound.Var)) {
			return false
		}
	}

	return true
}
