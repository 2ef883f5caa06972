package model

import "fmt"

// ConstraintKind tells whether a DOF is solved for or prescribed
type ConstraintKind uint8

const (
	FreeDOF ConstraintKind = iota
	PrescribedDOF
)

// BoundaryCondition is the per-DOF input: either Free, or Prescribed with a
// known (possibly nonzero) displacement. The zero value is Free.
type BoundaryCondition struct {
	Kind  ConstraintKind
	value float64
}

func Free() BoundaryCondition { return BoundaryCondition{Kind: FreeDOF} }

func Prescribed(v float64) BoundaryCondition {
	return BoundaryCondition{Kind: PrescribedDOF, value: v}
}

func (bc BoundaryCondition) IsFree() bool { return bc.Kind == FreeDOF }

// Value returns the prescribed displacement; ok is false for a free DOF
func (bc BoundaryCondition) Value() (v float64, ok bool) {
	if bc.Kind != PrescribedDOF {
		return 0, false
	}
	return bc.value, true
}

func (bc BoundaryCondition) String() string {
	if v, ok := bc.Value(); ok {
		return fmt.Sprintf("Prescribed(%g)", v)
	}
	return "Free"
}

// Pinned returns the two prescribed-zero conditions of a fixed node
func Pinned() [2]BoundaryCondition {
	return [2]BoundaryCondition{Prescribed(0), Prescribed(0)}
}
