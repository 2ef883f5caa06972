package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultModulus is the Young's modulus (Pa, structural steel) used to derive a
// bar's axial rigidity from its diameter when no explicit rigidity is set
const DefaultModulus = 200.e9

// RigiditySource selects how a bar resolves its axial rigidity EA
type RigiditySource uint8

const (
	FromGeometry RigiditySource = iota // EA = Modulus * pi*d^2/4
	Explicit                           // EA = Rigidity.Value
)

func (rs RigiditySource) String() string {
	switch rs {
	case FromGeometry:
		return "FromGeometry"
	case Explicit:
		return "Explicit"
	default:
		return "Unknown"
	}
}

// Rigidity is the tagged axial rigidity of a bar. Value is only meaningful
// when Source is Explicit.
type Rigidity struct {
	Source RigiditySource
	Value  float64
}

// Bar is a two-node axial (truss) element. It borrows its nodes; stiffness is
// recomputed from the live node coordinates on every request.
type Bar struct {
	A, B     *Node
	Diameter float64
	Modulus  float64
	Rigidity Rigidity
}

var _ Element = (*Bar)(nil)

// NewBar connects two distinct nodes with a round bar of the given diameter.
// A zero diameter is allowed for bars whose rigidity will be set explicitly.
func NewBar(a, b *Node, diameter float64) (*Bar, error) {
	if a == nil || b == nil {
		return nil, geometryf("bar requires two nodes")
	}
	if diameter < 0 || math.IsNaN(diameter) || math.IsInf(diameter, 0) {
		return nil, geometryf("bar %d-%d has invalid diameter %v", a.Index, b.Index, diameter)
	}
	bar := &Bar{
		A:        a,
		B:        b,
		Diameter: diameter,
		Modulus:  DefaultModulus,
	}
	if bar.Length() == 0 {
		return nil, geometryf("bar %d-%d has zero length", a.Index, b.Index)
	}
	return bar, nil
}

func (b *Bar) GetProperties() Properties {
	return Properties{
		Name:       "Two-Node Axial Bar",
		ShortName:  "Bar2",
		Type:       Line,
		NVp:        2,
		NDOF:       2 * DOFPerNode,
		Dimensions: D1,
	}
}

func (b *Bar) Nodes() []*Node { return []*Node{b.A, b.B} }

// DOFs returns [a.x, a.y, b.x, b.y] global indices
func (b *Bar) DOFs() []int {
	ax, ay := b.A.DOFs()
	bx, by := b.B.DOFs()
	return []int{ax, ay, bx, by}
}

// SetAxialRigidity overrides the geometry-derived EA
func (b *Bar) SetAxialRigidity(ea float64) error {
	if ea < 0 || math.IsNaN(ea) || math.IsInf(ea, 0) {
		return geometryf("bar %d-%d: invalid axial rigidity %v", b.A.Index, b.B.Index, ea)
	}
	b.Rigidity = Rigidity{Source: Explicit, Value: ea}
	return nil
}

// ClearAxialRigidity returns the bar to geometry-derived rigidity
func (b *Bar) ClearAxialRigidity() {
	b.Rigidity = Rigidity{Source: FromGeometry}
}

// Area is the cross-sectional area of the round section
func (b *Bar) Area() float64 {
	return math.Pi * b.Diameter * b.Diameter / 4
}

// AxialRigidity resolves EA at call time
func (b *Bar) AxialRigidity() float64 {
	switch b.Rigidity.Source {
	case Explicit:
		return b.Rigidity.Value
	default:
		return b.Modulus * b.Area()
	}
}

func (b *Bar) Length() float64 {
	return math.Hypot(b.B.X()-b.A.X(), b.B.Y()-b.A.Y())
}

// DirectionCosines returns the unit vector from node A to node B
func (b *Bar) DirectionCosines() (cx, cy float64, err error) {
	L := b.Length()
	if L == 0 {
		err = geometryf("bar %d-%d has zero length", b.A.Index, b.B.Index)
		return
	}
	cx = (b.B.X() - b.A.X()) / L
	cy = (b.B.Y() - b.A.Y()) / L
	return
}

// AxialStiffness is EA/L, the spring constant of the bar along its axis
func (b *Bar) AxialStiffness() (float64, error) {
	L := b.Length()
	if L == 0 {
		return 0, geometryf("bar %d-%d has zero length", b.A.Index, b.B.Index)
	}
	return b.AxialRigidity() / L, nil
}

// LocalStiffness returns the 2×2 axial stiffness EA/L * [[1,-1],[-1,1]]
func (b *Bar) LocalStiffness() (*mat.Dense, error) {
	k, err := b.AxialStiffness()
	if err != nil {
		return nil, err
	}
	return mat.NewDense(2, 2, []float64{
		k, -k,
		-k, k,
	}), nil
}

// transformation returns t = [-cx, -cy, cx, cy], which projects the four
// global end displacements onto the bar elongation
func (b *Bar) transformation() (*mat.VecDense, error) {
	cx, cy, err := b.DirectionCosines()
	if err != nil {
		return nil, err
	}
	return mat.NewVecDense(4, []float64{-cx, -cy, cx, cy}), nil
}

// GlobalStiffness returns EA/L * t tᵀ ordered as [a.x, a.y, b.x, b.y]
func (b *Bar) GlobalStiffness() (*mat.Dense, error) {
	t, err := b.transformation()
	if err != nil {
		return nil, err
	}
	k, err := b.AxialStiffness()
	if err != nil {
		return nil, err
	}
	K := mat.NewDense(4, 4, nil)
	K.Outer(k, t, t)
	return K, nil
}

// AxialElongation returns the change of length of the bar for a global
// displacement vector u
func (b *Bar) AxialElongation(u []float64) (float64, error) {
	t, err := b.transformation()
	if err != nil {
		return 0, err
	}
	dofs := b.DOFs()
	ue := mat.NewVecDense(4, nil)
	for i, I := range dofs {
		if I >= len(u) {
			return 0, fmt.Errorf("element: displacement vector length %d does not cover DOF %d", len(u), I)
		}
		ue.SetVec(i, u[I])
	}
	return mat.Dot(t, ue), nil
}

// AxialForce returns the bar's axial force (tension positive)
func (b *Bar) AxialForce(u []float64) (float64, error) {
	du, err := b.AxialElongation(u)
	if err != nil {
		return 0, err
	}
	k, err := b.AxialStiffness()
	if err != nil {
		return 0, err
	}
	return k * du, nil
}
