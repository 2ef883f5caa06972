package element

import "gonum.org/v1/gonum/mat"

// Dimensionality represents the spatial dimension of an element
type Dimensionality uint8

const (
	D1 Dimensionality = iota + 1 // 1D elements (axial bars in their own frame)
	D2                           // 2D elements
)

type ElementGeometry uint8

const (
	Line ElementGeometry = iota
)

func (g ElementGeometry) String() string {
	switch g {
	case Line:
		return "Line"
	default:
		return "Unknown"
	}
}

// DOFPerNode is the number of displacement components carried by each node
// (x and y translation)
const DOFPerNode = 2

// Properties contains metadata describing an element type
type Properties struct {
	Name       string          // Full descriptive name (e.g., "Two-Node Axial Bar")
	ShortName  string          // Abbreviated name (e.g., "Bar2")
	Type       ElementGeometry // Element shape
	NVp        int             // Number of vertex nodes
	NDOF       int             // Number of element DOFs, NVp * DOFPerNode
	Dimensions Dimensionality  // Dimension of the element's own frame
}

// Element is anything that contributes a global stiffness block to a model
type Element interface {
	GetProperties() Properties

	// Nodes returns the element's vertex nodes in local order
	Nodes() []*Node

	// DOFs returns the global degree-of-freedom indices of the element, in
	// the same order as the rows/columns of GlobalStiffness
	DOFs() []int

	// GlobalStiffness returns the [NDOF × NDOF] stiffness contribution in
	// global coordinates, recomputed from the current node positions
	GlobalStiffness() (*mat.Dense, error)
}
