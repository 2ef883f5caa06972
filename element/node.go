package element

import (
	"math"
)

// Node is a labeled point in the plane. Index fixes the node's position in the
// global DOF ordering: its x and y displacements live at 2*Index and
// 2*Index+1.
type Node struct {
	Coordinates [2]float64
	Index       int
}

// NewNode creates a node from a coordinate slice, which must hold exactly two
// finite values
func NewNode(coords []float64, index int) (*Node, error) {
	if len(coords) != 2 {
		return nil, geometryf("node %d has %d coordinates, want 2", index, len(coords))
	}
	if index < 0 {
		return nil, geometryf("node index %d is negative", index)
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, geometryf("node %d has non-finite coordinate %v", index, c)
		}
	}
	return &Node{
		Coordinates: [2]float64{coords[0], coords[1]},
		Index:       index,
	}, nil
}

func (n *Node) X() float64 { return n.Coordinates[0] }
func (n *Node) Y() float64 { return n.Coordinates[1] }

// DOFs returns the global x and y DOF indices of the node
func (n *Node) DOFs() (int, int) {
	return DOFPerNode * n.Index, DOFPerNode*n.Index + 1
}
