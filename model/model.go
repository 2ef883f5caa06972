package model

import (
	"math"
	"strings"

	"github.com/notargets/gotruss/element"
	"github.com/notargets/gotruss/utils"
	"gonum.org/v1/gonum/mat"
)

// Model owns a truss: its nodes, elements, applied nodal forces and per-DOF
// boundary conditions, plus the assembled stiffness and, after Solve, the
// displacement solution.
type Model struct {
	nodes    []*element.Node
	elements []element.Element
	forces   []float64
	bcs      []BoundaryCondition
	cfg      Config

	k         *mat.Dense
	partition *utils.DOFPartition

	// populated by Solve
	reducedU []float64
	solution []float64
}

// New validates the inputs and assembles the global stiffness matrix.
// forces and bcs are indexed by global DOF and must both have length
// 2 × len(nodes). The slices are copied.
func New(nodes []*element.Node, elements []element.Element, forces []float64,
	bcs []BoundaryCondition, cfg Config) (*Model, error) {
	if len(nodes) == 0 {
		return nil, mismatchf("model has no nodes")
	}

	// Node indices must be a permutation of 0..N-1
	N := len(nodes)
	seen := make([]bool, N)
	members := make(map[*element.Node]bool, N)
	for i, n := range nodes {
		if n == nil {
			return nil, mismatchf("node %d is nil", i)
		}
		if n.Index < 0 || n.Index >= N {
			return nil, mismatchf("node index %d outside 0..%d", n.Index, N-1)
		}
		if seen[n.Index] {
			return nil, mismatchf("duplicate node index %d", n.Index)
		}
		seen[n.Index] = true
		members[n] = true
	}

	for e, el := range elements {
		if el == nil {
			return nil, mismatchf("element %d is nil", e)
		}
		for _, n := range el.Nodes() {
			if !members[n] {
				return nil, mismatchf("element %d references a node that is not in the model", e)
			}
		}
	}

	nDOF := element.DOFPerNode * N
	if len(forces) != nDOF {
		return nil, mismatchf("forces length %d does not match expected %d", len(forces), nDOF)
	}
	if len(bcs) != nDOF {
		return nil, mismatchf("boundary conditions length %d does not match expected %d", len(bcs), nDOF)
	}
	for i, bc := range bcs {
		if v, ok := bc.Value(); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return nil, mismatchf("prescribed displacement at DOF %d is not finite", i)
		}
	}

	if cfg.ConditionLimit <= 0 {
		cfg.ConditionLimit = DefaultConfig().ConditionLimit
	}

	m := &Model{
		nodes:    append([]*element.Node(nil), nodes...),
		elements: append([]element.Element(nil), elements...),
		forces:   append([]float64(nil), forces...),
		bcs:      append([]BoundaryCondition(nil), bcs...),
		cfg:      cfg,
	}

	var err error
	if m.k, err = Assemble(N, m.elements); err != nil {
		return nil, err
	}

	free := make([]bool, nDOF)
	for i, bc := range m.bcs {
		free[i] = bc.IsFree()
	}
	if m.partition, err = utils.NewDOFPartition(free); err != nil {
		return nil, err
	}

	m.logf("assembled %d elements over %d nodes: %d DOF, %d free, %d prescribed",
		len(m.elements), N, nDOF, m.partition.NumFree(), m.partition.NumPrescribed())
	return m, nil
}

func (m *Model) NumNodes() int { return len(m.nodes) }
func (m *Model) NumDOF() int   { return element.DOFPerNode * len(m.nodes) }

func (m *Model) Nodes() []*element.Node       { return m.nodes }
func (m *Model) Elements() []element.Element { return m.elements }

// K returns a copy of the assembled global stiffness matrix
func (m *Model) K() *mat.Dense {
	return mat.DenseCopyOf(m.k)
}

func (m *Model) Forces() []float64 {
	return append([]float64(nil), m.forces...)
}

func (m *Model) BoundaryConditions() []BoundaryCondition {
	return append([]BoundaryCondition(nil), m.bcs...)
}

// FreeDOFs returns the global indices of the unknown DOFs in scan order
func (m *Model) FreeDOFs() []int {
	return append([]int(nil), m.partition.Free...)
}

func (m *Model) Solved() bool { return m.solution != nil }

// ReducedU returns the solved free-DOF displacements in FreeDOFs order, or
// nil before Solve
func (m *Model) ReducedU() []float64 {
	if m.reducedU == nil {
		return nil
	}
	return append([]float64{}, m.reducedU...)
}

// Displacements returns the full displacement vector, or nil before Solve
func (m *Model) Displacements() []float64 {
	if m.solution == nil {
		return nil
	}
	return append([]float64(nil), m.solution...)
}

func (m *Model) String() string {
	var sb strings.Builder
	free := m.partition.IsFree
	sb.WriteString(utils.FormatMatrix("K", m.k, 4))
	sb.WriteString(utils.FormatVector("F", m.forces, free, 4))
	if m.solution != nil {
		sb.WriteString(utils.FormatVector("U", m.solution, free, 6))
	}
	return sb.String()
}
