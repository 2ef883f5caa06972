package model

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"testing"

	"github.com/notargets/gotruss/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceGlobalK = []float64{
	20, 10, -10, 0, -10, -10,
	10, 10, 0, 0, -10, -10,
	-10, 0, 10, 0, 0, 0,
	0, 0, 0, 5, 0, -5,
	-10, -10, 0, 0, 10, 10,
	-10, -10, 0, -5, 10, 15,
}

// triangleTruss builds the right-triangle truss with nodes at (0,0), (10,0),
// (10,10), pinned at node 0 and on a roller at node 1, loaded at node 2
func triangleTruss(t *testing.T) ([]*element.Node, []element.Element, []float64, []BoundaryCondition) {
	t.Helper()
	var (
		coords     = [][]float64{{0, 0}, {10, 0}, {10, 10}}
		pairs      = [][2]int{{0, 1}, {1, 2}, {0, 2}}
		rigidities = []float64{100, 50, 200 * math.Sqrt2}
		nodes      = make([]*element.Node, len(coords))
		elements   = make([]element.Element, len(pairs))
		forces     = []float64{0, 0, 0, 0, 2, 1}
		supports   = []BoundaryCondition{
			Prescribed(0), Prescribed(0), Free(), Prescribed(0), Free(), Free(),
		}
	)
	for i, xy := range coords {
		n, err := element.NewNode(xy, i)
		require.NoError(t, err)
		nodes[i] = n
	}
	for i, p := range pairs {
		bar, err := element.NewBar(nodes[p[0]], nodes[p[1]], 0)
		require.NoError(t, err)
		require.NoError(t, bar.SetAxialRigidity(rigidities[i]))
		elements[i] = bar
	}
	return nodes, elements, forces, supports
}

func newTriangleModel(t *testing.T) *Model {
	nodes, elements, forces, bcs := triangleTruss(t)
	m, err := New(nodes, elements, forces, bcs, DefaultConfig())
	require.NoError(t, err)
	return m
}

func TestGlobalStiffnessMatrix(t *testing.T) {
	m := newTriangleModel(t)
	K := m.K()
	r, c := K.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 6, c)
	assert.InDeltaSlice(t, referenceGlobalK, K.RawMatrix().Data, 1.e-10)
}

func TestReducedDisplacements(t *testing.T) {
	m := newTriangleModel(t)
	assert.Nil(t, m.ReducedU())
	assert.Nil(t, m.Displacements())
	assert.False(t, m.Solved())

	require.NoError(t, m.Solve())
	assert.True(t, m.Solved())
	assert.Equal(t, []int{2, 4, 5}, m.FreeDOFs())
	assert.InDeltaSlice(t, []float64{0, 0.4, -0.2}, m.ReducedU(), 1.e-12)
}

func TestCompleteDisplacements(t *testing.T) {
	m := newTriangleModel(t)
	require.NoError(t, m.Solve())
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0.4, -0.2}, m.Displacements(), 1.e-12)
}

func TestSolveIdempotent(t *testing.T) {
	m := newTriangleModel(t)
	require.NoError(t, m.Solve())
	first := m.Displacements()
	firstReduced := m.ReducedU()

	require.NoError(t, m.Solve())
	assert.Equal(t, first, m.Displacements())
	assert.Equal(t, firstReduced, m.ReducedU())
}

func TestQueriesReturnCopies(t *testing.T) {
	m := newTriangleModel(t)
	require.NoError(t, m.Solve())

	u := m.Displacements()
	u[4] = 99
	assert.InDelta(t, 0.4, m.Displacements()[4], 1.e-12)

	K := m.K()
	K.Set(0, 0, -1)
	assert.InDelta(t, 20, m.K().At(0, 0), 1.e-10)

	bcs := m.BoundaryConditions()
	bcs[2] = Prescribed(1)
	assert.True(t, m.BoundaryConditions()[2].IsFree())
}

func TestFullyFreeModelIsSingular(t *testing.T) {
	nodes, elements, forces, _ := triangleTruss(t)
	bcs := make([]BoundaryCondition, 6)
	for i := range bcs {
		bcs[i] = Free()
	}
	m, err := New(nodes, elements, forces, bcs, DefaultConfig())
	require.NoError(t, err)

	err = m.Solve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingularSystem), "got %v", err)
	var me *ModelError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, ErrSingularSystem, me.Kind)

	assert.False(t, m.Solved())
	assert.Nil(t, m.Displacements())
}

func TestRotationModeIsSingular(t *testing.T) {
	// Pinning node 0 alone leaves the rotation about it
	nodes, elements, forces, _ := triangleTruss(t)
	bcs := []BoundaryCondition{Prescribed(0), Prescribed(0), Free(), Free(), Free(), Free()}
	m, err := New(nodes, elements, forces, bcs, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, errors.Is(m.Solve(), ErrSingularSystem))
}

func TestUnconnectedNodeIsSingular(t *testing.T) {
	nodes, elements, _, bcs := triangleTruss(t)
	lonely, err := element.NewNode([]float64{20, 20}, 3)
	require.NoError(t, err)
	nodes = append(nodes, lonely)
	bcs = append(bcs, Free(), Free())
	forces := make([]float64, 8)

	m, err := New(nodes, elements, forces, bcs, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, errors.Is(m.Solve(), ErrSingularSystem))
}

func TestNonzeroPrescribedDisplacement(t *testing.T) {
	// Two collinear bars 0-1-2 along x with stiffness 10 and 30; node 2 is
	// pushed to x=1 and node 1 settles where the springs balance
	var nodes []*element.Node
	for i := 0; i < 3; i++ {
		n, err := element.NewNode([]float64{10 * float64(i), 0}, i)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	b1, err := element.NewBar(nodes[0], nodes[1], 0)
	require.NoError(t, err)
	require.NoError(t, b1.SetAxialRigidity(100))
	b2, err := element.NewBar(nodes[1], nodes[2], 0)
	require.NoError(t, err)
	require.NoError(t, b2.SetAxialRigidity(300))

	pin := Pinned()
	bcs := []BoundaryCondition{
		pin[0], pin[1],
		Free(), Prescribed(0),
		Prescribed(1), Prescribed(0),
	}
	m, err := New(nodes, []element.Element{b1, b2}, make([]float64, 6), bcs, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, m.Solve())

	assert.InDeltaSlice(t, []float64{0.75}, m.ReducedU(), 1.e-12)
	assert.InDeltaSlice(t, []float64{0, 0, 0.75, 0, 1, 0}, m.Displacements(), 1.e-12)

	r, err := m.Reactions()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-7.5, 0, 0, 0, 7.5, 0}, r, 1.e-12)

	f, err := m.ElementForces()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{7.5, 7.5}, f, 1.e-12)
}

func TestAllPrescribed(t *testing.T) {
	nodes, elements, forces, _ := triangleTruss(t)
	bcs := []BoundaryCondition{
		Prescribed(0), Prescribed(0), Prescribed(0.1), Prescribed(0),
		Prescribed(0), Prescribed(0),
	}
	m, err := New(nodes, elements, forces, bcs, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, m.Solve())
	assert.Empty(t, m.ReducedU())
	assert.NotNil(t, m.ReducedU())
	assert.Equal(t, []float64{0, 0, 0.1, 0, 0, 0}, m.Displacements())
}

func TestReactionsAndElementForces(t *testing.T) {
	m := newTriangleModel(t)

	_, err := m.Reactions()
	assert.True(t, errors.Is(err, ErrNotSolved))
	_, err = m.ElementForces()
	assert.True(t, errors.Is(err, ErrNotSolved))
	_, err = m.Residual()
	assert.True(t, errors.Is(err, ErrNotSolved))

	require.NoError(t, m.Solve())

	r, err := m.Reactions()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2, -2, 0, 1, 0, 0}, r, 1.e-10)

	// Reactions balance the applied load
	fx, fy := 0., 0.
	F := m.Forces()
	for i := 0; i < len(r); i += 2 {
		fx += r[i] + F[i]
		fy += r[i+1] + F[i+1]
	}
	assert.InDelta(t, 0, fx, 1.e-10)
	assert.InDelta(t, 0, fy, 1.e-10)

	f, err := m.ElementForces()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, -1, 2 * math.Sqrt2}, f, 1.e-10)

	res, err := m.Residual()
	require.NoError(t, err)
	assert.InDelta(t, 0, res, 1.e-10)
}

func TestConditionLimit(t *testing.T) {
	nodes, elements, forces, bcs := triangleTruss(t)
	cfg := DefaultConfig()
	cfg.ConditionLimit = 1.0001
	m, err := New(nodes, elements, forces, bcs, cfg)
	require.NoError(t, err)
	assert.True(t, errors.Is(m.Solve(), ErrSingularSystem))

	// A zero limit falls back to the default
	m, err = New(nodes, elements, forces, bcs, Config{})
	require.NoError(t, err)
	assert.NoError(t, m.Solve())
}

func TestLogger(t *testing.T) {
	nodes, elements, forces, bcs := triangleTruss(t)
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = log.New(&buf, "", 0)

	m, err := New(nodes, elements, forces, bcs, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Solve())
	assert.Contains(t, buf.String(), "assembled 3 elements over 3 nodes: 6 DOF, 3 free, 3 prescribed")
	assert.Contains(t, buf.String(), "Kff [3 x 3] condition estimate")
}

func TestString(t *testing.T) {
	m := newTriangleModel(t)
	s := m.String()
	assert.Contains(t, s, "K [6 x 6] = [")
	assert.NotContains(t, s, "U [")

	require.NoError(t, m.Solve())
	assert.Contains(t, m.String(), "U [6] = [0.000000*, 0.000000*, 0.000000, 0.000000*, 0.400000, -0.200000]")
}

func TestNewErrors(t *testing.T) {
	nodes, elements, forces, bcs := triangleTruss(t)

	dup, err := element.NewNode([]float64{5, 5}, 1)
	require.NoError(t, err)
	gap, err := element.NewNode([]float64{5, 5}, 7)
	require.NoError(t, err)
	foreign, err := element.NewNode([]float64{0, 0}, 0)
	require.NoError(t, err)
	stray, err := element.NewBar(foreign, nodes[1], 1)
	require.NoError(t, err)

	cases := []struct {
		name     string
		nodes    []*element.Node
		elements []element.Element
		forces   []float64
		bcs      []BoundaryCondition
	}{
		{"NoNodes", nil, nil, nil, nil},
		{"NilNode", []*element.Node{nodes[0], nil, nodes[2]}, nil, forces, bcs},
		{"DuplicateIndex", []*element.Node{nodes[0], nodes[1], dup}, nil, forces, bcs},
		{"GapInIndices", []*element.Node{nodes[0], nodes[1], gap}, nil, forces, bcs},
		{"ShortForces", nodes, elements, forces[:5], bcs},
		{"LongBCs", nodes, elements, forces, append(append([]BoundaryCondition{}, bcs...), Free())},
		{"NilElement", nodes, []element.Element{elements[0], nil}, forces, bcs},
		{"ForeignNode", nodes, []element.Element{stray}, forces, bcs},
		{"NaNPrescribed", nodes, elements, forces,
			[]BoundaryCondition{Prescribed(math.NaN()), Free(), Free(), Free(), Free(), Free()}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.nodes, tc.elements, tc.forces, tc.bcs, DefaultConfig())
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrDimensionMismatch), "got %v", err)
		})
	}
}

func TestNewPropagatesGeometryErrors(t *testing.T) {
	nodes, elements, forces, bcs := triangleTruss(t)
	// Collapse bar 0-1 after construction
	nodes[1].Coordinates = nodes[0].Coordinates
	_, err := New(nodes, elements, forces, bcs, DefaultConfig())
	assert.True(t, errors.Is(err, element.ErrInvalidGeometry), "got %v", err)
}

func TestBoundaryCondition(t *testing.T) {
	var zero BoundaryCondition
	assert.True(t, zero.IsFree())
	_, ok := zero.Value()
	assert.False(t, ok)

	bc := Prescribed(-0.25)
	assert.False(t, bc.IsFree())
	v, ok := bc.Value()
	assert.True(t, ok)
	assert.Equal(t, -0.25, v)

	assert.Equal(t, "Free", Free().String())
	assert.Equal(t, "Prescribed(-0.25)", bc.String())
	for _, p := range Pinned() {
		v, ok := p.Value()
		assert.True(t, ok)
		assert.Zero(t, v)
	}
}

func Example() {
	n0, _ := element.NewNode([]float64{0, 0}, 0)
	n1, _ := element.NewNode([]float64{10, 0}, 1)
	bar, _ := element.NewBar(n0, n1, 0)
	_ = bar.SetAxialRigidity(100)

	pin := Pinned()
	m, err := New(
		[]*element.Node{n0, n1},
		[]element.Element{bar},
		[]float64{0, 0, 5, 0},
		[]BoundaryCondition{pin[0], pin[1], Free(), Prescribed(0)},
		DefaultConfig(),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = m.Solve(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.2f\n", m.Displacements())
	// Output: [0.00 0.00 0.50 0.00]
}
