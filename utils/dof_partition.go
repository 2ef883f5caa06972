package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DOFPartition manages pick and place indices between a global DOF vector and
// its free / prescribed subsets
type DOFPartition struct {
	NumDOF int

	// Global DOF indices of each set, in ascending (scan) order
	Free       []int
	Prescribed []int

	// GlobalToLocal maps a global DOF to its position inside whichever set
	// holds it; IsFree tells which set that is
	GlobalToLocal []int
	IsFree        []bool
}

// NewDOFPartition builds the partition from a per-DOF free mask
func NewDOFPartition(free []bool) (*DOFPartition, error) {
	if len(free) == 0 {
		return nil, fmt.Errorf("invalid dimensions: NumDOF=%d", len(free))
	}

	dp := &DOFPartition{
		NumDOF:        len(free),
		Free:          make([]int, 0, len(free)),
		Prescribed:    make([]int, 0, len(free)),
		GlobalToLocal: make([]int, len(free)),
		IsFree:        make([]bool, len(free)),
	}
	copy(dp.IsFree, free)

	for dof, isFree := range free {
		if isFree {
			dp.GlobalToLocal[dof] = len(dp.Free)
			dp.Free = append(dp.Free, dof)
		} else {
			dp.GlobalToLocal[dof] = len(dp.Prescribed)
			dp.Prescribed = append(dp.Prescribed, dof)
		}
	}

	return dp, nil
}

func (dp *DOFPartition) NumFree() int       { return len(dp.Free) }
func (dp *DOFPartition) NumPrescribed() int { return len(dp.Prescribed) }

// Pick gathers src at the given global indices
func (dp *DOFPartition) Pick(src []float64, set []int) []float64 {
	if len(src) != dp.NumDOF {
		panic(fmt.Sprintf("pick: source length %d does not match NumDOF=%d", len(src), dp.NumDOF))
	}
	out := make([]float64, len(set))
	for i, dof := range set {
		out[i] = src[dof]
	}
	return out
}

// Place scatters vals into dst at the given global indices
func (dp *DOFPartition) Place(dst []float64, set []int, vals []float64) {
	if len(dst) != dp.NumDOF {
		panic(fmt.Sprintf("place: destination length %d does not match NumDOF=%d", len(dst), dp.NumDOF))
	}
	if len(vals) != len(set) {
		panic(fmt.Sprintf("place: %d values for %d indices", len(vals), len(set)))
	}
	for i, dof := range set {
		dst[dof] = vals[i]
	}
}

// SubMatrix extracts k restricted to the given rows and columns. Returns nil
// when either index set is empty, since gonum has no zero-sized Dense.
func (dp *DOFPartition) SubMatrix(k mat.Matrix, rows, cols []int) *mat.Dense {
	if r, c := k.Dims(); r != dp.NumDOF || c != dp.NumDOF {
		panic(fmt.Sprintf("submatrix: matrix is %dx%d, want %dx%d", r, c, dp.NumDOF, dp.NumDOF))
	}
	if len(rows) == 0 || len(cols) == 0 {
		return nil
	}
	sub := mat.NewDense(len(rows), len(cols), nil)
	for i, I := range rows {
		for j, J := range cols {
			sub.Set(i, j, k.At(I, J))
		}
	}
	return sub
}
