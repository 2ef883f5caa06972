package model

import (
	"github.com/notargets/gotruss/element"
	"gonum.org/v1/gonum/mat"
)

// Assemble builds the [2N × 2N] global stiffness matrix by direct stiffness
// superposition: each element's global block is added at the rows and columns
// of its DOFs.
func Assemble(nodeCount int, elements []element.Element) (*mat.Dense, error) {
	if nodeCount <= 0 {
		return nil, mismatchf("invalid node count %d", nodeCount)
	}
	nDOF := element.DOFPerNode * nodeCount
	K := mat.NewDense(nDOF, nDOF, nil)

	for e, el := range elements {
		ke, err := el.GlobalStiffness()
		if err != nil {
			return nil, err
		}
		dofs := el.DOFs()
		if r, c := ke.Dims(); r != len(dofs) || c != len(dofs) {
			return nil, mismatchf("element %d stiffness is %dx%d for %d DOFs", e, r, c, len(dofs))
		}
		for _, I := range dofs {
			if I < 0 || I >= nDOF {
				return nil, mismatchf("element %d DOF %d outside 0..%d", e, I, nDOF-1)
			}
		}
		for i, I := range dofs {
			for j, J := range dofs {
				K.Set(I, J, K.At(I, J)+ke.At(i, j))
			}
		}
	}
	return K, nil
}
