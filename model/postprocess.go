package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type axialForcer interface {
	AxialForce(u []float64) (float64, error)
}

// internalForces returns K U for the current solution
func (m *Model) internalForces() ([]float64, error) {
	if m.solution == nil {
		return nil, ErrNotSolved
	}
	var ku mat.VecDense
	ku.MulVec(m.k, mat.NewVecDense(len(m.solution), m.solution))
	return append([]float64(nil), ku.RawVector().Data...), nil
}

// Reactions returns the support reactions K U - F at the prescribed DOFs;
// entries at free DOFs are zero
func (m *Model) Reactions() ([]float64, error) {
	r, err := m.internalForces()
	if err != nil {
		return nil, err
	}
	floats.Sub(r, m.forces)
	for _, dof := range m.partition.Free {
		r[dof] = 0
	}
	return r, nil
}

// Residual returns the 2-norm of the out-of-balance force at the free DOFs,
// a check on the accuracy of the solve
func (m *Model) Residual() (float64, error) {
	r, err := m.internalForces()
	if err != nil {
		return 0, err
	}
	floats.Sub(r, m.forces)
	return floats.Norm(m.partition.Pick(r, m.partition.Free), 2), nil
}

// ElementForces returns the axial force of every element, tension positive,
// in element order
func (m *Model) ElementForces() ([]float64, error) {
	if m.solution == nil {
		return nil, ErrNotSolved
	}
	out := make([]float64, len(m.elements))
	for e, el := range m.elements {
		af, ok := el.(axialForcer)
		if !ok {
			return nil, fmt.Errorf("model: element %d (%s) does not report an axial force",
				e, el.GetProperties().ShortName)
		}
		f, err := af.AxialForce(m.solution)
		if err != nil {
			return nil, err
		}
		out[e] = f
	}
	return out, nil
}
