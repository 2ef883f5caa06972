package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve computes the unknown displacements from the partitioned system
//
//	Kff Uf = Ff - Kfp Up
//
// and reconstructs the full displacement vector, with prescribed entries
// taken from the boundary conditions. Solve reads only the immutable inputs,
// so calling it again reproduces the same result. On error the previous
// solution, if any, is left untouched.
func (m *Model) Solve() error {
	var (
		dp = m.partition
		nF = dp.NumFree()
		nP = dp.NumPrescribed()
	)

	U := make([]float64, dp.NumDOF)
	up := make([]float64, nP)
	for i, dof := range dp.Prescribed {
		up[i], _ = m.bcs[dof].Value()
	}
	dp.Place(U, dp.Prescribed, up)

	if nF == 0 {
		m.logf("no free DOFs, displacements fully prescribed")
		m.reducedU = []float64{}
		m.solution = U
		return nil
	}

	rhs := mat.NewVecDense(nF, dp.Pick(m.forces, dp.Free))
	if nP > 0 {
		Kfp := dp.SubMatrix(m.k, dp.Free, dp.Prescribed)
		var KfpUp mat.VecDense
		KfpUp.MulVec(Kfp, mat.NewVecDense(nP, up))
		rhs.SubVec(rhs, &KfpUp)
	}

	Kff := dp.SubMatrix(m.k, dp.Free, dp.Free)
	var lu mat.LU
	lu.Factorize(Kff)
	cond := lu.Cond()
	m.logf("Kff [%d x %d] condition estimate %.3e", nF, nF, cond)
	if math.IsNaN(cond) || math.IsInf(cond, 0) || cond > m.cfg.ConditionLimit {
		return singularf("free-free stiffness condition %.3e exceeds limit %.3e, model is under-constrained",
			cond, m.cfg.ConditionLimit)
	}

	Uf := mat.NewVecDense(nF, nil)
	if err := lu.SolveVecTo(Uf, false, rhs); err != nil {
		var c mat.Condition
		if errors.As(err, &c) {
			return singularf("%v", err)
		}
		return err
	}

	reduced := append([]float64{}, Uf.RawVector().Data...)
	for i, v := range reduced {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return singularf("non-finite displacement at DOF %d", dp.Free[i])
		}
	}
	dp.Place(U, dp.Free, reduced)

	m.reducedU = reduced
	m.solution = U
	return nil
}
