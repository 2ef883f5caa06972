// Package model assembles and solves a linear static truss.
//
// A Model is built from nodes, elements, one applied force per global DOF and
// one BoundaryCondition per global DOF. New validates the inputs and
// assembles the global stiffness K by direct superposition of the element
// blocks. Solve partitions the DOFs into free (F) and prescribed (P) sets and
// solves
//
//	Kff Uf = Ff - Kfp Up
//
// with a dense LU factorization. Prescribed values may be nonzero.
//
// Errors:
//
//   - ErrDimensionMismatch: inputs inconsistent with 2 × node count, or node
//     indices that are not a permutation of 0..N-1.
//   - ErrSingularSystem: Kff is singular or its condition estimate exceeds
//     Config.ConditionLimit; the supports leave a rigid-body mode.
//   - ErrNotSolved: post-processing requested before a successful Solve.
//
// A Model is not safe for concurrent use.
package model
