package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates force/boundary vectors that do not match
	// 2 × node count, or node indices that are duplicated or not contiguous.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	// ErrSingularSystem indicates a free-free stiffness block that cannot be
	// solved, i.e. boundary conditions leave a rigid-body mode.
	ErrSingularSystem = errors.New("model: singular system")
	// ErrNotSolved indicates a query that needs Solve to have succeeded.
	ErrNotSolved = errors.New("model: not solved")
)

// ModelError wraps model failures with detail.
type ModelError struct {
	Kind error
	Msg  string
}

func (e *ModelError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ModelError) Unwrap() error { return e.Kind }

func mismatchf(format string, args ...any) error {
	return &ModelError{Kind: ErrDimensionMismatch, Msg: fmt.Sprintf(format, args...)}
}

func singularf(format string, args ...any) error {
	return &ModelError{Kind: ErrSingularSystem, Msg: fmt.Sprintf(format, args...)}
}
