package element

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry indicates malformed node coordinates or an element whose
// geometry cannot define a stiffness (zero length, negative size).
var ErrInvalidGeometry = errors.New("element: invalid geometry")

// GeometryError wraps geometry validation failures with detail.
type GeometryError struct {
	Kind error
	Msg  string
}

func (e *GeometryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GeometryError) Unwrap() error { return e.Kind }

func geometryf(format string, args ...any) error {
	return &GeometryError{Kind: ErrInvalidGeometry, Msg: fmt.Sprintf(format, args...)}
}
