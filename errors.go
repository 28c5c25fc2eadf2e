package airy

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDegenerateGeometry = fmt.Errorf("degenerate geometry: %w", ErrInvalidInput)
	ErrInvariantViolated  = errors.New("stress invariant violated")
	ErrSolver             = errors.New("solver failure")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindGeometry     ErrorKind = "degenerate_geometry"
	KindInvariant    ErrorKind = "invariant"
	KindSolver       ErrorKind = "solver"
)

// OpError wraps an underlying error with the pipeline step that failed.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an *OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func opErr(op string, kind ErrorKind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}
