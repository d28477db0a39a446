package cell

import (
	"errors"
	"fmt"
)

/* errors.go defines the closed set of error kinds returned by this package. */

// Kind identifies the type of failure reported by a function in this package.
type Kind int

const (
	// NoError is the Kind of a nil error.
	NoError Kind = iota
	// InvalidDimensionality means nvec was not 0, 1, 2, or 3.
	InvalidDimensionality
	// SingularLattice means the lattice vectors span zero volume.
	SingularLattice
	// IndexOutOfRange means a vector or component index was outside [0, 3).
	IndexOutOfRange
	// NonPositiveCutoff means a cutoff radius was <= 0.
	NonPositiveCutoff
	// UnsupportedZeroDimension means an operation needs nvec > 0.
	UnsupportedZeroDimension
	// InvalidGrid means grid ranges, shapes, periodicity flags or an output
	// buffer did not fit the Cell they were used with.
	InvalidGrid
	// Unknown is the Kind of errors which did not come from this package.
	Unknown
)

var kindNames = [...]string{
	NoError:                  "NoError",
	InvalidDimensionality:    "InvalidDimensionality",
	SingularLattice:          "SingularLattice",
	IndexOutOfRange:          "IndexOutOfRange",
	NonPositiveCutoff:        "NonPositiveCutoff",
	UnsupportedZeroDimension: "UnsupportedZeroDimension",
	InvalidGrid:              "InvalidGrid",
	Unknown:                  "Unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the error type returned by this package.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "cell: " + e.Kind.String()
	}
	return "cell: " + e.Msg
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrSingularLattice) works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidDimensionality    = &Error{Kind: InvalidDimensionality}
	ErrSingularLattice          = &Error{Kind: SingularLattice}
	ErrIndexOutOfRange          = &Error{Kind: IndexOutOfRange}
	ErrNonPositiveCutoff        = &Error{Kind: NonPositiveCutoff}
	ErrUnsupportedZeroDimension = &Error{Kind: UnsupportedZeroDimension}
	ErrInvalidGrid              = &Error{Kind: InvalidGrid}
)

// KindOf returns the Kind of err. Wrapped errors are unwrapped.
func KindOf(err error) Kind {
	if err == nil {
		return NoError
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func errorf(kind Kind, format string, a ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}
