package sparsetable

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a table is constructed from an empty sequence.
	ErrEmptyInput = errors.New("sparsetable: empty input sequence")

	// ErrNilOp is returned when a table is constructed without an operator.
	ErrNilOp = errors.New("sparsetable: nil combining operator")

	// ErrInvalidRange is returned when a query range is empty, inverted or out of bounds.
	ErrInvalidRange = errors.New("sparsetable: invalid range")
)

// RangeError describes a rejected [Begin, End) query against a table of Len elements.
//
// It unwraps to ErrInvalidRange.
type RangeError struct {
	Begin int
	End   int
	Len   int
}

func (e *RangeError) Error() string {
	switch {
	case e.Begin >= e.End:
		return fmt.Sprintf("sparsetable: invalid range [%d,%d): begin must be less than end", e.Begin, e.End)
	default:
		return fmt.Sprintf("sparsetable: invalid range [%d,%d): out of bounds for length %d", e.Begin, e.End, e.Len)
	}
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

func checkRange(begin, end, n int) error {
	if begin < 0 || end > n || begin >= end {
		return &RangeError{Begin: begin, End: end, Len: n}
	}
	return nil
}
