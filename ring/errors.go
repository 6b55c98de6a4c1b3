package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrBoundOverflow is returned when bound*length of a view cannot be
	// represented as an int.
	ErrBoundOverflow = errors.New("bound overflow")

	// ErrPrecondition is the cause of every panic raised for API misuse:
	// dereferencing an exhausted position, comparing positions of different
	// sequences, lap counter overflow and so on.
	ErrPrecondition = errors.New("precondition violated")

	ErrInvalidBound = errors.New("invalid bound")
)

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func expects(cond bool, format string, args ...any) {
	if !cond {
		panic(violation(format, args...))
	}
}

// OverflowError reports a bounded view whose total element count does not fit
// in an int.
type OverflowError struct {
	Laps   uint64
	Length int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: %d laps of %d elements", ErrBoundOverflow, e.Laps, e.Length)
}

func (e *OverflowError) Unwrap() error {
	return ErrBoundOverflow
}
