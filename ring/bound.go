package ring

import (
	"fmt"
	"strconv"
	"strings"
)

// Bound is the number of laps a view permits before it terminates. The zero
// value is Unbounded.
type Bound struct {
	n       uint64
	bounded bool
}

// Unbounded repeats the underlying sequence forever.
var Unbounded = Bound{}

// Times bounds a view to exactly n laps.
func Times(n uint64) Bound {
	return Bound{n: n, bounded: true}
}

func (b Bound) IsBounded() bool {
	return b.bounded
}

// Count returns the number of laps and whether the bound is finite.
func (b Bound) Count() (uint64, bool) {
	return b.n, b.bounded
}

func (b Bound) String() string {
	if !b.bounded {
		return "forever"
	}
	return strconv.FormatUint(b.n, 10)
}

// ParseBound accepts "forever", "unbounded", "inf" or a decimal lap count.
func ParseBound(s string) (Bound, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forever", "unbounded", "inf":
		return Unbounded, nil
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Bound{}, fmt.Errorf("%w: %q", ErrInvalidBound, s)
	}
	return Times(n), nil
}

func (b Bound) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bound) UnmarshalText(text []byte) error {
	parsed, err := ParseBound(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
