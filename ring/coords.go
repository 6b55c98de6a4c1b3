package ring

import (
	"cmp"
	"math"
)

// coords locates a position on the ring: the lap counter plus the position
// inside the current lap. begin and end are fixed at creation and identify
// the underlying sequence. lap stays zero on unbounded rings.
type coords[P comparable] struct {
	curr     P
	begin    P
	end      P
	lap      uint64
	bounded  bool
	sentinel bool
}

type offsetter[P comparable] interface {
	Offset(p P, n int) P
	Distance(from, to P) int
}

func start[P comparable](b Bound, first, last P) coords[P] {
	return coords[P]{
		curr:    first,
		begin:   first,
		end:     last,
		bounded: b.bounded,
	}
}

// finish is the terminal boundary. Unbounded rings get the sentinel, which
// is only reached by positions over an empty sequence. Bounded rings over an
// empty sequence keep lap zero so that begin equals end.
func finish[P comparable](b Bound, first, last P) coords[P] {
	c := start(b, first, last)
	if !b.bounded {
		c.curr = last
		c.sentinel = true
		return c
	}
	if first != last {
		c.lap = b.n
	}
	return c
}

func (c *coords[P]) expectsLive() {
	expects(!c.sentinel && c.begin != c.end && c.curr != c.end, "position is not dereferenceable")
}

func expectsSameRange[P comparable](a, b coords[P]) {
	expects(a.begin == b.begin && a.end == b.end, "positions belong to different sequences")
}

func (c *coords[P]) next(s interface{ Next(P) P }) {
	c.expectsLive()

	c.curr = s.Next(c.curr)
	if c.curr == c.end {
		if c.bounded {
			expects(c.lap < math.MaxUint64, "lap counter overflow")
			c.lap++
		}
		c.curr = c.begin
	}
}

func (c *coords[P]) prev(s interface{ Prev(P) P }) {
	c.expectsLive()

	if c.curr == c.begin {
		c.curr = c.end
		if c.bounded {
			expects(c.lap > 0, "lap counter underflow")
			c.lap--
		}
	}
	c.curr = s.Prev(c.curr)
}

func (c *coords[P]) advance(s offsetter[P], k int) {
	switch {
	case k > 0:
		c.forward(s, uint(k))
	case k < 0:
		// -k wraps for math.MinInt, uint still yields its magnitude.
		c.backward(s, uint(-k))
	}
}

// forward moves d steps ahead. Whole laps are resolved with one division.
func (c *coords[P]) forward(s offsetter[P], d uint) {
	c.expectsLive()

	toEnd := uint(s.Distance(c.curr, c.end))
	if d < toEnd {
		c.curr = s.Offset(c.curr, int(d))
		return
	}

	length := uint(s.Distance(c.begin, c.end))
	quot, rem := (d-toEnd)/length, (d-toEnd)%length

	if c.bounded {
		laps := uint64(quot) + 1
		expects(c.lap <= math.MaxUint64-laps, "lap counter overflow")
		c.lap += laps
	}
	c.curr = s.Offset(c.begin, int(rem))
}

// backward mirrors forward, pivoting on the last element.
func (c *coords[P]) backward(s offsetter[P], d uint) {
	c.expectsLive()

	toRend := uint(s.Distance(c.begin, c.curr)) + 1
	if d < toRend {
		c.curr = s.Offset(c.curr, -int(d))
		return
	}

	length := uint(s.Distance(c.begin, c.end))
	quot, rem := (d-toRend)/length, (d-toRend)%length

	if c.bounded {
		laps := uint64(quot) + 1
		expects(c.lap >= laps, "lap counter underflow")
		c.lap -= laps
	}
	rbegin := s.Offset(c.end, -1)
	c.curr = s.Offset(rbegin, -int(rem))
}

func (c coords[P]) equal(o coords[P]) bool {
	expectsSameRange(c, o)
	expects(c.bounded == o.bounded, "cannot compare bounded and unbounded positions")

	if !c.bounded {
		switch {
		case c.sentinel && o.sentinel:
			return true
		case o.sentinel:
			return c.curr == c.end
		case c.sentinel:
			return o.curr == o.end
		}
		panic(violation("unbounded positions are only comparable with the sentinel"))
	}

	return c.lap == o.lap && c.curr == o.curr
}

func (c coords[P]) compare(s offsetter[P], o coords[P]) int {
	expectsSameRange(c, o)
	expects(c.bounded && o.bounded, "ordering requires bounded positions")

	if n := cmp.Compare(c.lap, o.lap); n != 0 {
		return n
	}
	return cmp.Compare(s.Distance(c.begin, c.curr), s.Distance(o.begin, o.curr))
}

// diff returns c - o in elements.
func (c coords[P]) diff(s offsetter[P], o coords[P]) int {
	expectsSameRange(c, o)
	expects(c.bounded && o.bounded, "difference requires bounded positions")

	if c.lap >= o.lap {
		return distance(s, c, o)
	}
	return -distance(s, o, c)
}

func distance[P comparable](s offsetter[P], from, to coords[P]) int {
	length := s.Distance(from.begin, from.end)
	if length == 0 {
		return 0
	}

	laps := from.lap - to.lap
	expects(laps <= uint64(math.MaxInt/length), "difference overflow: %d laps of %d elements", laps, length)
	span := length * int(laps)

	delta := s.Distance(to.curr, from.curr)
	expects(delta <= 0 || span <= math.MaxInt-delta, "difference overflow: %d laps of %d elements", laps, length)
	return span + delta
}

func total(b Bound, length int) (int, error) {
	if !b.bounded {
		return 0, nil
	}
	if length != 0 && b.n > uint64(math.MaxInt/length) {
		return 0, &OverflowError{Laps: b.n, Length: length}
	}
	return int(b.n) * length, nil
}
