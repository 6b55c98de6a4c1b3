package ring_test

import (
	"container/list"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastrand"

	"gregoryjjb/looper/ring"
	"gregoryjjb/looper/seq"
)

// requireViolation runs fn and checks that it panicked with a precondition
// error.
func requireViolation(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, ring.ErrPrecondition)
	}()
	fn()
}

func boundedView(t *testing.T, length int, laps uint64) *ring.RandomView[int, int] {
	t.Helper()

	vals := make([]int, length)
	for i := range vals {
		vals[i] = i * 10
	}
	v, err := ring.NewRandom[int, int](seq.Slice[int](vals), ring.Times(laps))
	require.NoError(t, err)
	return v
}

func TestOffsetLaws(t *testing.T) {
	const (
		length = 7
		laps   = 1000
		total  = length * laps
	)
	v := boundedView(t, length, laps)

	for range 500 {
		x := int(fastrand.Uint32n(total + 1))
		d1 := int(fastrand.Uint32n(total+1)) - x
		d2 := int(fastrand.Uint32n(total+1)) - (x + d1)

		p := v.Begin().Add(x)
		assert.Equal(t, x, p.Diff(v.Begin()))
		assert.Equal(t, uint64(x/length), p.Lap())

		q := p.Add(d1)
		assert.True(t, q.Add(d2).Equal(p.Add(d1+d2)), "(p+%d)+%d != p+%d", d1, d2, d1+d2)
		assert.Equal(t, d1, q.Diff(p))
		assert.Equal(t, -d1, p.Diff(q))
		assert.True(t, q.Sub(d1).Equal(p))

		switch {
		case d1 > 0:
			assert.True(t, p.Less(q))
			assert.Equal(t, 1, q.Compare(p))
		case d1 < 0:
			assert.True(t, q.Less(p))
		default:
			assert.Equal(t, 0, p.Compare(q))
		}
	}
}

func TestAdvanceMatchesSteps(t *testing.T) {
	v := boundedView(t, 5, 4)

	stepped := v.Begin()
	for k := range 20 {
		jumped := v.Begin().Add(k)
		assert.True(t, jumped.Equal(stepped), "step %d", k)
		assert.Equal(t, stepped.Value(), v.At(k))
		stepped.Next()
	}
	assert.True(t, stepped.Equal(v.End()))
	assert.True(t, v.Begin().Add(20).Equal(v.End()))
	assert.True(t, v.End().Sub(20).Equal(v.Begin()))
}

func TestStepInverse(t *testing.T) {
	l := ring.NewBidi[*list.Element, int](seq.NewList(numbers...), ring.Times(3))

	for p := range l.Positions() {
		q := p
		q.Next()
		q.Prev()
		assert.True(t, q.Equal(p))

		if p.Equal(l.Begin()) {
			continue
		}
		q.Prev()
		q.Next()
		assert.True(t, q.Equal(p))
	}

	last := l.End()
	last.Prev()
	assert.Equal(t, 27, last.Value())
	assert.Equal(t, uint64(2), last.Lap())
}

func TestUnboundedOffsets(t *testing.T) {
	v, err := ring.NewRandom[int, int](seq.Slice[int]{1, 3, 5, 7}, ring.Unbounded)
	require.NoError(t, err)

	p := v.Begin()
	assert.Equal(t, 1, p.Add(math.MinInt).Value())
	assert.Equal(t, 7, p.Add(math.MaxInt).Value())
	assert.Equal(t, 7, p.Sub(1).Value())

	p.Prev()
	assert.Equal(t, 7, p.Value())
	assert.Equal(t, uint64(0), p.Lap())
	assert.False(t, p.IsSentinel())
	assert.True(t, v.End().IsSentinel())
	assert.False(t, v.Done(p))

	requireViolation(t, func() { p.Equal(v.Begin()) })
	requireViolation(t, func() { p.Diff(v.Begin()) })
	requireViolation(t, func() { p.Compare(v.Begin()) })
}

func TestLargeOffsets(t *testing.T) {
	v := boundedView(t, 2, 1)

	far := v.Begin().Add(math.MaxInt)
	assert.Equal(t, math.MaxInt, far.Diff(v.Begin()))
	assert.Equal(t, 10, far.Value())

	further := far.Add(math.MaxInt)
	requireViolation(t, func() { further.Diff(v.Begin()) })

	requireViolation(t, func() { v.Begin().Add(math.MinInt) })
}

func TestLapOverflow(t *testing.T) {
	v := boundedView(t, 1, 1)

	p := v.Begin()
	p.Advance(math.MaxInt)
	p.Advance(math.MaxInt)
	assert.Equal(t, uint64(math.MaxUint64-1), p.Lap())

	requireViolation(t, func() { p.Add(math.MaxInt) })

	p.Advance(1)
	assert.Equal(t, uint64(math.MaxUint64), p.Lap())
	requireViolation(t, func() { p.Next() })
}

func TestLapUnderflow(t *testing.T) {
	v := boundedView(t, 3, 2)

	requireViolation(t, func() {
		p := v.Begin()
		p.Prev()
	})
	requireViolation(t, func() { v.Begin().Sub(1) })
	requireViolation(t, func() { v.Begin().Add(-4) })

	p := v.End()
	p.Advance(-6)
	assert.True(t, p.Equal(v.Begin()))
}

func TestPreconditions(t *testing.T) {
	empty, err := ring.NewRandom[int, int](seq.Slice[int]{}, ring.Times(5))
	require.NoError(t, err)
	requireViolation(t, func() { empty.Begin().Value() })
	requireViolation(t, func() {
		p := empty.Begin()
		p.Next()
	})

	zero := boundedView(t, 3, 0)
	assert.True(t, zero.Empty())
	assert.True(t, zero.Begin().Equal(zero.End()))

	short := boundedView(t, 2, 1)
	long := boundedView(t, 3, 1)
	requireViolation(t, func() { short.Begin().Equal(long.Begin()) })
	requireViolation(t, func() { short.End().Diff(long.Begin()) })

	unbounded, err := ring.NewRandom[int, int](seq.Slice[int]{1, 2}, ring.Unbounded)
	require.NoError(t, err)
	requireViolation(t, func() { unbounded.Backward() })
	requireViolation(t, func() { unbounded.End().Value() })
}

func TestReadOnly(t *testing.T) {
	vals := []int{1, 2, 3}
	v, err := ring.NewRandom[int, int](seq.Slice[int](vals), ring.Times(1))
	require.NoError(t, err)

	p := v.Begin().Add(1)
	ro := p.ReadOnly()
	assert.True(t, ro.Equal(p))
	assert.Equal(t, 2, ro.Value())
	assert.Equal(t, 3, ro.Add(1).Value())
	requireViolation(t, func() { ro.Set(9) })

	p.Set(9)
	assert.Equal(t, []int{1, 9, 3}, vals)

	s, err := ring.NewRandom[int, byte](seq.String("ab"), ring.Times(1))
	require.NoError(t, err)
	requireViolation(t, func() { s.Begin().Set('z') })
}

func TestForwardPositions(t *testing.T) {
	fl := seq.NewForwardList(4, 5)
	v := ring.New[*seq.Node[int], int](fl, ring.Times(2))

	p := v.Begin()
	assert.Equal(t, fl.Begin(), p.Base())
	for range 3 {
		p.Next()
	}
	assert.Equal(t, 5, p.Value())
	assert.Equal(t, uint64(1), p.Lap())

	p.Set(6)
	assert.Equal(t, []int{4, 6, 4, 6}, collect(v))

	ro := p.ReadOnly()
	requireViolation(t, func() { ro.Set(1) })
}

func collect(v *ring.View[*seq.Node[int], int]) []int {
	var out []int
	for x := range v.All() {
		out = append(out, x)
	}
	return out
}
