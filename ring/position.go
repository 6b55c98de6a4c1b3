package ring

// Position is a cursor over a View. It is a plain value: copying it yields an
// independent cursor over the same sequence. The sequence must outlive it.
type Position[P comparable, T any] struct {
	c   coords[P]
	seq Sequence[P, T]
}

// Value returns the element under the cursor.
func (p Position[P, T]) Value() T {
	p.c.expectsLive()
	return p.seq.Get(p.c.curr)
}

// Set assigns the element under the cursor. The sequence must be Writable.
func (p Position[P, T]) Set(v T) {
	p.c.expectsLive()
	set(p.seq, p.c.curr, v)
}

func (p *Position[P, T]) Next() {
	p.c.next(p.seq)
}

func (p Position[P, T]) Lap() uint64 {
	return p.c.lap
}

// Base returns the position inside the underlying sequence.
func (p Position[P, T]) Base() P {
	return p.c.curr
}

func (p Position[P, T]) IsSentinel() bool {
	return p.c.sentinel
}

// Equal reports whether both cursors sit on the same lap and element. Two
// live positions of an unbounded ring cannot be compared; only the sentinel
// can.
func (p Position[P, T]) Equal(q Position[P, T]) bool {
	return p.c.equal(q.c)
}

// ReadOnly returns a cursor with the same coordinates whose Set panics.
func (p Position[P, T]) ReadOnly() Position[P, T] {
	p.seq = readOnly[P, T]{p.seq}
	return p
}

// BidiPosition is a cursor over a BidiView.
type BidiPosition[P comparable, T any] struct {
	c   coords[P]
	seq BidiSequence[P, T]
}

func (p BidiPosition[P, T]) Value() T {
	p.c.expectsLive()
	return p.seq.Get(p.c.curr)
}

func (p BidiPosition[P, T]) Set(v T) {
	p.c.expectsLive()
	set(p.seq, p.c.curr, v)
}

func (p *BidiPosition[P, T]) Next() {
	p.c.next(p.seq)
}

// Prev steps back, wrapping from the first element to the last one of the
// previous lap.
func (p *BidiPosition[P, T]) Prev() {
	p.c.prev(p.seq)
}

func (p BidiPosition[P, T]) Lap() uint64 {
	return p.c.lap
}

func (p BidiPosition[P, T]) Base() P {
	return p.c.curr
}

func (p BidiPosition[P, T]) IsSentinel() bool {
	return p.c.sentinel
}

func (p BidiPosition[P, T]) Equal(q BidiPosition[P, T]) bool {
	return p.c.equal(q.c)
}

func (p BidiPosition[P, T]) ReadOnly() BidiPosition[P, T] {
	p.seq = readOnlyBidi[P, T]{p.seq}
	return p
}

// RandomPosition is a cursor over a RandomView. Offsets of any magnitude are
// resolved in constant time.
type RandomPosition[P comparable, T any] struct {
	c   coords[P]
	seq RandomSequence[P, T]
}

func (p RandomPosition[P, T]) Value() T {
	p.c.expectsLive()
	return p.seq.Get(p.c.curr)
}

func (p RandomPosition[P, T]) Set(v T) {
	p.c.expectsLive()
	set(p.seq, p.c.curr, v)
}

func (p *RandomPosition[P, T]) Next() {
	p.c.next(p.seq)
}

func (p *RandomPosition[P, T]) Prev() {
	p.c.prev(p.seq)
}

// Advance moves the cursor k elements, backwards when k is negative. On a
// bounded ring the lap counter must stay within [0, math.MaxUint64].
func (p *RandomPosition[P, T]) Advance(k int) {
	p.c.advance(p.seq, k)
}

// Add returns a copy of p moved k elements ahead.
func (p RandomPosition[P, T]) Add(k int) RandomPosition[P, T] {
	p.Advance(k)
	return p
}

// Sub returns a copy of p moved k elements back.
func (p RandomPosition[P, T]) Sub(k int) RandomPosition[P, T] {
	switch {
	case k > 0:
		p.c.backward(p.seq, uint(k))
	case k < 0:
		p.c.forward(p.seq, uint(-k))
	}
	return p
}

// At returns the element k steps away from p.
func (p RandomPosition[P, T]) At(k int) T {
	return p.Add(k).Value()
}

// Diff returns p - q in elements. Both positions must come from the same
// bounded ring.
func (p RandomPosition[P, T]) Diff(q RandomPosition[P, T]) int {
	return p.c.diff(p.seq, q.c)
}

// Compare orders bounded positions by lap, then by offset inside the lap.
func (p RandomPosition[P, T]) Compare(q RandomPosition[P, T]) int {
	return p.c.compare(p.seq, q.c)
}

func (p RandomPosition[P, T]) Less(q RandomPosition[P, T]) bool {
	return p.Compare(q) < 0
}

func (p RandomPosition[P, T]) Lap() uint64 {
	return p.c.lap
}

func (p RandomPosition[P, T]) Base() P {
	return p.c.curr
}

func (p RandomPosition[P, T]) IsSentinel() bool {
	return p.c.sentinel
}

func (p RandomPosition[P, T]) Equal(q RandomPosition[P, T]) bool {
	return p.c.equal(q.c)
}

func (p RandomPosition[P, T]) ReadOnly() RandomPosition[P, T] {
	p.seq = readOnlyRandom[P, T]{p.seq}
	return p
}
