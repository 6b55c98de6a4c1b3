// Package flags implements a typed bitset over an unsigned enumeration.
package flags

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Mask restricts the bits a Flags value may hold. Implementations are
// usually empty structs so the mask costs nothing at run time.
type Mask[E constraints.Unsigned] interface {
	Mask() E
}

// All permits every bit of E.
type All[E constraints.Unsigned] struct{}

func (All[E]) Mask() E {
	return ^E(0)
}

// Flags is a set of E flags. Bits outside M's mask are dropped on
// construction and complement.
type Flags[E constraints.Unsigned, M Mask[E]] struct {
	bits E
}

func mask[E constraints.Unsigned, M Mask[E]]() E {
	var m M
	return m.Mask()
}

// Of returns the union of fs.
func Of[E constraints.Unsigned, M Mask[E]](fs ...E) Flags[E, M] {
	var bits E
	for _, f := range fs {
		bits |= f
	}
	return Flags[E, M]{bits: bits & mask[E, M]()}
}

func None[E constraints.Unsigned, M Mask[E]]() Flags[E, M] {
	return Flags[E, M]{}
}

// Full returns the set holding every permitted flag.
func Full[E constraints.Unsigned, M Mask[E]]() Flags[E, M] {
	return Flags[E, M]{bits: mask[E, M]()}
}

func (f Flags[E, M]) Bits() E {
	return f.bits
}

func (f Flags[E, M]) Count() int {
	return bits.OnesCount64(uint64(f.bits))
}

// Has reports whether every bit of e is set. Bits outside the mask are
// never set, so asking for them reports false.
func (f Flags[E, M]) Has(e E) bool {
	return f.bits&e == e
}

// Test reports whether every flag of o is set in f.
func (f Flags[E, M]) Test(o Flags[E, M]) bool {
	return f.bits&o.bits == o.bits
}

func (f Flags[E, M]) HasAny() bool {
	return f.bits != 0
}

func (f Flags[E, M]) HasNone() bool {
	return f.bits == 0
}

func (f Flags[E, M]) HasAll() bool {
	return f.bits == mask[E, M]()
}

func (f Flags[E, M]) Equal(o Flags[E, M]) bool {
	return f.bits == o.bits
}

func (f Flags[E, M]) Union(o Flags[E, M]) Flags[E, M] {
	f.bits |= o.bits
	return f
}

func (f Flags[E, M]) Intersect(o Flags[E, M]) Flags[E, M] {
	f.bits &= o.bits
	return f
}

func (f Flags[E, M]) SymmetricDifference(o Flags[E, M]) Flags[E, M] {
	f.bits ^= o.bits
	return f
}

func (f Flags[E, M]) Complement() Flags[E, M] {
	f.bits = ^f.bits & mask[E, M]()
	return f
}

// Set turns on the bits of e, which may be a single flag or a mask.
func (f *Flags[E, M]) Set(e E) *Flags[E, M] {
	f.bits |= e & mask[E, M]()
	return f
}

func (f *Flags[E, M]) Reset(e E) *Flags[E, M] {
	f.bits &^= e
	return f
}

// Flip treats e as one flag: if all of it is set it is reset, otherwise
// all of it is set.
func (f *Flags[E, M]) Flip(e E) *Flags[E, M] {
	if f.Has(e) {
		return f.Reset(e)
	}
	return f.Set(e)
}

func (f *Flags[E, M]) SetAll() *Flags[E, M] {
	f.bits = mask[E, M]()
	return f
}

func (f *Flags[E, M]) ResetAll() *Flags[E, M] {
	f.bits = 0
	return f
}

func (f *Flags[E, M]) FlipAll() *Flags[E, M] {
	*f = f.Complement()
	return f
}

func (f Flags[E, M]) String() string {
	return fmt.Sprintf("%#b", f.bits)
}
