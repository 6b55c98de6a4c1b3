package flags_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gregoryjjb/looper/flags"
)

type color uint8

const (
	red color = 1 << iota
	green
	blue
	alpha
)

// rgb forbids the alpha bit and everything above it.
type rgb struct{}

func (rgb) Mask() color { return red | green | blue }

type colors = flags.Flags[color, flags.All[color]]
type rgbColors = flags.Flags[color, rgb]

func TestOf(t *testing.T) {
	f := flags.Of[color, flags.All[color]](red, blue)

	assert.True(t, f.Has(red))
	assert.True(t, f.Has(blue))
	assert.False(t, f.Has(green))
	assert.True(t, f.Has(red|blue))
	assert.False(t, f.Has(red|green))
	assert.Equal(t, 2, f.Count())
	assert.Equal(t, red|blue, f.Bits())
}

func TestMaskDropsBits(t *testing.T) {
	f := flags.Of[color, rgb](red, alpha)
	assert.Equal(t, red, f.Bits())

	f.Set(alpha | green)
	assert.Equal(t, red|green, f.Bits())

	assert.Equal(t, blue, f.Complement().Bits())
	assert.False(t, f.Has(alpha))
	assert.False(t, f.Has(red|alpha))
	assert.True(t, flags.Full[color, rgb]().HasAll())
	assert.Equal(t, red|green|blue, flags.Full[color, rgb]().Bits())
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name    string
		in      rgbColors
		hasAny  bool
		hasNone bool
		hasAll  bool
	}{
		{name: "none", in: flags.None[color, rgb](), hasNone: true},
		{name: "some", in: flags.Of[color, rgb](green), hasAny: true},
		{name: "all", in: flags.Of[color, rgb](red, green, blue), hasAny: true, hasAll: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasAny, tt.in.HasAny())
			assert.Equal(t, tt.hasNone, tt.in.HasNone())
			assert.Equal(t, tt.hasAll, tt.in.HasAll())
		})
	}
}

func TestSetAlgebra(t *testing.T) {
	a := flags.Of[color, flags.All[color]](red, green)
	b := flags.Of[color, flags.All[color]](green, blue)

	assert.Equal(t, red|green|blue, a.Union(b).Bits())
	assert.Equal(t, green, a.Intersect(b).Bits())
	assert.Equal(t, red|blue, a.SymmetricDifference(b).Bits())
	assert.Equal(t, ^(red | green), a.Complement().Bits())
	assert.True(t, a.Union(b).Test(a))
	assert.False(t, a.Test(b))
	assert.True(t, a.Equal(flags.Of[color, flags.All[color]](green, red)))
}

func TestModification(t *testing.T) {
	var f colors

	f.Set(red).Set(blue)
	assert.Equal(t, red|blue, f.Bits())

	f.Reset(red)
	assert.Equal(t, blue, f.Bits())

	f.Flip(blue).Flip(green)
	assert.Equal(t, green, f.Bits())

	f.SetAll()
	assert.True(t, f.HasAll())

	f.FlipAll()
	assert.True(t, f.HasNone())

	f.Set(alpha).ResetAll()
	assert.True(t, f.HasNone())
	assert.Equal(t, "0b0", f.String())
}

func TestFlipMultipleBits(t *testing.T) {
	tests := []struct {
		name string
		in   color
		flip color
		want color
	}{
		{name: "partly set", in: red, flip: red | green, want: red | green},
		{name: "fully set", in: red | green | blue, flip: red | green, want: blue},
		{name: "unset", in: blue, flip: red | green, want: red | green | blue},
		{name: "outside mask", in: red, flip: alpha, want: red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := flags.Of[color, rgb](tt.in)
			assert.Equal(t, tt.want, f.Flip(tt.flip).Bits())
		})
	}
}
