package pipe_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"gregoryjjb/looper/pipe"
)

// naturals is an infinite sequence 0, 1, 2, ...
func naturals(yield func(int) bool) {
	for i := 0; ; i++ {
		if !yield(i) {
			return
		}
	}
}

func TestTake(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{name: "zero", n: 0, want: nil},
		{name: "negative", n: -3, want: nil},
		{name: "some", n: 4, want: []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(pipe.Take(naturals, tt.n)))
		})
	}

	assert.Equal(t, []int{1, 2}, slices.Collect(pipe.Take(slices.Values([]int{1, 2}), 5)))
}

func TestDrop(t *testing.T) {
	got := slices.Collect(pipe.Take(pipe.Drop(naturals, 3), 3))
	assert.Equal(t, []int{3, 4, 5}, got)

	assert.Nil(t, slices.Collect(pipe.Drop(slices.Values([]int{1, 2}), 5)))
}

func TestMapFilter(t *testing.T) {
	even := pipe.Filter(naturals, func(v int) bool { return v%2 == 0 })
	squares := pipe.Map(even, func(v int) int { return v * v })

	assert.Equal(t, []int{0, 4, 16, 36}, slices.Collect(pipe.Take(squares, 4)))
}

func TestReverse(t *testing.T) {
	got := slices.Collect(pipe.Reverse(slices.Values([]string{"a", "b", "c"})))
	assert.Equal(t, []string{"c", "b", "a"}, got)

	first := slices.Collect(pipe.Take(pipe.Reverse(slices.Values([]int{1, 2, 3})), 1))
	assert.Equal(t, []int{3}, first)
}
