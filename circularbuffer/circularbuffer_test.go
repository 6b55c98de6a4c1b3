package circularbuffer_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"gregoryjjb/looper/circularbuffer"
)

func TestCircularBuffer(t *testing.T) {
	tests := []struct {
		name string
		size int
		in   []int
		want []int
	}{
		{name: "empty", size: 3, in: nil, want: []int{}},
		{name: "partial", size: 3, in: []int{1, 2}, want: []int{1, 2}},
		{name: "exactly full", size: 3, in: []int{1, 2, 3}, want: []int{1, 2, 3}},
		{name: "wrapped", size: 3, in: []int{1, 2, 3, 4, 5}, want: []int{3, 4, 5}},
		{name: "wrapped twice", size: 2, in: []int{1, 2, 3, 4, 5}, want: []int{4, 5}},
		{name: "zero size", size: 0, in: []int{1, 2}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := circularbuffer.New[int](tt.size)
			for _, v := range tt.in {
				cb.Push(v)
			}

			assert.Equal(t, tt.want, cb.Snapshot())
			assert.Equal(t, len(tt.want), cb.Len())
			assert.Equal(t, tt.size, cb.Cap())

			var each []int
			cb.Each(func(v int) { each = append(each, v) })
			assert.Equal(t, tt.want, append([]int{}, each...))
			assert.Equal(t, tt.want, append([]int{}, slices.Collect(cb.All())...))
		})
	}
}

func TestCircularBufferConcurrentPush(t *testing.T) {
	cb := circularbuffer.New[int](16)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				cb.Push(i*100 + j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, cb.Len())
	assert.Len(t, cb.Snapshot(), 16)
}
