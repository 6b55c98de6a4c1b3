package main_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	looper "gregoryjjb/looper"
)

func gathered(t *testing.T, m *looper.Metrics, name string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			require.Len(t, f.GetMetric(), 1)
			if c := f.GetMetric()[0].GetCounter(); c != nil {
				return c.GetValue()
			}
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestObserveMoveCountsMagnitude(t *testing.T) {
	m := looper.NewMetrics()

	m.ObserveMove(3, 1, 3, 1)
	m.ObserveMove(-2, 0, 1, 1)
	assert.Equal(t, 5.0, gathered(t, m, "looper_steps_total"))
	assert.Equal(t, 1.0, gathered(t, m, "looper_step"))

	m = looper.NewMetrics()
	assert.NotPanics(t, func() { m.ObserveMove(math.MinInt, 0, 0, 0) })
	assert.Equal(t, float64(uint(math.MaxInt)+1), gathered(t, m, "looper_steps_total"))
}
