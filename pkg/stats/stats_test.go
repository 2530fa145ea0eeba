package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 0.0, Median(nil))

	x := []float64{3, 1, 2}
	Median(x)
	assert.Equal(t, []float64{3, 1, 2}, x, "input is not sorted in place")
}

func TestPercentile(t *testing.T) {
	x := []float64{5, 10, 15, 20, 100}
	assert.InDelta(t, 9.0, Percentile(x, 20), 1e-9)
	assert.InDelta(t, 36.0, Percentile(x, 80), 1e-9)
	assert.Equal(t, 5.0, Percentile(x, 0))
	assert.Equal(t, 100.0, Percentile(x, 100))
}

func TestQuantileEdges(t *testing.T) {
	assert.InDeltaSlice(t, []float64{5, 9, 13, 17, 36, 100},
		QuantileEdges([]float64{100, 5, 20, 10, 15}, 5), 1e-9)

	// repeated values collapse edges
	assert.Equal(t, []float64{1, 2}, QuantileEdges([]float64{1, 1, 1, 1, 2}, 4))
	assert.Equal(t, []float64{7}, QuantileEdges([]float64{7, 7, 7}, 5))
	assert.Nil(t, QuantileEdges(nil, 5))
}

func TestMode(t *testing.T) {
	m, ok := Mode([]string{"S", "C", "S", "Q"})
	assert.True(t, ok)
	assert.Equal(t, "S", m)

	m, _ = Mode([]string{"S", "Q", "C", "Q", "S", "C"})
	assert.Equal(t, "C", m)

	_, ok = Mode(nil)
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, ValueCounts([]string{"a", "b", "a"}))
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3, -1, 8})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 8.0, hi)
}
