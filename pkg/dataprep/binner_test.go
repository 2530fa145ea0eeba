package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survfeat/pkg/table"
)

func TestBinner_QuantileEdges(t *testing.T) {
	in := newTable(
		row{ColFare: num(5)},
		row{ColFare: num(10)},
		row{ColFare: num(15)},
		row{ColFare: num(20)},
		row{ColFare: num(100)},
		row{ColFare: table.Null()},
	)
	b := NewBinner([]QuantileRule{{Source: ColFare, Target: ColFareBin, Bins: 5}}, nil)
	require.NoError(t, b.Fit(in))
	assert.InDeltaSlice(t, []float64{5, 9, 13, 17, 36, 100}, b.Edges(ColFareBin), 1e-9)

	out, err := b.Transform(in)
	require.NoError(t, err)
	for i, want := range []float64{0, 1, 2, 3, 4} {
		assert.Equal(t, want, floatAt(t, out, i, ColFareBin), "row %d", i)
	}
	assert.True(t, out.Get(5, ColFareBin).IsMissing())
}

func TestAssignBin(t *testing.T) {
	edges := []float64{5, 9, 13, 17, 36, 100}
	tests := []struct {
		v    float64
		want int
	}{
		{5, 0}, {9, 0}, {9.5, 1}, {36, 3}, {36.1, 4}, {100, 4},
		{-1, 0}, {500, 4},
	}
	for _, tt := range tests {
		got, ok := AssignBin(edges, tt.v)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "value %v", tt.v)
	}

	got, ok := AssignBin([]float64{7}, 12)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
	_, ok = AssignBin(nil, 1)
	assert.False(t, ok)
}

func TestBinner_SingleValueAndBuckets(t *testing.T) {
	in := newTable(
		row{ColAge: num(30), ColTicketGroupSize: num(1)},
		row{ColAge: num(30), ColTicketGroupSize: num(3)},
		row{ColAge: num(30), ColTicketGroupSize: num(7)},
	)
	b := NewBinner(
		[]QuantileRule{{Source: ColAge, Target: ColAgeBin, Bins: 5}},
		[]BucketRule{{Source: ColTicketGroupSize, Target: ColTicketGroupSizeBin, Buckets: GroupSizeRich}},
	)
	require.NoError(t, b.Fit(in))
	assert.Equal(t, []float64{30}, b.Edges(ColAgeBin))

	out, err := b.Transform(in)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, floatAt(t, out, i, ColAgeBin))
	}
	assert.Equal(t, "Solo", textOf(out, 0, ColTicketGroupSizeBin))
	assert.Equal(t, "Small", textOf(out, 1, ColTicketGroupSizeBin))
	assert.Equal(t, "Large", textOf(out, 2, ColTicketGroupSizeBin))
}

func TestBinner_InvalidBins(t *testing.T) {
	b := NewBinner([]QuantileRule{{Source: ColFare, Target: ColFareBin}}, nil)
	assert.Error(t, b.Fit(newTable(row{ColFare: num(1)})))
}
