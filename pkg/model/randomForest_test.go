package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRandomForest_Deterministic(t *testing.T) {
	X, y := thresholdData()
	a := NewRandomForest(WithNEstimators(15), WithForestMaxDepth(3), WithForestRandomState(42))
	b := NewRandomForest(WithNEstimators(15), WithForestMaxDepth(3), WithForestRandomState(42))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	queries := dense([]float64{0, 10}, []float64{2.7, 10}, []float64{3.2, 9}, []float64{9, 9})
	assert.Equal(t, a.Predict(queries), b.Predict(queries))
	assert.Len(t, a.Trees, 15)
}

func TestRandomForest_NoBootstrapMatchesData(t *testing.T) {
	X, y := thresholdData()
	rf := NewRandomForest(WithNEstimators(5), WithBootstrap(false), WithForestRandomState(1))
	rf.MaxFeatures = 2
	require.NoError(t, rf.Fit(X, y))
	assert.Equal(t, y, rf.Predict(X))
}

func TestRandomForest_Errors(t *testing.T) {
	assert.Error(t, NewRandomForest().Fit(nil, nil))
	one := mat.NewDense(1, 1, []float64{1})
	assert.Error(t, NewRandomForest(WithNEstimators(0)).Fit(one, []int{1}))
	assert.Error(t, NewRandomForest().Fit(one, []int{1, 2}))
}
