package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// RandomForest is a bagged ensemble of CART classifiers with majority voting.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 => sqrt(p)
	Bootstrap       bool
	RandomState     int64

	Trees []*DecisionTreeClassifier
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestRandomState(seed int64) RandomForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains every tree on its own bootstrap sample of row indices.
// Trees are grown one after another so a fixed RandomState reproduces the forest.
func (rf *RandomForest) Fit(X mat.Matrix, y []int) error {
	if X == nil {
		return errors.New("randomforest: empty X")
	}
	n, p := X.Dims()
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}
	if rf.NEstimators < 1 {
		return errors.New("randomforest: NEstimators must be positive")
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = max(1, int(math.Sqrt(float64(p))))
	}

	rf.Trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	for k := range rf.Trees {
		seed := rf.RandomState + int64(k)
		treeRand := rand.New(rand.NewSource(seed))

		sample := make([]int, n)
		for j := range sample {
			if rf.Bootstrap {
				sample[j] = treeRand.Intn(n)
			} else {
				sample[j] = j
			}
		}

		tree := NewDecisionTreeClassifier(
			WithMaxDepth(rf.MaxDepth),
			WithMinSamplesSplit(rf.MinSamplesSplit),
			WithMaxFeatures(maxFeatures),
			WithRandomState(seed),
		)
		if err := tree.fitIndices(X, y, sample); err != nil {
			return err
		}
		rf.Trees[k] = tree
	}
	return nil
}

// Predict returns the majority vote of all trees; ties go to the smallest label.
func (rf *RandomForest) Predict(X mat.Matrix) []int {
	if X == nil {
		return nil
	}
	n, _ := X.Dims()
	out := make([]int, n)
	if len(rf.Trees) == 0 {
		return out
	}
	votes := make([]map[int]int, n)
	for i := range votes {
		votes[i] = map[int]int{}
	}
	for _, tree := range rf.Trees {
		for i, p := range tree.Predict(X) {
			votes[i][p]++
		}
	}
	for i, counts := range votes {
		labels := make([]int, 0, len(counts))
		for l := range counts {
			labels = append(labels, l)
		}
		sort.Ints(labels)
		best := labels[0]
		for _, l := range labels[1:] {
			if counts[l] > counts[best] {
				best = l
			}
		}
		out[i] = best
	}
	return out
}
