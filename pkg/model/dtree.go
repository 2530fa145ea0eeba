package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeClassifier is a CART-style classifier.
type DecisionTreeClassifier struct {
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => all features, >0 => features sampled per split
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	root    *dtNode
	classes []int // unique class labels, sorted
}

type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	isCat     bool    // equality split (x == threshold => left)
	left      *dtNode
	right     *dtNode

	n      int
	probas []float64 // aligned with tree.classes
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API
// ---------------------------

// Fit trains the tree on X (n x p) and integer labels y.
// Missing feature values must be math.NaN().
func (t *DecisionTreeClassifier) Fit(X mat.Matrix, y []int) error {
	if X == nil {
		return errors.New("dtree: empty X")
	}
	n, _ := X.Dims()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.fitIndices(X, y, idx)
}

// fitIndices trains on the rows named by idx; repeats are allowed (bootstrap).
func (t *DecisionTreeClassifier) fitIndices(X mat.Matrix, y []int, idx []int) error {
	if X == nil || len(idx) == 0 {
		return errors.New("dtree: empty X")
	}
	n, p := X.Dims()
	if len(y) != n {
		return errors.New("dtree: X and y length mismatch")
	}

	seen := map[int]bool{}
	t.classes = t.classes[:0]
	for _, ii := range idx {
		if !seen[y[ii]] {
			seen[y[ii]] = true
			t.classes = append(t.classes, y[ii])
		}
	}
	sort.Ints(t.classes)

	rnd := rand.New(rand.NewSource(t.RandomState))
	impurity := giniFromCounts
	if t.Criterion == "entropy" {
		impurity = entropyFromCounts
	}
	t.root = t.buildNode(X, y, idx, 0, p, impurity, rnd)
	return nil
}

// Predict returns the majority class of the leaf each row lands in.
func (t *DecisionTreeClassifier) Predict(X mat.Matrix) []int {
	if X == nil {
		return nil
	}
	n, _ := X.Dims()
	out := make([]int, n)
	if len(t.classes) == 0 {
		return out
	}
	for i := range out {
		out[i] = t.classes[argmaxFloat(t.predictProbaRow(X, i))]
	}
	return out
}

// PredictProba returns per-class probabilities aligned with Classes().
func (t *DecisionTreeClassifier) PredictProba(X mat.Matrix) [][]float64 {
	if X == nil {
		return nil
	}
	n, _ := X.Dims()
	out := make([][]float64, n)
	for i := range out {
		out[i] = t.predictProbaRow(X, i)
	}
	return out
}

// Classes returns the sorted class labels seen at fit time.
func (t *DecisionTreeClassifier) Classes() []int { return append([]int(nil), t.classes...) }

// Depth returns the depth of the fitted tree (a lone leaf has depth 0).
func (t *DecisionTreeClassifier) Depth() int { return depth(t.root) }

func depth(n *dtNode) int {
	if n == nil || n.isLeaf {
		return 0
	}
	return 1 + max(depth(n.left), depth(n.right))
}

// ---------------------------
// Builder
// ---------------------------

type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	isCat     bool
	leftIdx   []int
	rightIdx  []int
}

type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) leaf(node *dtNode, counts []int) *dtNode {
	node.isLeaf = true
	node.probas = countsToProbas(counts)
	return node
}

func (t *DecisionTreeClassifier) buildNode(X mat.Matrix, y []int, idx []int, depth, p int, impurity func([]int) float64, rnd *rand.Rand) *dtNode {
	node := &dtNode{n: len(idx)}
	counts := t.countsFromIndices(y, idx)

	if isPure(counts) || len(idx) < t.MinSamplesSplit {
		return t.leaf(node, counts)
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return t.leaf(node, counts)
	}

	featIndices := make([]int, p)
	for j := range featIndices {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { featIndices[a], featIndices[b] = featIndices[b], featIndices[a] })
		featIndices = featIndices[:t.MaxFeatures]
		sort.Ints(featIndices)
	}

	parentImpurity := impurity(counts)
	best := splitResult{feature: -1}
	for _, f := range featIndices {
		r := t.findBestSplitForFeature(X, y, idx, f, parentImpurity, impurity)
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}

	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return t.leaf(node, counts)
	}

	node.feature = best.feature
	node.threshold = best.threshold
	node.isCat = best.isCat
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, p, impurity, rnd)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, p, impurity, rnd)
	return node
}

// findBestSplitForFeature scans equality splits (small integer-like domains)
// and threshold splits for one feature, trying NaNs on both sides.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X mat.Matrix, y []int, idx []int, f int, parentImpurity float64, impurity func([]int) float64) splitResult {
	result := splitResult{feature: -1}

	var nans []int
	valid := make([]pair, 0, len(idx))
	for _, ii := range idx {
		v := X.At(ii, f)
		if math.IsNaN(v) {
			nans = append(nans, ii)
		} else {
			valid = append(valid, pair{v, ii})
		}
	}
	if len(valid) == 0 {
		return result
	}

	try := func(left, right []int, thr float64, isCat bool) {
		for _, withNaNLeft := range []bool{true, false} {
			l, r := left, right
			if withNaNLeft {
				l = append(append([]int(nil), left...), nans...)
			} else {
				r = append(append([]int(nil), right...), nans...)
			}
			if len(l) < t.MinSamplesLeaf || len(r) < t.MinSamplesLeaf || len(l) == 0 || len(r) == 0 {
				continue
			}
			n := float64(len(idx))
			weighted := float64(len(l))/n*impurity(t.countsFromIndices(y, l)) +
				float64(len(r))/n*impurity(t.countsFromIndices(y, r))
			if gain := parentImpurity - weighted; gain > result.gain {
				result = splitResult{gain: gain, feature: f, threshold: thr, isCat: isCat, leftIdx: l, rightIdx: r}
			}
			if len(nans) == 0 {
				return
			}
		}
	}

	uniqueVals := uniqueValuesFromPairs(valid)
	if len(uniqueVals) <= 30 && allInt(uniqueVals) {
		for _, uv := range uniqueVals {
			var left, right []int
			for _, pv := range valid {
				if pv.v == uv {
					left = append(left, pv.i)
				} else {
					right = append(right, pv.i)
				}
			}
			try(left, right, uv, true)
		}
	}

	sort.SliceStable(valid, func(a, b int) bool { return valid[a].v < valid[b].v })
	sorted := indicesFromPairs(valid)
	for s := 1; s < len(valid); s++ {
		if valid[s].v == valid[s-1].v {
			continue
		}
		try(sorted[:s], sorted[s:], (valid[s-1].v+valid[s].v)/2.0, false)
	}
	return result
}

// ---------------------------
// Prediction helper
// ---------------------------

// predictProbaRow walks row i of X down to its leaf.
func (t *DecisionTreeClassifier) predictProbaRow(X mat.Matrix, i int) []float64 {
	if t.root == nil {
		p := make([]float64, len(t.classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	node := t.root
	for !node.isLeaf {
		val := X.At(i, node.feature)
		switch {
		case math.IsNaN(val):
			// follow the heavier branch
			if node.left.n >= node.right.n {
				node = node.left
			} else {
				node = node.right
			}
		case node.isCat:
			if val == node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		case val <= node.threshold:
			node = node.left
		default:
			node = node.right
		}
	}
	return node.probas
}

// ---------------------------
// Utilities
// ---------------------------

func allInt(vals []float64) bool {
	for _, v := range vals {
		if math.IsInf(v, 0) {
			return false
		}
		_, frac := math.Modf(math.Abs(v))
		if frac > 1e-9 && frac < 1-1e-9 {
			return false
		}
	}
	return true
}

func uniqueValuesFromPairs(pairs []pair) []float64 {
	m := make(map[float64]struct{})
	out := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := m[p.v]; !ok {
			m[p.v] = struct{}{}
			out = append(out, p.v)
		}
	}
	sort.Float64s(out)
	return out
}

func indicesFromPairs(pairs []pair) []int {
	out := make([]int, len(pairs))
	for k, p := range pairs {
		out[k] = p.i
	}
	return out
}

func (t *DecisionTreeClassifier) countsFromIndices(y []int, idx []int) []int {
	counts := make([]int, len(t.classes))
	for _, ii := range idx {
		counts[classIndex(y[ii], t.classes)]++
	}
	return counts
}

func giniFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / n
		res += p * (1 - p)
	}
	return res
}

func entropyFromCounts(counts []int) float64 {
	n := 0.0
	for _, c := range counts {
		n += float64(c)
	}
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

// argmaxFloat returns the first index holding the maximum.
func argmaxFloat(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}

// classIndex returns index of label in the sorted classes slice.
func classIndex(label int, classes []int) int {
	i := sort.SearchInts(classes, label)
	if i < len(classes) && classes[i] == label {
		return i
	}
	return 0
}
