package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return floats.Min(x), floats.Max(x)
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks.
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	min, max := MinMax(x)
	if p <= 0 {
		return min
	}
	if p >= 100 {
		return max
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	return percentileSorted(cp, p)
}

func percentileSorted(cp []float64, p float64) float64 {
	n := len(cp)
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// QuantileEdges returns the q+1 edges splitting x into q equal-population
// intervals, with edges that collapse on repeated values removed. The result
// is strictly increasing; it is empty when x is empty.
func QuantileEdges(x []float64, q int) []float64 {
	if len(x) == 0 || q < 1 {
		return nil
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		var e float64
		switch i {
		case 0:
			e = cp[0]
		case q:
			e = cp[len(cp)-1]
		default:
			e = percentileSorted(cp, 100*float64(i)/float64(q))
		}
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// Mode returns the most frequent string. Ties go to the lexicographically
// smallest value; ok is false for an empty slice.
func Mode(x []string) (string, bool) {
	if len(x) == 0 {
		return "", false
	}
	counts := ValueCounts(x)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	mode := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[mode] {
			mode = k
		}
	}
	return mode, true
}

// ValueCounts counts occurrences of each distinct string.
func ValueCounts(x []string) map[string]int {
	counts := make(map[string]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	return counts
}
