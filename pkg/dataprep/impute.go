package dataprep

import (
	"strings"

	"survfeat/pkg/stats"
	"survfeat/pkg/table"
)

// ---------- Shared helpers for the stages ----------

// cloneApply copies t and runs apply on the copy, leaving t untouched.
func cloneApply(t *table.Table, apply func(*table.Table) error) (*table.Table, error) {
	out := t.Clone()
	if err := apply(out); err != nil {
		return nil, err
	}
	return out, nil
}

// numberAt returns the numeric value at (i, col); strings and missing give ok=false.
func numberAt(t *table.Table, i int, col string) (float64, bool) {
	return t.Get(i, col).Float()
}

// textAt returns the value at (i, col) as text. Numbers are rendered in
// canonical form so a ticket parsed as 113803 still reads "113803".
func textAt(t *table.Table, i int, col string) (string, bool) {
	v := t.Get(i, col)
	if v.IsMissing() {
		return "", false
	}
	return v.Key(), true
}

// sexKey normalises the sex column for lookups ("Male " -> "male").
func sexKey(t *table.Table, i int, col string) (string, bool) {
	s, ok := textAt(t, i, col)
	if !ok {
		return "", false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s, s != ""
}

// groupMedians reduces each group of values to its median.
func groupMedians[K comparable](groups map[K][]float64) map[K]float64 {
	out := make(map[K]float64, len(groups))
	for k, vals := range groups {
		out[k] = stats.Median(vals)
	}
	return out
}

// inSet reports whether s is one of set.
func inSet(s string, set []string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
