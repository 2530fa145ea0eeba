package dataprep

import (
	"fmt"
	"sort"

	"survfeat/pkg/stats"
	"survfeat/pkg/table"
)

// QuantileRule bins Source into Bins equal-population intervals written to Target.
type QuantileRule struct {
	Source string `koanf:"source" yaml:"source"`
	Target string `koanf:"target" yaml:"target"`
	Bins   int    `koanf:"bins" yaml:"bins"`
}

// BucketRule labels Source with a threshold table, written to Target.
type BucketRule struct {
	Source  string  `koanf:"source" yaml:"source"`
	Target  string  `koanf:"target" yaml:"target"`
	Buckets Buckets `koanf:"buckets" yaml:"buckets"`
}

// Binner discretises numeric columns. Quantile edges are learned at Fit;
// bucket rules are fixed tables.
type Binner struct {
	Quantiles []QuantileRule
	Buckets   []BucketRule

	edges map[string][]float64
}

func NewBinner(quantiles []QuantileRule, buckets []BucketRule) *Binner {
	return &Binner{Quantiles: quantiles, Buckets: buckets}
}

func (b *Binner) Name() string { return "binner" }

func (b *Binner) Requires() []string {
	var cols []string
	for _, r := range b.Quantiles {
		cols = append(cols, r.Source)
	}
	for _, r := range b.Buckets {
		cols = append(cols, r.Source)
	}
	return cols
}

func (b *Binner) Provides() []string {
	var cols []string
	for _, r := range b.Quantiles {
		cols = append(cols, r.Target)
	}
	for _, r := range b.Buckets {
		cols = append(cols, r.Target)
	}
	return cols
}

// Fit learns the quantile edges of every quantile rule over non-missing values.
func (b *Binner) Fit(t *table.Table) error {
	if err := t.Require(b.Requires()...); err != nil {
		return err
	}
	b.edges = make(map[string][]float64, len(b.Quantiles))
	for _, r := range b.Quantiles {
		if r.Bins < 1 {
			return fmt.Errorf("binner: %s needs at least one bin, got %d", r.Source, r.Bins)
		}
		var vals []float64
		for i := 0; i < t.Len(); i++ {
			if v, ok := numberAt(t, i, r.Source); ok {
				vals = append(vals, v)
			}
		}
		b.edges[r.Target] = stats.QuantileEdges(vals, r.Bins)
	}
	return nil
}

// Edges returns a copy of the learned edges for a target column.
func (b *Binner) Edges(target string) []float64 {
	return append([]float64(nil), b.edges[target]...)
}

// AssignBin returns the 0-based bin of v. Intervals are right-closed with
// the lowest edge inclusive; values outside the edges clamp to the first or
// last bin. ok is false when there are no edges.
func AssignBin(edges []float64, v float64) (int, bool) {
	if len(edges) == 0 {
		return 0, false
	}
	if len(edges) == 1 {
		return 0, true
	}
	bin := sort.SearchFloat64s(edges[1:], v)
	if bin > len(edges)-2 {
		bin = len(edges) - 2
	}
	return bin, true
}

func (b *Binner) Apply(t *table.Table) error {
	if err := t.Require(b.Requires()...); err != nil {
		return err
	}
	for _, r := range b.Quantiles {
		edges := b.edges[r.Target]
		t.AddColumn(r.Target)
		for i := 0; i < t.Len(); i++ {
			v, ok := numberAt(t, i, r.Source)
			if !ok {
				t.Set(i, r.Target, table.Null())
				continue
			}
			bin, ok := AssignBin(edges, v)
			if !ok {
				t.Set(i, r.Target, table.Null())
				continue
			}
			t.Set(i, r.Target, table.Num(float64(bin)))
		}
	}
	for _, r := range b.Buckets {
		t.AddColumn(r.Target)
		for i := 0; i < t.Len(); i++ {
			v, ok := numberAt(t, i, r.Source)
			if !ok {
				t.Set(i, r.Target, table.Str(SentinelMissing))
				continue
			}
			t.Set(i, r.Target, table.Str(r.Buckets.Label(v)))
		}
	}
	return nil
}

func (b *Binner) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, b.Apply)
}
