package dataprep

import (
	"survfeat/pkg/stats"
	"survfeat/pkg/table"
)

// FareImputer replaces missing or zero fares with the median positive fare of
// the passenger class. A zero fare means "not recorded", not a free ticket.
type FareImputer struct {
	FareColumn  string
	ClassColumn string

	medians   map[string]float64
	global    float64
	hasGlobal bool
}

// NewFareImputer returns an imputer over the standard Fare and Pclass columns.
func NewFareImputer() *FareImputer {
	return &FareImputer{FareColumn: ColFare, ClassColumn: ColPclass}
}

func (f *FareImputer) Name() string       { return "fare" }
func (f *FareImputer) Requires() []string { return []string{f.FareColumn, f.ClassColumn} }
func (f *FareImputer) Provides() []string { return []string{f.FareColumn} }

// Fit learns the per-class and global medians of strictly positive fares.
func (f *FareImputer) Fit(t *table.Table) error {
	if err := t.Require(f.Requires()...); err != nil {
		return err
	}
	groups := map[string][]float64{}
	var all []float64
	for i := 0; i < t.Len(); i++ {
		fare, ok := numberAt(t, i, f.FareColumn)
		if !ok || fare <= 0 {
			continue
		}
		all = append(all, fare)
		if class := t.Get(i, f.ClassColumn); !class.IsMissing() {
			groups[class.Key()] = append(groups[class.Key()], fare)
		}
	}
	f.medians = groupMedians(groups)
	f.hasGlobal = len(all) > 0
	f.global = stats.Median(all)
	return nil
}

// Median returns the learned median for a class key such as "3".
func (f *FareImputer) Median(class string) (float64, bool) {
	m, ok := f.medians[class]
	return m, ok
}

// Apply imputes the fare column of t in place.
func (f *FareImputer) Apply(t *table.Table) error {
	if err := t.Require(f.Requires()...); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if fare, ok := numberAt(t, i, f.FareColumn); ok && fare != 0 {
			continue
		}
		if m, ok := f.medians[t.Get(i, f.ClassColumn).Key()]; ok {
			t.Set(i, f.FareColumn, table.Num(m))
		} else if f.hasGlobal {
			t.Set(i, f.FareColumn, table.Num(f.global))
		}
	}
	return nil
}

// Transform returns an imputed copy of t.
func (f *FareImputer) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, f.Apply)
}
