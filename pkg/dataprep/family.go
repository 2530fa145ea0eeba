package dataprep

import (
	"survfeat/pkg/table"
)

// FamilySizeDeriver adds FamilySize = SibSp + Parch + 1 and, when Buckets is
// set, a category column labelled by the threshold table.
type FamilySizeDeriver struct {
	SibSpColumn    string
	ParchColumn    string
	SizeColumn     string
	CategoryColumn string
	Buckets        Buckets
}

func NewFamilySizeDeriver(buckets Buckets) *FamilySizeDeriver {
	return &FamilySizeDeriver{
		SibSpColumn:    ColSibSp,
		ParchColumn:    ColParch,
		SizeColumn:     ColFamilySize,
		CategoryColumn: ColFamilySizeCategory,
		Buckets:        buckets,
	}
}

func (d *FamilySizeDeriver) Name() string       { return "family" }
func (d *FamilySizeDeriver) Requires() []string { return []string{d.SibSpColumn, d.ParchColumn} }
func (d *FamilySizeDeriver) Provides() []string {
	if len(d.Buckets) == 0 {
		return []string{d.SizeColumn}
	}
	return []string{d.SizeColumn, d.CategoryColumn}
}

// Fit learns nothing; it only checks the input columns.
func (d *FamilySizeDeriver) Fit(t *table.Table) error {
	return t.Require(d.Requires()...)
}

// FamilySize returns sibsp + parch + 1.
func FamilySize(sibsp, parch float64) float64 { return sibsp + parch + 1 }

func (d *FamilySizeDeriver) Apply(t *table.Table) error {
	if err := t.Require(d.Requires()...); err != nil {
		return err
	}
	t.AddColumn(d.SizeColumn)
	if len(d.Buckets) > 0 {
		t.AddColumn(d.CategoryColumn)
	}
	for i := 0; i < t.Len(); i++ {
		sibsp, ok1 := numberAt(t, i, d.SibSpColumn)
		parch, ok2 := numberAt(t, i, d.ParchColumn)
		if !ok1 || !ok2 {
			t.Set(i, d.SizeColumn, table.Null())
			if len(d.Buckets) > 0 {
				t.Set(i, d.CategoryColumn, table.Str(SentinelMissing))
			}
			continue
		}
		size := FamilySize(sibsp, parch)
		t.Set(i, d.SizeColumn, table.Num(size))
		if len(d.Buckets) > 0 {
			t.Set(i, d.CategoryColumn, table.Str(d.Buckets.Label(size)))
		}
	}
	return nil
}

func (d *FamilySizeDeriver) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, d.Apply)
}
