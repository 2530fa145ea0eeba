package dataprep

import (
	"survfeat/pkg/table"
)

// InteractionDeriver adds the Sex_Pclass cross feature ("female_1").
type InteractionDeriver struct {
	SexColumn    string
	ClassColumn  string
	TargetColumn string
}

func NewInteractionDeriver() *InteractionDeriver {
	return &InteractionDeriver{SexColumn: ColSex, ClassColumn: ColPclass, TargetColumn: ColSexPclass}
}

func (d *InteractionDeriver) Name() string       { return "interaction" }
func (d *InteractionDeriver) Requires() []string { return []string{d.SexColumn, d.ClassColumn} }
func (d *InteractionDeriver) Provides() []string { return []string{d.TargetColumn} }

func (d *InteractionDeriver) Fit(t *table.Table) error {
	return t.Require(d.Requires()...)
}

func (d *InteractionDeriver) Apply(t *table.Table) error {
	if err := t.Require(d.Requires()...); err != nil {
		return err
	}
	t.AddColumn(d.TargetColumn)
	for i := 0; i < t.Len(); i++ {
		sex, ok := textAt(t, i, d.SexColumn)
		if !ok {
			sex = SentinelMissing
		}
		class, ok := textAt(t, i, d.ClassColumn)
		if !ok {
			class = SentinelMissing
		}
		t.Set(i, d.TargetColumn, table.Str(sex+"_"+class))
	}
	return nil
}

func (d *InteractionDeriver) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, d.Apply)
}
