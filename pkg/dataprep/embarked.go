package dataprep

import (
	"survfeat/pkg/stats"
	"survfeat/pkg/table"
)

// EmbarkedImputer fills missing embarkation ports with the most common port
// of the fit table.
type EmbarkedImputer struct {
	Column string

	mode string
	ok   bool
}

func NewEmbarkedImputer() *EmbarkedImputer { return &EmbarkedImputer{Column: ColEmbarked} }

func (e *EmbarkedImputer) Name() string       { return "embarked" }
func (e *EmbarkedImputer) Requires() []string { return []string{e.Column} }
func (e *EmbarkedImputer) Provides() []string { return []string{e.Column} }

func (e *EmbarkedImputer) Fit(t *table.Table) error {
	if err := t.Require(e.Column); err != nil {
		return err
	}
	var ports []string
	for i := 0; i < t.Len(); i++ {
		if p, ok := textAt(t, i, e.Column); ok {
			ports = append(ports, p)
		}
	}
	e.mode, e.ok = stats.Mode(ports)
	return nil
}

// Mode returns the learned port.
func (e *EmbarkedImputer) Mode() (string, bool) { return e.mode, e.ok }

func (e *EmbarkedImputer) Apply(t *table.Table) error {
	if err := t.Require(e.Column); err != nil {
		return err
	}
	if !e.ok {
		return nil
	}
	for i := 0; i < t.Len(); i++ {
		if t.Get(i, e.Column).IsMissing() {
			t.Set(i, e.Column, table.Str(e.mode))
		}
	}
	return nil
}

func (e *EmbarkedImputer) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, e.Apply)
}
