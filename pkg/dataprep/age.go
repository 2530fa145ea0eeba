package dataprep

import (
	"fmt"

	"survfeat/pkg/stats"
	"survfeat/pkg/table"
)

// AgePolicy selects where missing ages come from. The two are never mixed.
type AgePolicy string

const (
	// AgeLearned uses (class, sex) medians learned at fit time.
	AgeLearned AgePolicy = "learned"
	// AgeFixed uses a hard-coded (class, sex) reference table.
	AgeFixed AgePolicy = "fixed"
)

// AgeKey identifies a (class, sex) group; Sex is lower-cased.
type AgeKey struct {
	Class string
	Sex   string
}

// BaseReferenceAges are historical (class, sex) medians of the per-field variant.
var BaseReferenceAges = map[AgeKey]float64{
	{"1", "male"}: 37.0, {"1", "female"}: 35.0,
	{"2", "male"}: 30.0, {"2", "female"}: 28.0,
	{"3", "male"}: 25.0, {"3", "female"}: 21.5,
}

// RichReferenceAges are the reference values of the monolithic variant.
var RichReferenceAges = map[AgeKey]float64{
	{"1", "male"}: 36.0, {"1", "female"}: 32.5,
	{"2", "male"}: 29.0, {"2", "female"}: 28.0,
	{"3", "male"}: 28.0, {"3", "female"}: 28.0,
}

// AgeImputer fills missing ages per (class, sex) group. Unknown groups fall
// back to the global median age of the fit table.
type AgeImputer struct {
	AgeColumn   string
	ClassColumn string
	SexColumn   string
	Policy      AgePolicy
	Reference   map[AgeKey]float64 // read by AgeFixed only

	medians   map[AgeKey]float64
	global    float64
	hasGlobal bool
}

// NewAgeImputer returns a learned-median imputer over the standard columns.
func NewAgeImputer() *AgeImputer {
	return &AgeImputer{
		AgeColumn:   ColAge,
		ClassColumn: ColPclass,
		SexColumn:   ColSex,
		Policy:      AgeLearned,
		Reference:   BaseReferenceAges,
	}
}

func (a *AgeImputer) Name() string { return "age" }
func (a *AgeImputer) Requires() []string {
	return []string{a.AgeColumn, a.ClassColumn, a.SexColumn}
}
func (a *AgeImputer) Provides() []string { return []string{a.AgeColumn} }

func (a *AgeImputer) key(t *table.Table, i int) (AgeKey, bool) {
	class := t.Get(i, a.ClassColumn)
	sex, ok := sexKey(t, i, a.SexColumn)
	if class.IsMissing() || !ok {
		return AgeKey{}, false
	}
	return AgeKey{Class: class.Key(), Sex: sex}, true
}

// Fit learns group medians (AgeLearned) and the global median (both policies).
func (a *AgeImputer) Fit(t *table.Table) error {
	if a.Policy != AgeLearned && a.Policy != AgeFixed {
		return fmt.Errorf("age: unknown policy %q", a.Policy)
	}
	if err := t.Require(a.Requires()...); err != nil {
		return err
	}
	groups := map[AgeKey][]float64{}
	var all []float64
	for i := 0; i < t.Len(); i++ {
		age, ok := numberAt(t, i, a.AgeColumn)
		if !ok {
			continue
		}
		all = append(all, age)
		if k, ok := a.key(t, i); ok {
			groups[k] = append(groups[k], age)
		}
	}
	a.medians = nil
	if a.Policy == AgeLearned {
		a.medians = groupMedians(groups)
	}
	a.hasGlobal = len(all) > 0
	a.global = stats.Median(all)
	return nil
}

// Lookup returns the age a row of the given group would receive.
func (a *AgeImputer) Lookup(k AgeKey) (float64, bool) {
	ref := a.medians
	if a.Policy == AgeFixed {
		ref = a.Reference
	}
	if v, ok := ref[k]; ok {
		return v, true
	}
	return a.global, a.hasGlobal
}

// Apply fills missing ages of t in place.
func (a *AgeImputer) Apply(t *table.Table) error {
	if err := t.Require(a.Requires()...); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if _, ok := numberAt(t, i, a.AgeColumn); ok {
			continue
		}
		k, _ := a.key(t, i)
		if v, ok := a.Lookup(k); ok {
			t.Set(i, a.AgeColumn, table.Num(v))
		}
	}
	return nil
}

// Transform returns an imputed copy of t.
func (a *AgeImputer) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, a.Apply)
}
