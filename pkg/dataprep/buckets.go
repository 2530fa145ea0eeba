package dataprep

import (
	"errors"
	"fmt"
)

// Bucket labels every value up to and including Max. A nil Max is unbounded.
type Bucket struct {
	Max   *float64 `koanf:"max" yaml:"max,omitempty"`
	Label string   `koanf:"label" yaml:"label"`
}

// Buckets is an ordered threshold table mapping numbers to category labels.
// It replaces hard-coded categorisation closures: thresholds are data.
type Buckets []Bucket

// UpTo returns a bucket for values <= max.
func UpTo(max float64, label string) Bucket { return Bucket{Max: &max, Label: label} }

// Rest returns the unbounded last bucket.
func Rest(label string) Bucket { return Bucket{Label: label} }

// Label returns the label of the first bucket containing v.
func (b Buckets) Label(v float64) string {
	for _, bk := range b {
		if bk.Max == nil || v <= *bk.Max {
			return bk.Label
		}
	}
	return SentinelOther
}

// Validate checks labels are set, thresholds increase and the last bucket is unbounded.
func (b Buckets) Validate() error {
	if len(b) == 0 {
		return errors.New("buckets: empty")
	}
	for i, bk := range b {
		if bk.Label == "" {
			return fmt.Errorf("buckets: bucket %d has no label", i)
		}
		last := i == len(b)-1
		if bk.Max == nil && !last {
			return fmt.Errorf("buckets: only the last bucket may be unbounded (bucket %d)", i)
		}
		if bk.Max != nil && last {
			return errors.New("buckets: last bucket must be unbounded")
		}
		if i > 0 && bk.Max != nil && *bk.Max <= *b[i-1].Max {
			return fmt.Errorf("buckets: thresholds must increase (bucket %d)", i)
		}
	}
	return nil
}

// Threshold tables shipped with the presets.
var (
	// FamilySizeBase: 1 -> Single, 2-4 -> Small, 5+ -> Large.
	FamilySizeBase = Buckets{UpTo(1, "Single"), UpTo(4, "Small"), Rest("Large")}
	// FamilySizeRich: 1 -> Solo, 2-4 -> Small, 5-6 -> Medium, 7+ -> Large.
	FamilySizeRich = Buckets{UpTo(1, "Solo"), UpTo(4, "Small"), UpTo(6, "Medium"), Rest("Large")}
	// GroupSizeRich: 1 -> Solo, 2-4 -> Small, 5+ -> Large.
	GroupSizeRich = Buckets{UpTo(1, "Solo"), UpTo(4, "Small"), Rest("Large")}
)
