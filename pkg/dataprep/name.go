package dataprep

import (
	"regexp"
	"strings"

	"survfeat/pkg/table"
)

// titlePattern lists honorifics in match priority order; Mrs precedes Mr.
var titlePattern = regexp.MustCompile(`(Mrs|Mr|Miss|Master|Don|Rev|Dr|Mme|Ms|Major|Capt|Col|Countess)`)

// RareTitles is the set of aristocratic or rare titles collapsed by the rich preset.
var RareTitles = []string{"Don", "Rev", "Dr", "Mme", "Major", "Capt", "Col", "Countess", "Sir", "Lady", "Jonkheer"}

// NameFeatureDeriver extracts Title, Surname and SurnameGroupSize from the
// passenger name ("Braund, Mr. Owen Harris").
type NameFeatureDeriver struct {
	NameColumn        string
	TitleColumn       string
	SurnameColumn     string
	SurnameSizeColumn string
	// RareTitles, when non-empty, collapses the listed titles into RareTitle.
	RareTitles []string

	counts map[string]int
}

func NewNameFeatureDeriver(rare []string) *NameFeatureDeriver {
	return &NameFeatureDeriver{
		NameColumn:        ColName,
		TitleColumn:       ColTitle,
		SurnameColumn:     ColSurname,
		SurnameSizeColumn: ColSurnameGroupSize,
		RareTitles:        rare,
	}
}

func (d *NameFeatureDeriver) Name() string       { return "name" }
func (d *NameFeatureDeriver) Requires() []string { return []string{d.NameColumn} }
func (d *NameFeatureDeriver) Provides() []string {
	return []string{d.TitleColumn, d.SurnameColumn, d.SurnameSizeColumn}
}

// Surname returns the text before the first comma, trimmed.
func Surname(name string) string {
	before, _, _ := strings.Cut(name, ",")
	return strings.TrimSpace(before)
}

// Title returns the first known honorific in the name, or Other.
func Title(name string) string {
	if m := titlePattern.FindString(name); m != "" {
		return m
	}
	return SentinelOther
}

// Fit counts passengers per surname.
func (d *NameFeatureDeriver) Fit(t *table.Table) error {
	if err := t.Require(d.NameColumn); err != nil {
		return err
	}
	d.counts = map[string]int{}
	for i := 0; i < t.Len(); i++ {
		if name, ok := textAt(t, i, d.NameColumn); ok {
			d.counts[Surname(name)]++
		}
	}
	return nil
}

// SurnameSize returns the learned count for a surname, 1 when unseen.
func (d *NameFeatureDeriver) SurnameSize(surname string) int {
	if n, ok := d.counts[surname]; ok {
		return n
	}
	return 1
}

func (d *NameFeatureDeriver) Apply(t *table.Table) error {
	if err := t.Require(d.NameColumn); err != nil {
		return err
	}
	for _, c := range d.Provides() {
		t.AddColumn(c)
	}
	for i := 0; i < t.Len(); i++ {
		name, ok := textAt(t, i, d.NameColumn)
		if !ok {
			t.Set(i, d.TitleColumn, table.Str(SentinelOther))
			t.Set(i, d.SurnameColumn, table.Str(SentinelMissing))
			t.Set(i, d.SurnameSizeColumn, table.Num(1))
			continue
		}
		title := Title(name)
		if inSet(title, d.RareTitles) {
			title = SentinelRareTitle
		}
		surname := Surname(name)
		t.Set(i, d.TitleColumn, table.Str(title))
		t.Set(i, d.SurnameColumn, table.Str(surname))
		t.Set(i, d.SurnameSizeColumn, table.Num(float64(d.SurnameSize(surname))))
	}
	return nil
}

func (d *NameFeatureDeriver) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, d.Apply)
}
