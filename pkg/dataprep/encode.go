package dataprep

import (
	"fmt"
	"sort"

	"survfeat/pkg/table"
)

// Encoding methods.
const (
	OneHot = "onehot"
	Label  = "label"
)

// EncodeRule selects the encoding of one categorical column.
type EncodeRule struct {
	Column string `koanf:"column" yaml:"column"`
	Method string `koanf:"method" yaml:"method"`
}

// Encoder turns categorical columns into numbers. Vocabularies are learned
// at Fit and sorted, so output columns do not depend on row order.
type Encoder struct {
	Rules []EncodeRule

	vocab map[string][]string
}

func NewEncoder(rules []EncodeRule) *Encoder {
	return &Encoder{Rules: rules}
}

func (e *Encoder) Name() string { return "encoder" }

func (e *Encoder) Requires() []string {
	cols := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		cols[i] = r.Column
	}
	return cols
}

// Provides lists label-encoded columns only; one-hot names depend on the data.
func (e *Encoder) Provides() []string {
	var cols []string
	for _, r := range e.Rules {
		if r.Method == Label {
			cols = append(cols, r.Column)
		}
	}
	return cols
}

// Vocabulary builds the sorted distinct non-missing values of a column.
func Vocabulary(values []table.Value) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if v.IsMissing() || seen[v.Key()] {
			continue
		}
		seen[v.Key()] = true
		out = append(out, v.Key())
	}
	sort.Strings(out)
	return out
}

func (e *Encoder) Fit(t *table.Table) error {
	if err := t.Require(e.Requires()...); err != nil {
		return err
	}
	e.vocab = make(map[string][]string, len(e.Rules))
	for _, r := range e.Rules {
		if r.Method != OneHot && r.Method != Label {
			return fmt.Errorf("encoder: unknown method %q for %s", r.Method, r.Column)
		}
		e.vocab[r.Column] = Vocabulary(t.Column(r.Column))
	}
	return nil
}

// Vocab returns the learned vocabulary of a column.
func (e *Encoder) Vocab(col string) []string {
	return append([]string(nil), e.vocab[col]...)
}

// index returns the position of key in the sorted vocabulary, -1 when unseen.
func index(vocab []string, key string) int {
	i := sort.SearchStrings(vocab, key)
	if i < len(vocab) && vocab[i] == key {
		return i
	}
	return -1
}

func (e *Encoder) Apply(t *table.Table) error {
	if err := t.Require(e.Requires()...); err != nil {
		return err
	}
	for _, r := range e.Rules {
		vocab := e.vocab[r.Column]
		switch r.Method {
		case Label:
			for i := 0; i < t.Len(); i++ {
				v := t.Get(i, r.Column)
				code := -1
				if !v.IsMissing() {
					code = index(vocab, v.Key())
				}
				t.Set(i, r.Column, table.Num(float64(code)))
			}
		case OneHot:
			for _, cat := range vocab {
				t.AddColumn(r.Column + "_" + cat)
			}
			for i := 0; i < t.Len(); i++ {
				v := t.Get(i, r.Column)
				hit := -1
				if !v.IsMissing() {
					hit = index(vocab, v.Key())
				}
				for k, cat := range vocab {
					bit := 0.0
					if k == hit {
						bit = 1
					}
					t.Set(i, r.Column+"_"+cat, table.Num(bit))
				}
			}
			t.Drop(r.Column)
		}
	}
	return nil
}

func (e *Encoder) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, e.Apply)
}
