package dataprep

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"survfeat/pkg/model"
	"survfeat/pkg/table"
)

// Deck classifier kinds.
const (
	DeckTree   = "tree"
	DeckForest = "forest"
)

// DeckPredictor derives Deck from the cabin and predicts it from (class, fare)
// where the cabin is unknown.
type DeckPredictor struct {
	CabinColumn string
	ClassColumn string
	FareColumn  string
	DeckColumn  string

	Model    string
	MaxDepth int
	Trees    int
	Seed     int64
	// FillLabel replaces decks still missing after prediction; empty leaves them missing.
	FillLabel string

	Logger *zap.Logger

	clf   model.Classifier
	decks []string
}

func NewDeckPredictor() *DeckPredictor {
	return &DeckPredictor{
		CabinColumn: ColCabin,
		ClassColumn: ColPclass,
		FareColumn:  ColFare,
		DeckColumn:  ColDeck,
		Model:       DeckTree,
		MaxDepth:    4,
		Trees:       100,
		Seed:        42,
	}
}

func (d *DeckPredictor) Name() string { return "deck" }
func (d *DeckPredictor) Requires() []string {
	return []string{d.CabinColumn, d.ClassColumn, d.FareColumn}
}
func (d *DeckPredictor) Provides() []string { return []string{d.DeckColumn} }

// Deck returns the first letter of the first cabin token ("C85 C87" -> "C").
func Deck(cabin string) (string, bool) {
	fields := strings.Fields(cabin)
	if len(fields) == 0 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(fields[0])
	return string(r), true
}

func (d *DeckPredictor) deckAt(t *table.Table, i int) (string, bool) {
	cabin, ok := textAt(t, i, d.CabinColumn)
	if !ok {
		return "", false
	}
	return Deck(cabin)
}

func (d *DeckPredictor) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d *DeckPredictor) newClassifier() (model.Classifier, error) {
	switch d.Model {
	case DeckTree:
		return model.NewDecisionTreeClassifier(
			model.WithMaxDepth(d.MaxDepth),
			model.WithRandomState(d.Seed),
		), nil
	case DeckForest:
		return model.NewRandomForest(
			model.WithNEstimators(d.Trees),
			model.WithForestMaxDepth(d.MaxDepth),
			model.WithForestRandomState(d.Seed),
		), nil
	default:
		return nil, fmt.Errorf("deck: unknown model %q", d.Model)
	}
}

// features exports the (class, fare) matrix the classifier reads.
func (d *DeckPredictor) features(t *table.Table) (mat.Matrix, error) {
	m, err := t.Matrix(d.ClassColumn, d.FareColumn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Fit trains the classifier on rows whose deck is known. With no such rows
// the classifier stays unset and Transform only applies the fill label.
func (d *DeckPredictor) Fit(t *table.Table) error {
	if err := t.Require(d.Requires()...); err != nil {
		return err
	}
	d.clf, d.decks = nil, nil

	labeled := table.New(d.ClassColumn, d.FareColumn)
	var labels []string
	vocab := map[string]bool{}
	for i := 0; i < t.Len(); i++ {
		deck, ok := d.deckAt(t, i)
		if !ok {
			continue
		}
		labeled.AppendRow(map[string]table.Value{
			d.ClassColumn: t.Get(i, d.ClassColumn),
			d.FareColumn:  t.Get(i, d.FareColumn),
		})
		labels = append(labels, deck)
		vocab[deck] = true
	}
	if len(labels) == 0 {
		d.logger().Warn("no labeled cabins, deck classifier skipped", zap.Int("rows", t.Len()))
		return nil
	}

	for deck := range vocab {
		d.decks = append(d.decks, deck)
	}
	sort.Strings(d.decks)
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = sort.SearchStrings(d.decks, l)
	}

	X, err := d.features(labeled)
	if err != nil {
		return fmt.Errorf("deck: %w", err)
	}
	clf, err := d.newClassifier()
	if err != nil {
		return err
	}
	if err := clf.Fit(X, y); err != nil {
		return fmt.Errorf("deck: %w", err)
	}
	d.clf = clf
	d.logger().Debug("deck classifier fitted",
		zap.String("model", d.Model),
		zap.Int("labeled", len(labels)),
		zap.Strings("decks", d.decks))
	return nil
}

// Fitted reports whether a classifier was trained.
func (d *DeckPredictor) Fitted() bool { return d.clf != nil }

func (d *DeckPredictor) Apply(t *table.Table) error {
	if err := t.Require(d.Requires()...); err != nil {
		return err
	}
	t.AddColumn(d.DeckColumn)

	var unknown []int
	for i := 0; i < t.Len(); i++ {
		if deck, ok := d.deckAt(t, i); ok {
			t.Set(i, d.DeckColumn, table.Str(deck))
			continue
		}
		t.Set(i, d.DeckColumn, table.Null())
		unknown = append(unknown, i)
	}

	if d.clf != nil && len(unknown) > 0 {
		sub := table.New(d.ClassColumn, d.FareColumn)
		for _, i := range unknown {
			sub.AppendRow(map[string]table.Value{
				d.ClassColumn: t.Get(i, d.ClassColumn),
				d.FareColumn:  t.Get(i, d.FareColumn),
			})
		}
		X, err := d.features(sub)
		if err != nil {
			return fmt.Errorf("deck: %w", err)
		}
		for k, label := range d.clf.Predict(X) {
			if label >= 0 && label < len(d.decks) {
				t.Set(unknown[k], d.DeckColumn, table.Str(d.decks[label]))
			}
		}
	}

	if d.FillLabel != "" {
		for i := 0; i < t.Len(); i++ {
			if t.Get(i, d.DeckColumn).IsMissing() {
				t.Set(i, d.DeckColumn, table.Str(d.FillLabel))
			}
		}
	}
	return nil
}

func (d *DeckPredictor) Transform(t *table.Table) (*table.Table, error) {
	return cloneApply(t, d.Apply)
}
