package dataprep

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"survfeat/pkg/table"
)

func deckTable() *table.Table {
	return newTable(
		row{ColPclass: num(1), ColFare: num(80), ColCabin: str("C85")},
		row{ColPclass: num(1), ColFare: num(90), ColCabin: str("C123 C125")},
		row{ColPclass: num(3), ColFare: num(8), ColCabin: str("F G73")},
		row{ColPclass: num(3), ColFare: num(7), ColCabin: str("F33")},
		row{ColPclass: num(1), ColFare: num(85), ColCabin: table.Null()},
		row{ColPclass: num(3), ColFare: num(7.5), ColCabin: str("  ")},
	)
}

func TestDeck(t *testing.T) {
	d, ok := Deck("C85 C87")
	require.True(t, ok)
	assert.Equal(t, "C", d)
	d, ok = Deck(" F G73")
	require.True(t, ok)
	assert.Equal(t, "F", d)
	_, ok = Deck("   ")
	assert.False(t, ok)

	// multi-byte leading letters stay whole
	d, ok = Deck("É12")
	require.True(t, ok)
	assert.Equal(t, "É", d)
	assert.True(t, utf8.ValidString(d))
}

func TestDeckPredictor(t *testing.T) {
	for _, kind := range []string{DeckTree, DeckForest} {
		t.Run(kind, func(t *testing.T) {
			d := NewDeckPredictor()
			d.Model = kind
			require.NoError(t, d.Fit(deckTable()))
			require.True(t, d.Fitted())

			out, err := d.Transform(deckTable())
			require.NoError(t, err)
			assert.Equal(t, "C", textOf(out, 0, ColDeck))
			assert.Equal(t, "F", textOf(out, 2, ColDeck))
			assert.Equal(t, "C", textOf(out, 4, ColDeck))
			assert.Equal(t, "F", textOf(out, 5, ColDeck))
		})
	}
}

func TestDeckPredictor_NoLabeledRows(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	in := newTable(
		row{ColPclass: num(1), ColFare: num(80), ColCabin: table.Null()},
		row{ColPclass: num(3), ColFare: num(8), ColCabin: table.Null()},
	)

	d := NewDeckPredictor()
	d.Logger = zap.New(core)
	require.NoError(t, d.Fit(in))
	assert.False(t, d.Fitted())
	assert.Equal(t, 1, logs.Len())

	out, err := d.Transform(in)
	require.NoError(t, err)
	assert.True(t, out.Get(0, ColDeck).IsMissing())

	d.FillLabel = SentinelUnknownDeck
	out, err = d.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, SentinelUnknownDeck, textOf(out, 0, ColDeck))
	assert.Equal(t, SentinelUnknownDeck, textOf(out, 1, ColDeck))
}

func TestDeckPredictor_UnknownModel(t *testing.T) {
	d := NewDeckPredictor()
	d.Model = "svm"
	assert.EqualError(t, d.Fit(deckTable()), `deck: unknown model "svm"`)
}
