package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func sample() *Table {
	t := New("Pclass", "Sex", "Fare")
	t.AppendRow(map[string]Value{"Pclass": Num(1), "Sex": Str("female"), "Fare": Num(71.28)})
	t.AppendRow(map[string]Value{"Pclass": Num(3), "Sex": Str("male")})
	return t
}

func TestValue(t *testing.T) {
	assert.True(t, Num(math.NaN()).IsMissing())
	assert.Equal(t, "1", Num(1).Key())
	assert.Equal(t, "7.25", Num(7.25).Key())
	assert.Equal(t, "C85", Str("C85").Key())
	assert.Equal(t, "", Null().Key())
	assert.Nil(t, Null().Interface())
	assert.Equal(t, "number", Num(2).Kind().String())

	_, ok := Str("3").Float()
	assert.False(t, ok)
	_, ok = Num(3).Text()
	assert.False(t, ok)
}

func TestTable_Basics(t *testing.T) {
	tb := sample()
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, []string{"Pclass", "Sex", "Fare"}, tb.Columns())
	assert.True(t, tb.Get(1, "Fare").IsMissing())
	assert.True(t, tb.Get(0, "Nope").IsMissing())
	assert.Equal(t, 1, tb.MissingCount("Fare"))

	tb.Set(1, "Deck", Str("F"))
	assert.Equal(t, []string{"Pclass", "Sex", "Fare", "Deck"}, tb.Columns())
	assert.True(t, tb.Get(0, "Deck").IsMissing())
	assert.Equal(t, "F", tb.Row(1)["Deck"].String())
}

func TestTable_CloneIsDeep(t *testing.T) {
	tb := sample()
	c := tb.Clone()
	c.Set(0, "Fare", Num(1))
	c.AddColumn("New")

	f, _ := tb.Get(0, "Fare").Float()
	assert.Equal(t, 71.28, f)
	assert.False(t, tb.Has("New"))
}

func TestTable_Drop(t *testing.T) {
	tb := sample()
	tb.Drop("Sex", "Absent")
	assert.Equal(t, []string{"Pclass", "Fare"}, tb.Columns())
	f, ok := tb.Get(0, "Fare").Float()
	require.True(t, ok)
	assert.Equal(t, 71.28, f)
}

func TestTable_Require(t *testing.T) {
	tb := sample()
	assert.NoError(t, tb.Require("Pclass", "Sex"))

	err := tb.Require("Age", "Pclass", "Cabin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), `"Cabin"`)
}

func TestTable_Matrix(t *testing.T) {
	tb := sample()
	m, err := tb.Matrix("Pclass", "Fare")
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3.0, m.At(1, 0))
	assert.True(t, math.IsNaN(m.At(1, 1)))

	_, err = tb.Matrix("Sex")
	assert.Error(t, err)
	_, err = New("A").Matrix("A")
	assert.Error(t, err)
}
