package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survfeat/pkg/table"
)

func TestEncoder_OneHot(t *testing.T) {
	fit := newTable(
		row{ColSex: str("male"), ColPclass: num(3)},
		row{ColSex: str("female"), ColPclass: num(1)},
		row{ColSex: str("male"), ColPclass: num(3)},
	)
	e := NewEncoder([]EncodeRule{{Column: ColSex, Method: OneHot}, {Column: ColPclass, Method: OneHot}})
	require.NoError(t, e.Fit(fit))
	assert.Equal(t, []string{"female", "male"}, e.Vocab(ColSex))
	assert.Equal(t, []string{"1", "3"}, e.Vocab(ColPclass))

	out, err := e.Transform(newTable(
		row{ColSex: str("female"), ColPclass: num(2)},
		row{ColSex: table.Null(), ColPclass: num(3)},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sex_female", "Sex_male", "Pclass_1", "Pclass_3"}, out.Columns())
	assert.Equal(t, 1.0, floatAt(t, out, 0, "Sex_female"))
	assert.Equal(t, 0.0, floatAt(t, out, 0, "Pclass_1"))
	assert.Equal(t, 0.0, floatAt(t, out, 0, "Pclass_3"), "unseen class encodes to zeros")
	assert.Equal(t, 0.0, floatAt(t, out, 1, "Sex_female"))
	assert.Equal(t, 0.0, floatAt(t, out, 1, "Sex_male"))
	assert.Equal(t, 1.0, floatAt(t, out, 1, "Pclass_3"))
}

func TestEncoder_Label(t *testing.T) {
	fit := newTable(row{ColSurname: str("Braund")}, row{ColSurname: str("Allen")})
	e := NewEncoder([]EncodeRule{{Column: ColSurname, Method: Label}})
	require.NoError(t, e.Fit(fit))

	out, err := e.Transform(newTable(
		row{ColSurname: str("Allen")},
		row{ColSurname: str("Braund")},
		row{ColSurname: str("Zed")},
	))
	require.NoError(t, err)
	assert.Equal(t, 0.0, floatAt(t, out, 0, ColSurname))
	assert.Equal(t, 1.0, floatAt(t, out, 1, ColSurname))
	assert.Equal(t, -1.0, floatAt(t, out, 2, ColSurname))
}

func TestEncoder_UnknownMethod(t *testing.T) {
	e := NewEncoder([]EncodeRule{{Column: ColSex, Method: "freq"}})
	assert.Error(t, e.Fit(newTable(row{ColSex: str("male")})))
}
