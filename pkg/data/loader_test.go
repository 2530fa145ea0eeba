package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survfeat/pkg/table"
)

func TestReadFile_Passengers(t *testing.T) {
	tb, err := ReadFile("testdata/train.csv", PassengerSchema)
	require.NoError(t, err)

	assert.Equal(t, 25, tb.Len())
	assert.Equal(t, []string{
		"PassengerId", "Survived", "Pclass", "Name", "Sex", "Age",
		"SibSp", "Parch", "Ticket", "Fare", "Cabin", "Embarked",
	}, tb.Columns())

	ticket := tb.Get(3, "Ticket")
	assert.Equal(t, table.String, ticket.Kind())
	assert.Equal(t, "113803", ticket.String())

	class, ok := tb.Get(0, "Pclass").Float()
	require.True(t, ok)
	assert.Equal(t, 3.0, class)

	assert.True(t, tb.Get(5, "Age").IsMissing())
	assert.True(t, tb.Get(0, "Cabin").IsMissing())
	assert.True(t, tb.Get(23, "Embarked").IsMissing())
	assert.Equal(t, "C23 C25 C27", tb.Get(22, "Cabin").String())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), PassengerSchema)
	assert.EqualError(t, err, "data: empty csv")

	_, err = ReadCSV(strings.NewReader("Age\nold\n"), PassengerSchema)
	assert.ErrorContains(t, err, `line 2 column "Age"`)

	_, err = ReadCSV(strings.NewReader("A,B\n1\n"), Schema{})
	assert.Error(t, err)
}

func TestReadCSV_HeaderTrimmed(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader("\ufeffPclass, Sex\n1,male\n"), Schema{Text: []string{"Sex"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pclass", "Sex"}, tb.Columns())
	assert.Equal(t, "male", tb.Get(0, "Sex").String())
}
