package dataprep

import (
	"testing"

	"github.com/stretchr/testify/require"

	"survfeat/pkg/table"
)

type row = map[string]table.Value

func num(f float64) table.Value { return table.Num(f) }
func str(s string) table.Value  { return table.Str(s) }

func newTable(rows ...row) *table.Table {
	t := table.New()
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

func floatAt(t *testing.T, tb *table.Table, i int, col string) float64 {
	t.Helper()
	f, ok := tb.Get(i, col).Float()
	require.True(t, ok, "row %d column %s is %s", i, col, tb.Get(i, col).Kind())
	return f
}

func textOf(tb *table.Table, i int, col string) string {
	return tb.Get(i, col).Key()
}
