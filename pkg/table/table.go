// Package table holds the row-oriented record table the pipeline stages read
// and write. Columns are ordered; rows keep their identity and order.
package table

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
)

// ErrMissingColumn is wrapped by every error reporting an absent column.
var ErrMissingColumn = errors.New("table: missing column")

// Table is an ordered sequence of rows keyed by column name.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// AddColumn appends a column filled with missing values. Existing columns are left alone.
func (t *Table) AddColumn(col string) {
	if _, ok := t.index[col]; ok {
		return
	}
	t.index[col] = len(t.columns)
	t.columns = append(t.columns, col)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Null())
	}
}

// AppendRow adds a row; columns not in the table are created first.
func (t *Table) AppendRow(values map[string]Value) {
	for c := range values {
		if !t.Has(c) {
			t.AddColumn(c)
		}
	}
	row := make([]Value, len(t.columns))
	for c, v := range values {
		row[t.index[c]] = v
	}
	t.rows = append(t.rows, row)
}

// Get returns the value at row i, or a missing value when the column is absent.
func (t *Table) Get(i int, col string) Value {
	j, ok := t.index[col]
	if !ok {
		return Null()
	}
	return t.rows[i][j]
}

// Set writes the value at row i, creating the column if needed.
func (t *Table) Set(i int, col string, v Value) {
	j, ok := t.index[col]
	if !ok {
		t.AddColumn(col)
		j = t.index[col]
	}
	t.rows[i][j] = v
}

// Column returns a copy of one column's values.
func (t *Table) Column(col string) []Value {
	out := make([]Value, len(t.rows))
	j, ok := t.index[col]
	if !ok {
		return out
	}
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out
}

// Row returns a copy of row i as a map.
func (t *Table) Row(i int) map[string]Value {
	out := make(map[string]Value, len(t.columns))
	for j, c := range t.columns {
		out[c] = t.rows[i][j]
	}
	return out
}

// Drop removes the named columns; absent names are ignored.
func (t *Table) Drop(cols ...string) {
	gone := make(map[string]bool, len(cols))
	for _, c := range cols {
		if t.Has(c) {
			gone[c] = true
		}
	}
	if len(gone) == 0 {
		return
	}
	keep := make([]int, 0, len(t.columns))
	columns := make([]string, 0, len(t.columns))
	for j, c := range t.columns {
		if !gone[c] {
			keep = append(keep, j)
			columns = append(columns, c)
		}
	}
	for i, row := range t.rows {
		next := make([]Value, len(keep))
		for k, j := range keep {
			next[k] = row[j]
		}
		t.rows[i] = next
	}
	t.columns = columns
	t.index = make(map[string]int, len(columns))
	for j, c := range columns {
		t.index[c] = j
	}
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    make([][]Value, len(t.rows)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	for i, row := range t.rows {
		c.rows[i] = append([]Value(nil), row...)
	}
	return c
}

// Require returns an error wrapping ErrMissingColumn for every absent column.
func (t *Table) Require(cols ...string) error {
	var err error
	for _, c := range cols {
		if !t.Has(c) {
			err = multierr.Append(err, fmt.Errorf("%w %q", ErrMissingColumn, c))
		}
	}
	return err
}

// MissingCount returns how many rows hold a missing value in col.
func (t *Table) MissingCount(col string) int {
	n := 0
	for _, v := range t.Column(col) {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// Matrix exports numeric columns as a dense rows x len(cols) matrix.
// Missing values become NaN; a string value is an error.
func (t *Table) Matrix(cols ...string) (*mat.Dense, error) {
	if err := t.Require(cols...); err != nil {
		return nil, err
	}
	if len(t.rows) == 0 || len(cols) == 0 {
		return nil, errors.New("table: empty matrix")
	}
	data := make([]float64, 0, len(t.rows)*len(cols))
	for i := range t.rows {
		for _, c := range cols {
			v := t.Get(i, c)
			switch v.Kind() {
			case Missing:
				data = append(data, math.NaN())
			case Number:
				data = append(data, v.num)
			default:
				return nil, fmt.Errorf("table: column %q row %d is not numeric", c, i)
			}
		}
	}
	return mat.NewDense(len(t.rows), len(cols), data), nil
}
