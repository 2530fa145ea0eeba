// Package data reads passenger tables from CSV and writes feature tables as
// CSV, JSON Lines or Arrow IPC files.
package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"survfeat/pkg/table"
)

// Schema types the CSV columns. Columns listed in Text stay strings even when
// they look numeric; every other non-empty cell must parse as a number.
type Schema struct {
	Text []string
}

// PassengerSchema keeps the free-text passenger columns as strings, so a
// ticket such as "113803" is not read as a number.
var PassengerSchema = Schema{Text: []string{"Name", "Sex", "Ticket", "Cabin", "Embarked"}}

func (s Schema) isText(col string) bool {
	for _, c := range s.Text {
		if c == col {
			return true
		}
	}
	return false
}

// ReadCSV reads a headed CSV stream into a table. Empty cells are missing.
func ReadCSV(r io.Reader, s Schema) (*table.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("data: empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("data: read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	text := make([]bool, len(columns))
	for i, c := range columns {
		text[i] = s.isText(c)
	}

	t := table.New(columns...)
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("data: line %d: %w", line, err)
		}
		row := make(map[string]table.Value, len(columns))
		for i, cell := range rec {
			cell = strings.TrimSpace(cell)
			switch {
			case cell == "":
				row[columns[i]] = table.Null()
			case text[i]:
				row[columns[i]] = table.Str(cell)
			default:
				f, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("data: line %d column %q: %w", line, columns[i], err)
				}
				row[columns[i]] = table.Num(f)
			}
		}
		t.AppendRow(row)
	}
}
