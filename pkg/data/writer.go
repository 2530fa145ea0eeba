package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	json "github.com/goccy/go-json"

	"survfeat/pkg/table"
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatArrow = "arrow"
)

// Write encodes t in the named format.
func Write(w io.Writer, t *table.Table, format string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSONL:
		return WriteJSONLines(w, t)
	case FormatArrow:
		return WriteArrow(w, t)
	default:
		return fmt.Errorf("data: unknown format %q", format)
	}
}

// WriteCSV writes a header and one record per row; missing cells are empty.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	rec := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			rec[j] = t.Get(i, c).String()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSONLines writes one JSON object per row; missing cells are null.
func WriteJSONLines(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	cols := t.Columns()
	for i := 0; i < t.Len(); i++ {
		obj := make(map[string]any, len(cols))
		for _, c := range cols {
			obj[c] = t.Get(i, c).Interface()
		}
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("data: row %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ArrowSchema maps columns holding only numbers (or missing) to nullable
// float64 fields and every other column to utf8.
func ArrowSchema(t *table.Table) *arrow.Schema {
	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	for j, c := range cols {
		var typ arrow.DataType = arrow.PrimitiveTypes.Float64
		for _, v := range t.Column(c) {
			if v.Kind() == table.String {
				typ = arrow.BinaryTypes.String
				break
			}
		}
		fields[j] = arrow.Field{Name: c, Type: typ, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// WriteArrow writes t as a single record batch in an Arrow IPC file.
func WriteArrow(w io.Writer, t *table.Table) error {
	schema := ArrowSchema(t)
	pool := memory.NewGoAllocator()

	rb := array.NewRecordBuilder(pool, schema)
	defer rb.Release()

	for j, f := range schema.Fields() {
		for _, v := range t.Column(f.Name) {
			switch b := rb.Field(j).(type) {
			case *array.Float64Builder:
				if x, ok := v.Float(); ok {
					b.Append(x)
				} else {
					b.AppendNull()
				}
			case *array.StringBuilder:
				if v.IsMissing() {
					b.AppendNull()
				} else {
					b.Append(v.String())
				}
			}
		}
	}
	rec := rb.NewRecord()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("failed to create Arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	return fw.Close()
}
