// Package report renders quick looks at feature tables: a console preview and
// histograms with the learned bin edges.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"survfeat/pkg/table"
)

// Histogram plots the distribution of values with a vertical line at each
// bin edge and saves it to path; the extension picks the image format.
func Histogram(values, edges []float64, title, path string) error {
	if len(values) == 0 {
		return errors.New("report: no values to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "value"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), 20)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	p.Add(h)

	top := 0.0
	for _, b := range h.Bins {
		top = max(top, b.Weight)
	}
	for _, e := range edges {
		l, err := plotter.NewLine(plotter.XYs{{X: e, Y: 0}, {X: e, Y: top}})
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		l.Color = color.RGBA{R: 255, A: 255}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
	}

	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}

// NumericColumn returns the non-missing numbers of a column.
func NumericColumn(t *table.Table, col string) []float64 {
	var out []float64
	for _, v := range t.Column(col) {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Preview prints the header and the first n rows of t.
func Preview(w io.Writer, t *table.Table, n int) {
	if n > t.Len() {
		n = t.Len()
	}
	cols := t.Columns()
	for _, c := range cols {
		fmt.Fprintf(w, "%-15s", c)
	}
	fmt.Fprintln(w)

	for i := 0; i < n; i++ {
		for _, c := range cols {
			v := t.Get(i, c)
			if f, ok := v.Float(); ok {
				fmt.Fprintf(w, "%-15.6g", f)
				continue
			}
			fmt.Fprintf(w, "%-15s", v.String())
		}
		fmt.Fprintln(w)
	}
}
