package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/timebill"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PNG renders stacked-area charts to PNG files.
type PNG struct {
	opts Options
	unit string
}

// NewPNG returns a renderer with o, unset fields taking their defaults.
// unit labels the value axis.
func NewPNG(o Options, unit string) *PNG {
	return &PNG{opts: o.withDefaults(), unit: unit}
}

// RenderArea stacks one band per category, bottom first, and writes the
// chart atomically to path, creating its directory.
func (r *PNG) RenderArea(t timebill.Table, title, path string) error {
	if t.Empty() {
		return nil
	}
	p, err := r.areaPlot(t, title)
	if err != nil {
		return err
	}
	return savePNG(p, r.opts.Width, r.opts.Height, r.opts.DPI, path)
}

func (r *PNG) areaPlot(t timebill.Table, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(r.opts.FontSize)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = r.unit
	p.X.Tick.Marker = plot.TimeTicks{Format: timebill.DateLayout}
	p.Y.Min = 0
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	xs, values := stackInput(t)
	lower := make([]float64, len(xs))
	for i, name := range t.Categories {
		upper := make([]float64, len(xs))
		for j := range xs {
			upper[j] = lower[j] + values[j][i]
		}
		poly, err := band(xs, lower, upper)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		poly.Color = mustColor(CategoryColor(i))
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(name, poly)
		lower = upper
	}
	return p, nil
}

// stackInput flattens t into x positions (unix seconds) and per-row values.
// A single row is widened to one day so its band has an area.
func stackInput(t timebill.Table) ([]float64, [][]float64) {
	xs := make([]float64, 0, len(t.Rows)+1)
	values := make([][]float64, 0, len(t.Rows)+1)
	for _, row := range t.Rows {
		vals := make([]float64, len(t.Categories))
		for i := range vals {
			if i < len(row.Values) {
				vals[i] = row.Values[i].InexactFloat64()
			}
		}
		xs = append(xs, float64(row.Date.Unix()))
		values = append(values, vals)
	}
	if len(xs) == 1 {
		next := t.Rows[0].Date.Add(24 * time.Hour)
		xs = append(xs, float64(next.Unix()))
		values = append(values, values[0])
	}
	return xs, values
}

// band outlines the area between lower and upper.
func band(xs, lower, upper []float64) (*plotter.Polygon, error) {
	pts := make(plotter.XYs, 0, 2*len(xs))
	for i := range xs {
		pts = append(pts, plotter.XY{X: xs[i], Y: upper[i]})
	}
	for i := len(xs) - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: xs[i], Y: lower[i]})
	}
	return plotter.NewPolygon(pts)
}

func savePNG(p *plot.Plot, width, height float64, dpi int, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	err := atomicfile.Write(path, func(w io.Writer) error {
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("write chart %s: %w", path, err)
	}
	return nil
}
