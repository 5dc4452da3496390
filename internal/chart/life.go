package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/sadopc/timebill/internal/lifeclock"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// A4 portrait, inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// LifeOptions controls the life-in-weeks image.
type LifeOptions struct {
	Scale     float64
	DPI       int
	EdgeColor string
}

var cellColors = map[lifeclock.Cell]color.RGBA{
	lifeclock.CellLived:   rgb(0.9, 0.9, 0.9),
	lifeclock.CellPast:    rgb(0.7, 0.8, 0.9),
	lifeclock.CellCurrent: rgb(1, 1, 0),
	lifeclock.CellFuture:  rgb(0.9, 0.8, 0.7),
	lifeclock.CellAhead:   rgb(0.8, 1, 0.8),
}

// RenderLife draws g as one square per week, age growing downwards, and
// writes it to path.
func RenderLife(g lifeclock.Grid, o LifeOptions, path string) error {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.DPI <= 0 {
		o.DPI = 100
	}
	if o.EdgeColor == "" {
		o.EdgeColor = "black"
	}
	edge, err := ParseColor(o.EdgeColor)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("A %d-Year Human Life in Weeks", g.Years)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Week of Year"
	p.Y.Label.Text = "Age"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Min, p.X.Max = 0, float64(g.WeeksPerYear)
	p.Y.Min, p.Y.Max = 0, float64(g.Years)
	p.X.Tick.Marker = weekTicks(g.WeeksPerYear)
	p.Y.Tick.Marker = ageTicks(g.Years)

	var cellErr error
	g.Each(func(age, week int, c lifeclock.Cell) {
		if cellErr != nil {
			return
		}
		// Row 0 sits at the top.
		y := float64(g.Years - age - 1)
		x := float64(week)
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: x, Y: y}, {X: x + 1, Y: y}, {X: x + 1, Y: y + 1}, {X: x, Y: y + 1},
		})
		if err != nil {
			cellErr = err
			return
		}
		poly.Color = cellColors[c]
		poly.LineStyle.Color = edge
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	})
	if cellErr != nil {
		return fmt.Errorf("life grid: %w", cellErr)
	}

	return savePNG(p, a4Width*o.Scale, a4Height*o.Scale, o.DPI, path)
}

func weekTicks(weeks int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for w := 0; w <= weeks; w += 13 {
		ticks = append(ticks, plot.Tick{Value: float64(w), Label: strconv.Itoa(w)})
	}
	return ticks
}

func ageTicks(years int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for a := 0; a <= years; a += 20 {
		ticks = append(ticks, plot.Tick{Value: float64(years - a), Label: strconv.Itoa(a)})
	}
	return ticks
}
