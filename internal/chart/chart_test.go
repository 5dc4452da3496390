package chart

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/timebill/internal/lifeclock"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T, days int) timebill.Table {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := timebill.Table{Categories: []string{"work", "rest"}}
	for i := 0; i < days; i++ {
		w := decimal.NewFromFloat(float64(i%5) + 0.5)
		r := decimal.NewFromInt(1)
		tbl.Rows = append(tbl.Rows, timebill.Row{
			Date:   start.AddDate(0, 0, i),
			Total:  w.Add(r),
			Values: []decimal.Decimal{w, r},
		})
	}
	return tbl
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderAreaWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "DayH_28", "chart.png")
	r := NewPNG(Options{Width: 4, Height: 3, DPI: 50}, "Hours")

	require.NoError(t, r.RenderArea(sampleTable(t, 10), "2023-01-01 - 2023-01-10 10 Days TimeBill (DayH)", path))

	w, h := decodePNG(t, path)
	assert.Equal(t, 200, w)
	assert.Equal(t, 150, h)
}

func TestRenderAreaSingleRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.png")
	r := NewPNG(Options{Width: 2, Height: 2, DPI: 40}, "Hours")
	require.NoError(t, r.RenderArea(sampleTable(t, 1), "one", path))
	assert.FileExists(t, path)
}

func TestRenderAreaEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "empty.png")
	r := NewPNG(Options{}, "Hours")
	require.NoError(t, r.RenderArea(timebill.Table{Categories: []string{"work"}}, "empty", path))
	assert.NoFileExists(t, path)
	assert.NoDirExists(t, filepath.Dir(path))
}

func TestStackInput(t *testing.T) {
	xs, values := stackInput(sampleTable(t, 1))
	require.Len(t, xs, 2)
	assert.Equal(t, float64(24*3600), xs[1]-xs[0])
	assert.Equal(t, values[0], values[1])
	assert.Equal(t, []float64{0.5, 1}, values[0])
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{Width: 5}.withDefaults()
	assert.Equal(t, 5.0, o.Width)
	assert.Equal(t, DefaultOptions().Height, o.Height)
	assert.Equal(t, DefaultOptions().DPI, o.DPI)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"black", color.RGBA{0, 0, 0, 255}, true},
		{" Grey ", color.RGBA{128, 128, 128, 255}, true},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#12", color.RGBA{}, false},
		{"chartreuse", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrBadColor, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRenderLife(t *testing.T) {
	g, err := lifeclock.NewGrid(
		time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		10, 52,
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "life.png")
	require.NoError(t, RenderLife(g, LifeOptions{Scale: 0.5, DPI: 40}, path))

	w, h := decodePNG(t, path)
	assert.InDelta(t, a4Width*0.5*40, w, 1)
	assert.InDelta(t, a4Height*0.5*40, h, 1)
}

func TestRenderLifeBadEdge(t *testing.T) {
	g := lifeclock.Grid{Years: 2, WeeksPerYear: 2}
	err := RenderLife(g, LifeOptions{EdgeColor: "nope"}, filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, ErrBadColor)
}

func TestTerminalRender(t *testing.T) {
	term := Terminal{Width: 40, Height: 8}
	assert.Empty(t, term.Render(timebill.Table{}))

	out := term.Render(sampleTable(t, 5))
	assert.NotEmpty(t, out)

	legend := term.Legend([]string{"work", "rest"})
	assert.Contains(t, legend, "work")
	assert.Contains(t, legend, "rest")
}

func TestCategoryColorWraps(t *testing.T) {
	assert.Equal(t, CategoryColor(0), CategoryColor(len(palette)))
}
