// Package chart renders aggregated time tables as images and terminal
// charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/sadopc/timebill/internal/timebill"
)

// Renderer draws a stacked-area chart of t into path. An empty table is a
// no-op.
type Renderer interface {
	RenderArea(t timebill.Table, title, path string) error
}

// ErrBadColor is returned for colour names that cannot be parsed.
var ErrBadColor = errors.New("bad color")

// Options controls image geometry and typography.
type Options struct {
	Width    float64 // inches
	Height   float64 // inches
	DPI      int
	FontSize float64 // title, points
}

// DefaultOptions is a 20x10 inch landscape chart at 100 DPI.
func DefaultOptions() Options {
	return Options{
		Width:    20,
		Height:   10,
		DPI:      100,
		FontSize: 18,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	return o
}

// palette is shared by the image and terminal renderers so a category keeps
// its colour everywhere.
var palette = []string{
	"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12",
	"#2ECC71", "#7AA2F7", "#E74C3C", "#9B59B6",
	"#1ABC9C", "#E67E22", "#95A5A6", "#F1C40F",
}

// CategoryColor returns the hex colour of the i-th category.
func CategoryColor(i int) string {
	return palette[i%len(palette)]
}

var namedColors = map[string]color.RGBA{
	"black": {0, 0, 0, 255},
	"white": {255, 255, 255, 255},
	"gray":  {128, 128, 128, 255},
	"grey":  {128, 128, 128, 255},
	"red":   {255, 0, 0, 255},
	"green": {0, 128, 0, 255},
	"blue":  {0, 0, 255, 255},
}

// ParseColor accepts a basic colour name, #rgb or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func mustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// rgb converts unit floats to a colour.
func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
