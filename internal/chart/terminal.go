package chart

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/timebill/internal/timebill"
)

// Terminal draws tables as stacked bar charts for a text terminal.
type Terminal struct {
	Width  int
	Height int
}

// Render returns one stacked bar per row, or "" for an empty table.
func (r Terminal) Render(t timebill.Table) string {
	if t.Empty() {
		return ""
	}
	width := max(r.Width, 20)
	height := r.Height
	if height <= 0 {
		height = 12
	}

	bc := barchart.New(width, height)
	bars := make([]barchart.BarData, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]barchart.BarValue, 0, len(t.Categories))
		for i, name := range t.Categories {
			if i >= len(row.Values) {
				break
			}
			values = append(values, barchart.BarValue{
				Name:  name,
				Value: row.Values[i].InexactFloat64(),
				Style: categoryStyle(i),
			})
		}
		bars = append(bars, barchart.BarData{
			Label:  row.Date.Format("01-02"),
			Values: values,
		})
	}

	bc.PushAll(bars)
	bc.Draw()
	return bc.View()
}

// Legend lists the categories with their bar colours.
func (r Terminal) Legend(categories []string) string {
	items := make([]string, 0, len(categories))
	for i, name := range categories {
		items = append(items, fmt.Sprintf("%s %s", categoryStyle(i).Render("●"), name))
	}
	return strings.Join(items, "  ")
}

func categoryStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(CategoryColor(i)))
}
