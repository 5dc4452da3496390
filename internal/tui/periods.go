package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/report"
	"github.com/sadopc/timebill/internal/timebill"
)

type periodsModel struct {
	kind   report.Kind
	table  timebill.Table
	page   int
	width  int
	height int

	offset int // pages back from the latest (0 = latest)

	chartView string
}

func newPeriodsModel(kind report.Kind, t timebill.Table, page int) periodsModel {
	return periodsModel{kind: kind, table: t, page: page}
}

func (p *periodsModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.buildChart()
}

// pages is the number of pages needed for the whole table.
func (p periodsModel) pages() int {
	if len(p.table.Rows) == 0 {
		return 1
	}
	return (len(p.table.Rows) + p.page - 1) / p.page
}

// window returns the rows on the current page. Pages are aligned to the
// latest row so the newest page is always full.
func (p periodsModel) window() timebill.Table {
	end := len(p.table.Rows) - p.offset*p.page
	start := max(0, end-p.page)
	if end <= 0 {
		return timebill.Table{Categories: p.table.Categories}
	}
	return timebill.Table{Categories: p.table.Categories, Rows: p.table.Rows[start:end]}
}

func (p periodsModel) update(msg tea.Msg) (periodsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Left):
			if p.offset < p.pages()-1 {
				p.offset++
				p.buildChart()
			}
		case key.Matches(msg, keys.Right):
			if p.offset > 0 {
				p.offset--
				p.buildChart()
			}
		case key.Matches(msg, keys.First):
			p.offset = p.pages() - 1
			p.buildChart()
		case key.Matches(msg, keys.Latest):
			p.offset = 0
			p.buildChart()
		}
	}
	return p, nil
}

func (p *periodsModel) buildChart() {
	chartHeight := 12
	if p.height > 30 {
		chartHeight = 16
	}
	term := chart.Terminal{Width: p.width - 8, Height: chartHeight}
	p.chartView = term.Render(p.window())
}

func (p periodsModel) view() string {
	w := p.width - 4
	win := p.window()

	header := titleStyle.Render(string(p.kind))
	if !win.Empty() {
		first := win.Rows[0].Date
		last := win.Rows[len(win.Rows)-1].Date
		label := fmt.Sprintf("%s - %s  page %d/%d",
			first.Format("Jan 02"), last.Format("Jan 02, 2006"), p.pages()-p.offset, p.pages())
		header = lipgloss.JoinHorizontal(lipgloss.Bottom, header, "  ", mutedStyle.Render(label))
	}

	legend := "  " + chart.Terminal{}.Legend(p.table.Categories)
	nav := mutedStyle.Render("  ←/→: older/newer  g/G: oldest/latest  tab: switch view")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", p.chartView, "", legend, "", p.renderSummaryTable(w, win), "", nav,
		),
	)
}

func (p periodsModel) renderSummaryTable(w int, win timebill.Table) string {
	if win.Empty() {
		return mutedStyle.Render("  No data for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s  %-20s", "Date", "Total", "Largest")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	for _, r := range win.Rows {
		top, idx := "", -1
		for i, v := range r.Values {
			if idx < 0 || v.GreaterThan(r.Values[idx]) {
				idx = i
			}
		}
		if idx >= 0 && r.Values[idx].IsPositive() {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.CategoryColor(idx))).Render("●")
			top = fmt.Sprintf("%s %s %s", dot, win.Categories[idx], formatHours(r.Values[idx]))
		}
		rows = append(rows, fmt.Sprintf("  %-12s %8s  %s",
			timebill.FormatDay(r.Date), highlightStyle.Render(formatHours(r.Total)), top))
	}

	return strings.Join(rows, "\n")
}
