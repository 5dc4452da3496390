package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// renderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	var b strings.Builder

	writeRow := func(cells []string, style func(string) string, alignRight func(int) bool) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if alignRight(i) {
				b.WriteString(pad + style(cell))
			} else {
				b.WriteString(style(cell) + pad)
			}
			if i < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	numeric := func(i int) bool { return i > 0 }
	writeRow(headers, func(s string) string { return styleHeader.Render(s) }, numeric)

	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, func(s string) string { return s }, numeric)
	}
	return b.String()
}

// numberFormatter prints decimals with the grouping and separators of a
// locale, falling back to English.
type numberFormatter struct {
	p      *message.Printer
	digits int
}

func newNumberFormatter(locale string, digits int) numberFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return numberFormatter{p: message.NewPrinter(tag), digits: digits}
}

func (f numberFormatter) format(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(f.digits),
		number.MaxFractionDigits(f.digits)))
}
