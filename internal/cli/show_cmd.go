package cli

import (
	"fmt"

	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/export"
	"github.com/sadopc/timebill/internal/report"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var input, kind string
	var last, width int
	var noChart bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a derived table with a bar chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := report.ParseKind(kind)
			if err != nil {
				return err
			}
			if input == "" {
				input = app.cfg.Input
			}
			t, err := export.ReadTSV(report.TablePath(input, k))
			if err != nil {
				return fmt.Errorf("%w (run count first)", err)
			}
			t = t.Last(last)

			out := cmd.OutOrStdout()
			if t.Empty() {
				fmt.Fprintln(out, "No rows.")
				return nil
			}

			digits := 0
			if k.Converted() {
				digits = 2
			}
			fmt.Fprint(out, renderTable(tableHeaders(t), tableRows(t, newNumberFormatter(app.cfg.Chart.Locale, digits))))

			if !noChart {
				term := chart.Terminal{Width: width, Height: 12}
				fmt.Fprintln(out)
				fmt.Fprintln(out, term.Render(t))
				fmt.Fprintln(out, term.Legend(t.Categories))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Log file the tables were derived from")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(report.KindWeekH), "Table: DAY, WEEK, WEEK4, DayH, WeekH, Week4H")
	cmd.Flags().IntVarP(&last, "last", "n", 12, "Show only the last N rows (0 for all)")
	cmd.Flags().IntVar(&width, "width", 80, "Chart width in columns")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip the bar chart")

	return cmd
}

func tableHeaders(t timebill.Table) []string {
	return append([]string{"date", "total"}, t.Categories...)
}

func tableRows(t timebill.Table, f numberFormatter) [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{timebill.FormatDay(r.Date), f.format(r.Total)}
		for _, v := range r.Values {
			row = append(row, f.format(v))
		}
		rows = append(rows, row)
	}
	return rows
}
