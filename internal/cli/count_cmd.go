package cli

import (
	"fmt"
	"time"

	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/report"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/spf13/cobra"
)

func newCountCmd(app *App) *cobra.Command {
	var input string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Aggregate the log into day, week and four-week tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.count(input, asJSON, cmd.Flags().Changed("json"))
			if err != nil {
				return err
			}
			printCount(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Log file (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Also write JSON tables")

	return cmd
}

func (a *App) count(input string, asJSON, jsonSet bool) (report.CountResult, error) {
	cats, err := a.cfg.CategorySet()
	if err != nil {
		return report.CountResult{}, err
	}
	if input == "" {
		input = a.cfg.Input
	}
	if !jsonSet {
		asJSON = a.cfg.JSON
	}

	s, err := a.openStore()
	if err != nil {
		return report.CountResult{}, err
	}
	if s != nil {
		defer s.Close()
	}

	return report.Count(report.CountOptions{
		Counter: report.Counter{
			Categories:     cats,
			WeekStart:      timebill.WeekStart(a.cfg.WeekStart),
			MinutesPerUnit: a.cfg.MinutesPerUnit,
		},
		Input: input,
		JSON:  asJSON,
		Store: s,
		Now:   a.Now,
	})
}

func printCount(cmd *cobra.Command, res report.CountResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Counted %d entries into %d days (run %s)\n",
		len(res.Entries), len(res.Tables[report.KindDay].Rows), res.RunID)
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
}

type drawFlags struct {
	startYear int
	month     int
	day       int
	overwrite bool
}

func (f *drawFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.startYear, "start-year", 0, "First chart year (overrides config)")
	cmd.Flags().IntVar(&f.month, "month", 0, "Month each chart year starts on")
	cmd.Flags().IntVar(&f.day, "day", 0, "Day each chart year starts on")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", true, "Redraw charts that already exist")
}

func (a *App) drawer(cmd *cobra.Command, f drawFlags) (*report.Drawer, report.Anchor) {
	anchor := report.Anchor{
		StartYear: a.cfg.Draw.StartYear,
		Month:     time.Month(a.cfg.Draw.Month),
		Day:       a.cfg.Draw.Day,
	}
	if f.startYear > 0 {
		anchor.StartYear = f.startYear
	}
	if f.month > 0 {
		anchor.Month = time.Month(f.month)
	}
	if f.day > 0 {
		anchor.Day = f.day
	}

	overwrite := a.cfg.Overwrite
	if cmd.Flags().Changed("overwrite") {
		overwrite = f.overwrite
	}

	return &report.Drawer{
		Renderer:  chart.NewPNG(a.chartOptions(), "Hours"),
		ImageDir:  a.cfg.ImageDir,
		Overwrite: overwrite,
		Now:       a.Now,
	}, anchor
}

func printDraw(cmd *cobra.Command, res report.DrawResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "Charts: %d written, %d skipped, %d empty\n",
		len(res.Written), len(res.Skipped), len(res.Empty))
}

func newDrawCmd(app *App) *cobra.Command {
	var input string
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Render charts from the hour tables written by count",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = app.cfg.Input
			}
			tables, err := report.LoadTables(input, report.KindDayH, report.KindWeekH, report.KindWeek4H)
			if err != nil {
				return fmt.Errorf("%w (run count first)", err)
			}
			d, anchor := app.drawer(cmd, flags)
			res, err := d.Update(tables, anchor)
			printDraw(cmd, res)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Log file the tables were derived from")
	flags.register(cmd)

	return cmd
}

func newRunCmd(app *App) *cobra.Command {
	var input string
	var asJSON bool
	var flags drawFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count the log and draw every chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.count(input, asJSON, cmd.Flags().Changed("json"))
			if err != nil {
				return err
			}
			printCount(cmd, res)

			d, anchor := app.drawer(cmd, flags)
			drawn, err := d.Update(res.Tables, anchor)
			printDraw(cmd, drawn)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Log file (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Also write JSON tables")
	flags.register(cmd)

	return cmd
}
