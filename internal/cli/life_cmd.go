package cli

import (
	"fmt"
	"time"

	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/lifeclock"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/spf13/cobra"
)

func (a *App) birthday(override string) (time.Time, error) {
	if override != "" {
		b, err := timebill.ParseDay(override)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad birthday %q: %w", override, err)
		}
		return b, nil
	}
	return a.cfg.Birthday()
}

func newWeeksCmd(app *App) *cobra.Command {
	var out, birthday string

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Draw a life calendar with one square per week",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.birthday(birthday)
			if err != nil {
				return err
			}
			life := app.cfg.Life
			g, err := lifeclock.NewGrid(b, app.now(), life.Years, life.WeeksPerYear)
			if err != nil {
				return err
			}

			err = chart.RenderLife(g, chart.LifeOptions{
				Scale:     life.Scale,
				DPI:       life.DPI,
				EdgeColor: life.EdgeColor,
			}, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d weeks lived, week %d of this year\nWrote %s\n", g.WeeksPassed, g.CurrentWeek, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "life_in_weeks.png", "Output image")
	cmd.Flags().StringVar(&birthday, "birthday", "", "Birthday YYYY-M-D (overrides config)")

	return cmd
}

func newCircleCmd(app *App) *cobra.Command {
	var birthday string

	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Show where today falls in the current seven-year circle",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.birthday(birthday)
			if err != nil {
				return err
			}
			c, err := lifeclock.SevenYearCircle(b, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&birthday, "birthday", "", "Birthday YYYY-M-D (overrides config)")

	return cmd
}
