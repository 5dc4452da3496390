package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/sadopc/timebill/internal/store"
	"github.com/spf13/cobra"
)

func newRunsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived counting runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.cfg.Store
			if path == "" {
				var err error
				if path, err = store.DefaultDBPath(); err != nil {
					return err
				}
			}
			s, err := store.New(path)
			if err != nil {
				return fmt.Errorf("opening archive: %w", err)
			}
			defer s.Close()

			runs, err := s.ListRuns(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs archived.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				id := r.ID
				if len(id) > 8 {
					id = id[:8]
				}
				rows = append(rows, []string{
					id,
					r.StartedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(r.EntryCount),
					r.FirstDay,
					r.LastDay,
					fmt.Sprintf("%.1f", float64(r.TotalMinutes)/60),
					filepath.Base(r.Input),
				})
			}
			fmt.Fprint(out, renderTable([]string{"run", "started", "entries", "first", "last", "hours", "input"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to list (0 for all)")

	return cmd
}
