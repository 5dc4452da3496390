package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/config"
	"github.com/sadopc/timebill/internal/report"
	"github.com/sadopc/timebill/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the hour tables interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireTTY(); err != nil {
				return err
			}
			if input == "" {
				input = app.cfg.Input
			}
			tables, err := report.LoadTables(input, report.KindDayH, report.KindWeekH, report.KindWeek4H)
			if err != nil {
				return fmt.Errorf("%w (run count first)", err)
			}
			return app.RunProgram(tui.NewApp(tables, filepath.Dir(input)))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Log file the tables were derived from")

	return cmd
}

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file interactively",
		// The config may not exist yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireTTY(); err != nil {
				return err
			}
			path := app.configPath
			if path == "" {
				path = config.DefaultFile
			}
			if atomicfile.Exists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}

			cfg := config.Default()
			form := tui.NewConfigForm(cfg)
			if err := app.RunForm(form.Form); err != nil {
				return err
			}
			if err := form.Apply(cfg); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing config file")

	return cmd
}
