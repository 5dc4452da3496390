package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/config"
	"github.com/sadopc/timebill/internal/logger"
	"github.com/sadopc/timebill/internal/store"
	"github.com/spf13/cobra"
)

var ErrNotTerminal = errors.New("interactive command needs a terminal")

// App holds the process-level dependencies shared by all commands.
type App struct {
	Now        func() time.Time
	IsTTY      func() bool
	RunProgram func(m tea.Model) error
	RunForm    func(f *huh.Form) error

	configPath string
	debug      bool
	cfg        *config.Config
}

// NewApp wires the real clock, terminal and interactive runners.
func NewApp() *App {
	return &App{
		Now: time.Now,
		IsTTY: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		RunProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
		RunForm: func(f *huh.Form) error {
			return f.Run()
		},
	}
}

// NewRootCmd creates the top-level "timebill" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timebill",
		Short:         "Aggregate a time log into daily and weekly bills and charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
	}

	root.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file (default "+config.DefaultFile+")")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "Log debug output to stderr")

	root.AddCommand(
		newCountCmd(app),
		newDrawCmd(app),
		newRunCmd(app),
		newShowCmd(app),
		newBrowseCmd(app),
		newWeeksCmd(app),
		newCircleCmd(app),
		newRunsCmd(app),
		newInitCmd(app),
	)

	return root
}

func (a *App) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	dir := cfg.LogDir
	if dir == "" {
		if dir, err = logger.DefaultDir(); err != nil {
			return fmt.Errorf("finding log directory: %w", err)
		}
	}
	if err := logger.Init(logger.Config{Debug: a.debug, Dir: dir}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("config loaded", "path", a.configPath, "input", cfg.Input)
	return nil
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// openStore opens the configured archive, or returns nil when archiving is
// disabled.
func (a *App) openStore() (*store.Store, error) {
	if a.cfg.Store == "" {
		return nil, nil
	}
	s, err := store.New(a.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	return s, nil
}

func (a *App) chartOptions() chart.Options {
	return chart.Options{
		Width:    a.cfg.Chart.Width,
		Height:   a.cfg.Chart.Height,
		DPI:      a.cfg.Chart.DPI,
		FontSize: a.cfg.Chart.FontSize,
	}
}

func (a *App) requireTTY() error {
	if a.IsTTY == nil || !a.IsTTY() {
		return ErrNotTerminal
	}
	return nil
}
