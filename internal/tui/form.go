package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/sadopc/timebill/internal/config"
	"github.com/sadopc/timebill/internal/timebill"
)

// ConfigForm edits the main settings of a config.
type ConfigForm struct {
	Form *huh.Form

	// Form values as pointers (survive value copies)
	categories *string
	input      *string
	imageDir   *string
	weekStart  *int
	overwrite  *bool
	minutes    *string
	birthday   *string
	store      *string
}

// NewConfigForm prefills a form from cfg.
func NewConfigForm(cfg *config.Config) *ConfigForm {
	cats := strings.Join(cfg.Categories, ", ")
	input, imageDir := cfg.Input, cfg.ImageDir
	ws, ow := cfg.WeekStart, cfg.Overwrite
	mins := strconv.FormatInt(cfg.MinutesPerUnit, 10)
	birthday, store := cfg.Life.Birthday, cfg.Store

	f := &ConfigForm{
		categories: &cats,
		input:      &input,
		imageDir:   &imageDir,
		weekStart:  &ws,
		overwrite:  &ow,
		minutes:    &mins,
		birthday:   &birthday,
		store:      &store,
	}

	weekdays := make([]huh.Option[int], 0, 7)
	for w := timebill.WeekStart(0); w <= 6; w++ {
		weekdays = append(weekdays, huh.NewOption(w.String(), int(w)))
	}

	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Log file").Value(f.input).Validate(notBlank),
			huh.NewInput().Title("Categories (comma separated)").Value(f.categories).Validate(validCategories),
			huh.NewInput().Title("Minutes per unit").Value(f.minutes).Validate(positiveInt),
		).Title("Counting"),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Week starts on").Options(weekdays...).Value(f.weekStart),
			huh.NewInput().Title("Image directory").Value(f.imageDir).Validate(notBlank),
			huh.NewConfirm().Title("Overwrite existing charts?").Value(f.overwrite),
		).Title("Charts"),
		huh.NewGroup(
			huh.NewInput().Title("Birthday (YYYY-M-D)").Value(f.birthday).Validate(validDay),
			huh.NewInput().Title("Archive database (empty to disable)").Value(f.store),
		).Title("Life"),
	).WithShowHelp(true).WithShowErrors(true)

	return f
}

// Apply copies the form values into cfg.
func (f *ConfigForm) Apply(cfg *config.Config) error {
	mins, err := strconv.ParseInt(strings.TrimSpace(*f.minutes), 10, 64)
	if err != nil {
		return fmt.Errorf("minutes per unit: %w", err)
	}
	cfg.Categories = splitCategories(*f.categories)
	cfg.Input = strings.TrimSpace(*f.input)
	cfg.ImageDir = strings.TrimSpace(*f.imageDir)
	cfg.WeekStart = *f.weekStart
	cfg.Overwrite = *f.overwrite
	cfg.MinutesPerUnit = mins
	cfg.Life.Birthday = strings.TrimSpace(*f.birthday)
	cfg.Store = strings.TrimSpace(*f.store)
	return cfg.Validate()
}

func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validCategories(s string) error {
	_, err := timebill.NewCategories(splitCategories(s)...)
	return err
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func validDay(s string) error {
	if _, err := timebill.ParseDay(strings.TrimSpace(s)); err != nil {
		return errors.New("expected YYYY-M-D")
	}
	return nil
}
