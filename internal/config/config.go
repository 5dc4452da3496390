package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/timebill"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given.
const DefaultFile = ".timebill.yaml"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Categories     []string    `yaml:"categories"`
	Input          string      `yaml:"input"`
	ImageDir       string      `yaml:"imageDir"`
	WeekStart      int         `yaml:"weekStart"`
	Overwrite      bool        `yaml:"overwrite"`
	MinutesPerUnit int64       `yaml:"minutesPerUnit"`
	Store          string      `yaml:"store,omitempty"`
	LogDir         string      `yaml:"logDir,omitempty"`
	JSON           bool        `yaml:"json"`
	Chart          ChartConfig `yaml:"chart"`
	Draw           DrawConfig  `yaml:"draw"`
	Life           LifeConfig  `yaml:"life"`
}

type ChartConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	DPI      int     `yaml:"dpi"`
	FontSize float64 `yaml:"fontSize"`
	Locale   string  `yaml:"locale"`
}

// DrawConfig anchors the yearly chart windows.
type DrawConfig struct {
	StartYear int `yaml:"startYear"`
	Month     int `yaml:"month"`
	Day       int `yaml:"day"`
}

type LifeConfig struct {
	Birthday     string  `yaml:"birthday"`
	Years        int     `yaml:"years"`
	WeeksPerYear int     `yaml:"weeksPerYear"`
	Scale        float64 `yaml:"scale"`
	DPI          int     `yaml:"dpi"`
	EdgeColor    string  `yaml:"edgeColor"`
}

func Default() *Config {
	return &Config{
		Categories: []string{
			"0-other", "1-health", "2-growth", "3-family",
			"4-work", "5-wealth", "6-social", "7-leisure",
		},
		Input:          "alldata.txt",
		ImageDir:       "images",
		WeekStart:      int(timebill.DefaultWeekStart),
		Overwrite:      true,
		MinutesPerUnit: timebill.DefaultMinutesPerUnit,
		Chart: ChartConfig{
			Width:    20,
			Height:   10,
			DPI:      100,
			FontSize: 18,
			Locale:   "en",
		},
		Draw: DrawConfig{StartYear: 2017, Month: 7, Day: 20},
		Life: LifeConfig{
			Birthday:     "1970-1-1",
			Years:        90,
			WeeksPerYear: 52,
			Scale:        1,
			DPI:          100,
			EdgeColor:    "black",
		},
	}
}

// LoadDotEnv loads .env files into the environment. Missing files are not
// an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if atomicfile.Exists(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads path over the defaults, applies TIMEBILL_* environment
// overrides and validates the result. An empty path reads DefaultFile and
// tolerates its absence.
func Load(path string) (*Config, error) {
	useDefault := path == ""
	if useDefault {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && useDefault:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var problems []string
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("TIMEBILL_INPUT", &c.Input)
	str("TIMEBILL_IMAGE_DIR", &c.ImageDir)
	str("TIMEBILL_STORE", &c.Store)
	str("TIMEBILL_LOG_DIR", &c.LogDir)

	if v, ok := lookup("TIMEBILL_WEEK_START"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("TIMEBILL_WEEK_START %q is not a number", v))
		} else {
			c.WeekStart = n
		}
	}
	if v, ok := lookup("TIMEBILL_OVERWRITE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("TIMEBILL_OVERWRITE %q is not a boolean", v))
		} else {
			c.Overwrite = b
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) expandPaths() {
	for _, p := range []*string{&c.Input, &c.ImageDir, &c.Store, &c.LogDir} {
		*p = expandHome(*p)
	}
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if _, err := timebill.NewCategories(c.Categories...); err != nil {
		problems = append(problems, err.Error())
	}
	if !timebill.WeekStart(c.WeekStart).Valid() {
		problems = append(problems, fmt.Sprintf("weekStart %d must be between 0 (Monday) and 6 (Sunday)", c.WeekStart))
	}
	if c.MinutesPerUnit <= 0 {
		problems = append(problems, fmt.Sprintf("minutesPerUnit %d must be positive", c.MinutesPerUnit))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		problems = append(problems, "chart width and height must be positive")
	}
	if c.Chart.DPI <= 0 {
		problems = append(problems, "chart dpi must be positive")
	}
	if c.Draw.Month < 1 || c.Draw.Month > 12 {
		problems = append(problems, fmt.Sprintf("draw month %d must be between 1 and 12", c.Draw.Month))
	}
	if c.Draw.Day < 1 || c.Draw.Day > 31 {
		problems = append(problems, fmt.Sprintf("draw day %d must be between 1 and 31", c.Draw.Day))
	}
	if c.Draw.StartYear < 1 {
		problems = append(problems, "draw startYear must be set")
	}
	if _, err := timebill.ParseDay(c.Life.Birthday); err != nil {
		problems = append(problems, fmt.Sprintf("life birthday %q is not a date", c.Life.Birthday))
	}
	if c.Life.Years < 1 || c.Life.WeeksPerYear < 1 {
		problems = append(problems, "life years and weeksPerYear must be positive")
	}
	if c.Life.Scale <= 0 || c.Life.DPI <= 0 {
		problems = append(problems, "life scale and dpi must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// CategorySet returns the validated category enumeration.
func (c *Config) CategorySet() (timebill.Categories, error) {
	cats, err := timebill.NewCategories(c.Categories...)
	if err != nil {
		return timebill.Categories{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cats, nil
}

// Birthday parses Life.Birthday.
func (c *Config) Birthday() (time.Time, error) {
	return timebill.ParseDay(c.Life.Birthday)
}

// Save writes cfg as YAML to path, replacing any existing file atomically.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return atomicfile.Write(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
