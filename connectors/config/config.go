package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	domain "opportunity-report/domain/config"

	"github.com/joho/godotenv"
	lo "github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config is re-exported so commands only import this package.
type Config = domain.Config

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultPath    = "./config.yml"
	DefaultInput   = "SEWorkForJupyter.csv"
	DefaultDataDir = "data"
	DefaultAddr    = ":8080"
)

// KnownFormats are the chart outputs the chart command can render.
var KnownFormats = []string{"svg", "xlsx", "text"}

// Load parses the YAML configuration file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Info(fmt.Sprintf("Loaded config: %s", path))
	return &c, nil
}

// Resolve builds the effective configuration: .env, then CONFIG_PATH (or
// ./config.yml when present), then REPORT_* environment overrides, then
// defaults.
func Resolve() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	cfg := &Config{}
	if loaded, err := Load(path); err == nil {
		cfg = loaded
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if v := os.Getenv("REPORT_INPUT"); v != "" {
		cfg.Input.Path = v
	}
	if v := os.Getenv("REPORT_DATA_DIR"); v != "" {
		cfg.Output.DataDir = v
	}
	if v := os.Getenv("REPORT_ADDR"); v != "" {
		cfg.Web.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(c *Config) {
	if c.Input.Path == "" {
		c.Input.Path = DefaultInput
	}
	if c.Output.DataDir == "" {
		c.Output.DataDir = DefaultDataDir
	}
	c.Output.Formats = NormalizeFormats(c.Output.Formats)
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = append([]string{}, KnownFormats...)
	}
	if c.Web.Addr == "" {
		c.Web.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// NormalizeFormats lowercases and trims format names, dropping blanks and
// duplicates.
func NormalizeFormats(formats []string) []string {
	parts := lo.Map(formats, func(f string, _ int) string { return strings.ToLower(strings.TrimSpace(f)) })
	return lo.Uniq(lo.Compact(parts))
}

// Validate returns every problem found in c at once.
func Validate(c *Config) error {
	var problems []string
	if strings.TrimSpace(c.Input.Path) == "" {
		problems = append(problems, "input.path must not be empty")
	} else if ext := strings.ToLower(filepath.Ext(c.Input.Path)); ext != ".csv" && ext != ".xlsx" {
		problems = append(problems, fmt.Sprintf("input.path %q: unsupported extension %q (want .csv or .xlsx)", c.Input.Path, ext))
	}
	for _, f := range c.Output.Formats {
		if !lo.Contains(KnownFormats, f) {
			problems = append(problems, fmt.Sprintf("output.formats: unknown format %q", f))
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps a log level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level: unknown level %q", s)
}
