// Package config loads gitalearn settings from a TOML file, an optional .env
// file and GITALEARN_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/abhisek/gitalearn/internal/coach"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "GITALEARN_"

// Config is the merged runtime configuration.
type Config struct {
	DBPath   string         `toml:"db_path" env:"DB"`
	LogLevel string         `toml:"log_level" env:"LOG_LEVEL"`
	Timezone string         `toml:"timezone" env:"TIMEZONE"`
	UserName string         `toml:"user_name" env:"USER_NAME"`
	Coach    CoachConfig    `toml:"coach" envPrefix:"COACH_"`
	Reminder ReminderConfig `toml:"reminder" envPrefix:"REMINDER_"`
}

// CoachConfig selects the optional message provider.
type CoachConfig struct {
	Provider       string `toml:"provider" env:"PROVIDER"`
	Model          string `toml:"model" env:"MODEL"`
	APIKey         string `toml:"api_key" env:"API_KEY"`
	BaseURL        string `toml:"base_url" env:"BASE_URL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// ReminderConfig tunes the watch loop.
type ReminderConfig struct {
	IntervalMinutes int `toml:"interval_minutes" env:"INTERVAL_MINUTES"`
	WarnHours       int `toml:"warn_hours" env:"WARN_HOURS"`
}

// Options locates the inputs. Zero values fall back to the XDG config path,
// ./.env and the process environment.
type Options struct {
	Path    string
	DotEnv  string
	Environ map[string]string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Timezone: "Local",
		UserName: "You",
		Coach: CoachConfig{
			Provider:       coach.ProviderNone,
			TimeoutSeconds: int(coach.DefaultTimeout / time.Second),
		},
		Reminder: ReminderConfig{IntervalMinutes: 30, WarnHours: 4},
	}
}

// Load merges defaults, the TOML file, the .env file and the environment.
// A missing TOML or .env file is not an error.
func Load(opts Options) (Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	environ, err := environment(opts)
	if err != nil {
		return cfg, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// environment layers the process environment over the .env file.
func environment(opts Options) (map[string]string, error) {
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	merged, err := godotenv.Read(dotenv)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
		merged = map[string]string{}
	}

	environ := opts.Environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Coach.Provider != "" && !slices.Contains(coach.Providers(), strings.ToLower(c.Coach.Provider)) {
		errs = append(errs, fmt.Errorf("coach.provider %q: want one of %s", c.Coach.Provider, strings.Join(coach.Providers(), ", ")))
	}
	if c.Coach.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("coach.timeout_seconds must not be negative"))
	}
	if c.Reminder.IntervalMinutes <= 0 {
		errs = append(errs, fmt.Errorf("reminder.interval_minutes must be positive"))
	}
	if c.Reminder.WarnHours <= 0 || c.Reminder.WarnHours > 24 {
		errs = append(errs, fmt.Errorf("reminder.warn_hours must be between 1 and 24"))
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. Empty and "Local" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level returns the parsed log level, warn when unparseable.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// CoachSettings converts the file form into coach.Config.
func (c Config) CoachSettings() coach.Config {
	return coach.Config{
		Provider: strings.ToLower(c.Coach.Provider),
		Model:    c.Coach.Model,
		APIKey:   c.Coach.APIKey,
		BaseURL:  c.Coach.BaseURL,
		Timeout:  time.Duration(c.Coach.TimeoutSeconds) * time.Second,
		Backoff:  coach.DefaultBackoff(),
	}
}

// ReminderInterval is how often the watch loop checks.
func (c Config) ReminderInterval() time.Duration {
	return time.Duration(c.Reminder.IntervalMinutes) * time.Minute
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	dir, err := XDGConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gitalearn", "config.toml"), nil
}
