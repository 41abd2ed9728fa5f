// Package config handles loading the classwork config.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/amonks/classwork/internal/paths"
)

const (
	// EnvListPath overrides the list file location.
	EnvListPath = "CLASSWORK_FILE"
	// EnvScriptsDir overrides the generator scripts directory.
	EnvScriptsDir = "CLASSWORK_SCRIPTS"
)

const (
	DefaultScriptTimeout = 10 * time.Second
	DefaultDaysBefore    = 3
	DefaultDaysAfter     = 10
	DefaultRangeAfter    = 24
)

// Config represents the config.toml file.
type Config struct {
	Store   Store   `toml:"store"`
	Scripts Scripts `toml:"scripts"`
	Agenda  Agenda  `toml:"agenda"`
}

// Store locates the list file.
type Store struct {
	// Path is the list file. Defaults to ~/.todolist.
	Path string `toml:"path"`
}

// Scripts configures generator script ingestion.
type Scripts struct {
	// Dir holds the generator scripts. Defaults to ~/.todolistrc.
	Dir string `toml:"dir"`

	// Timeout bounds each script run.
	Timeout Duration `toml:"timeout"`

	// Enabled turns script ingestion on or off.
	Enabled bool `toml:"enabled"`
}

// Agenda sets the window of the weekly agenda, in days around today.
type Agenda struct {
	DaysBefore int `toml:"days-before"`
	DaysAfter  int `toml:"days-after"`
	// RangeAfter is how far ahead assignments are queried.
	RangeAfter int `toml:"range-after"`
}

// Duration is a time.Duration written as a string like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Scripts: Scripts{
			Timeout: Duration{DefaultScriptTimeout},
			Enabled: true,
		},
		Agenda: Agenda{
			DaysBefore: DefaultDaysBefore,
			DaysAfter:  DefaultDaysAfter,
			RangeAfter: DefaultRangeAfter,
		},
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := paths.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, meta, err := loadConfigFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	merged := mergeDefaults(cfg, meta)
	if err := merged.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeDefaults(cfg *Config, meta toml.MetaData) *Config {
	merged := Default()
	merged.Store.Path = strings.TrimSpace(cfg.Store.Path)
	merged.Scripts.Dir = strings.TrimSpace(cfg.Scripts.Dir)
	if meta.IsDefined("scripts", "timeout") {
		merged.Scripts.Timeout = cfg.Scripts.Timeout
	}
	if meta.IsDefined("scripts", "enabled") {
		merged.Scripts.Enabled = cfg.Scripts.Enabled
	}
	if meta.IsDefined("agenda", "days-before") {
		merged.Agenda.DaysBefore = cfg.Agenda.DaysBefore
	}
	if meta.IsDefined("agenda", "days-after") {
		merged.Agenda.DaysAfter = cfg.Agenda.DaysAfter
	}
	if meta.IsDefined("agenda", "range-after") {
		merged.Agenda.RangeAfter = cfg.Agenda.RangeAfter
	}
	return merged
}

func (c *Config) validate() error {
	if c.Scripts.Timeout.Duration <= 0 {
		return fmt.Errorf("scripts.timeout must be positive, got %s", c.Scripts.Timeout)
	}
	if c.Agenda.DaysBefore < 0 || c.Agenda.DaysAfter < 0 {
		return fmt.Errorf("agenda days must not be negative")
	}
	if c.Agenda.RangeAfter < c.Agenda.DaysAfter {
		return fmt.Errorf("agenda.range-after (%d) must cover agenda.days-after (%d)", c.Agenda.RangeAfter, c.Agenda.DaysAfter)
	}
	return nil
}

// ListPath resolves the list file: flag, then $CLASSWORK_FILE, then the
// config file, then ~/.todolist.
func (c *Config) ListPath(flag string) (string, error) {
	return paths.ResolveWithDefault(firstNonEmpty(flag, os.Getenv(EnvListPath), c.Store.Path), paths.DefaultListPath)
}

// ScriptsDir resolves the scripts directory with the same precedence as
// ListPath. It returns "" when scripts are disabled and no flag or env
// override asks for them.
func (c *Config) ScriptsDir(flag string) (string, error) {
	override := firstNonEmpty(flag, os.Getenv(EnvScriptsDir))
	if override == "" && !c.Scripts.Enabled {
		return "", nil
	}
	return paths.ResolveWithDefault(firstNonEmpty(override, c.Scripts.Dir), paths.DefaultScriptsDir)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
