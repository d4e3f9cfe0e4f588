// Package config loads and validates datagrid configuration from YAML.
//
// Configuration is resolved in layers: built-in defaults, the user config file
// (~/.datagrid/config.yaml or --config), a project overlay (the nearest
// .datagrid.yaml at or above the working directory, merged section by
// section), then DATAGRID_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/logging"
)

// Defaults and limits.
const (
	CurrentVersion    = "1.0.0"
	versionConstraint = ">= 1.0.0, < 2.0.0"

	MaxPageSize = 1000

	DefaultDirName     = ".datagrid"
	DefaultFileName    = "config.yaml"
	ProjectOverlayName = ".datagrid.yaml"

	configFileMode = 0o600
	configDirMode  = 0o750
)

// Environment variables.
const (
	EnvConfigPath = "DATAGRID_CONFIG"
	EnvLogLevel   = "DATAGRID_LOG_LEVEL"
	EnvLogFormat  = "DATAGRID_LOG_FORMAT"
	EnvPageSize   = "DATAGRID_PAGE_SIZE"
)

// Validation errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidPageSize    = errors.New("page_size must be between 1 and 1000")
	ErrInvalidDebounce    = errors.New("debounce must be >= 0")
	ErrInvalidMatchMode   = errors.New("global_match_mode must be one of contains, equals, startsWith, endsWith")
	ErrInvalidLogFormat   = errors.New("logging format must be 'console' or 'json'")
	ErrConfigExists       = errors.New("config file already exists")
)

// Config is the full datagrid configuration.
type Config struct {
	Version string        `yaml:"version"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
}

// TableConfig holds the engine settings applied to every table.
type TableConfig struct {
	PageSize        int           `yaml:"page_size"`
	Pagination      bool          `yaml:"pagination"`
	VirtualScroll   bool          `yaml:"virtual_scroll"`
	Debounce        time.Duration `yaml:"debounce"`
	GlobalMatchMode string        `yaml:"global_match_mode"`
	GlobalFields    []string      `yaml:"global_fields,omitempty"`
	Columns         []grid.Column `yaml:"columns,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Table:   defaultTable(),
		Logging: defaultLogging(),
	}
}

func defaultTable() TableConfig {
	return TableConfig{
		PageSize:        grid.DefaultPageSize,
		Pagination:      true,
		Debounce:        grid.DefaultDebounce,
		GlobalMatchMode: string(grid.MatchContains),
	}
}

func defaultLogging() LoggingConfig {
	return LoggingConfig{Level: "info", Format: logging.FormatConsole}
}

// DefaultPath returns $DATAGRID_CONFIG or ~/.datagrid/config.yaml. A nil
// lookupEnv skips the environment.
func DefaultPath(lookupEnv func(string) (string, bool)) string {
	if lookupEnv != nil {
		if p, ok := lookupEnv(EnvConfigPath); ok && p != "" {
			return p
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultDirName, DefaultFileName)
	}
	return filepath.Join(home, DefaultDirName, DefaultFileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads path, merges the nearest project overlay at or above dir, applies
// environment overrides and validates the result.
func Resolve(path, dir string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if overlay := FindProjectOverlay(dir, lookupEnv); overlay != "" {
		if err = ShallowMergeYAML(cfg, overlay); err != nil {
			return nil, err
		}
	}

	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies DATAGRID_* overrides.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) error {
	if lookupEnv == nil {
		return nil
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.Table.PageSize = n
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if c.Table.PageSize < grid.MinPageSize || c.Table.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.Table.PageSize)
	}
	if c.Table.Debounce < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidDebounce, c.Table.Debounce)
	}
	if c.Table.GlobalMatchMode != "" && !grid.KnownMatchMode(c.Table.GlobalMatchMode) {
		return fmt.Errorf("%w: got %q", ErrInvalidMatchMode, c.Table.GlobalMatchMode)
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return err
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, versionConstraint)
	}
	return nil
}

// Save writes the configuration to path. It refuses to overwrite unless force is set.
func (c *Config) Save(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, configFileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ToLoggingConfig bridges LoggingConfig to logging.Config.
// A configured file switches the output to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// TableOptions bridges TableConfig to grid.Options. A zero debounce in the
// config file means filter changes apply synchronously.
func TableOptions[T any](tc TableConfig) grid.Options[T] {
	debounce := tc.Debounce
	if debounce == 0 {
		debounce = grid.NoDebounce
	}
	return grid.Options[T]{
		Columns:           tc.Columns,
		PageSize:          tc.PageSize,
		VirtualScroll:     tc.VirtualScroll,
		DisablePagination: !tc.Pagination,
		Debounce:          debounce,
		GlobalFields:      tc.GlobalFields,
		GlobalMatchMode:   grid.ParseMatchMode(tc.GlobalMatchMode),
	}
}
