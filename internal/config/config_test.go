package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, 10, cfg.Table.PageSize)
	assert.True(t, cfg.Table.Pagination)
	assert.False(t, cfg.Table.VirtualScroll)
	assert.Equal(t, 300*time.Millisecond, cfg.Table.Debounce)
	assert.Equal(t, "contains", cfg.Table.GlobalMatchMode)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
version: "1.2.0"
table:
  page_size: 25
  debounce: 150ms
  virtual_scroll: true
  columns:
    - field: name
      header: Name
      filterable: true
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Table.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.Table.Debounce)
	assert.True(t, cfg.Table.VirtualScroll)
	assert.True(t, cfg.Table.Pagination, "omitted keys keep defaults")
	assert.Equal(t, []grid.Column{{Field: "name", Header: "Name", Filterable: true}}, cfg.Table.Columns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, logging.FormatConsole, cfg.Logging.Format)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "table: [unclosed")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "future major version", mutate: func(c *config.Config) { c.Version = "2.0.0" }, wantErr: config.ErrUnsupportedVersion},
		{name: "garbage version", mutate: func(c *config.Config) { c.Version = "one" }, wantErr: config.ErrUnsupportedVersion},
		{name: "page size zero", mutate: func(c *config.Config) { c.Table.PageSize = 0 }, wantErr: config.ErrInvalidPageSize},
		{name: "page size too big", mutate: func(c *config.Config) { c.Table.PageSize = 5000 }, wantErr: config.ErrInvalidPageSize},
		{name: "negative debounce", mutate: func(c *config.Config) { c.Table.Debounce = -time.Second }, wantErr: config.ErrInvalidDebounce},
		{name: "match mode alias", mutate: func(c *config.Config) { c.Table.GlobalMatchMode = "starts_with" }},
		{name: "bad match mode", mutate: func(c *config.Config) { c.Table.GlobalMatchMode = "regex" }, wantErr: config.ErrInvalidMatchMode},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: config.ErrInvalidLogFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvLogLevel: "warn",
		config.EnvPageSize: "42",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := config.New()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 42, cfg.Table.PageSize)

	env[config.EnvPageSize] = "many"
	assert.Error(t, config.New().ApplyEnv(lookup))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "table:\n  page_size: 20\n")
	writeFile(t, dir, config.ProjectOverlayName, "logging:\n  level: error\n")

	cfg, err := config.Resolve(path, dir, func(k string) (string, bool) {
		if k == config.EnvLogFormat {
			return "json", true
		}
		return "", false
	})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Table.PageSize)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestResolve_InvalidFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "table:\n  page_size: -3\n")
	_, err := config.Resolve(path, dir, noEnv)
	assert.ErrorIs(t, err, config.ErrInvalidPageSize)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Table.PageSize = 33
	require.NoError(t, cfg.Save(path, false))

	err := cfg.Save(path, false)
	assert.ErrorIs(t, err, config.ErrConfigExists)
	require.NoError(t, cfg.Save(path, true))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestTableOptions(t *testing.T) {
	tc := config.New().Table
	tc.Pagination = false
	tc.GlobalMatchMode = "ends_with"
	opts := config.TableOptions[map[string]any](tc)
	assert.True(t, opts.DisablePagination)
	assert.Equal(t, grid.MatchEndsWith, opts.GlobalMatchMode)
	assert.Equal(t, 300*time.Millisecond, opts.Debounce)

	tc.Debounce = 0
	assert.Equal(t, grid.NoDebounce, config.TableOptions[map[string]any](tc).Debounce)
}

func TestLoggingConfig_ToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "info", Format: "json"}
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)
	lc.File = "/tmp/x.log"
	out := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, out.Output)
	assert.Equal(t, "/tmp/x.log", out.File)
}

func TestDefaultPath(t *testing.T) {
	pinned := filepath.Join(t.TempDir(), "pinned.yaml")
	lookup := func(k string) (string, bool) {
		if k == config.EnvConfigPath {
			return pinned, true
		}
		return "", false
	}
	assert.Equal(t, pinned, config.DefaultPath(lookup))

	fallback := config.DefaultPath(noEnv)
	assert.Equal(t, filepath.Join(config.DefaultDirName, config.DefaultFileName),
		filepath.Join(filepath.Base(filepath.Dir(fallback)), filepath.Base(fallback)))
	assert.Equal(t, fallback, config.DefaultPath(nil), "nil lookup ignores the environment")
}
