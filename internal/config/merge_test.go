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
)

// newDefaultTarget returns a Config with non-default values in every section
// so tests can tell replaced sections from untouched ones.
func newDefaultTarget() *config.Config {
	cfg := config.New()
	cfg.Table.VirtualScroll = true
	cfg.Table.PageSize = 50
	cfg.Logging.Level = "debug"
	cfg.Logging.File = "/tmp/datagrid.log"
	return cfg
}

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ProjectOverlayName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SectionReplacesDefaults(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
table:
  page_size: 5
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 5, target.Table.PageSize)
	assert.False(t, target.Table.VirtualScroll, "omitted fields take built-in defaults")
	assert.Equal(t, grid.DefaultDebounce, target.Table.Debounce)
	assert.Equal(t, "debug", target.Logging.Level, "absent sections are untouched")
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
version: 1.2.0
table:
  debounce: 150ms
  global_match_mode: startsWith
  global_fields: [name, email]
  columns:
    - field: name
      header: Name
      filterable: true
logging:
  level: warn
  format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "1.2.0", target.Version)
	assert.Equal(t, 150*time.Millisecond, target.Table.Debounce)
	assert.Equal(t, "startsWith", target.Table.GlobalMatchMode)
	assert.Equal(t, []string{"name", "email"}, target.Table.GlobalFields)
	assert.Equal(t, []grid.Column{{Field: "name", Header: "Name", Filterable: true}}, target.Table.Columns)
	assert.Equal(t, "warn", target.Logging.Level)
	assert.Equal(t, "json", target.Logging.Format)
	assert.Empty(t, target.Logging.File)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# nothing to see\n",
	} {
		t.Run(name, func(t *testing.T) {
			target := newDefaultTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
			assert.Equal(t, newDefaultTarget(), target)
		})
	}
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
plugins:
  foo: bar
table:
  page_size: 7
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 7, target.Table.PageSize)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, "x"))
	})
	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("corrupted yaml", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(config.New(), writeOverlay(t, "table: [unclosed\n")))
	})
	t.Run("wrong section type", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(config.New(), writeOverlay(t, "table:\n  page_size: lots\n")))
	})
}
