package rows_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datagrid/internal/rows"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]rows.Format{
		"a.json":   rows.FormatJSON,
		"a.JSONL":  rows.FormatNDJSON,
		"a.ndjson": rows.FormatNDJSON,
		"a.yml":    rows.FormatYAML,
		"a.yaml":   rows.FormatYAML,
		"a.csv":    rows.FormatCSV,
	}
	for path, want := range tests {
		got, err := rows.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := rows.DetectFormat("a.xlsx")
	assert.ErrorIs(t, err, rows.ErrUnknownFormat)
}

func TestDecode_JSON(t *testing.T) {
	ds, err := rows.Decode(strings.NewReader(`[
		{"id": 1234567, "name": "alice", "score": 2.5, "owner": {"team": "core"}},
		{"id": 2, "name": "bob", "active": true}
	]`), rows.FormatJSON)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)

	assert.Equal(t, int64(1234567), ds.Records[0]["id"], "integers keep their digits")
	assert.Equal(t, 2.5, ds.Records[0]["score"])
	assert.Equal(t, []string{"active", "id", "name", "owner", "score"}, ds.Fields)

	v, ok := rows.Get(ds.Records[0], "owner.team")
	assert.True(t, ok)
	assert.Equal(t, "core", v)

	_, ok = rows.Get(ds.Records[1], "owner.team")
	assert.False(t, ok)
	_, ok = rows.Get(ds.Records[1], "missing")
	assert.False(t, ok)
}

func TestDecode_JSONNotObjects(t *testing.T) {
	_, err := rows.Decode(strings.NewReader(`[1, 2]`), rows.FormatJSON)
	assert.ErrorIs(t, err, rows.ErrNotAnObject)
}

func TestDecode_NDJSON(t *testing.T) {
	ds, err := rows.Decode(strings.NewReader("{\"a\":1}\n\n{\"a\":2,\"b\":\"x\"}\n"), rows.FormatNDJSON)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, int64(2), ds.Records[1]["a"])
	assert.Equal(t, []string{"a", "b"}, ds.Fields)

	_, err = rows.Decode(strings.NewReader("{\"a\":1}\n{oops\n"), rows.FormatNDJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecode_YAML(t *testing.T) {
	ds, err := rows.Decode(strings.NewReader(`
- name: alice
  active: true
  age: 30
- name: bob
`), rows.FormatYAML)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, true, ds.Records[0]["active"])
	assert.Equal(t, 30, ds.Records[0]["age"])

	empty, err := rows.Decode(strings.NewReader(""), rows.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)
}

func TestDecode_CSV(t *testing.T) {
	ds, err := rows.Decode(strings.NewReader("name, status ,age\nalice,active,30\nbob,inactive\n"), rows.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "status", "age"}, ds.Fields, "header order is kept")
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "30", ds.Records[0]["age"])
	_, ok := ds.Records[1]["age"]
	assert.False(t, ok, "short rows leave trailing fields absent")

	empty, err := rows.Decode(strings.NewReader(""), rows.FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)
}

func TestLoadFiles_ConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "name,team\nalice,core\n")
	b := writeFile(t, dir, "b.json", `[{"name":"bob","email":"bob@x.io"}]`)

	ds, err := rows.LoadFiles(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "alice", ds.Records[0]["name"])
	assert.Equal(t, "bob", ds.Records[1]["name"])
	assert.Equal(t, []string{"name", "team", "email"}, ds.Fields)
}

func TestLoadFiles_Errors(t *testing.T) {
	_, err := rows.LoadFiles(context.Background(), nil)
	assert.ErrorIs(t, err, rows.ErrNoFiles)

	dir := t.TempDir()
	good := writeFile(t, dir, "a.json", `[]`)
	_, err = rows.LoadFiles(context.Background(), []string{good, filepath.Join(dir, "missing.json")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.txt", "")
	_, err = rows.LoadFiles(context.Background(), []string{bad})
	assert.ErrorIs(t, err, rows.ErrUnknownFormat)
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, rows.Fields(rows.Record{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, rows.Fields(rows.Record{}))
}
