package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/datagrid/internal/cli"
)

const usersJSON = `[
  {"name": "alice", "team": "core", "age": 30},
  {"name": "bob", "team": "infra", "age": 25},
  {"name": "carol", "team": "core", "age": 41}
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnv(string) (string, bool) { return "", false }

// execute runs the root command against an isolated config path.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", noEnv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
