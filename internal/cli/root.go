// Package cli implements the datagrid command line.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the datagrid CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "datagrid",
		Short:        "Filter, sort and page tabular data files",
		Long:         "datagrid loads JSON, NDJSON, YAML or CSV rows and lets you filter, sort and page through them.",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.SetVersionTemplate(version.Info() + "\n")
	cmd.PersistentFlags().String("config", "", "config file (default $DATAGRID_CONFIG or ~/.datagrid/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newViewCmd(), newBrowseCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Print the first page of a file
  datagrid view users.json

  # Filter a column and search every column
  datagrid view users.csv --filter team:equals=core --search ali

  # Page 3, 25 rows per page, sorted by age descending
  datagrid view users.ndjson --page 3 --page-size 25 --sort age:desc

  # Browse interactively
  datagrid browse users.yaml

  # Write a default configuration file
  datagrid config init`
