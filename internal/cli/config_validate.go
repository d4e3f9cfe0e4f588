package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
)

// NewConfigValidateCmd creates the config validate command.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, the nearest
.datagrid.yaml project overlay and DATAGRID_* environment overrides.

This includes:
- Config version compatibility (1.x)
- page_size between 1 and 1000
- Non-negative debounce
- Known global match mode
- Logging format`,
		Example: `  # Validate current configuration
  datagrid config validate

  # Validate and show detailed information
  datagrid config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := configFromContext(cmd.Context())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", configPathFromContext(cmd))
	if dir, err := os.Getwd(); err == nil {
		if overlay := config.FindProjectOverlay(dir, lookupEnvFromContext(cmd.Context())); overlay != "" {
			cmd.Printf("  Project overlay: %s\n", overlay)
		}
	}
	cmd.Printf("  Version: %s\n", cfg.Version)
	cmd.Printf("  Page size: %d\n", cfg.Table.PageSize)
	cmd.Printf("  Pagination: %t\n", cfg.Table.Pagination)
	cmd.Printf("  Virtual scroll: %t\n", cfg.Table.VirtualScroll)
	cmd.Printf("  Debounce: %s\n", cfg.Table.Debounce)
	cmd.Printf("  Global match mode: %s\n", cfg.Table.GlobalMatchMode)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)

	printColumnDetails(cmd, cfg)
}

func printColumnDetails(cmd *cobra.Command, cfg *config.Config) {
	if len(cfg.Table.Columns) == 0 {
		cmd.Println("  No columns configured (all fields shown)")
		return
	}
	cmd.Printf("  Configured columns: %d\n", len(cfg.Table.Columns))
	for _, c := range cfg.Table.Columns {
		cmd.Printf("    - %s", c.Field)
		if c.Header != "" {
			cmd.Printf(" (%s)", c.Header)
		}
		cmd.Println()
	}
}
