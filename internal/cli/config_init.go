package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/datagrid/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage datagrid configuration",
	}
	cmd.AddCommand(NewConfigInitCmd(), newConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// NewConfigInitCmd creates the config init command, which writes the default
// configuration to --config or the default location.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.datagrid/config.yaml
  datagrid config init

  # Overwrite an existing file
  datagrid config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPathFromContext(cmd)
			if err := config.New().Save(path, force); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints the configuration after merging the config file, project overlay and environment.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(configFromContext(cmd.Context()))
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
