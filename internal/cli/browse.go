package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/rows"
	"github.com/rshade/datagrid/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var flags tableFlags

	cmd := &cobra.Command{
		Use:   "browse FILE...",
		Short: "Browse rows interactively",
		Long: `Opens an interactive table over the given files.

Keys:
  /        edit the global search (applied after a short pause)
  n, →     next page          p, ←   previous page
  home     first page         end    last page
  v        toggle virtual scroll
  s        cycle sort column and direction
  esc      clear the search
  q        quit`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			ctx := cmd.Context()

			ds, err := rows.LoadFiles(ctx, args)
			if err != nil {
				return err
			}

			search := flags.search
			flags.search = ""

			model := tui.NewGridModel(ctx, ds.Records, flags.options(ctx, cmd, configFromContext(ctx), ds))
			if err = flags.apply(ctx, model.Engine()); err != nil {
				return err
			}
			if search != "" {
				model.SetSearch(search)
			}

			logger.Debug().Ctx(ctx).
				Str("operation", "browse").
				Int("records", len(ds.Records)).
				Msg("starting interactive browser")

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
