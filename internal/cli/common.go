package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/datagrid/internal/config"
	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/rows"
)

// Command errors.
var (
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrUnsupportedOutput = errors.New("unsupported output format")
	ErrNotTerminal       = errors.New("browse requires an interactive terminal")
)

type configKey struct{}

// resolvedConfig is what the root pre-run stores on the command context.
type resolvedConfig struct {
	cfg       *config.Config
	path      string
	lookupEnv func(string) (string, bool)
}

func withConfig(ctx context.Context, rc resolvedConfig) context.Context {
	return context.WithValue(ctx, configKey{}, rc)
}

func resolvedFromContext(ctx context.Context) resolvedConfig {
	rc, _ := ctx.Value(configKey{}).(resolvedConfig)
	return rc
}

// configFromContext returns the resolved configuration, or the defaults when
// the root command's pre-run did not execute.
func configFromContext(ctx context.Context) *config.Config {
	if rc := resolvedFromContext(ctx); rc.cfg != nil {
		return rc.cfg
	}
	return config.New()
}

// configPathFromContext returns the config path chosen by the root pre-run.
func configPathFromContext(cmd *cobra.Command) string {
	if rc := resolvedFromContext(cmd.Context()); rc.path != "" {
		return rc.path
	}
	return configPath(cmd, nil)
}

// lookupEnvFromContext returns the env lookup the root command was built with.
func lookupEnvFromContext(ctx context.Context) func(string) (string, bool) {
	if rc := resolvedFromContext(ctx); rc.lookupEnv != nil {
		return rc.lookupEnv
	}
	return noEnv
}

func noEnv(string) (string, bool) { return "", false }

// configPath returns the --config flag or the default location.
func configPath(cmd *cobra.Command, lookupEnv func(string) (string, bool)) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath(lookupEnv)
}

// resolveConfig layers the config file, project overlay and environment and
// stores the result on the command context.
func resolveConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	path := configPath(cmd, lookupEnv)
	cfg, err := config.Resolve(path, dir, lookupEnv)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(withConfig(cmd.Context(), resolvedConfig{cfg: cfg, path: path, lookupEnv: lookupEnv}))
	return cfg, nil
}

// resolveColumns picks the displayed columns: the --columns list, then the
// configured columns, then every field found in the data.
func resolveColumns(flag string, configured []grid.Column, fields []string) []grid.Column {
	byField := make(map[string]grid.Column, len(configured))
	for _, c := range configured {
		byField[c.Field] = c
	}

	if flag != "" {
		var cols []grid.Column
		for _, f := range strings.Split(flag, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if c, ok := byField[f]; ok {
				cols = append(cols, c)
				continue
			}
			cols = append(cols, grid.Column{Field: f, Filterable: true})
		}
		return cols
	}

	if len(configured) > 0 {
		return configured
	}

	cols := make([]grid.Column, len(fields))
	for i, f := range fields {
		cols[i] = grid.Column{Field: f, Filterable: true}
	}
	return cols
}

// tableFlags are the engine settings shared by view and browse.
type tableFlags struct {
	filters      []string
	search       string
	sort         string
	pageSize     int
	virtual      bool
	noPagination bool
	columns      string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "column filter field[:mode]=value (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "global search across columns")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort by field[:asc|desc]")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().BoolVar(&f.virtual, "virtual", false, "virtual scroll: show the full filtered set")
	cmd.Flags().BoolVar(&f.noPagination, "no-pagination", false, "disable pagination")
	cmd.Flags().StringVar(&f.columns, "columns", "", "comma-separated fields to show")
}

// options merges the flags over the configured table settings.
func (f *tableFlags) options(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	ds rows.Dataset,
) grid.Options[rows.Record] {
	opts := config.TableOptions[rows.Record](cfg.Table)
	opts.Columns = resolveColumns(f.columns, cfg.Table.Columns, ds.Fields)
	opts.RowFields = rows.Fields
	opts.Logger = logging.FromContext(ctx)
	if cmd.Flags().Changed("page-size") {
		opts.PageSize = f.pageSize
	}
	if f.virtual {
		opts.VirtualScroll = true
	}
	if f.noPagination {
		opts.DisablePagination = true
	}
	return opts
}

// apply sets the filter, search and sort flags on e.
func (f *tableFlags) apply(ctx context.Context, e *grid.Engine[rows.Record]) error {
	if err := ApplyFilters(ctx, e, f.filters); err != nil {
		return err
	}
	if f.search != "" {
		e.SetGlobalFilter(f.search)
	}
	if f.sort != "" {
		spec, err := grid.ParseSort(f.sort)
		if err != nil {
			return fmt.Errorf("--sort: %w", err)
		}
		e.SetSort(spec)
	}
	e.Flush()
	return nil
}
