package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/rows"
)

// Filter flag errors.
var (
	ErrInvalidFilter    = errors.New("invalid filter expression, want field[:mode]=value")
	ErrUnknownMatchMode = errors.New("unknown match mode")
)

// FilterFlag is one parsed --filter expression.
type FilterFlag struct {
	Field string
	Mode  grid.MatchMode
	Value string
}

// ParseFilterFlag parses "field=value" or "field:mode=value". The value may
// itself contain '=' and may be empty, which clears the column's filter.
func ParseFilterFlag(expr string) (FilterFlag, error) {
	left, value, ok := strings.Cut(expr, "=")
	if !ok {
		return FilterFlag{}, fmt.Errorf("%w: %q", ErrInvalidFilter, expr)
	}

	field, mode, hasMode := strings.Cut(left, ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return FilterFlag{}, fmt.Errorf("%w: %q has no field", ErrInvalidFilter, expr)
	}

	f := FilterFlag{Field: field, Mode: grid.MatchContains, Value: value}
	if hasMode {
		if !grid.KnownMatchMode(mode) {
			return FilterFlag{}, fmt.Errorf("%w: %q", ErrUnknownMatchMode, mode)
		}
		f.Mode = grid.ParseMatchMode(mode)
	}
	return f, nil
}

// ApplyFilters validates every expression, then sets each as a column filter
// on e. Nothing is applied if any expression is invalid. Empty strings are skipped.
func ApplyFilters(ctx context.Context, e *grid.Engine[rows.Record], filters []string) error {
	log := logging.FromContext(ctx)

	parsed := make([]FilterFlag, 0, len(filters))
	for _, expr := range filters {
		if expr == "" {
			continue
		}
		f, err := ParseFilterFlag(expr)
		if err != nil {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Str("filter", expr).
				Err(err).
				Msg("invalid filter expression")
			return err
		}
		parsed = append(parsed, f)
	}

	for _, f := range parsed {
		e.SetColumnFilter(f.Field, f.Value, f.Mode)
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Str("field", f.Field).
			Str("mode", string(f.Mode)).
			Msg("applied filter")
	}
	return nil
}
