package grid

import (
	"fmt"
	"strings"
)

// Accessor reads a field from a row. ok is false when the row has no such field.
type Accessor[T any] func(row T, field string) (value any, ok bool)

// EvalOptions controls how Evaluate reads rows for the global filter.
type EvalOptions[T any] struct {
	// Accessor reads row fields. Required.
	Accessor Accessor[T]

	// GlobalFields lists the fields searched by the global filter.
	// When empty, Columns are used; when both are empty, RowFields is consulted.
	GlobalFields []string

	// Columns are the displayable columns.
	Columns []Column

	// RowFields enumerates a row's own fields. Optional; used only when
	// neither GlobalFields nor Columns name any field.
	RowFields func(row T) []string

	// GlobalMatchMode is the match mode of the global filter. Empty means contains.
	GlobalMatchMode MatchMode
}

// Evaluate returns the rows satisfying every active column filter and, when set,
// the global filter. Row order is preserved. With no active filter the input
// elements are returned in a fresh slice of the same order.
func Evaluate[T any](rows []T, state FilterState, opts EvalOptions[T]) []T {
	out := make([]T, 0, len(rows))
	if len(rows) == 0 {
		return out
	}

	columns := activeColumns(state)
	global := strings.ToLower(state.Global)
	globalMode := opts.GlobalMatchMode
	if globalMode == "" {
		globalMode = MatchContains
	}
	fixedFields := opts.searchFields()
	get := opts.Accessor
	if get == nil {
		get = func(T, string) (any, bool) { return nil, false }
	}

	for _, row := range rows {
		if !matchColumns(row, columns, get) {
			continue
		}
		if global != "" {
			fields := fixedFields
			if fields == nil && opts.RowFields != nil {
				fields = opts.RowFields(row)
			}
			if !matchGlobal(row, fields, global, globalMode, get) {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

type columnPredicate struct {
	field string
	query string
	mode  MatchMode
}

func activeColumns(state FilterState) []columnPredicate {
	preds := make([]columnPredicate, 0, len(state.Columns))
	for field, f := range state.Columns {
		if !f.Active() {
			continue
		}
		preds = append(preds, columnPredicate{
			field: field,
			query: lowerString(f.Value),
			mode:  f.MatchMode,
		})
	}
	return preds
}

func (o EvalOptions[T]) searchFields() []string {
	if len(o.GlobalFields) > 0 {
		return o.GlobalFields
	}
	if len(o.Columns) == 0 {
		return nil
	}
	fields := make([]string, 0, len(o.Columns))
	for _, c := range o.Columns {
		fields = append(fields, c.Field)
	}
	return fields
}

func matchColumns[T any](row T, preds []columnPredicate, get Accessor[T]) bool {
	for _, p := range preds {
		v, ok := get(row, p.field)
		if !ok || v == nil {
			return false
		}
		if !p.mode.Match(lowerString(v), p.query) {
			return false
		}
	}
	return true
}

func matchGlobal[T any](row T, fields []string, query string, mode MatchMode, get Accessor[T]) bool {
	for _, field := range fields {
		v, ok := get(row, field)
		if !ok || v == nil {
			continue
		}
		if mode.Match(lowerString(v), query) {
			return true
		}
	}
	return false
}

// lowerString renders v the way a user would type it and lowercases it.
func lowerString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.ToLower(t)
	case fmt.Stringer:
		return strings.ToLower(t.String())
	default:
		return strings.ToLower(fmt.Sprint(v))
	}
}
