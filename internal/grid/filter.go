package grid

import (
	"strings"
)

// MatchMode selects the string comparison applied by a filter.
type MatchMode string

// Supported match modes. Any other value evaluates as MatchContains.
const (
	MatchContains   MatchMode = "contains"
	MatchEquals     MatchMode = "equals"
	MatchStartsWith MatchMode = "startsWith"
	MatchEndsWith   MatchMode = "endsWith"
)

// ParseMatchMode converts user input (CLI flags, config files) to a MatchMode.
// Matching is case-insensitive and accepts snake_case aliases.
// Unrecognized input yields MatchContains.
func ParseMatchMode(s string) MatchMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equals", "eq", "=":
		return MatchEquals
	case "startswith", "starts_with", "prefix":
		return MatchStartsWith
	case "endswith", "ends_with", "suffix":
		return MatchEndsWith
	default:
		return MatchContains
	}
}

// KnownMatchMode reports whether s names a match mode rather than falling
// back to MatchContains.
func KnownMatchMode(s string) bool {
	if ParseMatchMode(s) != MatchContains {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(s), string(MatchContains))
}

// Match reports whether candidate satisfies query under the mode.
// Both sides are expected to be lowercased already.
func (m MatchMode) Match(candidate, query string) bool {
	switch m {
	case MatchEquals:
		return candidate == query
	case MatchStartsWith:
		return strings.HasPrefix(candidate, query)
	case MatchEndsWith:
		return strings.HasSuffix(candidate, query)
	case MatchContains:
		return strings.Contains(candidate, query)
	default:
		return strings.Contains(candidate, query)
	}
}

// FilterType is an advisory hint about the filter value's type.
type FilterType string

// Filter value type hints.
const (
	FilterTypeString  FilterType = "string"
	FilterTypeNumber  FilterType = "number"
	FilterTypeBoolean FilterType = "boolean"
)

// Column describes a displayable column. Filterable is advisory only.
type Column struct {
	Field      string `json:"field"      yaml:"field"`
	Header     string `json:"header"     yaml:"header"`
	Filterable bool   `json:"filterable" yaml:"filterable"`
}

// Filter is a per-column filter descriptor.
type Filter struct {
	// Value is compared against the field's text; nil or "" disables the filter.
	Value any

	// MatchMode selects the comparison. Unknown modes behave as MatchContains.
	MatchMode MatchMode

	// Type is advisory and not used during evaluation.
	Type FilterType
}

// Active reports whether the filter constrains results.
// A nil value or an empty string is treated as absent.
func (f Filter) Active() bool {
	if f.Value == nil {
		return false
	}
	if s, ok := f.Value.(string); ok && s == "" {
		return false
	}
	return true
}

// FilterState holds the global search string and the column filters keyed by field.
// The zero value is an empty, inactive state.
type FilterState struct {
	// Global is matched against every searchable field; "" disables it.
	Global string

	// Columns holds at most one filter per field.
	Columns map[string]Filter
}

// Clone returns a deep copy whose Columns map can be mutated independently.
func (s FilterState) Clone() FilterState {
	out := FilterState{Global: s.Global}
	if len(s.Columns) > 0 {
		out.Columns = make(map[string]Filter, len(s.Columns))
		for k, v := range s.Columns {
			out.Columns[k] = v
		}
	}
	return out
}

// IsEmpty reports whether no filter in the state is active.
func (s FilterState) IsEmpty() bool {
	if s.Global != "" {
		return false
	}
	for _, f := range s.Columns {
		if f.Active() {
			return false
		}
	}
	return true
}

// SetColumn replaces or inserts the descriptor for field.
// An empty mode means MatchContains.
func (s *FilterState) SetColumn(field string, value any, mode MatchMode) {
	if mode == "" {
		mode = MatchContains
	}
	if s.Columns == nil {
		s.Columns = make(map[string]Filter)
	}
	s.Columns[field] = Filter{Value: value, MatchMode: mode, Type: inferFilterType(value)}
}

// ClearColumn removes the descriptor for field, if any.
func (s *FilterState) ClearColumn(field string) {
	delete(s.Columns, field)
}

func inferFilterType(v any) FilterType {
	switch v.(type) {
	case bool:
		return FilterTypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return FilterTypeNumber
	case string:
		return FilterTypeString
	default:
		return ""
	}
}
