// Package rows loads tabular records from JSON, NDJSON, YAML and CSV files.
//
// Records are schemaless maps. Record.Get is a grid.Accessor, and
// Record.Fields lets the global filter search every field of a record.
package rows

import (
	"encoding/json"
	"sort"
	"strings"
)

// Record is one row: field name to value.
type Record map[string]any

// Get returns the value of field. A dotted field ("owner.name") walks nested
// objects when no top-level key of that name exists.
func Get(r Record, field string) (any, bool) {
	if v, ok := r[field]; ok {
		return v, true
	}
	if !strings.Contains(field, ".") {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, part := range strings.Split(field, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Fields returns the record's top-level field names in sorted order.
func Fields(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// normalize converts json.Number values to int64 or float64 so they print the
// way they were written.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, vv := range t {
			t[k] = normalize(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = normalize(vv)
		}
		return t
	default:
		return v
	}
}
