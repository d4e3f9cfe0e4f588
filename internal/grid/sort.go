package grid

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	// sortPartsMax is the maximum number of parts in a sort expression (field:order).
	sortPartsMax = 2
)

// Sort expression errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// SortSpec names the field and direction rows are ordered by.
// The zero SortSpec means filter order is kept.
type SortSpec struct {
	Field string
	Order string
}

// IsZero reports whether no sort is configured.
func (s SortSpec) IsZero() bool {
	return s.Field == ""
}

// String renders the sort as "field:order".
func (s SortSpec) String() string {
	if s.IsZero() {
		return ""
	}
	return s.Field + ":" + s.Order
}

// ParseSort parses "field" or "field:order". A missing order means ascending.
// An empty expression yields the zero SortSpec.
func ParseSort(expr string) (SortSpec, error) {
	if strings.TrimSpace(expr) == "" {
		return SortSpec{}, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return SortSpec{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	spec := SortSpec{Field: strings.TrimSpace(parts[0]), Order: SortOrderAsc}
	if spec.Field == "" {
		return SortSpec{}, ErrEmptySortField
	}
	if len(parts) == sortPartsMax {
		spec.Order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if spec.Order != SortOrderAsc && spec.Order != SortOrderDesc {
		return SortSpec{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, spec.Order)
	}
	return spec, nil
}

// SortRows returns a stably sorted copy of rows. Numbers and numeric strings
// compare numerically and order before text, which compares as lowercased
// strings. Rows missing the field, or holding a blank string, sort last
// regardless of direction. The input slice is not modified.
func SortRows[T any](rows []T, spec SortSpec, get Accessor[T]) []T {
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	if spec.IsZero() || get == nil || len(sorted) < 2 {
		return sorted
	}

	keys := make([]sortKey, len(sorted))
	for i, row := range sorted {
		v, ok := get(row, spec.Field)
		keys[i] = newSortKey(v, ok)
	}

	idx := make([]int, len(sorted))
	for i := range idx {
		idx[i] = i
	}
	desc := spec.Order == SortOrderDesc
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.missing() != kb.missing() {
			return kb.missing()
		}
		c := ka.compare(kb)
		if desc {
			return c > 0
		}
		return c < 0
	})

	out := make([]T, len(sorted))
	for i, j := range idx {
		out[i] = sorted[j]
	}
	return out
}

// Sort key ranks: numbers order before text, missing values order last.
const (
	rankNumber = iota
	rankText
	rankMissing
)

type sortKey struct {
	rank   int
	number float64
	text   string
}

func newSortKey(v any, ok bool) sortKey {
	if !ok || v == nil {
		return sortKey{rank: rankMissing}
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return sortKey{rank: rankMissing}
	}
	if n, isNum := toFloat(v); isNum {
		return sortKey{rank: rankNumber, number: n}
	}
	return sortKey{rank: rankText, text: lowerString(v)}
}

func (k sortKey) missing() bool { return k.rank == rankMissing }

// compare is a total order: rank first, then value within the rank.
func (k sortKey) compare(o sortKey) int {
	if k.rank != o.rank {
		return cmp.Compare(k.rank, o.rank)
	}
	switch k.rank {
	case rankNumber:
		return cmp.Compare(k.number, o.number)
	case rankText:
		return strings.Compare(k.text, o.text)
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
