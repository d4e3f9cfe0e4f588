package grid

import (
	"strconv"
)

// Pagination defaults and limits.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	FirstPage       = 1

	// maxPlainPages is the largest page count rendered without ellipses.
	maxPlainPages = 7

	// edgePages is how close the cursor must be to either end before the
	// middle window sticks to that end.
	edgePages = 3

	// edgeWindowSize is the number of pages shown next to a pinned end.
	edgeWindowSize = 4
)

// EllipsisLabel is the rendered form of an ellipsis page item.
const EllipsisLabel = "..."

// PageItem is one entry of the page-button model: either a page number or an
// ellipsis marker standing in for a collapsed run of pages.
type PageItem struct {
	Page     int  `json:"page,omitempty"     yaml:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty" yaml:"ellipsis,omitempty"`
}

// Ellipsis is the ellipsis page item.
//
//nolint:gochecknoglobals // immutable marker value
var Ellipsis = PageItem{Ellipsis: true}

// PageNumber returns the page item for page n.
func PageNumber(n int) PageItem {
	return PageItem{Page: n}
}

// String renders the item as a page number or EllipsisLabel.
func (p PageItem) String() string {
	if p.Ellipsis {
		return EllipsisLabel
	}
	return strconv.Itoa(p.Page)
}

// TotalPages returns ceil(totalRecords / pageSize), or 0 when there are no records.
func TotalPages(totalRecords, pageSize int) int {
	if totalRecords <= 0 {
		return 0
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	pages := totalRecords / pageSize
	if totalRecords%pageSize > 0 {
		pages++
	}
	return pages
}

// PageWindow returns the rows of the given 1-based page.
// A page that starts at or past the end of rows yields an empty slice; the
// page is never clamped.
func PageWindow[T any](rows []T, page, pageSize int) []T {
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	start := (page - 1) * pageSize
	if page < FirstPage || start >= len(rows) {
		return []T{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// Range is a 1-indexed inclusive span of records. The zero Range means nothing is shown.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Len returns the number of records in the range.
func (r Range) Len() int {
	if r.Start == 0 {
		return 0
	}
	return r.End - r.Start + 1
}

// VisibleRange returns the records shown on page out of totalRecords.
// It is the zero Range when there are no records or the page starts past them.
func VisibleRange(page, pageSize, totalRecords int) Range {
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	start := (page-1)*pageSize + 1
	if totalRecords <= 0 || page < FirstPage || start > totalRecords {
		return Range{}
	}
	end := page * pageSize
	if end > totalRecords {
		end = totalRecords
	}
	return Range{Start: start, End: end}
}

// Pages builds the page-button model for currentPage of totalPages.
//
// Up to seven pages are listed in full. Beyond that the first and last pages
// are always present, a window of pages surrounds the cursor (pinned to four
// pages when the cursor is within three of either end), and an ellipsis
// replaces each collapsed run. Page numbers appear at most once.
func Pages(currentPage, totalPages int) []PageItem {
	if totalPages <= 0 {
		return []PageItem{}
	}

	items := make([]PageItem, 0, maxPlainPages+2)
	if totalPages <= maxPlainPages {
		for i := FirstPage; i <= totalPages; i++ {
			items = append(items, PageNumber(i))
		}
		return items
	}

	items = append(items, PageNumber(FirstPage))
	if currentPage > edgePages {
		items = append(items, Ellipsis)
	}

	var from, to int
	switch {
	case currentPage <= edgePages:
		from, to = FirstPage+1, FirstPage+edgeWindowSize
	case currentPage >= totalPages-(edgePages-1):
		from, to = totalPages-edgeWindowSize, totalPages-1
	default:
		from, to = currentPage-1, currentPage+1
	}
	for i := from; i <= to; i++ {
		if i > FirstPage && i < totalPages {
			items = append(items, PageNumber(i))
		}
	}

	if currentPage < totalPages-(edgePages-1) {
		items = append(items, Ellipsis)
	}
	items = append(items, PageNumber(totalPages))

	return dedupePages(items)
}

// dedupePages drops repeated page numbers, keeping the first occurrence.
func dedupePages(items []PageItem) []PageItem {
	seen := make(map[int]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if !it.Ellipsis {
			if seen[it.Page] {
				continue
			}
			seen[it.Page] = true
		}
		out = append(out, it)
	}
	return out
}

// PageMeta summarizes a page of results for serialization.
type PageMeta struct {
	CurrentPage int   `json:"current_page" yaml:"current_page"`
	PageSize    int   `json:"page_size"    yaml:"page_size"`
	TotalPages  int   `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int   `json:"total_items"  yaml:"total_items"`
	HasPrevious bool  `json:"has_previous" yaml:"has_previous"`
	HasNext     bool  `json:"has_next"     yaml:"has_next"`
	Visible     Range `json:"visible"      yaml:"visible"`
}

// NewPageMeta builds page metadata for currentPage over totalItems.
func NewPageMeta(currentPage, pageSize, totalItems int) PageMeta {
	totalPages := TotalPages(totalItems, pageSize)
	return PageMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasPrevious: currentPage > FirstPage,
		HasNext:     currentPage < totalPages,
		Visible:     VisibleRange(currentPage, pageSize, totalItems),
	}
}
