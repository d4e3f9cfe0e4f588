package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/rows"
)

// ColumnTitle returns the header text for c, falling back to its field.
func ColumnTitle(c grid.Column) string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

// CellText formats a record value for display. Missing and nil values are blank.
func CellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// Cells returns the display text of each column of r.
func Cells(r rows.Record, columns []grid.Column) []string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		v, _ := rows.Get(r, c.Field)
		cells[i] = CellText(v)
	}
	return cells
}

// ColumnWidths sizes each column to its widest cell or title, capped at maxCellWidth.
func ColumnWidths(columns []grid.Column, records []rows.Record) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = min(lipgloss.Width(ColumnTitle(c)), maxCellWidth)
	}
	for _, r := range records {
		for i, cell := range Cells(r, columns) {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = min(w, maxCellWidth)
			}
		}
	}
	return widths
}

// Truncate shortens s to width terminal cells, ending in truncateSuffix when
// cut. A wide character that would straddle the edge is dropped.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= len(truncateSuffix) {
		return ansi.Truncate(s, max(width, 0), "")
	}
	return ansi.Truncate(s, width, truncateSuffix)
}

// FormatRow pads cells to widths in terminal cells and joins them. Trailing blanks are trimmed.
func FormatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		cell = Truncate(cell, w)
		parts[i] = cell + strings.Repeat(" ", max(w-lipgloss.Width(cell), 0))
	}
	return strings.TrimRight(strings.Join(parts, columnGap), " ")
}

// FormatPageBar renders page buttons as plain text, bracketing the current page.
func FormatPageBar(items []grid.PageItem, current int) string {
	parts := make([]string, len(items))
	for i, it := range items {
		switch {
		case it.Ellipsis:
			parts[i] = grid.EllipsisLabel
		case it.Page == current:
			parts[i] = "[" + strconv.Itoa(it.Page) + "]"
		default:
			parts[i] = strconv.Itoa(it.Page)
		}
	}
	return strings.Join(parts, " ")
}

// RenderPageBar is FormatPageBar with terminal styling.
func RenderPageBar(items []grid.PageItem, current int) string {
	parts := make([]string, len(items))
	for i, it := range items {
		switch {
		case it.Ellipsis:
			parts[i] = SubtleStyle.Render(grid.EllipsisLabel)
		case it.Page == current:
			parts[i] = CurrentPageStyle.Render(" " + strconv.Itoa(it.Page) + " ")
		default:
			parts[i] = PageStyle.Render(strconv.Itoa(it.Page))
		}
	}
	return strings.Join(parts, " ")
}

// StatusLine summarizes the visible range. paged adds the page position.
func StatusLine(meta grid.PageMeta, paged bool) string {
	if meta.TotalItems <= 0 {
		return "No matching records"
	}
	p := message.NewPrinter(language.English)
	if !paged {
		return p.Sprintf("Showing 1-%d of %d", meta.TotalItems, meta.TotalItems)
	}
	if meta.Visible.Start == 0 {
		return p.Sprintf("Page %d of %d is empty (%d records)", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
	}
	return p.Sprintf("Showing %d-%d of %d | page %d of %d",
		meta.Visible.Start, meta.Visible.End, meta.TotalItems, meta.CurrentPage, meta.TotalPages)
}

// TableView is one rendered page for non-interactive output.
type TableView struct {
	Columns []grid.Column
	Records []rows.Record
	Meta    grid.PageMeta
	Pages   []grid.PageItem
	Paged   bool
}

// WritePlainTable writes v as an aligned text table followed by the status line
// and, when there is more than one page, the page bar.
func WritePlainTable(w io.Writer, v TableView) error {
	widths := ColumnWidths(v.Columns, v.Records)

	titles := make([]string, len(v.Columns))
	rules := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		titles[i] = ColumnTitle(c)
		rules[i] = strings.Repeat("-", widths[i])
	}

	var b strings.Builder
	b.WriteString(FormatRow(titles, widths) + "\n")
	b.WriteString(FormatRow(rules, widths) + "\n")
	for _, r := range v.Records {
		b.WriteString(FormatRow(Cells(r, v.Columns), widths) + "\n")
	}
	b.WriteString("\n" + StatusLine(v.Meta, v.Paged) + "\n")
	if v.Paged && v.Meta.TotalPages > 1 {
		b.WriteString(FormatPageBar(v.Pages, v.Meta.CurrentPage) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
