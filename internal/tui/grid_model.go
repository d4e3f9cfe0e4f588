package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/datagrid/internal/grid"
	"github.com/rshade/datagrid/internal/logging"
	"github.com/rshade/datagrid/internal/rows"
	listview "github.com/rshade/datagrid/internal/tui/list"
)

// recomputedMsg is delivered after the engine re-evaluates its filters.
type recomputedMsg struct{}

// GridModel is the Bubble Tea model for the interactive browser.
type GridModel struct {
	// ctx carries the command logger
	ctx context.Context

	// engine owns filtering, sorting and the page cursor
	engine *grid.Engine[rows.Record]

	// columns are the displayed columns, widths their cell widths
	columns []grid.Column
	widths  []int

	// recomputed carries engine notifications into the Bubble Tea loop.
	recomputed chan struct{}

	// done is closed on quit to release a waiting recompute command
	done chan struct{}

	// state selects which keys apply
	state ViewState

	// input is the global search box
	input textinput.Model

	// table renders paged mode
	table table.Model

	// list renders virtual-scroll mode
	list *listview.Model[rows.Record]

	// sortPos indexes the sort cycle: 0 is unsorted, then asc/desc per column
	sortPos int

	width  int
	height int
}

// NewGridModel builds a browser over records. opts.Columns selects what is
// shown; opts.OnRecompute is chained after the model's own handler.
func NewGridModel(ctx context.Context, records []rows.Record, opts grid.Options[rows.Record]) *GridModel {
	m := &GridModel{
		ctx:        ctx,
		columns:    opts.Columns,
		widths:     ColumnWidths(opts.Columns, records),
		recomputed: make(chan struct{}, 1),
		done:       make(chan struct{}),
		state:      ViewStateList,
		input:      newFilterInput(),
		width:      defaultWidth,
		height:     defaultHeight,
	}

	next := opts.OnRecompute
	opts.OnRecompute = func() {
		select {
		case m.recomputed <- struct{}{}:
		default:
		}
		if next != nil {
			next()
		}
	}
	m.engine = grid.New(records, rows.Get, opts)
	m.table = m.newTable()
	m.list = listview.New(m.engine.FilteredRows(), m.bodyHeight(), m.width, m.renderLine)
	m.refresh()
	return m
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search all columns..."
	ti.Prompt = "/ "
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

func (m *GridModel) newTable() table.Model {
	cols := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		cols[i] = table.Column{Title: ColumnTitle(c), Width: m.widths[i]}
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(m.bodyHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// Engine exposes the underlying grid engine.
func (m *GridModel) Engine() *grid.Engine[rows.Record] {
	return m.engine
}

// State returns the current view state.
func (m *GridModel) State() ViewState {
	return m.state
}

// Init starts listening for recompute notifications.
func (m *GridModel) Init() tea.Cmd {
	return m.waitForRecompute()
}

func (m *GridModel) waitForRecompute() tea.Cmd {
	ch, done := m.recomputed, m.done
	return func() tea.Msg {
		select {
		case <-ch:
			return recomputedMsg{}
		case <-done:
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(m.bodyHeight())
		m.table.SetWidth(m.width)
		m.list.SetSize(m.bodyHeight(), m.width)
		return m, nil
	case recomputedMsg:
		m.clampPage()
		m.refresh()
		return m, m.waitForRecompute()
	case tea.KeyMsg:
		switch m.state {
		case ViewStateFilter:
			return m.handleFilterKey(msg)
		case ViewStateList:
			return m.handleListKey(msg)
		case ViewStateQuitting:
			return m, nil
		}
	}
	return m, nil
}

func (m *GridModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		return m.quit()
	case keyEnter:
		m.state = ViewStateList
		m.input.Blur()
		m.flush()
		return m, nil
	case keyEsc:
		m.state = ViewStateList
		m.input.Blur()
		m.clearSearch()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.engine.SetGlobalFilter(v)
		m.refresh()
	}
	return m, cmd
}

//nolint:cyclop // One branch per key binding.
func (m *GridModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	virtual := m.engine.VirtualScroll()

	switch msg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()
	case keySlash:
		m.state = ViewStateFilter
		return m, m.input.Focus()
	case keyEsc:
		if m.input.Value() != "" {
			m.clearSearch()
		}
		return m, nil
	case keyV:
		m.engine.SetVirtualScroll(!virtual)
		m.refresh()
		return m, nil
	case keyS:
		m.cycleSort()
		return m, nil
	}

	if !virtual {
		switch msg.String() {
		case keyNext, keyRight:
			m.engine.NextPage()
		case keyPrev, keyLeft:
			m.engine.PrevPage()
		case keyFirst:
			m.engine.SetPage(grid.FirstPage)
		case keyLast:
			m.engine.SetPage(m.engine.TotalPages())
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}

	updated, cmd := m.list.Update(msg)
	if l, ok := updated.(*listview.Model[rows.Record]); ok {
		m.list = l
	}
	return m, cmd
}

func (m *GridModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	m.engine.Close()
	close(m.done)
	logging.FromContext(m.ctx).Debug().Ctx(m.ctx).
		Str("component", "tui").
		Str("operation", "quit").
		Int("filtered", len(m.engine.FilteredRows())).
		Msg("browser closed")
	return m, tea.Quit
}

// SetSearch sets the global search text and applies it immediately.
func (m *GridModel) SetSearch(s string) {
	m.input.SetValue(s)
	m.engine.SetGlobalFilter(s)
	m.flush()
}

func (m *GridModel) clearSearch() {
	m.input.SetValue("")
	m.engine.SetGlobalFilter("")
	m.flush()
}

// flush applies a pending filter change immediately.
func (m *GridModel) flush() {
	m.engine.Flush()
	m.clampPage()
	m.refresh()
}

// cycleSort steps through none, then each column ascending and descending.
func (m *GridModel) cycleSort() {
	if len(m.columns) == 0 {
		return
	}
	m.sortPos = (m.sortPos + 1) % (2*len(m.columns) + 1)
	if m.sortPos == 0 {
		m.engine.ClearSort()
	} else {
		idx := (m.sortPos - 1) / 2
		order := grid.SortOrderAsc
		if (m.sortPos-1)%2 == 1 {
			order = grid.SortOrderDesc
		}
		m.engine.SetSort(grid.SortSpec{Field: m.columns[idx].Field, Order: order})
	}
	m.refresh()
}

// clampPage pulls the cursor back when a recompute shrinks the page count.
func (m *GridModel) clampPage() {
	if total := m.engine.TotalPages(); total > 0 && m.engine.CurrentPage() > total {
		m.engine.SetPage(total)
	}
}

// refresh copies the engine's current view into the widgets.
func (m *GridModel) refresh() {
	records := m.engine.ViewRows()
	if m.engine.VirtualScroll() {
		m.list.SetItems(records)
		return
	}
	tableRows := make([]table.Row, len(records))
	for i, r := range records {
		tableRows[i] = Cells(r, m.columns)
	}
	cursor := m.table.Cursor()
	m.table.SetRows(tableRows)
	if len(tableRows) > 0 {
		m.table.SetCursor(min(max(cursor, 0), len(tableRows)-1))
	}
}

func (m *GridModel) renderLine(r rows.Record, selected bool) string {
	line := FormatRow(Cells(r, m.columns), m.widths)
	if selected {
		return TableSelectedStyle.Render(line)
	}
	return line
}

func (m *GridModel) bodyHeight() int {
	return max(m.height-chromeHeight, minBodyHeight)
}

// View renders the browser.
func (m *GridModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	sections := make([]string, 0, 5) //nolint:mnd // title, search, body, status, help
	sections = append(sections, HeaderStyle.Render("DATAGRID")+"  "+m.sortLabel())

	if m.state == ViewStateFilter || m.input.Value() != "" {
		sections = append(sections, m.input.View())
	}

	virtual := m.engine.VirtualScroll()
	switch {
	case len(m.engine.ViewRows()) == 0:
		sections = append(sections, InfoStyle.Render("No matching records."))
	case virtual:
		header := TableHeaderStyle.Render(FormatRow(m.titles(), m.widths))
		sections = append(sections, header, m.list.View())
	default:
		sections = append(sections, m.table.View())
	}

	meta := m.engine.Meta()
	status := LabelStyle.Render(StatusLine(meta, !virtual))
	if !virtual && meta.TotalPages > 1 {
		status += "  " + RenderPageBar(m.engine.Pages(), meta.CurrentPage)
	}
	if m.engine.Pending() {
		status += "  " + WarningStyle.Render("filtering...")
	}
	sections = append(sections, status, SubtleStyle.Render(m.helpText(virtual)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *GridModel) titles() []string {
	titles := make([]string, len(m.columns))
	for i, c := range m.columns {
		titles[i] = ColumnTitle(c)
	}
	return titles
}

func (m *GridModel) sortLabel() string {
	spec := m.engine.Sort()
	if spec.IsZero() {
		return ""
	}
	return SubtleStyle.Render("sort " + spec.String())
}

func (m *GridModel) helpText(virtual bool) string {
	parts := []string{"/ search", "s sort", "v virtual", "q quit"}
	if !virtual {
		parts = append([]string{"n/p page"}, parts...)
	}
	return strings.Join(parts, "  ")
}
