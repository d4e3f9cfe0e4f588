package grid

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// NoDebounce disables the debounce quiet period: filter mutations recompute synchronously.
const NoDebounce time.Duration = -1

// Options configures an Engine. The zero value gives the defaults: page size 10,
// pagination on, virtual scroll off, 300ms debounce, contains global matching.
type Options[T any] struct {
	// Columns are the displayable columns. Their fields are searched by the
	// global filter unless GlobalFields is set.
	Columns []Column

	// PageSize is the number of rows per page. Values < 1 mean DefaultPageSize.
	PageSize int

	// VirtualScroll bypasses pagination: the view is the full filtered set.
	VirtualScroll bool

	// DisablePagination shows the full filtered set without a page cursor.
	DisablePagination bool

	// Debounce is the quiet period before filter changes are evaluated.
	// Zero means DefaultDebounce; a negative value (NoDebounce) recomputes synchronously.
	Debounce time.Duration

	// TotalRecords is an authoritative record count for externally paginated data.
	// Nil means the filtered row count is used.
	TotalRecords *int

	// GlobalFields lists the fields the global filter searches.
	GlobalFields []string

	// GlobalMatchMode is the match mode applied by the global filter.
	GlobalMatchMode MatchMode

	// RowFields enumerates a row's fields when neither GlobalFields nor Columns are set.
	RowFields func(row T) []string

	// Scheduler arms debounce timers. Nil means SystemScheduler.
	Scheduler Scheduler

	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger

	// OnPageChange is called with the new page after SetPage or SetPageSize.
	OnPageChange func(page int)

	// OnGlobalFilterChange is called with the raw string after SetGlobalFilter.
	OnGlobalFilterChange func(value string)

	// OnRecompute is called after the filtered rows are recomputed.
	OnRecompute func()
}

// Engine is the data table engine for rows of type T.
//
// Filter mutations update the live FilterState immediately and reset the page
// cursor to 1, but the filtered rows only reflect them once the debounce
// period passes (or Flush is called). Callbacks run after the engine's lock is
// released, so they may call back into the engine.
//
// Thread-safety: all methods are safe for concurrent use; debounce timers fire
// on their own goroutine when SystemScheduler is used.
type Engine[T any] struct {
	// mu guards every field below; callbacks are invoked without it
	mu sync.Mutex

	// rows is the raw collection the filters run over
	rows []T

	// get reads a field from a row
	get Accessor[T]

	// eval carries the accessor and search fields into Evaluate
	eval EvalOptions[T]

	// live is the filter state as last mutated
	live FilterState

	// applied is the filter state that produced filtered
	applied FilterState

	// sortSpec orders filtered; the zero value keeps filter order
	sortSpec SortSpec

	// filtered is the evaluated (and sorted) result
	filtered []T

	// page is the 1-based page cursor; it is never clamped to totalPages
	page int

	// pageSize is the rows per page, always >= MinPageSize
	pageSize int

	// virtual bypasses pagination and shows every filtered row
	virtual bool

	// paginate is false when pagination is disabled
	paginate bool

	// totalRecords overrides the filtered count when hasTotal is set
	totalRecords int
	hasTotal     bool

	// debouncer coalesces filter mutations into one recompute
	debouncer *Debouncer

	// log receives debug events tagged component=grid
	log zerolog.Logger

	// closed drops any recompute that fires after Close
	closed bool

	onPageChange   func(int)
	onGlobalChange func(string)
	onRecompute    func()
}

// New creates an engine over rows. The unfiltered view is available
// immediately; no debounce applies to the initial state.
func New[T any](rows []T, get Accessor[T], opts Options[T]) *Engine[T] {
	pageSize := opts.PageSize
	if pageSize < MinPageSize {
		pageSize = DefaultPageSize
	}
	interval := opts.Debounce
	if interval == 0 {
		interval = DefaultDebounce
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "grid").Logger()
	}

	e := &Engine[T]{
		rows: rows,
		get:  get,
		eval: EvalOptions[T]{
			Accessor:        get,
			GlobalFields:    opts.GlobalFields,
			Columns:         opts.Columns,
			RowFields:       opts.RowFields,
			GlobalMatchMode: opts.GlobalMatchMode,
		},
		page:           FirstPage,
		pageSize:       pageSize,
		virtual:        opts.VirtualScroll,
		paginate:       !opts.DisablePagination,
		debouncer:      NewDebouncer(interval, opts.Scheduler),
		log:            log,
		onPageChange:   opts.OnPageChange,
		onGlobalChange: opts.OnGlobalFilterChange,
		onRecompute:    opts.OnRecompute,
	}
	if opts.TotalRecords != nil {
		e.totalRecords = *opts.TotalRecords
		e.hasTotal = true
	}
	e.refilterLocked()
	return e
}

// SetColumnFilter replaces or inserts the filter for field and resets the page to 1.
// An empty mode means MatchContains.
func (e *Engine[T]) SetColumnFilter(field string, value any, mode MatchMode) {
	e.mu.Lock()
	e.live.SetColumn(field, value, mode)
	e.resetPageLocked("column_filter")
	e.mu.Unlock()
	e.scheduleRecompute()
}

// ClearColumnFilter removes the filter for field and resets the page to 1.
func (e *Engine[T]) ClearColumnFilter(field string) {
	e.mu.Lock()
	e.live.ClearColumn(field)
	e.resetPageLocked("clear_column_filter")
	e.mu.Unlock()
	e.scheduleRecompute()
}

// SetGlobalFilter replaces the global search string, resets the page to 1 and
// emits the global-filter-changed notification.
func (e *Engine[T]) SetGlobalFilter(value string) {
	e.mu.Lock()
	e.live.Global = value
	e.resetPageLocked("global_filter")
	notify := e.onGlobalChange
	e.mu.Unlock()

	if notify != nil {
		notify(value)
	}
	e.scheduleRecompute()
}

// resetPageLocked is the filter-mutation transition of the page cursor: back to page 1.
func (e *Engine[T]) resetPageLocked(cause string) {
	if e.page != FirstPage {
		e.log.Debug().
			Str("operation", "reset_page").
			Str("cause", cause).
			Int("from", e.page).
			Msg("page cursor reset")
	}
	e.page = FirstPage
}

func (e *Engine[T]) scheduleRecompute() {
	e.debouncer.Trigger(e.recompute)
}

// recompute evaluates the live filter state.
func (e *Engine[T]) recompute() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.applied = e.live.Clone()
	e.refilterLocked()
	notify := e.onRecompute
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (e *Engine[T]) refilterLocked() {
	filtered := Evaluate(e.rows, e.applied, e.eval)
	if !e.sortSpec.IsZero() {
		filtered = SortRows(filtered, e.sortSpec, e.get)
	}
	e.filtered = filtered
	e.log.Debug().
		Str("operation", "recompute").
		Int("rows", len(e.rows)).
		Int("filtered", len(filtered)).
		Str("global", e.applied.Global).
		Int("column_filters", len(e.applied.Columns)).
		Str("sort", e.sortSpec.String()).
		Msg("filtered rows recomputed")
}

// SetPage moves the cursor to page and emits page-changed. Pages outside
// [1, TotalPages()] are ignored.
func (e *Engine[T]) SetPage(page int) {
	e.mu.Lock()
	total := e.totalPagesLocked()
	if page < FirstPage || page > total {
		e.mu.Unlock()
		return
	}
	e.page = page
	notify := e.onPageChange
	e.log.Debug().Str("operation", "set_page").Int("page", page).Int("total_pages", total).Msg("page changed")
	e.mu.Unlock()

	if notify != nil {
		notify(page)
	}
}

// SetPageItem is SetPage for a page-button item; ellipsis items are ignored.
func (e *Engine[T]) SetPageItem(item PageItem) {
	if item.Ellipsis {
		return
	}
	e.SetPage(item.Page)
}

// NextPage advances the cursor by one page if possible.
func (e *Engine[T]) NextPage() {
	e.SetPage(e.CurrentPage() + 1)
}

// PrevPage moves the cursor back one page if possible.
func (e *Engine[T]) PrevPage() {
	e.SetPage(e.CurrentPage() - 1)
}

// SetPageSize changes the page size, resets the cursor to page 1 and emits
// page-changed for page 1. Sizes below MinPageSize are ignored.
func (e *Engine[T]) SetPageSize(size int) {
	if size < MinPageSize {
		return
	}
	e.mu.Lock()
	e.pageSize = size
	e.page = FirstPage
	notify := e.onPageChange
	e.log.Debug().Str("operation", "set_page_size").Int("page_size", size).Msg("page size changed")
	e.mu.Unlock()

	if notify != nil {
		notify(FirstPage)
	}
}

// SetSort orders the filtered rows by field. The page cursor is unchanged.
func (e *Engine[T]) SetSort(spec SortSpec) {
	e.mu.Lock()
	e.sortSpec = spec
	e.refilterLocked()
	notify := e.onRecompute
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// ClearSort restores filter order.
func (e *Engine[T]) ClearSort() {
	e.SetSort(SortSpec{})
}

// Sort returns the active sort.
func (e *Engine[T]) Sort() SortSpec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortSpec
}

// SetRows replaces the row collection and recomputes with the applied filters.
func (e *Engine[T]) SetRows(rows []T) {
	e.mu.Lock()
	e.rows = rows
	e.refilterLocked()
	notify := e.onRecompute
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// SetVirtualScroll switches between virtual-scroll and paginated views.
func (e *Engine[T]) SetVirtualScroll(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.virtual = on
}

// VirtualScroll reports whether virtual scroll is active.
func (e *Engine[T]) VirtualScroll() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.virtual
}

// SetPagination enables or disables pagination.
func (e *Engine[T]) SetPagination(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paginate = on
}

// SetTotalRecords sets (ok=true) or clears (ok=false) the external record count.
func (e *Engine[T]) SetTotalRecords(n int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalRecords = n
	e.hasTotal = ok
}

// Flush evaluates a pending filter change now and reports whether one was pending.
func (e *Engine[T]) Flush() bool {
	return e.debouncer.Flush()
}

// Pending reports whether a filter change is waiting for the debounce period.
func (e *Engine[T]) Pending() bool {
	return e.debouncer.Pending()
}

// Close cancels any pending recompute. The engine stays readable.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.debouncer.Close()
}

// Filters returns a copy of the live filter state.
func (e *Engine[T]) Filters() FilterState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live.Clone()
}

// AppliedFilters returns a copy of the filter state FilteredRows reflects.
func (e *Engine[T]) AppliedFilters() FilterState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied.Clone()
}

// FilteredRows returns the filtered (and sorted) rows. Callers must not modify the slice.
func (e *Engine[T]) FilteredRows() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filtered
}

// ViewRows returns the rows to display: everything in virtual-scroll mode or
// without pagination, otherwise the current page. A page past the end is empty.
func (e *Engine[T]) ViewRows() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.virtual || !e.paginate {
		return e.filtered
	}
	return PageWindow(e.filtered, e.page, e.pageSize)
}

// CurrentPage returns the 1-based page cursor.
func (e *Engine[T]) CurrentPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

// PageSize returns the rows per page.
func (e *Engine[T]) PageSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pageSize
}

// TotalRecords returns the external record count if set, otherwise the filtered count.
func (e *Engine[T]) TotalRecords() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalRecordsLocked()
}

func (e *Engine[T]) totalRecordsLocked() int {
	if e.hasTotal {
		return e.totalRecords
	}
	return len(e.filtered)
}

// TotalPages returns ceil(TotalRecords / PageSize), 0 when there are no records.
func (e *Engine[T]) TotalPages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalPagesLocked()
}

func (e *Engine[T]) totalPagesLocked() int {
	return TotalPages(e.totalRecordsLocked(), e.pageSize)
}

// VisibleRange returns the 1-indexed inclusive range of records on screen.
func (e *Engine[T]) VisibleRange() Range {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visibleRangeLocked()
}

func (e *Engine[T]) visibleRangeLocked() Range {
	total := e.totalRecordsLocked()
	if e.virtual || !e.paginate {
		if total <= 0 {
			return Range{}
		}
		return Range{Start: 1, End: total}
	}
	return VisibleRange(e.page, e.pageSize, total)
}

// Pages returns the ellipsis-collapsed page-button model for the current cursor.
func (e *Engine[T]) Pages() []PageItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Pages(e.page, e.totalPagesLocked())
}

// Meta returns the serializable page summary.
func (e *Engine[T]) Meta() PageMeta {
	e.mu.Lock()
	defer e.mu.Unlock()
	meta := NewPageMeta(e.page, e.pageSize, e.totalRecordsLocked())
	meta.Visible = e.visibleRangeLocked()
	return meta
}
