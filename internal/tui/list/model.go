package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered above and below the viewport.
const defaultBufferSize = 5

const halfViewportDivisor = 2

// RenderFunc renders one item. selected reports whether the item holds the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a virtual scrolling list over items of type T.
type Model[T any] struct {
	// items holds every list item, not just the visible ones
	items []T

	// render draws a single item
	render RenderFunc[T]

	// selected is the cursor index (0-based)
	selected int

	// from is the first item index kept on screen
	from int

	// to is the last item index kept on screen (exclusive)
	to int

	// height is the viewport height in rows
	height int

	// width is the viewport width in columns
	width int

	// buffer is the number of extra rows rendered above and below the viewport
	buffer int
}

// New creates a list with the given viewport size.
func New[T any](items []T, height, width int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:  items,
		render: render,
		height: max(height, 1),
		width:  width,
		buffer: defaultBufferSize,
	}
	m.updateWindow()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Height, msg.Width)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyPgUp:
		m.move(-m.height)
	case tea.KeyPgDown:
		m.move(m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return
		}
		switch msg.Runes[0] {
		case 'j':
			m.move(1)
		case 'k':
			m.move(-1)
		case 'g':
			m.SetSelected(0)
		case 'G':
			m.SetSelected(len(m.items) - 1)
		}
	}
}

func (m *Model[T]) move(delta int) {
	m.SetSelected(m.selected + delta)
}

// updateWindow keeps the selected item centred where the list allows it.
func (m *Model[T]) updateWindow() {
	n := len(m.items)
	if n == 0 {
		m.from, m.to = 0, 0
		return
	}

	from := m.selected - m.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	to := from + m.height
	if to > n {
		to = n
		from = max(to-m.height, 0)
	}
	m.from, m.to = from, to
}

// View renders the window plus the scroll buffer.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	from := max(m.from-m.buffer, 0)
	to := min(m.to+m.buffer, len(m.items))

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items, keeping the selection index where it still fits.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize resizes the viewport.
func (m *Model[T]) SetSize(height, width int) {
	m.height = max(height, 1)
	m.width = width
	m.updateWindow()
}

// SetSelected moves the cursor, clamped to the item bounds.
func (m *Model[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
	m.updateWindow()
}

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Selected returns the cursor index.
func (m *Model[T]) Selected() int { return m.selected }

// VisibleFrom returns the first on-screen index.
func (m *Model[T]) VisibleFrom() int { return m.from }

// VisibleTo returns the end of the on-screen window (exclusive).
func (m *Model[T]) VisibleTo() int { return m.to }

// Height returns the viewport height.
func (m *Model[T]) Height() int { return m.height }

// Width returns the viewport width.
func (m *Model[T]) Width() int { return m.width }

// SelectedItem returns the item under the cursor, or false for an empty list.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.selected], true
}
