package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders one item. selected is true for the item under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor over items with a scrolling window.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	cursor int

	// visibleFrom and visibleTo bound the rendered window, [from, to).
	visibleFrom int
	visibleTo   int

	height int
}

// New creates a list showing at most height rows.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
	}
	m.updateVisibleRange()
	return m
}

// SetItems replaces the items and clamps the cursor.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetCursor(m.cursor)
}

// SetHeight changes the window height.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.updateVisibleRange()
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys. Other messages are ignored.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.handleKey(keyMsg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	switch msg.String() {
	case "up", "k":
		m.SetCursor(m.cursor - 1)
	case "down", "j":
		m.SetCursor(m.cursor + 1)
	case "pgup":
		m.SetCursor(m.cursor - m.height)
	case "pgdown":
		m.SetCursor(m.cursor + m.height)
	case "home", "g":
		m.SetCursor(0)
	case "end", "G":
		m.SetCursor(len(m.items) - 1)
	}
}

// SetCursor moves the cursor, clamped to the item range.
func (m *Model[T]) SetCursor(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.cursor = 0
	case index >= len(m.items):
		m.cursor = len(m.items) - 1
	default:
		m.cursor = index
	}
	m.updateVisibleRange()
}

// updateVisibleRange centres the window on the cursor where possible.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	from := m.cursor - m.height/halfViewportDivisor
	from = min(from, len(m.items)-m.height)
	from = max(from, 0)

	m.visibleFrom = from
	m.visibleTo = min(from+m.height, len(m.items))
}

// View renders the visible window, one item per line.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the index under the cursor.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// VisibleFrom returns the first rendered index.
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns one past the last rendered index.
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// Current returns the item under the cursor, or false for an empty list.
func (m *Model[T]) Current() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}

// IndexFunc moves the cursor to the first item matching pred and reports
// whether one was found.
func (m *Model[T]) IndexFunc(pred func(T) bool) bool {
	for i, item := range m.items {
		if pred(item) {
			m.SetCursor(i)
			return true
		}
	}
	return false
}
