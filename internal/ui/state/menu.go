package state

import "github.com/modeterm/modeterm/internal/menu"

// Menu encapsulates the option list and selection cursor for one menu
// invocation. The cursor clamps at both ends; there is no wraparound.
type Menu struct {
	Title          string
	Options        []menu.Option
	Index          int
	ViewportOffset int
}

// NewMenu constructs a Menu over the provided options. Options are
// owned by the caller and treated as immutable for the menu lifetime.
func NewMenu(title string, options []menu.Option) *Menu {
	return &Menu{Title: title, Options: options}
}

// MoveUp moves the selection one entry up, reporting whether it moved.
func (m *Menu) MoveUp() bool {
	return m.moveBy(-1)
}

// MoveDown moves the selection one entry down, reporting whether it moved.
func (m *Menu) MoveDown() bool {
	return m.moveBy(1)
}

func (m *Menu) moveBy(delta int) bool {
	if len(m.Options) == 0 {
		m.Index = 0
		return false
	}
	old := m.Index
	if m.Index < 0 {
		m.Index = 0
	}
	m.Index += delta
	if m.Index < 0 {
		m.Index = 0
	}
	if m.Index >= len(m.Options) {
		m.Index = len(m.Options) - 1
	}
	return m.Index != old
}

// Current returns the option under the cursor.
func (m *Menu) Current() menu.Option {
	if len(m.Options) == 0 {
		return menu.Option{}
	}
	if m.Index < 0 || m.Index >= len(m.Options) {
		return m.Options[0]
	}
	return m.Options[m.Index]
}

// EnsureVisible adjusts the viewport offset so the cursor stays inside
// a window of maxVisible rows.
func (m *Menu) EnsureVisible(maxVisible int) {
	if len(m.Options) == 0 {
		m.Index = 0
		m.ViewportOffset = 0
		return
	}
	if m.Index < 0 {
		m.Index = 0
	}
	if m.Index >= len(m.Options) {
		m.Index = len(m.Options) - 1
	}
	if maxVisible <= 0 {
		m.ViewportOffset = 0
		return
	}
	maxOffset := len(m.Options) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.ViewportOffset > maxOffset {
		m.ViewportOffset = maxOffset
	}
	if m.ViewportOffset < 0 {
		m.ViewportOffset = 0
	}
	if m.Index < m.ViewportOffset {
		m.ViewportOffset = m.Index
	}
	upper := m.ViewportOffset + maxVisible - 1
	if m.Index > upper {
		m.ViewportOffset = m.Index - maxVisible + 1
		if m.ViewportOffset < 0 {
			m.ViewportOffset = 0
		}
		if m.ViewportOffset > maxOffset {
			m.ViewportOffset = maxOffset
		}
	}
}
