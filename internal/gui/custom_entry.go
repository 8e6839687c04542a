package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CustomEntry extends widget.Entry to handle the Escape key and to pass
// window shortcuts through while it has focus
type CustomEntry struct {
	widget.Entry
	onEscape   func()
	onShortcut func(*desktop.CustomShortcut)
}

// NewCustomEntry creates a new single-line entry
func NewCustomEntry() *CustomEntry {
	entry := &CustomEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *CustomEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *CustomEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// TypedShortcut forwards custom shortcuts and handles the rest as usual
func (e *CustomEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok && e.onShortcut != nil {
		e.onShortcut(cs)
		return
	}
	e.Entry.TypedShortcut(s)
}

// SetOnShortcut sets the callback for custom shortcuts typed into the entry
func (e *CustomEntry) SetOnShortcut(f func(*desktop.CustomShortcut)) {
	e.onShortcut = f
}
