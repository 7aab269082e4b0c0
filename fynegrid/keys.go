package fynegrid

import (
	"fyne.io/fyne/v2"

	"github.com/alexballas/xdatagrid/datagrid"
)

func (t *Table) FocusGained()   {}
func (t *Table) FocusLost()     {}
func (t *Table) TypedRune(rune) {}

// TypedKey moves the anchor with Up and Down and activates it with Enter.
func (t *Table) TypedKey(ev *fyne.KeyEvent) {
	var k datagrid.Key
	switch ev.Name {
	case fyne.KeyUp:
		k = datagrid.KeyUp
	case fyne.KeyDown:
		k = datagrid.KeyDown
	case fyne.KeyReturn, fyne.KeyEnter:
		k = datagrid.KeyEnter
	default:
		return
	}

	top, scrolled := t.engine.KeyDown(k)
	if scrolled {
		t.scrollTo(top)
	}
	t.sync(false)
}

func (t *Table) TypedShortcut(s fyne.Shortcut) {
	if _, ok := s.(*fyne.ShortcutCopy); ok {
		t.copySelection()
	}
}

// copySelection puts the selected rows on the clipboard, one line per row.
func (t *Table) copySelection() {
	text := t.engine.SelectedText()
	if text == "" {
		return
	}
	if app := fyne.CurrentApp(); app != nil {
		app.Clipboard().SetContent(text)
	}
}
