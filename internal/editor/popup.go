package editor

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qcode/internal/complete"
)

const popupMaxRows = 8

// updateMenu recomputes the completion popup after typed was entered.
// shortcut forces it open even below the minimum prefix.
func (e *Editor) updateMenu(typed rune, shortcut bool) {
	if e.completer == nil {
		e.menu = nil
		return
	}
	prefix, start := complete.WordBefore(e.doc.Line(e.cursor.Row), e.cursor.Col)
	if !e.completer.Trigger(prefix, typed, shortcut) {
		e.menu = nil
		return
	}
	e.menu = e.completer.Open(prefix)
	e.menuCol = start
	if e.menu == nil && shortcut {
		e.setStatus("no completions")
	}
}

func (e *Editor) handleMenuKey(ev *tcell.EventKey, key string) bool {
	switch key {
	case "up":
		e.menu.Prev()
	case "down":
		e.menu.Next()
	case "tab", "enter":
		e.acceptCompletion()
	case "esc":
		e.menu = nil
	default:
		if ev.Key() != tcell.KeyRune && key != "backspace" {
			e.menu = nil
		}
		return false
	}
	return true
}

func (e *Editor) acceptCompletion() {
	word := e.menu.Current()
	suffix := complete.Suffix(word, e.menu.Prefix)
	e.menu = nil
	if suffix == "" {
		return
	}
	row, col := e.doc.InsertText(e.cursor.Row, e.cursor.Col, suffix)
	e.cursor = Cursor{Row: row, Col: col}
}

func (e *Editor) handleErrorKey(key string) bool {
	switch key {
	case "up":
		e.errors.moveUp()
	case "down":
		e.errors.moveDown()
	case "pgup":
		e.errors.pageUp(popupMaxRows)
	case "pgdn":
		e.errors.pageDown(popupMaxRows)
	case "enter":
		e.jumpToError(e.errors.index)
	case "esc":
		e.showErrors = false
	default:
		return false
	}
	return true
}

// nextError jumps to the selected diagnostic first, then advances.
func (e *Editor) nextError() {
	if len(e.diags) == 0 {
		e.setStatus("no errors")
		return
	}
	if e.errorVisited {
		e.errors.index = (e.errors.index + 1) % len(e.diags)
	}
	e.jumpToError(e.errors.index)
}

func (e *Editor) jumpToError(i int) {
	if i < 0 || i >= len(e.diags) {
		return
	}
	d := e.diags[i]
	e.errorVisited = true
	e.setStatus(d.String())
	if !e.sameFile(d.Path) {
		return
	}
	e.SetCursor(Cursor{Row: d.Line - 1, Col: d.Col - 1})
}

func (e *Editor) sameFile(path string) bool {
	own := e.doc.Path()
	if own == "" {
		return false
	}
	a, errA := filepath.Abs(path)
	b, errB := filepath.Abs(own)
	if errA == nil && errB == nil && a == b {
		return true
	}
	return filepath.Base(path) == filepath.Base(own)
}
