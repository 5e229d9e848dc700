// Package editor is the terminal editing surface over a document.Document.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qcode/internal/complete"
	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/document"
	"github.com/kobzarvs/qcode/internal/launcher"
	"github.com/kobzarvs/qcode/internal/logger"
)

type Cursor struct {
	Row int
	Col int
}

type Editor struct {
	doc      *document.Document
	language string
	keymap   map[string]string
	tabWidth int
	st       styles

	cursor     Cursor
	scroll     int
	hscroll    int
	viewHeight int
	viewWidth  int

	lineNumbers          bool
	highlightCurrentLine bool

	completer *complete.Completer
	menu      *complete.Menu
	menuCol   int

	diags        []launcher.Diagnostic
	errors       listPanel
	showErrors   bool
	errorVisited bool

	compileRequested bool
	lastAction       string
	statusMessage    string
}

func New(cfg config.Config, doc *document.Document) *Editor {
	keymap := make(map[string]string, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = 1
	}
	if doc == nil {
		doc = document.New(nil)
	}
	return &Editor{
		doc:                  doc,
		keymap:               keymap,
		tabWidth:             tabWidth,
		st:                   newStyles(cfg.Theme),
		lineNumbers:          cfg.Editor.LineNumbers != "off",
		highlightCurrentLine: cfg.Editor.HighlightCurrentLine,
		errors:               listPanel{title: " Errors"},
	}
}

func (e *Editor) Document() *document.Document {
	return e.doc
}

// SetLanguage names the rule set shown in the status line.
func (e *Editor) SetLanguage(name string) {
	e.language = name
}

func (e *Editor) SetCompleter(c *complete.Completer) {
	e.completer = c
	e.menu = nil
}

func (e *Editor) Cursor() Cursor {
	return e.cursor
}

// SetCursor moves the cursor, clamped to the document.
func (e *Editor) SetCursor(c Cursor) {
	e.cursor = c
	e.clampCursor()
}

func (e *Editor) Scroll() int {
	return e.scroll
}

func (e *Editor) SetScroll(row int) {
	if row < 0 {
		row = 0
	}
	if n := e.doc.LineCount(); row >= n {
		row = n - 1
	}
	e.scroll = row
}

func (e *Editor) SetStatusMessage(msg string) {
	e.statusMessage = msg
}

func (e *Editor) StatusMessage() string {
	return e.statusMessage
}

// ConsumeCompileRequest reports whether ctrl+b asked for a compile since
// the last call, and the file to compile.
func (e *Editor) ConsumeCompileRequest() (string, bool) {
	if !e.compileRequested {
		return "", false
	}
	e.compileRequested = false
	return e.doc.Path(), true
}

// SetDiagnostics replaces the error table contents and opens it when there
// is something to show.
func (e *Editor) SetDiagnostics(diags []launcher.Diagnostic) {
	e.diags = diags
	items := make([]string, len(diags))
	for i, d := range diags {
		items[i] = d.String()
	}
	e.errors = listPanel{title: fmt.Sprintf(" Errors (%d)", len(diags)), items: items}
	e.showErrors = len(diags) > 0
	e.errorVisited = false
}

func (e *Editor) Diagnostics() []launcher.Diagnostic {
	return e.diags
}

// Reload replaces the buffer with the file on disk, keeping the cursor.
func (e *Editor) Reload() error {
	path := e.doc.Path()
	if path == "" {
		return document.ErrNoFileName
	}
	if err := e.doc.Load(path); err != nil {
		return err
	}
	e.menu = nil
	e.clampCursor()
	e.setStatus("reloaded " + filepath.Base(path))
	return nil
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

// HandleKey applies one key event and reports whether the editor should
// quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if e.menu != nil {
		if handled := e.handleMenuKey(ev, key); handled {
			return false
		}
	}
	if e.showErrors {
		if handled := e.handleErrorKey(key); handled {
			return false
		}
	}
	if action, ok := e.keymap[key]; ok {
		quit := e.execAction(action)
		e.lastAction = action
		return quit
	}
	e.lastAction = ""
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		e.insertRune(ev.Rune())
		e.updateMenu(ev.Rune(), false)
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case "move_left":
		e.moveLeft()
	case "move_right":
		e.moveRight()
	case "move_up":
		e.moveUp()
	case "move_down":
		e.moveDown()
	case "line_start":
		e.cursor.Col = 0
	case "line_end":
		e.cursor.Col = len(e.doc.Line(e.cursor.Row))
	case "file_start":
		e.cursor = Cursor{}
	case "file_end":
		last := e.doc.LineCount() - 1
		e.cursor = Cursor{Row: last, Col: len(e.doc.Line(last))}
	case "page_up":
		e.pageUp()
	case "page_down":
		e.pageDown()
	case "newline":
		e.insertNewline()
	case "backspace":
		e.backspace()
		if e.menu != nil {
			e.updateMenu(0, false)
		}
	case "delete_char":
		e.doc.DeleteRune(e.cursor.Row, e.cursor.Col)
	case "insert_tab":
		e.insertRune('\t')
	case "delete_line":
		e.deleteLine()
	case "save":
		e.save()
	case "quit":
		return e.quit()
	case "complete":
		e.updateMenu(0, true)
	case "compile":
		e.compile()
	case "toggle_errors":
		e.showErrors = !e.showErrors && len(e.diags) > 0
		if len(e.diags) == 0 {
			e.setStatus("no errors")
		}
	case "next_error":
		e.nextError()
	case "toggle_line_numbers":
		e.lineNumbers = !e.lineNumbers
	default:
		logger.Warn("unknown keymap action", "action", action)
		e.setStatus("unknown action: " + action)
	}
	return false
}

func (e *Editor) save() {
	err := e.doc.Save("")
	switch {
	case errors.Is(err, document.ErrNoFileName):
		e.setStatus("no file name")
	case err != nil:
		logger.Error("save failed", "path", e.doc.Path(), "err", err)
		e.setStatus(err.Error())
	default:
		e.setStatus(fmt.Sprintf("written %s (%d lines)", filepath.Base(e.doc.Path()), e.doc.LineCount()))
	}
}

// quit needs a second press when there are unsaved changes.
func (e *Editor) quit() bool {
	if !e.doc.Dirty() || e.lastAction == "quit" {
		return true
	}
	e.setStatus("unsaved changes, press again to quit")
	return false
}

func (e *Editor) compile() {
	if e.doc.Path() == "" {
		e.setStatus("save the file before compiling")
		return
	}
	if e.doc.Dirty() {
		if err := e.doc.Save(""); err != nil {
			e.setStatus(err.Error())
			return
		}
	}
	e.compileRequested = true
	e.setStatus("compiling " + filepath.Base(e.doc.Path()) + "...")
}
