package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qcode/internal/complete"
	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/document"
	"github.com/kobzarvs/qcode/internal/highlight"
	"github.com/kobzarvs/qcode/internal/launcher"
)

func newTestEditor(text string) *Editor {
	doc := document.New(highlight.NewDefault())
	doc.SetText(text)
	return New(config.Default(), doc)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, 0)
}

func ctrlKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModCtrl)
}

func typeText(e *Editor, s string) {
	for _, r := range s {
		e.HandleKey(runeKey(r))
	}
}

func TestTypingInsertsAtCursor(t *testing.T) {
	e := newTestEditor("")
	typeText(e, "int x;")
	if got := e.Document().Text(); got != "int x;" {
		t.Fatalf("text = %q", got)
	}
	if e.Cursor() != (Cursor{Row: 0, Col: 6}) {
		t.Fatalf("cursor = %+v", e.Cursor())
	}
	if highlight.CategoryAt(e.Document().Spans(0), 0) != highlight.Keyword {
		t.Fatalf("typed keyword not highlighted")
	}
}

func TestEnterAndBackspace(t *testing.T) {
	e := newTestEditor("abcd")
	e.SetCursor(Cursor{Row: 0, Col: 2})
	e.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	if got := e.Document().Text(); got != "ab\ncd" {
		t.Fatalf("after enter = %q", got)
	}
	if e.Cursor() != (Cursor{Row: 1, Col: 0}) {
		t.Fatalf("cursor = %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	if got := e.Document().Text(); got != "abcd" {
		t.Fatalf("after backspace = %q", got)
	}
	if e.Cursor() != (Cursor{Row: 0, Col: 2}) {
		t.Fatalf("cursor = %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, 0))
	e.HandleKey(tcell.NewEventKey(tcell.KeyDelete, 0, 0))
	if got := e.Document().Text(); got != "ad" {
		t.Fatalf("after backspace+delete = %q", got)
	}
}

func TestMovement(t *testing.T) {
	e := newTestEditor("one\ntwo three\nx")
	e.SetCursor(Cursor{Row: 1, Col: 9})
	e.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, 0))
	if e.Cursor() != (Cursor{Row: 0, Col: 3}) {
		t.Fatalf("up clamp: %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, 0))
	if e.Cursor() != (Cursor{Row: 1, Col: 0}) {
		t.Fatalf("right wraps: %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, 0))
	if e.Cursor() != (Cursor{Row: 0, Col: 3}) {
		t.Fatalf("left wraps: %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl))
	if e.Cursor() != (Cursor{Row: 2, Col: 1}) {
		t.Fatalf("ctrl+end: %+v", e.Cursor())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, 0))
	if e.Cursor() != (Cursor{Row: 2, Col: 0}) {
		t.Fatalf("home: %+v", e.Cursor())
	}
	e.SetCursor(Cursor{Row: 99, Col: 99})
	if e.Cursor() != (Cursor{Row: 2, Col: 1}) {
		t.Fatalf("SetCursor clamp: %+v", e.Cursor())
	}
}

func TestTabInsertsTab(t *testing.T) {
	e := newTestEditor("x")
	e.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	if got := e.Document().Text(); got != "\tx" {
		t.Fatalf("text = %q", got)
	}
}

func TestDeleteLine(t *testing.T) {
	e := newTestEditor("a\nb\nc")
	e.SetCursor(Cursor{Row: 2, Col: 1})
	e.HandleKey(ctrlKey(tcell.KeyCtrlK))
	if got := e.Document().Text(); got != "a\nb" {
		t.Fatalf("text = %q", got)
	}
	if e.Cursor().Row != 1 {
		t.Fatalf("cursor = %+v", e.Cursor())
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.cpp")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc := document.New(highlight.NewDefault())
	if err := doc.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	e := New(config.Default(), doc)
	typeText(e, "long ")
	e.HandleKey(ctrlKey(tcell.KeyCtrlS))
	data, _ := os.ReadFile(path)
	if string(data) != "long int x;\n" {
		t.Fatalf("saved = %q", data)
	}
	if !strings.HasPrefix(e.StatusMessage(), "written main.cpp") {
		t.Fatalf("status = %q", e.StatusMessage())
	}
}

func TestSaveWithoutName(t *testing.T) {
	e := newTestEditor("x")
	e.HandleKey(ctrlKey(tcell.KeyCtrlS))
	if e.StatusMessage() != "no file name" {
		t.Fatalf("status = %q", e.StatusMessage())
	}
}

func TestQuitWhenClean(t *testing.T) {
	e := New(config.Default(), document.New(highlight.NewDefault()))
	if !e.HandleKey(ctrlKey(tcell.KeyCtrlQ)) {
		t.Fatalf("ctrl+q on a clean document did not quit")
	}
}

func TestQuitTwiceWhenDirty(t *testing.T) {
	e := newTestEditor("x")
	typeText(e, "y")
	if e.HandleKey(ctrlKey(tcell.KeyCtrlQ)) {
		t.Fatalf("quit with unsaved changes on first press")
	}
	if !strings.Contains(e.StatusMessage(), "unsaved") {
		t.Fatalf("status = %q", e.StatusMessage())
	}
	if !e.HandleKey(ctrlKey(tcell.KeyCtrlQ)) {
		t.Fatalf("second press did not quit")
	}
}

func TestCompileRequest(t *testing.T) {
	e := newTestEditor("x")
	e.HandleKey(ctrlKey(tcell.KeyCtrlB))
	if _, ok := e.ConsumeCompileRequest(); ok {
		t.Fatalf("compile requested without a file")
	}

	path := filepath.Join(t.TempDir(), "a.cpp")
	doc := document.New(highlight.NewDefault())
	doc.SetText("int main() {}")
	if err := doc.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	e = New(config.Default(), doc)
	typeText(e, "/")
	e.HandleKey(ctrlKey(tcell.KeyCtrlB))
	got, ok := e.ConsumeCompileRequest()
	if !ok || got != path {
		t.Fatalf("ConsumeCompileRequest = %q, %v", got, ok)
	}
	if doc.Dirty() {
		t.Fatalf("compile did not save first")
	}
	if _, ok := e.ConsumeCompileRequest(); ok {
		t.Fatalf("request not consumed")
	}
}

func TestCompletionPopup(t *testing.T) {
	e := newTestEditor("")
	e.SetCompleter(complete.New([]string{"private", "println", "printf"}, complete.Options{MinPrefix: 3}))

	typeText(e, "pr")
	if e.menu != nil {
		t.Fatalf("popup opened below the minimum prefix")
	}
	typeText(e, "i")
	if e.menu == nil || len(e.menu.Items) != 3 {
		t.Fatalf("menu = %+v", e.menu)
	}
	if e.menu.Current() != "printf" {
		t.Fatalf("first match = %q", e.menu.Current())
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	e.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	if got := e.Document().Text(); got != "println" {
		t.Fatalf("text = %q", got)
	}
	if e.menu != nil || e.Cursor().Col != 7 {
		t.Fatalf("menu %v cursor %+v after accept", e.menu, e.Cursor())
	}
}

func TestCompletionEndOfWordCloses(t *testing.T) {
	e := newTestEditor("")
	e.SetCompleter(complete.New([]string{"printf"}, complete.Options{}))
	typeText(e, "pri")
	if e.menu == nil {
		t.Fatalf("menu not open")
	}
	typeText(e, "(")
	if e.menu != nil {
		t.Fatalf("menu still open after end-of-word char")
	}
}

func TestCompletionShortcutAndEscape(t *testing.T) {
	e := newTestEditor("")
	e.SetCompleter(complete.New([]string{"printf"}, complete.Options{}))
	typeText(e, "p")
	e.HandleKey(ctrlKey(tcell.KeyCtrlE))
	if e.menu == nil {
		t.Fatalf("ctrl+e did not open the popup")
	}
	e.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if e.menu != nil {
		t.Fatalf("esc did not close the popup")
	}
	e.HandleKey(ctrlKey(tcell.KeyCtrlE))
	e.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	if got := e.Document().Text(); got != "printf" {
		t.Fatalf("tab accept: %q", got)
	}
}

func TestDiagnosticsNavigation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	doc := document.New(highlight.NewDefault())
	doc.SetText("int a;\nint b;\nint c;")
	if err := doc.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	e := New(config.Default(), doc)
	e.SetDiagnostics([]launcher.Diagnostic{
		{Path: path, Line: 2, Col: 5, Severity: launcher.SeverityError, Message: "b"},
		{Path: "other.cpp", Line: 1, Col: 1, Severity: launcher.SeverityWarning, Message: "o"},
		{Path: path, Line: 3, Col: 1, Severity: launcher.SeverityNote, Message: "c"},
	})
	if !e.showErrors {
		t.Fatalf("error table not opened")
	}

	e.HandleKey(ctrlKey(tcell.KeyCtrlN))
	if e.Cursor() != (Cursor{Row: 1, Col: 4}) {
		t.Fatalf("first next_error: %+v", e.Cursor())
	}
	e.HandleKey(ctrlKey(tcell.KeyCtrlN))
	if e.Cursor() != (Cursor{Row: 1, Col: 4}) {
		t.Fatalf("diagnostic in another file moved the cursor: %+v", e.Cursor())
	}
	if !strings.HasPrefix(e.StatusMessage(), "other.cpp:1:1") {
		t.Fatalf("status = %q", e.StatusMessage())
	}

	e.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, 0))
	e.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	if e.Cursor() != (Cursor{Row: 2, Col: 0}) {
		t.Fatalf("enter in table: %+v", e.Cursor())
	}
	if e.Document().Text() != "int a;\nint b;\nint c;" {
		t.Fatalf("table keys edited the document")
	}

	e.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	if e.showErrors {
		t.Fatalf("esc did not close the table")
	}
	e.HandleKey(ctrlKey(tcell.KeyCtrlT))
	if !e.showErrors {
		t.Fatalf("ctrl+t did not reopen the table")
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	if err := os.WriteFile(path, []byte("a\nb\nc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc := document.New(highlight.NewDefault())
	if err := doc.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	e := New(config.Default(), doc)
	e.SetCursor(Cursor{Row: 2, Col: 1})
	if err := os.WriteFile(path, []byte("/* x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if e.Cursor() != (Cursor{Row: 0, Col: 1}) {
		t.Fatalf("cursor = %+v", e.Cursor())
	}
	if doc.State(0) != highlight.InBlockComment {
		t.Fatalf("reloaded text not highlighted")
	}
}

func TestKeyString(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), "enter"},
		{tcell.NewEventKey(tcell.KeyTab, 0, 0), "tab"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), "backspace"},
		{tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "ctrl+s"},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), "ctrl+home"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', 0), "space"},
		{tcell.NewEventKey(tcell.KeyRune, 'q', 0), "q"},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, 0), "pgdn"},
	}
	for _, c := range cases {
		if got := keyString(c.ev); got != c.want {
			t.Errorf("keyString = %q, want %q", got, c.want)
		}
	}
}
