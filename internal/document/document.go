// Package document holds the editable text as a list of line records and
// keeps their highlighting current through a highlight.Highlighter.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kobzarvs/qcode/internal/highlight"
	"github.com/kobzarvs/qcode/internal/logger"
)

var ErrNoFileName = errors.New("no file name")

type line struct {
	text  []rune
	state highlight.State
	spans []highlight.Span
}

// Document owns the line records the highlighter reads and writes. Only one
// goroutine may call its methods.
type Document struct {
	lines      []line
	hl         *highlight.Highlighter
	path       string
	dirty      bool
	version    uint64
	dirtyFirst int
	dirtyLast  int
}

func New(hl *highlight.Highlighter) *Document {
	d := &Document{hl: hl}
	d.reset([]string{""})
	return d
}

// SetHighlighter swaps the rule set and rescans everything. nil turns
// highlighting off.
func (d *Document) SetHighlighter(hl *highlight.Highlighter) {
	d.hl = hl
	d.rehighlight()
}

func (d *Document) Highlighter() *highlight.Highlighter {
	return d.hl
}

func (d *Document) Path() string {
	return d.path
}

// SetPath names the file Save writes to without touching the buffer.
func (d *Document) SetPath(path string) {
	d.path = path
}

func (d *Document) Dirty() bool {
	return d.dirty
}

// Version increases on every text change.
func (d *Document) Version() uint64 {
	return d.version
}

func (d *Document) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	d.path = path
	d.SetText(string(data))
	d.dirty = false
	logger.Info("file opened", "path", path, "lines", len(d.lines))
	return nil
}

// Save writes the buffer to path, or to the document's own path when path
// is empty.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.path
	}
	if path == "" {
		return ErrNoFileName
	}
	if err := os.WriteFile(path, []byte(d.Text()), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.path = path
	d.dirty = false
	logger.Info("file saved", "path", path)
	return nil
}

// SetText replaces the whole buffer and rescans it.
func (d *Document) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	d.reset(strings.Split(text, "\n"))
	d.dirty = true
	d.version++
	d.rehighlight()
}

func (d *Document) reset(texts []string) {
	d.lines = make([]line, len(texts))
	for i, t := range texts {
		d.lines[i] = line{text: []rune(t), state: highlight.Unknown}
	}
	d.dirtyFirst, d.dirtyLast = -1, -1
}

func (d *Document) rehighlight() {
	if d.hl == nil {
		for i := range d.lines {
			d.lines[i].spans = nil
			d.lines[i].state = highlight.Unknown
		}
	} else {
		d.hl.Rehighlight(d)
	}
	d.markDirty(0, len(d.lines)-1)
}

func (d *Document) Text() string {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(l.text))
	}
	return b.String()
}

// Line returns the runes of row; the slice must not be modified.
func (d *Document) Line(row int) []rune {
	if row < 0 || row >= len(d.lines) {
		return nil
	}
	return d.lines[row].text
}

func (d *Document) Spans(row int) []highlight.Span {
	if row < 0 || row >= len(d.lines) {
		return nil
	}
	return d.lines[row].spans
}

func (d *Document) State(row int) highlight.State {
	if row < 0 || row >= len(d.lines) {
		return highlight.Unknown
	}
	return d.lines[row].state
}

// highlight.Lines

func (d *Document) LineCount() int                  { return len(d.lines) }
func (d *Document) LineText(i int) string           { return string(d.lines[i].text) }
func (d *Document) LineState(i int) highlight.State { return d.lines[i].state }

func (d *Document) SetLineState(i int, s highlight.State) {
	d.lines[i].state = s
}

func (d *Document) SetLineSpans(i int, spans []highlight.Span) {
	d.lines[i].spans = spans
}

// ConsumeDirtyRange returns the rows whose highlighting changed since the
// last call.
func (d *Document) ConsumeDirtyRange() (first, last int, ok bool) {
	if d.dirtyFirst < 0 {
		return -1, -1, false
	}
	first, last = d.dirtyFirst, d.dirtyLast
	d.dirtyFirst, d.dirtyLast = -1, -1
	return first, last, true
}

func (d *Document) markDirty(first, last int) {
	if last < first {
		return
	}
	if d.dirtyFirst < 0 || first < d.dirtyFirst {
		d.dirtyFirst = first
	}
	if last > d.dirtyLast {
		d.dirtyLast = last
	}
}

// changed is the line-text-changed notification.
func (d *Document) changed(row int) {
	d.dirty = true
	d.version++
	if d.hl == nil {
		d.markDirty(row, row)
		return
	}
	d.markDirty(row, d.hl.OnLineChanged(d, row))
}

func (d *Document) clampPos(row, col int) (int, int, bool) {
	if row < 0 || row >= len(d.lines) {
		return row, col, false
	}
	if col < 0 {
		col = 0
	}
	if n := len(d.lines[row].text); col > n {
		col = n
	}
	return row, col, true
}
