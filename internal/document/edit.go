package document

import (
	"strings"

	"github.com/kobzarvs/qcode/internal/highlight"
)

// Edits clamp columns to the line and ignore rows outside the document.
// Each successful edit notifies the highlighter for the first changed row.
// Edits that add or merge lines reset the edited row and any new rows to
// Unknown, so the cascade always reaches the first row that kept its text.

func (d *Document) InsertRune(row, col int, r rune) bool {
	row, col, ok := d.clampPos(row, col)
	if !ok {
		return false
	}
	if r == '\n' {
		return d.SplitLine(row, col)
	}
	t := d.lines[row].text
	t = append(t, 0)
	copy(t[col+1:], t[col:])
	t[col] = r
	d.lines[row].text = t
	d.changed(row)
	return true
}

// DeleteRune removes the rune at col. At end of line it joins the next line.
func (d *Document) DeleteRune(row, col int) bool {
	row, col, ok := d.clampPos(row, col)
	if !ok {
		return false
	}
	t := d.lines[row].text
	if col >= len(t) {
		return d.JoinLine(row)
	}
	d.lines[row].text = append(t[:col:col], t[col+1:]...)
	d.changed(row)
	return true
}

// InsertText inserts s at row/col and returns the position after it.
func (d *Document) InsertText(row, col int, s string) (int, int) {
	row, col, ok := d.clampPos(row, col)
	if !ok || s == "" {
		return row, col
	}
	parts := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	head := d.lines[row].text[:col:col]
	tail := append([]rune(nil), d.lines[row].text[col:]...)

	if len(parts) == 1 {
		ins := []rune(parts[0])
		d.lines[row].text = append(append(head, ins...), tail...)
		d.changed(row)
		return row, col + len(ins)
	}

	d.lines[row].text = append(head, []rune(parts[0])...)
	added := make([]line, 0, len(parts)-1)
	for _, p := range parts[1:] {
		added = append(added, line{text: []rune(p), state: highlight.Unknown})
	}
	last := &added[len(added)-1]
	endCol := len(last.text)
	last.text = append(last.text, tail...)
	d.insertLines(row+1, added)
	d.restructured(row)
	return row + len(added), endCol
}

func (d *Document) SplitLine(row, col int) bool {
	row, col, ok := d.clampPos(row, col)
	if !ok {
		return false
	}
	t := d.lines[row].text
	right := append([]rune(nil), t[col:]...)
	d.lines[row].text = t[:col:col]
	d.insertLines(row+1, []line{{text: right, state: highlight.Unknown}})
	d.restructured(row)
	return true
}

// JoinLine appends row+1 to row.
func (d *Document) JoinLine(row int) bool {
	if row < 0 || row+1 >= len(d.lines) {
		return false
	}
	d.lines[row].text = append(d.lines[row].text, d.lines[row+1].text...)
	d.removeLines(row+1, 1)
	d.restructured(row)
	return true
}

// DeleteLine removes row. The last remaining line is emptied instead.
func (d *Document) DeleteLine(row int) bool {
	if row < 0 || row >= len(d.lines) {
		return false
	}
	if len(d.lines) == 1 {
		d.lines[0].text = nil
		d.changed(0)
		return true
	}
	d.removeLines(row, 1)
	if row < len(d.lines) {
		d.changed(row)
	} else {
		d.dirty = true
		d.version++
		d.markDirty(row-1, row-1)
	}
	return true
}

// ReplaceLine swaps the text of row. A text with line breaks replaces the
// row with as many rows as it has lines.
func (d *Document) ReplaceLine(row int, text string) bool {
	if row < 0 || row >= len(d.lines) {
		return false
	}
	if strings.ContainsAny(text, "\r\n") {
		d.lines[row].text = nil
		d.InsertText(row, 0, strings.ReplaceAll(text, "\r", ""))
		return true
	}
	d.lines[row].text = []rune(text)
	d.changed(row)
	return true
}

func (d *Document) insertLines(at int, added []line) {
	lines := make([]line, 0, len(d.lines)+len(added))
	lines = append(lines, d.lines[:at]...)
	lines = append(lines, added...)
	lines = append(lines, d.lines[at:]...)
	d.lines = lines
	d.markDirty(at, len(d.lines)-1)
}

func (d *Document) removeLines(at, n int) {
	d.lines = append(d.lines[:at], d.lines[at+n:]...)
	d.markDirty(at, len(d.lines)-1)
}

func (d *Document) restructured(row int) {
	d.lines[row].state = highlight.Unknown
	d.changed(row)
}
