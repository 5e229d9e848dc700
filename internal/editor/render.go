package editor

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qcode/internal/highlight"
	"github.com/kobzarvs/qcode/internal/launcher"
)

const errorPanelRows = 6

// Render draws the text area, the error table when open, the status line
// and the message line, then the completion popup on top.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	statusY := h - 2
	msgY := h - 1
	viewHeight := h - 2
	if h < 2 {
		statusY, msgY = -1, h-1
		viewHeight = 0
	}

	panelHeight := 0
	if e.showErrors && len(e.diags) > 0 && viewHeight > 2 {
		panelHeight = min(len(e.diags), errorPanelRows) + 1
		if panelHeight > viewHeight-1 {
			panelHeight = viewHeight - 1
		}
	}
	textHeight := viewHeight - panelHeight

	gutterWidth := e.gutterWidth()
	e.viewHeight = textHeight
	e.viewWidth = w - gutterWidth
	e.ensureCursorVisible()

	s.SetStyle(e.st.main)
	s.Clear()

	for y := 0; y < textHeight; y++ {
		row := e.scroll + y
		if row >= e.doc.LineCount() {
			clearLine(s, y, w, e.st.main)
			continue
		}
		e.drawGutter(s, y, gutterWidth, row)
		e.drawLine(s, y, w, gutterWidth, row)
	}

	if panelHeight > 0 {
		e.errors.render(s, 0, textHeight, w, panelHeight, e.st.panelHeader, e.st.popup, e.st.popupSelected, e.diagStyle)
	}
	if statusY >= 0 {
		e.renderStatusline(s, w, statusY)
	}
	if msgY >= 0 {
		drawText(s, 0, msgY, w, e.statusMessage, e.st.message)
	}

	cy := e.cursor.Row - e.scroll
	cx := gutterWidth + e.cursorVisualCol() - e.hscroll
	if e.menu != nil {
		e.renderPopup(s, w, textHeight, cx, cy)
	}
	if cy < 0 || cy >= textHeight || cx >= w {
		s.HideCursor()
	} else {
		s.ShowCursor(cx, cy)
	}
	s.Show()
}

func (e *Editor) diagStyle(i int) tcell.Style {
	switch e.diags[i].Severity {
	case launcher.SeverityError:
		return e.st.diagError
	case launcher.SeverityWarning:
		return e.st.diagWarning
	}
	return e.st.popup
}

func (e *Editor) ensureCursorVisible() {
	if e.viewHeight > 0 {
		if e.cursor.Row < e.scroll {
			e.scroll = e.cursor.Row
		}
		if e.cursor.Row >= e.scroll+e.viewHeight {
			e.scroll = e.cursor.Row - e.viewHeight + 1
		}
	}
	if e.viewWidth > 0 {
		col := e.cursorVisualCol()
		if col < e.hscroll {
			e.hscroll = col
		}
		if col >= e.hscroll+e.viewWidth {
			e.hscroll = col - e.viewWidth + 1
		}
	}
}

func (e *Editor) cursorVisualCol() int {
	return visualCol(e.doc.Line(e.cursor.Row), e.cursor.Col, e.tabWidth)
}

// gutterWidth is the digits of the line count plus one cell either side.
func (e *Editor) gutterWidth() int {
	if !e.lineNumbers {
		return 0
	}
	return len(strconv.Itoa(max(1, e.doc.LineCount()))) + 2
}

func (e *Editor) drawGutter(s tcell.Screen, y, gutterWidth, row int) {
	if gutterWidth == 0 {
		return
	}
	style := e.st.gutter
	if row == e.cursor.Row {
		style = e.st.gutterCurrent
	}
	num := fmt.Sprintf(" %*d ", gutterWidth-2, row+1)
	for x, r := range num {
		s.SetContent(x, y, r, nil, style)
	}
}

func (e *Editor) drawLine(s tcell.Screen, y, w, startX, row int) {
	if startX >= w {
		return
	}
	base := e.st.main
	if e.highlightCurrentLine && row == e.cursor.Row {
		base = e.st.currentLine
	}
	line := e.doc.Line(row)
	cats := highlight.Flatten(e.doc.Spans(row), len(line))

	col := 0
	x := startX
	for idx, r := range line {
		style := e.st.text(base, cats[idx])
		if r == '\t' {
			spaces := e.tabWidth - (col % e.tabWidth)
			for i := 0; i < spaces; i++ {
				if vx := col - e.hscroll; vx >= 0 && startX+vx < w {
					s.SetContent(startX+vx, y, ' ', nil, style)
				}
				col++
			}
			continue
		}
		rw := runeWidth(r)
		vx := col - e.hscroll
		col += rw
		if vx < 0 {
			continue
		}
		x = startX + vx
		if x+rw > w {
			break
		}
		s.SetContent(x, y, r, nil, style)
	}
	fill := startX + max(0, col-e.hscroll)
	for ; fill < w; fill++ {
		s.SetContent(fill, y, ' ', nil, base)
	}
}

func (e *Editor) renderStatusline(s tcell.Screen, w, y int) {
	name := e.doc.Path()
	if name == "" {
		name = "[No Name]"
	} else {
		name = filepath.Base(name)
	}
	if e.doc.Dirty() {
		name += "*"
	}
	left := " " + name
	if e.language != "" {
		left += " | " + e.language
	}
	if n := len(e.diags); n > 0 {
		left += fmt.Sprintf(" | %d diagnostics", n)
	}
	right := fmt.Sprintf(" Ln %d, Col %d ", e.cursor.Row+1, e.cursorVisualCol()+1)
	for x, r := range composeStatusLine(left, right, w) {
		s.SetContent(x, y, r, nil, e.st.status)
	}
}

// renderPopup draws the completion list under the cursor, or above it when
// there is no room below.
func (e *Editor) renderPopup(s tcell.Screen, w, viewHeight, cx, cy int) {
	items := e.menu.Items
	rows := min(len(items), popupMaxRows)
	width := 0
	for _, it := range items {
		width = max(width, runewidth.StringWidth(it))
	}
	width += 2
	x := cx - (e.cursor.Col - e.menuCol)
	if x+width > w {
		x = w - width
	}
	if x < 0 {
		x = 0
	}
	y := cy + 1
	if y+rows > viewHeight {
		y = cy - rows
	}
	if y < 0 {
		y = 0
	}
	scroll := 0
	if e.menu.Selected >= rows {
		scroll = e.menu.Selected - rows + 1
	}
	renderList(s, x, y, min(width, w), rows, items, e.menu.Selected, scroll, e.st.popup, e.st.popupSelected, nil)
}

func clearLine(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := len(leftRunes) + len(rightRunes); i < width; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}

func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// visualCol is the screen column of rune offset col, expanding tabs and
// counting wide runes as two cells.
func visualCol(line []rune, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	if col > len(line) {
		col = len(line)
	}
	v := 0
	for i := 0; i < col; i++ {
		if line[i] == '\t' {
			v += tabWidth - (v % tabWidth)
			continue
		}
		v += runeWidth(line[i])
	}
	return v
}
