package editor

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// listPanel is a titled, scrolling list with one selected row. The error
// table uses it directly; the completion popup draws through renderList.
type listPanel struct {
	title  string
	items  []string
	index  int
	scroll int
}

func (p *listPanel) moveUp() {
	if p.index > 0 {
		p.index--
	}
}

func (p *listPanel) moveDown() {
	if p.index < len(p.items)-1 {
		p.index++
	}
}

func (p *listPanel) pageUp(height int) {
	p.index -= height
	if p.index < 0 {
		p.index = 0
	}
}

func (p *listPanel) pageDown(height int) {
	p.index += height
	if p.index >= len(p.items) {
		p.index = len(p.items) - 1
	}
	if p.index < 0 {
		p.index = 0
	}
}

func (p *listPanel) ensureVisible(height int) {
	if height <= 0 {
		return
	}
	if p.index < p.scroll {
		p.scroll = p.index
	}
	if p.index >= p.scroll+height {
		p.scroll = p.index - height + 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// render draws the header on row y and the list below it.
func (p *listPanel) render(s tcell.Screen, x, y, w, h int, header, base, selected tcell.Style, itemStyle func(int) tcell.Style) {
	if w <= 0 || h <= 0 {
		return
	}
	drawText(s, x, y, w, p.title, header)
	p.ensureVisible(h - 1)
	renderList(s, x, y+1, w, h-1, p.items, p.index, p.scroll, base, selected, itemStyle)
}

// renderList fills a w*h box with items[scroll:], highlighting sel.
func renderList(s tcell.Screen, x, y, w, h int, items []string, sel, scroll int, base, selected tcell.Style, itemStyle func(int) tcell.Style) {
	for i := 0; i < h; i++ {
		idx := scroll + i
		style := base
		text := ""
		if idx < len(items) {
			text = items[idx]
			if itemStyle != nil {
				style = itemStyle(idx)
			}
			if idx == sel {
				style = selected
			}
		}
		drawText(s, x, y+i, w, " "+text, style)
	}
}

// drawText writes text into w cells at x,y, padding with spaces.
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw < 1 {
			rw = 1
		}
		if col+rw > w {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += rw
	}
	for ; col < w; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}
