package editor

func (e *Editor) clampCursor() {
	n := e.doc.LineCount()
	if e.cursor.Row >= n {
		e.cursor.Row = n - 1
	}
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	e.clampCursorCol()
}

func (e *Editor) clampCursorCol() {
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	if n := len(e.doc.Line(e.cursor.Row)); e.cursor.Col > n {
		e.cursor.Col = n
	}
}

func (e *Editor) insertRune(r rune) {
	if e.doc.InsertRune(e.cursor.Row, e.cursor.Col, r) {
		e.cursor.Col++
	}
}

func (e *Editor) insertNewline() {
	if e.doc.SplitLine(e.cursor.Row, e.cursor.Col) {
		e.cursor.Row++
		e.cursor.Col = 0
	}
}

func (e *Editor) backspace() {
	switch {
	case e.cursor.Col > 0:
		if e.doc.DeleteRune(e.cursor.Row, e.cursor.Col-1) {
			e.cursor.Col--
		}
	case e.cursor.Row > 0:
		prev := e.cursor.Row - 1
		col := len(e.doc.Line(prev))
		if e.doc.JoinLine(prev) {
			e.cursor = Cursor{Row: prev, Col: col}
		}
	}
}

func (e *Editor) deleteLine() {
	e.doc.DeleteLine(e.cursor.Row)
	e.clampCursor()
}

func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
		return
	}
	if e.cursor.Row > 0 {
		e.cursor.Row--
		e.cursor.Col = len(e.doc.Line(e.cursor.Row))
	}
}

func (e *Editor) moveRight() {
	if e.cursor.Col < len(e.doc.Line(e.cursor.Row)) {
		e.cursor.Col++
		return
	}
	if e.cursor.Row < e.doc.LineCount()-1 {
		e.cursor.Row++
		e.cursor.Col = 0
	}
}

func (e *Editor) moveUp() {
	if e.cursor.Row > 0 {
		e.cursor.Row--
		e.clampCursorCol()
	}
}

func (e *Editor) moveDown() {
	if e.cursor.Row < e.doc.LineCount()-1 {
		e.cursor.Row++
		e.clampCursorCol()
	}
}

func (e *Editor) pageSize() int {
	if e.viewHeight > 1 {
		return e.viewHeight - 1
	}
	return 1
}

func (e *Editor) pageUp() {
	e.cursor.Row -= e.pageSize()
	e.scroll -= e.pageSize()
	if e.scroll < 0 {
		e.scroll = 0
	}
	e.clampCursor()
}

func (e *Editor) pageDown() {
	e.cursor.Row += e.pageSize()
	e.scroll += e.pageSize()
	e.clampCursor()
	if e.scroll > e.cursor.Row {
		e.scroll = e.cursor.Row
	}
}
