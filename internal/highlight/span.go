package highlight

import "unicode/utf8"

// Span marks Length runes starting at rune offset Start with a Category.
type Span struct {
	Start    int
	Length   int
	Category Category
}

func (s Span) End() int {
	return s.Start + s.Length
}

func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End()
}

// CategoryAt resolves the category painted at col. Spans are applied in
// list order, so the last span covering col wins.
func CategoryAt(spans []Span, col int) Category {
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Contains(col) {
			return spans[i].Category
		}
	}
	return Default
}

// Flatten paints spans over a line of width runes and returns the category
// of every column.
func Flatten(spans []Span, width int) []Category {
	if width <= 0 {
		return nil
	}
	out := make([]Category, width)
	for _, s := range spans {
		start := s.Start
		if start < 0 {
			start = 0
		}
		end := s.End()
		if end > width {
			end = width
		}
		for col := start; col < end; col++ {
			out[col] = s.Category
		}
	}
	return out
}

// columns converts byte offsets of a line into rune columns.
type columns struct {
	text  string
	ascii bool
}

func newColumns(text string) columns {
	return columns{text: text, ascii: utf8.RuneCountInString(text) == len(text)}
}

func (c columns) at(b int) int {
	if c.ascii {
		return b
	}
	return utf8.RuneCountInString(c.text[:b])
}

func (c columns) span(start, end int, cat Category) (Span, bool) {
	if start < 0 || end <= start {
		return Span{}, false
	}
	s := c.at(start)
	return Span{Start: s, Length: c.at(end) - s, Category: cat}, true
}
