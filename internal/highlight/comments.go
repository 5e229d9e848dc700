package highlight

import "strings"

// State is the block-comment state recorded at the end of a line.
type State int

const (
	Unknown State = iota - 1
	Normal
	InBlockComment
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case InBlockComment:
		return "in-block-comment"
	default:
		return "unknown"
	}
}

const (
	commentOpen  = "/*"
	commentClose = "*/"
)

// ScanComments runs the block-comment state machine over one line, starting
// in entering, and returns the exit state and the BlockComment spans it
// found. Anything other than InBlockComment is treated as Normal.
func ScanComments(text string, entering State) (State, []Span) {
	start := 0
	if entering != InBlockComment {
		start = strings.Index(text, commentOpen)
	}
	exit := Normal
	cols := newColumns(text)
	var spans []Span
	for start >= 0 {
		var end int
		// The terminator search starts at the region start, so "/*/" closes itself.
		if i := strings.Index(text[start:], commentClose); i >= 0 {
			end = start + i + len(commentClose)
		} else {
			exit = InBlockComment
			end = len(text)
		}
		if s, ok := cols.span(start, end, BlockComment); ok {
			spans = append(spans, s)
		}
		start = indexFrom(text, commentOpen, end)
	}
	return exit, spans
}

func indexFrom(s, sub string, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}
