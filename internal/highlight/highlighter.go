package highlight

import "github.com/kobzarvs/qcode/internal/logger"

// Lines is the per-line storage a host text container exposes to the
// highlighter. LineState is the exit state last recorded for a line.
type Lines interface {
	LineCount() int
	LineText(i int) string
	LineState(i int) State
	SetLineState(i int, s State)
	SetLineSpans(i int, spans []Span)
}

// Highlighter pairs a RuleTable with the block-comment tracker. It holds no
// document state and may be shared; the Lines it is handed must only be
// mutated from one goroutine.
type Highlighter struct {
	rules *RuleTable
}

func New(rules *RuleTable) *Highlighter {
	return &Highlighter{rules: rules}
}

// NewDefault returns a Highlighter over DefaultRules.
func NewDefault() *Highlighter {
	rules, err := NewRuleTable(DefaultRules())
	if err != nil {
		panic(err)
	}
	return New(rules)
}

func (h *Highlighter) Rules() *RuleTable {
	return h.rules
}

// Scan highlights a single line given its entering state. Rule spans come
// first and comment spans last, so comments paint over everything else.
func (h *Highlighter) Scan(text string, entering State) (State, []Span) {
	spans := h.rules.ScanLine(text)
	exit, comments := ScanComments(text, entering)
	return exit, append(spans, comments...)
}

// EnteringState is the exit state of the previous line, or Normal for the
// first line.
func (h *Highlighter) EnteringState(lines Lines, i int) State {
	if i <= 0 {
		return Normal
	}
	if s := lines.LineState(i - 1); s == InBlockComment {
		return s
	}
	return Normal
}

// RescanLine recomputes line i, stores its spans and exit state, and reports
// whether the exit state differs from the one previously recorded.
func (h *Highlighter) RescanLine(lines Lines, i int) (State, bool) {
	prev := lines.LineState(i)
	exit, spans := h.Scan(lines.LineText(i), h.EnteringState(lines, i))
	lines.SetLineSpans(i, spans)
	lines.SetLineState(i, exit)
	return exit, exit != prev
}

// OnLineChanged rescans line i and keeps going down the document for as long
// as exit states keep changing. It returns the last line rescanned, so the
// caller repaints [i, last]. An index outside the document is ignored and
// i-1 is returned.
func (h *Highlighter) OnLineChanged(lines Lines, i int) int {
	n := lines.LineCount()
	if i < 0 || i >= n {
		return i - 1
	}
	last := i
	for {
		_, changed := h.RescanLine(lines, last)
		if !changed || last+1 >= n {
			break
		}
		last++
	}
	if last > i {
		logger.Debug("highlight cascade", "from", i, "to", last)
	}
	return last
}

// Rehighlight scans the whole document from the top.
func (h *Highlighter) Rehighlight(lines Lines) {
	for i, n := 0, lines.LineCount(); i < n; i++ {
		h.RescanLine(lines, i)
	}
}
