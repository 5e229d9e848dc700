// Package termout prints a highlighted document as ANSI text.
package termout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/document"
	"github.com/kobzarvs/qcode/internal/highlight"
)

// Profile maps a --color value to a termenv profile. "auto" asks the
// terminal behind w when it is a file.
func Profile(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case "", "auto":
		if f, ok := w.(*os.File); ok {
			return termenv.NewOutput(f).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	case "always":
		return termenv.TrueColor, nil
	case "never":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
}

// hexColor resolves a theme colour, which may be #RRGGBB or a tcell colour
// name, to #RRGGBB. Unknown names give "".
func hexColor(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "#") {
		return name
	}
	c := tcell.GetColor(strings.ToLower(name))
	if c == tcell.ColorDefault {
		return ""
	}
	h := c.Hex()
	if h < 0 {
		return ""
	}
	return fmt.Sprintf("#%06X", h)
}

type painter struct {
	profile termenv.Profile
	colors  map[highlight.Category]termenv.Color
	bold    map[highlight.Category]bool
}

func newPainter(theme config.Theme, p termenv.Profile) painter {
	pt := painter{
		profile: p,
		colors:  make(map[highlight.Category]termenv.Color),
		bold:    make(map[highlight.Category]bool),
	}
	for _, cat := range highlight.Categories() {
		if hex := hexColor(theme.SyntaxColor(cat)); hex != "" {
			pt.colors[cat] = p.Color(hex)
		}
		pt.bold[cat] = theme.SyntaxIsBold(cat)
	}
	return pt
}

func (pt painter) paint(text string, cat highlight.Category) string {
	if cat == highlight.Default || pt.profile == termenv.Ascii {
		return text
	}
	st := pt.profile.String(text)
	if c, ok := pt.colors[cat]; ok {
		st = st.Foreground(c)
	}
	if pt.bold[cat] {
		st = st.Bold()
	}
	return st.String()
}

// Line renders one row.
func (pt painter) line(text []rune, spans []highlight.Span) string {
	cats := highlight.Flatten(spans, len(text))
	var b strings.Builder
	for start := 0; start < len(text); {
		end := start + 1
		for end < len(text) && cats[end] == cats[start] {
			end++
		}
		b.WriteString(pt.paint(string(text[start:end]), cats[start]))
		start = end
	}
	return b.String()
}

// Write prints doc to w, one document line per output line.
func Write(w io.Writer, doc *document.Document, theme config.Theme, p termenv.Profile) error {
	bw := bufio.NewWriter(w)
	pt := newPainter(theme, p)
	for i := 0; i < doc.LineCount(); i++ {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(pt.line(doc.Line(i), doc.Spans(i))); err != nil {
			return err
		}
	}
	return bw.Flush()
}
