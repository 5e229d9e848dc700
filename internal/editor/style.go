package editor

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qcode/internal/config"
	"github.com/kobzarvs/qcode/internal/highlight"
)

type styles struct {
	main          tcell.Style
	currentLine   tcell.Style
	gutter        tcell.Style
	gutterCurrent tcell.Style
	status        tcell.Style
	message       tcell.Style
	popup         tcell.Style
	popupSelected tcell.Style
	panelHeader   tcell.Style
	diagError     tcell.Style
	diagWarning   tcell.Style
	syntax        map[highlight.Category]tcell.Color
	bold          map[highlight.Category]bool
}

func newStyles(t config.Theme) styles {
	mainFg := parseColor(t.Foreground, tcell.ColorBlack)
	mainBg := parseColor(t.Background, tcell.ColorWhite)
	lineBg := parseColor(t.CurrentLineBackground, mainBg)
	gutterFg := parseColor(t.GutterForeground, tcell.ColorGray)
	gutterBg := parseColor(t.GutterBackground, mainBg)
	statusFg := parseColor(t.StatuslineForeground, tcell.ColorWhite)
	statusBg := parseColor(t.StatuslineBackground, tcell.ColorGray)
	popupFg := parseColor(t.PopupForeground, mainFg)
	popupBg := parseColor(t.PopupBackground, tcell.ColorSilver)
	selFg := parseColor(t.PopupSelectedForeground, tcell.ColorWhite)
	selBg := parseColor(t.PopupSelectedBackground, tcell.ColorNavy)

	st := styles{
		main:          tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		currentLine:   tcell.StyleDefault.Foreground(mainFg).Background(lineBg),
		gutter:        tcell.StyleDefault.Foreground(gutterFg).Background(gutterBg),
		gutterCurrent: tcell.StyleDefault.Foreground(mainFg).Background(gutterBg),
		status:        tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		message:       tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		popup:         tcell.StyleDefault.Foreground(popupFg).Background(popupBg),
		popupSelected: tcell.StyleDefault.Foreground(selFg).Background(selBg),
		panelHeader:   tcell.StyleDefault.Foreground(statusFg).Background(statusBg).Bold(true),
		diagError:     tcell.StyleDefault.Foreground(tcell.ColorRed).Background(popupBg),
		diagWarning:   tcell.StyleDefault.Foreground(tcell.ColorOlive).Background(popupBg),
		syntax:        make(map[highlight.Category]tcell.Color),
		bold:          make(map[highlight.Category]bool),
	}
	for _, cat := range highlight.Categories() {
		st.syntax[cat] = parseColor(t.SyntaxColor(cat), mainFg)
		st.bold[cat] = t.SyntaxIsBold(cat)
	}
	return st
}

// text returns the style for a rune painted with cat on top of base.
func (st styles) text(base tcell.Style, cat highlight.Category) tcell.Style {
	if cat == highlight.Default {
		return base
	}
	s := base.Foreground(st.syntax[cat])
	if st.bold[cat] {
		s = s.Bold(true)
	}
	return s
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
