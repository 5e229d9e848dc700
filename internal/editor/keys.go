package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key event the way keymap entries spell it.
func keyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyHome:
			return "ctrl+home"
		case tcell.KeyEnd:
			return "ctrl+end"
		case tcell.KeyLeft:
			return "ctrl+left"
		case tcell.KeyRight:
			return "ctrl+right"
		}
	}
	// Named keys first: Enter, Tab and Backspace share codes with ctrl+m,
	// ctrl+i and ctrl+h.
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if mods&tcell.ModCtrl != 0 {
			return "ctrl+" + string(unicode.ToLower(r))
		}
		if mods&tcell.ModAlt != 0 {
			return "alt+" + string(r)
		}
		if r == ' ' {
			return "space"
		}
		return string(r)
	case tcell.KeyTab:
		if mods&tcell.ModShift != 0 {
			return "shift+tab"
		}
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyDelete:
		return "del"
	}
	return ctrlKeyName(ev.Key())
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}
