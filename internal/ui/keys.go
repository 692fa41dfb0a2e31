package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// keyString names a key the way keymaps spell it.
func keyString(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(r)
	}
	// Tab before ctrlKeyName since KeyTab == KeyCtrlI
	switch ev.Key() {
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	switch ev.Key() {
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
	return ""
}

// ctrlKeyName maps tcell's Ctrl+letter keys to "ctrl+a" through "ctrl+z".
func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}

// KeyCodes turns a key event into the raw codes the prompt consumes: the
// UTF-8 bytes of a typed rune, or the key value itself.
func KeyCodes(ev *tcell.EventKey) []int {
	if ev.Key() != tcell.KeyRune {
		return []int{int(ev.Key())}
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ev.Rune())
	codes := make([]int, n)
	for i := range n {
		codes[i] = int(buf[i])
	}
	return codes
}
