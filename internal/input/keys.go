package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// specialKeys maps tcell special keys to Neovim key notation.
var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "<CR>",
	tcell.KeyEscape:     "<Esc>",
	tcell.KeyTab:        "<Tab>",
	tcell.KeyBacktab:    "<S-Tab>",
	tcell.KeyBackspace:  "<BS>",
	tcell.KeyBackspace2: "<BS>",
	tcell.KeyDelete:     "<Del>",
	tcell.KeyInsert:     "<Insert>",
	tcell.KeyHome:       "<Home>",
	tcell.KeyEnd:        "<End>",
	tcell.KeyPgUp:       "<PageUp>",
	tcell.KeyPgDn:       "<PageDown>",
	tcell.KeyUp:         "<Up>",
	tcell.KeyDown:       "<Down>",
	tcell.KeyLeft:       "<Left>",
	tcell.KeyRight:      "<Right>",
	tcell.KeyF1:         "<F1>",
	tcell.KeyF2:         "<F2>",
	tcell.KeyF3:         "<F3>",
	tcell.KeyF4:         "<F4>",
	tcell.KeyF5:         "<F5>",
	tcell.KeyF6:         "<F6>",
	tcell.KeyF7:         "<F7>",
	tcell.KeyF8:         "<F8>",
	tcell.KeyF9:         "<F9>",
	tcell.KeyF10:        "<F10>",
	tcell.KeyF11:        "<F11>",
	tcell.KeyF12:        "<F12>",
}

// TranslateKey converts a tcell key event into Neovim key notation, or ""
// when the event has no Neovim equivalent.
func TranslateKey(ev *tcell.EventKey) string {
	if s, ok := specialKeys[ev.Key()]; ok {
		return s
	}

	// Control chords arrive as dedicated tcell keys below KeyRune. The
	// named keys above (Enter, Tab, Escape, Backspace) share code points
	// with Ctrl-M/I/[/H and were already handled.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return fmt.Sprintf("<C-%c>", 'a'+rune(ev.Key()-tcell.KeyCtrlA))
	}

	if ev.Key() != tcell.KeyRune {
		return ""
	}

	r := ev.Rune()
	if ev.Modifiers()&tcell.ModAlt != 0 {
		if r == '<' {
			return "<A-lt>"
		}
		return fmt.Sprintf("<A-%c>", r)
	}
	if r == '<' {
		// Literal "<" would otherwise start a notation sequence.
		return "<lt>"
	}
	return string(r)
}
