package renderer

import (
	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/termvim/internal/highlight"
)

// StatusLine renders a one-row hint bar on the bottom terminal row,
// outside the area handed to Neovim.
type StatusLine struct {
	screen tcell.Screen
	attrs  *highlight.AttrMap
	text   string
}

// NewStatusLine creates a status line with the given hint text.
func NewStatusLine(screen tcell.Screen, attrs *highlight.AttrMap, text string) *StatusLine {
	return &StatusLine{
		screen: screen,
		attrs:  attrs,
		text:   text,
	}
}

// SetText replaces the hint text. The caller redraws.
func (s *StatusLine) SetText(text string) {
	s.text = text
}

// Draw paints the status row using a shaded variant of the session default
// colors so it reads as chrome, not content.
func (s *StatusLine) Draw() {
	width, height := s.screen.Size()
	if height < 2 {
		return
	}
	row := height - 1

	def := s.attrs.Default()
	style := tcell.StyleDefault.
		Foreground(rgb(def.Foreground.Darken(0.2))).
		Background(rgb(def.Background.Lighten(0.15)))

	text := runewidth.Truncate(s.text, width, "…")
	x := 0
	for _, r := range text {
		s.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, row, ' ', nil, style)
	}
	s.screen.Show()
}
