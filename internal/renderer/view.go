// Package renderer draws synchronized grids onto a tcell screen. A View
// subscribes to one grid and repaints it on every flush notification; it
// runs entirely on the UI goroutine.
package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/dshills/termvim/internal/grid"
	"github.com/dshills/termvim/internal/highlight"
)

// View renders one grid to a tcell screen.
type View struct {
	grid    *grid.Grid
	attrs   *highlight.AttrMap
	screen  tcell.Screen
	subID   uuid.UUID
	focused bool
}

// NewView creates a view and subscribes it to the grid.
func NewView(g *grid.Grid, attrs *highlight.AttrMap, screen tcell.Screen) *View {
	v := &View{
		grid:   g,
		attrs:  attrs,
		screen: screen,
	}
	v.subID = g.Subscribe(v)
	return v
}

// SetFocused controls whether this view places the hardware cursor.
func (v *View) SetFocused(focused bool) {
	v.focused = focused
}

// GridUpdated implements grid.Subscriber. It is invoked by the flush
// coordinator once per coherent frame.
func (v *View) GridUpdated(g *grid.Grid) {
	v.Draw()
}

// Draw repaints the whole grid. The terminal backend diffs against its own
// back buffer, so a full repaint costs only the changed cells.
func (v *View) Draw() {
	width, height := v.grid.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := v.grid.Cell(y, x)
			if cell.Text == "" {
				// Continuation of a wide character; the base cell
				// already covers this column.
				continue
			}
			main, comb := splitGrapheme(cell.Text)
			style := toStyle(v.attrs.Resolve(cell.HlID))
			v.screen.SetContent(x, y, main, comb, style)
		}
	}
	if v.focused {
		p := v.grid.ClampedCursor()
		v.screen.ShowCursor(p.Col, p.Row)
	}
	v.screen.Show()
}

// Close unsubscribes the view from its grid. The grid holds only the
// registration id afterwards, so a closed view is collectable.
func (v *View) Close() {
	v.grid.Unsubscribe(v.subID)
}

// splitGrapheme splits cell text into a base rune and its combining runes.
// Cell text is one grapheme cluster; anything past the first cluster is
// dropped.
func splitGrapheme(s string) (rune, []rune) {
	g := uniseg.NewGraphemes(s)
	if !g.Next() {
		return ' ', nil
	}
	runes := g.Runes()
	return runes[0], runes[1:]
}

// toStyle converts a resolved attribute to a tcell style.
func toStyle(attr highlight.Attr) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(rgb(attr.Foreground)).
		Background(rgb(attr.Background))
	if attr.Attributes.Has(highlight.AttrReverse) {
		st = st.Reverse(true)
	}
	if attr.Attributes.Has(highlight.AttrBold) {
		st = st.Bold(true)
	}
	if attr.Attributes.Has(highlight.AttrUnderline) {
		st = st.Underline(true)
	}
	if attr.Attributes.Has(highlight.AttrItalic) {
		st = st.Italic(true)
	}
	if attr.Attributes.Has(highlight.AttrStrikethrough) {
		st = st.StrikeThrough(true)
	}
	return st
}

func rgb(c highlight.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
