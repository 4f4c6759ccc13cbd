package renderer

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/grid"
	"github.com/dshills/termvim/internal/highlight"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func cellRune(t *testing.T, s tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestViewDrawsGridContent(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	attrs := highlight.NewAttrMap()
	g := grid.New(1, 10, 5, nil)
	v := NewView(g, attrs, s)
	defer v.Close()

	g.SetLine(0, 0, []event.Run{
		{Text: "h"}, {Text: "i"}, {Text: "!"},
	}, false)

	v.GridUpdated(g)

	want := "hi!"
	for x, r := range want {
		if got := cellRune(t, s, x, 0); got != r {
			t.Errorf("screen cell (%d,0) = %q, want %q", x, got, r)
		}
	}
}

func TestViewAppliesResolvedStyle(t *testing.T) {
	s := newSimScreen(t, 5, 2)
	attrs := highlight.NewAttrMap()
	def := highlight.EmptyDef()
	def.Foreground = 0xFF0000
	def.Bold = true
	attrs.Define(3, def)

	g := grid.New(1, 5, 2, nil)
	v := NewView(g, attrs, s)
	defer v.Close()

	g.SetLine(0, 0, []event.Run{{Text: "X", HlID: 3, HlSet: true}}, false)
	v.GridUpdated(g)

	cells, w, _ := s.GetContents()
	fg, _, attr := cells[0*w+0].Style.Decompose()
	if attr&tcell.AttrBold == 0 {
		t.Error("bold attribute not applied")
	}
	if fg != tcell.NewRGBColor(0xFF, 0, 0) {
		t.Errorf("foreground = %v", fg)
	}
}

func TestViewPlacesClampedCursorWhenFocused(t *testing.T) {
	s := newSimScreen(t, 4, 4)
	attrs := highlight.NewAttrMap()
	g := grid.New(1, 4, 4, nil)
	v := NewView(g, attrs, s)
	defer v.Close()
	v.SetFocused(true)

	g.CursorGoto(99, 99) // out of range until the repaint lands
	v.GridUpdated(g)

	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatal("cursor should be visible on the focused view")
	}
	if x != 3 || y != 3 {
		t.Errorf("cursor at (%d,%d), want clamped (3,3)", x, y)
	}
}

func TestViewSkipsContinuationCells(t *testing.T) {
	s := newSimScreen(t, 4, 1)
	attrs := highlight.NewAttrMap()
	g := grid.New(1, 4, 1, nil)
	v := NewView(g, attrs, s)
	defer v.Close()

	// Wide character followed by its empty continuation cell, the way
	// the remote source sends CJK text.
	g.SetLine(0, 0, []event.Run{{Text: "漢"}, {Text: ""}, {Text: "a"}}, false)
	v.GridUpdated(g)

	if got := cellRune(t, s, 0, 0); got != '漢' {
		t.Errorf("cell (0,0) = %q", got)
	}
	if got := cellRune(t, s, 2, 0); got != 'a' {
		t.Errorf("cell (2,0) = %q", got)
	}
}

func TestStatusLineFillsBottomRow(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	attrs := highlight.NewAttrMap()
	sl := NewStatusLine(s, attrs, "termvim  Ctrl-Q quit")

	sl.Draw()

	if got := cellRune(t, s, 0, 4); got != 't' {
		t.Errorf("status row starts with %q", got)
	}
	// Rows above the status line stay untouched.
	if got := cellRune(t, s, 0, 3); got != ' ' {
		t.Errorf("row above status = %q", got)
	}
}
