package grid

import (
	"testing"

	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/highlight"
)

func newTestApplier() (*Applier, *Registry, *highlight.AttrMap, *Coordinator) {
	reg := NewRegistry(10, 5, nil)
	attrs := highlight.NewAttrMap()
	flush := NewCoordinator()
	return NewApplier(reg, attrs, flush, nil), reg, attrs, flush
}

func TestApplyRoutesToGrid(t *testing.T) {
	a, reg, _, _ := newTestApplier()

	a.Apply(event.GridResize{Grid: 1, Width: 6, Height: 3})
	a.Apply(event.GridLine{Grid: 1, Row: 0, ColStart: 0, Runs: []event.Run{
		{Text: "h", HlID: 2, HlSet: true}, {Text: "i"},
	}})
	a.Apply(event.CursorGoto{Grid: 1, Row: 0, Col: 2})

	g, ok := reg.Get(1)
	if !ok {
		t.Fatal("grid 1 should have been created")
	}
	if w, h := g.Size(); w != 6 || h != 3 {
		t.Errorf("grid size %dx%d, want 6x3", w, h)
	}
	if got := g.Cell(0, 1); got.Text != "i" || got.HlID != 2 {
		t.Errorf("cell (0,1) = %+v", got)
	}
	if p := g.Cursor(); p.Col != 2 || p.Row != 0 {
		t.Errorf("cursor = %+v", p)
	}
}

func TestApplyFlushScenario(t *testing.T) {
	a, reg, attrs, _ := newTestApplier()

	g := reg.GetOrCreate(1)
	sub := &recordingSub{}
	g.Subscribe(sub)

	a.Apply(event.HlAttrDefine{ID: 3, Def: func() highlight.Def {
		d := highlight.EmptyDef()
		d.Foreground = 0xFF0000
		d.Bold = true
		return d
	}()})
	a.Apply(event.GridLine{Grid: 1, Row: 0, Runs: []event.Run{
		{Text: "X", HlID: 3, HlSet: true, Repeat: 2}, {Text: "Y"},
	}})

	if sub.calls != 0 {
		t.Fatal("renderer notified before flush")
	}

	a.Apply(event.Flush{})

	if sub.calls != 1 {
		t.Fatalf("expected 1 notification after flush, got %d", sub.calls)
	}
	want := []Cell{{Text: "X", HlID: 3}, {Text: "X", HlID: 3}, {Text: "Y", HlID: 3}}
	for x, w := range want {
		if got := g.Cell(0, x); !got.Equals(w) {
			t.Errorf("cell (0,%d) = %+v, want %+v", x, got, w)
		}
	}
	resolved := attrs.Resolve(3)
	if !resolved.Attributes.Has(highlight.AttrBold) {
		t.Error("resolved attribute lost bold")
	}
}

func TestApplyScrollViolationDropped(t *testing.T) {
	a, reg, _, flush := newTestApplier()
	g := reg.GetOrCreate(1)
	fillRow(g, 0, "abcdefghij")

	a.Apply(event.GridScroll{Grid: 1, Top: 0, Bot: 5, Left: 0, Right: 10, Rows: 1, Cols: 2})

	if got := rowText(g, 0); got != "abcdefghij" {
		t.Errorf("violating scroll must not mutate the grid, row 0 = %q", got)
	}
	if flush.Pending() != 0 {
		t.Error("dropped event must not dirty the grid")
	}
}

func TestApplyDefaultColors(t *testing.T) {
	a, _, attrs, flush := newTestApplier()

	a.Apply(event.DefaultColorsSet{Foreground: 0x112233, Background: 0x000000, Special: highlight.ColorUnset})

	attr := attrs.Resolve(99)
	if !attr.Foreground.Equals(highlight.ColorFromInt(0x112233)) {
		t.Errorf("default foreground = %s", attr.Foreground)
	}
	// Attribute-only events touch no grid.
	if flush.Pending() != 0 {
		t.Error("default_colors_set must not dirty any grid")
	}
}

func TestApplyDestroyThenReuse(t *testing.T) {
	a, reg, _, _ := newTestApplier()

	a.Apply(event.GridLine{Grid: 4, Row: 0, Runs: []event.Run{{Text: "q"}}})
	a.Apply(event.GridDestroy{Grid: 4})
	a.Apply(event.GridLine{Grid: 4, Row: 0, Runs: []event.Run{{Text: "r"}}})

	g, _ := reg.Get(4)
	if got := g.Cell(0, 0).Text; got != "r" {
		t.Errorf("cell (0,0) = %q after handle reuse, want %q", got, "r")
	}
}
