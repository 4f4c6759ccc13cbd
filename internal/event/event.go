// Package event defines the decoded screen-update events exchanged between
// the Neovim I/O goroutine and the UI goroutine, and the bounded FIFO queue
// that hands them over.
package event

import "github.com/dshills/termvim/internal/highlight"

// Event is a decoded screen-update event. The concrete types below are the
// only implementations.
type Event interface {
	event()
}

// Run is one contiguous span within a GridLine event. HlID and Repeat may be
// omitted on the wire; HlSet distinguishes "id 0" from "no id given", and a
// zero Repeat means the default of one cell. An omitted id carries over from
// the previous run in the same event.
type Run struct {
	Text   string
	HlID   int
	HlSet  bool
	Repeat int
}

// GridResize replaces a grid's dimensions.
type GridResize struct {
	Grid   int
	Width  int
	Height int
}

// GridLine replaces part of one row of a grid.
type GridLine struct {
	Grid     int
	Row      int
	ColStart int
	Runs     []Run
	Wrap     bool
}

// GridClear resets every cell of a grid to blank.
type GridClear struct {
	Grid int
}

// GridDestroy marks a grid as gone; its handle may be reused.
type GridDestroy struct {
	Grid int
}

// GridScroll shifts a sub-rectangle of a grid by whole rows.
type GridScroll struct {
	Grid  int
	Top   int
	Bot   int
	Left  int
	Right int
	Rows  int
	Cols  int
}

// CursorGoto moves a grid's cursor.
type CursorGoto struct {
	Grid int
	Row  int
	Col  int
}

// DefaultColorsSet replaces the session default colors.
type DefaultColorsSet struct {
	Foreground int
	Background int
	Special    int
}

// HlAttrDefine stores a highlight definition.
type HlAttrDefine struct {
	ID  int
	Def highlight.Def
}

// Flush marks the end of a coherent batch of updates; renderers may redraw.
type Flush struct{}

func (GridResize) event()       {}
func (GridLine) event()         {}
func (GridClear) event()        {}
func (GridDestroy) event()      {}
func (GridScroll) event()       {}
func (CursorGoto) event()       {}
func (DefaultColorsSet) event() {}
func (HlAttrDefine) event()     {}
func (Flush) event()            {}
