// Package grid is the grid synchronization engine: per-grid cell buffers,
// cursor tracking, the registry that routes decoded events to grids, and the
// flush coordinator that tells renderers when a coherent frame is ready.
//
// All state in this package is owned by the UI goroutine. Events are applied
// at drain points between renders, so no locking is needed around the cell
// matrices; renderers only observe grid state from flush notifications.
package grid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/logging"
)

// Point is a cursor position in cell coordinates.
type Point struct {
	Col int
	Row int
}

// Subscriber receives frame-ready notifications for a grid. Subscribers
// unsubscribe explicitly on teardown; the grid never keeps one alive beyond
// that.
type Subscriber interface {
	GridUpdated(g *Grid)
}

// Grid is one rectangular character buffer representing a remote screen or
// window, identified by an integer handle the remote source may reuse.
type Grid struct {
	handle int
	width  int
	height int
	cells  [][]Cell
	cursor Point
	subs   map[uuid.UUID]Subscriber
	log    *logging.Logger
}

// New creates a grid of the given dimensions filled with blank cells.
func New(handle, width, height int, log *logging.Logger) *Grid {
	if log == nil {
		log = logging.Null
	}
	g := &Grid{
		handle: handle,
		subs:   make(map[uuid.UUID]Subscriber),
		log:    log.WithField("grid", handle),
	}
	g.Resize(width, height)
	return g
}

// Handle returns the grid's protocol handle.
func (g *Grid) Handle() int {
	return g.handle
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Cell returns the cell at (row, col), or a blank cell when the position is
// outside the grid.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return BlankCell()
	}
	return g.cells[row][col]
}

// Cursor returns the raw cursor position. The remote source does not
// guarantee it is inside current bounds after a resize.
func (g *Grid) Cursor() Point {
	return g.cursor
}

// ClampedCursor returns the cursor position clamped into the grid, for
// drawing.
func (g *Grid) ClampedCursor() Point {
	if g.width == 0 || g.height == 0 {
		return Point{}
	}
	p := g.cursor
	p.Col = clamp(p.Col, 0, g.width-1)
	p.Row = clamp(p.Row, 0, g.height-1)
	return p
}

// Resize atomically replaces the cell matrix with a blank width×height
// matrix. Content is not preserved: the remote source repaints everything
// visible with following line events.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = BlankCell()
		}
		cells[y] = row
	}
	g.width = width
	g.height = height
	g.cells = cells
}

// SetLine writes a sequence of runs into one row starting at colStart.
// A run that omits its highlight id inherits the most recently specified id
// earlier in the same call. When wrap is set and the runs exactly fill the
// row, the remaining runs continue on the next row at column 0; the spill
// happens at most once per call and only at the exact row boundary. Writes
// outside the grid are dropped: resize and line events can race across
// message boundaries during rapid resizing, so a transient out-of-range
// write is not an error.
func (g *Grid) SetLine(row, colStart int, runs []event.Run, wrap bool) {
	y := row
	if y < 0 || y >= g.height {
		g.log.Debug("dropping line for out-of-range row %d (height %d)", row, g.height)
		return
	}

	x := colStart
	hl := HlNone
	wrapped := false
	dropped := 0

	for _, run := range runs {
		if wrap && !wrapped && x == g.width && y+1 < g.height {
			y++
			x = 0
			wrapped = true
		}
		if run.HlSet {
			hl = run.HlID
		}
		repeat := run.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		cell := Cell{Text: run.Text, HlID: hl}
		for i := 0; i < repeat; i++ {
			if x >= 0 && x < g.width {
				g.cells[y][x] = cell
			} else {
				dropped++
			}
			x++
		}
	}

	if dropped > 0 {
		g.log.Debug("dropped %d out-of-range cell writes on row %d", dropped, row)
	}
}

// Clear resets every cell to blank.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = BlankCell()
		}
	}
}

// Scroll shifts the sub-rectangle [top,bot) × [left,right) by rows: positive
// rows move content up (source row r+rows copies into row r). Rows whose
// source lies outside the rectangle are left untouched; the remote source
// overwrites them with following line events. Iteration order guarantees
// every source row is read before it is overwritten. A nonzero cols is a
// protocol violation for the supported subset and fails the event.
func (g *Grid) Scroll(top, bot, left, right, rows, cols int) error {
	if cols != 0 {
		return fmt.Errorf("column scroll unsupported: cols=%d", cols)
	}

	top = clamp(top, 0, g.height)
	bot = clamp(bot, 0, g.height)
	left = clamp(left, 0, g.width)
	right = clamp(right, 0, g.width)
	if top >= bot || left >= right || rows == 0 {
		return nil
	}

	if rows > 0 {
		for dst := top; dst < bot; dst++ {
			src := dst + rows
			if src >= bot {
				break
			}
			copy(g.cells[dst][left:right], g.cells[src][left:right])
		}
	} else {
		for dst := bot - 1; dst >= top; dst-- {
			src := dst + rows
			if src < top {
				break
			}
			copy(g.cells[dst][left:right], g.cells[src][left:right])
		}
	}
	return nil
}

// CursorGoto overwrites the cursor position without bounds validation.
func (g *Grid) CursorGoto(row, col int) {
	g.cursor = Point{Col: col, Row: row}
}

// Destroy clears the grid's content. The handle stays valid: the remote
// source reuses small handles, and a following resize/line sequence expects
// the subscriber set to survive.
func (g *Grid) Destroy() {
	g.Clear()
}

// Subscribe registers a renderer and returns its registration id.
func (g *Grid) Subscribe(s Subscriber) uuid.UUID {
	id := uuid.New()
	g.subs[id] = s
	return id
}

// Unsubscribe removes a renderer registration. Unknown ids are ignored.
func (g *Grid) Unsubscribe(id uuid.UUID) {
	delete(g.subs, id)
}

// Subscribers returns the number of registered subscribers.
func (g *Grid) Subscribers() int {
	return len(g.subs)
}

// notify delivers a frame-ready notification to every subscriber.
func (g *Grid) notify() {
	for _, s := range g.subs {
		s.GridUpdated(g)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
