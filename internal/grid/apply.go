package grid

import (
	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/highlight"
	"github.com/dshills/termvim/internal/logging"
)

// Applier routes decoded events to the right grid and mutates it. It is
// stateless beyond what it reads from and writes to the registry, the
// attribute map, and the flush coordinator, and it runs only on the UI
// goroutine.
type Applier struct {
	grids *Registry
	attrs *highlight.AttrMap
	flush *Coordinator
	log   *logging.Logger
}

// NewApplier creates an applier over the given registry, attribute map, and
// flush coordinator.
func NewApplier(grids *Registry, attrs *highlight.AttrMap, flush *Coordinator, log *logging.Logger) *Applier {
	if log == nil {
		log = logging.Null
	}
	return &Applier{
		grids: grids,
		attrs: attrs,
		flush: flush,
		log:   log.WithComponent("apply"),
	}
}

// Apply mutates engine state for one decoded event. Geometry errors and
// unsupported parameters fail only the offending event: they are logged and
// dropped, never fatal.
func (a *Applier) Apply(ev event.Event) {
	switch ev := ev.(type) {
	case event.GridResize:
		g := a.grids.GetOrCreate(ev.Grid)
		g.Resize(ev.Width, ev.Height)
		a.flush.MarkDirty(g)

	case event.GridLine:
		g := a.grids.GetOrCreate(ev.Grid)
		g.SetLine(ev.Row, ev.ColStart, ev.Runs, ev.Wrap)
		a.flush.MarkDirty(g)

	case event.GridClear:
		g := a.grids.GetOrCreate(ev.Grid)
		g.Clear()
		a.flush.MarkDirty(g)

	case event.GridDestroy:
		g := a.grids.GetOrCreate(ev.Grid)
		g.Destroy()
		a.flush.MarkDirty(g)

	case event.GridScroll:
		g := a.grids.GetOrCreate(ev.Grid)
		if err := g.Scroll(ev.Top, ev.Bot, ev.Left, ev.Right, ev.Rows, ev.Cols); err != nil {
			a.log.Warn("dropping scroll event for grid %d: %v", ev.Grid, err)
			return
		}
		a.flush.MarkDirty(g)

	case event.CursorGoto:
		g := a.grids.GetOrCreate(ev.Grid)
		g.CursorGoto(ev.Row, ev.Col)
		a.flush.MarkDirty(g)

	case event.DefaultColorsSet:
		a.attrs.SetDefaultColors(ev.Foreground, ev.Background, ev.Special)

	case event.HlAttrDefine:
		a.attrs.Define(ev.ID, ev.Def)

	case event.Flush:
		a.flush.Flush()

	default:
		a.log.Debug("ignoring unknown event %T", ev)
	}
}
