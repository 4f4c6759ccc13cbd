package grid

// Coordinator accumulates the grids touched since the last flush and, on a
// flush event, notifies each exactly once. Flush is the only point at which
// mutation becomes visible to renderers, so a half-applied frame (a resize
// whose repaint has not arrived yet) is never observed.
type Coordinator struct {
	pending map[*Grid]struct{}
}

// NewCoordinator creates an empty flush coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{pending: make(map[*Grid]struct{})}
}

// MarkDirty adds a grid to the pending set. Idempotent.
func (c *Coordinator) MarkDirty(g *Grid) {
	c.pending[g] = struct{}{}
}

// Pending returns the number of grids awaiting notification.
func (c *Coordinator) Pending() int {
	return len(c.pending)
}

// Flush notifies every pending grid's subscribers exactly once, in
// unspecified order, then clears the pending set. A grid with no mutating
// events since the last flush is not notified again. Returns the number of
// grids notified.
func (c *Coordinator) Flush() int {
	n := len(c.pending)
	for g := range c.pending {
		g.notify()
	}
	clear(c.pending)
	return n
}
