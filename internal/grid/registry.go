package grid

import (
	"sort"

	"github.com/dshills/termvim/internal/logging"
)

// Default dimensions for a grid created before its first resize event.
const (
	DefaultWidth  = 80
	DefaultHeight = 25
)

// Registry owns the mapping from grid handle to Grid and creates grids
// lazily on first reference. There is no removal: handles are small
// integers the remote source reissues, and dropping an entry would lose the
// subscriber state a following resize/line sequence expects to reuse.
type Registry struct {
	grids    map[int]*Grid
	width    int
	height   int
	onCreate func(*Grid)
	log      *logging.Logger
}

// NewRegistry creates a registry whose grids default to the given
// dimensions. Zero or negative dimensions fall back to 80×25.
func NewRegistry(width, height int, log *logging.Logger) *Registry {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if log == nil {
		log = logging.Null
	}
	return &Registry{
		grids:  make(map[int]*Grid),
		width:  width,
		height: height,
		log:    log,
	}
}

// SetOnCreate registers a hook invoked for every newly created grid, before
// GetOrCreate returns it. The application uses it to attach a renderer.
func (r *Registry) SetOnCreate(fn func(*Grid)) {
	r.onCreate = fn
}

// GetOrCreate returns the grid for handle, creating a default-sized one on
// first reference.
func (r *Registry) GetOrCreate(handle int) *Grid {
	if g, ok := r.grids[handle]; ok {
		return g
	}
	g := New(handle, r.width, r.height, r.log)
	r.grids[handle] = g
	r.log.Debug("created grid %d (%dx%d)", handle, r.width, r.height)
	if r.onCreate != nil {
		r.onCreate(g)
	}
	return g
}

// Get returns the grid for handle if it exists.
func (r *Registry) Get(handle int) (*Grid, bool) {
	g, ok := r.grids[handle]
	return g, ok
}

// Handles returns all known handles in ascending order.
func (r *Registry) Handles() []int {
	hs := make([]int, 0, len(r.grids))
	for h := range r.grids {
		hs = append(hs, h)
	}
	sort.Ints(hs)
	return hs
}
