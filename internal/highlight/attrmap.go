// Package highlight resolves Neovim highlight ids to drawable attributes.
//
// Neovim's ext_linegrid protocol defines highlights in two pieces: a session
// default (default_colors_set) and per-id overrides (hl_attr_define). An
// AttrMap stores the raw definitions and lazily resolves them into Attr
// values: any redefinition marks the cache dirty, and the next lookup
// rebuilds the whole cache before answering. Redefinitions arrive in
// infrequent bursts while lookups happen per cell per frame, so a full
// recompute on read keeps the cache trivially correct.
package highlight

// ColorUnset marks an absent color field in a raw definition.
const ColorUnset = -1

// Def is a raw highlight definition as last received from the source.
// Color fields hold packed 24-bit RGB values, or ColorUnset when the
// definition does not specify them.
type Def struct {
	Foreground int
	Background int
	Special    int

	Reverse       bool
	Bold          bool
	Underline     bool
	Italic        bool
	Strikethrough bool
}

// EmptyDef returns a Def with all color fields unset.
func EmptyDef() Def {
	return Def{Foreground: ColorUnset, Background: ColorUnset, Special: ColorUnset}
}

// merge returns d with unset color fields filled from fallback.
// Boolean style fields are not merged: a definition's styles stand alone.
func (d Def) merge(fallback Def) Def {
	if d.Foreground == ColorUnset {
		d.Foreground = fallback.Foreground
	}
	if d.Background == ColorUnset {
		d.Background = fallback.Background
	}
	if d.Special == ColorUnset {
		d.Special = fallback.Special
	}
	return d
}

// resolve converts a raw definition into a drawable attribute.
// Absent foreground defaults to white, absent background to black.
func (d Def) resolve() Attr {
	fg, bg, sp := d.Foreground, d.Background, d.Special
	if fg == ColorUnset {
		fg = ColorWhite.Int()
	}
	if bg == ColorUnset {
		bg = ColorBlack.Int()
	}
	if sp == ColorUnset {
		sp = fg
	}

	var attrs Attribute
	if d.Reverse {
		attrs |= AttrReverse
	}
	if d.Bold {
		attrs |= AttrBold
	}
	if d.Underline {
		attrs |= AttrUnderline
	}
	if d.Italic {
		attrs |= AttrItalic
	}
	if d.Strikethrough {
		attrs |= AttrStrikethrough
	}

	return Attr{
		Foreground: ColorFromInt(fg),
		Background: ColorFromInt(bg),
		Special:    ColorFromInt(sp),
		Attributes: attrs,
	}
}

// AttrMap maps highlight ids to resolved attributes.
//
// AttrMap is not safe for concurrent use; the UI goroutine owns it.
type AttrMap struct {
	defaults    Def
	defs        map[int]Def
	cache       map[int]Attr
	defaultAttr Attr
	dirty       bool
}

// NewAttrMap creates an empty attribute map.
func NewAttrMap() *AttrMap {
	m := &AttrMap{
		defaults: EmptyDef(),
		defs:     make(map[int]Def),
		cache:    make(map[int]Attr),
	}
	m.defaultAttr = m.defaults.resolve()
	return m
}

// SetDefaultColors replaces the session default colors and marks the
// resolved cache dirty. Arguments are packed 24-bit RGB values; pass
// ColorUnset to leave a channel at its built-in default.
func (m *AttrMap) SetDefaultColors(fg, bg, special int) {
	m.defaults.Foreground = fg
	m.defaults.Background = bg
	m.defaults.Special = special
	m.dirty = true
}

// Define stores or overwrites the raw definition for id and marks the
// resolved cache dirty. Id 0 is an ordinary id like any other.
func (m *AttrMap) Define(id int, def Def) {
	m.defs[id] = def
	m.dirty = true
}

// Resolve returns the resolved attribute for id. A negative id, or an id
// with no definition, resolves to the default attribute. If the cache is
// dirty it is rebuilt in full before the lookup.
func (m *AttrMap) Resolve(id int) Attr {
	if m.dirty {
		m.refresh()
	}
	if id < 0 {
		return m.defaultAttr
	}
	if attr, ok := m.cache[id]; ok {
		return attr
	}
	return m.defaultAttr
}

// Default returns the resolved default attribute.
func (m *AttrMap) Default() Attr {
	if m.dirty {
		m.refresh()
	}
	return m.defaultAttr
}

// refresh rebuilds the resolved cache from the raw definitions. Defined
// fields win; fields a definition omits fall back to the defaults,
// field by field.
func (m *AttrMap) refresh() {
	m.defaultAttr = m.defaults.resolve()
	m.cache = make(map[int]Attr, len(m.defs))
	for id, def := range m.defs {
		m.cache[id] = def.merge(m.defaults).resolve()
	}
	m.dirty = false
}
