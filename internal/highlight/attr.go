package highlight

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrReverse       Attribute = 1 << iota // Reverse video (swap fg/bg)
	AttrBold                                // Bold text
	AttrUnderline                           // Underlined text
	AttrItalic                              // Italic text
	AttrStrikethrough                       // Strikethrough text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Attr is a fully resolved visual attribute: the colors and style bits a
// renderer needs to draw one cell.
type Attr struct {
	Foreground Color
	Background Color
	Special    Color
	Attributes Attribute
}

// Equals returns true if two attrs are identical.
func (a Attr) Equals(other Attr) bool {
	return a.Foreground.Equals(other.Foreground) &&
		a.Background.Equals(other.Background) &&
		a.Special.Equals(other.Special) &&
		a.Attributes == other.Attributes
}

// Invert returns an attr with foreground and background swapped.
func (a Attr) Invert() Attr {
	a.Foreground, a.Background = a.Background, a.Foreground
	return a
}
