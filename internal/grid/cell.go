package grid

// HlNone marks a cell with no highlight id; it resolves to the default
// attributes.
const HlNone = -1

// Cell is a single character cell of a grid: a short display string
// (typically one grapheme cluster) and a highlight id.
type Cell struct {
	Text string
	HlID int
}

// BlankCell returns the default cell: a space with no highlight.
func BlankCell() Cell {
	return Cell{Text: " ", HlID: HlNone}
}

// IsBlank returns true if the cell is a space with no highlight.
func (c Cell) IsBlank() bool {
	return c.Text == " " && c.HlID == HlNone
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Text == other.Text && c.HlID == other.HlID
}
