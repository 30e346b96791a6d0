package terminal

// Cell is one addressable grid position: a code point, its display
// width, foreground and background color, and a style bitmask.
//
// Invariant: in a row, a width-2 cell is always followed by a width-0
// continuation cell that the renderer must not draw itself (the
// continuation cell exists only so column arithmetic stays regular).
type Cell struct {
	Ch    rune
	Width uint8
	Fg    Color
	Bg    Color
	Style Style
}

// emptyCell is the default value a cleared or newly grown ScreenBuffer
// position holds: no glyph, default colors, no style.
var emptyCell = Cell{Ch: 0, Width: 1, Fg: ColorDefault, Bg: ColorDefault, Style: StyleNone}

// Equal reports whether two cells are identical in every field: glyph,
// width, foreground, background, and style.
func (c Cell) Equal(other Cell) bool {
	return c.Ch == other.Ch && c.Width == other.Width &&
		c.Fg == other.Fg && c.Bg == other.Bg && c.Style == other.Style
}
