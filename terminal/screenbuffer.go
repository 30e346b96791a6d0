package terminal

// ScreenBuffer is a grid of cells addressed by (x, y) with
// 0 <= x < width, 0 <= y < height. It is row-major storage; the
// renderer owns two instances (back and front) and copies between them,
// but a ScreenBuffer has no notion of "which one it is".
type ScreenBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewScreenBuffer allocates a buffer already filled with empty cells.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	b := &ScreenBuffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer's current column count.
func (b *ScreenBuffer) Width() int { return b.width }

// Height returns the buffer's current row count.
func (b *ScreenBuffer) Height() int { return b.height }

// Resize preserves overlapping content and fills any newly exposed area
// with empty default cells. Invariant: after Resize, len(cells) ==
// width*height and every row has exactly width columns.
func (b *ScreenBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	newCells := make([]Cell, width*height)
	for i := range newCells {
		newCells[i] = emptyCell
	}

	overlapW := min(width, b.width)
	overlapH := min(height, b.height)
	for y := 0; y < overlapH; y++ {
		srcStart := y * b.width
		dstStart := y * width
		copy(newCells[dstStart:dstStart+overlapW], b.cells[srcStart:srcStart+overlapW])
	}

	b.cells = newCells
	b.width = width
	b.height = height
}

// Clear resets every cell to (ch=0, fg=Default, bg=Default, style=None).
func (b *ScreenBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = emptyCell
	}
}

// inBounds reports whether (x, y) addresses a live cell.
func (b *ScreenBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the value stored at (x, y). The zero Cell is returned if
// out of bounds.
func (b *ScreenBuffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetCell writes (x, y), honouring the Unchanged sentinels for ch, fg,
// bg, and style independently. width must be 0, 1, or 2; an
// out-of-bounds position or a larger width makes the call a no-op.
//
// The glyph sentinel is ChUnchanged (not 0, which is the empty glyph);
// passing it preserves both the existing glyph and its width.
func (b *ScreenBuffer) SetCell(x, y int, ch rune, width uint8, fg, bg Color, style Style) {
	if !b.inBounds(x, y) || width > 2 {
		return
	}

	idx := y*b.width + x
	cur := b.cells[idx]

	if ch != ChUnchanged {
		cur.Ch = ch
		cur.Width = width
	}
	if !fg.IsUnchanged() {
		cur.Fg = fg
	}
	if !bg.IsUnchanged() {
		cur.Bg = bg
	}
	if style != StyleUnchanged {
		cur.Style = style.normalize()
	}

	b.cells[idx] = cur
}

// ChUnchanged is the rune sentinel meaning "preserve whatever glyph was
// already there", used by Canvas.Fill so painting a background does not
// blank existing text.
const ChUnchanged rune = -1

// CopyFrom overwrites b's contents with src's, resizing first if their
// dimensions differ.
func (b *ScreenBuffer) CopyFrom(src *ScreenBuffer) {
	if b.width != src.width || b.height != src.height {
		b.Resize(src.width, src.height)
	}
	copy(b.cells, src.cells)
}
