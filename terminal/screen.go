package terminal

import (
	"bufio"

	"github.com/mattn/go-runewidth"
)

// cursorShadow is the renderer's belief about the real terminal cursor:
// its position plus the graphic-rendition state currently in effect.
// It starts at the origin with default colors and no style, is advanced
// only by Screen.Update and its helpers, and is reset by Screen.SetSize.
type cursorShadow struct {
	x, y   int
	fg, bg Color
	style  Style
}

func newCursorShadow() cursorShadow {
	return cursorShadow{fg: ColorDefault, bg: ColorDefault, style: StyleNone}
}

// backendWriter adapts a Backend to io.Writer so it can sit behind a
// bufio.Writer.
type backendWriter struct{ backend Backend }

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.backend.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Screen owns the back and front buffers, the cursor shadow, and the
// output byte buffer that batches one update's escape sequences into a
// single write.
type Screen struct {
	back  *ScreenBuffer
	front *ScreenBuffer

	colorMode ColorMode
	out       backendWriter
	w         *bufio.Writer
	cursor    cursorShadow
}

// NewScreen constructs a renderer writing to backend. Call SetSize
// before the first Update; until then both buffers are empty.
func NewScreen(backend Backend, colorMode ColorMode) *Screen {
	out := backendWriter{backend}
	return &Screen{
		back:      NewScreenBuffer(0, 0),
		front:     NewScreenBuffer(0, 0),
		colorMode: colorMode,
		out:       out,
		w:         bufio.NewWriterSize(out, 4096),
		cursor:    newCursorShadow(),
	}
}

// SetSize resizes both buffers, preserving overlapping content, and
// reserves output buffer capacity proportional to the new cell count so
// a full-screen redraw rarely needs to grow the buffer mid-write.
func (s *Screen) SetSize(width, height int) {
	s.back.Resize(width, height)
	s.front.Resize(width, height)
	s.w.Flush()
	s.w = bufio.NewWriterSize(s.out, max(4096, 4*width*height))
	s.cursor = newCursorShadow()
}

// Print writes text into the back buffer starting at (x, y), advancing
// by each rune's display width and stopping at the right edge.
// Zero-width (control) runes are rendered as a single blank cell; a
// double-width rune's second column is written as a width-0
// continuation cell the renderer never draws on its own.
func (s *Screen) Print(x, y int, text string, fg, bg Color, style Style) {
	width := s.back.Width()
	cx := x
	for _, r := range text {
		if cx >= width {
			break
		}
		w := runewidth.RuneWidth(r)
		ch := r
		if w == 0 {
			ch, w = ' ', 1
		}
		s.back.SetCell(cx, y, ch, uint8(w), fg, bg, style)
		if w == 2 && cx+1 < width {
			s.back.SetCell(cx+1, y, ' ', 0, fg, bg, style)
		}
		cx += w
	}
}

// Clear fills every cell of the back buffer with a blank glyph in the
// given colors. The terminal itself is not touched until Update.
func (s *Screen) Clear(fg, bg Color) {
	w, h := s.back.Width(), s.back.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.back.SetCell(x, y, ' ', 1, fg, bg, StyleNone)
		}
	}
}

// SetCell forwards directly to the back buffer.
func (s *Screen) SetCell(x, y int, ch rune, width uint8, fg, bg Color, style Style) {
	s.back.SetCell(x, y, ch, width, fg, bg, style)
}

// Width and Height report the renderer's current dimensions.
func (s *Screen) Width() int  { return s.back.Width() }
func (s *Screen) Height() int { return s.back.Height() }

// Update is the diff engine: it walks every cell, and for each that
// differs from front, emits the minimal cursor motion, color, and style
// changes plus the glyph itself, then copies back into front. If
// nothing changed, no character-producing bytes are written, but the
// output buffer is still flushed so that any cursor motion queued by
// other calls lands.
func (s *Screen) Update() {
	width, height := s.back.Width(), s.back.Height()
	if width == 0 || height == 0 {
		return
	}

	start := s.cursor
	dirty := false

	for y := 0; y < height; y++ {
		x := 0
		for x < width {
			bk := s.back.Cell(x, y)
			fr := s.front.Cell(x, y)
			if bk.Equal(fr) {
				x += max(1, int(bk.Width))
				continue
			}
			dirty = true
			s.emitCell(x, y, bk)
			x += max(1, int(bk.Width))
		}
	}

	if dirty {
		s.moveCursor(start.x, start.y)
	}
	s.w.Flush()
	if dirty {
		s.front.CopyFrom(s.back)
	}
}

// emitCell writes the bytes needed to make the terminal cell at (x, y)
// match bk, then advances the cursor shadow by the glyph's width.
func (s *Screen) emitCell(x, y int, bk Cell) {
	s.moveCursor(x, y)

	if bk.Fg != s.cursor.fg {
		writeFgColor(s.w, bk.Fg, s.colorMode)
		s.cursor.fg = bk.Fg
	}
	if bk.Bg != s.cursor.bg {
		writeBgColor(s.w, bk.Bg, s.colorMode)
		s.cursor.bg = bk.Bg
	}
	if bk.Style != s.cursor.style {
		s.writeStyleChange(bk.Style)
		s.cursor.style = bk.Style
	}

	width := int(bk.Width)
	if width == 0 {
		width = 1
	}
	if bk.Ch < 0x20 || (width == 2 && x+2 > s.back.Width()) {
		s.w.WriteByte(' ')
	} else if bk.Ch < 0x80 {
		s.w.WriteByte(byte(bk.Ch))
	} else {
		s.w.WriteRune(bk.Ch)
	}

	s.cursor.x += width
	s.cursor.y = y
}

// moveCursor emits the shortest of absolute positioning, horizontal-only
// relative motion, or vertical-only relative motion to reach (x, y),
// unless the shadow already claims to be there.
func (s *Screen) moveCursor(x, y int) {
	if s.cursor.x == x && s.cursor.y == y {
		return
	}

	// Absolute cost: ESC [ row ; col H
	absCost := 4 + digitLen(y+1) + digitLen(x+1)

	haveHorizontal := y == s.cursor.y && x != s.cursor.x
	haveVertical := x == s.cursor.x && y != s.cursor.y

	var relCost int
	var relN int
	var relDir byte
	switch {
	case haveHorizontal:
		relN = x - s.cursor.x
		relDir = 'C'
		if relN < 0 {
			relN, relDir = -relN, 'D'
		}
		relCost = 3 + digitLen(relN)
		if relN == 1 {
			relCost = 3
		}
	case haveVertical:
		relN = y - s.cursor.y
		relDir = 'B'
		if relN < 0 {
			relN, relDir = -relN, 'A'
		}
		relCost = 3 + digitLen(relN)
		if relN == 1 {
			relCost = 3
		}
	}

	if (haveHorizontal || haveVertical) && relCost < absCost {
		writeCursorRelative(s.w, relN, relDir)
	} else {
		writeCursorPos(s.w, x, y)
	}
	s.cursor.x, s.cursor.y = x, y
}

// writeStyleChange emits a minimal SGR sequence moving the terminal's
// style from s.cursor.style to next: a set code for each bit newly on,
// a clear code for each bit newly off.
func (s *Screen) writeStyleChange(next Style) {
	prev := s.cursor.style
	turnedOn := next &^ prev
	turnedOff := prev &^ next

	if turnedOn == 0 && turnedOff == 0 {
		return
	}

	s.w.Write(csi)
	first := true
	emit := func(code string) {
		if !first {
			s.w.WriteByte(';')
		}
		s.w.WriteString(code)
		first = false
	}

	if turnedOff&(StyleBold|StyleDim) != 0 {
		emit("22")
	}
	if turnedOff&StyleItalic != 0 {
		emit("23")
	}
	if turnedOff&StyleUnderline != 0 {
		emit("24")
	}
	if turnedOff&StyleOverstrike != 0 {
		emit("29")
	}
	if turnedOn&StyleBold != 0 {
		emit("1")
	}
	if turnedOn&StyleDim != 0 {
		emit("2")
	}
	if turnedOn&StyleItalic != 0 {
		emit("3")
	}
	if turnedOn&StyleUnderline != 0 {
		emit("4")
	}
	if turnedOn&StyleOverstrike != 0 {
		emit("9")
	}
	s.w.WriteByte('m')
}
