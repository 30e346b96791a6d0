package terminal

import "bufio"

// Pre-allocated ANSI sequence fragments, kept as package vars rather
// than built per-call so the render path does no string formatting.
var (
	csi      = []byte("\x1b[")
	csiReset = []byte("\x1b[0m")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiHome  = []byte("\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State, used by EmergencyReset
	csiSGR0  = []byte("\x1b[0m")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// DECAWM auto-wrap. Disabling it keeps the cursor pinned at the
	// right edge instead of scrolling when the last cell is written.
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	csiFg256     = []byte("\x1b[38;5;") // followed by N m
	csiBg256     = []byte("\x1b[48;5;") // followed by N m
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;B m
	csiBgRGB     = []byte("\x1b[48;2;") // followed by R;G;B m
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")

	csiAttrBold      = []byte("\x1b[1m")
	csiAttrDim       = []byte("\x1b[2m")
	csiAttrItalic    = []byte("\x1b[3m")
	csiAttrUnderline = []byte("\x1b[4m")
	csiAttrOverstrike = []byte("\x1b[9m")

	csiAttrNoBoldDim    = []byte("\x1b[22m")
	csiAttrNoItalic     = []byte("\x1b[23m")
	csiAttrNoUnderline  = []byte("\x1b[24m")
	csiAttrNoOverstrike = []byte("\x1b[29m")

	// Mouse reporting modes; values follow the standard xterm mode
	// numbers.
	csiMouseClickOn  = []byte("\x1b[?1000h")
	csiMouseClickOff = []byte("\x1b[?1000l")
	csiMouseDragOn   = []byte("\x1b[?1002h")
	csiMouseDragOff  = []byte("\x1b[?1002l")
	csiMouseMotionOn = []byte("\x1b[?1003h")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROn    = []byte("\x1b[?1006h")
	csiMouseSGROff   = []byte("\x1b[?1006l")
)

// writeInt writes an integer without allocation. Optimized for the
// small values terminal coordinates and color components take.
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [5]byte
	i := 4
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes an absolute cursor positioning sequence from
// 0-indexed coordinates.
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward writes a relative cursor-forward sequence.
func writeCursorForward(w *bufio.Writer, n int) {
	writeCursorRelative(w, n, 'C')
}

// writeCursorRelative writes a relative cursor motion of n cells in
// direction dir ('A' up, 'B' down, 'C' forward, 'D' back). n <= 0 is a
// no-op.
func writeCursorRelative(w *bufio.Writer, n int, dir byte) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write(csi)
		w.WriteByte(dir)
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte(dir)
}

// digitLen returns the number of decimal digits n prints as (n must be
// >= 0), used to estimate escape-sequence byte cost without allocating.
func digitLen(n int) int {
	if n < 10 {
		return 1
	}
	if n < 100 {
		return 2
	}
	if n < 1000 {
		return 3
	}
	if n < 10000 {
		return 4
	}
	return 5
}

// writeFgColor emits the SGR sequence selecting c as the foreground
// color under the given color mode. ColorDefault emits the
// reset-to-default SGR; ColorUnchanged writes nothing.
func writeFgColor(w *bufio.Writer, c Color, mode ColorMode) {
	if c.IsDefault() {
		w.Write(csiDefaultFg)
		return
	}
	rgb, ok := c.RGB()
	if !ok {
		return
	}
	if mode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(rgb.R))
		w.WriteByte(';')
		writeInt(w, int(rgb.G))
		w.WriteByte(';')
		writeInt(w, int(rgb.B))
		w.WriteByte('m')
		return
	}
	w.Write(csiFg256)
	writeInt(w, int(RGBTo256(rgb)))
	w.WriteByte('m')
}

// writeBgColor is writeFgColor's background counterpart.
func writeBgColor(w *bufio.Writer, c Color, mode ColorMode) {
	if c.IsDefault() {
		w.Write(csiDefaultBg)
		return
	}
	rgb, ok := c.RGB()
	if !ok {
		return
	}
	if mode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeInt(w, int(rgb.R))
		w.WriteByte(';')
		writeInt(w, int(rgb.G))
		w.WriteByte(';')
		writeInt(w, int(rgb.B))
		w.WriteByte('m')
		return
	}
	w.Write(csiBg256)
	writeInt(w, int(RGBTo256(rgb)))
	w.WriteByte('m')
}
