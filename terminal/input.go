package terminal

import (
	"io"
	"log"
	"time"

	"github.com/lixenwraith/termengine/terminal/keymap"
)

// escapeTimeout bounds how long the decoder waits after a lone ESC byte
// before deciding no continuation is coming and emitting a standalone
// Escape key, rather than holding it back forever waiting for a CSI/SS3
// introducer that will never arrive.
const escapeTimeout = 50 * time.Millisecond

// decoder turns bytes read from a Backend into Events. It is the only
// component that suspends: wait blocks on backend.Read when its
// internal buffer is empty, and returns immediately otherwise.
type decoder struct {
	backend Backend
	table   []keymap.Sequence

	buf    []byte
	escAt  time.Time
	hasEsc bool
}

func newDecoder(backend Backend, table []keymap.Sequence) *decoder {
	if table == nil {
		table = keymap.Default()
	}
	return &decoder{
		backend: backend,
		table:   table,
		buf:     make([]byte, 0, 256),
	}
}

// wait reads and parses one event, reading as many times as it takes to
// either resolve a complete event or notice stopCh closed. A nil Event
// with a nil error means stopCh closed with nothing pending, or that
// unparseable bytes were dropped (and logged). A non-nil error means the
// underlying stream is gone (io.EOF or a read failure).
func (d *decoder) wait(stopCh <-chan struct{}) (Event, error) {
	for {
		if len(d.buf) > 0 {
			if len(d.buf) == 1 && d.buf[0] == 0x1b {
				if !d.hasEsc {
					d.hasEsc = true
					d.escAt = time.Now()
				}
				if time.Since(d.escAt) >= escapeTimeout {
					d.buf = d.buf[:0]
					d.hasEsc = false
					return KeyEvent{Key: KeyEscape}, nil
				}
			} else {
				d.hasEsc = false
				ev, consumed := d.parse(d.buf)
				if consumed > 0 {
					if ev == nil {
						log.Printf("terminal: dropped unparseable input % x", d.buf[:consumed])
					}
					d.putBack(consumed)
					return ev, nil
				}
			}
		}

		data, err := d.read(stopCh)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			select {
			case <-stopCh:
				return nil, nil
			default:
			}
			if d.hasEsc {
				continue
			}
			return nil, io.EOF
		}
		d.buf = append(d.buf, data...)
	}
}

// read delegates to the backend, but when a lone ESC is pending it races
// the read against the escape timeout so wait can re-check the deadline
// instead of blocking indefinitely for a continuation that never comes.
func (d *decoder) read(stopCh <-chan struct{}) ([]byte, error) {
	if !d.hasEsc {
		return d.backend.Read(stopCh)
	}

	remaining := escapeTimeout - time.Since(d.escAt)
	if remaining < 0 {
		remaining = 0
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()

	bounded := make(chan struct{})
	go func() {
		select {
		case <-stopCh:
		case <-timer.C:
		}
		close(bounded)
	}()

	return d.backend.Read(bounded)
}

// putBack removes the leading consumed bytes, keeping the remainder (in
// original order) buffered for the next wait.
func (d *decoder) putBack(consumed int) {
	if consumed >= len(d.buf) {
		d.buf = d.buf[:0]
		return
	}
	copy(d.buf, d.buf[consumed:])
	d.buf = d.buf[:len(d.buf)-consumed]
}

// parse attempts, in order, the mouse parser, the keymap table, and the
// UTF-8 decoder, and returns the event produced plus how many bytes it
// consumed. (nil, 0) means the bytes so far are an incomplete sequence
// and more input is needed. (nil, n) with n > 0 means n bytes are
// genuinely unparseable and are dropped so the stream cannot wedge on
// them forever.
func (d *decoder) parse(b []byte) (Event, int) {
	if b[0] == 0x1b {
		return d.parseEscape(b)
	}

	if b[0] < 0x20 {
		return parseControl(b[0]), 1
	}
	if b[0] == 0x7f {
		return KeyEvent{Key: KeyBackspace}, 1
	}

	if n := utf8SeqLen(b[0]); n > 0 {
		if n > len(b) {
			return nil, 0
		}
		r, size := decodeRune(b)
		return InputEvent{Codepoint: r}, size
	}

	return nil, 1
}

// parseEscape handles every byte sequence starting with ESC other than
// a lone, timed-out ESC (that case is handled in wait before parse is
// ever called). maxEscapeWindow bounds how long an unrecognized
// ESC-prefixed run is held before being dropped as garbage.
const maxEscapeWindow = 32

func (d *decoder) parseEscape(b []byte) (Event, int) {
	if len(b) < 2 {
		return nil, 0
	}

	if b[1] == 0x1b {
		return KeyEvent{Key: KeyEscape, Modifiers: ModAlt}, 2
	}

	if b[1] == '[' && len(b) >= 3 && b[2] == '<' {
		if len(b) < 9 {
			return nil, 0 // too little to ever be a complete mouse report yet
		}
		ev, n, status := parseSGRMouse(b)
		switch status {
		case mouseOK:
			return ev, n
		case mouseIncomplete:
			return nil, 0
		default: // mouseInvalid
			return nil, 3 // drop the ESC [ < introducer, resync from there
		}
	}

	if b[1] == '[' || b[1] == 'O' {
		if seq, n, ok := keymap.Lookup(d.table, b); ok {
			return KeyEvent{Key: seq.Key, Modifiers: seq.Mods}, n
		}
		if len(b) < maxEscapeWindow {
			return nil, 0 // still might complete into a known sequence
		}
		return nil, 1
	}

	if b[1] < 0x20 {
		ke := parseControl(b[1])
		ke.Modifiers |= ModAlt
		return ke, 2
	}

	if b[1] >= 0x20 && b[1] < 0x7f {
		return KeyEvent{Key: KeyRune, Rune: rune(b[1]), Modifiers: ModAlt}, 2
	}

	return nil, 1
}

// parseControl maps a C0 control byte to its key event.
func parseControl(b byte) KeyEvent {
	switch b {
	case 0x00:
		return KeyEvent{Key: KeyCtrlSpace}
	case 0x01:
		return KeyEvent{Key: KeyCtrlA}
	case 0x02:
		return KeyEvent{Key: KeyCtrlB}
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}
	case 0x04:
		return KeyEvent{Key: KeyCtrlD}
	case 0x05:
		return KeyEvent{Key: KeyCtrlE}
	case 0x06:
		return KeyEvent{Key: KeyCtrlF}
	case 0x07:
		return KeyEvent{Key: KeyCtrlG}
	case 0x08:
		return KeyEvent{Key: KeyBackspace}
	case 0x09:
		return KeyEvent{Key: KeyTab}
	case 0x0a, 0x0d:
		return KeyEvent{Key: KeyEnter}
	case 0x0b:
		return KeyEvent{Key: KeyCtrlK}
	case 0x0c:
		return KeyEvent{Key: KeyCtrlL}
	case 0x0e:
		return KeyEvent{Key: KeyCtrlN}
	case 0x0f:
		return KeyEvent{Key: KeyCtrlO}
	case 0x10:
		return KeyEvent{Key: KeyCtrlP}
	case 0x11:
		return KeyEvent{Key: KeyCtrlQ}
	case 0x12:
		return KeyEvent{Key: KeyCtrlR}
	case 0x13:
		return KeyEvent{Key: KeyCtrlS}
	case 0x14:
		return KeyEvent{Key: KeyCtrlT}
	case 0x15:
		return KeyEvent{Key: KeyCtrlU}
	case 0x16:
		return KeyEvent{Key: KeyCtrlV}
	case 0x17:
		return KeyEvent{Key: KeyCtrlW}
	case 0x18:
		return KeyEvent{Key: KeyCtrlX}
	case 0x19:
		return KeyEvent{Key: KeyCtrlY}
	case 0x1a:
		return KeyEvent{Key: KeyCtrlZ}
	case 0x1b:
		return KeyEvent{Key: KeyEscape}
	case 0x1c:
		return KeyEvent{Key: KeyCtrlBackslash}
	case 0x1d:
		return KeyEvent{Key: KeyCtrlBracketRight}
	case 0x1e:
		return KeyEvent{Key: KeyCtrlCaret}
	case 0x1f:
		return KeyEvent{Key: KeyCtrlUnderscore}
	default:
		return KeyEvent{Key: KeyNone}
	}
}

// utf8SeqLen returns the expected length of the UTF-8 sequence starting
// with lead byte b, or 0 if b cannot start a valid sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// decodeRune decodes the leading UTF-8 scalar in data. Overlong
// encodings and truncated continuation bytes decode to U+FFFD,
// consuming a single byte so the stream can resynchronize.
func decodeRune(data []byte) (rune, int) {
	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var minVal rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size, minVal, r = 2, 0x80, rune(b&0x1f)
	case b&0xf0 == 0xe0:
		size, minVal, r = 3, 0x800, rune(b&0x0f)
	case b&0xf8 == 0xf0:
		size, minVal, r = 4, 0x10000, rune(b&0x07)
	default:
		return 0xFFFD, 1
	}

	if len(data) < size {
		return 0xFFFD, 1
	}
	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}
	if r < minVal || r > 0x10FFFF {
		return 0xFFFD, 1
	}
	return r, size
}

type mouseStatus int

const (
	mouseOK mouseStatus = iota
	mouseIncomplete
	mouseInvalid
)

// parseSGRMouse parses "ESC [ < Btn ; X ; Y (M|m)" per the wire
// protocol's bit table: low two bits select the button, then
// Shift/Alt/Ctrl, then motion and wheel flags. The maximum scan window
// (32 bytes) bounds how long it will wait for a terminator before
// calling the report malformed rather than merely incomplete.
func parseSGRMouse(data []byte) (Event, int, mouseStatus) {
	maxScan := len(data)
	if maxScan > 32 {
		maxScan = 32
	}

	end := 3
	for end < maxScan {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= maxScan || (data[end] != 'M' && data[end] != 'm') {
		if len(data) < 32 {
			return nil, 0, mouseIncomplete
		}
		return nil, 0, mouseInvalid
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return nil, 0, mouseInvalid
	}
	x--
	y--

	var mods Modifier
	if btn&0x04 != 0 {
		mods |= ModShift
	}
	if btn&0x08 != 0 {
		mods |= ModAlt
	}
	if btn&0x10 != 0 {
		mods |= ModCtrl
	}

	if btn&0x40 != 0 {
		delta := 1
		if btn&0x01 != 0 {
			delta = -1
		}
		return MouseWheelEvent{Delta: delta, X: x, Y: y, Modifiers: mods}, end + 1, mouseOK
	}

	button := decodeMouseButton(btn)
	isMotion := btn&0x20 != 0
	pressed := data[end] == 'M'

	if isMotion {
		if button == MouseBtnNone {
			return MouseMoveEvent{X: x, Y: y, Modifiers: mods}, end + 1, mouseOK
		}
		return MouseButtonEvent{Button: button, Pressed: true, X: x, Y: y, Modifiers: mods}, end + 1, mouseOK
	}

	return MouseButtonEvent{Button: button, Pressed: pressed, X: x, Y: y, Modifiers: mods}, end + 1, mouseOK
}

func decodeMouseButton(btn int) MouseButton {
	low := btn & 0x03
	switch {
	case btn&0x80 != 0:
		if low == 0 {
			return MouseBtnBack
		}
		return MouseBtnForward
	case low == 0:
		return MouseBtnLeft
	case low == 1:
		return MouseBtnMiddle
	case low == 2:
		return MouseBtnRight
	default:
		return MouseBtnNone
	}
}

// parseSGRParams extracts the three ';'-separated decimal fields of an
// SGR mouse report.
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
			continue
		}
		if b < '0' || b > '9' {
			return 0, 0, 0, false
		}
		val = val*10 + int(b-'0')
		if val > 9999 {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
