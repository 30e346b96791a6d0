package terminal

import (
	"testing"
	"unicode/utf8"

	"github.com/lixenwraith/termengine/terminal/keymap"
)

// queueBackend replays a fixed sequence of Read results, then blocks on
// stopCh, so decoder tests can feed exact byte chunks without a real
// terminal.
type queueBackend struct {
	chunks [][]byte
	idx    int
}

func (q *queueBackend) Init() error { return nil }
func (q *queueBackend) Fini()       {}
func (q *queueBackend) Size() (int, int) {
	return 80, 24
}
func (q *queueBackend) Write(p []byte) error { return nil }
func (q *queueBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if q.idx < len(q.chunks) {
		c := q.chunks[q.idx]
		q.idx++
		return c, nil
	}
	<-stopCh
	return nil, nil
}
func (q *queueBackend) SetResizeHandler(handler func()) {}

func waitOnce(t *testing.T, d *decoder) Event {
	t.Helper()
	stopCh := make(chan struct{})
	defer close(stopCh)
	ev, err := d.wait(stopCh)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	return ev
}

// TestDecoderScenarioPlainRune is end-to-end scenario 1.
func TestDecoderScenarioPlainRune(t *testing.T) {
	d := newDecoder(&queueBackend{chunks: [][]byte{{0x41}}}, keymap.Default())
	ev := waitOnce(t, d)
	in, ok := ev.(InputEvent)
	if !ok || in.Codepoint != 0x41 {
		t.Fatalf("got %#v, want InputEvent{0x41}", ev)
	}
}

// TestDecoderScenarioArrowKey is end-to-end scenario 2.
func TestDecoderScenarioArrowKey(t *testing.T) {
	table := []keymap.Sequence{{Bytes: []byte{0x1b, '[', 'A'}, Key: KeyUp}}
	d := newDecoder(&queueBackend{chunks: [][]byte{{0x1b, '[', 'A'}}}, table)
	ev := waitOnce(t, d)
	ke, ok := ev.(KeyEvent)
	if !ok || ke.Key != KeyUp || ke.Modifiers != ModNone {
		t.Fatalf("got %#v, want KeyEvent{KeyUp}", ev)
	}
}

// TestDecoderScenarioMouseButton is end-to-end scenario 3.
func TestDecoderScenarioMouseButton(t *testing.T) {
	chunk := []byte("\x1b[<0;10;5M")
	d := newDecoder(&queueBackend{chunks: [][]byte{chunk}}, keymap.Default())
	ev := waitOnce(t, d)
	mb, ok := ev.(MouseButtonEvent)
	if !ok || mb.Button != MouseBtnLeft || !mb.Pressed || mb.X != 9 || mb.Y != 4 || mb.Modifiers != ModNone {
		t.Fatalf("got %#v, want MouseButtonEvent{Left,true,9,4}", ev)
	}
}

// TestDecoderScenarioMouseWheel is end-to-end scenario 4.
func TestDecoderScenarioMouseWheel(t *testing.T) {
	chunk := []byte("\x1b[<64;10;5M")
	d := newDecoder(&queueBackend{chunks: [][]byte{chunk}}, keymap.Default())
	ev := waitOnce(t, d)
	mw, ok := ev.(MouseWheelEvent)
	if !ok || mw.Delta != 1 || mw.X != 9 || mw.Y != 4 {
		t.Fatalf("got %#v, want MouseWheelEvent{+1,9,4}", ev)
	}
}

// TestDecoderScenarioSnowman is end-to-end scenario 5.
func TestDecoderScenarioSnowman(t *testing.T) {
	d := newDecoder(&queueBackend{chunks: [][]byte{{0xE2, 0x98, 0x83}}}, keymap.Default())
	ev := waitOnce(t, d)
	in, ok := ev.(InputEvent)
	if !ok || in.Codepoint != 0x2603 {
		t.Fatalf("got %#v, want InputEvent{0x2603}", ev)
	}
}

// TestDecoderScenarioSplitArrowKey checks that an escape sequence
// arriving across two separate reads (ESC in one, "[A" in the next)
// still resolves to KeyUp instead of wedging on the lone leading ESC.
func TestDecoderScenarioSplitArrowKey(t *testing.T) {
	table := []keymap.Sequence{{Bytes: []byte{0x1b, '[', 'A'}, Key: KeyUp}}
	d := newDecoder(&queueBackend{chunks: [][]byte{{0x1b}, {'[', 'A'}}}, table)
	ev := waitOnce(t, d)
	ke, ok := ev.(KeyEvent)
	if !ok || ke.Key != KeyUp {
		t.Fatalf("got %#v, want KeyEvent{KeyUp}", ev)
	}
}

// TestDecoderScenarioLoneEscapeTimesOut checks that a standalone ESC
// with no continuation eventually resolves to KeyEscape rather than
// blocking forever.
func TestDecoderScenarioLoneEscapeTimesOut(t *testing.T) {
	d := newDecoder(&queueBackend{chunks: [][]byte{{0x1b}}}, keymap.Default())
	ev := waitOnce(t, d)
	ke, ok := ev.(KeyEvent)
	if !ok || ke.Key != KeyEscape {
		t.Fatalf("got %#v, want KeyEvent{KeyEscape}", ev)
	}
}

// TestDecoderByteConservation is the spec's byte-conservation property:
// bytes left unconsumed by one parse are available, in order, to the
// next wait call.
func TestDecoderByteConservation(t *testing.T) {
	// 'A' and 'B' arrive in one chunk: the first wait consumes only
	// 'A', and 'B' must still be there for the second.
	chunk := []byte{0x41, 0x42}
	d := newDecoder(&queueBackend{chunks: [][]byte{chunk}}, keymap.Default())

	first := waitOnce(t, d)
	if in, ok := first.(InputEvent); !ok || in.Codepoint != 'A' {
		t.Fatalf("first event = %#v, want 'A'", first)
	}
	second := waitOnce(t, d)
	if in, ok := second.(InputEvent); !ok || in.Codepoint != 'B' {
		t.Fatalf("second event = %#v, want 'B'", second)
	}
}

// TestUTF8RoundTrip is the spec's UTF-8 round-trip property across a
// representative spread of the Unicode range, including boundary code
// points of each encoded length.
func TestUTF8RoundTrip(t *testing.T) {
	points := []rune{
		0x00, 0x41, 0x7F,
		0x80, 0x7FF,
		0x800, 0xFFFF,
		0x10000, 0x10FFFF,
		0x2603, // snowman
	}
	for _, r := range points {
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], r)
		got, size := decodeRune(buf[:n])
		if got != r || size != n {
			t.Fatalf("round trip %U: got (%U, %d), want (%U, %d)", r, got, size, r, n)
		}
	}
}

// TestKeymapLongestMatch is the spec's keymap longest-match property.
func TestKeymapLongestMatch(t *testing.T) {
	table := []keymap.Sequence{
		{Bytes: []byte{0x1b, '[', '1', '5', '~'}, Key: KeyF5},
		{Bytes: []byte{0x1b, '[', '1'}, Key: KeyNone},
	}
	seq, n, ok := keymap.Lookup(table, []byte{0x1b, '[', '1', '5', '~', 'x'})
	if !ok || seq.Key != KeyF5 || n != 5 {
		t.Fatalf("Lookup = (%#v, %d, %v), want (F5, 5, true)", seq, n, ok)
	}
}
