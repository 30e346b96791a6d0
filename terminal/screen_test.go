package terminal

import (
	"bytes"
	"testing"
)

func flatWrites(fb *fakeBackend) []byte {
	var buf bytes.Buffer
	for _, w := range fb.writes {
		buf.Write(w)
	}
	return buf.Bytes()
}

// TestScreenUpdatePostCondition is the spec's post-condition property:
// after update, front equals back everywhere.
func TestScreenUpdatePostCondition(t *testing.T) {
	fb := &fakeBackend{width: 5, height: 3}
	s := NewScreen(fb, ColorModeTrueColor)
	s.SetSize(5, 3)

	red := ColorFromRGB(RGB{255, 0, 0})
	s.Print(0, 0, "Hi", red, ColorDefault, StyleBold)
	s.SetCell(2, 2, 'z', 1, ColorDefault, ColorDefault, StyleNone)
	s.Update()

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if !s.back.Cell(x, y).Equal(s.front.Cell(x, y)) {
				t.Fatalf("front/back diverge at (%d,%d): back=%+v front=%+v", x, y, s.back.Cell(x, y), s.front.Cell(x, y))
			}
		}
	}
}

// TestScreenUpdateMinimality is the spec's minimality property: once
// back and front agree, a further update writes no bytes.
func TestScreenUpdateMinimality(t *testing.T) {
	fb := &fakeBackend{width: 3, height: 1}
	s := NewScreen(fb, ColorModeTrueColor)
	s.SetSize(3, 1)

	s.Print(0, 0, "Hi", ColorFromRGB(RGB{255, 0, 0}), ColorDefault, StyleBold)
	s.Update()

	before := len(fb.writes)
	s.Update()
	if len(fb.writes) != before {
		t.Fatalf("second update on unchanged buffer produced %d new writes", len(fb.writes)-before)
	}
}

// TestScreenUpdateScenarioPrintHi is end-to-end scenario 6: printing
// "Hi" in red/bold onto an empty 3x1 screen emits exactly one
// foreground set, one style set, and the two glyph bytes; no other
// cell changes.
func TestScreenUpdateScenarioPrintHi(t *testing.T) {
	fb := &fakeBackend{width: 3, height: 1}
	s := NewScreen(fb, ColorModeTrueColor)
	s.SetSize(3, 1)

	red := ColorFromRGB(RGB{255, 0, 0})
	s.Print(0, 0, "Hi", red, ColorDefault, StyleBold)
	s.Update()

	out := flatWrites(fb)

	if !bytes.Contains(out, []byte("\x1b[38;2;255;0;0m")) {
		t.Fatalf("missing red foreground set in %q", out)
	}
	if !bytes.Contains(out, []byte("\x1b[1m")) {
		t.Fatalf("missing bold style set in %q", out)
	}
	if bytes.Contains(out, []byte("\x1b[48")) {
		t.Fatalf("unexpected background set in %q (default bg matches shadow default)", out)
	}
	if !bytes.Contains(out, []byte("Hi")) {
		t.Fatalf("missing glyph bytes in %q", out)
	}

	escCount := bytes.Count(out, []byte("\x1b"))
	if escCount != 3 {
		t.Fatalf("got %d escape sequences, want 3 (fg, style, final cursor move): %q", escCount, out)
	}

	if s.back.Cell(2, 0).Ch != 0 {
		t.Fatalf("third cell should remain empty, got %+v", s.back.Cell(2, 0))
	}
}

// TestScreenPrintDoubleWidthContinuation checks that a double-width
// rune writes a width-0 continuation cell immediately after it.
func TestScreenPrintDoubleWidthContinuation(t *testing.T) {
	fb := &fakeBackend{width: 4, height: 1}
	s := NewScreen(fb, ColorModeTrueColor)
	s.SetSize(4, 1)

	s.Print(0, 0, "中", ColorDefault, ColorDefault, StyleNone) // CJK, width 2

	cell := s.back.Cell(0, 0)
	if cell.Width != 2 {
		t.Fatalf("wide rune width = %d, want 2", cell.Width)
	}
	cont := s.back.Cell(1, 0)
	if cont.Width != 0 {
		t.Fatalf("continuation cell width = %d, want 0", cont.Width)
	}
}

// TestScreenMoveCursorPrefersShorterRelative checks that moveCursor
// picks a relative sequence over an absolute one when it is strictly
// shorter, per the diff algorithm's "shortest of the three" rule.
func TestScreenMoveCursorPrefersShorterRelative(t *testing.T) {
	fb := &fakeBackend{width: 80, height: 24}
	s := NewScreen(fb, ColorModeTrueColor)
	s.SetSize(80, 24)
	s.cursor.x, s.cursor.y = 10, 5

	s.moveCursor(12, 5)
	s.w.Flush()

	out := flatWrites(fb)
	if !bytes.Contains(out, []byte("\x1b[2C")) {
		t.Fatalf("expected short relative forward move, got %q", out)
	}
	if bytes.Contains(out, []byte("H")) {
		t.Fatalf("did not expect absolute positioning, got %q", out)
	}
}
