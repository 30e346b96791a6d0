package terminal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScreenBufferClearResetsEveryCell(t *testing.T) {
	b := NewScreenBuffer(4, 3)
	b.SetCell(1, 1, 'x', 1, ColorFromRGB(RGB{1, 2, 3}), ColorFromRGB(RGB{4, 5, 6}), StyleBold)
	b.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if !b.Cell(x, y).Equal(emptyCell) {
				t.Fatalf("cell (%d,%d) not reset after Clear", x, y)
			}
		}
	}
}

// TestScreenBufferResizePreservation is the spec's "resize preservation"
// property: overlapping cells keep their value across a resize.
func TestScreenBufferResizePreservation(t *testing.T) {
	b := NewScreenBuffer(5, 5)
	red := ColorFromRGB(RGB{255, 0, 0})
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			b.SetCell(x, y, rune('a'+x), 1, red, ColorDefault, StyleNone)
		}
	}

	before := make([][]Cell, 5)
	for y := range before {
		before[y] = make([]Cell, 5)
		for x := range before[y] {
			before[y][x] = b.Cell(x, y)
		}
	}

	b.Resize(3, 7)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if !b.Cell(x, y).Equal(before[y][x]) {
				t.Fatalf("cell (%d,%d) changed across resize: got %+v want %+v", x, y, b.Cell(x, y), before[y][x])
			}
		}
	}
	if b.Width() != 3 || b.Height() != 7 {
		t.Fatalf("dimensions after resize = (%d,%d), want (3,7)", b.Width(), b.Height())
	}
}

func TestScreenBufferSetCellHonoursUnchangedSentinels(t *testing.T) {
	b := NewScreenBuffer(2, 1)
	fg := ColorFromRGB(RGB{10, 20, 30})
	bg := ColorFromRGB(RGB{40, 50, 60})
	b.SetCell(0, 0, 'Q', 1, fg, bg, StyleItalic)

	b.SetCell(0, 0, ChUnchanged, 0, ColorUnchanged, ColorUnchanged, StyleUnchanged)

	got := b.Cell(0, 0)
	if got.Ch != 'Q' || got.Fg != fg || got.Bg != bg || got.Style != StyleItalic {
		t.Fatalf("unchanged write mutated cell: %+v", got)
	}
}

func TestScreenBufferSetCellOutOfBoundsNoop(t *testing.T) {
	b := NewScreenBuffer(2, 2)
	b.SetCell(-1, 0, 'x', 1, ColorDefault, ColorDefault, StyleNone)
	b.SetCell(0, -1, 'x', 1, ColorDefault, ColorDefault, StyleNone)
	b.SetCell(5, 5, 'x', 1, ColorDefault, ColorDefault, StyleNone)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if !b.Cell(x, y).Equal(emptyCell) {
				t.Fatalf("out-of-bounds write mutated in-bounds cell (%d,%d)", x, y)
			}
		}
	}
}

// TestScreenBufferCopyFromMatchesSource checks that CopyFrom leaves the
// destination cell-for-cell identical to the source, using cmp.Diff for
// a readable failure message rather than a manual cell-by-cell loop.
func TestScreenBufferCopyFromMatchesSource(t *testing.T) {
	src := NewScreenBuffer(3, 2)
	src.SetCell(0, 0, 'a', 1, ColorFromRGB(RGB{1, 2, 3}), ColorDefault, StyleBold)
	src.SetCell(2, 1, 'z', 1, ColorDefault, ColorFromRGB(RGB{9, 9, 9}), StyleUnderline)

	dst := NewScreenBuffer(1, 1)
	dst.CopyFrom(src)

	srcCells := make([]Cell, 0, 6)
	dstCells := make([]Cell, 0, 6)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			srcCells = append(srcCells, src.Cell(x, y))
			dstCells = append(dstCells, dst.Cell(x, y))
		}
	}

	if diff := cmp.Diff(srcCells, dstCells); diff != "" {
		t.Fatalf("CopyFrom destination differs from source (-src +dst):\n%s", diff)
	}
}

func TestBoldDimMutualExclusion(t *testing.T) {
	b := NewScreenBuffer(1, 1)
	b.SetCell(0, 0, 'x', 1, ColorDefault, ColorDefault, StyleBold|StyleDim)
	if got := b.Cell(0, 0).Style; got != StyleBold {
		t.Fatalf("Bold|Dim normalized to %v, want StyleBold", got)
	}
}
