package terminal

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Canvas is a stateless drawing convenience layer over a Screen's back
// buffer.
type Canvas struct {
	screen *Screen
}

// NewCanvas returns a Canvas drawing onto screen's back buffer.
func NewCanvas(screen *Screen) *Canvas {
	return &Canvas{screen: screen}
}

// Fill paints rect with a flat color.
func (c *Canvas) Fill(rect Rect, color Color) {
	c.FillSampler(rect, ConstantSampler(color), 0)
}

// FillSampler clips rect to the screen, then for every covered cell
// samples color at that cell's normalized (u, v) position and angle,
// writing it as background while preserving whatever glyph already
// occupies the cell.
func (c *Canvas) FillSampler(rect Rect, sampler Sampler, angle float64) {
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.W, rect.Y+rect.H

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > c.screen.Width() {
		x1 = c.screen.Width()
	}
	if y1 > c.screen.Height() {
		y1 = c.screen.Height()
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	w, h := rect.W, rect.H
	if w <= 0 || h <= 0 {
		return
	}

	for y := y0; y < y1; y++ {
		v := float64(y-rect.Y+1) / float64(h)
		for x := x0; x < x1; x++ {
			u := float64(x-rect.X+1) / float64(w)
			bg := sampler(u, v, angle)
			c.screen.SetCell(x, y, ChUnchanged, 0, ColorUnchanged, bg, StyleUnchanged)
		}
	}
}
