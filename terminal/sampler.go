package terminal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Sampler maps a point on the unit square plus a rotation angle to a
// color. angle is in degrees, [0, 360).
type Sampler func(u, v, angle float64) Color

// ConstantSampler returns a Sampler that ignores its inputs and always
// yields c.
func ConstantSampler(c Color) Sampler {
	return func(u, v, angle float64) Color {
		return c
	}
}

// LinearGradient is a Sampler over an ordered list of colors, blended
// along a rotatable axis. Colours are stripped of sentinel bits at
// construction since a gradient stop can only ever be a concrete RGB
// value.
type LinearGradient struct {
	stops []colorful.Color
}

// NewLinearGradient builds a gradient from at least one color. Colors
// carrying the Default or Unchanged sentinel are resolved to black
// before storage, since a gradient has no notion of "terminal default".
func NewLinearGradient(colors ...Color) *LinearGradient {
	if len(colors) == 0 {
		colors = []Color{0}
	}
	g := &LinearGradient{stops: make([]colorful.Color, len(colors))}
	for i, c := range colors {
		rgb, ok := c.RGB()
		if !ok {
			rgb = RGBBlack
		}
		g.stops[i] = colorful.Color{
			R: float64(rgb.R) / 255,
			G: float64(rgb.G) / 255,
			B: float64(rgb.B) / 255,
		}
	}
	return g
}

// Sample implements Sampler. u, v are in [0,1]; angle is degrees.
func (g *LinearGradient) Sample(u, v, angle float64) Color {
	theta := math.Mod(angle, 360)
	if theta < 0 {
		theta += 360
	}

	// Reflect into [0,90) by mirroring u,v so the projection arithmetic
	// only ever needs one quadrant's worth of sign handling.
	switch {
	case theta >= 270:
		theta = 360 - theta
		v = 1 - v
	case theta >= 180:
		theta -= 180
		u, v = 1-u, 1-v
	case theta >= 90:
		theta = 180 - theta
		u = 1 - u
	}

	rad := theta * math.Pi / 180
	alpha := u*math.Cos(-rad) - v*math.Sin(-rad)

	scale := math.Max(math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad)))
	if scale > 0 {
		alpha /= scale
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}

	n := len(g.stops)
	if n == 1 {
		return colorToColor(g.stops[0])
	}

	pos := alpha * float64(n-1)
	i0 := int(pos)
	if i0 >= n-1 {
		i0 = n - 2
	}
	i1 := i0 + 1
	beta := pos - float64(i0)

	blended := g.stops[i0].BlendRgb(g.stops[i1], beta)
	return colorToColor(blended)
}

func colorToColor(c colorful.Color) Color {
	clamp := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return ColorFromRGB(RGB{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)})
}
