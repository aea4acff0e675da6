package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Align controls how FillText positions a string relative to x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the 2D drawing target the game and the page paint onto.
// Coordinates are logical; the transform set by Save/Translate/Rotate
// applies to every primitive.
type Surface interface {
	FillRect(x, y, w, h float64, c colorful.Color)
	StrokeLine(x1, y1, x2, y2 float64, c colorful.Color)
	FillText(x, y float64, s string, c colorful.Color, align Align)
	// SetAlpha sets the opacity used by subsequent primitives, in [0,1].
	SetAlpha(a float64)
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(radians float64)
}

// affine is a 2D affine transform:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type affine struct {
	a, b, c, d, e, f float64
}

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// mul returns m * n (n is applied first).
func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func translation(dx, dy float64) affine {
	return affine{a: 1, d: 1, e: dx, f: dy}
}

func rotation(rad float64) affine {
	sin, cos := math.Sincos(rad)
	return affine{a: cos, b: sin, c: -sin, d: cos}
}

// surfaceState is what Save pushes and Restore pops.
type surfaceState struct {
	transform affine
	alpha     float64
}
