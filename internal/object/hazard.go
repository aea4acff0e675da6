package object

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/physics"
)

// HazardKind is the variant of a hazard.
type HazardKind int

const (
	KindError HazardKind = iota
	KindWarning
	KindSpinner

	hazardKinds = 3
)

func (k HazardKind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindSpinner:
		return "spinner"
	default:
		return "unknown"
	}
}

// Color returns the hazard's fill color.
func (k HazardKind) Color() colorful.Color {
	switch k {
	case KindWarning:
		return ColorWarning
	case KindSpinner:
		return ColorSpinner
	default:
		return ColorError
	}
}

// RandomKind picks a hazard kind uniformly.
func RandomKind(rng *rand.Rand) HazardKind {
	return HazardKind(rng.Intn(hazardKinds))
}

// Hazard is an obstacle scrolling toward the actor.
type Hazard struct {
	X, Y     float64
	Size     float64
	Kind     HazardKind
	Rotation float64 // Spinners only
}

// Advance scrolls the hazard left and turns spinners.
func (h *Hazard) Advance(speed, spin float64) {
	h.X -= speed
	if h.Kind == KindSpinner {
		h.Rotation += spin
	}
}

// Bounds is the collision box.
func (h *Hazard) Bounds() physics.Rect {
	return physics.Rect{X: h.X, Y: h.Y, W: h.Size, H: h.Size}
}

// Draw paints the hazard box with its marker.
func (h *Hazard) Draw(s draw.Surface) {
	s.FillRect(h.X, h.Y, h.Size, h.Size, h.Kind.Color())

	cx, cy := h.X+h.Size/2, h.Y+h.Size/2
	switch h.Kind {
	case KindError:
		s.FillText(cx, cy, "X", ColorInk, draw.AlignCenter)
	case KindWarning:
		s.FillText(cx, cy, "!", ColorInk, draw.AlignCenter)
	case KindSpinner:
		r := h.Size * 0.35
		s.Save()
		s.Translate(cx, cy)
		s.Rotate(h.Rotation)
		s.StrokeLine(-r, 0, r, 0, ColorInk)
		s.StrokeLine(0, -r, 0, r, ColorInk)
		s.Restore()
	}
}

// Bonus is a collectible hot-reload token.
type Bonus struct {
	X, Y     float64
	Size     float64
	Rotation float64
}

// Advance scrolls the bonus left and turns it.
func (b *Bonus) Advance(speed, spin float64) {
	b.X -= speed
	b.Rotation = math.Mod(b.Rotation+spin, 2*math.Pi)
}

// Bounds is the collision box.
func (b *Bonus) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// Draw paints a rotated square around the bonus center.
func (b *Bonus) Draw(s draw.Surface) {
	half := b.Size / 2
	s.Save()
	s.Translate(b.X+half, b.Y+half)
	s.Rotate(b.Rotation)
	s.FillRect(-half, -half, b.Size, b.Size, ColorBonus)
	s.Restore()
	s.FillText(b.X+half, b.Y+half, "R", ColorInk, draw.AlignCenter)
}
