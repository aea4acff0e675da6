package object

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/physics"
)

// Tint is the actor's transient cosmetic state.
type Tint int

const (
	TintNormal Tint = iota
	TintDamaged
	TintPowered
)

func (t Tint) String() string {
	switch t {
	case TintDamaged:
		return "damaged"
	case TintPowered:
		return "powered"
	default:
		return "normal"
	}
}

// Color returns the actor color for the tint.
func (t Tint) Color() colorful.Color {
	switch t {
	case TintDamaged:
		return ColorDamaged
	case TintPowered:
		return ColorPowered
	default:
		return ColorActor
	}
}

// Actor is the player-controlled bird. It only moves vertically.
type Actor struct {
	X, Y float64 // Top-left corner
	VY   float64 // Vertical velocity, positive is down
	Size float64

	Gravity     float64
	JumpImpulse float64
	Tint        Tint
}

// NewActor creates an actor at its spawn position.
func NewActor(t config.Actor) *Actor {
	return &Actor{
		X:           t.X,
		Y:           t.StartY,
		Size:        t.Size,
		Gravity:     t.Gravity,
		JumpImpulse: t.JumpImpulse,
	}
}

// Fall applies one tick of gravity and integrates the position.
func (a *Actor) Fall() {
	a.VY += a.Gravity
	a.Y += a.VY
}

// Jump replaces the vertical velocity with the jump impulse.
func (a *Actor) Jump() {
	a.VY = a.JumpImpulse
}

// Place moves the actor to y at rest.
func (a *Actor) Place(y float64) {
	a.Y = y
	a.VY = 0
}

// Bounds is the collision box.
func (a *Actor) Bounds() physics.Rect {
	return physics.Rect{X: a.X, Y: a.Y, W: a.Size, H: a.Size}
}

// Draw paints the body, an eye and a beak.
func (a *Actor) Draw(s draw.Surface) {
	s.FillRect(a.X, a.Y, a.Size, a.Size, a.Tint.Color())

	eye := a.Size / 5
	s.FillRect(a.X+a.Size-2*eye, a.Y+eye, eye, eye, ColorInk)
	s.FillRect(a.X+a.Size, a.Y+a.Size/2-eye/2, eye, eye, ColorWarning)
}
