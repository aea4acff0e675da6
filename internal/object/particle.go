package object

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/draw"
)

// particleSize is the side of a particle square in logical pixels.
const particleSize = 3

// Particle is a short-lived square of a burst.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity per tick
	Life    int     // Ticks remaining
	MaxLife int     // Initial lifetime (for fade calculation)
	Color   colorful.Color
}

// Burst creates count particles at (x, y). Velocity components are uniform
// in (-spread/2, spread/2).
func Burst(rng *rand.Rand, x, y float64, c colorful.Color, count, life int, spread float64) []Particle {
	ps := make([]Particle, count)
	for i := range ps {
		ps[i] = Particle{
			X:       x,
			Y:       y,
			VX:      (rng.Float64() - 0.5) * spread,
			VY:      (rng.Float64() - 0.5) * spread,
			Life:    life,
			MaxLife: life,
			Color:   c,
		}
	}
	return ps
}

// Update moves the particle one tick and ages it. Returns true once the
// particle should be removed.
func (p *Particle) Update() (remove bool) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	return p.Life <= 0
}

// Alpha is the remaining fraction of the particle's life.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// Draw paints the particle faded by its remaining life.
func (p *Particle) Draw(s draw.Surface) {
	s.SetAlpha(p.Alpha())
	s.FillRect(p.X, p.Y, particleSize, particleSize, p.Color)
	s.SetAlpha(1)
}
