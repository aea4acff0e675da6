package game

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/object"
)

// recordingSurface keeps the primitives a render issued.
type recordingSurface struct {
	rects  int
	lines  []colorful.Color
	texts  []string
	alphas []float64
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c colorful.Color) { s.rects++ }
func (s *recordingSurface) StrokeLine(x1, y1, x2, y2 float64, c colorful.Color) {
	s.lines = append(s.lines, c)
}
func (s *recordingSurface) FillText(x, y float64, text string, c colorful.Color, align draw.Align) {
	s.texts = append(s.texts, text)
}
func (s *recordingSurface) SetAlpha(a float64)       { s.alphas = append(s.alphas, a) }
func (s *recordingSurface) Save()                    {}
func (s *recordingSurface) Restore()                 {}
func (s *recordingSurface) Translate(dx, dy float64) {}
func (s *recordingSurface) Rotate(radians float64)   {}

func (s *recordingSurface) gridLines() int {
	n := 0
	for _, c := range s.lines {
		if c == object.ColorGrid {
			n++
		}
	}
	return n
}

func (s *recordingSurface) hasText(text string) bool {
	return slices.Contains(s.texts, text)
}

func TestRenderIdle(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.SpawnHazardAt(500, 100, object.KindWarning)

	s := &recordingSurface{}
	e.Render(s)

	// 800x400 with a 40px grid: 20 columns and 10 rows.
	if got := s.gridLines(); got != 30 {
		t.Fatalf("grid lines = %d, want 30", got)
	}
	if s.rects == 0 {
		t.Fatal("background not filled")
	}
	msg := e.Snapshot().Message
	if msg == "" || !s.hasText(msg) {
		t.Fatalf("message %q not drawn, texts = %q", msg, s.texts)
	}
	for _, want := range []string{"Speed: 2.00", "Obstacles: 1"} {
		if !s.hasText(want) {
			t.Fatalf("missing %q in %q", want, s.texts)
		}
	}
}

func TestRenderGameOver(t *testing.T) {
	tun := quietTuning()
	tun.Lives = 1
	f := newFixture(tun)
	e := f.engine
	e.Start()
	e.SpawnHazardAt(600, 100, object.KindWarning)
	e.SpawnHazardAt(e.actor.X, e.actor.Y, object.KindError)
	e.Tick()
	if e.Snapshot().Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", e.Snapshot().Phase)
	}

	s := &recordingSurface{}
	e.Render(s)

	if got := s.gridLines(); got != 30 {
		t.Fatalf("grid lines = %d, want 30", got)
	}
	for _, want := range []string{
		fmt.Sprintf("FPS: %d", clock.DefaultFrameRate),
		"Speed: 2.00",
		"Obstacles: 1",
	} {
		if !s.hasText(want) {
			t.Fatalf("missing %q in %q", want, s.texts)
		}
	}
}

func TestRenderFadesParticlesByLife(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.Jump()
	for range 10 {
		e.Tick()
	}
	if len(e.particles) != config.DefaultTuning().Particles.Count {
		t.Fatalf("particles = %d, want one burst", len(e.particles))
	}

	s := &recordingSurface{}
	e.Render(s)

	// Each particle sets its own alpha and then resets it to 1.
	if len(s.alphas) != 2*len(e.particles) {
		t.Fatalf("SetAlpha called %d times for %d particles", len(s.alphas), len(e.particles))
	}
	for i := range e.particles {
		want := float64(e.particles[i].Life) / float64(e.particles[i].MaxLife)
		if got := s.alphas[2*i]; math.Abs(got-want) > 1e-9 {
			t.Fatalf("particle %d alpha = %v, want %v", i, got, want)
		}
		if want >= 1 {
			t.Fatalf("particle %d did not age: alpha %v", i, want)
		}
		if s.alphas[2*i+1] != 1 {
			t.Fatalf("alpha not restored after particle %d", i)
		}
	}
}
