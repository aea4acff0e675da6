package game

import (
	"fmt"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/object"
)

const gridSpacing = 40

// Render paints the playfield. It runs in every phase.
func (e *Engine) Render(s draw.Surface) {
	w, h := e.tuning.Playfield.Width, e.tuning.Playfield.Height

	s.FillRect(0, 0, w, h, object.ColorBackground)
	for x := 0.0; x < w; x += gridSpacing {
		s.StrokeLine(x, 0, x, h, object.ColorGrid)
	}
	for y := 0.0; y < h; y += gridSpacing {
		s.StrokeLine(0, y, w, y, object.ColorGrid)
	}

	e.actor.Draw(s)
	for i := range e.hazards {
		e.hazards[i].Draw(s)
	}
	for i := range e.bonuses {
		e.bonuses[i].Draw(s)
	}
	for i := range e.particles {
		e.particles[i].Draw(s)
	}

	if e.session.Message != "" {
		s.FillText(w/2, 50, e.session.Message, object.ColorMessage, draw.AlignCenter)
	}

	s.FillText(10, 20, fmt.Sprintf("FPS: %d", clock.DefaultFrameRate), object.ColorDebug, draw.AlignLeft)
	s.FillText(10, 35, fmt.Sprintf("Speed: %.2f", e.session.Speed), object.ColorDebug, draw.AlignLeft)
	s.FillText(10, 50, fmt.Sprintf("Obstacles: %d", len(e.hazards)), object.ColorDebug, draw.AlignLeft)
}
