package game

import (
	"github.com/tomz197/debugbird/internal/object"
)

// collideHazards partitions the hazards into survivors, ones that scrolled
// past and ones that hit the actor, then applies the side effects.
func (e *Engine) collideHazards() {
	actor := e.actor.Bounds()

	var passed int
	var hit []object.Hazard
	kept := e.hazards[:0] // reuse backing array
	for _, h := range e.hazards {
		b := h.Bounds()
		switch {
		case b.OffLeft():
			passed++
		case actor.Overlaps(b):
			hit = append(hit, h)
		default:
			kept = append(kept, h)
		}
	}
	e.hazards = kept

	e.addScore(passed * e.tuning.Scoring.HazardPassed)
	for _, h := range hit {
		if !e.Running() {
			return
		}
		e.burst(h.X, h.Y, h.Kind.Color())
		e.damage()
	}
}

// collideBonuses removes bonuses that scrolled past and collects the ones
// touching the actor.
func (e *Engine) collideBonuses() {
	actor := e.actor.Bounds()

	var collected []object.Bonus
	kept := e.bonuses[:0] // reuse backing array
	for _, b := range e.bonuses {
		r := b.Bounds()
		switch {
		case r.OffLeft():
		case actor.Overlaps(r):
			collected = append(collected, b)
		default:
			kept = append(kept, b)
		}
	}
	e.bonuses = kept

	for _, b := range collected {
		e.burst(b.X, b.Y, object.ColorPowered)
		e.addScore(e.tuning.Scoring.BonusCollected)
		e.sounds.Play(CueBonus)
		e.tint(object.TintPowered, e.tuning.Effects.PoweredMillis)
	}
}
