// Package game implements the debug-bird side-scroller: a fixed-timestep
// simulation of an actor dodging hazards and collecting bonuses.
package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/object"
	"github.com/tomz197/debugbird/internal/physics"
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	default:
		return "idle"
	}
}

// Deps are the engine's collaborators. Every field is optional.
type Deps struct {
	// Rand drives spawning, bursts and message selection. Defaults to a
	// time-seeded source.
	Rand *rand.Rand
	// Scheduler runs cosmetic reverts. Defaults to a queue over the wall
	// clock that the engine drains at the start of every Frame.
	Scheduler clock.Scheduler
	Display   Display
	Sounds    Sounds
	Logger    *log.Logger
}

// Session is the authoritative per-game state.
type Session struct {
	Phase        Phase
	Score        int
	Lives        int
	Speed        float64
	Message      string
	MessageTicks int
	Ticks        uint64
}

// Snapshot is a copy of the engine state for display and tests.
type Snapshot struct {
	Session
	Actor     object.Actor
	Hazards   int
	Bonuses   int
	Particles int
}

// Engine owns one game session. It is not safe for concurrent use: the
// owning loop calls Frame, Jump and the scheduler's callbacks from a single
// goroutine.
type Engine struct {
	tuning  config.Tuning
	rng     *rand.Rand
	sched   clock.Scheduler
	ownQ    *clock.Queue
	display Display
	sounds  Sounds
	log     *log.Logger

	session   Session
	actor     *object.Actor
	hazards   []object.Hazard
	bonuses   []object.Bonus
	particles []object.Particle

	// tintGen identifies the latest cosmetic effect; older reverts are ignored.
	tintGen uint64
}

// New creates an idle engine.
func New(t config.Tuning, deps Deps) *Engine {
	e := &Engine{
		tuning:  t,
		rng:     deps.Rand,
		sched:   deps.Scheduler,
		display: deps.Display,
		sounds:  deps.Sounds,
		log:     logging.OrDiscard(deps.Logger),
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.sched == nil {
		e.ownQ = clock.NewQueue(clock.Real{})
		e.sched = e.ownQ
	}
	if e.display == nil {
		e.display = nopDisplay{}
	}
	if e.sounds == nil {
		e.sounds = nopSounds{}
	}

	e.actor = object.NewActor(t.Actor)
	e.session = Session{
		Phase: PhaseIdle,
		Lives: t.Lives,
		Speed: t.Speed.Base,
	}
	e.pickMessage()
	return e
}

// Start begins a fresh session from any phase.
func (e *Engine) Start() {
	e.session.Score = 0
	e.session.Lives = e.tuning.Lives
	e.session.Speed = e.tuning.Speed.Base
	e.session.Ticks = 0
	e.actor = object.NewActor(e.tuning.Actor)
	e.tintGen++
	e.hazards = e.hazards[:0]
	e.bonuses = e.bonuses[:0]
	e.particles = e.particles[:0]
	e.session.Phase = PhaseRunning

	e.display.HideGameOver()
	e.display.DisplayScore(e.session.Score)
	e.display.DisplayLives(e.session.Lives)
	e.log.Debug("game started", "lives", e.session.Lives)
}

// Stop halts simulation without resetting the session.
func (e *Engine) Stop() {
	if e.session.Phase != PhaseRunning {
		return
	}
	e.session.Phase = PhaseIdle
	e.log.Debug("game stopped", "score", e.session.Score, "lives", e.session.Lives)
}

// Running reports whether the simulation is stepping.
func (e *Engine) Running() bool {
	return e.session.Phase == PhaseRunning
}

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase {
	return e.session.Phase
}

// Jump kicks the actor upward. Ignored unless running.
func (e *Engine) Jump() {
	if !e.Running() {
		return
	}
	e.actor.Jump()
	e.burst(e.actor.X, e.actor.Y, object.ColorActor)
	e.sounds.Play(CueJump)
}

// Frame is the host's per-frame call: due effects, one tick, then paint.
func (e *Engine) Frame(s draw.Surface) {
	if e.ownQ != nil {
		e.ownQ.RunDue()
	}
	e.Tick()
	e.Render(s)
}

// Tick advances the simulation one step. Does nothing unless running.
func (e *Engine) Tick() {
	if !e.Running() {
		return
	}
	e.session.Ticks++

	e.stepActor()
	if !e.Running() {
		return
	}
	e.spawn()
	e.advance()
	e.collideHazards()
	if !e.Running() {
		return
	}
	e.collideBonuses()
	e.ageParticles()
	e.stepMessage()
	e.session.Speed += e.tuning.Speed.Ramp
}

// stepActor applies gravity and keeps the actor inside the playfield.
func (e *Engine) stepActor() {
	a := e.actor
	a.Fall()

	floor := e.tuning.Playfield.Height - a.Size
	y := physics.Clamp(a.Y, 0, floor)
	switch {
	case y > a.Y:
		a.Y = y
		a.VY = 0
	case y < a.Y:
		a.Y = y
		e.damage()
		if e.tuning.FloorPolicy == config.FloorRespawn {
			a.Place(e.tuning.Actor.StartY)
		}
	}
}

func (e *Engine) spawn() {
	sp := e.tuning.Spawn
	if e.rng.Float64() < sp.HazardChance {
		e.hazards = append(e.hazards, object.Hazard{
			X:    e.tuning.Playfield.Width,
			Y:    e.spawnY(),
			Size: sp.HazardSize,
			Kind: object.RandomKind(e.rng),
		})
	}
	if e.rng.Float64() < sp.BonusChance {
		e.bonuses = append(e.bonuses, object.Bonus{
			X:    e.tuning.Playfield.Width,
			Y:    e.spawnY(),
			Size: sp.BonusSize,
		})
	}
}

// spawnY picks a height uniformly inside the safe band.
func (e *Engine) spawnY() float64 {
	m := e.tuning.Spawn.Margin
	return e.rng.Float64()*(e.tuning.Playfield.Height-2*m) + m
}

func (e *Engine) advance() {
	speed, spin := e.session.Speed, e.tuning.Spawn.SpinRate
	for i := range e.hazards {
		e.hazards[i].Advance(speed, spin)
	}
	for i := range e.bonuses {
		e.bonuses[i].Advance(speed, spin)
	}
}

func (e *Engine) ageParticles() {
	kept := e.particles[:0] // reuse backing array
	for i := range e.particles {
		p := e.particles[i]
		if !p.Update() {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}

func (e *Engine) burst(x, y float64, c colorful.Color) {
	pt := e.tuning.Particles
	e.particles = append(e.particles, object.Burst(e.rng, x, y, c, pt.Count, pt.Lifetime, pt.Spread)...)
}

func (e *Engine) addScore(n int) {
	if n == 0 {
		return
	}
	e.session.Score += n
	e.display.DisplayScore(e.session.Score)
}

// damage costs a life and flashes the actor. Ignored unless running.
func (e *Engine) damage() {
	if !e.Running() {
		return
	}
	e.session.Lives--
	e.display.DisplayLives(e.session.Lives)
	e.sounds.Play(CueHit)
	e.tint(object.TintDamaged, e.tuning.Effects.DamagedMillis)

	if e.session.Lives <= 0 {
		e.session.Lives = 0
		e.gameOver()
	}
}

func (e *Engine) gameOver() {
	e.session.Phase = PhaseGameOver
	e.display.ShowGameOver(e.session.Score)
	e.sounds.Play(CueGameOver)
	e.log.Info("game over", "score", e.session.Score, "ticks", e.session.Ticks)
}

// tint recolors the actor and schedules the revert. Only the revert of the
// latest tint applies.
func (e *Engine) tint(t object.Tint, millis int) {
	e.tintGen++
	gen := e.tintGen
	e.actor.Tint = t
	e.sched.AfterFunc(time.Duration(millis)*time.Millisecond, func() {
		if e.tintGen == gen {
			e.actor.Tint = object.TintNormal
		}
	})
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Session:   e.session,
		Actor:     *e.actor,
		Hazards:   len(e.hazards),
		Bonuses:   len(e.bonuses),
		Particles: len(e.particles),
	}
}

// Hazards returns a copy of the active hazards.
func (e *Engine) Hazards() []object.Hazard {
	return append([]object.Hazard(nil), e.hazards...)
}

// Bonuses returns a copy of the active bonuses.
func (e *Engine) Bonuses() []object.Bonus {
	return append([]object.Bonus(nil), e.bonuses...)
}

// SpawnHazardAt adds a hazard at (x, y). Used by tests and demos.
func (e *Engine) SpawnHazardAt(x, y float64, kind object.HazardKind) {
	e.hazards = append(e.hazards, object.Hazard{X: x, Y: y, Size: e.tuning.Spawn.HazardSize, Kind: kind})
}

// SpawnBonusAt adds a bonus at (x, y). Used by tests and demos.
func (e *Engine) SpawnBonusAt(x, y float64) {
	e.bonuses = append(e.bonuses, object.Bonus{X: x, Y: y, Size: e.tuning.Spawn.BonusSize})
}

// PlaceActor moves the actor to y at rest.
func (e *Engine) PlaceActor(y float64) {
	e.actor.Place(y)
}
