package game

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/object"
)

type recordingDisplay struct {
	scores   []int
	lives    []int
	gameOver []int
	hidden   int
}

func (d *recordingDisplay) DisplayScore(n int)     { d.scores = append(d.scores, n) }
func (d *recordingDisplay) DisplayLives(n int)     { d.lives = append(d.lives, n) }
func (d *recordingDisplay) ShowGameOver(final int) { d.gameOver = append(d.gameOver, final) }
func (d *recordingDisplay) HideGameOver()          { d.hidden++ }
func (d *recordingDisplay) lastScore() int         { return d.scores[len(d.scores)-1] }
func (d *recordingDisplay) lastLives() int         { return d.lives[len(d.lives)-1] }

type recordingSounds struct {
	cues []Cue
}

func (s *recordingSounds) Play(c Cue) { s.cues = append(s.cues, c) }

type fixture struct {
	engine  *Engine
	clock   *clock.Manual
	queue   *clock.Queue
	display *recordingDisplay
	sounds  *recordingSounds
}

// quietTuning disables random spawning so tests place every entity.
func quietTuning() config.Tuning {
	t := config.DefaultTuning()
	t.Spawn.HazardChance = 0
	t.Spawn.BonusChance = 0
	return t
}

func newFixture(t config.Tuning) *fixture {
	clk := clock.NewManual(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	q := clock.NewQueue(clk)
	d := &recordingDisplay{}
	s := &recordingSounds{}
	e := New(t, Deps{
		Rand:      rand.New(rand.NewSource(42)),
		Scheduler: q,
		Display:   d,
		Sounds:    s,
	})
	return &fixture{engine: e, clock: clk, queue: q, display: d, sounds: s}
}

func (f *fixture) advance(d time.Duration) {
	f.clock.Advance(d)
	f.queue.RunDue()
}

func TestNewEngineIsIdle(t *testing.T) {
	f := newFixture(quietTuning())
	snap := f.engine.Snapshot()
	if snap.Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", snap.Phase)
	}
	if snap.Message == "" {
		t.Fatal("no advisory message picked at construction")
	}

	f.engine.Tick()
	if f.engine.Snapshot().Ticks != 0 {
		t.Fatal("idle engine stepped the simulation")
	}
}

func TestStartResetsEverything(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()

	e.SpawnHazardAt(500, 100, object.KindWarning)
	e.SpawnBonusAt(600, 100)
	e.SpawnHazardAt(-50, 0, object.KindError)
	e.Jump()
	e.Tick()
	e.SpawnHazardAt(e.actor.X, e.actor.Y, object.KindError)
	e.Tick()

	before := e.Snapshot()
	if before.Score == 0 || before.Lives == 3 || before.Particles == 0 {
		t.Fatalf("setup did not dirty the session: %+v", before.Session)
	}

	e.Start()
	snap := e.Snapshot()
	if snap.Score != 0 || snap.Lives != 3 {
		t.Fatalf("after Start score=%d lives=%d, want 0 and 3", snap.Score, snap.Lives)
	}
	if snap.Hazards != 0 || snap.Bonuses != 0 || snap.Particles != 0 {
		t.Fatalf("collections not cleared: %d hazards, %d bonuses, %d particles", snap.Hazards, snap.Bonuses, snap.Particles)
	}
	if snap.Speed != 2 || snap.Actor.Y != 200 || snap.Actor.VY != 0 || snap.Actor.Tint != object.TintNormal {
		t.Fatalf("actor/speed not reset: speed=%v actor=%+v", snap.Speed, snap.Actor)
	}
	if snap.Phase != PhaseRunning {
		t.Fatalf("phase = %v, want running", snap.Phase)
	}
	if f.display.lastScore() != 0 || f.display.lastLives() != 3 || f.display.hidden != 2 {
		t.Fatalf("display not reset: score=%d lives=%d hidden=%d", f.display.lastScore(), f.display.lastLives(), f.display.hidden)
	}
}

func TestHazardPastLeftEdgeScoresTen(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.SpawnHazardAt(500, 100, object.KindError)
	e.SpawnHazardAt(-50, 0, object.KindSpinner)

	e.Tick()

	snap := e.Snapshot()
	if snap.Score != 10 {
		t.Fatalf("score = %d, want 10", snap.Score)
	}
	if snap.Hazards != 1 {
		t.Fatalf("hazards = %d, want 1", snap.Hazards)
	}
	if f.display.lastScore() != 10 {
		t.Fatalf("displayed score = %d, want 10", f.display.lastScore())
	}
}

func TestEveryPassedHazardScoresExactlyTen(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	for i := 0; i < 5; i++ {
		e.SpawnHazardAt(-60-float64(i), 0, object.KindWarning)
	}
	e.Tick()
	if got := e.Snapshot().Score; got != 50 {
		t.Fatalf("score = %d, want 50", got)
	}
	if e.Snapshot().Hazards != 0 {
		t.Fatal("passed hazards still active")
	}
}

func TestBonusCollisionScoresAndBursts(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.PlaceActor(200)
	e.SpawnBonusAt(e.actor.X, 200)

	e.Tick()

	snap := e.Snapshot()
	if snap.Score != 50 {
		t.Fatalf("score = %d, want 50", snap.Score)
	}
	if snap.Bonuses != 0 {
		t.Fatalf("bonuses = %d, want 0", snap.Bonuses)
	}
	if snap.Particles != 8 {
		t.Fatalf("particles = %d, want 8", snap.Particles)
	}
	if snap.Actor.Tint != object.TintPowered {
		t.Fatalf("tint = %v, want powered", snap.Actor.Tint)
	}

	f.advance(999 * time.Millisecond)
	if e.Snapshot().Actor.Tint != object.TintPowered {
		t.Fatal("powered tint reverted early")
	}
	f.advance(time.Millisecond)
	if e.Snapshot().Actor.Tint != object.TintNormal {
		t.Fatalf("tint = %v after 1s, want normal", e.Snapshot().Actor.Tint)
	}
}

func TestRapidBonusesConvergeToNormal(t *testing.T) {
	tun := quietTuning()
	tun.Actor.Gravity = 0
	f := newFixture(tun)
	e := f.engine
	e.Start()

	for i := 0; i < 3; i++ {
		e.SpawnBonusAt(e.actor.X, e.actor.Y)
		e.Tick()
		f.advance(400 * time.Millisecond)
	}
	if got := e.Snapshot().Score; got != 150 {
		t.Fatalf("score = %d, want 150", got)
	}

	// The first two reverts have fired by now but belong to older effects.
	if e.Snapshot().Actor.Tint != object.TintPowered {
		t.Fatalf("tint = %v, want powered until the last revert", e.Snapshot().Actor.Tint)
	}
	f.advance(600 * time.Millisecond)
	if e.Snapshot().Actor.Tint != object.TintNormal {
		t.Fatalf("tint = %v, want normal after the last revert", e.Snapshot().Actor.Tint)
	}
	if f.queue.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", f.queue.Pending())
	}
}

func TestHazardCollisionCostsOneLife(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.PlaceActor(200)
	e.SpawnHazardAt(e.actor.X, 200, object.KindError)

	e.Tick()

	snap := e.Snapshot()
	if snap.Lives != 2 {
		t.Fatalf("lives = %d, want 2", snap.Lives)
	}
	if snap.Hazards != 0 || snap.Particles != 8 {
		t.Fatalf("hazards=%d particles=%d, want 0 and 8", snap.Hazards, snap.Particles)
	}
	if snap.Score != 0 {
		t.Fatalf("score = %d, want 0", snap.Score)
	}
	if snap.Actor.Tint != object.TintDamaged {
		t.Fatalf("tint = %v, want damaged", snap.Actor.Tint)
	}
	f.advance(200 * time.Millisecond)
	if e.Snapshot().Actor.Tint != object.TintNormal {
		t.Fatal("damaged tint did not revert after 200ms")
	}
	if len(f.sounds.cues) == 0 || f.sounds.cues[len(f.sounds.cues)-1] != CueHit {
		t.Fatalf("cues = %v, want last to be hit", f.sounds.cues)
	}
}

func TestGameOverFreezesSimulation(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.PlaceActor(200)
	e.SpawnHazardAt(-50, 0, object.KindError)
	for i := 0; i < 4; i++ {
		e.SpawnHazardAt(e.actor.X, 200, object.KindError)
	}

	e.Tick()

	snap := e.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", snap.Phase)
	}
	if snap.Lives != 0 {
		t.Fatalf("lives = %d, want 0", snap.Lives)
	}
	if len(f.display.gameOver) != 1 || f.display.gameOver[0] != 10 {
		t.Fatalf("game over pushes = %v, want [10]", f.display.gameOver)
	}

	e.SpawnHazardAt(-50, 0, object.KindError)
	e.SpawnHazardAt(e.actor.X, e.actor.Y, object.KindError)
	before := e.Snapshot()
	for i := 0; i < 10; i++ {
		e.Tick()
		e.Jump()
	}
	after := e.Snapshot()
	if after.Score != before.Score || after.Lives != before.Lives || after.Actor != before.Actor {
		t.Fatalf("simulation moved after game over: before %+v after %+v", before, after)
	}

	e.Start()
	if e.Snapshot().Phase != PhaseRunning || e.Snapshot().Lives != 3 {
		t.Fatal("Start after game over did not resume")
	}
}

func TestFloorDrainDamagesEveryTick(t *testing.T) {
	tun := quietTuning()
	tun.FloorPolicy = config.FloorDrain
	f := newFixture(tun)
	e := f.engine
	e.Start()
	e.PlaceActor(370)

	for i := 1; i <= 3; i++ {
		e.Tick()
		snap := e.Snapshot()
		if snap.Lives != 3-i {
			t.Fatalf("tick %d: lives = %d, want %d", i, snap.Lives, 3-i)
		}
		if snap.Actor.Y != 370 {
			t.Fatalf("tick %d: y = %v, want clamped to 370", i, snap.Actor.Y)
		}
	}
	if e.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", e.Phase())
	}
}

func TestFloorRespawnDamagesOnce(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.PlaceActor(370)

	e.Tick()
	snap := e.Snapshot()
	if snap.Lives != 2 {
		t.Fatalf("lives = %d, want 2", snap.Lives)
	}
	if snap.Actor.Y != 200 || snap.Actor.VY != 0 {
		t.Fatalf("actor = (y %v, vy %v), want back at 200 at rest", snap.Actor.Y, snap.Actor.VY)
	}

	e.Tick()
	if got := e.Snapshot().Lives; got != 2 {
		t.Fatalf("lives after the next tick = %d, want 2", got)
	}
}

func TestTopClampZeroesVelocity(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.PlaceActor(0)
	e.Jump()
	e.Tick()

	snap := e.Snapshot()
	if snap.Actor.Y != 0 || snap.Actor.VY != 0 {
		t.Fatalf("actor = (y %v, vy %v), want (0, 0)", snap.Actor.Y, snap.Actor.VY)
	}
}

func TestActorStaysInBounds(t *testing.T) {
	for _, policy := range []string{config.FloorDrain, config.FloorRespawn} {
		tun := config.DefaultTuning()
		tun.FloorPolicy = policy
		f := newFixture(tun)
		e := f.engine
		rng := rand.New(rand.NewSource(3))
		e.Start()

		for i := 0; i < 5000; i++ {
			if !e.Running() {
				e.Start()
			}
			if rng.Float64() < 0.08 {
				e.Jump()
			}
			e.Tick()
			f.advance(time.Second / 60)

			y := e.Snapshot().Actor.Y
			if y < 0 || y > 370 {
				t.Fatalf("%s tick %d: y = %v outside [0, 370]", policy, i, y)
			}
			if l := e.Snapshot().Lives; l < 0 || l > 3 {
				t.Fatalf("%s tick %d: lives = %d", policy, i, l)
			}
		}
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	f := newFixture(config.DefaultTuning())
	e := f.engine
	e.Start()
	last := 0
	for i := 0; i < 3000 && e.Running(); i++ {
		if e.actor.VY > 3 {
			e.Jump()
		}
		e.Tick()
		s := e.Snapshot().Score
		if s < last {
			t.Fatalf("tick %d: score fell from %d to %d", i, last, s)
		}
		last = s
	}
}

func TestJumpOnlyWhileRunning(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine

	e.Jump()
	if e.Snapshot().Particles != 0 || e.Snapshot().Actor.VY != 0 {
		t.Fatal("jump applied while idle")
	}

	e.Start()
	e.Jump()
	snap := e.Snapshot()
	if snap.Actor.VY != -8 {
		t.Fatalf("VY = %v, want -8", snap.Actor.VY)
	}
	if snap.Particles != 8 {
		t.Fatalf("particles = %d, want 8", snap.Particles)
	}
	if f.sounds.cues[len(f.sounds.cues)-1] != CueJump {
		t.Fatalf("cues = %v, want jump last", f.sounds.cues)
	}
}

func TestStopKeepsSession(t *testing.T) {
	f := newFixture(quietTuning())
	e := f.engine
	e.Start()
	e.SpawnHazardAt(-50, 0, object.KindError)
	e.Tick()

	e.Stop()
	if e.Running() {
		t.Fatal("still running after Stop")
	}
	e.Tick()
	snap := e.Snapshot()
	if snap.Score != 10 || snap.Lives != 3 || snap.Ticks != 1 {
		t.Fatalf("Stop changed the session: %+v", snap.Session)
	}
	if len(f.display.gameOver) != 0 {
		t.Fatal("Stop showed the game over panel")
	}
}

func TestParticlesAgeOut(t *testing.T) {
	tun := quietTuning()
	tun.Actor.Gravity = 0
	f := newFixture(tun)
	e := f.engine
	e.Start()
	e.Jump()
	e.PlaceActor(200)

	for i := 0; i < 29; i++ {
		e.Tick()
	}
	if got := e.Snapshot().Particles; got != 8 {
		t.Fatalf("particles after 29 ticks = %d, want 8", got)
	}
	e.Tick()
	if got := e.Snapshot().Particles; got != 0 {
		t.Fatalf("particles after 30 ticks = %d, want 0", got)
	}
}

func TestMessageRotatesAfterCountdown(t *testing.T) {
	tun := quietTuning()
	tun.Actor.Gravity = 0
	f := newFixture(tun)
	e := f.engine
	e.Start()

	for i := 0; i < 179; i++ {
		e.Tick()
	}
	if got := e.Snapshot().MessageTicks; got != 1 {
		t.Fatalf("message ticks = %d, want 1", got)
	}
	e.Tick()
	snap := e.Snapshot()
	if snap.MessageTicks != 180 {
		t.Fatalf("message ticks after expiry = %d, want 180", snap.MessageTicks)
	}
	found := false
	for _, m := range Messages {
		if m == snap.Message {
			found = true
		}
	}
	if !found {
		t.Fatalf("message %q not in the rotation", snap.Message)
	}
}

func TestSpeedRampsEveryTick(t *testing.T) {
	tun := quietTuning()
	tun.Actor.Gravity = 0
	f := newFixture(tun)
	e := f.engine
	e.Start()
	prev := e.Snapshot().Speed
	for i := 0; i < 100; i++ {
		e.Tick()
		s := e.Snapshot().Speed
		if s <= prev {
			t.Fatalf("tick %d: speed %v did not increase from %v", i, s, prev)
		}
		prev = s
	}
	if math.Abs(prev-2.1) > 1e-9 {
		t.Fatalf("speed after 100 ticks = %v, want 2.1", prev)
	}
}

func TestSpawnPlacesEntitiesAtRightEdge(t *testing.T) {
	tun := quietTuning()
	tun.Spawn.HazardChance = 1
	tun.Spawn.BonusChance = 1
	tun.Actor.Gravity = 0
	f := newFixture(tun)
	e := f.engine
	e.Start()
	e.Tick()

	hs, bs := e.Hazards(), e.Bonuses()
	if len(hs) != 1 || len(bs) != 1 {
		t.Fatalf("spawned %d hazards and %d bonuses, want 1 each", len(hs), len(bs))
	}
	if hs[0].X != 798 || bs[0].X != 798 {
		t.Fatalf("spawn x = %v, %v, want 798 after one scroll", hs[0].X, bs[0].X)
	}
	for _, y := range []float64{hs[0].Y, bs[0].Y} {
		if y < 50 || y > 350 {
			t.Fatalf("spawn y = %v outside the safe band", y)
		}
	}
}

func TestSeededSpawnsAreReproducible(t *testing.T) {
	run := func() Snapshot {
		e := New(config.DefaultTuning(), Deps{
			Rand:      rand.New(rand.NewSource(99)),
			Scheduler: clock.NewQueue(clock.NewManual(time.Time{})),
		})
		e.Start()
		for i := 0; i < 600; i++ {
			if i%20 == 0 {
				e.Jump()
			}
			e.Tick()
		}
		return e.Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed, different sessions:\n%+v\n%+v", a, b)
	}
}

func TestMissingSinksAreSafe(t *testing.T) {
	e := New(config.DefaultTuning(), Deps{})
	c := draw.NewScaledCanvas(80, 20, 800, 400)
	e.Start()
	e.SpawnHazardAt(e.actor.X, e.actor.Y, object.KindSpinner)
	e.SpawnBonusAt(300, 100)
	for i := 0; i < 120; i++ {
		c.Clear()
		e.Frame(c)
		e.Jump()
	}
	if e.Snapshot().Lives != 2 {
		t.Fatalf("lives = %d, want 2", e.Snapshot().Lives)
	}
}
