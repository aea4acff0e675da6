// Package easteregg unlocks the hidden game: a click gesture on the logo
// starts a timed reveal that ends with the game running.
package easteregg

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/logging"
)

// Gesture and reveal timeline.
const (
	ClickThreshold  = 3
	ClickWindow     = time.Second
	OverlayDuration = 2 * time.Second
	PanelDelay      = time.Second
	LineStagger     = 500 * time.Millisecond
	GameDelay       = 3 * time.Second
)

// OverlayLines are shown on the glitch overlay.
var OverlayLines = []string{
	"SYSTEM ERROR",
	"WIDGET OVERFLOW DETECTED",
	"REBOOTING...",
}

// State is the sequencer's lifecycle state.
type State int

const (
	StateArmed State = iota
	StateRevealing
	StateActive
)

func (s State) String() string {
	switch s {
	case StateRevealing:
		return "revealing"
	case StateActive:
		return "active"
	default:
		return "armed"
	}
}

// Game is the part of the engine the sequencer drives.
type Game interface {
	Start()
	Stop()
}

// Host performs the visual side of the reveal.
type Host interface {
	StartShake()
	ClearShake()
	ShowOverlay(lines []string)
	HideOverlay()
	// ShowPanel opens the debug panel and returns how many lines it stages.
	ShowPanel() int
	RevealLine(i int)
	HidePanel()
}

type nopHost struct{}

func (nopHost) StartShake()          {}
func (nopHost) ClearShake()          {}
func (nopHost) ShowOverlay([]string) {}
func (nopHost) HideOverlay()         {}
func (nopHost) ShowPanel() int       { return 0 }
func (nopHost) RevealLine(int)       {}
func (nopHost) HidePanel()           {}

// Sequencer counts logo activations and runs the reveal timeline. Like the
// engine it is single-threaded: Activate, Exit, Restart and the scheduler's
// callbacks must run on the same goroutine.
type Sequencer struct {
	sched   clock.Scheduler
	host    Host
	factory func() Game
	log     *log.Logger

	clicks     int
	clickTimer clock.Timer

	state   State
	game    Game
	pending []clock.Timer

	// overlayGen identifies the latest reveal. A hide timer left over from
	// an earlier reveal must not remove a newer overlay.
	overlayGen uint64

	// own is set when New was given no scheduler; Poll drains it.
	own *clock.Queue
}

// New creates an armed sequencer. factory builds the game the first time the
// reveal completes. With a nil sched the sequencer keeps its own wall-clock
// queue, and the caller must call Poll once per frame.
func New(sched clock.Scheduler, host Host, factory func() Game, logger *log.Logger) *Sequencer {
	if host == nil {
		host = nopHost{}
	}
	s := &Sequencer{
		sched:   sched,
		host:    host,
		factory: factory,
		log:     logging.OrDiscard(logger),
	}
	if sched == nil {
		s.own = clock.NewQueue(clock.Real{})
		s.sched = s.own
	}
	return s
}

// Poll runs due reveal steps when the sequencer owns its scheduler. It does
// nothing when the scheduler was injected.
func (s *Sequencer) Poll() {
	if s.own != nil {
		s.own.RunDue()
	}
}

// Activate registers one logo activation. Returns true if it completed the
// gesture and started the reveal.
func (s *Sequencer) Activate() bool {
	s.clicks++
	if s.clickTimer != nil {
		s.clickTimer.Stop()
		s.clickTimer = nil
	}

	if s.clicks >= ClickThreshold {
		s.clicks = 0
		return s.trigger()
	}

	s.clickTimer = s.sched.AfterFunc(ClickWindow, func() {
		s.clicks = 0
		s.clickTimer = nil
	})
	return false
}

func (s *Sequencer) trigger() bool {
	if s.state != StateArmed {
		return false
	}
	s.state = StateRevealing
	s.log.Debug("easter egg triggered")

	s.host.StartShake()
	s.host.ShowOverlay(OverlayLines)
	s.overlayGen++
	gen := s.overlayGen
	s.sched.AfterFunc(OverlayDuration, func() {
		if gen == s.overlayGen {
			s.host.HideOverlay()
		}
	})

	s.after(PanelDelay, s.showPanel)
	s.after(GameDelay, s.startGame)
	return true
}

// after schedules fn as part of the reveal so Exit can cancel it.
func (s *Sequencer) after(d time.Duration, fn func()) {
	s.pending = append(s.pending, s.sched.AfterFunc(d, fn))
}

func (s *Sequencer) showPanel() {
	n := s.host.ShowPanel()
	for i := 0; i < n; i++ {
		s.after(time.Duration(i)*LineStagger, func() {
			s.host.RevealLine(i)
		})
	}
}

func (s *Sequencer) startGame() {
	if s.game == nil {
		s.game = s.factory()
		s.log.Debug("game created")
	}
	s.game.Start()
	s.state = StateActive
}

// Exit hides the panel, stops the game without resetting it and re-arms
// the gesture. Reveal steps that have not happened yet are cancelled.
func (s *Sequencer) Exit() {
	s.host.HidePanel()
	for _, t := range s.pending {
		t.Stop()
	}
	s.pending = s.pending[:0]

	if s.state != StateArmed {
		s.log.Debug("debug mode exited", "from", s.state)
	}
	s.state = StateArmed
	if s.game != nil {
		s.game.Stop()
	}
	s.host.ClearShake()
}

// Restart starts a fresh session on the existing game, if there is one.
func (s *Sequencer) Restart() {
	if s.game != nil {
		s.game.Start()
	}
}

// State returns the lifecycle state.
func (s *Sequencer) State() State {
	return s.state
}

// Clicks returns the current activation count.
func (s *Sequencer) Clicks() int {
	return s.clicks
}

// Game returns the game, or nil before the first reveal completes.
func (s *Sequencer) Game() Game {
	return s.game
}
