// Package loop runs the portfolio page at a fixed frame rate on a terminal,
// either over raw ANSI output (local or SSH) or through a tcell screen.
package loop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/input"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/object"
	"github.com/tomz197/debugbird/internal/portfolio"
)

// errStop ends the driver loop without reporting an error.
var errStop = errors.New("session ended")

// Options configure a session.
type Options struct {
	Page     portfolio.Options
	TermSize draw.TermSizeFunc // ANSI backend only
	Clock    clock.Clock
	Driver   clock.Driver

	// Zero disables the inactivity warning or disconnect.
	IdleWarn    time.Duration
	IdleTimeout time.Duration

	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.TermSize == nil {
		o.TermSize = draw.DefaultTermSizeFunc
	}
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Driver == nil {
		o.Driver = clock.NewFixedRate(config.TargetFPS)
	}
	o.Logger = logging.OrDiscard(o.Logger)
	if o.Page.Logger == nil {
		o.Page.Logger = o.Logger
	}
	if o.Page.Tuning.Playfield.Width == 0 {
		o.Page.Tuning = config.DefaultTuning()
	}
	return o
}

// session is the backend-independent part of a frame.
type session struct {
	opts   Options
	log    *log.Logger
	queue  *clock.Queue
	page   *portfolio.Page
	canvas *draw.Canvas

	lastInput time.Time
	idle      bool
}

func newSession(opts Options, termWidth, termHeight int) *session {
	s := &session{
		opts:      opts,
		log:       opts.Logger,
		queue:     clock.NewQueue(opts.Clock),
		lastInput: opts.Clock.Now(),
	}
	opts.Page.Scheduler = s.queue
	s.page = portfolio.New(opts.Page)

	w, h, col, row := clampTermSize(termWidth, termHeight)
	s.canvas = draw.NewScaledCanvas(w, h, portfolio.Width, portfolio.Height)
	s.canvas.SetOffset(col, row)
	return s
}

// resize fits the canvas to a new terminal size. Returns true when the
// render area moved or changed size and the terminal needs a full clear.
func (s *session) resize(termWidth, termHeight int) bool {
	w, h, col, row := clampTermSize(termWidth, termHeight)
	if w == s.canvas.TerminalWidth() && h == s.canvas.TerminalHeight() &&
		col == s.canvas.OffsetCol() && row == s.canvas.OffsetRow() {
		return false
	}
	s.canvas.Resize(w, h)
	s.canvas.SetOffset(col, row)
	s.canvas.ForceRedraw()
	return true
}

// step runs timers, routes input and paints the page onto the canvas.
// Returns true when the session should end.
func (s *session) step(in input.Input) bool {
	s.queue.RunDue()

	now := s.opts.Clock.Now()
	activity := in
	activity.Resized = false
	switch {
	case !activity.Empty():
		s.lastInput = now
		s.idle = false
	case s.opts.IdleTimeout > 0 && now.Sub(s.lastInput) > s.opts.IdleTimeout:
		s.log.Info("disconnecting idle visitor", "idle", now.Sub(s.lastInput).Round(time.Second))
		return true
	case s.opts.IdleWarn > 0 && now.Sub(s.lastInput) > s.opts.IdleWarn:
		s.idle = true
	}

	if s.page.HandleInput(in, s.canvas) {
		return true
	}

	s.canvas.Clear()
	s.page.Frame(s.canvas)
	if s.idle {
		s.drawIdleWarning()
	}
	return false
}

func (s *session) drawIdleWarning() {
	left := s.opts.IdleTimeout - s.opts.Clock.Now().Sub(s.lastInput)
	s.canvas.FillRect(portfolio.Width/2-220, portfolio.Height/2-30, 440, 60, object.ColorBackground)
	s.canvas.FillText(portfolio.Width/2, portfolio.Height/2-8, "Still there?", object.ColorMessage, draw.AlignCenter)
	if left > 0 {
		s.canvas.FillText(portfolio.Width/2, portfolio.Height/2+12,
			"Disconnecting in "+left.Round(time.Second).String(), object.ColorInk, draw.AlignCenter)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxRenderWidth)
	renderHeight = min(termHeight, config.MaxRenderHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func stopToNil(err error) error {
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}
