// Package portfolio is the terminal portfolio page that hosts the hidden
// game. It owns the layout, routes input and performs the visual side of the
// easter-egg reveal.
package portfolio

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/debugbird/internal/clock"
	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/easteregg"
	"github.com/tomz197/debugbird/internal/game"
	"github.com/tomz197/debugbird/internal/input"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/physics"
)

// Logical page size. The playfield keeps its own size and is placed inside.
const (
	Width  = 800.0
	Height = 660.0
)

// Options configure a Page.
type Options struct {
	Tuning    config.Tuning
	Content   Content
	Scheduler clock.Scheduler
	Rand      *rand.Rand
	Sounds    game.Sounds
	Logger    *log.Logger
}

// Mapper converts a 1-based terminal cell to page coordinates.
type Mapper interface {
	TerminalToLogical(col, row int) (x, y float64, ok bool)
}

// Page is one visitor's portfolio page. Not safe for concurrent use.
type Page struct {
	opts    Options
	content Content
	log     *log.Logger
	seq     *easteregg.Sequencer
	engine  *game.Engine

	logo      physics.Rect
	playfield physics.Rect

	// Pushed copies from the engine.
	score, lives int
	finalScore   int
	gameOver     bool

	// Reveal state.
	shakeFrame int
	overlay    []string
	panel      bool
	revealed   int
}

// Compile-time checks.
var (
	_ easteregg.Host = (*Page)(nil)
	_ game.Display   = (*Page)(nil)
)

// New creates a page in its normal (armed) state.
func New(opts Options) *Page {
	p := &Page{
		opts:    opts,
		content: opts.Content,
		log:     logging.OrDiscard(opts.Logger),
		lives:   opts.Tuning.Lives,
	}
	if len(p.content.Console) == 0 && p.content.Name == "" {
		p.content = DefaultContent()
	}
	p.logo = physics.Rect{X: 20, Y: 12, W: 140, H: 36}
	p.playfield = physics.Rect{
		X: (Width - opts.Tuning.Playfield.Width) / 2,
		Y: Height - opts.Tuning.Playfield.Height - 10,
		W: opts.Tuning.Playfield.Width,
		H: opts.Tuning.Playfield.Height,
	}
	p.seq = easteregg.New(opts.Scheduler, p, p.newGame, p.log)
	return p
}

func (p *Page) newGame() easteregg.Game {
	p.engine = game.New(p.opts.Tuning, game.Deps{
		Rand:      p.opts.Rand,
		Scheduler: p.opts.Scheduler,
		Display:   p,
		Sounds:    p.opts.Sounds,
		Logger:    p.log,
	})
	return p.engine
}

// Sequencer exposes the easter-egg state.
func (p *Page) Sequencer() *easteregg.Sequencer {
	return p.seq
}

// Engine returns the game engine, or nil before the first reveal.
func (p *Page) Engine() *game.Engine {
	return p.engine
}

// LogoRect returns the logo's bounds in page coordinates.
func (p *Page) LogoRect() physics.Rect {
	return p.logo
}

// PlayfieldRect returns where the playfield is drawn in page coordinates.
func (p *Page) PlayfieldRect() physics.Rect {
	return p.playfield
}

// HandleInput routes one frame of input. Returns true when the visitor quits.
func (p *Page) HandleInput(in input.Input, m Mapper) (quit bool) {
	if in.Quit {
		return true
	}

	for i := 0; i < in.Logo; i++ {
		p.seq.Activate()
	}

	for _, c := range in.Clicks {
		x, y, ok := m.TerminalToLogical(c.Col, c.Row)
		if !ok {
			continue
		}
		switch {
		case p.logo.Contains(x, y):
			p.seq.Activate()
		case p.panel && p.playfield.Contains(x, y):
			p.jump()
		}
	}

	for i := 0; i < in.Jump; i++ {
		p.jump()
	}

	if in.Restart && p.panel {
		p.seq.Restart()
	}
	if in.Exit && (p.panel || p.seq.State() != easteregg.StateArmed) {
		p.seq.Exit()
	}
	return false
}

func (p *Page) jump() {
	if p.engine != nil {
		p.engine.Jump()
	}
}

// DebugMode reports whether the debug panel is open.
func (p *Page) DebugMode() bool {
	return p.panel
}
