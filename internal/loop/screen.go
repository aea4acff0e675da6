package loop

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/debugbird/internal/input"
)

// RunScreen drives the page on an initialized tcell screen until the visitor
// quits or ctx ends. The caller owns the screen and calls Fini.
func RunScreen(ctx context.Context, screen tcell.Screen, opts Options) error {
	opts = opts.withDefaults()

	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()
	cols, rows := screen.Size()
	s := newSession(opts, cols, rows)

	eventCh := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	opts.Logger.Debug("screen session started", "cols", cols, "rows", rows)

	var events input.Events
	return stopToNil(opts.Driver.Run(ctx, func() error {
	drain:
		for {
			select {
			case ev := <-eventCh:
				events.Add(ev)
			default:
				break drain
			}
		}
		in := events.Take()

		if in.Resized {
			screen.Sync()
		}
		if s.resize(screen.Size()) {
			screen.Clear()
		}
		if s.step(in) {
			return errStop
		}

		s.canvas.RenderScreen(screen)
		screen.Show()
		return nil
	}))
}
