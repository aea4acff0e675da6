package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/input"
)

// Run drives the page over raw ANSI output until the visitor quits, the
// input closes or ctx ends. w must be a terminal in raw mode.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	opts = opts.withDefaults()

	termWidth, termHeight, err := opts.TermSize()
	if err != nil {
		return err
	}
	s := newSession(opts, termWidth, termHeight)
	stream := input.StartStream(r)
	out := draw.NewChunkWriter(w)

	draw.ClearScreen(out)
	draw.HideCursor(out)
	draw.EnableMouse(out)
	if err := out.Flush(); err != nil {
		return err
	}
	defer func() {
		draw.DisableMouse(out)
		draw.ResetStyle(out)
		draw.ShowCursor(out)
		draw.ClearScreen(out)
		_ = out.Flush()
	}()

	opts.Logger.Debug("ansi session started", "cols", termWidth, "rows", termHeight)

	return stopToNil(opts.Driver.Run(ctx, func() error {
		in := input.ReadInput(stream)

		if cols, rows, err := opts.TermSize(); err == nil && s.resize(cols, rows) {
			draw.ClearScreen(out)
		}
		if s.step(in) {
			return errStop
		}

		if err := s.canvas.Render(out); err != nil {
			return err
		}
		if err := s.canvas.RenderBorder(out); err != nil {
			return err
		}
		return out.Flush()
	}))
}
