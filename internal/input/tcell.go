package input

import (
	"github.com/gdamore/tcell/v2"
)

// Events accumulates tcell events into an Input between frames.
type Events struct {
	in      Input
	buttons tcell.ButtonMask
}

// Add translates one event. Mouse presses count once, on the edge from no
// button to a button.
func (e *Events) Add(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			e.in.Quit = true
		case tcell.KeyEscape:
			e.in.Exit = true
		case tcell.KeyUp:
			e.in.Jump++
		case tcell.KeyRune:
			applyRune(&e.in, ev.Rune())
		}
	case *tcell.EventMouse:
		pressed := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		if pressed != 0 && e.buttons == 0 {
			x, y := ev.Position()
			// tcell positions are 0-based.
			e.in.Clicks = append(e.in.Clicks, Click{Col: x + 1, Row: y + 1})
		}
		e.buttons = pressed
	case *tcell.EventResize:
		e.in.Resized = true
	}
}

// Take returns the accumulated input and starts a new frame.
func (e *Events) Take() Input {
	in := e.in
	e.in = Input{}
	return in
}

func applyRune(in *Input, r rune) {
	if r < 0x80 {
		applyByte(in, byte(r))
	}
}
