// Package input turns raw terminal input into per-frame activations.
package input

import (
	"bufio"
	"strconv"
)

// Click is a mouse press at a 1-based terminal cell.
type Click struct {
	Col, Row int
}

// Input is everything that happened since the previous frame. Counters are
// discrete activations, not held-key state.
type Input struct {
	Quit    bool
	Exit    bool
	Restart bool
	Jump    int // space, w, up arrow
	Logo    int // f
	Clicks  []Click
	Resized bool
}

// Empty reports whether nothing happened.
func (in Input) Empty() bool {
	return !in.Quit && !in.Exit && !in.Restart && !in.Resized &&
		in.Jump == 0 && in.Logo == 0 && len(in.Clicks) == 0
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // incomplete escape sequence carried to the next frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the reader hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. An ESC that ended the previous frame is held back one frame:
// it is the Exit key unless the next bytes continue an escape sequence.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	carried := len(buf)

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	fresh := len(buf) > carried
	var exit bool
	if isLoneEsc(buf[:carried]) && fresh && buf[1] != '[' && buf[1] != 'O' {
		exit = true
		buf = buf[1:]
	}

	in, rest := Parse(buf)
	if isLoneEsc(rest) && (!fresh || s.closed) {
		exit = true
		rest = nil
	}
	in.Exit = in.Exit || exit
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		in.Quit = true
	}
	return in
}

func isLoneEsc(b []byte) bool {
	return len(b) == 1 && b[0] == '\x1b'
}

// Parse decodes keys, CSI arrows, SS3 arrows and SGR mouse reports. An
// escape sequence cut off at the end of buf, including a trailing ESC, is
// returned as rest. ESC followed by another ESC is the Exit key; ESC
// followed by any other byte is an Alt chord and is ignored.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			continue
		}

		if i+1 == len(buf) {
			return in, buf[i:]
		}
		switch buf[i+1] {
		case '[':
			n, complete := parseCSI(buf[i+2:], &in)
			if !complete {
				return in, buf[i:]
			}
			i += 1 + n
		case 'O':
			if i+2 == len(buf) {
				return in, buf[i:]
			}
			if buf[i+2] == 'A' {
				in.Jump++
			}
			i += 2
		case '\x1b':
			in.Exit = true
			i++
		default:
			i++
		}
	}
	return in, nil
}

// parseCSI parses the sequence after "ESC [". Returns the bytes consumed and
// false if the sequence is incomplete.
func parseCSI(seq []byte, in *Input) (int, bool) {
	if len(seq) == 0 {
		return 0, false
	}
	switch seq[0] {
	case 'A': // Up arrow
		in.Jump++
		return 1, true
	case 'B', 'C', 'D': // Other arrows
		return 1, true
	case '<':
		return parseSGRMouse(seq, in)
	}

	// Skip any other CSI sequence up to its final byte.
	for j, c := range seq {
		if c >= 0x40 && c <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse parses "<b;x;yM" (press) or "<b;x;ym" (release).
func parseSGRMouse(seq []byte, in *Input) (int, bool) {
	end := -1
	for j := 1; j < len(seq); j++ {
		if seq[j] == 'M' || seq[j] == 'm' {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, false
	}

	fields := splitFields(seq[1:end])
	if len(fields) != 3 || seq[end] != 'M' {
		return end + 1, true
	}
	button, err1 := strconv.Atoi(fields[0])
	col, err2 := strconv.Atoi(fields[1])
	row, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return end + 1, true
	}
	// Motion (32) and wheel (64) reports are not clicks.
	if button&(32|64) == 0 {
		in.Clicks = append(in.Clicks, Click{Col: col, Row: row})
	}
	return end + 1, true
}

func splitFields(b []byte) []string {
	var fields []string
	start := 0
	for j, c := range b {
		if c == ';' {
			fields = append(fields, string(b[start:j]))
			start = j + 1
		}
	}
	return append(fields, string(b[start:]))
}

// applyByte handles single-byte keys.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case ' ', 'w', 'W':
		in.Jump++
	case 'f', 'F':
		in.Logo++
	case 'r', 'R':
		in.Restart = true
	}
}
