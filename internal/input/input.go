// Package input turns a raw terminal byte stream into held-key state.
package input

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/asteroids-arena/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report presses (and autorepeats), never releases.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Escape bool
	Closed bool // The underlying reader hit EOF or an error
}

// Controls maps held keys to the simulation controls.
func (in Input) Controls() object.Controls {
	return object.Controls{
		Forward: in.Up,
		Back:    in.Down,
		Left:    in.Left,
		Right:   in.Right,
		Fire:    in.Space,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return s.readAt(time.Now())
}

// ResetKeyInput forgets every held key, so a key held across a screen change
// does not trigger the next screen.
func (s *Stream) ResetKeyInput() {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

func (s *Stream) readAt(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
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

	s.apply(buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:   held(s.state.quit) || s.closed,
		Left:   held(s.state.left),
		Right:  held(s.state.right),
		Up:     held(s.state.up),
		Down:   held(s.state.down),
		Space:  held(s.state.space),
		Enter:  held(s.state.enter),
		Escape: held(s.state.escape),
		Closed: s.closed,
	}
}

// apply parses the collected bytes and updates key state timestamps.
func (s *Stream) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
