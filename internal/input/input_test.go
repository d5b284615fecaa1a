package input

import (
	"strings"
	"testing"
	"time"

	"github.com/tomz197/asteroids-arena/internal/object"
)

// bufferedStream returns a stream whose channel already holds data.
func bufferedStream(data string) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	for i := range len(data) {
		s.ch <- data[i]
	}
	return s
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Input
	}{
		{"arrows", "\x1b[A\x1b[D", Input{Up: true, Left: true}},
		{"wasd", "wd", Input{Up: true, Right: true}},
		{"fire and back", " s", Input{Space: true, Down: true}},
		{"enter", "\r", Input{Enter: true}},
		{"bare escape", "\x1b", Input{Escape: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"unknown keys", "zx", Input{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := bufferedStream(tc.data)
			if got := s.readAt(time.Now()); got != tc.want {
				t.Errorf("readAt() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestControls(t *testing.T) {
	in := Input{Up: true, Left: true, Space: true, Enter: true}
	want := object.Controls{Forward: true, Left: true, Fire: true}
	if got := in.Controls(); got != want {
		t.Errorf("Controls() = %+v, want %+v", got, want)
	}
}

func TestKeysStayHeldThenExpire(t *testing.T) {
	s := bufferedStream("d")
	now := time.Now()
	if !s.readAt(now).Right {
		t.Fatal("Right not pressed")
	}
	if !s.readAt(now.Add(keyHoldDuration / 2)).Right {
		t.Error("key should stay held within the hold duration")
	}
	if s.readAt(now.Add(keyHoldDuration)).Right {
		t.Error("key should be released after the hold duration")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := bufferedStream("\r")
	now := time.Now()
	if !s.readAt(now).Enter {
		t.Fatal("Enter not pressed")
	}
	s.ch <- '\r'

	s.ResetKeyInput()

	if s.readAt(now).Enter {
		t.Error("Enter still held after ResetKeyInput")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(strings.NewReader("w"))
	deadline := time.Now().Add(time.Second)
	for {
		in := ReadInput(s)
		if in.Closed {
			if !in.Quit {
				t.Error("closed stream should report Quit")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("stream never reported EOF")
		}
		time.Sleep(time.Millisecond)
	}
}
