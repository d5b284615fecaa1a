package loop

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arena/internal/config"
	"github.com/tomz197/asteroids-arena/internal/game"
	"github.com/tomz197/asteroids-arena/internal/input"
	"github.com/tomz197/asteroids-arena/internal/object"
	"github.com/tomz197/asteroids-arena/internal/physics"
)

const frame = time.Second / 60

// fakeGame is a scripted session: Tick switches to next once set.
type fakeGame struct {
	phase    game.Phase
	next     game.Phase
	ticks    int
	controls []object.Controls
	confirms int
	score    int
}

func (g *fakeGame) Tick(_ time.Duration, c object.Controls) game.Phase {
	if g.phase != game.Playing {
		return g.phase
	}
	g.ticks++
	g.controls = append(g.controls, c)
	if g.next != game.Playing {
		g.phase = g.next
	}
	return g.phase
}

func (g *fakeGame) Render(r object.Renderer) {
	r.Line(physics.Vec(0, 0), physics.Vec(100, 0))
	r.Text(physics.Vec(0, 0), "Score: 3")
}

func (g *fakeGame) Confirm() {
	g.confirms++
	if g.phase != game.Playing {
		g.phase = game.Playing
		g.next = game.Playing
	}
}

func (g *fakeGame) Phase() game.Phase { return g.phase }

func (g *fakeGame) Result() game.Result {
	return game.Result{Phase: g.phase, Score: g.score, Ticks: uint64(g.ticks)}
}

func (g *fakeGame) Size() (float64, float64) { return 100, 50 }

type fakeRecorder struct {
	saved []game.Result
	names []string
	err   error
}

func (r *fakeRecorder) SaveResult(_ context.Context, player string, res game.Result) error {
	r.saved = append(r.saved, res)
	r.names = append(r.names, player)
	return r.err
}

func fixedSize(cols, rows int) func() (int, int, error) {
	return func() (int, int, error) { return cols, rows, nil }
}

func newTestRunner(g Game, out *bytes.Buffer, opts Options) *Runner {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(42, 22)
	}
	return NewRunner(g, strings.NewReader(""), out, opts)
}

func TestStepQuit(t *testing.T) {
	tests := []struct {
		name  string
		phase game.Phase
		in    input.Input
		stops bool
	}{
		{"q on title", game.NotStarted, input.Input{Quit: true}, true},
		{"q while playing", game.Playing, input.Input{Quit: true}, true},
		{"escape on game over", game.GameOver, input.Input{Escape: true}, true},
		{"escape while playing", game.Playing, input.Input{Escape: true}, false},
		{"arrow keys", game.Playing, input.Input{Left: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGame{phase: tt.phase, next: tt.phase}
			r := newTestRunner(g, &bytes.Buffer{}, Options{})
			r.step(context.Background(), tt.in, frame)
			if r.running == tt.stops {
				t.Errorf("running = %v after %+v", r.running, tt.in)
			}
		})
	}
}

func TestEnterStartsGameWithoutFiring(t *testing.T) {
	g := &fakeGame{phase: game.NotStarted}
	r := newTestRunner(g, &bytes.Buffer{}, Options{})

	r.step(context.Background(), input.Input{Enter: true, Space: true}, frame)
	if g.phase != game.Playing || g.confirms != 1 {
		t.Fatalf("phase = %v, confirms = %d; want playing after one confirm", g.phase, g.confirms)
	}
	if len(g.controls) != 1 || g.controls[0].Fire {
		t.Errorf("confirm frame controls = %+v, want one tick without fire", g.controls)
	}

	r.step(context.Background(), input.Input{Enter: true, Space: true}, frame)
	if g.confirms != 1 {
		t.Errorf("enter while playing confirmed again")
	}
	if !g.controls[1].Fire {
		t.Errorf("space while playing did not fire")
	}
}

func TestStepRecordsFinishedGameOnce(t *testing.T) {
	for _, end := range []game.Phase{game.GameOver, game.Won} {
		t.Run(end.String(), func(t *testing.T) {
			g := &fakeGame{phase: game.Playing, next: end, score: 12}
			rec := &fakeRecorder{}
			r := newTestRunner(g, &bytes.Buffer{}, Options{Recorder: rec, Player: "ada"})

			for range 5 {
				r.step(context.Background(), input.Input{}, frame)
			}
			if len(rec.saved) != 1 {
				t.Fatalf("recorded %d results, want 1", len(rec.saved))
			}
			if rec.saved[0].Phase != end || rec.saved[0].Score != 12 || rec.names[0] != "ada" {
				t.Errorf("recorded %+v for %q", rec.saved[0], rec.names[0])
			}
		})
	}
}

func TestRecorderErrorIsLogged(t *testing.T) {
	var logs bytes.Buffer
	g := &fakeGame{phase: game.Playing, next: game.GameOver}
	rec := &fakeRecorder{err: errors.New("disk full")}
	r := newTestRunner(g, &bytes.Buffer{}, Options{Recorder: rec, Logger: log.New(&logs)})

	r.step(context.Background(), input.Input{}, frame)
	if !r.running {
		t.Error("storage failure ended the session")
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Errorf("log output %q does not mention the error", logs.String())
	}
}

func TestFitArena(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		w, h       float64
		want       viewport
	}{
		{"wide terminal", 102, 27, 800, 600, viewport{cols: 66, rows: 25, offCol: 18, offRow: 1}},
		{"tall terminal", 42, 82, 800, 600, viewport{cols: 40, rows: 15, offCol: 1, offRow: 33}},
		{"exact fit", 82, 32, 80, 60, viewport{cols: 80, rows: 30, offCol: 1, offRow: 1}},
		{"tiny terminal", 1, 1, 800, 600, viewport{cols: 1, rows: 1, offCol: 0, offRow: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitArena(tt.cols, tt.rows, tt.w, tt.h); got != tt.want {
				t.Errorf("fitArena(%d, %d) = %+v, want %+v", tt.cols, tt.rows, got, tt.want)
			}
		})
	}
}

func TestTruncateMeasuresCells(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"fits", "GAME OVER", 20, "GAME OVER"},
		{"ascii", "GAME OVER", 4, "GAME"},
		{"wide glyphs", "アステロイド", 5, "アス"},
		{"symbols", "←/→ turn", 3, "←/→"},
		{"zero", "score", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.width)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
			}
			if w := lipgloss.Width(got); w > tt.width {
				t.Errorf("width = %d, exceeds %d", w, tt.width)
			}
		})
	}
}

func TestRenderTitleScreen(t *testing.T) {
	var out bytes.Buffer
	g := &fakeGame{phase: game.NotStarted}
	r := newTestRunner(g, &out, Options{})

	if err := r.render(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "\033[H\033[2J") {
		t.Errorf("first frame does not clear the screen: %q", got[:min(len(got), 20)])
	}
	if !strings.Contains(got, "A S T E R O I D S") {
		t.Error("title missing from first frame")
	}
	if strings.Contains(got, "Score: 3") {
		t.Error("arena drawn behind the title screen")
	}
}

func TestRenderClearsOnlyOnChange(t *testing.T) {
	var out bytes.Buffer
	g := &fakeGame{phase: game.Playing, next: game.Playing}
	cols := 42
	r := newTestRunner(g, &out, Options{TermSizeFunc: func() (int, int, error) { return cols, 22, nil }})

	_ = r.render()
	if !strings.Contains(out.String(), "Score: 3") {
		t.Errorf("HUD text missing: %q", out.String())
	}

	out.Reset()
	_ = r.render()
	if strings.Contains(out.String(), "\033[2J") {
		t.Error("steady frame cleared the screen")
	}

	out.Reset()
	cols = 60
	_ = r.render()
	if !strings.Contains(out.String(), "\033[2J") {
		t.Error("resize did not clear the screen")
	}

	out.Reset()
	g.phase = game.GameOver
	_ = r.render()
	if !strings.Contains(out.String(), "\033[2J") || !strings.Contains(out.String(), "GAME OVER") {
		t.Error("phase change did not clear and draw the end screen")
	}
}

func TestRunStopsOnClosedInput(t *testing.T) {
	var out bytes.Buffer
	g := &fakeGame{phase: game.NotStarted}
	r := newTestRunner(g, &out, Options{FPS: 1000})

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after the input closed")
	}
	if !strings.HasSuffix(out.String(), "\033[?25h\033[?1049l") {
		t.Error("terminal not restored on exit")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := &fakeGame{phase: game.NotStarted}
	r := NewRunner(g, blockingReader{}, &bytes.Buffer{}, Options{TermSizeFunc: fixedSize(42, 22), FPS: 1000})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() ignored cancellation")
	}
}

// blockingReader never delivers a byte.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

func TestRunnerDrivesSession(t *testing.T) {
	cfg := config.Default()
	cfg.Asteroids.Max = 0
	cfg.Seed = 7
	s, err := game.New(cfg.Arena.Width, cfg.Arena.Height, cfg)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := newTestRunner(s, &out, Options{})
	r.step(context.Background(), input.Input{Enter: true}, frame)
	r.step(context.Background(), input.Input{Space: true}, frame)

	if s.Phase() != game.Playing {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if len(s.Lasers()) != 1 {
		t.Errorf("lasers = %d, want 1", len(s.Lasers()))
	}
	if err := r.render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score: 0") {
		t.Error("session HUD not drawn")
	}
}
