// Package loop drives a game session on a terminal: it reads input, ticks the
// session at a fixed frame rate, and draws the arena plus the title and end
// screens.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-arena/internal/draw"
	"github.com/tomz197/asteroids-arena/internal/game"
	"github.com/tomz197/asteroids-arena/internal/input"
	"github.com/tomz197/asteroids-arena/internal/object"
)

const defaultFPS = 60

// maxFrameDelta caps the simulated time of one frame so a stalled terminal
// does not teleport entities through each other.
const maxFrameDelta = 100 * time.Millisecond

// Game is the session the runner drives. *game.Session implements it.
type Game interface {
	Tick(dt time.Duration, c object.Controls) game.Phase
	Render(r object.Renderer)
	Confirm()
	Phase() game.Phase
	Result() game.Result
	Size() (width, height float64)
}

// Recorder stores finished games.
type Recorder interface {
	SaveResult(ctx context.Context, player string, r game.Result) error
}

// Options configures a Runner. Zero values pick defaults.
type Options struct {
	Player       string             // Name stored with results
	FPS          int                // Frames per second, default 60
	Logger       *log.Logger        // Default discards
	Recorder     Recorder           // Optional result ledger
	TermSizeFunc draw.TermSizeFunc  // Default reads os.Stdout
	Renderer     *lipgloss.Renderer // Styles screen text; default detects from the output writer
}

// Runner owns the terminal side of one session.
type Runner struct {
	game     Game
	stream   *input.Stream
	w        io.Writer
	cw       *draw.ChunkWriter
	surface  *draw.Surface
	screens  screens
	log      *log.Logger
	recorder Recorder
	player   string
	termSize draw.TermSizeFunc
	frame    time.Duration

	termCols, termRows int
	drawnPhase         game.Phase
	needsClear         bool
	running            bool
}

// NewRunner prepares a runner reading keys from r and drawing to w.
func NewRunner(g Game, r io.Reader, w io.Writer, opts Options) *Runner {
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	width, height := g.Size()
	return &Runner{
		game:       g,
		stream:     input.StartStream(r),
		w:          w,
		cw:         draw.NewChunkWriter(w, 0, 0),
		surface:    draw.NewSurface(draw.NewCanvas(0, 0, width, height)),
		screens:    newScreens(renderer),
		log:        logger,
		recorder:   opts.Recorder,
		player:     opts.Player,
		termSize:   termSize,
		frame:      time.Second / time.Duration(fps),
		drawnPhase: g.Phase(),
		needsClear: true,
		running:    true,
	}
}

// Run pumps frames until the player quits, the input closes or ctx is
// cancelled. The terminal is restored before returning.
func (r *Runner) Run(ctx context.Context) error {
	if err := draw.EnterScreen(r.w); err != nil {
		return fmt.Errorf("loop: enter screen: %w", err)
	}
	defer func() {
		_ = draw.LeaveScreen(r.w)
	}()

	r.log.Info("session started", "player", r.player)
	lastTime := time.Now()
	for r.running {
		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), maxFrameDelta)
		lastTime = frameStart

		r.step(ctx, input.ReadInput(r.stream), delta)

		if err := r.render(); err != nil {
			return fmt.Errorf("loop: render: %w", err)
		}

		select {
		case <-ctx.Done():
			r.log.Info("session cancelled", "player", r.player)
			return nil
		case <-time.After(r.frame - time.Since(frameStart)):
		}
	}
	r.log.Info("session ended", "player", r.player, "score", r.game.Result().Score)
	return nil
}

// step applies one frame of input and advances the game.
func (r *Runner) step(ctx context.Context, in input.Input, dt time.Duration) {
	if in.Quit || (in.Escape && r.game.Phase() != game.Playing) {
		r.running = false
		return
	}

	if in.Enter && r.game.Phase() != game.Playing {
		r.stream.ResetKeyInput()
		r.game.Confirm()
		r.log.Debug("game confirmed", "player", r.player, "phase", r.game.Phase())
		// Keys held on the confirm frame do not leak into play.
		in = input.Input{}
	}

	before := r.game.Phase()
	after := r.game.Tick(dt, in.Controls())
	if after != before && after.Terminal() {
		r.record(ctx)
	}
}

// record logs a finished game and hands it to the recorder. Storage failures
// are logged; they never end the session.
func (r *Runner) record(ctx context.Context) {
	res := r.game.Result()
	r.log.Info("game finished", "player", r.player, "phase", res.Phase, "score", res.Score, "ticks", res.Ticks)
	if r.recorder == nil {
		return
	}
	if err := r.recorder.SaveResult(ctx, r.player, res); err != nil {
		r.log.Error("save result", "player", r.player, "err", err)
	}
}

// render draws one frame into the chunk writer and flushes it.
func (r *Runner) render() error {
	r.updateScreen()

	phase := r.game.Phase()
	if phase != r.drawnPhase {
		r.drawnPhase = phase
		r.needsClear = true
	}

	canvas := r.surface.Canvas()
	if r.needsClear {
		r.needsClear = false
		r.cw.ClearScreen()
		canvas.ForceRedraw()
		if err := canvas.RenderBorder(r.cw); err != nil {
			return err
		}
	}

	r.surface.Begin()
	if phase != game.NotStarted {
		r.game.Render(r.surface)
	}
	if err := r.surface.Flush(r.cw); err != nil {
		return err
	}
	r.screens.draw(r.cw, canvas.TerminalWidth(), canvas.TerminalHeight(), phase, r.game.Result())

	return r.cw.Flush()
}

// updateScreen refits the render area when the terminal size changed.
func (r *Runner) updateScreen() {
	cols, rows, err := r.termSize()
	if err != nil || (cols == r.termCols && rows == r.termRows) {
		return
	}
	r.termCols, r.termRows = cols, rows

	width, height := r.game.Size()
	fit := fitArena(cols, rows, width, height)
	canvas := r.surface.Canvas()
	canvas.Resize(fit.cols, fit.rows)
	canvas.SetOffset(fit.offCol, fit.offRow)
	r.cw.SetOffset(fit.offCol, fit.offRow)
	r.needsClear = true
	r.log.Debug("terminal resized", "cols", cols, "rows", rows, "render_cols", fit.cols, "render_rows", fit.rows)
}

// viewport is the render area inside the terminal.
type viewport struct {
	cols, rows     int
	offCol, offRow int
}

// fitArena finds the largest render area with the arena's aspect ratio that
// fits the terminal while leaving a one-cell frame for the border. A cell is
// one pixel wide and two half-block pixels tall, so pixels are about square.
func fitArena(termCols, termRows int, width, height float64) viewport {
	availCols := max(termCols-2, 1)
	availRows := max(termRows-2, 1)

	scale := min(float64(availCols)/width, float64(availRows*2)/height)
	// The epsilon keeps exact fits from flooring one cell short.
	cols := max(int(width*scale+1e-9), 1)
	rows := max(int(height*scale/2+1e-9), 1)

	return viewport{
		cols:   cols,
		rows:   rows,
		offCol: max((termCols-cols)/2, 0),
		offRow: max((termRows-rows)/2, 0),
	}
}
