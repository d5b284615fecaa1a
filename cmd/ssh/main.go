// asteroids-ssh serves the arena over SSH. Every connection plays its own
// independent game; finished games go to a shared results database.
//
// Environment:
//
//	SSH_HOST      - Listen host (default ::)
//	SSH_PORT      - Listen port (default 2222)
//	SSH_HOST_KEY  - Host key path, generated if missing
//	SCORES_DB     - Results database (empty disables)
//	GAME_CONFIG   - Game config YAML (default: search order of internal/config)
//	LOG_LEVEL     - debug, info, warn or error
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/asteroids-arena/internal/config"
	"github.com/tomz197/asteroids-arena/internal/draw"
	"github.com/tomz197/asteroids-arena/internal/game"
	"github.com/tomz197/asteroids-arena/internal/loop"
	"github.com/tomz197/asteroids-arena/internal/storage"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoresDB    = "/app/data/scores.db"
	shutdownTimeout    = 10 * time.Second
)

// server holds what every connection shares: the read-only game config and
// the results ledger.
type server struct {
	cfg      config.Game
	recorder loop.Recorder
	logger   *log.Logger
	root     context.Context
}

func main() {
	level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "asteroids-ssh",
		Level:           level,
	})

	if err := run(logger); err != nil {
		logger.Fatal("server failed", "error", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("SCORES_DB", defaultScoresDB)

	cfg, err := config.Load(os.Getenv("GAME_CONFIG"))
	if err != nil {
		return err
	}
	logger.Info("SSH config", "host", host, "port", port, "host_key", hostKeyPath, "db", dbPath)

	root, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &server{cfg: cfg, logger: logger, root: root}
	if dbPath != "" {
		store, err := storage.Open(dbPath)
		if err != nil {
			// Continue without storage
			logger.Warn("could not open results database", "error", err)
		} else {
			defer store.Close()
			srv.recorder = store
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	logger.Info("starting SSH server", "address", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("shutting down...")
	// Ends every running game so its connection closes.
	cancel()

	ctx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameMiddleware runs one game for the session's lifetime.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := srv.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				tracker.update(win.Width, win.Height)
			}
		}()

		session, err := game.New(srv.cfg.Arena.Width, srv.cfg.Arena.Height, srv.cfg, game.WithLogger(logger))
		if err != nil {
			logger.Error("create game", "error", err)
			fmt.Fprintln(sess, "Error: could not start a game.")
			return
		}

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopAfter := context.AfterFunc(srv.root, cancel)
		defer stopAfter()

		runner := loop.NewRunner(session, bufio.NewReader(sess), sess, srv.runnerOptions(sess, tracker, logger))
		if err := runner.Run(ctx); err != nil {
			logger.Error("game error", "error", err)
		}

		logger.Info("session ended", "score", session.Score(), "phase", session.Phase())
		next(sess)
	}
}

func (srv *server) runnerOptions(sess ssh.Session, tracker *sizeTracker, logger *log.Logger) loop.Options {
	// The session has no file descriptor for detection; PTY clients get 256 colours.
	renderer := lipgloss.NewRenderer(sess)
	renderer.SetColorProfile(termenv.ANSI256)

	return loop.Options{
		Player:       sess.User(),
		Logger:       logger,
		Recorder:     srv.recorder,
		TermSizeFunc: tracker.getSize,
		Renderer:     renderer,
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
