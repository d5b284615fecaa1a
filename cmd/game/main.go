// asteroids runs the arena in the local terminal.
//
// Usage:
//
//	asteroids              - Play
//	asteroids scores       - Show the best finished games
//
// Flags:
//
//	--config <path>    - Game config YAML (default: search ~/.asteroids, ./configs, built-in)
//	--seed <value>     - RNG seed for reproducible games (0 = time based)
//	--fps <rate>       - Frame rate (default: 60)
//	--db <path>        - Results database (default: ~/.asteroids/scores.db, empty disables)
//	--control <model>  - Ship control model: thrust or translate
//	--log-file <path>  - Write logs to a file; the terminal is busy with the game
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-arena/internal/config"
	"github.com/tomz197/asteroids-arena/internal/game"
	"github.com/tomz197/asteroids-arena/internal/loop"
	"github.com/tomz197/asteroids-arena/internal/storage"
)

var (
	flagConfig   string
	flagSeed     int64
	flagFPS      int
	flagDBPath   string
	flagControl  string
	flagLogFile  string
	flagLogLevel string
	flagPlayer   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids arena survival in your terminal",
	Long: `Survive an arena of drifting asteroids. Shoot them to score; big ones
split in two. The game is won at the configured score and lost when the
ship runs out of health.

Controls:
  A/D or ←/→   - Turn
  W/S or ↑/↓   - Thrust / reverse
  Space        - Fire
  Enter        - Start / play again
  Q/Ctrl+C     - Quit

Examples:
  asteroids
  asteroids --control translate
  asteroids --seed 42 --config ./my-arena.yaml
  asteroids scores`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.asteroids/scores.db", "Path to results database (empty disables)")

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "Frames per second")
	rootCmd.Flags().StringVar(&flagControl, "control", "", "Control model: thrust or translate (overrides config)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagPlayer, "player", config.GetEnv("USER", "player"), "Name stored with your results")

	rootCmd.AddCommand(scoresCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagControl != "" {
		cfg.Ship.Control = flagControl
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}

	logger, closeLog, err := openLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := game.New(cfg.Arena.Width, cfg.Arena.Height, cfg, game.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("game created", "seed", session.Seed(), "control", cfg.Ship.Control)

	opts := loop.Options{
		Player:   flagPlayer,
		FPS:      flagFPS,
		Logger:   logger,
		Renderer: lipgloss.NewRenderer(os.Stdout),
	}
	if flagDBPath != "" {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Play on without a ledger.
			logger.Warn("could not open results database", "error", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.NewRunner(session, os.Stdin, os.Stdout, opts).Run(ctx)
}

// openLogger returns a logger writing to path, or a discarding logger when
// path is empty.
func openLogger(path, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "asteroids",
		Level:           lvl,
	})
	return logger, func() { _ = f.Close() }, nil
}
