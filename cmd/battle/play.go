package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/games/battle"
	"github.com/vovakirdan/tui-battle/internal/platform/tui"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the encounter in the terminal.

Controls:
  Arrows/WASD  - Move (dodge phases)
  Space/Enter  - Continue dialogue
  P/Esc        - Pause
  R            - Restart (after defeat)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

With --watch, edits to the config file are validated and applied on the
next restart.

Examples:
  battle play
  battle play --seed 42
  battle play --config ./my-battle.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	game, err := battle.NewGame(cfg, logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc := runtimeConfig(width, height)

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagWatch {
		path := config.Locate(flagConfig)
		if path == "" {
			return errors.New("--watch needs a config file; pass --config or create configs/battle.yaml")
		}
		w, err := config.NewWatcher(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer w.Close()
		logger.Info("watching config", "path", w.Path())
		opts = append(opts, tui.WithWatcher(w))
	}

	logger.Info("starting encounter", "seed", rc.Seed, "fps", rc.TickRate)
	if err := tui.Run(game, rc, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
