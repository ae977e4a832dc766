package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battle/internal/games/battle"
	"github.com/vovakirdan/tui-battle/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start the encounter in a desktop window at the reference 800x600 layout.

Controls:
  Arrows/WASD  - Move (dodge phases)
  Space/Enter  - Continue dialogue
  P/Esc        - Pause
  R            - Restart (after defeat)
  Q            - Quit`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
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
	rc := runtimeConfig(int(cfg.Field.Width), int(cfg.Field.Height))
	game.Reset(rc)

	logger.Info("starting encounter", "seed", rc.Seed, "fps", rc.TickRate)
	return window.Run(game, rc.TickRate, logger)
}
