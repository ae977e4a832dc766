// battle is a turn-based bullet-hell encounter for the terminal and desktop.
//
// Usage:
//
//	battle play              - Play in the terminal
//	battle window            - Play in a desktop window
//	battle sim               - Run a headless encounter and print a summary
//	battle config default    - Print the embedded default config
//	battle config check      - Validate a config file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Use a custom battle config YAML
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battle",
	Short: "Battle - a turn-based bullet-hell encounter",
	Long: `Battle alternates scripted dialogue with timed dodge phases. Survive the
attack patterns inside the arena; lose all health and the encounter ends.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run a headless encounter with an autopilot
  config   - Print or validate configuration

Examples:
  battle play
  battle play --config ./my-battle.yaml --watch
  battle window --fps 120
  battle sim --policy evade --duration 2m
  battle config check ./my-battle.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom battle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Without --log-file the logger writes
// to fallback, which interactive commands set to io.Discard so log lines
// never land on the screen they draw.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "battle",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig resolves the battle config from --config or the search path.
func loadConfig(logger *log.Logger) (config.BattleConfig, error) {
	cfg, err := config.LoadBattle(flagConfig)
	if err != nil {
		return config.BattleConfig{}, err
	}
	if path := config.Locate(flagConfig); path != "" {
		logger.Info("config loaded", "path", path)
	} else {
		logger.Info("using embedded default config")
	}
	return cfg, nil
}

// runtimeConfig builds the platform config from global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
