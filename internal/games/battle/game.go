package battle

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

// Game adapts a Machine to the core.Game interface driven by the platform
// layers. It owns pausing and deferred reconfiguration; the machine itself
// knows nothing about either.
type Game struct {
	cfg     config.BattleConfig
	pending *config.BattleConfig
	logger  *log.Logger
	runtime core.RuntimeConfig

	machine *Machine
	paused  bool
}

// NewGame validates cfg and returns an adapter ready for Reset.
func NewGame(cfg config.BattleConfig, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{cfg: cfg, logger: logger, runtime: core.DefaultConfig()}
	g.Reset(g.runtime)
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "battle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Battle Encounter"
}

// Reset starts a fresh encounter, applying any pending configuration.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	m, err := New(g.cfg, WithSeed(runtime.Seed), WithLogger(g.logger))
	if err != nil {
		// cfg passed Validate in NewGame or Reconfigure
		g.logger.Error("reset failed", "error", err)
		return
	}
	g.machine = m
	g.paused = false
}

// Reconfigure stages cfg for the next restart. The running encounter is
// never mutated mid-phase.
func (g *Game) Reconfigure(cfg config.BattleConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	g.pending = &cfg
	g.logger.Info("config staged for next restart")
	return nil
}

// Pending reports whether a staged configuration is waiting for a restart.
func (g *Game) Pending() bool {
	return g.pending != nil
}

// Step maps platform input onto an intent and advances the machine.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if in.Has(core.ActionPause) && g.machine.State() != StateDefeated {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	intent := IntentFromInput(in)
	if intent.Restart && g.machine.State() == StateDefeated && g.pending != nil {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	g.machine.Step(intent, dt)
	return core.StepResult{State: g.State()}
}

// IntentFromInput translates held actions into a movement intent.
// Opposite directions cancel out.
func IntentFromInput(in core.InputFrame) Intent {
	dx, dy := in.Axis()
	return Intent{
		Move:    core.Vec{X: dx, Y: dy},
		Advance: in.Has(core.ActionConfirm),
		Restart: in.Has(core.ActionRestart),
	}
}

// State returns the current game state. Score is the number of phases
// reached.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.machine.Phase(),
		GameOver: g.machine.State() == StateDefeated,
		Paused:   g.paused,
	}
}

// Snapshot returns the machine's current snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.machine.Snapshot()
}

// Paused reports whether the simulation is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	snap := g.machine.Snapshot()
	Render(dst, &snap, g.paused)
}
