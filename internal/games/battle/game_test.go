package battle

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

func newTestGame(t *testing.T, mutate func(*config.BattleConfig)) *Game {
	t.Helper()
	cfg := config.DefaultBattleConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := NewGame(cfg, nil)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	rc := core.DefaultConfig()
	rc.Seed = 42
	g.Reset(rc)
	return g
}

func frameOf(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIdentity(t *testing.T) {
	g := newTestGame(t, nil)
	if g.ID() != "battle" {
		t.Errorf("ID() = %q, expected battle", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() should not be empty")
	}
}

func TestIntentFromInput(t *testing.T) {
	tests := []struct {
		name     string
		in       core.InputFrame
		expected Intent
	}{
		{"none", frameOf(), Intent{}},
		{"up left", frameOf(core.ActionUp, core.ActionLeft), Intent{Move: core.Vec{X: -1, Y: -1}}},
		{"opposites cancel", frameOf(core.ActionLeft, core.ActionRight), Intent{}},
		{"confirm", frameOf(core.ActionConfirm), Intent{Advance: true}},
		{"restart", frameOf(core.ActionRestart), Intent{Restart: true}},
	}

	for _, tt := range tests {
		if got := IntentFromInput(tt.in); got != tt.expected {
			t.Errorf("%s: IntentFromInput() = %+v, expected %+v", tt.name, got, tt.expected)
		}
	}
}

func TestGameConfirmStartsDodge(t *testing.T) {
	g := newTestGame(t, nil)
	res := g.Step(frameOf(core.ActionConfirm), frame)

	if g.Snapshot().State != StateDodge {
		t.Errorf("State = %v, expected dodge", g.Snapshot().State)
	}
	if res.State.Score != 1 {
		t.Errorf("Score = %d, expected phase 1", res.State.Score)
	}
}

func TestGamePauseFreezes(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(frameOf(core.ActionConfirm), frame)

	res := g.Step(frameOf(core.ActionPause), frame)
	if !res.State.Paused || !g.Paused() {
		t.Fatal("expected paused after ActionPause")
	}

	before := g.Snapshot()
	for i := 0; i < 120; i++ {
		g.Step(frameOf(core.ActionRight), frame)
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused game advanced")
	}

	g.Step(frameOf(core.ActionPause), frame)
	if g.Paused() {
		t.Error("second ActionPause should resume")
	}
}

func TestGameReconfigureAppliesOnRestart(t *testing.T) {
	g := newTestGame(t, func(c *config.BattleConfig) {
		c.Player.MaxHealth = 1
	})
	g.Step(frameOf(core.ActionConfirm), frame)

	next := config.DefaultBattleConfig()
	next.Player.MaxHealth = 5
	if err := g.Reconfigure(next); err != nil {
		t.Fatalf("Reconfigure() failed: %v", err)
	}
	if !g.Pending() {
		t.Fatal("expected a pending config")
	}
	if g.Snapshot().MaxHealth != 1 {
		t.Error("running encounter must not change mid-phase")
	}

	g.machine.enc.hazards = append(g.machine.enc.hazards, blocker(g.machine))
	res := g.Step(frameOf(), frame)
	if !res.State.GameOver {
		t.Fatal("expected defeat")
	}

	g.Step(frameOf(core.ActionRestart), frame)
	snap := g.Snapshot()
	if snap.State != StateDialogue || snap.MaxHealth != 5 || snap.Health != 5 {
		t.Errorf("after restart state=%v health=%d/%d, expected dialogue 5/5", snap.State, snap.Health, snap.MaxHealth)
	}
	if g.Pending() {
		t.Error("pending config should be consumed")
	}
}

func TestGameReconfigureRejectsInvalid(t *testing.T) {
	g := newTestGame(t, nil)

	bad := config.DefaultBattleConfig()
	bad.Dialogue.Lines = nil
	err := g.Reconfigure(bad)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Reconfigure() error = %v, expected ErrInvalidConfig", err)
	}
	if g.Pending() {
		t.Error("invalid config must not be staged")
	}
}

func TestGameRestartWithoutPending(t *testing.T) {
	g := newTestGame(t, func(c *config.BattleConfig) {
		c.Player.MaxHealth = 1
	})
	g.Step(frameOf(core.ActionConfirm), frame)
	g.machine.enc.hazards = append(g.machine.enc.hazards, blocker(g.machine))
	g.Step(frameOf(), frame)

	// Pause is ignored while defeated
	g.Step(frameOf(core.ActionPause), frame)
	if g.Paused() {
		t.Error("pause should be ignored while defeated")
	}

	g.Step(frameOf(core.ActionRestart), frame)
	if st := g.State(); st.GameOver || st.Score != 0 {
		t.Errorf("State() = %+v, expected fresh encounter", st)
	}
}
