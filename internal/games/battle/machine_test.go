package battle

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

const frame = time.Second / 60

func newTestMachine(t *testing.T, mutate func(*config.BattleConfig)) *Machine {
	t.Helper()
	cfg := config.DefaultBattleConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	m, err := New(cfg, WithSeed(42))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return m
}

// idle steps the machine n frames with no input.
func idle(m *Machine, n int) {
	for i := 0; i < n; i++ {
		m.Step(Intent{}, frame)
	}
}

// blocker is a stationary projectile covering the arena center.
func blocker(m *Machine) Hazard {
	c := m.Arena().Center()
	return NewProjectile(core.Vec{X: c.X - 20, Y: c.Y - 20}, core.Vec{}, 40, 40)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultBattleConfig()
	cfg.Player.MaxHealth = 0

	_, err := New(cfg)
	if err == nil {
		t.Fatal("New() should reject a zero max health")
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error %v should wrap ErrInvalidConfig", err)
	}
}

func TestInitialState(t *testing.T) {
	m := newTestMachine(t, nil)
	snap := m.Snapshot()

	if snap.State != StateDialogue {
		t.Errorf("State = %v, expected dialogue", snap.State)
	}
	if snap.Phase != 0 {
		t.Errorf("Phase = %d, expected 0", snap.Phase)
	}
	if snap.Health != 20 || snap.MaxHealth != 20 {
		t.Errorf("Health = %d/%d, expected 20/20", snap.Health, snap.MaxHealth)
	}
	if snap.Player != (core.Vec{X: 400, Y: 400}) {
		t.Errorf("Player = %v, expected arena center", snap.Player)
	}
	if snap.Line != m.Config().Dialogue.Lines[0] {
		t.Errorf("Line = %q, expected first scripted line", snap.Line)
	}
	if len(snap.Hazards) != 0 {
		t.Errorf("expected no hazards, got %d", len(snap.Hazards))
	}
}

func TestAdvanceStartsDodge(t *testing.T) {
	m := newTestMachine(t, nil)
	m.enc.hazards = []Hazard{blocker(m)}

	m.Step(Intent{Advance: true}, frame)

	if m.State() != StateDodge {
		t.Fatalf("State = %v, expected dodge", m.State())
	}
	if m.Phase() != 1 {
		t.Errorf("Phase = %d, expected 1", m.Phase())
	}
	if len(m.enc.hazards) != 0 {
		t.Errorf("expected hazards cleared, got %d", len(m.enc.hazards))
	}
	if m.enc.spawnTimer != 0 {
		t.Errorf("spawnTimer = %v, expected 0", m.enc.spawnTimer)
	}
	if m.enc.dodgeTimer != 0 {
		t.Errorf("dodgeTimer = %v, expected 0", m.enc.dodgeTimer)
	}
	if line := m.Snapshot().Line; line != "" {
		t.Errorf("Line during dodge = %q, expected empty", line)
	}
}

func TestWallSpawnCadence(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)

	// 30 frames fall just short of the cadence
	idle(m, 30)
	if n := len(m.Snapshot().Hazards); n != 0 {
		t.Fatalf("after 30 frames expected 0 hazards, got %d", n)
	}

	idle(m, 1)
	snap := m.Snapshot()
	if len(snap.Hazards) != 6 {
		t.Fatalf("after 31 frames expected 6 hazards, got %d", len(snap.Hazards))
	}
	for i, hz := range snap.Hazards {
		if hz.Kind != KindProjectile {
			t.Errorf("hazard %d kind = %v, expected projectile", i, hz.Kind)
		}
		if hz.Vel.X <= 0 || hz.Vel.Y != 0 {
			t.Errorf("hazard %d velocity = %v, expected rightward", i, hz.Vel)
		}
	}
	if m.enc.spawnTimer != 0 {
		t.Errorf("spawnTimer = %v, expected reset to 0", m.enc.spawnTimer)
	}
	if snap.Stats.Spawns != 1 || snap.Stats.HazardsSpawned != 6 {
		t.Errorf("Stats = %+v, expected 1 spawn of 6 hazards", snap.Stats)
	}
}

func TestDialogueAutoAdvance(t *testing.T) {
	m := newTestMachine(t, nil)
	lines := m.Config().Dialogue.Lines

	m.Step(Intent{}, 2*time.Second)
	if m.enc.dialogueIndex != 0 {
		t.Errorf("at exactly the threshold index = %d, expected 0", m.enc.dialogueIndex)
	}

	m.Step(Intent{}, time.Millisecond)
	if m.enc.dialogueIndex != 1 {
		t.Fatalf("past the threshold index = %d, expected 1", m.enc.dialogueIndex)
	}
	if m.Snapshot().Line != lines[1] {
		t.Errorf("Line = %q, expected %q", m.Snapshot().Line, lines[1])
	}

	for i := 0; i < 3*len(lines); i++ {
		m.Step(Intent{}, 3*time.Second)
	}
	if m.enc.dialogueIndex != len(lines)-1 {
		t.Errorf("index = %d, expected clamped at %d", m.enc.dialogueIndex, len(lines)-1)
	}
	if m.State() != StateDialogue {
		t.Errorf("dialogue must not leave on its own, state = %v", m.State())
	}
}

func TestDamageOncePerFrame(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)

	// Two overlapping hazards still cost one point per frame
	m.enc.hazards = append(m.enc.hazards, blocker(m), blocker(m))
	idle(m, 3)

	if m.Health() != 17 {
		t.Errorf("Health = %d, expected 17", m.Health())
	}
	if m.Stats().Hits != 3 {
		t.Errorf("Hits = %d, expected 3", m.Stats().Hits)
	}
}

func TestDefeatAndRestart(t *testing.T) {
	m := newTestMachine(t, func(c *config.BattleConfig) {
		c.Player.MaxHealth = 2
	})
	// Let the script move past its first line before the fight
	m.Step(Intent{}, m.Config().Timing.DialogueAdvance+time.Millisecond)
	if m.Snapshot().DialogueIndex != 1 {
		t.Fatalf("DialogueIndex = %d, expected 1 before the dodge", m.Snapshot().DialogueIndex)
	}
	m.Step(Intent{Advance: true}, frame)
	m.enc.hazards = append(m.enc.hazards, blocker(m))
	idle(m, 2)

	snap := m.Snapshot()
	if snap.State != StateDefeated || !snap.Defeated {
		t.Fatalf("State = %v, expected defeated", snap.State)
	}
	if snap.Health != 0 {
		t.Errorf("Health = %d, expected 0", snap.Health)
	}
	if snap.Message != m.Config().Dialogue.Defeat {
		t.Errorf("Message = %q, expected defeat line", snap.Message)
	}

	// Everything except restart is ignored
	before := m.Snapshot()
	for i := 0; i < 60; i++ {
		m.Step(Intent{Move: core.Vec{X: 1, Y: 1}, Advance: true}, frame)
	}
	after := m.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("defeated machine changed state without a restart")
	}

	m.Step(Intent{Restart: true}, frame)
	snap = m.Snapshot()
	if snap.State != StateDialogue {
		t.Errorf("State = %v, expected dialogue after restart", snap.State)
	}
	if snap.Health != 2 || snap.Phase != 0 || len(snap.Hazards) != 0 {
		t.Errorf("restart left health=%d phase=%d hazards=%d", snap.Health, snap.Phase, len(snap.Hazards))
	}
	if snap.Player != m.Arena().Center() {
		t.Errorf("Player = %v, expected arena center", snap.Player)
	}
	if snap.DialogueIndex != 0 {
		t.Errorf("DialogueIndex = %d, expected 0 after restart", snap.DialogueIndex)
	}
	if snap.Line != m.Config().Dialogue.Lines[0] {
		t.Errorf("Line = %q, expected first scripted line", snap.Line)
	}
	if snap.Stats != (Stats{}) {
		t.Errorf("Stats = %+v, expected zeroed", snap.Stats)
	}
}

func TestRestartIgnoredOutsideDefeat(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)
	m.Step(Intent{Restart: true, Move: core.Vec{X: 1}}, frame)

	if m.State() != StateDodge || m.Phase() != 1 {
		t.Errorf("restart during dodge changed state to %v phase %d", m.State(), m.Phase())
	}
}

func TestDodgeEndsWithSpareLine(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)

	// The wall's gap lines up with the arena center, so idling is safe
	idle(m, 480)
	if m.State() != StateDodge {
		t.Fatalf("dodge ended early at %v", m.enc.dodgeTimer)
	}
	idle(m, 1)

	snap := m.Snapshot()
	if snap.State != StateDialogue {
		t.Fatalf("State = %v, expected dialogue after the dodge duration", snap.State)
	}
	if snap.Line != m.Config().Dialogue.Spare {
		t.Errorf("Line = %q, expected spare line", snap.Line)
	}
	if snap.Health != 20 {
		t.Errorf("Health = %d, expected 20 while idling in the gap", snap.Health)
	}
	if m.enc.dialogueTimer != 0 {
		t.Errorf("dialogueTimer = %v, expected reset", m.enc.dialogueTimer)
	}
}

func TestTauntFromPhase(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		phase int
		taunt bool
	}{
		{"before threshold", 3, 2, false},
		{"at threshold", 3, 3, true},
		{"after threshold", 2, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, func(c *config.BattleConfig) {
				c.Dialogue.TauntFromPhase = tt.from
				c.Timing.DodgeDuration = 10 * time.Millisecond
			})
			for i := 0; i < tt.phase; i++ {
				m.Step(Intent{Advance: true}, frame)
				idle(m, 1)
			}
			if m.Phase() != tt.phase || m.State() != StateDialogue {
				t.Fatalf("phase = %d state = %v, expected %d in dialogue", m.Phase(), m.State(), tt.phase)
			}

			d := m.Config().Dialogue
			expected := d.Spare
			if tt.taunt {
				expected = d.Taunt
			}
			if got := m.Snapshot().Line; got != expected {
				t.Errorf("Line = %q, expected %q", got, expected)
			}
		})
	}
}

func TestPlayerStaysInsideArena(t *testing.T) {
	m := newTestMachine(t, func(c *config.BattleConfig) {
		// Keep the token alive for the whole run
		c.Player.MaxHealth = 1 << 20
		c.Timing.DodgeDuration = time.Hour
	})
	m.Step(Intent{Advance: true}, frame)

	margin := m.Config().Player.Margin()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		in := Intent{Move: core.Vec{
			X: (rng.Float64()*2 - 1) * 5,
			Y: (rng.Float64()*2 - 1) * 5,
		}}
		m.Step(in, time.Duration(rng.Int63n(int64(100*time.Millisecond))))
		if p := m.Player(); !m.Arena().Contains(p, margin) {
			t.Fatalf("step %d: player %v escaped the arena", i, p)
		}
	}
}

func TestMoveIntentIsClamped(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)

	start := m.Player()
	m.Step(Intent{Move: core.Vec{X: 1e6}}, 100*time.Millisecond)

	moved := m.Player().X - start.X
	maxStep := m.Config().Player.Speed * 0.1
	if moved <= 0 || moved > maxStep+1e-9 {
		t.Errorf("moved %v, expected (0, %v]", moved, maxStep)
	}
}

func TestNegativeDeltaIsZero(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)

	before := m.Snapshot()
	m.Step(Intent{Move: core.Vec{X: 1}}, -time.Second)
	after := m.Snapshot()

	if before.Player != after.Player {
		t.Errorf("player moved on negative dt: %v -> %v", before.Player, after.Player)
	}
	if m.enc.dodgeTimer != 0 {
		t.Errorf("dodgeTimer = %v, expected 0", m.enc.dodgeTimer)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)
	m.enc.hazards = append(m.enc.hazards, blocker(m))

	snap := m.Snapshot()
	snap.Hazards[0].Bounds.X = -999
	snap.Hazards = snap.Hazards[:0]

	again := m.Snapshot()
	if len(again.Hazards) != 1 || again.Hazards[0].Bounds.X == -999 {
		t.Error("mutating a snapshot leaked into the machine")
	}
}

func TestMachineDeterminism(t *testing.T) {
	run := func() uint64 {
		m := newTestMachine(t, func(c *config.BattleConfig) {
			c.Timing.DodgeDuration = time.Second
		})
		for i := 0; i < 1200; i++ {
			in := Intent{Advance: i%90 == 0}
			if i%7 < 3 {
				in.Move = core.Vec{X: 1, Y: -1}
			} else {
				in.Move = core.Vec{X: -1, Y: 1}
			}
			m.Step(in, frame)
		}
		snap := m.Snapshot()
		return snap.Hash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateDialogue, "dialogue"},
		{StateDodge, "dodge"},
		{StateDefeated, "defeated"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, expected %q", tt.state, got, tt.expected)
		}
	}
}
