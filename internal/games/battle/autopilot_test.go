package battle

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-battle/internal/core"
)

func TestParsePolicy(t *testing.T) {
	for _, p := range Policies {
		got, err := ParsePolicy(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q) = (%q, %v)", p, got, err)
		}
	}
	if _, err := ParsePolicy("teleport"); err == nil {
		t.Error("ParsePolicy() should reject unknown names")
	}
}

func TestAutopilotAdvancesDialogue(t *testing.T) {
	m := newTestMachine(t, nil)
	ap := NewAutopilot(PolicyIdle, 1)

	snap := m.Snapshot()
	in := ap.Intent(&snap, frame)
	if !in.Advance {
		t.Error("autopilot should advance dialogue")
	}

	m.Step(in, frame)
	snap = m.Snapshot()
	if in := ap.Intent(&snap, frame); in != (Intent{}) {
		t.Errorf("idle policy produced %+v during dodge", in)
	}
}

func TestAutopilotNeverRestarts(t *testing.T) {
	snap := Snapshot{State: StateDefeated, Defeated: true}
	for _, p := range Policies {
		ap := NewAutopilot(p, 1)
		if in := ap.Intent(&snap, frame); in.Restart {
			t.Errorf("%s policy requested a restart", p)
		}
	}
}

func TestRandomPolicyIsSeeded(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)
	snap := m.Snapshot()

	a := NewAutopilot(PolicyRandom, 3)
	b := NewAutopilot(PolicyRandom, 3)
	for i := 0; i < 100; i++ {
		if ia, ib := a.Intent(&snap, frame), b.Intent(&snap, frame); ia != ib {
			t.Fatalf("step %d: %+v != %+v", i, ia, ib)
		}
	}
}

func TestEvadeLeavesBeamPath(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)
	m.enc.hazards = []Hazard{NewBeam(testBeam(500 * time.Millisecond))}
	snap := m.Snapshot()

	in := NewAutopilot(PolicyEvade, 1).Intent(&snap, frame)
	if in.Move.Y == 0 {
		t.Errorf("evade intent %+v should leave the beam's row", in.Move)
	}
	if in.Move.X != 0 {
		t.Errorf("evade intent %+v should not drift sideways", in.Move)
	}
}

func TestEvadeHoldsWhenSafe(t *testing.T) {
	m := newTestMachine(t, nil)
	m.Step(Intent{Advance: true}, frame)
	snap := m.Snapshot()

	in := NewAutopilot(PolicyEvade, 1).Intent(&snap, frame)
	if in.Move != (core.Vec{}) {
		t.Errorf("evade moved %+v with no hazards", in.Move)
	}
}

func TestEvadeSurvivesLongerThanIdle(t *testing.T) {
	survive := func(p Policy) int {
		m := newTestMachine(t, nil)
		ap := NewAutopilot(p, 11)
		for i := 0; i < 60*60; i++ {
			snap := m.Snapshot()
			m.Step(ap.Intent(&snap, frame), frame)
		}
		return m.Health()
	}

	idleHealth, evadeHealth := survive(PolicyIdle), survive(PolicyEvade)
	if evadeHealth < idleHealth {
		t.Errorf("evade health %d below idle health %d", evadeHealth, idleHealth)
	}
}
