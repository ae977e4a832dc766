package battle

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-battle/internal/core"
)

// HazardView is the read-only presentation of one hazard.
type HazardView struct {
	Kind       HazardKind
	Bounds     core.Box // Projectile body, or the beam rectangle
	Vel        core.Vec // Zero for beams
	Origin     core.Vec // Emitter position; zero for projectiles
	Facing     Orientation
	Charging   bool
	Collidable bool
}

// Snapshot is a deep copy of everything a renderer needs for one frame.
// Mutating it never affects the machine.
type Snapshot struct {
	State         State
	Phase         int
	Pattern       Pattern
	DialogueIndex int
	Line          string
	Defeated      bool
	Message       string

	Player     core.Vec
	PlayerSize float64
	Health     int
	MaxHealth  int

	Hazards []HazardView
	Arena   Arena
	Field   Field

	DodgeRemaining time.Duration // Zero outside a dodge phase
	Stats          Stats
}

// Snapshot returns the current encounter state.
func (m *Machine) Snapshot() Snapshot {
	e := &m.enc
	snap := Snapshot{
		State:         e.state,
		Phase:         e.phase,
		Pattern:       PatternForPhase(e.phase),
		DialogueIndex: e.dialogueIndex,
		Line:          e.line,
		Defeated:      e.state == StateDefeated,
		Message:       e.message,
		Player:        e.player,
		PlayerSize:    m.cfg.Player.Size,
		Health:        e.health,
		MaxHealth:     m.cfg.Player.MaxHealth,
		Hazards:       make([]HazardView, 0, len(e.hazards)),
		Arena:         m.arena,
		Field:         m.field,
		Stats:         e.stats,
	}
	if e.state == StateDodge {
		snap.DodgeRemaining = max(m.cfg.Timing.DodgeDuration-e.dodgeTimer, 0)
	}

	for _, h := range e.hazards {
		v := HazardView{
			Kind:       h.Kind,
			Bounds:     h.Bounds(),
			Collidable: h.Collidable(),
		}
		switch h.Kind {
		case KindProjectile:
			v.Vel = h.Projectile.Vel
		case KindBeam:
			v.Origin = h.Beam.Origin
			v.Facing = h.Beam.Facing
			v.Charging = h.Beam.Charging()
		}
		snap.Hazards = append(snap.Hazards, v)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.State)
	h = h*31 + uint64(s.Phase)         //#nosec G115 -- hash computation
	h = h*31 + uint64(s.DialogueIndex) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Health)        //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(s.Player.X)
	h = h*31 + math.Float64bits(s.Player.Y)
	h = h*31 + uint64(len(s.Hazards))
	h = h*31 + uint64(s.Stats.Hits) //#nosec G115 -- hash computation

	for _, v := range s.Hazards {
		h = h*31 + uint64(v.Kind) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(v.Bounds.X)
		h = h*31 + math.Float64bits(v.Bounds.Y)
		h = h*31 + math.Float64bits(v.Bounds.W)
		h = h*31 + math.Float64bits(v.Bounds.H)
	}
	return h
}
