// Package battle implements the pure core of a turn-based bullet-hell
// encounter: a dialogue/dodge state machine, the attack patterns that feed
// it, and the collision model. Presentation adapters drive it through Step
// and read it back through Snapshot.
package battle

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

// State is the encounter's top-level mode.
type State int

const (
	StateDialogue State = iota // Reading lines, waiting for advance
	StateDodge                 // Attack phase in progress
	StateDefeated              // Health exhausted; only restart is accepted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateDialogue:
		return "dialogue"
	case StateDodge:
		return "dodge"
	case StateDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Intent is one frame of abstract player input.
type Intent struct {
	Move    core.Vec // Each axis in [-1, 1]; out-of-range values are clamped
	Advance bool     // Leave dialogue and start the next dodge phase
	Restart bool     // Reinitialize after defeat
}

// Stats accumulates per-encounter counters.
type Stats struct {
	Elapsed        time.Duration // Simulated time outside the defeated state
	Hits           int           // Frames in which health was lost
	Spawns         int           // Director invocations
	HazardsSpawned int           // Hazards created across all spawns
}

// encounter holds everything Restart throws away.
type encounter struct {
	state         State
	player        core.Vec
	health        int
	phase         int
	dialogueIndex int
	line          string
	message       string
	hazards       []Hazard

	dialogueTimer time.Duration
	dodgeTimer    time.Duration
	spawnTimer    time.Duration

	stats Stats
}

// Machine is the encounter state machine.
// It is not safe for concurrent use; adapters call Step from one goroutine.
type Machine struct {
	cfg      config.BattleConfig
	arena    Arena
	field    Field
	director *Director
	seed     int64
	logger   *log.Logger

	enc encounter
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger routes transition and spawn logs to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSeed fixes the seed of the drip pattern's random source.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.seed = seed
	}
}

// New validates cfg and returns a machine in the initial dialogue state.
func New(cfg config.BattleConfig, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("battle: %w", err)
	}

	m := &Machine{
		cfg:    cfg,
		arena:  NewArena(cfg.Arena),
		field:  NewField(cfg.Field),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.director = NewDirector(cfg.Attacks, m.arena, m.seed)
	m.reset()
	return m, nil
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.BattleConfig {
	return m.cfg
}

// Arena returns the arena bounds.
func (m *Machine) Arena() Arena {
	return m.arena
}

// State returns the current mode.
func (m *Machine) State() State {
	return m.enc.state
}

// Health returns the player's remaining health.
func (m *Machine) Health() int {
	return m.enc.health
}

// Phase returns the number of dodge phases started so far.
func (m *Machine) Phase() int {
	return m.enc.phase
}

// Player returns the token's center.
func (m *Machine) Player() core.Vec {
	return m.enc.player
}

// Stats returns a copy of the accumulated counters.
func (m *Machine) Stats() Stats {
	return m.enc.stats
}

// Step advances the encounter by one frame covering dt of simulated time.
// Negative dt is treated as zero.
func (m *Machine) Step(in Intent, dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	switch m.enc.state {
	case StateDialogue:
		m.enc.stats.Elapsed += dt
		m.stepDialogue(in, dt)
	case StateDodge:
		m.enc.stats.Elapsed += dt
		m.stepDodge(in, dt)
	case StateDefeated:
		if in.Restart {
			m.restart()
		}
	}
}

func (m *Machine) stepDialogue(in Intent, dt time.Duration) {
	if in.Advance {
		m.startDodge()
		return
	}

	lines := m.cfg.Dialogue.Lines
	m.enc.dialogueTimer += dt
	if m.enc.dialogueTimer > m.cfg.Timing.DialogueAdvance && m.enc.dialogueIndex < len(lines)-1 {
		m.enc.dialogueIndex++
		m.enc.line = lines[m.enc.dialogueIndex]
		m.enc.dialogueTimer = 0
	}
}

func (m *Machine) stepDodge(in Intent, dt time.Duration) {
	// Move
	move := clampIntent(in.Move).Scale(m.cfg.Player.Speed * dt.Seconds())
	m.enc.player = m.arena.Clamp(m.enc.player.Add(move), m.cfg.Player.Margin())

	// Spawn
	m.enc.spawnTimer += dt
	if m.enc.spawnTimer > m.cfg.Timing.SpawnCadence {
		spawned := m.director.Spawn(m.enc.phase, m.enc.player)
		m.enc.hazards = append(m.enc.hazards, spawned...)
		m.enc.spawnTimer = 0
		m.enc.stats.Spawns++
		m.enc.stats.HazardsSpawned += len(spawned)
		m.logger.Debug("spawn",
			"phase", m.enc.phase,
			"pattern", PatternForPhase(m.enc.phase),
			"count", len(spawned))
	}

	// Advance and cull
	kept := m.enc.hazards[:0]
	for _, h := range m.enc.hazards {
		h.Advance(dt)
		if !h.Expired(m.field) {
			kept = append(kept, h)
		}
	}
	clear(m.enc.hazards[len(kept):])
	m.enc.hazards = kept

	// Damage, at most once per frame
	box := PlayerBox(m.enc.player, m.cfg.Player.Size)
	if i, hit := FirstHit(box, m.enc.hazards); hit {
		m.enc.health--
		m.enc.stats.Hits++
		m.logger.Debug("hit", "kind", m.enc.hazards[i].Kind, "health", m.enc.health)
		if m.enc.health <= 0 {
			m.enc.health = 0
			m.defeat()
			return
		}
	}

	m.enc.dodgeTimer += dt
	if m.enc.dodgeTimer > m.cfg.Timing.DodgeDuration {
		m.endDodge()
	}
}

func (m *Machine) startDodge() {
	m.enc.state = StateDodge
	m.enc.phase++
	clear(m.enc.hazards)
	m.enc.hazards = m.enc.hazards[:0]
	m.enc.dodgeTimer = 0
	m.enc.spawnTimer = 0
	m.enc.line = ""
	m.logger.Info("dodge phase started",
		"phase", m.enc.phase,
		"pattern", PatternForPhase(m.enc.phase))
}

func (m *Machine) endDodge() {
	d := m.cfg.Dialogue
	m.enc.state = StateDialogue
	m.enc.dodgeTimer = 0
	m.enc.dialogueTimer = 0
	m.enc.line = d.Spare
	if m.enc.phase >= d.TauntFromPhase {
		m.enc.line = d.Taunt
	}
	m.logger.Info("dodge phase survived", "phase", m.enc.phase, "health", m.enc.health)
}

func (m *Machine) defeat() {
	m.enc.state = StateDefeated
	m.enc.message = m.cfg.Dialogue.Defeat
	m.enc.line = m.cfg.Dialogue.Defeat
	m.logger.Info("defeated",
		"phase", m.enc.phase,
		"elapsed", m.enc.stats.Elapsed,
		"hits", m.enc.stats.Hits)
}

func (m *Machine) restart() {
	m.reset()
	m.logger.Info("encounter restarted")
}

// reset puts the encounter into its initial state. The random source keeps
// its position so a replay after defeat sees fresh drips.
func (m *Machine) reset() {
	m.enc = encounter{
		state:  StateDialogue,
		player: m.arena.Center(),
		health: m.cfg.Player.MaxHealth,
		line:   m.cfg.Dialogue.Lines[0],
	}
}

// clampIntent limits each axis of a movement intent to [-1, 1].
func clampIntent(v core.Vec) core.Vec {
	return core.Vec{X: core.ClampF(v.X, -1, 1), Y: core.ClampF(v.Y, -1, 1)}
}
