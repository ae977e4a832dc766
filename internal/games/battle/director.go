package battle

import (
	"math/rand"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

// Pattern identifies one of the four attack patterns.
// Values are the phase-cycle index that selects them.
type Pattern int

const (
	PatternDrip Pattern = iota // phase % 4 == 0
	PatternWall                // phase % 4 == 1
	PatternSlam                // phase % 4 == 2
	PatternBeam                // phase % 4 == 3
)

// patternCycle is the number of patterns before the sequence repeats.
const patternCycle = 4

// String returns the pattern's name.
func (p Pattern) String() string {
	switch p {
	case PatternDrip:
		return "drip"
	case PatternWall:
		return "wall"
	case PatternSlam:
		return "slam"
	case PatternBeam:
		return "beam"
	default:
		return "unknown"
	}
}

// PatternForPhase maps an attack phase onto the fixed pattern cycle.
func PatternForPhase(phase int) Pattern {
	return Pattern(((phase % patternCycle) + patternCycle) % patternCycle)
}

// Director materializes attack patterns into hazards.
type Director struct {
	cfg   config.AttacksConfig
	arena Arena
	rng   *rand.Rand
}

// NewDirector creates a director for the given arena.
// The seed drives the drip pattern's randomness only.
func NewDirector(cfg config.AttacksConfig, arena Arena, seed int64) *Director {
	return &Director{
		cfg:   cfg,
		arena: arena,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Spawn returns the hazards to add for the given phase.
// player is the token's current position; slam and beam aim at it.
func (d *Director) Spawn(phase int, player core.Vec) []Hazard {
	switch PatternForPhase(phase) {
	case PatternWall:
		return d.wall()
	case PatternSlam:
		return d.slam(player)
	case PatternBeam:
		return d.beam(player)
	default:
		return d.drip()
	}
}

// wall stacks projectiles outside the left edge, leaving a gap.
func (d *Director) wall() []Hazard {
	w := d.cfg.Wall
	hazards := make([]Hazard, 0, w.Count)
	for i := 0; i < w.Count; i++ {
		if i >= w.GapStart && i < w.GapStart+w.GapSize {
			continue
		}
		pos := core.Vec{X: d.arena.Left + w.OffsetX, Y: d.arena.Top + float64(i)*w.Spacing}
		hazards = append(hazards, NewProjectile(pos, core.Vec{X: w.Speed}, w.Width, w.Height))
	}
	return hazards
}

// slam drops a tall projectile onto the player's column.
func (d *Director) slam(player core.Vec) []Hazard {
	s := d.cfg.Slam
	pos := core.Vec{X: player.X - s.Width/2, Y: d.arena.Top + s.OffsetY}
	return []Hazard{NewProjectile(pos, core.Vec{Y: s.Speed}, s.Width, s.Height)}
}

// beam places a rightward emitter level with the player.
func (d *Director) beam(player core.Vec) []Hazard {
	b := d.cfg.Beam
	return []Hazard{NewBeam(BeamEmitter{
		Origin:    core.Vec{X: d.arena.Left + b.OffsetX, Y: player.Y},
		Facing:    FacingRight,
		Thickness: b.Thickness,
		Length:    b.Length,
		Charge:    b.Charge,
		FireUntil: b.FireUntil,
		Lifetime:  b.Lifetime,
	})}
}

// drip occasionally launches a projectile up from the arena floor.
func (d *Director) drip() []Hazard {
	p := d.cfg.Drip
	if d.rng.Float64() >= p.Chance {
		return nil
	}
	x := d.rng.Float64()*d.arena.Width() + d.arena.Left
	pos := core.Vec{X: x, Y: d.arena.Bottom + p.OffsetY}
	return []Hazard{NewProjectile(pos, core.Vec{Y: -p.Speed}, p.Width, p.Height)}
}
