// Package config provides YAML-based configuration loading and validation
// for the battle encounter.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid battle config")

// BattleConfig contains all tunables for one encounter.
type BattleConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Arena    ArenaConfig    `yaml:"arena"`
	Player   PlayerConfig   `yaml:"player"`
	Timing   TimingConfig   `yaml:"timing"`
	Attacks  AttacksConfig  `yaml:"attacks"`
	Dialogue DialogueConfig `yaml:"dialogue"`
}

// FieldConfig is the world extent (the reference window). Hazards that leave
// it by more than CullMargin are discarded.
type FieldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CullMargin float64 `yaml:"cull_margin"`
}

// ArenaConfig holds the bounds of the box the player is confined to.
type ArenaConfig struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// PlayerConfig defines the player token.
type PlayerConfig struct {
	Size      float64 `yaml:"size"`  // Hitbox edge length; also twice the arena margin
	Speed     float64 `yaml:"speed"` // World units per second at full intent
	MaxHealth int     `yaml:"max_health"`
}

// Margin is the distance the token's center keeps from the arena edges.
func (p PlayerConfig) Margin() float64 {
	return p.Size / 2
}

// TimingConfig holds the phase timers.
type TimingConfig struct {
	DialogueAdvance time.Duration `yaml:"dialogue_advance"` // Auto-advance to the next line
	DodgeDuration   time.Duration `yaml:"dodge_duration"`   // Length of one dodge phase
	SpawnCadence    time.Duration `yaml:"spawn_cadence"`    // Interval between pattern spawns
}

// AttacksConfig groups the four attack patterns.
type AttacksConfig struct {
	Wall WallConfig `yaml:"wall"`
	Slam SlamConfig `yaml:"slam"`
	Beam BeamConfig `yaml:"beam"`
	Drip DripConfig `yaml:"drip"`
}

// WallConfig describes a vertical stack of projectiles with a gap.
type WallConfig struct {
	Count    int     `yaml:"count"`
	GapStart int     `yaml:"gap_start"` // First omitted slot
	GapSize  int     `yaml:"gap_size"`  // Number of adjacent omitted slots
	OffsetX  float64 `yaml:"offset_x"`  // Spawn x relative to arena left
	Spacing  float64 `yaml:"spacing"`   // Vertical distance between slots
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"` // Rightward, units per second
}

// SlamConfig describes the tall projectile dropped on the player's column.
type SlamConfig struct {
	OffsetY float64 `yaml:"offset_y"` // Spawn y relative to arena top
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"` // Downward, units per second
}

// BeamConfig describes the delayed beam emitter.
type BeamConfig struct {
	OffsetX   float64       `yaml:"offset_x"` // Origin x relative to arena left
	Thickness float64       `yaml:"thickness"`
	Length    float64       `yaml:"length"`
	Charge    time.Duration `yaml:"charge"`     // Not collidable until age exceeds this
	FireUntil time.Duration `yaml:"fire_until"` // Collidable while age is below this
	Lifetime  time.Duration `yaml:"lifetime"`   // Removed once age exceeds this
}

// DripConfig describes the random projectiles rising from the arena floor.
type DripConfig struct {
	Chance  float64 `yaml:"chance"`   // Probability of a drop per spawn tick
	OffsetY float64 `yaml:"offset_y"` // Spawn y relative to arena bottom
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"` // Upward, units per second
}

// DialogueConfig holds the scripted text.
type DialogueConfig struct {
	Lines          []string `yaml:"lines"`
	Spare          string   `yaml:"spare"`            // Shown when a dodge phase ends
	Taunt          string   `yaml:"taunt"`            // Replaces Spare from TauntFromPhase on
	TauntFromPhase int      `yaml:"taunt_from_phase"` // Phase at which Taunt takes over
	Defeat         string   `yaml:"defeat"`           // Terminal message
}

// Validate checks every rule and reports all failures at once.
// The returned error wraps ErrInvalidConfig.
func (c BattleConfig) Validate() error {
	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		fail("field must have positive size, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Field.CullMargin < 0 {
		fail("field.cull_margin must not be negative, got %v", c.Field.CullMargin)
	}

	if c.Player.Size <= 0 {
		fail("player.size must be positive, got %v", c.Player.Size)
	}
	if c.Player.Speed <= 0 {
		fail("player.speed must be positive, got %v", c.Player.Speed)
	}
	if c.Player.MaxHealth <= 0 {
		fail("player.max_health must be positive, got %d", c.Player.MaxHealth)
	}

	a := c.Arena
	margin := c.Player.Margin()
	if a.Right-a.Left <= 2*margin {
		fail("arena width %v must exceed twice the player margin %v", a.Right-a.Left, margin)
	}
	if a.Bottom-a.Top <= 2*margin {
		fail("arena height %v must exceed twice the player margin %v", a.Bottom-a.Top, margin)
	}
	if a.Left < 0 || a.Top < 0 || a.Right > c.Field.Width || a.Bottom > c.Field.Height {
		fail("arena (%v,%v)-(%v,%v) must lie inside the field", a.Left, a.Top, a.Right, a.Bottom)
	}

	if c.Timing.DialogueAdvance <= 0 {
		fail("timing.dialogue_advance must be positive, got %v", c.Timing.DialogueAdvance)
	}
	if c.Timing.DodgeDuration <= 0 {
		fail("timing.dodge_duration must be positive, got %v", c.Timing.DodgeDuration)
	}
	if c.Timing.SpawnCadence <= 0 {
		fail("timing.spawn_cadence must be positive, got %v", c.Timing.SpawnCadence)
	}

	w := c.Attacks.Wall
	if w.Count <= 0 {
		fail("attacks.wall.count must be positive, got %d", w.Count)
	}
	if w.GapStart < 0 || w.GapSize < 0 || w.GapStart+w.GapSize > w.Count {
		fail("attacks.wall gap [%d,%d) must lie within %d slots", w.GapStart, w.GapStart+w.GapSize, w.Count)
	}
	if w.Width <= 0 || w.Height <= 0 {
		fail("attacks.wall projectiles must have positive size")
	}

	if s := c.Attacks.Slam; s.Width <= 0 || s.Height <= 0 {
		fail("attacks.slam projectile must have positive size")
	}

	b := c.Attacks.Beam
	if b.Thickness <= 0 || b.Length <= 0 {
		fail("attacks.beam must have positive thickness and length")
	}
	if b.Charge < 0 || b.Charge >= b.FireUntil || b.FireUntil > b.Lifetime {
		fail("attacks.beam needs 0 <= charge < fire_until <= lifetime, got %v/%v/%v", b.Charge, b.FireUntil, b.Lifetime)
	}

	d := c.Attacks.Drip
	if d.Chance < 0 || d.Chance > 1 {
		fail("attacks.drip.chance must be within [0, 1], got %v", d.Chance)
	}
	if d.Width <= 0 || d.Height <= 0 {
		fail("attacks.drip projectiles must have positive size")
	}

	if len(c.Dialogue.Lines) == 0 {
		fail("dialogue.lines must contain at least one line")
	}
	if c.Dialogue.TauntFromPhase < 0 {
		fail("dialogue.taunt_from_phase must not be negative, got %d", c.Dialogue.TauntFromPhase)
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w: %w", ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}
