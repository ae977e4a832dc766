package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/battle.yaml
var defaultBattleYAML []byte

// DefaultBattleConfig returns the built-in encounter configuration.
// It mirrors defaults/battle.yaml and is used when the embedded file cannot
// be parsed.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Field: FieldConfig{
			Width:      800,
			Height:     600,
			CullMargin: 100,
		},
		Arena: ArenaConfig{
			Left:   200,
			Top:    300,
			Right:  600,
			Bottom: 500,
		},
		Player: PlayerConfig{
			Size:      8,
			Speed:     180, // 3 units per step at 60 steps/s
			MaxHealth: 20,
		},
		Timing: TimingConfig{
			DialogueAdvance: 2 * time.Second,
			DodgeDuration:   8 * time.Second,
			SpawnCadence:    500 * time.Millisecond,
		},
		Attacks: AttacksConfig{
			Wall: WallConfig{
				Count:    8,
				GapStart: 3,
				GapSize:  2,
				OffsetX:  -50,
				Spacing:  25,
				Width:    20,
				Height:   20,
				Speed:    120,
			},
			Slam: SlamConfig{
				OffsetY: -100,
				Width:   20,
				Height:  80,
				Speed:   180,
			},
			Beam: BeamConfig{
				OffsetX:   -100,
				Thickness: 10,
				Length:    400,
				Charge:    1 * time.Second,
				FireUntil: 2 * time.Second,
				Lifetime:  3 * time.Second,
			},
			Drip: DripConfig{
				Chance:  0.3,
				OffsetY: 20,
				Width:   15,
				Height:  40,
				Speed:   120,
			},
		},
		Dialogue: DialogueConfig{
			Lines: []string{
				"the corridor is quiet today.",
				"the lamps are humming, the floor is swept...",
				"on days like these, visitors like you...",
				"should really turn around.",
				"funny. nobody ever opens with their best move.",
				"alright. here it comes.",
			},
			Spare:          "* The warden is holding back.",
			Taunt:          "you really thought i'd just stand here and take it?",
			TauntFromPhase: 3,
			Defeat:         "and that's the end of that.",
		},
	}
}

// DefaultBattleYAML returns the embedded default YAML document.
func DefaultBattleYAML() []byte {
	return defaultBattleYAML
}
