package battle

import (
	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

// Arena is the box the player token is confined to during a dodge phase.
// Its bounds never change for the lifetime of an encounter.
type Arena struct {
	Left, Top, Right, Bottom float64
}

// NewArena builds an arena from its configuration.
func NewArena(c config.ArenaConfig) Arena {
	return Arena{Left: c.Left, Top: c.Top, Right: c.Right, Bottom: c.Bottom}
}

// Width returns the horizontal extent.
func (a Arena) Width() float64 {
	return a.Right - a.Left
}

// Height returns the vertical extent.
func (a Arena) Height() float64 {
	return a.Bottom - a.Top
}

// Center returns the arena's midpoint, where the player starts.
func (a Arena) Center() core.Vec {
	return core.Vec{X: (a.Left + a.Right) / 2, Y: (a.Top + a.Bottom) / 2}
}

// Box returns the arena as a bounding box.
func (a Arena) Box() core.Box {
	return core.Box{X: a.Left, Y: a.Top, W: a.Width(), H: a.Height()}
}

// Clamp pulls p inside the arena shrunk by margin on every side.
func (a Arena) Clamp(p core.Vec, margin float64) core.Vec {
	return core.Vec{
		X: core.ClampF(p.X, a.Left+margin, a.Right-margin),
		Y: core.ClampF(p.Y, a.Top+margin, a.Bottom-margin),
	}
}

// Contains reports whether p satisfies the margin invariant.
func (a Arena) Contains(p core.Vec, margin float64) bool {
	return p.X >= a.Left+margin && p.X <= a.Right-margin &&
		p.Y >= a.Top+margin && p.Y <= a.Bottom-margin
}

// Field is the world extent around the arena. Projectiles whose position
// leaves it by more than Margin are discarded.
type Field struct {
	Width, Height float64
	Margin        float64
}

// NewField builds a field from its configuration.
func NewField(c config.FieldConfig) Field {
	return Field{Width: c.Width, Height: c.Height, Margin: c.CullMargin}
}

// Outside reports whether p lies beyond the cull margin.
func (f Field) Outside(p core.Vec) bool {
	return p.X < -f.Margin || p.X > f.Width+f.Margin ||
		p.Y < -f.Margin || p.Y > f.Height+f.Margin
}
