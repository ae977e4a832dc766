package battle

import (
	"time"

	"github.com/vovakirdan/tui-battle/internal/core"
)

// HazardKind tags the variant stored in a Hazard.
type HazardKind int

const (
	KindProjectile HazardKind = iota
	KindBeam
)

// String returns a human-readable name for the kind.
func (k HazardKind) String() string {
	switch k {
	case KindProjectile:
		return "projectile"
	case KindBeam:
		return "beam"
	default:
		return "unknown"
	}
}

// Orientation is the axis direction a beam extends in from its origin.
type Orientation int

const (
	FacingRight Orientation = iota
	FacingLeft
	FacingUp
	FacingDown
)

// Projectile is a rectangle moving at constant velocity.
type Projectile struct {
	Pos  core.Vec // Top-left corner
	Vel  core.Vec // Units per second
	W, H float64
}

// Bounds returns the projectile's bounding box.
func (p Projectile) Bounds() core.Box {
	return core.Box{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// BeamEmitter charges in place, fires a fixed-length beam, then lingers
// until its lifetime runs out.
type BeamEmitter struct {
	Origin    core.Vec
	Facing    Orientation
	Age       time.Duration
	Thickness float64
	Length    float64
	Charge    time.Duration // Charging while Age <= Charge
	FireUntil time.Duration // Discharged once Age >= FireUntil
	Lifetime  time.Duration // Finished once Age > Lifetime
}

// Charging reports whether the beam has not started firing yet.
func (b BeamEmitter) Charging() bool {
	return b.Age <= b.Charge
}

// Discharged reports whether the firing window is over.
func (b BeamEmitter) Discharged() bool {
	return b.Age >= b.FireUntil
}

// Firing reports whether the beam is currently collidable.
func (b BeamEmitter) Firing() bool {
	return !b.Charging() && !b.Discharged()
}

// Finished reports whether the emitter should be removed.
func (b BeamEmitter) Finished() bool {
	return b.Age > b.Lifetime
}

// BeamBox returns the rectangle the beam covers when firing.
// The beam is centered on the origin across its axis.
func (b BeamEmitter) BeamBox() core.Box {
	half := b.Thickness / 2
	switch b.Facing {
	case FacingLeft:
		return core.Box{X: b.Origin.X - b.Length, Y: b.Origin.Y - half, W: b.Length, H: b.Thickness}
	case FacingUp:
		return core.Box{X: b.Origin.X - half, Y: b.Origin.Y - b.Length, W: b.Thickness, H: b.Length}
	case FacingDown:
		return core.Box{X: b.Origin.X - half, Y: b.Origin.Y, W: b.Thickness, H: b.Length}
	default:
		return core.Box{X: b.Origin.X, Y: b.Origin.Y - half, W: b.Length, H: b.Thickness}
	}
}

// Hazard is a tagged union of the obstacle variants.
// Only the payload matching Kind is meaningful.
type Hazard struct {
	Kind       HazardKind
	Projectile Projectile
	Beam       BeamEmitter
}

// NewProjectile wraps a projectile in a Hazard.
func NewProjectile(pos, vel core.Vec, w, h float64) Hazard {
	return Hazard{
		Kind:       KindProjectile,
		Projectile: Projectile{Pos: pos, Vel: vel, W: w, H: h},
	}
}

// NewBeam wraps a beam emitter in a Hazard.
func NewBeam(b BeamEmitter) Hazard {
	return Hazard{Kind: KindBeam, Beam: b}
}

// Advance moves the hazard forward by dt of simulated time.
func (h *Hazard) Advance(dt time.Duration) {
	switch h.Kind {
	case KindProjectile:
		h.Projectile.Pos = h.Projectile.Pos.Add(h.Projectile.Vel.Scale(dt.Seconds()))
	case KindBeam:
		h.Beam.Age += dt
	}
}

// Expired reports whether the hazard should leave the active set.
func (h Hazard) Expired(f Field) bool {
	switch h.Kind {
	case KindProjectile:
		return f.Outside(h.Projectile.Pos)
	case KindBeam:
		return h.Beam.Finished()
	default:
		return true
	}
}

// Collidable reports whether the hazard can currently damage the player.
func (h Hazard) Collidable() bool {
	switch h.Kind {
	case KindProjectile:
		return true
	case KindBeam:
		return h.Beam.Firing()
	default:
		return false
	}
}

// Bounds returns the area the hazard occupies: the projectile body, or the
// beam rectangle for an emitter regardless of whether it is firing.
func (h Hazard) Bounds() core.Box {
	switch h.Kind {
	case KindBeam:
		return h.Beam.BeamBox()
	default:
		return h.Projectile.Bounds()
	}
}
