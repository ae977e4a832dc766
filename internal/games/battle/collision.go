package battle

import "github.com/vovakirdan/tui-battle/internal/core"

// PlayerBox returns the square hitbox centered on the player token.
func PlayerBox(pos core.Vec, size float64) core.Box {
	return core.BoxAround(pos, size/2)
}

// HitsProjectile tests the player box against a projectile's bounds.
func HitsProjectile(player core.Box, p Projectile) bool {
	return player.Overlaps(p.Bounds())
}

// HitsBeam tests the player box against a beam. Only a firing beam can hit.
func HitsBeam(player core.Box, b BeamEmitter) bool {
	if !b.Firing() {
		return false
	}
	return player.Overlaps(b.BeamBox())
}

// Collides dispatches the overlap test for a hazard's variant.
func Collides(player core.Box, h Hazard) bool {
	switch h.Kind {
	case KindProjectile:
		return HitsProjectile(player, h.Projectile)
	case KindBeam:
		return HitsBeam(player, h.Beam)
	default:
		return false
	}
}

// FirstHit returns the index of the first hazard overlapping the player.
func FirstHit(player core.Box, hazards []Hazard) (int, bool) {
	for i := range hazards {
		if Collides(player, hazards[i]) {
			return i, true
		}
	}
	return -1, false
}
