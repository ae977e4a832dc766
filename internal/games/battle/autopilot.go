package battle

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-battle/internal/core"
)

// Policy selects how an Autopilot steers during dodge phases.
type Policy string

const (
	PolicyIdle   Policy = "idle"   // Never moves
	PolicyRandom Policy = "random" // Wanders in random directions
	PolicyEvade  Policy = "evade"  // Steers toward the least dangerous spot
)

// Policies lists the accepted policy names.
var Policies = []Policy{PolicyIdle, PolicyRandom, PolicyEvade}

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown policy %q (want one of %v)", s, Policies)
}

// Autopilot tunables
const (
	wanderInterval = 250 * time.Millisecond
	evadeHorizon   = 400 * time.Millisecond
	evadeCols      = 9
	evadeRows      = 5
	evadeDeadzone  = 1.0
)

// Autopilot produces intents from snapshots for headless runs.
// It always advances dialogue and never restarts.
type Autopilot struct {
	policy  Policy
	rng     *rand.Rand
	heading core.Vec
	wander  time.Duration
}

// NewAutopilot creates an autopilot with its own random source.
func NewAutopilot(p Policy, seed int64) *Autopilot {
	return &Autopilot{
		policy: p,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Intent decides the next frame's input.
func (a *Autopilot) Intent(s *Snapshot, dt time.Duration) Intent {
	switch s.State {
	case StateDialogue:
		return Intent{Advance: true}
	case StateDefeated:
		return Intent{}
	}

	switch a.policy {
	case PolicyRandom:
		return Intent{Move: a.wanderStep(dt)}
	case PolicyEvade:
		return Intent{Move: evade(s)}
	default:
		return Intent{}
	}
}

func (a *Autopilot) wanderStep(dt time.Duration) core.Vec {
	a.wander -= dt
	if a.wander <= 0 {
		a.heading = core.Vec{
			X: float64(a.rng.Intn(3) - 1),
			Y: float64(a.rng.Intn(3) - 1),
		}
		a.wander = wanderInterval
	}
	return a.heading
}

// evade scores a grid of reachable positions by how many hazards threaten
// them and heads for the safest one closest to the player.
func evade(s *Snapshot) core.Vec {
	margin := s.PlayerSize / 2
	left, top := s.Arena.Left+margin, s.Arena.Top+margin
	spanX := s.Arena.Width() - 2*margin
	spanY := s.Arena.Height() - 2*margin

	best := s.Player
	bestScore := threat(s, s.Player) * 1e6
	for row := 0; row < evadeRows; row++ {
		for col := 0; col < evadeCols; col++ {
			c := core.Vec{
				X: left + spanX*float64(col)/float64(evadeCols-1),
				Y: top + spanY*float64(row)/float64(evadeRows-1),
			}
			score := threat(s, c)*1e6 + math.Hypot(c.X-s.Player.X, c.Y-s.Player.Y)
			if score < bestScore {
				best, bestScore = c, score
			}
		}
	}

	return core.Vec{
		X: steer(best.X - s.Player.X),
		Y: steer(best.Y - s.Player.Y),
	}
}

// threat counts hazards that overlap, or will soon overlap, a player box
// centered on p. Beams count double whether charging or firing.
func threat(s *Snapshot, p core.Vec) float64 {
	box := PlayerBox(p, s.PlayerSize*2)
	var t float64
	for _, hz := range s.Hazards {
		switch hz.Kind {
		case KindProjectile:
			if box.Overlaps(sweep(hz.Bounds, hz.Vel.Scale(evadeHorizon.Seconds()))) {
				t++
			}
		case KindBeam:
			if (hz.Charging || hz.Collidable) && box.Overlaps(hz.Bounds) {
				t += 2
			}
		}
	}
	return t
}

// sweep returns the box covering b and b translated by d.
func sweep(b core.Box, d core.Vec) core.Box {
	x0 := math.Min(b.X, b.X+d.X)
	y0 := math.Min(b.Y, b.Y+d.Y)
	x1 := math.Max(b.Right(), b.Right()+d.X)
	y1 := math.Max(b.Bottom(), b.Bottom()+d.Y)
	return core.Box{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func steer(d float64) float64 {
	switch {
	case d > evadeDeadzone:
		return 1
	case d < -evadeDeadzone:
		return -1
	default:
		return 0
	}
}
