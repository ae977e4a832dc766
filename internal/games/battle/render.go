package battle

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-battle/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '♥'
	ProjectileChar = '█'
	EmitterChar    = '◉'
	BeamHorizChar  = '═'
	BeamVertChar   = '║'
)

// Terminal layout
const (
	MinScreenW     = 40
	MinScreenH     = 16
	dialogueRows   = 4
	hudRows        = 2
	healthBarWidth = 10
)

// Render draws a snapshot into dst. Hazards are hidden while dialogue is
// on screen.
func Render(dst *core.Screen, snap *Snapshot, paused bool) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < MinScreenW || h < MinScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorBrightRed)
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	drawDialogue(dst, snap)

	vp := newViewport(core.NewRect(0, dialogueRows, w, h-dialogueRows-hudRows), snap.Arena)
	arena := vp.rect(snap.Arena.Box())
	dst.DrawBox(core.NewRect(arena.X-1, arena.Y-1, arena.W+2, arena.H+2), core.ColorBrightWhite)

	if snap.State != StateDialogue {
		for _, hz := range snap.Hazards {
			drawHazard(dst, vp, hz)
		}
	}

	px, py := vp.point(snap.Player)
	playerColor := core.ColorBrightRed
	if snap.Defeated {
		playerColor = core.ColorGray
	}
	vp.set(dst, px, py, PlayerChar, playerColor)

	dst.DrawHLine(0, h-hudRows, w, '─', core.ColorGray)
	drawHUD(dst, snap, h-1)

	if snap.Defeated {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Phase %d  |  Press R to restart", snap.Phase))
	} else if paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawDialogue(dst *core.Screen, snap *Snapshot) {
	w := dst.Width()
	dst.DrawBox(core.NewRect(0, 0, w, dialogueRows), core.ColorBrightWhite)

	inner := w - 4
	if snap.Line != "" {
		dst.DrawTextColored(2, 1, truncate("* "+snap.Line, inner), core.ColorBrightWhite)
	}

	var prompt string
	color := core.ColorGray
	switch snap.State {
	case StateDialogue:
		prompt = "Press SPACE to continue"
	case StateDodge:
		prompt = fmt.Sprintf("DODGE! %.1fs", snap.DodgeRemaining.Seconds())
		color = core.ColorBrightYellow
	case StateDefeated:
		prompt = "Press R to restart"
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(2, 2, truncate(prompt, inner), color)
}

func drawHazard(dst *core.Screen, vp viewport, hz HazardView) {
	switch hz.Kind {
	case KindProjectile:
		vp.fill(dst, vp.rect(hz.Bounds), ProjectileChar, core.ColorBrightWhite)
	case KindBeam:
		emitterColor := core.ColorGray
		switch {
		case hz.Charging:
			emitterColor = core.ColorBrightYellow
		case hz.Collidable:
			glyph := BeamHorizChar
			if hz.Facing == FacingUp || hz.Facing == FacingDown {
				glyph = BeamVertChar
			}
			vp.fill(dst, vp.rect(hz.Bounds), glyph, core.ColorBrightCyan)
			emitterColor = core.ColorBrightWhite
		}
		ex, ey := vp.point(hz.Origin)
		vp.set(dst, ex, ey, EmitterChar, emitterColor)
	}
}

func drawHUD(dst *core.Screen, snap *Snapshot, y int) {
	filled := 0
	if snap.MaxHealth > 0 {
		filled = int(math.Ceil(float64(snap.Health) / float64(snap.MaxHealth) * healthBarWidth))
	}
	bar := make([]rune, healthBarWidth)
	for i := range bar {
		bar[i] = '░'
		if i < filled {
			bar[i] = '█'
		}
	}

	hpColor := core.ColorBrightYellow
	if snap.Health*4 <= snap.MaxHealth {
		hpColor = core.ColorBrightRed
	}
	hp := fmt.Sprintf("HP %s %d/%d", string(bar), snap.Health, snap.MaxHealth)
	dst.DrawTextColored(1, y, hp, hpColor)

	info := fmt.Sprintf("PHASE %d %s  HITS %d  %s",
		snap.Phase, snap.Pattern, snap.Stats.Hits, formatClock(snap.Stats.Elapsed))
	x := dst.Width() - utf8.RuneCountInString(info) - 1
	if x > utf8.RuneCountInString(hp)+2 {
		dst.DrawTextColored(x, y, info, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxW = min(boxW, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(boxY+3, truncate(subtitle, boxW-2), core.ColorWhite)
}

// viewport maps a world-space box onto a rectangle of terminal cells.
type viewport struct {
	cells core.Rect
	world core.Box
}

// newViewport frames the arena with a quarter of its size as padding on
// every side, so hazards can be seen before they enter.
func newViewport(cells core.Rect, a Arena) viewport {
	padX, padY := a.Width()/4, a.Height()/4
	return viewport{
		cells: cells,
		world: core.Box{
			X: a.Left - padX,
			Y: a.Top - padY,
			W: a.Width() + 2*padX,
			H: a.Height() + 2*padY,
		},
	}
}

func (v viewport) col(x float64) float64 {
	return float64(v.cells.X) + (x-v.world.X)/v.world.W*float64(v.cells.W)
}

func (v viewport) row(y float64) float64 {
	return float64(v.cells.Y) + (y-v.world.Y)/v.world.H*float64(v.cells.H)
}

// point returns the cell containing p.
func (v viewport) point(p core.Vec) (int, int) {
	return int(math.Floor(v.col(p.X))), int(math.Floor(v.row(p.Y)))
}

// rect returns the cells covered by b, at least one cell in each direction.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(v.col(b.X)))
	y0 := int(math.Floor(v.row(b.Y)))
	x1 := int(math.Ceil(v.col(b.Right())))
	y1 := int(math.Ceil(v.row(b.Bottom())))
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// set writes a cell if it lies inside the viewport.
func (v viewport) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if x < v.cells.X || x >= v.cells.Right() || y < v.cells.Y || y >= v.cells.Bottom() {
		return
	}
	dst.SetColored(x, y, r, c)
}

// fill paints r clipped to the viewport.
func (v viewport) fill(dst *core.Screen, r core.Rect, glyph rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			v.set(dst, x, y, glyph, c)
		}
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func formatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
