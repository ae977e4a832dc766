package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-battle/internal/core"
	"github.com/vovakirdan/tui-battle/internal/games/battle"
)

// Drawing constants, in field units
const (
	arenaStroke  = 4
	hpBarWidth   = 120
	hpBarHeight  = 20
	emitterSize  = 12
	lineHeight   = 16
	textPadding  = 12
	guideOpacity = 0x50
)

var (
	backgroundColor = color.RGBA{A: 0xff}
	missingHPColor  = color.RGBA{R: 0x80, A: 0xff}
)

func (g *Game) draw(screen *ebiten.Image, s *battle.Snapshot) {
	screen.Fill(backgroundColor)

	a := s.Arena
	white := core.ColorBrightWhite.RGBA()
	vector.StrokeRect(screen, float32(a.Left), float32(a.Top), float32(a.Width()), float32(a.Height()),
		arenaStroke, white, false)

	if s.State == battle.StateDialogue {
		g.drawDialogue(screen, s)
	} else {
		for _, hz := range s.Hazards {
			drawHazard(screen, hz)
		}
	}

	size := float32(s.PlayerSize)
	heart := core.ColorBrightRed.RGBA()
	if s.Defeated {
		heart = core.ColorGray.RGBA()
	}
	vector.DrawFilledRect(screen, float32(s.Player.X)-size/2, float32(s.Player.Y)-size/2, size, size, heart, false)

	g.drawHUD(screen, s)

	switch {
	case s.Defeated:
		g.drawBanner(screen, "GAME OVER", "Press R to restart")
	case g.game.Paused():
		g.drawBanner(screen, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawDialogue(screen *ebiten.Image, s *battle.Snapshot) {
	a := s.Arena
	x := a.Left + textPadding
	y := a.Top + textPadding
	g.drawText(screen, "* "+s.Line, x, y, core.ColorBrightWhite)
	g.drawText(screen, "Press SPACE to continue", x, a.Bottom-textPadding-lineHeight, core.ColorGray)
}

func drawHazard(screen *ebiten.Image, hz battle.HazardView) {
	b := hz.Bounds
	switch hz.Kind {
	case battle.KindProjectile:
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
			core.ColorBrightWhite.RGBA(), false)
	case battle.KindBeam:
		emitter := core.ColorGray.RGBA()
		switch {
		case hz.Charging:
			// Faint guide along the path the beam will take
			y := core.ColorBrightYellow.RGBA()
			guide := color.NRGBA{R: y.R, G: y.G, B: y.B, A: guideOpacity}
			c := b.Center()
			if b.W >= b.H {
				vector.StrokeLine(screen, float32(b.X), float32(c.Y), float32(b.Right()), float32(c.Y), 1, guide, false)
			} else {
				vector.StrokeLine(screen, float32(c.X), float32(b.Y), float32(c.X), float32(b.Bottom()), 1, guide, false)
			}
			emitter = core.ColorBrightYellow.RGBA()
		case hz.Collidable:
			vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
				core.ColorBrightCyan.RGBA(), false)
			emitter = core.ColorBrightWhite.RGBA()
		}
		vector.DrawFilledCircle(screen, float32(hz.Origin.X), float32(hz.Origin.Y), emitterSize, emitter, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, s *battle.Snapshot) {
	a := s.Arena
	y := a.Bottom + textPadding*2

	g.drawText(screen, "HP", a.Left, y+2, core.ColorBrightWhite)
	barX := float32(a.Left + 30)
	vector.DrawFilledRect(screen, barX, float32(y), hpBarWidth, hpBarHeight, missingHPColor, false)
	if s.MaxHealth > 0 {
		filled := float32(hpBarWidth) * float32(s.Health) / float32(s.MaxHealth)
		vector.DrawFilledRect(screen, barX, float32(y), filled, hpBarHeight, core.ColorBrightYellow.RGBA(), false)
	}
	g.drawText(screen, fmt.Sprintf("%d / %d", s.Health, s.MaxHealth), a.Left+30+hpBarWidth+textPadding, y+2, core.ColorBrightWhite)

	info := fmt.Sprintf("PHASE %d  %s", s.Phase, s.Pattern)
	if s.State == battle.StateDodge {
		info += fmt.Sprintf("  %.1fs", s.DodgeRemaining.Seconds())
	}
	g.drawText(screen, info, a.Left, a.Top-textPadding-lineHeight, core.ColorGray)
}

func (g *Game) drawBanner(screen *ebiten.Image, title, subtitle string) {
	w, h := float64(g.width), float64(g.height)
	const boxW, boxH = 260.0, 70.0
	x, y := (w-boxW)/2, (h-boxH)/2

	vector.DrawFilledRect(screen, float32(x), float32(y), boxW, boxH, backgroundColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), boxW, boxH, 2, core.ColorBrightWhite.RGBA(), false)
	g.drawCentered(screen, title, y+textPadding, core.ColorBrightRed)
	g.drawCentered(screen, subtitle, y+textPadding+lineHeight*2, core.ColorWhite)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, c core.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, y float64, c core.Color) {
	w, _ := text.Measure(s, g.face, 0)
	g.drawText(screen, s, (float64(g.width)-w)/2, y, c)
}
