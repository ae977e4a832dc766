// Package window runs the battle encounter in a desktop window using Ebiten.
// The simulation is stepped from Update at a fixed rate; Draw only reads
// snapshots.
package window

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-battle/internal/core"
	"github.com/vovakirdan/tui-battle/internal/games/battle"
)

// Game adapts a battle.Game to ebiten.Game.
type Game struct {
	game   *battle.Game
	dt     time.Duration
	face   text.Face
	logger *log.Logger
	width  int
	height int
}

// New creates a window adapter stepping game tps times per second.
func New(game *battle.Game, tps int, logger *log.Logger) *Game {
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	snap := game.Snapshot()
	return &Game{
		game:   game,
		dt:     time.Second / time.Duration(tps),
		face:   text.NewGoXFace(basicfont.Face7x13),
		logger: logger,
		width:  int(snap.Field.Width),
		height: int(snap.Field.Height),
	}
}

// Update reads the keyboard and advances the simulation by one step.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.logger.Info("window closed by user")
		return ebiten.Termination
	}
	g.game.Step(readInput(), g.dt)
	return nil
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	g.draw(screen, &snap)
}

// Layout keeps the logical screen at the field size; Ebiten scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// readInput maps held and just-pressed keys onto an input frame.
func readInput() core.InputFrame {
	in := core.NewInputFrame()

	held := map[core.Action][]ebiten.Key{
		core.ActionUp:    {ebiten.KeyArrowUp, ebiten.KeyW},
		core.ActionDown:  {ebiten.KeyArrowDown, ebiten.KeyS},
		core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
		core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	}
	for action, keys := range held {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in.Set(action)
				break
			}
		}
	}

	pressed := map[core.Action][]ebiten.Key{
		core.ActionConfirm: {ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyZ},
		core.ActionRestart: {ebiten.KeyR},
		core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
	}
	for action, keys := range pressed {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				in.Set(action)
				break
			}
		}
	}
	return in
}

// Run opens the window and blocks until it is closed.
func Run(game *battle.Game, tps int, logger *log.Logger) error {
	w := New(game, tps, logger)

	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / w.dt))

	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	return nil
}
