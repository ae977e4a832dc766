package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battle/internal/config"
	"github.com/vovakirdan/tui-battle/internal/core"
)

// Reconfigurer is implemented by games that accept a new configuration for
// their next run.
type Reconfigurer interface {
	Reconfigure(cfg config.BattleConfig) error
}

// Model is the Bubble Tea model for running a game in the terminal.
type Model struct {
	game     core.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	mapper   *KeyMapper
	held     *HoldTracker
	help     help.Model
	watcher  *config.Watcher
	logger   *log.Logger
	status   string
	width    int
	height   int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithWatcher reloads the game's configuration whenever the watched file
// changes. Reloads apply on the next restart.
func WithWatcher(w *config.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// WithLogger sets the logger used for reload reports.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHoldWindow overrides how long a direction key stays held.
func WithHoldWindow(d time.Duration) Option {
	return func(m *Model) {
		m.held = NewHoldTracker(d)
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		config: cfg,
		keys:   keys,
		mapper: NewKeyMapper(keys),
		held:   NewHoldTracker(DefaultHoldWindow),
		help:   h,
		logger: log.New(io.Discard),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.game.Reset(m.config)
	return m
}

// Init starts the tick loop and, when configured, the config watch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickInterval())}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)

	case ConfigErrorMsg:
		m.status = "watch error: " + msg.Err.Error()
		m.logger.Warn("config watch failed", "error", msg.Err)
		return m, waitForConfig(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.held.Press(action)
	}
	return m, nil
}

// handleResize processes window resize events. The encounter keeps running;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.TickInterval()
	in := m.held.Frame(dt)
	if m.game.State().GameOver && in.Has(core.ActionRestart) {
		m.held.Release()
		m.status = ""
	}
	m.game.Step(in, dt)
	return m, tickCmd(dt)
}

// handleConfigChanged reloads the watched file and stages it on the game.
func (m Model) handleConfigChanged(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	next := waitForConfig(m.watcher)

	r, ok := m.game.(Reconfigurer)
	if !ok {
		return m, next
	}

	cfg, err := config.LoadBattle(msg.Path)
	if err == nil {
		err = r.Reconfigure(cfg)
	}
	if err != nil {
		m.status = "config rejected: " + err.Error()
		m.logger.Warn("config reload rejected", "path", msg.Path, "error", err)
		return m, next
	}

	m.status = "config reloaded; applies on restart"
	m.logger.Info("config reloaded", "path", msg.Path)
	return m, next
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	line := m.help.View(m.keys)
	if m.status != "" {
		line = statusStyle.Render(m.status) + "  " + line
	}
	return helpStyle.Render(line)
}

// gameRows is the screen height left for the game after the footer.
func gameRows(height int) int {
	return max(height-1, 1)
}

// Run starts the Bubble Tea program with the given game.
func Run(game core.Game, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
