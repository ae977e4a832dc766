package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battle/internal/core"
)

// KeyMap defines the key bindings for a running encounter.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Restart key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Confirm, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Pause, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys(" ", "enter", "z"),
			key.WithHelp("space", "continue"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// DefaultHoldWindow is how long a direction stays held after its last key
// event. Terminals report presses and auto-repeats but never releases.
const DefaultHoldWindow = 180 * time.Millisecond

// HoldTracker turns discrete key events into held directions.
// Non-directional actions last for exactly one frame.
type HoldTracker struct {
	window  time.Duration
	held    map[core.Action]time.Duration
	oneShot core.InputFrame
}

// NewHoldTracker creates a tracker that keeps directions held for window.
func NewHoldTracker(window time.Duration) *HoldTracker {
	return &HoldTracker{
		window:  window,
		held:    make(map[core.Action]time.Duration, 4),
		oneShot: core.NewInputFrame(),
	}
}

// Press records a key event for action.
func (h *HoldTracker) Press(a core.Action) {
	if opp, ok := opposite(a); ok {
		delete(h.held, opp)
		h.held[a] = h.window
		return
	}
	h.oneShot.Set(a)
}

// Frame returns the input for the next step and consumes one-shot actions.
// dt is the simulated time the frame covers.
func (h *HoldTracker) Frame(dt time.Duration) core.InputFrame {
	in := h.oneShot
	h.oneShot = core.NewInputFrame()

	for a, left := range h.held {
		in.Set(a)
		left -= dt
		if left <= 0 {
			delete(h.held, a)
		} else {
			h.held[a] = left
		}
	}
	return in
}

// Release drops every held direction.
func (h *HoldTracker) Release() {
	clear(h.held)
}

func opposite(a core.Action) (core.Action, bool) {
	switch a {
	case core.ActionUp:
		return core.ActionDown, true
	case core.ActionDown:
		return core.ActionUp, true
	case core.ActionLeft:
		return core.ActionRight, true
	case core.ActionRight:
		return core.ActionLeft, true
	}
	return core.ActionNone, false
}
