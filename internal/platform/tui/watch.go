package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battle/internal/config"
)

// ConfigChangedMsg reports that the watched config file was written.
type ConfigChangedMsg struct {
	Path string
}

// ConfigErrorMsg reports a failure from the underlying file watcher.
type ConfigErrorMsg struct {
	Err error
}

// waitForConfig blocks until the watcher reports a change or an error.
// It returns nil once the watcher is closed, ending the loop.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return ConfigErrorMsg{Err: err}
		}
	}
}
