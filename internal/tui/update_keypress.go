package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	handler := m.keyPressHandlers()[msg.Keystroke()]
	if handler == nil {
		return Model{}, nil, false
	}
	return handler(m)
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (Model, tea.Cmd, bool) {
	return map[string]func(*Model) (Model, tea.Cmd, bool){
		"ctrl+c": (*Model).handleQuit,
		"q":      (*Model).handleQuit,
		"esc":    (*Model).handleQuit,
		"g":      (*Model).handleTop,
		"home":   (*Model).handleTop,
		"G":      (*Model).handleBottom,
		"end":    (*Model).handleBottom,
	}
}

func (m *Model) handleQuit() (Model, tea.Cmd, bool) {
	return *m, tea.Quit, true
}

func (m *Model) handleTop() (Model, tea.Cmd, bool) {
	m.viewport.GotoTop()
	return *m, nil, true
}

func (m *Model) handleBottom() (Model, tea.Cmd, bool) {
	m.viewport.GotoBottom()
	return *m, nil, true
}
