// Package tui is the live preview shown by `hitext watch`: the latest
// highlighted version of a file in a scrollable viewport with a status bar.
package tui

import (
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/hitext/internal/render"
	"github.com/xonecas/hitext/internal/scheduler"
	"github.com/xonecas/hitext/internal/theme"
)

const statusRows = 1

// Model holds the preview state.
type Model struct {
	path     string
	styles   Styles
	viewport viewport.Model

	width, height int

	seq     uint64
	runs    int
	elapsed time.Duration
	updated time.Time
	err     error
}

// New returns a preview of path styled from pal.
func New(path string, pal theme.Palette) Model {
	return Model{
		path:     path,
		styles:   NewStyles(pal),
		viewport: viewport.New(),
	}
}

// Init initializes the TUI (required by BubbleTea)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizes, keys and incoming highlight results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tea.KeyPressMsg:
		if next, cmd, ok := m.handleKeyPress(msg); ok {
			return next, cmd
		}

	case resultMsg:
		m.applyResult(scheduler.Result(msg))
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyResult swaps the viewport content for a newer pass.
func (m *Model) applyResult(r scheduler.Result) {
	if r.Seq <= m.seq || r.Text == nil {
		return
	}
	m.seq = r.Seq
	m.runs = len(r.Text.Runs())
	m.elapsed = r.Elapsed
	m.updated = time.Now()
	m.err = nil
	m.viewport.SetContent(render.ANSI(r.Text))
}

// handleResize applies a window size change to the viewport.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(max(m.height-statusRows, 0))
}
