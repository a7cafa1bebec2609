package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderStatusBar shows the file, the pass that produced the view and any
// pending error, padded to the window width.
func (m Model) renderStatusBar() string {
	left := m.styles.Path.Render(" " + m.path + " ")

	var right string
	switch {
	case m.err != nil:
		right = m.styles.Error.Render(" " + m.err.Error() + " ")
	case m.seq == 0:
		right = m.styles.Status.Render(" highlighting… ")
	default:
		right = m.styles.Status.Render(fmt.Sprintf(" pass %d · %d runs · %s · %3.f%% ",
			m.seq, m.runs, m.elapsed.Round(time.Microsecond), m.viewport.ScrollPercent()*100))
	}

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		return ansi.Truncate(left+right, m.width, "")
	}
	return left + m.styles.Status.Render(strings.Repeat(" ", gap)) + right
}
