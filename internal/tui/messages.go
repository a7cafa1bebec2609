package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/hitext/internal/scheduler"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

type resultMsg scheduler.Result

type errMsg struct{ err error }

// ResultMsg wraps a finished highlight pass for Program.Send.
func ResultMsg(r scheduler.Result) tea.Msg { return resultMsg(r) }

// ErrMsg reports a failure (an unreadable file, a watcher error) in the
// status bar.
func ErrMsg(err error) tea.Msg { return errMsg{err: err} }
