package tui

import "github.com/JonMunkholm/celleditors/internal/core"

// DoneMsg reports a finished background action.
type DoneMsg string

// ErrMsg reports a failed background action.
type ErrMsg struct {
	Err error
}

// committedMsg carries a successful commit back to Update.
type committedMsg struct {
	res core.CommitResult
}

// commitFailedMsg keeps the session id so Update can tell whether the
// session survived the failure.
type commitFailedMsg struct {
	id  string
	err error
}

// resetMsg follows a successful reset: the model must drop its session.
type resetMsg struct{}
