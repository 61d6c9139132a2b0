package editor

import (
	"errors"
	"fmt"
)

// State is the lifecycle position of an edit session.
type State string

const (
	StateNotStarted State = "not_started"
	StateEditing    State = "editing"
	StateCommitted  State = "committed"
	StateCancelled  State = "cancelled"
)

var (
	// ErrNotEditing is returned when input arrives for a session that is no
	// longer accepting it.
	ErrNotEditing = errors.New("session is not editing")

	// ErrCancelledBeforeStart is returned when committing a session that
	// was cancelled before it was shown.
	ErrCancelledBeforeStart = errors.New("edit cancelled before start")
)

// Session drives one editor through NotStarted -> Editing ->
// {Committed | Cancelled}.
type Session struct {
	ed        Editor
	state     State
	initial   string
	committed string
}

// Start initializes ed and returns its session. A session whose editor asks
// to cancel before start is returned already Cancelled.
func Start(ed Editor, p InitParams) *Session {
	s := &Session{ed: ed, state: StateNotStarted, initial: p.CharPress}
	ed.Init(p)
	if ed.IsCancelBeforeStart() {
		s.state = StateCancelled
	} else {
		s.state = StateEditing
	}
	return s
}

func (s *Session) Editor() Editor { return s.ed }

func (s *Session) State() State { return s.state }

// Cancelled reports whether the session was cancelled before start.
func (s *Session) Cancelled() bool { return s.state == StateCancelled }

// InitialCharacter is the keystroke that triggered the edit, if any.
func (s *Session) InitialCharacter() string { return s.initial }

// CurrentValue is the text accumulated so far.
func (s *Session) CurrentValue() string { return s.ed.View().Text }

// Attach focuses the editor once it is visible.
func (s *Session) Attach() error {
	if s.state != StateEditing {
		return fmt.Errorf("attach: %w (%s)", ErrNotEditing, s.state)
	}
	s.ed.AfterGuiAttached()
	return nil
}

// Key routes one keystroke to the editor.
func (s *Session) Key(key string) (KeyResult, error) {
	if s.state != StateEditing {
		return KeyResult{Suppressed: true}, fmt.Errorf("key: %w (%s)", ErrNotEditing, s.state)
	}
	return s.ed.HandleKey(key), nil
}

// Commit asks the editor for its value. A malformed value leaves the session
// editing so the caller decides whether to close it. Committing again without
// further input returns the same value.
func (s *Session) Commit() (string, error) {
	switch s.state {
	case StateCommitted:
		return s.committed, nil
	case StateCancelled:
		return "", ErrCancelledBeforeStart
	}
	v, err := s.ed.GetValue()
	if err != nil {
		return "", err
	}
	s.committed = v
	s.state = StateCommitted
	return v, nil
}
