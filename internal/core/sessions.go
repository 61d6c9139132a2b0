package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
	"github.com/JonMunkholm/celleditors/internal/logging"
	"github.com/JonMunkholm/celleditors/internal/store"
	"github.com/google/uuid"
)

// cellKey locks a cell to at most one live session.
type cellKey struct {
	grid GridKey
	cell CellRef
}

type editSession struct {
	id         string
	grid       GridKey
	cell       CellRef
	sess       *editor.Session
	popup      bool
	lastActive time.Time
}

func (es *editSession) view() SessionView {
	return SessionView{
		ID:               es.id,
		Grid:             es.grid,
		Row:              es.cell.Row,
		Column:           es.cell.Column,
		State:            es.sess.State(),
		Cancelled:        es.sess.Cancelled(),
		InitialCharacter: es.sess.InitialCharacter(),
		Popup:            es.popup,
		Editor:           es.sess.Editor().View(),
	}
}

// StartEdit opens an editor on a cell. If the editor cancels before start
// (a numeric editor started by a non-digit) the returned view is Cancelled,
// carries no ID and the cell stays free.
func (s *Service) StartEdit(ctx context.Context, req StartEditRequest) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gridLocked(req.Grid)
	if err != nil {
		return SessionView{}, err
	}
	value, err := g.data.Get(req.Row, req.Column)
	if err != nil {
		return SessionView{}, err
	}
	ed, err := g.options.NewEditor(req.Column)
	if err != nil {
		return SessionView{}, err
	}

	cell := CellRef{Row: req.Row, Column: req.Column}
	key := cellKey{grid: req.Grid, cell: cell}
	if _, busy := s.cells[key]; busy {
		return SessionView{}, fmt.Errorf("%w: %s row %d column %q", ErrCellBusy, req.Grid, req.Row, req.Column)
	}

	es := &editSession{
		grid:       req.Grid,
		cell:       cell,
		sess:       editor.Start(ed, editor.InitParams{Value: value, CharPress: req.CharPress}),
		popup:      g.options.Popup(req.Column, ed),
		lastActive: s.now(),
	}

	log := logging.WithFields(ctx, "grid", req.Grid, "row", req.Row, "column", req.Column, "editor", ed.Kind())
	if es.sess.Cancelled() {
		log.Debug("edit cancelled before start", "char_press", req.CharPress)
		return es.view(), nil
	}

	es.id = uuid.NewString()
	s.sessions[es.id] = es
	s.cells[key] = es.id

	log.Debug("edit started", "session", es.id, "popup", es.popup)
	return es.view(), nil
}

func (s *Service) sessionLocked(id string) (*editSession, error) {
	es, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return es, nil
}

func (s *Service) closeLocked(es *editSession) {
	delete(s.sessions, es.id)
	delete(s.cells, cellKey{grid: es.grid, cell: es.cell})
}

// Session returns the current view of a live session.
func (s *Service) Session(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := s.sessionLocked(id)
	if err != nil {
		return SessionView{}, err
	}
	return es.view(), nil
}

// Attach tells the editor it is now visible so it can take focus.
func (s *Service) Attach(ctx context.Context, id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := s.sessionLocked(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := es.sess.Attach(); err != nil {
		return SessionView{}, err
	}
	es.lastActive = s.now()
	return es.view(), nil
}

// Key routes one keystroke to a session's editor.
func (s *Service) Key(ctx context.Context, id, key string) (KeyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := s.sessionLocked(id)
	if err != nil {
		return KeyResponse{}, err
	}
	res, err := es.sess.Key(key)
	if err != nil {
		return KeyResponse{}, err
	}
	es.lastActive = s.now()
	return KeyResponse{Result: res, Session: es.view()}, nil
}

// Commit ends a session and writes its value into the grid. The edit is
// persisted before the grid changes; if persisting fails the session stays
// open and committing again retries with the same value. A malformed value
// closes the session and leaves the cell as it was.
func (s *Service) Commit(ctx context.Context, id string) (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := s.sessionLocked(id)
	if err != nil {
		return CommitResult{}, err
	}
	log := logging.WithFields(ctx, "session", id, "grid", es.grid, "row", es.cell.Row, "column", es.cell.Column)

	value, err := es.sess.Commit()
	if err != nil {
		if errors.Is(err, editor.ErrMalformedCommit) {
			s.closeLocked(es)
			log.Warn("malformed commit discarded", "text", es.sess.CurrentValue())
		}
		return CommitResult{}, fmt.Errorf("commit: %w", err)
	}

	g := s.grids[es.grid]
	old, err := g.data.Get(es.cell.Row, es.cell.Column)
	if err != nil {
		s.closeLocked(es)
		return CommitResult{}, err
	}

	now := s.now()
	if err := s.store.Append(ctx, store.Edit{
		Grid:     string(es.grid),
		Row:      es.cell.Row,
		Column:   es.cell.Column,
		Value:    value,
		EditedAt: now,
	}); err != nil {
		return CommitResult{}, fmt.Errorf("persist edit: %w", err)
	}

	if _, err := g.data.Set(es.cell.Row, es.cell.Column, value); err != nil {
		s.closeLocked(es)
		return CommitResult{}, err
	}

	res := CommitResult{
		Grid:     es.grid,
		Row:      es.cell.Row,
		Column:   es.cell.Column,
		OldValue: dataset.Format(old),
		NewValue: value,
		Flash:    g.options.FlashChangedCells(),
	}
	g.changed[es.cell] = struct{}{}
	g.history = append(g.history, HistoryEntry{
		Grid:      es.grid,
		Row:       es.cell.Row,
		Column:    es.cell.Column,
		OldValue:  res.OldValue,
		NewValue:  res.NewValue,
		EditedAt:  now,
		IPAddress: GetIPAddressFromContext(ctx),
		UserAgent: GetUserAgentFromContext(ctx),
	})
	s.closeLocked(es)

	log.Info("edit committed", "old", res.OldValue, "new", res.NewValue)
	return res, nil
}

// Cancel discards a session without touching the grid.
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, err := s.sessionLocked(id)
	if err != nil {
		return err
	}
	s.closeLocked(es)

	logging.WithFields(ctx, "session", id).Debug("edit cancelled")
	return nil
}

// sweepExpired drops sessions idle for longer than ttl and returns how many
// were removed.
func (s *Service) sweepExpired(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, es := range s.sessions {
		if now.Sub(es.lastActive) > ttl {
			s.closeLocked(es)
			n++
		}
	}
	if n > 0 {
		slog.Info("expired edit sessions removed", "count", n)
	}
	return n
}

// ActiveSessions reports how many sessions are open.
func (s *Service) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
