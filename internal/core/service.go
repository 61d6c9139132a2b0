package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/celleditors/internal/config"
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/grid"
	"github.com/JonMunkholm/celleditors/internal/store"
)

// gridState is one hosted grid: its frozen options and its live data.
type gridState struct {
	key     GridKey
	options grid.Options
	data    *dataset.Dataset
	changed map[CellRef]struct{}
	history []HistoryEntry
}

func newGridState(key GridKey, data *dataset.Dataset) *gridState {
	var opts grid.Options
	if key == GridCustom {
		opts = grid.Custom(data)
	} else {
		opts = grid.Basic(data)
	}
	return &gridState{
		key:     key,
		options: opts,
		data:    data,
		changed: make(map[CellRef]struct{}),
	}
}

// Service hosts the demo grids and their edit sessions.
// All methods are safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	store    store.Store
	cfg      config.EditorConfig
	grids    map[GridKey]*gridState
	sessions map[string]*editSession
	cells    map[cellKey]string
	now      func() time.Time
}

// NewService builds the grids from the demo dataset and replays the edits
// recorded in st.
func NewService(ctx context.Context, st store.Store, cfg config.EditorConfig) (*Service, error) {
	s := &Service{
		store: st,
		cfg:   cfg,
		now:   time.Now,
	}
	s.resetLocked()

	edits, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load edits: %w", err)
	}
	replayed := 0
	for _, e := range edits {
		g, ok := s.grids[GridKey(e.Grid)]
		if !ok {
			slog.Warn("skipping edit for unknown grid", "grid", e.Grid)
			continue
		}
		if _, err := g.data.Set(e.Row, e.Column, e.Value); err != nil {
			slog.Warn("skipping stored edit", "grid", e.Grid, "row", e.Row, "column", e.Column, "error", err)
			continue
		}
		g.changed[CellRef{Row: e.Row, Column: e.Column}] = struct{}{}
		replayed++
	}
	if replayed > 0 {
		slog.Info("replayed stored edits", "count", replayed, "backend", store.Backend(st))
	}

	return s, nil
}

// resetLocked rebuilds every grid from the demo dataset and drops all
// sessions. Callers hold s.mu (or own s exclusively).
func (s *Service) resetLocked() {
	demo := dataset.Demo()
	s.grids = make(map[GridKey]*gridState)
	for _, key := range Grids() {
		s.grids[key] = newGridState(key, demo.Clone())
	}
	s.sessions = make(map[string]*editSession)
	s.cells = make(map[cellKey]string)
}

func (s *Service) gridLocked(key GridKey) (*gridState, error) {
	g, ok := s.grids[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrid, key)
	}
	return g, nil
}

// Options returns the frozen configuration of a grid.
func (s *Service) Options(key GridKey) (grid.Options, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gridLocked(key)
	if err != nil {
		return grid.Options{}, err
	}
	return g.options, nil
}

// Data returns a copy of a grid's current data ("Data Out").
func (s *Service) Data(key GridKey) (*dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gridLocked(key)
	if err != nil {
		return nil, err
	}
	return g.data.Clone(), nil
}

// Changed returns the cells edited since start or the last reset, ordered by
// row then column position.
func (s *Service) Changed(key GridKey) ([]CellRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.gridLocked(key)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int)
	for i, name := range g.data.ColumnNames() {
		order[name] = i
	}
	refs := make([]CellRef, 0, len(g.changed))
	for ref := range g.changed {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return order[refs[i].Column] < order[refs[j].Column]
	})
	return refs, nil
}

// Reset forgets all edits, both stored and in memory.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	dropped := len(s.sessions)
	s.resetLocked()

	slog.Info("grids reset", "sessions_dropped", dropped)
	return nil
}
