package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/celleditors/internal/config"
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
	"github.com/JonMunkholm/celleditors/internal/store"
)

var testEditorConfig = config.EditorConfig{
	SessionTTL:    10 * time.Minute,
	SweepInterval: time.Minute,
}

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	if st == nil {
		st = store.NewMemory()
	}
	s, err := NewService(context.Background(), st, testEditorConfig)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s
}

// flakyStore fails Append until fail is cleared.
type flakyStore struct {
	*store.Memory
	fail bool
}

func (f *flakyStore) Append(ctx context.Context, e store.Edit) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Append(ctx, e)
}

func typeKeys(t *testing.T, s *Service, id string, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if _, err := s.Key(context.Background(), id, k); err != nil {
			t.Fatalf("Key(%q) error = %v", k, err)
		}
	}
}

func cellText(t *testing.T, s *Service, g GridKey, row int, col string) string {
	t.Helper()
	d, err := s.Data(g)
	if err != nil {
		t.Fatalf("Data() error = %v", err)
	}
	v, err := d.Get(row, col)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	return dataset.Format(v)
}

func TestParseGridKey(t *testing.T) {
	if g, err := ParseGridKey("custom"); err != nil || g != GridCustom {
		t.Errorf("ParseGridKey(custom) = %q, %v", g, err)
	}
	if _, err := ParseGridKey("fancy"); !errors.Is(err, ErrUnknownGrid) {
		t.Errorf("ParseGridKey(fancy) error = %v, want ErrUnknownGrid", err)
	}
}

func TestService_FloatCommitNormalizes(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	s := newTestService(t, st)

	view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 2, Column: dataset.ColFloats, CharPress: "3"})
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if view.ID == "" || view.State != editor.StateEditing {
		t.Fatalf("StartEdit() = %+v, want registered editing session", view)
	}
	if !view.Popup {
		t.Error("float column should open as popup")
	}
	if view.Editor.Text != "3" {
		t.Errorf("initial text = %q, want %q", view.Editor.Text, "3")
	}

	if _, err := s.Attach(ctx, view.ID); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	typeKeys(t, s, view.ID, "a", ".", "1")

	res, err := s.Commit(ctx, view.ID)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if res.NewValue != "3.10" {
		t.Errorf("NewValue = %q, want %q", res.NewValue, "3.10")
	}
	if res.OldValue != "87.54" {
		t.Errorf("OldValue = %q, want %q", res.OldValue, "87.54")
	}
	if !res.Flash {
		t.Error("custom grid should flash changed cells")
	}
	if got := cellText(t, s, GridCustom, 2, dataset.ColFloats); got != "3.10" {
		t.Errorf("stored cell = %q, want %q", got, "3.10")
	}

	edits, _ := st.Load(ctx)
	if len(edits) != 1 || edits[0].Value != "3.10" {
		t.Errorf("stored edits = %+v, want one edit of 3.10", edits)
	}

	changed, _ := s.Changed(GridCustom)
	if len(changed) != 1 || changed[0] != (CellRef{Row: 2, Column: dataset.ColFloats}) {
		t.Errorf("Changed() = %+v", changed)
	}
	if s.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", s.ActiveSessions())
	}
}

func TestService_IntegerFromPriorValue(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 0, Column: dataset.ColInteger})
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if view.Editor.Text != "200" {
		t.Fatalf("initial text = %q, want %q", view.Editor.Text, "200")
	}
	typeKeys(t, s, view.ID, "x", "7")

	res, err := s.Commit(ctx, view.ID)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if res.NewValue != "2007" {
		t.Errorf("NewValue = %q, want %q", res.NewValue, "2007")
	}
}

func TestService_CancelBeforeStart(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	for _, col := range []string{dataset.ColInteger, dataset.ColFloats} {
		view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 1, Column: col, CharPress: "a"})
		if err != nil {
			t.Fatalf("StartEdit(%s) error = %v", col, err)
		}
		if !view.Cancelled || view.ID != "" {
			t.Errorf("StartEdit(%s) = %+v, want cancelled without id", col, view)
		}
	}
	if s.ActiveSessions() != 0 {
		t.Errorf("cancelled edits must not register sessions, got %d", s.ActiveSessions())
	}

	// The cell stays free.
	if _, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 1, Column: dataset.ColInteger, CharPress: "5"}); err != nil {
		t.Errorf("StartEdit after cancel error = %v", err)
	}
}

func TestService_BasicGridKeepsTextEditorForNumbers(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridBasic, Row: 0, Column: dataset.ColInteger, CharPress: "a"})
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if view.Cancelled {
		t.Fatal("text editor should accept a letter")
	}
	if view.Editor.Kind != editor.KindText {
		t.Errorf("Editor.Kind = %q, want %q", view.Editor.Kind, editor.KindText)
	}
	res, err := s.Commit(ctx, view.ID)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if res.NewValue != "a" || res.Flash {
		t.Errorf("Commit() = %+v", res)
	}
	if got := cellText(t, s, GridBasic, 0, dataset.ColInteger); got != "a" {
		t.Errorf("stored cell = %q, want raw text", got)
	}
	if got := cellText(t, s, GridCustom, 0, dataset.ColInteger); got != "200" {
		t.Errorf("custom grid cell = %q, grids must not share data", got)
	}
}

func TestService_MalformedCommitLeavesCell(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	s := newTestService(t, st)

	view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 3, Column: dataset.ColFloats, CharPress: "1"})
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	typeKeys(t, s, view.ID, ".", ".")

	_, err = s.Commit(ctx, view.ID)
	if !errors.Is(err, editor.ErrMalformedCommit) {
		t.Fatalf("Commit() error = %v, want ErrMalformedCommit", err)
	}
	if got := cellText(t, s, GridCustom, 3, dataset.ColFloats); got != "321.9" {
		t.Errorf("cell = %q, want unchanged 321.9", got)
	}
	if edits, _ := st.Load(ctx); len(edits) != 0 {
		t.Errorf("malformed commit persisted %d edits", len(edits))
	}
	if _, err := s.Session(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session() error = %v, want ErrSessionNotFound", err)
	}
}

func TestService_CellBusy(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)
	req := StartEditRequest{Grid: GridBasic, Row: 1, Column: dataset.ColText}

	first, err := s.StartEdit(ctx, req)
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if _, err := s.StartEdit(ctx, req); !errors.Is(err, ErrCellBusy) {
		t.Fatalf("second StartEdit() error = %v, want ErrCellBusy", err)
	}

	// Same cell on the other grid is independent.
	if _, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 1, Column: dataset.ColText}); err != nil {
		t.Errorf("other grid StartEdit() error = %v", err)
	}

	if err := s.Cancel(ctx, first.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if got := cellText(t, s, GridBasic, 1, dataset.ColText); got != "Cicero" {
		t.Errorf("cancel changed the cell to %q", got)
	}
	if _, err := s.StartEdit(ctx, req); err != nil {
		t.Errorf("StartEdit after Cancel() error = %v", err)
	}
}

func TestService_RejectsBadTargets(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	tests := []struct {
		name string
		req  StartEditRequest
		want error
	}{
		{"unknown grid", StartEditRequest{Grid: "nope", Row: 0, Column: dataset.ColText}, ErrUnknownGrid},
		{"row out of range", StartEditRequest{Grid: GridBasic, Row: 6, Column: dataset.ColText}, dataset.ErrRowOutOfRange},
		{"negative row", StartEditRequest{Grid: GridBasic, Row: -1, Column: dataset.ColText}, dataset.ErrRowOutOfRange},
		{"unknown column", StartEditRequest{Grid: GridBasic, Row: 0, Column: "price"}, dataset.ErrUnknownColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.StartEdit(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("StartEdit() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := s.Key(ctx, "missing", "1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Key() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.Commit(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Commit() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.Options(GridCustom); err != nil {
		t.Errorf("Options() error = %v", err)
	}
	if _, err := s.Options("nope"); !errors.Is(err, ErrUnknownGrid) {
		t.Errorf("Options() error = %v, want ErrUnknownGrid", err)
	}
}

func TestService_PersistFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	st := &flakyStore{Memory: store.NewMemory(), fail: true}
	s := newTestService(t, st)

	view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 0, Column: dataset.ColFloats, CharPress: "7"})
	if err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if _, err := s.Commit(ctx, view.ID); err == nil {
		t.Fatal("Commit() should fail while the store fails")
	}
	if got := cellText(t, s, GridCustom, 0, dataset.ColFloats); got != "12.2" {
		t.Errorf("cell = %q, want unchanged", got)
	}

	st.fail = false
	res, err := s.Commit(ctx, view.ID)
	if err != nil {
		t.Fatalf("retry Commit() error = %v", err)
	}
	if res.NewValue != "7.00" {
		t.Errorf("NewValue = %q, want %q", res.NewValue, "7.00")
	}
	if got := cellText(t, s, GridCustom, 0, dataset.ColFloats); got != "7.00" {
		t.Errorf("cell = %q, want %q", got, "7.00")
	}
}

func TestService_ReplayAndReset(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	_ = st.Append(ctx, store.Edit{Grid: "custom", Row: 4, Column: dataset.ColInteger, Value: "99"})
	_ = st.Append(ctx, store.Edit{Grid: "gone", Row: 0, Column: dataset.ColText, Value: "x"})
	_ = st.Append(ctx, store.Edit{Grid: "basic", Row: 42, Column: dataset.ColText, Value: "x"})

	s := newTestService(t, st)
	if got := cellText(t, s, GridCustom, 4, dataset.ColInteger); got != "99" {
		t.Errorf("replayed cell = %q, want %q", got, "99")
	}
	changed, _ := s.Changed(GridCustom)
	if len(changed) != 1 {
		t.Errorf("Changed() = %+v, want the replayed cell", changed)
	}
	if h, _ := s.History(GridCustom, 0); len(h) != 0 {
		t.Errorf("History() = %+v, replayed edits have no history", h)
	}

	if _, err := s.StartEdit(ctx, StartEditRequest{Grid: GridBasic, Row: 0, Column: dataset.ColText}); err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if got := cellText(t, s, GridCustom, 4, dataset.ColInteger); got != "45" {
		t.Errorf("cell after reset = %q, want %q", got, "45")
	}
	if s.ActiveSessions() != 0 {
		t.Errorf("Reset() left %d sessions", s.ActiveSessions())
	}
	if edits, _ := st.Load(ctx); len(edits) != 0 {
		t.Errorf("Reset() left %d stored edits", len(edits))
	}
}

func TestService_HistoryNewestFirst(t *testing.T) {
	ctx := ContextWithUserAgent(ContextWithIPAddress(context.Background(), "10.0.0.1"), "test-agent")
	s := newTestService(t, nil)

	for _, c := range []string{"1", "2", "3"} {
		view, err := s.StartEdit(ctx, StartEditRequest{Grid: GridCustom, Row: 5, Column: dataset.ColInteger, CharPress: c})
		if err != nil {
			t.Fatalf("StartEdit() error = %v", err)
		}
		if _, err := s.Commit(ctx, view.ID); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
	}

	h, err := s.History(GridCustom, 2)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(h) != 2 {
		t.Fatalf("History() len = %d, want 2", len(h))
	}
	if h[0].NewValue != "3" || h[0].OldValue != "2" || h[1].NewValue != "2" {
		t.Errorf("History() = %+v", h)
	}
	if h[0].IPAddress != "10.0.0.1" || h[0].UserAgent != "test-agent" {
		t.Errorf("History() lost request context: %+v", h[0])
	}
}

func TestService_SweepExpired(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, nil)

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	idle, _ := s.StartEdit(ctx, StartEditRequest{Grid: GridBasic, Row: 0, Column: dataset.ColText})
	busy, _ := s.StartEdit(ctx, StartEditRequest{Grid: GridBasic, Row: 1, Column: dataset.ColText})

	s.now = func() time.Time { return start.Add(9 * time.Minute) }
	typeKeys(t, s, busy.ID, "x")

	if n := s.sweepExpired(start.Add(11*time.Minute), testEditorConfig.SessionTTL); n != 1 {
		t.Fatalf("sweepExpired() = %d, want 1", n)
	}
	if _, err := s.Session(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present: %v", err)
	}
	if _, err := s.Session(busy.ID); err != nil {
		t.Errorf("active session swept: %v", err)
	}
}

func TestService_SessionSweeperStops(t *testing.T) {
	s := newTestService(t, nil)
	s.cfg.SweepInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.StartSessionSweeper(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
