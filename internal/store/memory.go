package store

import (
	"context"
	"sync"
	"time"
)

// Memory keeps edits in process memory.
type Memory struct {
	mu    sync.Mutex
	edits []Edit
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) ([]Edit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Edit(nil), m.edits...), nil
}

func (m *Memory) Append(ctx context.Context, e Edit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.EditedAt.IsZero() {
		e.EditedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, e)
	return nil
}

func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = nil
	return nil
}

func (m *Memory) Close() error { return nil }
