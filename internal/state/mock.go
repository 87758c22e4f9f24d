package state

import (
	"slices"
	"sync"
)

// Mock is an in-memory test double for Manager. Saves apply immediately.
type Mock struct {
	mu     sync.Mutex
	items  map[string]Progress
	saves  int
	closed bool
}

// NewMock creates a new mock progress store for testing.
func NewMock() *Mock {
	return &Mock{items: make(map[string]Progress)}
}

func (m *Mock) GetProgress(key string) (*Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[key]
	if !ok {
		return nil, nil //nolint:nilnil // matches Manager
	}
	return &p, nil
}

func (m *Mock) SaveProgress(p Progress) {
	if p.MediaKey == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[p.MediaKey] = p
	m.saves++
}

func (m *Mock) ListProgress(limit int) ([]Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Progress, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Progress) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) DeleteProgress(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
