package session

import (
	"context"
	"sync"
	"time"

	"BlackJack/internal/game/table"
)

type memEntry struct {
	round   table.Round
	expires time.Time
}

type memRepo struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memEntry
}

// NewMemoryRepo 内存版，单进程开发与测试使用
func NewMemoryRepo(ttl time.Duration) Repo {
	return &memRepo{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memEntry),
	}
}

func (m *memRepo) Load(ctx context.Context, id string) (*table.Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expires) {
		delete(m.entries, id)
		return nil, nil
	}
	r := e.round.Clone()
	return &r, nil
}

func (m *memRepo) Save(ctx context.Context, id string, r *table.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memEntry{round: r.Clone(), expires: m.now().Add(m.ttl)}
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
