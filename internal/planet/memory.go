package planet

import (
	"context"
	"sync"
	"time"

	apperrors "planets-catalog/internal/shared/errors"
)

// MemoryStore keeps planets in process memory. It backs local runs with
// STORAGE_BACKEND=memory and the HTTP tests. Stored values are copies, so
// callers never share a *Planet with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int
	records map[int]record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, records: make(map[int]record)}
}

func (m *MemoryStore) Create(_ context.Context, p *Planet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.Name == p.name {
			return apperrors.Conflictf("planet %q already exists", p.name)
		}
	}

	p.id = m.nextID
	p.createdAt = time.Now().UTC()
	p.updatedAt = p.createdAt
	m.nextID++
	m.records[p.id] = recordOf(p)
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id int) (*Planet, error) {
	m.mu.RLock()
	r, ok := m.records[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFoundf("planet %d not found", id)
	}
	return r.toPlanet()
}

func (m *MemoryStore) List(_ context.Context, filter ListFilter) ([]*Planet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var planets []*Planet
	skipped := 0
	for id := 1; id < m.nextID; id++ {
		r, ok := m.records[id]
		if !ok || (filter.Type != "" && r.Type != filter.Type) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(planets) == filter.Limit {
			break
		}

		p, err := r.toPlanet()
		if err != nil {
			return nil, err
		}
		planets = append(planets, p)
	}
	return planets, nil
}

func (m *MemoryStore) Update(_ context.Context, p *Planet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[p.id]; !ok {
		return apperrors.NotFoundf("planet %d not found", p.id)
	}
	for id, r := range m.records {
		if id != p.id && r.Name == p.name {
			return apperrors.Conflictf("planet %q already exists", p.name)
		}
	}

	p.updatedAt = time.Now().UTC()
	m.records[p.id] = recordOf(p)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return apperrors.NotFoundf("planet %d not found", id)
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}
