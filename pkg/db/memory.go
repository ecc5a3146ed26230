package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps documents in memory
type MemoryStore struct {
	mu        sync.Mutex
	documents map[string]*Document
	now       func() time.Time
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]*Document),
		now:       time.Now,
	}
}

// Save implements Store
func (m *MemoryStore) Save(_ context.Context, id, kind string, data []byte, expectedVersion int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var version int64
	if d, ok := m.documents[id]; ok {
		version = d.Version
	}

	if version != expectedVersion {
		return 0, ErrStaleWrite
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	m.documents[id] = &Document{
		ID:      id,
		Kind:    kind,
		Version: version + 1,
		Data:    stored,
		Updated: m.now(),
	}

	return version + 1, nil
}

// Load implements Store
func (m *MemoryStore) Load(_ context.Context, id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.documents[id]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *d
	return &clone, nil
}

// List implements Store
func (m *MemoryStore) List(_ context.Context, kind string) ([]*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	documents := make([]*Document, 0)
	for _, d := range m.documents {
		if d.Kind == kind {
			clone := *d
			documents = append(documents, &clone)
		}
	}

	sort.Slice(documents, func(i, j int) bool {
		return documents[i].ID < documents[j].ID
	})

	return documents, nil
}
