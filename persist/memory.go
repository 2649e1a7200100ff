package persist

import (
	"context"
	"sync"

	"lab_asset_ledger/models"
)

// MemoryStore keeps the snapshot in process memory. Used by tests and as
// a null driver.
type MemoryStore struct {
	mu    sync.Mutex
	snap  *models.Snapshot
	saves int
}

func NewMemory() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error { return nil }
