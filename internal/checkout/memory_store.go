package checkout

import (
	"context"
	"sync"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// MemoryPayloadStore backs tests and single-process setups.
type MemoryPayloadStore struct {
	mu    sync.RWMutex
	slots map[int64]domain.CheckoutPayload
}

func NewMemoryPayloadStore() *MemoryPayloadStore {
	return &MemoryPayloadStore{slots: make(map[int64]domain.CheckoutPayload)}
}

func (m *MemoryPayloadStore) Put(_ context.Context, userID int64, p domain.CheckoutPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[userID] = p
	return nil
}

func (m *MemoryPayloadStore) Get(_ context.Context, userID int64) (domain.CheckoutPayload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.slots[userID]
	if !ok {
		return domain.CheckoutPayload{}, ErrNoPayload
	}
	return p, nil
}

func (m *MemoryPayloadStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, userID)
	return nil
}
