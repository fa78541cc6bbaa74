package storage

import (
	"context"
	"sync"

	"fitforge/internal/core/tracker"
	"fitforge/internal/pkg/common"
)

// MemoryStore 行程內儲存，以序列化後的副本保存避免共用指標
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (*tracker.AppState, error) {
	m.mu.RLock()
	data, ok := m.data[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, common.ErrStateNotFound
	}
	return decodeState(data)
}

func (m *MemoryStore) Save(_ context.Context, userID string, state *tracker.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[userID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
