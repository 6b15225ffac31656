package storage

import (
	"fmt"
	"sync"
)

// memoryStorage keeps the latest document in memory
type memoryStorage struct {
	mu     sync.RWMutex
	data   []byte
	saves  int
	closed bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{}
}

func (m *memoryStorage) SaveSpec(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("storage is closed")
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *memoryStorage) Data() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}

func (m *memoryStorage) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func (m *memoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
