package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (i *memoryItem) expired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// Memory is an in-process TTL cache. Expired entries are dropped lazily on
// read and swept whenever the map grows past the sweep threshold.
type Memory struct {
	mu        sync.RWMutex
	items     map[string]*memoryItem
	sweepSize int
}

// NewMemory creates an empty in-process cache
func NewMemory() *Memory {
	return &Memory{
		items:     make(map[string]*memoryItem),
		sweepSize: 256,
	}
}

// Get returns the cached value for key if present and unexpired
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if item.expired(time.Now()) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

// Set stores value under key for ttl
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = &memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	if len(m.items) > m.sweepSize {
		m.sweep()
	}
}

// Delete removes key
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// Clear removes all entries
func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*memoryItem)
}

// sweep drops expired entries; caller holds the write lock
func (m *Memory) sweep() {
	now := time.Now()
	for key, item := range m.items {
		if item.expired(now) {
			delete(m.items, key)
		}
	}
}
