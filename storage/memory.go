package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrInjected = errors.New("injected storage failure")

// MemoryStorage keeps values in a map. It is safe for concurrent use.
type MemoryStorage struct {
	mu       sync.RWMutex
	values   map[string]string
	failSets int
	failGets int
	setCalls int
	closed   bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", false, ErrClosed
	}
	if m.failGets > 0 {
		m.failGets--
		return "", false, ErrInjected
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if m.closed {
		return ErrClosed
	}
	if m.failSets > 0 {
		m.failSets--
		return ErrInjected
	}
	m.values[key] = value
	return nil
}

// FailNextSets makes the next n calls to Set return ErrInjected.
func (m *MemoryStorage) FailNextSets(n int) {
	m.mu.Lock()
	m.failSets = n
	m.mu.Unlock()
}

// FailNextGets makes the next n calls to Get return ErrInjected.
func (m *MemoryStorage) FailNextGets(n int) {
	m.mu.Lock()
	m.failGets = n
	m.mu.Unlock()
}

// SetCalls reports how many times Set has been called, failed calls included.
func (m *MemoryStorage) SetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setCalls
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
