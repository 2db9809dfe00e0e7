// Package store persists the budget ledger behind a string key-value port.
package store

import (
	"context"
	"sync"
)

// Keys under which the ledger is persisted. Values are JSON strings.
const (
	KeyProfile            = "budgetData"
	KeyDailyLogs          = "dailyLogs"
	KeyOnboardingComplete = "onboardingComplete"
	KeyUserMode           = "userMode"
)

// ledgerKeys lists every key owned by the ledger.
var ledgerKeys = []string{KeyProfile, KeyDailyLogs, KeyOnboardingComplete, KeyUserMode}

// KV is a string key-value store. Each call is a single atomic operation;
// nothing spans keys.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV, used in tests and as a fallback when no
// database path is configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove implements KV.
func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
