package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/usecase"
)

// MockEntryStore is an in-memory implementation of EntryRepository.
type MockEntryStore struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc             func(ctx context.Context, entry *domain.LedgerEntry) error
	GetByDateRangeFunc     func(ctx context.Context, from, to time.Time) ([]*domain.LedgerEntry, error)
	HasActiveEntriesOnFunc func(ctx context.Context, day domain.Day) (bool, error)
	ListFunc               func(ctx context.Context, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error)
}

func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{}
}

// Add seeds entries without going through Create.
func (m *MockEntryStore) Add(entries ...*domain.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
}

func (m *MockEntryStore) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.Add(entry)
	return nil
}

func (m *MockEntryStore) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.LedgerEntry, error) {
	if m.GetByDateRangeFunc != nil {
		return m.GetByDateRangeFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.Status != domain.EntryStatusActive {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *MockEntryStore) HasActiveEntriesOn(ctx context.Context, day domain.Day) (bool, error) {
	if m.HasActiveEntriesOnFunc != nil {
		return m.HasActiveEntriesOnFunc(ctx, day)
	}
	entries, err := m.GetByDateRange(ctx, day.StartOfDay(), day.EndOfDay())
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

func (m *MockEntryStore) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.LedgerEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.LedgerEntry
	for _, e := range m.entries {
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// MockBalanceStore is an in-memory implementation of BalanceRepository.
type MockBalanceStore struct {
	mu       sync.RWMutex
	balances map[string]*domain.DailyBalance
	puts     int

	GetFunc func(ctx context.Context, day domain.Day) (*domain.DailyBalance, error)
	PutFunc func(ctx context.Context, balance *domain.DailyBalance) error
}

func NewMockBalanceStore() *MockBalanceStore {
	return &MockBalanceStore{
		balances: make(map[string]*domain.DailyBalance),
	}
}

func (m *MockBalanceStore) Get(ctx context.Context, day domain.Day) (*domain.DailyBalance, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[day.String()]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceStore) Put(ctx context.Context, balance *domain.DailyBalance) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *balance
	m.balances[balance.Date.String()] = &copied
	m.puts++
	return nil
}

// Puts returns how many times Put was called.
func (m *MockBalanceStore) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Stored returns the stored balance for a day, or nil.
func (m *MockBalanceStore) Stored(day domain.Day) *domain.DailyBalance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[day.String()]
}

// MockCacheStore is an in-memory implementation of Cache with glob-style
// pattern invalidation limited to a trailing '*'.
type MockCacheStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc            func(ctx context.Context, key string) ([]byte, error)
	SetFunc            func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc         func(ctx context.Context, key string) error
	DeleteMatchingFunc func(ctx context.Context, pattern string) error
}

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		values: make(map[string][]byte),
	}
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, usecase.ErrCacheMiss
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MockCacheStore) DeleteMatching(ctx context.Context, pattern string) error {
	if m.DeleteMatchingFunc != nil {
		return m.DeleteMatchingFunc(ctx, pattern)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := pattern
	if n := len(pattern); n > 0 && pattern[n-1] == '*' {
		prefix = pattern[:n-1]
	}
	for k := range m.values {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.values, k)
		}
	}
	return nil
}

// Has reports whether a key is present.
func (m *MockCacheStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}

// Seed stores a raw value directly.
func (m *MockCacheStore) Seed(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Len returns the number of cached keys.
func (m *MockCacheStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
