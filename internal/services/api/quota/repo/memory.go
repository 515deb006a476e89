package repo

import (
	"context"
	"sync"

	perr "resumeranker/internal/platform/errors"
)

// Memory is an in-process ledger guarded by one mutex
// the default backend, mirrors a single-tenant deployment without Postgres
type Memory struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewMemory returns an empty in-process ledger
func NewMemory() *Memory {
	return &Memory{balances: map[string]int{}}
}

// Ensure seeds the ledger lazily, existing keys are left untouched
func (m *Memory) Ensure(_ context.Context, key string, allotment int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[key]; !ok {
		m.balances[key] = allotment
	}
	return nil
}

// Debit checks and subtracts under the same lock acquisition
func (m *Memory) Debit(_ context.Context, key string, amount int) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[key]
	if !ok {
		return 0, false, perr.DBf("no ledger for %q", key)
	}
	if amount > bal {
		return bal, false, nil
	}
	bal -= amount
	m.balances[key] = bal
	return bal, true, nil
}

// Credit restores amount to the ledger
func (m *Memory) Credit(_ context.Context, key string, amount int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[key]
	if !ok {
		return 0, perr.DBf("no ledger for %q", key)
	}
	bal += amount
	m.balances[key] = bal
	return bal, nil
}

// Balance reads the current balance for key
func (m *Memory) Balance(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bal, ok := m.balances[key]
	if !ok {
		return 0, perr.DBf("no ledger for %q", key)
	}
	return bal, nil
}
