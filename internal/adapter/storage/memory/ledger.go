// Package memory provides process-local stores used when Postgres or Redis
// are not available, and in tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"agent-payment-engine/internal/core/domain"
)

// LedgerStore implements ports.LedgerStore in memory. Data does not survive a restart.
type LedgerStore struct {
	mu       sync.RWMutex
	payments []domain.Payment
	prefs    map[string]map[string]json.RawMessage
}

// NewLedgerStore creates an empty in-memory ledger.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		prefs: make(map[string]map[string]json.RawMessage),
	}
}

// StorePayment appends a payment record.
func (l *LedgerStore) StorePayment(_ context.Context, p *domain.Payment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.payments = append(l.payments, *p)
	return nil
}

// QueryPayments returns matching payments, newest first.
func (l *LedgerStore) QueryPayments(_ context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	user := strings.ToLower(f.UserID)
	out := make([]domain.Payment, 0)
	for i := len(l.payments) - 1; i >= 0; i-- {
		p := l.payments[i]
		if user != "" && strings.ToLower(p.UserID) != user {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		if f.Recipient != "" && !strings.EqualFold(p.Recipient, f.Recipient) {
			continue
		}
		if f.Since != nil && p.Timestamp.Before(*f.Since) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// GetUserPreferences returns a copy of the user's preference map.
func (l *LedgerStore) GetUserPreferences(_ context.Context, userID string) (map[string]json.RawMessage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]json.RawMessage)
	for k, v := range l.prefs[strings.ToLower(userID)] {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}

// StoreUserPreference overwrites a single preference key.
func (l *LedgerStore) StoreUserPreference(_ context.Context, userID, key string, value json.RawMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	user := strings.ToLower(userID)
	if l.prefs[user] == nil {
		l.prefs[user] = make(map[string]json.RawMessage)
	}
	l.prefs[user][key] = append(json.RawMessage(nil), value...)
	return nil
}
