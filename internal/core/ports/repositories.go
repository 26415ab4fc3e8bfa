package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"encoding/json"
	"time"

	"agent-payment-engine/internal/core/domain"
)

// LedgerStore is the durable store for payment history and user preferences.
// Implementations must report unreachability as an error rather than empty results.
type LedgerStore interface {
	StorePayment(ctx context.Context, payment *domain.Payment) error
	QueryPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	GetUserPreferences(ctx context.Context, userID string) (map[string]json.RawMessage, error)
	StoreUserPreference(ctx context.Context, userID, key string, value json.RawMessage) error
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// NonceStore records consumed nonces for replay protection.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// RateLimiter counts requests per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}
