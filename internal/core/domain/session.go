package domain

import "time"

// DefaultSessionTTL is the lifetime of a payment session.
const DefaultSessionTTL = 30 * time.Minute

// SessionStatus is the lifecycle state of a payment session.
type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusEnded   SessionStatus = "ended"
	SessionStatusExpired SessionStatus = "expired"
)

// PaymentSession groups the attempts of one agent action. Held in memory only.
type PaymentSession struct {
	SessionID   string        `json:"session_id"`
	UserID      string        `json:"user_id"`
	AgentAction ActionKind    `json:"agent_action"`
	Nonce       uint64        `json:"nonce"`
	CreatedAt   time.Time     `json:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Status      SessionStatus `json:"status"`
}

// IsExpired reports whether the session is past its TTL.
func (s *PaymentSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
