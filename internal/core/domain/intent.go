package domain

import (
	"strings"
	"time"
)

// DefaultIntentTTL is how long a prepared payment stays signable.
const DefaultIntentTTL = time.Hour

// PaymentIntent is the ephemeral description of one attempted payment.
// It is signed and handed back for verification; it is never persisted as pending.
type PaymentIntent struct {
	User      string         `json:"user"`
	Agent     string         `json:"agent"`
	Action    ActionKind     `json:"action"`
	Amount    string         `json:"amount"` // native unit decimal string
	Recipient string         `json:"recipient"`
	Token     *string        `json:"token"` // nil = native asset
	Nonce     uint64         `json:"nonce"`
	Timestamp int64          `json:"timestamp"`
	Expires   int64          `json:"expires"`
	Data      string         `json:"data,omitempty"` // hex calldata for call/swap
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// IsExpired reports whether the intent can no longer be verified. expires == now is expired.
func (p *PaymentIntent) IsExpired(now time.Time) bool {
	return p.Expires <= now.Unix()
}

// UserKey is the normalized key used for per-user state.
func (p *PaymentIntent) UserKey() string {
	return strings.ToLower(p.User)
}
