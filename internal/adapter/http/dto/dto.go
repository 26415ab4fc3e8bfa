package dto

import "agent-payment-engine/internal/core/domain"

// LoginRequest is the request body for wallet sign-in.
type LoginRequest struct {
	Address   string `json:"address" binding:"required,eth_addr"`
	Timestamp int64  `json:"timestamp" binding:"required,gt=0"`
	Signature string `json:"signature" binding:"required,hex_sig"`
}

// LoginResponse carries a wallet session token. Expiry is a Unix timestamp.
type LoginResponse struct {
	Address   string `json:"address"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Expiry    int64  `json:"expiry"`
}

// SessionRequest opens a payment session.
type SessionRequest struct {
	Action string `json:"action" binding:"required,max=16"`
}

// PrepareRequest is the request body for preparing a payment intent.
type PrepareRequest struct {
	Action    string         `json:"action" binding:"omitempty,max=16"`
	Amount    string         `json:"amount" binding:"required,native_amount"`
	Recipient string         `json:"recipient" binding:"required"`
	Token     *string        `json:"token,omitempty"`
	Data      string         `json:"data,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// IntentRequest carries an unsigned intent (sign, preview).
type IntentRequest struct {
	Payment *domain.PaymentIntent `json:"payment" binding:"required"`
}

// SignedIntentRequest carries an intent and its signature (verify, execute).
type SignedIntentRequest struct {
	Signature string                `json:"signature" binding:"required"`
	Payment   *domain.PaymentIntent `json:"payment" binding:"required"`
}

// RiskRequest asks for an advisory assessment of a prospective transaction.
type RiskRequest struct {
	Amount    string `json:"amount" binding:"required,native_amount"`
	Recipient string `json:"recipient" binding:"required"`
	From      string `json:"from,omitempty"`
}

// HistoryQuery is the query string of GET /payments/history.
type HistoryQuery struct {
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=500"`
	Status    string `form:"status" binding:"omitempty,oneof=success pending failed"`
	Recipient string `form:"recipient" binding:"omitempty,eth_addr"`
}

// StatsQuery is the query string of GET /payments/stats.
type StatsQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=day week month all"`
}

// AmountLimitRequest sets a wei-denominated policy limit from a native amount.
type AmountLimitRequest struct {
	Limit string `json:"limit" binding:"required,max=40"`
}

// CountLimitRequest sets the daily transaction count limit.
type CountLimitRequest struct {
	Limit *int `json:"limit" binding:"required,gte=0"`
}

// AddressListRequest replaces an allow or deny list. An empty list clears it.
type AddressListRequest struct {
	Addresses []string `json:"addresses" binding:"max=1000"`
}

// ActionListRequest replaces the allowed actions.
type ActionListRequest struct {
	Actions []string `json:"actions" binding:"max=16"`
}

// BlockAddressRequest adds an address to the risk blocklist.
type BlockAddressRequest struct {
	Address string `json:"address" binding:"required,eth_addr"`
}

// PolicyUsageResponse reports today's tracked usage against the policy.
type PolicyUsageResponse struct {
	DailySpentWei      string `json:"daily_spent_wei"`
	DailySpent         string `json:"daily_spent"`
	DailyTxCount       int    `json:"daily_tx_count"`
	MaxDailySpend      string `json:"max_daily_spend"`
	RemainingDailyWei  string `json:"remaining_daily_wei"`
	RemainingDailyTxns int    `json:"remaining_daily_txns"`
}

// PaymentResponse is the API view of a stored payment.
type PaymentResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
	TxHash    string `json:"tx_hash"`
	Status    string `json:"status"`
	GasUsed   uint64 `json:"gas_used"`
	Timestamp string `json:"timestamp"`
}

// PaymentListResponse wraps a history page.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Count int               `json:"count"`
}

// NewPaymentResponse converts a domain payment to its API view.
func NewPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID.String(),
		Action:    string(p.Action),
		Amount:    p.Amount,
		Recipient: p.Recipient,
		TxHash:    p.TxHash,
		Status:    string(p.Status),
		GasUsed:   p.GasUsed,
		Timestamp: p.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
