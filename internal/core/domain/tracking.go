package domain

import (
	"math/big"
	"strings"
	"time"
)

const trackingDateLayout = "2006-01-02"

// PaymentSummary is the per-payment line kept in a day's tracking entry.
type PaymentSummary struct {
	Action    ActionKind `json:"action"`
	Amount    string     `json:"amount"` // wei
	Recipient string     `json:"recipient"`
	TxHash    string     `json:"tx_hash,omitempty"`
	Nonce     uint64     `json:"nonce"`
	At        time.Time  `json:"at"`
}

// DailyTracking is a user's running totals for one UTC calendar day.
type DailyTracking struct {
	Spent    *big.Int         `json:"-"`
	TxCount  int              `json:"tx_count"`
	Payments []PaymentSummary `json:"payments"`
}

// NewDailyTracking returns an empty tracking entry.
func NewDailyTracking() *DailyTracking {
	return &DailyTracking{Spent: new(big.Int), Payments: []PaymentSummary{}}
}

// Add accumulates one payment.
func (d *DailyTracking) Add(amount *big.Int, summary PaymentSummary) {
	d.Spent.Add(d.Spent, amount)
	d.TxCount++
	d.Payments = append(d.Payments, summary)
}

// TrackingDate formats t as the date suffix of a tracking key.
func TrackingDate(t time.Time) string {
	return t.UTC().Format(trackingDateLayout)
}

// TrackingKey builds the "userId:YYYY-MM-DD" key.
func TrackingKey(userID string, t time.Time) string {
	return strings.ToLower(userID) + ":" + TrackingDate(t)
}

// TrackingKeyDate returns the date suffix of a tracking key.
func TrackingKeyDate(key string) string {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return ""
	}
	return key[i+1:]
}
