package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the outcome recorded for an executed payment.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is the append-only record of a payment that reached execution.
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	UserID         string        `json:"user_id"`
	Action         ActionKind    `json:"action"`
	Amount         string        `json:"amount"` // native unit
	Recipient      string        `json:"recipient"`
	TxHash         string        `json:"tx_hash"`
	Status         PaymentStatus `json:"status"`
	GasUsed        uint64        `json:"gas_used"`
	Timestamp      time.Time     `json:"timestamp"`
	PaymentDetails PaymentIntent `json:"payment_details"`
	Result         *ActionResult `json:"result,omitempty"`
}

// PaymentFilter narrows a payment history query.
type PaymentFilter struct {
	UserID    string
	Status    *PaymentStatus
	Recipient string
	Since     *time.Time
	Limit     int
}
