package domain

import (
	"math/big"
	"time"
)

// GasRequest describes the transaction a gas quote is requested for.
type GasRequest struct {
	From  string
	To    string
	Value *big.Int
	Data  []byte
}

// GasEstimate is a gas quote from the chain gateway.
type GasEstimate struct {
	GasLimit            uint64   `json:"gas_limit"`
	GasPrice            *big.Int `json:"-"`
	GasPriceGwei        string   `json:"gas_price_gwei"`
	EstimatedCostWei    string   `json:"estimated_cost_wei"`
	EstimatedCostNative string   `json:"estimated_cost_native"`
}

// NewGasEstimate derives the cost fields from limit and price.
func NewGasEstimate(limit uint64, price *big.Int) *GasEstimate {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(limit), price)
	return &GasEstimate{
		GasLimit:            limit,
		GasPrice:            new(big.Int).Set(price),
		GasPriceGwei:        FormatGwei(price),
		EstimatedCostWei:    cost.String(),
		EstimatedCostNative: FormatNative(cost),
	}
}

// Balance is an address balance in both units.
type Balance struct {
	Wei    *big.Int `json:"-"`
	WeiStr string   `json:"balance_wei"`
	Native string   `json:"balance_native"`
}

// NewBalance wraps a wei balance.
func NewBalance(wei *big.Int) *Balance {
	return &Balance{Wei: wei, WeiStr: wei.String(), Native: FormatNative(wei)}
}

// Receipt is the confirmation status of a broadcast transaction.
type Receipt struct {
	TxHash      string    `json:"tx_hash"`
	Status      uint64    `json:"status"` // 1 success, 0 reverted
	BlockNumber uint64    `json:"block_number"`
	GasUsed     uint64    `json:"gas_used"`
	ObservedAt  time.Time `json:"observed_at"`
}

// ActionParams is what the dispatcher needs to build the on-chain operation.
type ActionParams struct {
	From      string
	Recipient string
	Value     *big.Int
	Token     *string
	Data      []byte
	Nonce     uint64
}

// ActionResult is the dispatcher's report of a broadcast operation.
type ActionResult struct {
	TxHash  string        `json:"tx_hash"`
	Status  PaymentStatus `json:"status"`
	GasUsed uint64        `json:"gas_used"`
}
