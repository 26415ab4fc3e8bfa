package ports

//go:generate mockgen -source=chain.go -destination=mocks/mock_chain.go -package=mocks

import (
	"context"
	"time"

	"agent-payment-engine/internal/core/domain"
)

// ChainGateway is the read side of the chain: address checks, quotes, balances, receipts.
type ChainGateway interface {
	ValidateAddress(addr string) bool
	EstimateGas(ctx context.Context, req domain.GasRequest) (*domain.GasEstimate, error)
	GetBalance(ctx context.Context, addr string) (*domain.Balance, error)
	WaitForConfirmation(ctx context.Context, txHash string, timeout time.Duration) (*domain.Receipt, error)
}

// ActionDispatcher executes a verified payment's on-chain operation.
type ActionDispatcher interface {
	Execute(ctx context.Context, action domain.ActionKind, params domain.ActionParams) (*domain.ActionResult, error)
}
