// Package chain talks to an EVM node: address checks, gas quotes, balances,
// confirmations and dispatching signed agent transactions.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"agent-payment-engine/internal/core/domain"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidAddress      = errors.New("chain: invalid address")
	ErrConfirmationTimeout = errors.New("chain: confirmation timed out")
)

// DefaultPollInterval is the gap between receipt lookups while waiting for a confirmation.
const DefaultPollInterval = 2 * time.Second

// EthClient is the subset of ethclient.Client used here.
type EthClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dial connects to an RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return client, nil
}

// Gateway implements ports.ChainGateway.
type Gateway struct {
	client       EthClient
	log          zerolog.Logger
	pollInterval time.Duration
}

// NewGateway creates a Gateway on top of client.
func NewGateway(client EthClient, log zerolog.Logger) *Gateway {
	return &Gateway{client: client, log: log, pollInterval: DefaultPollInterval}
}

// ValidateAddress reports whether addr is a 0x-prefixed 20-byte hex address.
func (g *Gateway) ValidateAddress(addr string) bool {
	return len(addr) == 42 && common.IsHexAddress(addr)
}

// EstimateGas quotes gas limit and price for req.
func (g *Gateway) EstimateGas(ctx context.Context, req domain.GasRequest) (*domain.GasEstimate, error) {
	if !g.ValidateAddress(req.To) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, req.To)
	}
	to := common.HexToAddress(req.To)
	msg := ethereum.CallMsg{To: &to, Value: req.Value, Data: req.Data}
	if g.ValidateAddress(req.From) {
		msg.From = common.HexToAddress(req.From)
	}

	price, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	limit, err := g.client.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	return domain.NewGasEstimate(limit, price), nil
}

// GetBalance returns the latest native balance of addr.
func (g *Gateway) GetBalance(ctx context.Context, addr string) (*domain.Balance, error) {
	if !g.ValidateAddress(addr) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	wei, err := g.client.BalanceAt(ctx, common.HexToAddress(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", addr, err)
	}
	return domain.NewBalance(wei), nil
}

// WaitForConfirmation polls for the receipt of txHash until it is mined,
// timeout elapses or ctx is done. A reverted transaction is returned with
// Status 0 and no error.
func (g *Gateway) WaitForConfirmation(ctx context.Context, txHash string, timeout time.Duration) (*domain.Receipt, error) {
	hash := common.HexToHash(txHash)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: tx %s: %w", ErrConfirmationTimeout, txHash, ctx.Err())
			}
			return nil, ctx.Err()

		case <-ticker.C:
			receipt, err := g.client.TransactionReceipt(ctx, hash)
			if err != nil {
				if !errors.Is(err, ethereum.NotFound) {
					g.log.Debug().Err(err).Str("tx_hash", txHash).Msg("receipt lookup failed, retrying")
				}
				continue
			}

			out := &domain.Receipt{
				TxHash:     txHash,
				Status:     receipt.Status,
				GasUsed:    receipt.GasUsed,
				ObservedAt: time.Now().UTC(),
			}
			if receipt.BlockNumber != nil {
				out.BlockNumber = receipt.BlockNumber.Uint64()
			}
			return out, nil
		}
	}
}
