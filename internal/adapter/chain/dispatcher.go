package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"agent-payment-engine/internal/core/domain"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

var (
	ErrUnsupportedAction = errors.New("chain: unsupported action")
	ErrSwapRouterUnset   = errors.New("chain: swap router not configured")
)

const (
	// Fallback gas limits when estimation fails.
	nativeTransferGas = uint64(21000)
	contractCallGas   = uint64(200000)

	DefaultConfirmationTimeout = 2 * time.Minute
)

const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}]`

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	ChainID             int64
	SwapRouter          string
	ConfirmationTimeout time.Duration
}

// Dispatcher implements ports.ActionDispatcher. It signs and broadcasts
// transactions from the agent key and waits for their receipts.
type Dispatcher struct {
	client  EthClient
	gateway *Gateway
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	router  common.Address
	erc20   abi.ABI
	timeout time.Duration
	log     zerolog.Logger

	// mu keeps account nonces in order between PendingNonceAt and SendTransaction.
	mu sync.Mutex
}

// NewDispatcher creates a Dispatcher sending from key.
func NewDispatcher(client EthClient, gateway *Gateway, key *ecdsa.PrivateKey, cfg DispatcherConfig, log zerolog.Logger) (*Dispatcher, error) {
	if key == nil {
		return nil, errors.New("chain: signing key required")
	}
	if cfg.ChainID <= 0 {
		return nil, errors.New("chain: chain id required")
	}
	if cfg.SwapRouter != "" && !gateway.ValidateAddress(cfg.SwapRouter) {
		return nil, fmt.Errorf("%w: swap router %q", ErrInvalidAddress, cfg.SwapRouter)
	}
	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	timeout := cfg.ConfirmationTimeout
	if timeout <= 0 {
		timeout = DefaultConfirmationTimeout
	}

	d := &Dispatcher{
		client:  client,
		gateway: gateway,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(cfg.ChainID),
		erc20:   parsed,
		timeout: timeout,
		log:     log,
	}
	if cfg.SwapRouter != "" {
		d.router = common.HexToAddress(cfg.SwapRouter)
	}
	return d, nil
}

// Execute builds the transaction for action, broadcasts it and waits for the receipt.
func (d *Dispatcher) Execute(ctx context.Context, action domain.ActionKind, params domain.ActionParams) (*domain.ActionResult, error) {
	to, value, data, err := d.build(action, params)
	if err != nil {
		return nil, err
	}

	hash, err := d.send(ctx, to, value, data)
	if err != nil {
		return nil, err
	}

	d.log.Info().
		Str("action", string(action)).
		Str("tx_hash", hash).
		Uint64("nonce", params.Nonce).
		Msg("transaction broadcast")

	receipt, err := d.gateway.WaitForConfirmation(ctx, hash, d.timeout)
	if err != nil {
		return nil, fmt.Errorf("confirm %s: %w", hash, err)
	}

	status := domain.PaymentStatusSuccess
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = domain.PaymentStatusFailed
	}
	return &domain.ActionResult{TxHash: hash, Status: status, GasUsed: receipt.GasUsed}, nil
}

func (d *Dispatcher) build(action domain.ActionKind, p domain.ActionParams) (common.Address, *big.Int, []byte, error) {
	value := p.Value
	if value == nil {
		value = new(big.Int)
	}
	if !d.gateway.ValidateAddress(p.Recipient) {
		return common.Address{}, nil, nil, fmt.Errorf("%w: recipient %q", ErrInvalidAddress, p.Recipient)
	}
	recipient := common.HexToAddress(p.Recipient)

	switch action {
	case domain.ActionTransfer:
		if p.Token == nil {
			return recipient, value, nil, nil
		}
		if !d.gateway.ValidateAddress(*p.Token) {
			return common.Address{}, nil, nil, fmt.Errorf("%w: token %q", ErrInvalidAddress, *p.Token)
		}
		data, err := d.erc20.Pack("transfer", recipient, value)
		if err != nil {
			return common.Address{}, nil, nil, fmt.Errorf("pack erc20 transfer: %w", err)
		}
		return common.HexToAddress(*p.Token), new(big.Int), data, nil

	case domain.ActionCall:
		return recipient, value, p.Data, nil

	case domain.ActionSwap:
		if d.router == (common.Address{}) {
			return common.Address{}, nil, nil, ErrSwapRouterUnset
		}
		return d.router, value, p.Data, nil

	default:
		return common.Address{}, nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}
}

func (d *Dispatcher) send(ctx context.Context, to common.Address, value *big.Int, data []byte) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	nonce, err := d.client.PendingNonceAt(ctx, d.from)
	if err != nil {
		return "", fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := d.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("suggest gas price: %w", err)
	}
	gasLimit, err := d.client.EstimateGas(ctx, ethereum.CallMsg{From: d.from, To: &to, Value: value, Data: data})
	if err != nil {
		gasLimit = nativeTransferGas
		if len(data) > 0 {
			gasLimit = contractCallGas
		}
		d.log.Debug().Err(err).Uint64("gas_limit", gasLimit).Msg("gas estimation failed, using fallback limit")
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.NewEIP155Signer(d.chainID), d.key)
	if err != nil {
		return "", fmt.Errorf("sign tx: %w", err)
	}
	if err := d.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send tx %s: %w", signed.Hash().Hex(), err)
	}
	return signed.Hash().Hex(), nil
}
