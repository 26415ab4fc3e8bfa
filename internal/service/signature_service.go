package service

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/ethsig"
	"agent-payment-engine/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

const (
	batchTag        = "batch"
	contractCallTag = "contract_call"
)

// SignatureServiceImpl implements ports.SignatureService with a secp256k1 key.
//
// Payment message, packed in this order:
//
//	address user, address agent, string action, uint256 amountWei,
//	address recipient, uint256 nonce, uint256 timestamp, uint256 expires
//	[, address token][, bytes32 keccak(data)]
//
// The token and data words are only present when the intent carries them.
// The packed message is hashed with Keccak-256 and the hash is signed as an
// EIP-191 personal message.
type SignatureServiceImpl struct {
	key    *ecdsa.PrivateKey
	signer common.Address
	ttl    time.Duration
	nonce  atomic.Uint64
	now    func() time.Time
	log    zerolog.Logger
}

// NewSignatureService loads the signing key from hex. An empty key generates
// an ephemeral one, so signatures do not survive a restart.
func NewSignatureService(hexKey string, intentTTL time.Duration, log zerolog.Logger) (*SignatureServiceImpl, error) {
	var (
		key *ecdsa.PrivateKey
		err error
	)
	if strings.TrimSpace(hexKey) == "" {
		key, err = crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		log.Warn().Msg("no signer key configured, using an ephemeral key")
	} else {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse signer key: %w", err)
		}
	}
	if intentTTL <= 0 {
		intentTTL = domain.DefaultIntentTTL
	}

	s := &SignatureServiceImpl{
		key:    key,
		signer: crypto.PubkeyToAddress(key.PublicKey),
		ttl:    intentTTL,
		now:    time.Now,
		log:    log,
	}
	s.nonce.Store(randomNonceStart())
	s.log.Info().Str("signer", s.SignerAddress()).Msg("signature service ready")
	return s, nil
}

// SignerAddress is the checksummed address of the signing key.
func (s *SignatureServiceImpl) SignerAddress() string {
	return s.signer.Hex()
}

// PrivateKey exposes the signing key to the chain dispatcher.
func (s *SignatureServiceImpl) PrivateKey() *ecdsa.PrivateKey {
	return s.key
}

// GeneratePaymentSignature fills in agent, timestamp and expiry when absent
// and signs the intent.
func (s *SignatureServiceImpl) GeneratePaymentSignature(intent domain.PaymentIntent) (*domain.SignedPayment, error) {
	if intent.Agent == "" {
		intent.Agent = s.SignerAddress()
	}
	if intent.Timestamp == 0 {
		intent.Timestamp = s.now().Unix()
	}
	if intent.Expires == 0 {
		intent.Expires = intent.Timestamp + int64(s.ttl/time.Second)
	}
	if intent.Expires <= intent.Timestamp {
		return nil, apperror.Validation("expires must be after timestamp")
	}

	digest, err := paymentDigest(intent)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	sig, err := ethsig.Sign(s.key, digest)
	if err != nil {
		return nil, apperror.ErrSigningFailed(err)
	}

	s.log.Debug().
		Str("user_id", intent.UserKey()).
		Uint64("nonce", intent.Nonce).
		Msg("payment intent signed")

	return &domain.SignedPayment{
		Signature:   sig,
		Payload:     intent,
		MessageHash: hexutil.Encode(digest),
	}, nil
}

// VerifySignature reports whether signature was produced by the service
// signer over exactly this intent. Malformed input yields false.
func (s *SignatureServiceImpl) VerifySignature(signature string, intent domain.PaymentIntent) bool {
	digest, err := paymentDigest(intent)
	if err != nil {
		return false
	}
	return ethsig.Verify(digest, signature, s.signer)
}

// VerifyExpiration reports whether the intent is still valid. expires == now is expired.
func (s *SignatureServiceImpl) VerifyExpiration(intent domain.PaymentIntent) bool {
	return !intent.IsExpired(s.now())
}

// VerifyNonce only checks the nonce is positive. Consumed nonces are tracked
// by the payment service's nonce store.
func (s *SignatureServiceImpl) VerifyNonce(_ string, nonce uint64) bool {
	return nonce > 0
}

// CreateSingleTxSignature signs a batch of actions executed under one signature.
func (s *SignatureServiceImpl) CreateSingleTxSignature(actions []domain.BatchAction) (*domain.SignedBatch, error) {
	if len(actions) == 0 {
		return nil, apperror.Validation("batch must contain at least one action")
	}
	normalized := make([]domain.BatchAction, len(actions))
	for i, a := range actions {
		kind, ok := domain.ParseAction(string(a.Kind))
		if !ok {
			return nil, apperror.ErrUnsupportedAction(string(a.Kind))
		}
		normalized[i] = domain.BatchAction{Kind: kind, Target: a.Target, Value: a.Value, Data: a.Data}
	}

	now := s.now().Unix()
	payload := domain.BatchPayload{
		Actions:   normalized,
		Nonce:     s.nonce.Add(1),
		Timestamp: now,
		Expires:   now + int64(s.ttl/time.Second),
	}
	digest, err := batchDigest(payload)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	sig, err := ethsig.Sign(s.key, digest)
	if err != nil {
		return nil, apperror.ErrSigningFailed(err)
	}
	return &domain.SignedBatch{Signature: sig, Payload: payload, MessageHash: hexutil.Encode(digest)}, nil
}

// VerifySingleTxSignature checks a batch signature.
func (s *SignatureServiceImpl) VerifySingleTxSignature(signature string, batch domain.BatchPayload) bool {
	digest, err := batchDigest(batch)
	if err != nil {
		return false
	}
	return ethsig.Verify(digest, signature, s.signer)
}

// SignContractCall signs a single contract method invocation. params are
// bound through the Keccak-256 of their JSON encoding.
func (s *SignatureServiceImpl) SignContractCall(contract, method string, params any) (*domain.SignedContractCall, error) {
	if strings.TrimSpace(method) == "" {
		return nil, apperror.Validation("method is required")
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("params are not serializable: %v", err))
	}

	now := s.now().Unix()
	payload := domain.ContractCallPayload{
		Contract:  contract,
		Method:    method,
		Params:    raw,
		Nonce:     s.nonce.Add(1),
		Timestamp: now,
		Expires:   now + int64(s.ttl/time.Second),
	}
	digest, err := contractCallDigest(payload)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	sig, err := ethsig.Sign(s.key, digest)
	if err != nil {
		return nil, apperror.ErrSigningFailed(err)
	}
	return &domain.SignedContractCall{Signature: sig, Payload: payload, MessageHash: hexutil.Encode(digest)}, nil
}

// VerifyContractCallSignature checks a contract call signature.
func (s *SignatureServiceImpl) VerifyContractCallSignature(signature string, call domain.ContractCallPayload) bool {
	digest, err := contractCallDigest(call)
	if err != nil {
		return false
	}
	return ethsig.Verify(digest, signature, s.signer)
}

func paymentDigest(intent domain.PaymentIntent) ([]byte, error) {
	amount, err := domain.ParseNative(intent.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	p := ethsig.NewPacker().
		Address(intent.User).
		Address(intent.Agent).
		String(string(intent.Action)).
		Uint256(amount).
		Address(intent.Recipient).
		Uint64(intent.Nonce).
		Int64(intent.Timestamp).
		Int64(intent.Expires)
	if intent.Token != nil {
		p.Address(*intent.Token)
	}
	if intent.Data != "" {
		data, err := hexutil.Decode(intent.Data)
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		p.Bytes32(ethsig.Keccak256Word(data))
	}
	return p.Digest()
}

func batchDigest(batch domain.BatchPayload) ([]byte, error) {
	p := ethsig.NewPacker().
		String(batchTag).
		Uint64(uint64(len(batch.Actions)))
	for i, a := range batch.Actions {
		value, err := domain.ParseWei(a.Value)
		if err != nil {
			return nil, fmt.Errorf("action %d value: %w", i, err)
		}
		var data []byte
		if a.Data != "" {
			if data, err = hexutil.Decode(a.Data); err != nil {
				return nil, fmt.Errorf("action %d data: %w", i, err)
			}
		}
		p.String(string(a.Kind)).
			Address(a.Target).
			Uint256(value).
			Bytes32(ethsig.Keccak256Word(data))
	}
	return p.Uint64(batch.Nonce).
		Int64(batch.Timestamp).
		Int64(batch.Expires).
		Digest()
}

func contractCallDigest(call domain.ContractCallPayload) ([]byte, error) {
	return ethsig.NewPacker().
		String(contractCallTag).
		Address(call.Contract).
		String(call.Method).
		Bytes32(ethsig.Keccak256Word(call.Params)).
		Uint64(call.Nonce).
		Int64(call.Timestamp).
		Int64(call.Expires).
		Digest()
}
