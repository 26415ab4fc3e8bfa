package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/metrics"
	"agent-payment-engine/internal/retry"
	"agent-payment-engine/pkg/apperror"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultExecutionTimeout = 45 * time.Second
	gasEstimateAttempts     = 3
	gasEstimateBackoff      = 200 * time.Millisecond
	nonceClaimMargin        = 5 * time.Minute
	defaultHistoryLimit     = 50
	maxHistoryLimit         = 500

	previewHighValueScore  = 3
	previewViolationScore  = 4
	previewBadAddressScore = 5
	previewHighThreshold   = 7
	previewMediumThreshold = 4
)

var previewHighValue = domain.MustParseNative("0.5")

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	policy     ports.PolicyService
	signer     ports.SignatureService
	risk       ports.RiskAssessmentService
	chain      ports.ChainGateway
	dispatcher ports.ActionDispatcher
	ledger     ports.LedgerStore
	nonces     ports.NonceStore
	log        zerolog.Logger
	now        func() time.Time

	sessionTTL  time.Duration
	execTimeout time.Duration
	gasBackoff  time.Duration

	sessMu   sync.RWMutex
	sessions map[string]*domain.PaymentSession

	counters sync.Map // user key -> *atomic.Uint64
}

// NewPaymentService creates a new PaymentServiceImpl. Non-positive durations
// fall back to the defaults.
func NewPaymentService(
	policy ports.PolicyService,
	signer ports.SignatureService,
	risk ports.RiskAssessmentService,
	chain ports.ChainGateway,
	dispatcher ports.ActionDispatcher,
	ledger ports.LedgerStore,
	nonces ports.NonceStore,
	sessionTTL time.Duration,
	execTimeout time.Duration,
	log zerolog.Logger,
) *PaymentServiceImpl {
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	if execTimeout <= 0 {
		execTimeout = defaultExecutionTimeout
	}
	return &PaymentServiceImpl{
		policy:      policy,
		signer:      signer,
		risk:        risk,
		chain:       chain,
		dispatcher:  dispatcher,
		ledger:      ledger,
		nonces:      nonces,
		log:         log,
		now:         time.Now,
		sessionTTL:  sessionTTL,
		execTimeout: execTimeout,
		gasBackoff:  gasEstimateBackoff,
		sessions:    make(map[string]*domain.PaymentSession),
	}
}

// ==================== Sessions ====================

// InitializePaymentSession opens a session for one agent action and assigns it
// the user's next nonce. It touches neither policy nor chain.
func (s *PaymentServiceImpl) InitializePaymentSession(_ context.Context, userID string, action domain.ActionKind) (*domain.PaymentSession, error) {
	if userKey(userID) == "" {
		return nil, apperror.Validation("user id is required")
	}
	kind, ok := domain.ParseAction(string(action))
	if !ok {
		return nil, apperror.ErrUnsupportedAction(string(action))
	}

	now := s.now().UTC()
	sess := &domain.PaymentSession{
		SessionID:   uuid.NewString(),
		UserID:      userKey(userID),
		AgentAction: kind,
		Nonce:       s.GetNextNonce(userID),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
		Status:      domain.SessionStatusActive,
	}

	s.sessMu.Lock()
	s.sessions[sess.SessionID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.sessMu.Unlock()

	s.log.Info().
		Str("session_id", sess.SessionID).
		Str("user_id", sess.UserID).
		Str("action", string(kind)).
		Uint64("nonce", sess.Nonce).
		Msg("payment session initialized")

	out := *sess
	return &out, nil
}

// GetSession returns an active session. Ended or expired sessions are not found.
func (s *PaymentServiceImpl) GetSession(sessionID string) (*domain.PaymentSession, error) {
	s.sessMu.RLock()
	sess, ok := s.sessions[sessionID]
	s.sessMu.RUnlock()
	if !ok || sess.IsExpired(s.now()) {
		return nil, apperror.ErrSessionNotFound()
	}
	out := *sess
	return &out, nil
}

// EndSession closes and forgets a session.
func (s *PaymentServiceImpl) EndSession(sessionID string) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return apperror.ErrSessionNotFound()
	}
	sess.Status = domain.SessionStatusEnded
	delete(s.sessions, sessionID)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// SweepExpiredSessions drops sessions past their TTL and returns how many were removed.
func (s *PaymentServiceImpl) SweepExpiredSessions() int {
	now := s.now()

	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			sess.Status = domain.SessionStatusExpired
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

// RunSessionSweeper calls SweepExpiredSessions every interval until ctx is done.
func (s *PaymentServiceImpl) RunSessionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SweepExpiredSessions(); n > 0 {
				s.log.Debug().Int("removed", n).Msg("swept expired payment sessions")
			}
		}
	}
}

// ==================== Nonces ====================

// GetNextNonce returns the user's next nonce. Values are strictly increasing
// per user and never repeat, including under concurrent calls.
func (s *PaymentServiceImpl) GetNextNonce(userID string) uint64 {
	key := userKey(userID)
	c, ok := s.counters.Load(key)
	if !ok {
		fresh := new(atomic.Uint64)
		fresh.Store(randomNonceStart() - 1)
		c, _ = s.counters.LoadOrStore(key, fresh)
	}
	return c.(*atomic.Uint64).Add(1)
}

// ==================== Prepare ====================

// PreparePayment validates the request, checks policy and quotes gas. It has
// no side effects on spend tracking; spend is only recorded on execution.
func (s *PaymentServiceImpl) PreparePayment(ctx context.Context, req ports.PrepareRequest) (*ports.PreparedPayment, error) {
	if userKey(req.UserID) == "" {
		return nil, apperror.Validation("user id is required")
	}
	if !s.chain.ValidateAddress(req.Recipient) {
		return nil, apperror.ErrInvalidAddress(req.Recipient)
	}
	action := req.Action
	if action == "" {
		action = domain.ActionTransfer
	}
	action, ok := domain.ParseAction(string(action))
	if !ok {
		return nil, apperror.ErrUnsupportedAction(string(req.Action))
	}
	wei, err := domain.ParseNative(req.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(req.Amount)
	}
	if req.Token != nil && !s.chain.ValidateAddress(*req.Token) {
		return nil, apperror.ErrInvalidAddress(*req.Token)
	}
	data, err := decodeCallData(req.Data)
	if err != nil {
		return nil, err
	}

	now := s.now()
	intent := domain.PaymentIntent{
		User:      req.UserID,
		Agent:     s.signer.SignerAddress(),
		Action:    action,
		Amount:    domain.FormatNative(wei),
		Recipient: req.Recipient,
		Token:     req.Token,
		Timestamp: now.Unix(),
		Expires:   now.Add(domain.DefaultIntentTTL).Unix(),
		Data:      req.Data,
		Metadata:  req.Metadata,
	}

	compliance := s.policy.CheckPolicyCompliance(ctx, intent, req.UserID)
	if !compliance.Compliant {
		return nil, apperror.ErrPolicyViolation(compliance.Violations)
	}

	gas, err := s.estimateGas(ctx, domain.GasRequest{From: req.UserID, To: req.Recipient, Value: wei, Data: data})
	if err != nil {
		return nil, err
	}
	s.risk.RecordGasPrice(gas.GasPrice)
	if gwei, err := strconv.ParseFloat(gas.GasPriceGwei, 64); err == nil {
		metrics.LastGasPriceGwei.Set(gwei)
	}

	intent.Nonce = s.GetNextNonce(req.UserID)

	s.log.Info().
		Str("user_id", intent.UserKey()).
		Str("action", string(action)).
		Str("amount", intent.Amount).
		Uint64("nonce", intent.Nonce).
		Msg("payment prepared")

	return &ports.PreparedPayment{
		Payment:           intent,
		GasEstimate:       gas,
		PolicyCompliant:   true,
		RequiresSignature: true,
		Warnings:          compliance.Warnings,
	}, nil
}

func (s *PaymentServiceImpl) estimateGas(ctx context.Context, req domain.GasRequest) (*domain.GasEstimate, error) {
	var gas *domain.GasEstimate
	err := retry.Do(ctx, gasEstimateAttempts, s.gasBackoff, func(ctx context.Context) error {
		est, err := s.chain.EstimateGas(ctx, req)
		if err != nil {
			return err
		}
		gas = est
		return nil
	})
	if err != nil {
		return nil, apperror.ErrChainUnavailable(fmt.Errorf("estimate gas: %w", err))
	}
	return gas, nil
}

// ==================== Verify ====================

// VerifyPayment checks signature, expiry, nonce and re-runs compliance.
// Failures are reported in the result.
func (s *PaymentServiceImpl) VerifyPayment(ctx context.Context, signature string, intent domain.PaymentIntent) ports.VerifyResult {
	if appErr := s.verify(ctx, signature, intent); appErr != nil {
		return ports.VerifyResult{Success: false, Verified: false, Error: appErr.Message}
	}
	return ports.VerifyResult{Success: true, Verified: true}
}

func (s *PaymentServiceImpl) verify(ctx context.Context, signature string, intent domain.PaymentIntent) *apperror.AppError {
	if !s.signer.VerifySignature(signature, intent) {
		return apperror.ErrInvalidSignature()
	}
	if !s.signer.VerifyExpiration(intent) {
		return apperror.ErrPaymentExpired()
	}
	if !s.signer.VerifyNonce(intent.User, intent.Nonce) {
		return apperror.Validation("nonce must be positive")
	}
	compliance := s.policy.CheckPolicyCompliance(ctx, intent, intent.User)
	if !compliance.Compliant {
		return apperror.ErrPolicyViolation(compliance.Violations)
	}
	return nil
}

// ==================== Execute ====================

// ExecutePayment verifies the intent, claims its nonce and dispatches the
// chain action exactly once. A successful dispatch is persisted before daily
// tracking is updated. A failed or timed-out dispatch writes nothing.
func (s *PaymentServiceImpl) ExecutePayment(ctx context.Context, signature string, intent domain.PaymentIntent) (*domain.Payment, error) {
	if appErr := s.verify(ctx, signature, intent); appErr != nil {
		metrics.PaymentsTotal.WithLabelValues(string(intent.Action), "rejected").Inc()
		s.log.Info().
			Str("user_id", intent.UserKey()).
			Uint64("nonce", intent.Nonce).
			Str("error_code", appErr.Code).
			Msg("payment execution rejected")
		return nil, appErr
	}

	wei, err := domain.ParseNative(intent.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(intent.Amount)
	}
	data, err := decodeCallData(intent.Data)
	if err != nil {
		return nil, err
	}

	if err := s.claimNonce(ctx, intent); err != nil {
		return nil, err
	}

	dctx, cancel := context.WithTimeout(ctx, s.execTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.dispatcher.Execute(dctx, intent.Action, domain.ActionParams{
		From:      intent.User,
		Recipient: intent.Recipient,
		Value:     wei,
		Token:     intent.Token,
		Data:      data,
		Nonce:     intent.Nonce,
	})
	metrics.PaymentDispatchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || dctx.Err() != nil {
			metrics.PaymentsTotal.WithLabelValues(string(intent.Action), "status_unknown").Inc()
			s.log.Warn().Err(err).
				Str("user_id", intent.UserKey()).
				Uint64("nonce", intent.Nonce).
				Dur("timeout", s.execTimeout).
				Msg("chain dispatch did not complete, payment status unknown")
			return nil, apperror.ErrExecutionStatusUnknown(err)
		}
		metrics.PaymentsTotal.WithLabelValues(string(intent.Action), "dispatch_error").Inc()
		s.log.Error().Err(err).
			Str("user_id", intent.UserKey()).
			Uint64("nonce", intent.Nonce).
			Msg("chain dispatch failed")
		return nil, apperror.ErrDispatchFailed(err)
	}

	status := res.Status
	if status == "" {
		status = domain.PaymentStatusSuccess
	}
	payment := &domain.Payment{
		ID:             uuid.New(),
		UserID:         intent.UserKey(),
		Action:         intent.Action,
		Amount:         intent.Amount,
		Recipient:      strings.ToLower(intent.Recipient),
		TxHash:         res.TxHash,
		Status:         status,
		GasUsed:        res.GasUsed,
		Timestamp:      s.now().UTC(),
		PaymentDetails: intent,
		Result:         res,
	}

	if err := s.ledger.StorePayment(ctx, payment); err != nil {
		s.log.Error().Err(err).
			Str("user_id", payment.UserID).
			Str("tx_hash", res.TxHash).
			Msg("payment dispatched but ledger write failed")
		return nil, apperror.ErrStorage(fmt.Errorf("store payment: %w", err))
	}
	metrics.PaymentsTotal.WithLabelValues(string(intent.Action), string(status)).Inc()

	if status == domain.PaymentStatusFailed {
		s.log.Warn().
			Str("user_id", payment.UserID).
			Str("tx_hash", res.TxHash).
			Msg("chain action reverted")
		return payment, nil
	}

	if err := s.policy.RecordPayment(intent.User, intent, res.TxHash); err != nil {
		s.log.Error().Err(err).
			Str("user_id", payment.UserID).
			Str("tx_hash", res.TxHash).
			Msg("failed to record payment in daily tracking")
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("user_id", payment.UserID).
		Str("action", string(payment.Action)).
		Str("amount", payment.Amount).
		Str("tx_hash", payment.TxHash).
		Msg("payment executed")

	return payment, nil
}

// claimNonce marks the intent's nonce consumed until shortly after it expires.
func (s *PaymentServiceImpl) claimNonce(ctx context.Context, intent domain.PaymentIntent) error {
	ttl := time.Unix(intent.Expires, 0).Sub(s.now()) + nonceClaimMargin
	claimed, err := s.nonces.CheckAndSet(ctx, "payment:"+intent.UserKey(), strconv.FormatUint(intent.Nonce, 10), ttl)
	if err != nil {
		return apperror.ErrStorage(fmt.Errorf("claim nonce: %w", err))
	}
	if !claimed {
		metrics.NonceReplaysTotal.Inc()
		s.log.Warn().
			Str("user_id", intent.UserKey()).
			Uint64("nonce", intent.Nonce).
			Msg("nonce replay rejected")
		return apperror.ErrNonceUsed()
	}
	return nil
}

// ==================== Preview & history ====================

// GetPaymentPreview combines a gas quote, a compliance check and a quick local
// risk score. It changes no state.
func (s *PaymentServiceImpl) GetPaymentPreview(ctx context.Context, intent domain.PaymentIntent) (*ports.PaymentPreview, error) {
	wei, err := domain.ParseNative(intent.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(intent.Amount)
	}
	data, err := decodeCallData(intent.Data)
	if err != nil {
		return nil, err
	}

	validRecipient := s.chain.ValidateAddress(intent.Recipient)
	compliance := s.policy.CheckPolicyCompliance(ctx, intent, intent.User)

	total := new(big.Int).Set(wei)
	var gas *domain.GasEstimate
	if validRecipient {
		gas, err = s.estimateGas(ctx, domain.GasRequest{From: intent.User, To: intent.Recipient, Value: wei, Data: data})
		if err != nil {
			return nil, err
		}
		total.Add(total, new(big.Int).Mul(new(big.Int).SetUint64(gas.GasLimit), gas.GasPrice))
	}

	score, level, factors := previewRisk(wei, compliance.Compliant, validRecipient)

	return &ports.PaymentPreview{
		Payment:         intent,
		GasEstimate:     gas,
		Compliance:      compliance,
		RiskScore:       score,
		RiskLevel:       level,
		RiskFactors:     factors,
		TotalCostWei:    total.String(),
		TotalCostNative: domain.FormatNative(total),
	}, nil
}

// previewRisk is the lightweight scorer used by previews. It is separate from
// RiskAssessmentService and does no lookups.
func previewRisk(wei *big.Int, compliant, validRecipient bool) (int, string, []string) {
	score := 0
	factors := make([]string, 0, 3)
	if wei.Cmp(previewHighValue) > 0 {
		score += previewHighValueScore
		factors = append(factors, "High value transaction")
	}
	if !compliant {
		score += previewViolationScore
		factors = append(factors, "Policy violations detected")
	}
	if !validRecipient {
		score += previewBadAddressScore
		factors = append(factors, "Invalid recipient address")
	}

	level := "low"
	switch {
	case score >= previewHighThreshold:
		level = "high"
	case score >= previewMediumThreshold:
		level = "medium"
	}
	return score, level, factors
}

// GetPaymentHistory returns the user's payments, newest first.
func (s *PaymentServiceImpl) GetPaymentHistory(ctx context.Context, userID string, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	payments, err := s.ledger.QueryPayments(ctx, domain.PaymentFilter{UserID: userKey(userID), Limit: limit})
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("query payments: %w", err))
	}
	return payments, nil
}

func decodeCallData(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	b, err := hexutil.Decode(data)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("data must be 0x-prefixed hex: %v", err))
	}
	return b, nil
}
