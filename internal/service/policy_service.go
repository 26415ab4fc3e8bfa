package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/metrics"
	"agent-payment-engine/internal/syncutil"
	"agent-payment-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

// PolicyServiceImpl implements ports.PolicyService.
// Policies are cached per user and written through to the ledger; daily
// tracking lives only in memory.
type PolicyServiceImpl struct {
	ledger ports.LedgerStore
	chain  ports.ChainGateway
	log    zerolog.Logger
	now    func() time.Time

	userLocks syncutil.KeyedMutex

	mu       sync.RWMutex
	policies map[string]domain.Policy
	tracking map[string]*domain.DailyTracking
}

// NewPolicyService creates a new PolicyServiceImpl.
func NewPolicyService(ledger ports.LedgerStore, chain ports.ChainGateway, log zerolog.Logger) *PolicyServiceImpl {
	return &PolicyServiceImpl{
		ledger:   ledger,
		chain:    chain,
		log:      log,
		now:      time.Now,
		policies: make(map[string]domain.Policy),
		tracking: make(map[string]*domain.DailyTracking),
	}
}

// DefaultPolicy returns the policy every user starts with.
func (s *PolicyServiceImpl) DefaultPolicy() domain.Policy {
	return domain.DefaultPolicy()
}

// GetPolicy returns the cached policy, loading it from the ledger on a miss.
// Ledger failures are logged and answered with the default policy, which is
// not cached so the stored policy is picked up once the ledger recovers.
func (s *PolicyServiceImpl) GetPolicy(ctx context.Context, userID string) domain.Policy {
	key := userKey(userID)

	s.mu.RLock()
	cached, ok := s.policies[key]
	s.mu.RUnlock()
	if ok {
		return cached.Clone()
	}

	prefs, err := s.ledger.GetUserPreferences(ctx, key)
	if err != nil {
		metrics.PolicyFallbacksTotal.Inc()
		s.log.Warn().Err(err).Str("user_id", key).Msg("policy read failed, using default policy")
		return domain.DefaultPolicy()
	}

	policy := domain.DefaultPolicy()
	if raw, found := prefs[domain.PolicyPreferenceKey]; found {
		if err := json.Unmarshal(raw, &policy); err != nil {
			metrics.PolicyFallbacksTotal.Inc()
			s.log.Warn().Err(err).Str("user_id", key).Msg("stored policy is unreadable, using default policy")
			return domain.DefaultPolicy()
		}
	}

	s.mu.Lock()
	s.policies[key] = policy.Clone()
	s.mu.Unlock()

	return policy
}

// StorePolicy writes the policy through to the ledger and then updates the cache.
func (s *PolicyServiceImpl) StorePolicy(ctx context.Context, userID string, policy domain.Policy) (domain.Policy, error) {
	key := userKey(userID)

	policy = policy.Clone()
	policy.AllowedAddresses = domain.NormalizeAddresses(policy.AllowedAddresses)
	policy.DeniedAddresses = domain.NormalizeAddresses(policy.DeniedAddresses)
	policy.UpdatedAt = s.now().UTC()

	raw, err := json.Marshal(policy)
	if err != nil {
		return domain.Policy{}, apperror.InternalError(fmt.Errorf("marshal policy: %w", err))
	}
	if err := s.ledger.StoreUserPreference(ctx, key, domain.PolicyPreferenceKey, raw); err != nil {
		s.log.Error().Err(err).Str("user_id", key).Msg("failed to store policy")
		return domain.Policy{}, apperror.ErrPolicyStorage(err)
	}

	s.mu.Lock()
	s.policies[key] = policy.Clone()
	s.mu.Unlock()

	s.log.Info().Str("user_id", key).Msg("policy updated")
	return policy, nil
}

// SetSpendingLimit sets the daily cap, given in the native unit.
func (s *PolicyServiceImpl) SetSpendingLimit(ctx context.Context, userID string, limit string) (domain.Policy, error) {
	wei, err := domain.ParseNative(limit)
	if err != nil {
		return domain.Policy{}, apperror.ErrInvalidAmount(limit)
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.MaxDailySpend = wei.String()
	})
}

// SetSingleTxLimit sets the per-transaction cap, given in the native unit.
func (s *PolicyServiceImpl) SetSingleTxLimit(ctx context.Context, userID string, limit string) (domain.Policy, error) {
	wei, err := domain.ParseNative(limit)
	if err != nil {
		return domain.Policy{}, apperror.ErrInvalidAmount(limit)
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.MaxSingleTx = wei.String()
	})
}

// SetDailyTxLimit sets the number of payments allowed per day.
func (s *PolicyServiceImpl) SetDailyTxLimit(ctx context.Context, userID string, limit int) (domain.Policy, error) {
	if limit < 0 {
		return domain.Policy{}, apperror.Validation("daily transaction limit must not be negative")
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.DailyTxLimit = limit
	})
}

// SetAllowedAddresses replaces the allow-list. Every address must be well formed.
func (s *PolicyServiceImpl) SetAllowedAddresses(ctx context.Context, userID string, addrs []string) (domain.Policy, error) {
	if err := s.validateAddresses(addrs); err != nil {
		return domain.Policy{}, err
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.AllowedAddresses = domain.NormalizeAddresses(addrs)
	})
}

// SetDeniedAddresses replaces the deny-list. Every address must be well formed.
func (s *PolicyServiceImpl) SetDeniedAddresses(ctx context.Context, userID string, addrs []string) (domain.Policy, error) {
	if err := s.validateAddresses(addrs); err != nil {
		return domain.Policy{}, err
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.DeniedAddresses = domain.NormalizeAddresses(addrs)
	})
}

// SetAllowedActions replaces the allowed action kinds.
func (s *PolicyServiceImpl) SetAllowedActions(ctx context.Context, userID string, actions []string) (domain.Policy, error) {
	kinds := make([]domain.ActionKind, 0, len(actions))
	seen := make(map[domain.ActionKind]struct{}, len(actions))
	for _, a := range actions {
		kind, ok := domain.ParseAction(a)
		if !ok {
			return domain.Policy{}, apperror.ErrUnsupportedAction(a)
		}
		if _, dup := seen[kind]; dup {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return s.update(ctx, userID, func(p *domain.Policy) {
		p.AllowedActions = kinds
	})
}

// update runs a read-modify-write of the user's policy under the user's lock.
func (s *PolicyServiceImpl) update(ctx context.Context, userID string, mutate func(*domain.Policy)) (domain.Policy, error) {
	unlock := s.userLocks.Lock(userKey(userID))
	defer unlock()

	policy := s.GetPolicy(ctx, userID)
	mutate(&policy)
	return s.StorePolicy(ctx, userID, policy)
}

func (s *PolicyServiceImpl) validateAddresses(addrs []string) error {
	var invalid []string
	for _, a := range addrs {
		if !s.chain.ValidateAddress(strings.TrimSpace(a)) {
			invalid = append(invalid, a)
		}
	}
	if len(invalid) > 0 {
		return apperror.ErrInvalidAddress(strings.Join(invalid, ", "))
	}
	return nil
}

// CheckPolicyCompliance evaluates the payment against the user's policy and
// today's usage. Errors become a single violation so a decision is always returned.
func (s *PolicyServiceImpl) CheckPolicyCompliance(ctx context.Context, payment domain.PaymentIntent, userID string) domain.ComplianceResult {
	result := s.checkCompliance(ctx, payment, userID)
	if result.Compliant {
		metrics.ComplianceChecksTotal.WithLabelValues("compliant").Inc()
	} else {
		metrics.ComplianceChecksTotal.WithLabelValues("violation").Inc()
		s.log.Info().
			Str("user_id", userKey(userID)).
			Strs("violations", result.Violations).
			Msg("payment is not compliant")
	}
	return result
}

func (s *PolicyServiceImpl) checkCompliance(ctx context.Context, payment domain.PaymentIntent, userID string) domain.ComplianceResult {
	amount, err := domain.ParseNative(payment.Amount)
	if err != nil {
		return domain.FailedCompliance(fmt.Errorf("invalid amount %q: %w", payment.Amount, err))
	}

	policy := s.GetPolicy(ctx, userID)
	spent, count := s.today(userID)

	return domain.EvaluateCompliance(domain.ComplianceInput{
		Amount:       amount,
		Action:       payment.Action,
		Recipient:    payment.Recipient,
		Policy:       policy,
		DailySpent:   spent,
		DailyTxCount: count,
	})
}

// RecordPayment adds an executed payment to today's tracking. It must be
// called exactly once per executed payment.
func (s *PolicyServiceImpl) RecordPayment(userID string, payment domain.PaymentIntent, txHash string) error {
	amount, err := domain.ParseNative(payment.Amount)
	if err != nil {
		return apperror.ErrInvalidAmount(payment.Amount)
	}

	now := s.now()
	key := domain.TrackingKey(userID, now)

	s.mu.Lock()
	entry, ok := s.tracking[key]
	if !ok {
		entry = domain.NewDailyTracking()
		s.tracking[key] = entry
	}
	entry.Add(amount, domain.PaymentSummary{
		Action:    payment.Action,
		Amount:    amount.String(),
		Recipient: strings.ToLower(payment.Recipient),
		TxHash:    txHash,
		Nonce:     payment.Nonce,
		At:        now.UTC(),
	})
	spent, count := new(big.Int).Set(entry.Spent), entry.TxCount
	s.mu.Unlock()

	s.log.Info().
		Str("user_id", userKey(userID)).
		Str("spent_wei", spent.String()).
		Int("tx_count", count).
		Msg("payment recorded in daily tracking")
	return nil
}

// GetDailySpending returns today's spent amount in wei.
func (s *PolicyServiceImpl) GetDailySpending(userID string) *big.Int {
	spent, _ := s.today(userID)
	return spent
}

// GetDailyTransactionCount returns today's number of recorded payments.
func (s *PolicyServiceImpl) GetDailyTransactionCount(userID string) int {
	_, count := s.today(userID)
	return count
}

func (s *PolicyServiceImpl) today(userID string) (*big.Int, int) {
	key := domain.TrackingKey(userID, s.now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.tracking[key]
	if !ok {
		return new(big.Int), 0
	}
	return new(big.Int).Set(entry.Spent), entry.TxCount
}

// ClearOldTracking evicts tracking entries for any day other than today and
// returns how many were removed.
func (s *PolicyServiceImpl) ClearOldTracking() int {
	today := domain.TrackingDate(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.tracking {
		if domain.TrackingKeyDate(key) != today {
			delete(s.tracking, key)
			removed++
		}
	}
	return removed
}

// RunTrackingSweeper calls ClearOldTracking every interval until ctx is done.
func (s *PolicyServiceImpl) RunTrackingSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.ClearOldTracking(); n > 0 {
				s.log.Debug().Int("removed", n).Msg("cleared old daily tracking")
			}
		}
	}
}

func userKey(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}
