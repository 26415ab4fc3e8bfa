package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/metrics"
	"agent-payment-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	gasHistoryCapacity    = 100
	riskHistoryWindow     = 100
	highFrequencyTxPerDay = 50
	roundAmountMinimum    = 10 // native units
)

var (
	fallbackGasPrice     = big.NewInt(20_000_000_000) // 20 gwei
	unusualAmountFloor   = domain.MustParseNative("0.01")
	dustBalanceThreshold = domain.MustParseNative("0.001")
	dustAmountThreshold  = domain.MustParseNative("0.0001")
	weiPerNative         = domain.MustParseNative("1")

	// DefaultBadAddresses seeds the blocklist: the zero address and the common burn address.
	DefaultBadAddresses = []string{
		"0x0000000000000000000000000000000000000000",
		"0x000000000000000000000000000000000000dead",
	}
)

// RiskAssessmentServiceImpl implements ports.RiskAssessmentService.
type RiskAssessmentServiceImpl struct {
	ledger ports.LedgerStore
	chain  ports.ChainGateway
	policy ports.PolicyService
	log    zerolog.Logger
	now    func() time.Time

	gasMu     sync.Mutex
	gasPrices []*big.Int
	gasNext   int

	badMu sync.RWMutex
	bad   map[string]struct{}
}

// NewRiskAssessmentService creates a new RiskAssessmentServiceImpl seeded with DefaultBadAddresses.
func NewRiskAssessmentService(
	ledger ports.LedgerStore,
	chain ports.ChainGateway,
	policy ports.PolicyService,
	log zerolog.Logger,
) *RiskAssessmentServiceImpl {
	s := &RiskAssessmentServiceImpl{
		ledger:    ledger,
		chain:     chain,
		policy:    policy,
		log:       log,
		now:       time.Now,
		gasPrices: make([]*big.Int, 0, gasHistoryCapacity),
		bad:       make(map[string]struct{}),
	}
	for _, a := range DefaultBadAddresses {
		s.AddBadAddress(a)
	}
	return s
}

// AssessTransaction scores tx. Only a critical finding makes it non-executable.
// Failing balance or history lookups are returned as errors.
func (s *RiskAssessmentServiceImpl) AssessTransaction(ctx context.Context, tx domain.TransactionContext) (*domain.RiskAssessment, error) {
	risks, err := s.IdentifyRisks(ctx, tx)
	if err != nil {
		return nil, err
	}
	level := s.CalculateRiskLevel(risks)
	metrics.RiskAssessmentsTotal.WithLabelValues(string(level)).Inc()

	if level != domain.RiskLow {
		s.log.Info().
			Str("user_id", userKey(tx.UserID)).
			Str("recipient", strings.ToLower(tx.Recipient)).
			Str("risk_level", string(level)).
			Int("findings", len(risks)).
			Msg("transaction risk assessed")
	}

	return &domain.RiskAssessment{
		RiskLevel:       level,
		Risks:           risks,
		Recommendations: s.GetRecommendations(tx, risks),
		CanExecute:      level != domain.RiskCritical,
		AssessedAt:      s.now().UTC(),
	}, nil
}

// IdentifyRisks runs every heuristic and concatenates the findings.
func (s *RiskAssessmentServiceImpl) IdentifyRisks(ctx context.Context, tx domain.TransactionContext) ([]domain.RiskFinding, error) {
	if tx.Amount == nil {
		return nil, apperror.Validation("amount is required")
	}

	history, err := s.ledger.QueryPayments(ctx, domain.PaymentFilter{UserID: tx.UserID, Limit: riskHistoryWindow})
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("load payment history: %w", err))
	}

	risks := make([]domain.RiskFinding, 0)
	risks = append(risks, s.checkGasPrice(tx)...)
	risks = append(risks, checkAmount(tx, history)...)
	risks = append(risks, s.checkRecipient(tx, history)...)

	balanceRisks, err := s.checkBalance(ctx, tx)
	if err != nil {
		return nil, err
	}
	risks = append(risks, balanceRisks...)
	risks = append(risks, s.checkFrequency(tx)...)
	risks = append(risks, checkPatterns(tx)...)
	return risks, nil
}

func (s *RiskAssessmentServiceImpl) checkGasPrice(tx domain.TransactionContext) []domain.RiskFinding {
	if tx.GasPrice == nil {
		return nil
	}
	avg := s.AverageGasPrice()
	// price > 1.5 * avg  <=>  2 * price > 3 * avg
	lhs := new(big.Int).Mul(tx.GasPrice, big.NewInt(2))
	rhs := new(big.Int).Mul(avg, big.NewInt(3))
	if lhs.Cmp(rhs) <= 0 {
		return nil
	}
	return []domain.RiskFinding{{
		Type:     "high_gas_price",
		Severity: domain.SeverityMedium,
		Message:  fmt.Sprintf("Gas price %s gwei is well above the recent average of %s gwei", domain.FormatGwei(tx.GasPrice), domain.FormatGwei(avg)),
		Details:  map[string]any{"gas_price_gwei": domain.FormatGwei(tx.GasPrice), "average_gwei": domain.FormatGwei(avg)},
	}}
}

func checkAmount(tx domain.TransactionContext, history []domain.Payment) []domain.RiskFinding {
	if len(history) == 0 {
		return []domain.RiskFinding{{
			Type:     "first_transaction",
			Severity: domain.SeverityLow,
			Message:  "This is the first transaction for this user",
		}}
	}

	total := new(big.Int)
	counted := 0
	for _, p := range history {
		wei, err := domain.ParseNative(p.Amount)
		if err != nil {
			continue
		}
		total.Add(total, wei)
		counted++
	}
	if counted == 0 {
		return nil
	}
	avg := new(big.Int).Quo(total, big.NewInt(int64(counted)))

	twiceAvg := new(big.Int).Mul(avg, big.NewInt(2))
	if tx.Amount.Cmp(twiceAvg) > 0 && tx.Amount.Cmp(unusualAmountFloor) > 0 {
		return []domain.RiskFinding{{
			Type:     "unusual_amount",
			Severity: domain.SeverityMedium,
			Message:  fmt.Sprintf("Amount %s is more than twice the historical average of %s", domain.FormatNative(tx.Amount), domain.FormatNative(avg)),
			Details:  map[string]any{"average": domain.FormatNative(avg)},
		}}
	}
	return nil
}

func (s *RiskAssessmentServiceImpl) checkRecipient(tx domain.TransactionContext, history []domain.Payment) []domain.RiskFinding {
	if s.IsBadAddress(tx.Recipient) {
		return []domain.RiskFinding{{
			Type:     "blocked_address",
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("Recipient %s is a known bad address", strings.ToLower(tx.Recipient)),
		}}
	}
	for _, p := range history {
		if strings.EqualFold(p.Recipient, tx.Recipient) {
			return nil
		}
	}
	return []domain.RiskFinding{{
		Type:     "new_recipient",
		Severity: domain.SeverityLow,
		Message:  "Recipient has not been paid before",
	}}
}

func (s *RiskAssessmentServiceImpl) checkBalance(ctx context.Context, tx domain.TransactionContext) ([]domain.RiskFinding, error) {
	if tx.From == "" {
		return nil, nil
	}
	bal, err := s.chain.GetBalance(ctx, tx.From)
	if err != nil {
		return nil, apperror.ErrChainUnavailable(fmt.Errorf("get balance: %w", err))
	}

	need := new(big.Int).Set(tx.Amount)
	if tx.GasCost != nil {
		need.Add(need, tx.GasCost)
	}
	if bal.Wei.Cmp(need) < 0 {
		return []domain.RiskFinding{{
			Type:     "insufficient_balance",
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("Balance %s is below the required %s including gas", domain.FormatNative(bal.Wei), domain.FormatNative(need)),
			Details:  map[string]any{"balance": domain.FormatNative(bal.Wei), "required": domain.FormatNative(need)},
		}}, nil
	}
	remaining := new(big.Int).Sub(bal.Wei, need)
	if remaining.Cmp(dustBalanceThreshold) < 0 {
		return []domain.RiskFinding{{
			Type:     "low_remaining_balance",
			Severity: domain.SeverityLow,
			Message:  fmt.Sprintf("Only %s would remain after this transaction", domain.FormatNative(remaining)),
		}}, nil
	}
	return nil, nil
}

func (s *RiskAssessmentServiceImpl) checkFrequency(tx domain.TransactionContext) []domain.RiskFinding {
	count := s.policy.GetDailyTransactionCount(tx.UserID)
	if count <= highFrequencyTxPerDay {
		return nil
	}
	return []domain.RiskFinding{{
		Type:     "high_frequency",
		Severity: domain.SeverityLow,
		Message:  fmt.Sprintf("%d transactions already made today", count),
		Details:  map[string]any{"daily_tx_count": count},
	}}
}

func checkPatterns(tx domain.TransactionContext) []domain.RiskFinding {
	var risks []domain.RiskFinding

	whole, rem := new(big.Int).QuoRem(tx.Amount, weiPerNative, new(big.Int))
	if rem.Sign() == 0 && whole.Cmp(big.NewInt(roundAmountMinimum)) >= 0 {
		risks = append(risks, domain.RiskFinding{
			Type:     "round_amount",
			Severity: domain.SeverityLow,
			Message:  "Amount is a large round number",
		})
	}
	if tx.Amount.Sign() > 0 && tx.Amount.Cmp(dustAmountThreshold) < 0 {
		risks = append(risks, domain.RiskFinding{
			Type:     "dust_amount",
			Severity: domain.SeverityLow,
			Message:  "Amount is below the dust threshold",
		})
	}
	return risks
}

// CalculateRiskLevel buckets findings by their highest severity. A single
// high or medium finding is enough to raise the level.
func (s *RiskAssessmentServiceImpl) CalculateRiskLevel(risks []domain.RiskFinding) domain.RiskLevel {
	var high, medium bool
	for _, r := range risks {
		switch r.Severity {
		case domain.SeverityCritical:
			return domain.RiskCritical
		case domain.SeverityHigh:
			high = true
		case domain.SeverityMedium:
			medium = true
		}
	}
	switch {
	case high:
		return domain.RiskHigh
	case medium:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// GetRecommendations turns findings into user-facing advice.
func (s *RiskAssessmentServiceImpl) GetRecommendations(_ domain.TransactionContext, risks []domain.RiskFinding) []string {
	recs := make([]string, 0, len(risks)+1)
	seen := make(map[string]bool)
	add := func(r string) {
		if !seen[r] {
			seen[r] = true
			recs = append(recs, r)
		}
	}

	for _, r := range risks {
		switch r.Type {
		case "blocked_address":
			add("Do not send funds to this address")
		case "insufficient_balance":
			add("Top up the wallet or reduce the amount before executing")
		case "high_gas_price":
			add("Consider waiting for gas prices to drop")
		case "unusual_amount":
			add("Double-check the amount against previous payments")
		case "new_recipient":
			add("Verify the recipient address before sending")
		case "first_transaction":
			add("Start with a small test payment")
		case "low_remaining_balance":
			add("Keep enough balance for future gas fees")
		case "high_frequency":
			add("Review today's activity for unexpected automation")
		case "round_amount", "dust_amount":
			add("Confirm the amount is intended")
		}
	}
	if s.CalculateRiskLevel(risks) == domain.RiskCritical {
		add("Transaction should not be executed")
	}
	if len(recs) == 0 {
		add("No issues found")
	}
	return recs
}

// RecordGasPrice adds an observed gas price to the bounded history.
func (s *RiskAssessmentServiceImpl) RecordGasPrice(price *big.Int) {
	if price == nil || price.Sign() <= 0 {
		return
	}
	p := new(big.Int).Set(price)

	s.gasMu.Lock()
	defer s.gasMu.Unlock()
	if len(s.gasPrices) < gasHistoryCapacity {
		s.gasPrices = append(s.gasPrices, p)
		return
	}
	s.gasPrices[s.gasNext] = p
	s.gasNext = (s.gasNext + 1) % gasHistoryCapacity
}

// AverageGasPrice is the mean of recorded prices, or 20 gwei when none are recorded.
func (s *RiskAssessmentServiceImpl) AverageGasPrice() *big.Int {
	s.gasMu.Lock()
	defer s.gasMu.Unlock()
	if len(s.gasPrices) == 0 {
		return new(big.Int).Set(fallbackGasPrice)
	}
	sum := new(big.Int)
	for _, p := range s.gasPrices {
		sum.Add(sum, p)
	}
	return sum.Quo(sum, big.NewInt(int64(len(s.gasPrices))))
}

// AddBadAddress blocks an address.
func (s *RiskAssessmentServiceImpl) AddBadAddress(addr string) {
	s.badMu.Lock()
	s.bad[strings.ToLower(strings.TrimSpace(addr))] = struct{}{}
	s.badMu.Unlock()
}

// RemoveBadAddress unblocks an address.
func (s *RiskAssessmentServiceImpl) RemoveBadAddress(addr string) {
	s.badMu.Lock()
	delete(s.bad, strings.ToLower(strings.TrimSpace(addr)))
	s.badMu.Unlock()
}

// IsBadAddress reports whether addr is blocked (case-insensitive).
func (s *RiskAssessmentServiceImpl) IsBadAddress(addr string) bool {
	s.badMu.RLock()
	defer s.badMu.RUnlock()
	_, ok := s.bad[strings.ToLower(strings.TrimSpace(addr))]
	return ok
}
