package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/pkg/apperror"
)

// historyService implements ports.HistoryService.
type historyService struct {
	ledger ports.LedgerStore
	now    func() time.Time
}

// NewHistoryService creates a new history service.
func NewHistoryService(ledger ports.LedgerStore) ports.HistoryService {
	return &historyService{ledger: ledger, now: time.Now}
}

// ListPayments returns payments matching filter, newest first.
func (s *historyService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	filter.UserID = userKey(filter.UserID)

	payments, err := s.ledger.QueryPayments(ctx, filter)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("query payments: %w", err))
	}
	return payments, nil
}

// GetStats aggregates the user's payments over period: day, week, month or all.
func (s *historyService) GetStats(ctx context.Context, userID string, period string) (*ports.PaymentStats, error) {
	var since *time.Time
	now := s.now()

	switch period {
	case "day":
		t := now.AddDate(0, 0, -1)
		since = &t
	case "week":
		t := now.AddDate(0, 0, -7)
		since = &t
	case "month":
		t := now.AddDate(0, -1, 0)
		since = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	payments, err := s.ledger.QueryPayments(ctx, domain.PaymentFilter{UserID: userKey(userID), Since: since})
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("query payments: %w", err))
	}

	stats := &ports.PaymentStats{}
	spent := new(big.Int)
	for _, p := range payments {
		stats.TotalPayments++
		stats.TotalGasUsed += p.GasUsed
		switch p.Status {
		case domain.PaymentStatusSuccess:
			stats.Successful++
			if wei, err := domain.ParseNative(p.Amount); err == nil {
				spent.Add(spent, wei)
			}
		case domain.PaymentStatusFailed:
			stats.Failed++
		case domain.PaymentStatusPending:
			stats.Pending++
		}
	}
	stats.TotalSpentWei = spent.String()
	stats.TotalSpent = domain.FormatNative(spent)
	return stats, nil
}
