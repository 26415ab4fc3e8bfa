package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agent-payment-engine/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LedgerStore implements ports.LedgerStore on PostgreSQL.
// User ids are stored lowercased so lookups are case-insensitive.
type LedgerStore struct {
	pool Pool
}

// NewLedgerStore creates a PostgreSQL-backed ledger.
func NewLedgerStore(pool Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// StorePayment inserts a payment record. Records are never updated.
func (s *LedgerStore) StorePayment(ctx context.Context, p *domain.Payment) error {
	details, err := json.Marshal(p.PaymentDetails)
	if err != nil {
		return fmt.Errorf("marshal payment details: %w", err)
	}
	var result []byte
	if p.Result != nil {
		if result, err = json.Marshal(p.Result); err != nil {
			return fmt.Errorf("marshal payment result: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO payments (id, user_id, action, amount, recipient, tx_hash, status, gas_used, payment_details, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, strings.ToLower(p.UserID), string(p.Action), p.Amount, p.Recipient,
		p.TxHash, string(p.Status), p.GasUsed, details, result, p.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// QueryPayments returns payments matching the filter, newest first.
// A zero Limit means no limit.
func (s *LedgerStore) QueryPayments(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if f.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, strings.ToLower(f.UserID))
		argIdx++
	}
	if f.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*f.Status))
		argIdx++
	}
	if f.Recipient != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(recipient) = $%d", argIdx))
		args = append(args, strings.ToLower(f.Recipient))
		argIdx++
	}
	if f.Since != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *f.Since)
		argIdx++
	}

	query := `SELECT id, user_id, action, amount, recipient, tx_hash, status, gas_used, payment_details, result, created_at
		FROM payments`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	var details, result []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Action, &p.Amount, &p.Recipient,
		&p.TxHash, &p.Status, &p.GasUsed, &details, &result, &p.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	if err := json.Unmarshal(details, &p.PaymentDetails); err != nil {
		return nil, fmt.Errorf("decode payment details %s: %w", p.ID, err)
	}
	if len(result) > 0 {
		p.Result = &domain.ActionResult{}
		if err := json.Unmarshal(result, p.Result); err != nil {
			return nil, fmt.Errorf("decode payment result %s: %w", p.ID, err)
		}
	}
	return p, nil
}

// GetUserPreferences returns every stored preference for the user.
func (s *LedgerStore) GetUserPreferences(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM user_preferences WHERE user_id = $1`,
		strings.ToLower(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("query user preferences: %w", err)
	}
	defer rows.Close()

	prefs := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan user preference: %w", err)
		}
		prefs[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user preferences: %w", err)
	}
	return prefs, nil
}

// StoreUserPreference upserts a single preference key.
func (s *LedgerStore) StoreUserPreference(ctx context.Context, userID, key string, value json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO user_preferences (user_id, key, value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		strings.ToLower(userID), key, []byte(value),
	)
	if err != nil {
		return fmt.Errorf("upsert user preference %q: %w", key, err)
	}
	return nil
}
