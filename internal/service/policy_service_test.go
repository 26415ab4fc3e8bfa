package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"agent-payment-engine/internal/adapter/storage/memory"
	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports/mocks"
	"agent-payment-engine/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type policyTestDeps struct {
	svc    *PolicyServiceImpl
	ledger *mocks.MockLedgerStore
	chain  *mocks.MockChainGateway
	ctrl   *gomock.Controller
}

func setupPolicyService(t *testing.T) *policyTestDeps {
	ctrl := gomock.NewController(t)
	d := &policyTestDeps{
		ledger: mocks.NewMockLedgerStore(ctrl),
		chain:  mocks.NewMockChainGateway(ctrl),
		ctrl:   ctrl,
	}
	d.svc = NewPolicyService(d.ledger, d.chain, zerolog.Nop())
	return d
}

// addressValidator answers ValidateAddress like the real gateway.
func addressValidator(chain *mocks.MockChainGateway) {
	chain.EXPECT().ValidateAddress(gomock.Any()).DoAndReturn(common.IsHexAddress).AnyTimes()
}

// newMemoryPolicyService wires the service to the in-memory ledger.
func newMemoryPolicyService(t *testing.T) (*PolicyServiceImpl, *memory.LedgerStore) {
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockChainGateway(ctrl)
	addressValidator(chain)
	ledger := memory.NewLedgerStore()
	return NewPolicyService(ledger, chain, zerolog.Nop()), ledger
}

func intentFor(amount, recipient string) domain.PaymentIntent {
	return domain.PaymentIntent{
		User:      testUser,
		Action:    domain.ActionTransfer,
		Amount:    amount,
		Recipient: recipient,
		Nonce:     1,
	}
}

// ==================== GetPolicy ====================

func TestPolicyService_GetPolicy_DefaultOnFirstAccessIsCached(t *testing.T) {
	d := setupPolicyService(t)
	ctx := context.Background()

	d.ledger.EXPECT().GetUserPreferences(ctx, testUser).Return(map[string]json.RawMessage{}, nil).Times(1)

	p := d.svc.GetPolicy(ctx, testUser)
	assert.Equal(t, domain.DefaultPolicy(), p)

	// second read is served from cache
	assert.Equal(t, domain.DefaultPolicy(), d.svc.GetPolicy(ctx, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
}

func TestPolicyService_GetPolicy_LoadsStored(t *testing.T) {
	d := setupPolicyService(t)
	ctx := context.Background()

	stored := domain.DefaultPolicy()
	stored.DailyTxLimit = 3
	raw, _ := json.Marshal(stored)
	d.ledger.EXPECT().GetUserPreferences(ctx, testUser).
		Return(map[string]json.RawMessage{domain.PolicyPreferenceKey: raw}, nil)

	p := d.svc.GetPolicy(ctx, testUser)
	assert.Equal(t, 3, p.DailyTxLimit)
}

func TestPolicyService_GetPolicy_StorageErrorFallsBackWithoutCaching(t *testing.T) {
	d := setupPolicyService(t)
	ctx := context.Background()

	d.ledger.EXPECT().GetUserPreferences(ctx, testUser).Return(nil, errors.New("connection refused")).Times(2)

	assert.Equal(t, domain.DefaultPolicy(), d.svc.GetPolicy(ctx, testUser))
	assert.Equal(t, domain.DefaultPolicy(), d.svc.GetPolicy(ctx, testUser))
}

func TestPolicyService_GetPolicy_CorruptStoredPolicy(t *testing.T) {
	d := setupPolicyService(t)
	ctx := context.Background()

	d.ledger.EXPECT().GetUserPreferences(ctx, testUser).
		Return(map[string]json.RawMessage{domain.PolicyPreferenceKey: json.RawMessage(`{not json`)}, nil)

	assert.Equal(t, domain.DefaultPolicy(), d.svc.GetPolicy(ctx, testUser))
}

func TestPolicyService_GetPolicy_ReturnsCopies(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	p := svc.GetPolicy(ctx, testUser)
	p.AllowedActions[0] = domain.ActionCall

	assert.Equal(t, domain.ActionTransfer, svc.GetPolicy(ctx, testUser).AllowedActions[0])
}

// ==================== StorePolicy ====================

func TestPolicyService_StorePolicy_WritesThrough(t *testing.T) {
	svc, ledger := newMemoryPolicyService(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p := domain.DefaultPolicy()
	p.DeniedAddresses = []string{"0xABCDEFabcdefABCDEFabcdefABCDEFabcdefABCD"}

	stored, err := svc.StorePolicy(ctx, testUser, p)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"}, stored.DeniedAddresses)
	assert.Equal(t, now, stored.UpdatedAt)

	prefs, err := ledger.GetUserPreferences(ctx, testUser)
	require.NoError(t, err)
	var persisted domain.Policy
	require.NoError(t, json.Unmarshal(prefs[domain.PolicyPreferenceKey], &persisted))
	assert.Equal(t, stored.DeniedAddresses, persisted.DeniedAddresses)
}

func TestPolicyService_StorePolicy_FailureIsSurfacedAndNotCached(t *testing.T) {
	d := setupPolicyService(t)
	ctx := context.Background()

	p := domain.DefaultPolicy()
	p.DailyTxLimit = 1
	d.ledger.EXPECT().StoreUserPreference(ctx, testUser, domain.PolicyPreferenceKey, gomock.Any()).
		Return(errors.New("disk full"))

	_, err := d.svc.StorePolicy(ctx, testUser, p)
	assertAppError(t, err, "POL_002")

	d.ledger.EXPECT().GetUserPreferences(ctx, testUser).Return(map[string]json.RawMessage{}, nil)
	assert.Equal(t, 100, d.svc.GetPolicy(ctx, testUser).DailyTxLimit)
}

// ==================== Setters ====================

func TestPolicyService_SetSpendingLimit(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	p, err := svc.SetSpendingLimit(ctx, testUser, "2.5")
	require.NoError(t, err)
	assert.Equal(t, "2500000000000000000", p.MaxDailySpend)
	assert.Equal(t, "2500000000000000000", svc.GetPolicy(ctx, testUser).MaxDailySpend)

	_, err = svc.SetSpendingLimit(ctx, testUser, "-1")
	assertAppError(t, err, "VAL_002")
	_, err = svc.SetSpendingLimit(ctx, testUser, "lots")
	assertAppError(t, err, "VAL_002")
	assert.Equal(t, "2500000000000000000", svc.GetPolicy(ctx, testUser).MaxDailySpend)
}

func TestPolicyService_SetSingleAndDailyTxLimit(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	p, err := svc.SetSingleTxLimit(ctx, testUser, "0.25")
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", p.MaxSingleTx)

	p, err = svc.SetDailyTxLimit(ctx, testUser, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.DailyTxLimit)
	assert.Equal(t, "250000000000000000", p.MaxSingleTx, "earlier change is kept")

	_, err = svc.SetDailyTxLimit(ctx, testUser, -1)
	assertAppError(t, err, "VAL_000")
}

func TestPolicyService_SetAllowedAddresses(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	p, err := svc.SetAllowedAddresses(ctx, testUser, []string{
		"0xABCDEFabcdefABCDEFabcdefABCDEFabcdefABCD",
		"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		testRecipient,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{testRecipient, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"}, p.AllowedAddresses)
}

func TestPolicyService_SetAddresses_RejectsMalformedWithoutPartialUpdate(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	_, err := svc.SetDeniedAddresses(ctx, testUser, []string{testRecipient})
	require.NoError(t, err)

	_, err = svc.SetDeniedAddresses(ctx, testUser, []string{testOther, "0xnot-an-address"})
	assertAppError(t, err, "VAL_001")
	assert.Contains(t, err.Error(), "0xnot-an-address")

	assert.Equal(t, []string{testRecipient}, svc.GetPolicy(ctx, testUser).DeniedAddresses)
}

func TestPolicyService_SetAllowedActions(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	p, err := svc.SetAllowedActions(ctx, testUser, []string{"Transfer", "transfer", "call"})
	require.NoError(t, err)
	assert.Equal(t, []domain.ActionKind{domain.ActionTransfer, domain.ActionCall}, p.AllowedActions)

	_, err = svc.SetAllowedActions(ctx, testUser, []string{"transfer", "bridge"})
	assertAppError(t, err, "VAL_003")
}

func TestPolicyService_ConcurrentSettersDoNotLoseUpdates(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _ = svc.SetSpendingLimit(ctx, testUser, "5")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _ = svc.SetDailyTxLimit(ctx, testUser, 9)
		}
	}()
	wg.Wait()

	p := svc.GetPolicy(ctx, testUser)
	assert.Equal(t, "5000000000000000000", p.MaxDailySpend)
	assert.Equal(t, 9, p.DailyTxLimit)
}

// ==================== Compliance ====================

func TestPolicyService_CheckPolicyCompliance_FreshUser(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)

	res := svc.CheckPolicyCompliance(context.Background(), intentFor("0.05", testRecipient), testUser)
	assert.True(t, res.Compliant)
	assert.Empty(t, res.Violations)
}

func TestPolicyService_CheckPolicyCompliance_InvalidAmountIsSingleViolation(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)

	res := svc.CheckPolicyCompliance(context.Background(), intentFor("abc", testRecipient), testUser)
	assert.False(t, res.Compliant)
	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0], "Policy check failed")
}

func TestPolicyService_CheckPolicyCompliance_UsesTodaysTracking(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		require.NoError(t, svc.RecordPayment(testUser, intentFor("0.1", testRecipient), "0xhash"))
	}
	assert.Equal(t, domain.MustParseNative("0.9").String(), svc.GetDailySpending(testUser).String())

	res := svc.CheckPolicyCompliance(ctx, intentFor("0.2", testRecipient), testUser)
	assert.False(t, res.Compliant)
	assert.Contains(t, joinViolations(res), "daily spending limit")
	assert.Equal(t, 9, res.DailyTxCount)
}

func TestPolicyService_CheckPolicyCompliance_DenyWins(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx := context.Background()

	_, err := svc.SetAllowedAddresses(ctx, testUser, []string{testRecipient})
	require.NoError(t, err)
	_, err = svc.SetDeniedAddresses(ctx, testUser, []string{testRecipient})
	require.NoError(t, err)

	res := svc.CheckPolicyCompliance(ctx, intentFor("0.01", testRecipient), testUser)
	assert.False(t, res.Compliant)
	assert.Contains(t, joinViolations(res), "denied")
}

// ==================== Tracking ====================

func TestPolicyService_RecordPayment_ReflectsExactTotals(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)

	require.NoError(t, svc.RecordPayment(testUser, intentFor("0.05", testRecipient), "0x01"))
	require.NoError(t, svc.RecordPayment("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", intentFor("0.000000000000000001", testRecipient), "0x02"))

	assert.Equal(t, "50000000000000001", svc.GetDailySpending(testUser).String())
	assert.Equal(t, 2, svc.GetDailyTransactionCount(testUser))

	assert.Equal(t, 0, svc.ClearOldTracking())
	assert.Equal(t, "50000000000000001", svc.GetDailySpending(testUser).String())
	assert.Equal(t, 2, svc.GetDailyTransactionCount(testUser))

	err := svc.RecordPayment(testUser, intentFor("nope", testRecipient), "0x03")
	assertAppError(t, err, "VAL_002")
	assert.Equal(t, 2, svc.GetDailyTransactionCount(testUser))
}

func TestPolicyService_ClearOldTracking_EvictsPreviousDays(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	day1 := time.Date(2026, 5, 1, 23, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return day1 }

	require.NoError(t, svc.RecordPayment(testUser, intentFor("0.05", testRecipient), "0x01"))

	day2 := day1.Add(time.Hour)
	svc.now = func() time.Time { return day2 }
	assert.Equal(t, "0", svc.GetDailySpending(testUser).String(), "a new day starts from zero")

	require.NoError(t, svc.RecordPayment(testUser, intentFor("0.02", testRecipient), "0x02"))
	assert.Equal(t, 1, svc.ClearOldTracking())
	assert.Equal(t, domain.MustParseNative("0.02").String(), svc.GetDailySpending(testUser).String())
	assert.Equal(t, 1, svc.GetDailyTransactionCount(testUser))
}

func TestPolicyService_RecordPayment_ConcurrentNeverDoubleCounts(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.RecordPayment(testUser, intentFor("0.001", testRecipient), "0x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, svc.GetDailyTransactionCount(testUser))
	assert.Equal(t, domain.MustParseNative("0.1").String(), svc.GetDailySpending(testUser).String())
}

func TestPolicyService_RunTrackingSweeper_StopsOnCancel(t *testing.T) {
	svc, _ := newMemoryPolicyService(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunTrackingSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

// ==================== Helpers ====================

func joinViolations(res domain.ComplianceResult) string {
	out := ""
	for _, v := range res.Violations {
		out += v + "\n"
	}
	return out
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, expectedCode, appErr.Code)
}
