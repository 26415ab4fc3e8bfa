package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	recipientA = "0x1111111111111111111111111111111111111111"
	recipientB = "0x2222222222222222222222222222222222222222"
)

func compliance(t *testing.T, policy Policy, amount, spent string, count int, recipient string, action ActionKind) ComplianceResult {
	t.Helper()
	return EvaluateCompliance(ComplianceInput{
		Amount:       MustParseNative(amount),
		Action:       action,
		Recipient:    recipient,
		Policy:       policy,
		DailySpent:   MustParseNative(spent),
		DailyTxCount: count,
	})
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, "1000000000000000000", p.MaxDailySpend)
	assert.Equal(t, "100000000000000000", p.MaxSingleTx)
	assert.Equal(t, 100, p.DailyTxLimit)
	assert.Empty(t, p.AllowedAddresses)
	assert.Empty(t, p.DeniedAddresses)
	assert.Equal(t, []ActionKind{ActionTransfer, ActionSwap, ActionCall}, p.AllowedActions)
}

func TestEvaluateCompliance_DefaultPolicySmallPayment(t *testing.T) {
	res := compliance(t, DefaultPolicy(), "0.05", "0", 0, recipientA, ActionTransfer)

	assert.True(t, res.Compliant)
	assert.Empty(t, res.Violations)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "0", res.DailySpent)
}

func TestEvaluateCompliance_SingleTxBoundary(t *testing.T) {
	p := DefaultPolicy()

	atLimit := compliance(t, p, "0.1", "0", 0, recipientA, ActionTransfer)
	assert.True(t, atLimit.Compliant)

	overByOneWei := EvaluateCompliance(ComplianceInput{
		Amount:     new(big.Int).Add(MustParseNative("0.1"), big.NewInt(1)),
		Action:     ActionTransfer,
		Recipient:  recipientA,
		Policy:     p,
		DailySpent: big.NewInt(0),
	})
	require.False(t, overByOneWei.Compliant)
	require.Len(t, overByOneWei.Violations, 1)
	assert.Contains(t, overByOneWei.Violations[0], "single transaction limit")
}

func TestEvaluateCompliance_DailySpendThresholds(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name          string
		spent         string
		amount        string
		wantCompliant bool
		wantWarning   bool
	}{
		{"below 80 percent", "0.5", "0.1", true, false},
		{"exactly 80 percent warns", "0.7", "0.1", true, true},
		{"exactly 100 percent warns", "0.9", "0.1", true, true},
		{"over 100 percent violates", "0.95", "0.1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compliance(t, p, tt.amount, tt.spent, 0, recipientA, ActionTransfer)
			assert.Equal(t, tt.wantCompliant, res.Compliant)
			if tt.wantWarning {
				require.Len(t, res.Warnings, 1)
				assert.Contains(t, res.Warnings[0], "Approaching daily spending limit")
			} else {
				assert.Empty(t, res.Warnings)
			}
			if !tt.wantCompliant {
				assert.Contains(t, res.Violations[0], "daily spending limit")
			}
		})
	}
}

func TestEvaluateCompliance_NinetyPercentSpentLargePayment(t *testing.T) {
	res := compliance(t, DefaultPolicy(), "0.2", "0.9", 3, recipientA, ActionTransfer)

	assert.False(t, res.Compliant)
	joined := ""
	for _, v := range res.Violations {
		joined += v + "\n"
	}
	assert.Contains(t, joined, "daily spending limit")
	assert.Contains(t, joined, "single transaction limit")
}

func TestEvaluateCompliance_DailyTxLimitReached(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, compliance(t, p, "0.01", "0", 99, recipientA, ActionTransfer).Compliant)

	res := compliance(t, p, "0.01", "0", 100, recipientA, ActionTransfer)
	require.False(t, res.Compliant)
	assert.Contains(t, res.Violations[0], "Daily transaction limit of 100 reached")
}

func TestEvaluateCompliance_AddressLists(t *testing.T) {
	t.Run("empty allow list does not restrict", func(t *testing.T) {
		res := compliance(t, DefaultPolicy(), "0.01", "0", 0, recipientB, ActionTransfer)
		assert.True(t, res.Compliant)
	})

	t.Run("recipient missing from allow list", func(t *testing.T) {
		p := DefaultPolicy()
		p.AllowedAddresses = []string{recipientA}
		res := compliance(t, p, "0.01", "0", 0, recipientB, ActionTransfer)
		require.False(t, res.Compliant)
		assert.Contains(t, res.Violations[0], "not in the allowed address list")
	})

	t.Run("allow list match is case-insensitive", func(t *testing.T) {
		p := DefaultPolicy()
		p.AllowedAddresses = []string{"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"}
		res := compliance(t, p, "0.01", "0", 0, "0xABCDEFabcdefABCDEFabcdefABCDEFabcdefABCD", ActionTransfer)
		assert.True(t, res.Compliant)
	})

	t.Run("deny wins over allow", func(t *testing.T) {
		p := DefaultPolicy()
		p.AllowedAddresses = []string{recipientA}
		p.DeniedAddresses = []string{recipientA}
		res := compliance(t, p, "0.01", "0", 0, recipientA, ActionTransfer)
		require.False(t, res.Compliant)
		require.Len(t, res.Violations, 1)
		assert.Contains(t, res.Violations[0], "denied address list")
	})

	t.Run("address can fail both rules", func(t *testing.T) {
		p := DefaultPolicy()
		p.AllowedAddresses = []string{recipientA}
		p.DeniedAddresses = []string{recipientB}
		res := compliance(t, p, "0.01", "0", 0, recipientB, ActionTransfer)
		assert.Len(t, res.Violations, 2)
	})
}

func TestEvaluateCompliance_ActionNotAllowed(t *testing.T) {
	p := DefaultPolicy()
	p.AllowedActions = []ActionKind{ActionTransfer}

	res := compliance(t, p, "0.01", "0", 0, recipientA, ActionSwap)
	require.False(t, res.Compliant)
	assert.Contains(t, res.Violations[0], `Action "swap" is not allowed`)

	p.AllowedActions = nil
	assert.True(t, compliance(t, p, "0.01", "0", 0, recipientA, ActionSwap).Compliant)
}

func TestEvaluateCompliance_IsPure(t *testing.T) {
	p := DefaultPolicy()
	p.DeniedAddresses = []string{recipientB}

	in := ComplianceInput{
		Amount:       MustParseNative("0.15"),
		Action:       ActionCall,
		Recipient:    recipientB,
		Policy:       p,
		DailySpent:   MustParseNative("0.9"),
		DailyTxCount: 100,
	}

	first := EvaluateCompliance(in)
	second := EvaluateCompliance(in)
	assert.Equal(t, first, second)
	assert.Equal(t, "900000000000000000", in.DailySpent.String(), "input must not be mutated")
}

func TestEvaluateCompliance_CorruptPolicyYieldsSingleViolation(t *testing.T) {
	p := DefaultPolicy()
	p.MaxSingleTx = "not-a-number"

	res := compliance(t, p, "0.01", "0", 0, recipientA, ActionTransfer)
	assert.False(t, res.Compliant)
	require.Len(t, res.Violations, 1)
	assert.Contains(t, res.Violations[0], "Policy check failed")
}

func TestNormalizeAddresses(t *testing.T) {
	got := NormalizeAddresses([]string{" 0xAbC ", "0xabc", "0xDEF"})
	assert.Equal(t, []string{"0xabc", "0xdef"}, got)
}

func TestPolicy_CloneIsIndependent(t *testing.T) {
	p := DefaultPolicy()
	c := p.Clone()
	c.AllowedActions[0] = ActionCall
	c.DeniedAddresses = append(c.DeniedAddresses, recipientA)

	assert.Equal(t, ActionTransfer, p.AllowedActions[0])
	assert.Empty(t, p.DeniedAddresses)
}
