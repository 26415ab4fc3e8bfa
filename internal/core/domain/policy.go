package domain

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"
)

// PolicyPreferenceKey is the user preference bucket the policy is stored under.
const PolicyPreferenceKey = "payment_policy"

// warnThresholdPercent is the share of the daily cap at which a warning is raised.
const warnThresholdPercent = 80

// Policy is a user's spend configuration. Amounts are wei in base-10 strings.
type Policy struct {
	MaxDailySpend    string       `json:"max_daily_spend"`
	MaxSingleTx      string       `json:"max_single_tx"`
	DailyTxLimit     int          `json:"daily_tx_limit"`
	AllowedAddresses []string     `json:"allowed_addresses"`
	DeniedAddresses  []string     `json:"denied_addresses"`
	AllowedActions   []ActionKind `json:"allowed_actions"`
	UpdatedAt        time.Time    `json:"updated_at,omitempty"`
}

// DefaultPolicy returns the policy every user starts with:
// 1 native unit per day, 0.1 per transaction, 100 transactions per day.
func DefaultPolicy() Policy {
	return Policy{
		MaxDailySpend:    MustParseNative("1").String(),
		MaxSingleTx:      MustParseNative("0.1").String(),
		DailyTxLimit:     100,
		AllowedAddresses: []string{},
		DeniedAddresses:  []string{},
		AllowedActions:   []ActionKind{ActionTransfer, ActionSwap, ActionCall},
	}
}

// Clone returns a deep copy so cached policies are never mutated in place.
func (p Policy) Clone() Policy {
	c := p
	c.AllowedAddresses = append([]string{}, p.AllowedAddresses...)
	c.DeniedAddresses = append([]string{}, p.DeniedAddresses...)
	c.AllowedActions = append([]ActionKind{}, p.AllowedActions...)
	return c
}

// IsAllowedAddress reports whether addr is on the allow-list (case-insensitive).
func (p Policy) IsAllowedAddress(addr string) bool {
	return containsFold(p.AllowedAddresses, addr)
}

// IsDeniedAddress reports whether addr is on the deny-list (case-insensitive).
func (p Policy) IsDeniedAddress(addr string) bool {
	return containsFold(p.DeniedAddresses, addr)
}

// AllowsAction reports whether the action passes the allowed-actions rule.
// An empty list means no restriction.
func (p Policy) AllowsAction(a ActionKind) bool {
	if len(p.AllowedActions) == 0 {
		return true
	}
	for _, allowed := range p.AllowedActions {
		if strings.EqualFold(string(allowed), string(a)) {
			return true
		}
	}
	return false
}

// NormalizeAddresses lower-cases, trims and de-duplicates a list of addresses.
func NormalizeAddresses(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func containsFold(list []string, v string) bool {
	v = strings.ToLower(v)
	for _, item := range list {
		if strings.ToLower(item) == v {
			return true
		}
	}
	return false
}

// ComplianceInput is everything a compliance decision depends on.
type ComplianceInput struct {
	Amount       *big.Int
	Action       ActionKind
	Recipient    string
	Policy       Policy
	DailySpent   *big.Int
	DailyTxCount int
}

// ComplianceResult is the outcome of a compliance check. Violations block, warnings do not.
type ComplianceResult struct {
	Compliant    bool     `json:"compliant"`
	Violations   []string `json:"violations"`
	Warnings     []string `json:"warnings"`
	DailySpent   string   `json:"daily_spent"`
	DailyTxCount int      `json:"daily_tx_count"`
}

// FailedCompliance converts an error raised while checking into a single violation,
// so callers always receive a decision.
func FailedCompliance(err error) ComplianceResult {
	return ComplianceResult{
		Compliant:  false,
		Violations: []string{fmt.Sprintf("Policy check failed: %v", err)},
		Warnings:   []string{},
	}
}

// EvaluateCompliance applies the policy rules in order. It is a pure function of its input.
func EvaluateCompliance(in ComplianceInput) ComplianceResult {
	res := ComplianceResult{
		Violations:   []string{},
		Warnings:     []string{},
		DailyTxCount: in.DailyTxCount,
	}
	spent := in.DailySpent
	if spent == nil {
		spent = new(big.Int)
	}
	res.DailySpent = spent.String()

	maxSingle, err := ParseWei(in.Policy.MaxSingleTx)
	if err != nil {
		return FailedCompliance(fmt.Errorf("max_single_tx: %w", err))
	}
	maxDaily, err := ParseWei(in.Policy.MaxDailySpend)
	if err != nil {
		return FailedCompliance(fmt.Errorf("max_daily_spend: %w", err))
	}

	if in.Amount.Cmp(maxSingle) > 0 {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Amount %s exceeds single transaction limit of %s",
			FormatNative(in.Amount), FormatNative(maxSingle)))
	}

	total := new(big.Int).Add(spent, in.Amount)
	if total.Cmp(maxDaily) > 0 {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Payment would exceed daily spending limit of %s (already spent %s)",
			FormatNative(maxDaily), FormatNative(spent)))
	} else if reachesPercent(total, maxDaily, warnThresholdPercent) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Approaching daily spending limit: %s of %s after this payment",
			FormatNative(total), FormatNative(maxDaily)))
	}

	if in.DailyTxCount >= in.Policy.DailyTxLimit {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Daily transaction limit of %d reached", in.Policy.DailyTxLimit))
	}

	if len(in.Policy.AllowedAddresses) > 0 && !in.Policy.IsAllowedAddress(in.Recipient) {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Recipient %s is not in the allowed address list", strings.ToLower(in.Recipient)))
	}
	if in.Policy.IsDeniedAddress(in.Recipient) {
		res.Violations = append(res.Violations, fmt.Sprintf(
			"Recipient %s is in the denied address list", strings.ToLower(in.Recipient)))
	}

	if !in.Policy.AllowsAction(in.Action) {
		res.Violations = append(res.Violations, fmt.Sprintf("Action %q is not allowed by policy", in.Action))
	}

	res.Compliant = len(res.Violations) == 0
	return res
}

// reachesPercent reports whether v >= pct% of limit, using integer math.
func reachesPercent(v, limit *big.Int, pct int64) bool {
	if limit.Sign() == 0 {
		return false
	}
	lhs := new(big.Int).Mul(v, big.NewInt(100))
	rhs := new(big.Int).Mul(limit, big.NewInt(pct))
	return lhs.Cmp(rhs) >= 0
}
