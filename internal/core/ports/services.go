package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"agent-payment-engine/internal/core/domain"
)

// --- Policy ---

// PolicyService is the authority on what a user may pay and what they paid today.
type PolicyService interface {
	DefaultPolicy() domain.Policy
	// GetPolicy never fails; storage errors fall back to the default policy.
	GetPolicy(ctx context.Context, userID string) domain.Policy
	StorePolicy(ctx context.Context, userID string, policy domain.Policy) (domain.Policy, error)
	SetSpendingLimit(ctx context.Context, userID string, limit string) (domain.Policy, error)
	SetSingleTxLimit(ctx context.Context, userID string, limit string) (domain.Policy, error)
	SetDailyTxLimit(ctx context.Context, userID string, limit int) (domain.Policy, error)
	SetAllowedAddresses(ctx context.Context, userID string, addrs []string) (domain.Policy, error)
	SetDeniedAddresses(ctx context.Context, userID string, addrs []string) (domain.Policy, error)
	SetAllowedActions(ctx context.Context, userID string, actions []string) (domain.Policy, error)
	CheckPolicyCompliance(ctx context.Context, payment domain.PaymentIntent, userID string) domain.ComplianceResult
	RecordPayment(userID string, payment domain.PaymentIntent, txHash string) error
	GetDailySpending(userID string) *big.Int
	GetDailyTransactionCount(userID string) int
	ClearOldTracking() int
}

// --- Signatures ---

// SignatureService binds payloads to the service signer and verifies them.
type SignatureService interface {
	SignerAddress() string
	GeneratePaymentSignature(intent domain.PaymentIntent) (*domain.SignedPayment, error)
	VerifySignature(signature string, intent domain.PaymentIntent) bool
	VerifyExpiration(intent domain.PaymentIntent) bool
	VerifyNonce(userID string, nonce uint64) bool
	CreateSingleTxSignature(actions []domain.BatchAction) (*domain.SignedBatch, error)
	VerifySingleTxSignature(signature string, batch domain.BatchPayload) bool
	SignContractCall(contract, method string, params any) (*domain.SignedContractCall, error)
	VerifyContractCallSignature(signature string, call domain.ContractCallPayload) bool
}

// --- Risk ---

// RiskAssessmentService scores transactions. Its output is advisory.
type RiskAssessmentService interface {
	AssessTransaction(ctx context.Context, tx domain.TransactionContext) (*domain.RiskAssessment, error)
	IdentifyRisks(ctx context.Context, tx domain.TransactionContext) ([]domain.RiskFinding, error)
	CalculateRiskLevel(risks []domain.RiskFinding) domain.RiskLevel
	GetRecommendations(tx domain.TransactionContext, risks []domain.RiskFinding) []string
	RecordGasPrice(price *big.Int)
	AverageGasPrice() *big.Int
	AddBadAddress(addr string)
	RemoveBadAddress(addr string)
	IsBadAddress(addr string) bool
}

// --- Payments ---

// PaymentService orchestrates session, prepare, verify, execute and preview.
type PaymentService interface {
	InitializePaymentSession(ctx context.Context, userID string, action domain.ActionKind) (*domain.PaymentSession, error)
	GetSession(sessionID string) (*domain.PaymentSession, error)
	EndSession(sessionID string) error
	PreparePayment(ctx context.Context, req PrepareRequest) (*PreparedPayment, error)
	// VerifyPayment reports rejections in the result, never as an error.
	VerifyPayment(ctx context.Context, signature string, intent domain.PaymentIntent) VerifyResult
	ExecutePayment(ctx context.Context, signature string, intent domain.PaymentIntent) (*domain.Payment, error)
	GetPaymentPreview(ctx context.Context, intent domain.PaymentIntent) (*PaymentPreview, error)
	GetNextNonce(userID string) uint64
	GetPaymentHistory(ctx context.Context, userID string, limit int) ([]domain.Payment, error)
	SweepExpiredSessions() int
}

// PrepareRequest holds validated input for preparing a payment intent.
type PrepareRequest struct {
	UserID    string
	Action    domain.ActionKind
	Amount    string // native unit
	Recipient string
	Token     *string
	Data      string
	Metadata  map[string]any
}

// PreparedPayment is a compliant intent ready for signing.
type PreparedPayment struct {
	Payment           domain.PaymentIntent `json:"payment"`
	GasEstimate       *domain.GasEstimate  `json:"gas_estimate"`
	PolicyCompliant   bool                 `json:"policy_compliant"`
	RequiresSignature bool                 `json:"requires_signature"`
	Warnings          []string             `json:"warnings"`
}

// VerifyResult is the outcome of verifying a signed intent.
type VerifyResult struct {
	Success  bool   `json:"success"`
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// PaymentPreview combines a quote, a compliance check and the quick risk score.
type PaymentPreview struct {
	Payment         domain.PaymentIntent    `json:"payment"`
	GasEstimate     *domain.GasEstimate     `json:"gas_estimate"`
	Compliance      domain.ComplianceResult `json:"compliance"`
	RiskScore       int                     `json:"risk_score"`
	RiskLevel       string                  `json:"risk_level"`
	RiskFactors     []string                `json:"risk_factors"`
	TotalCostWei    string                  `json:"total_cost_wei"`
	TotalCostNative string                  `json:"total_cost_native"`
}

// HistoryService serves payment history and aggregates from the ledger.
type HistoryService interface {
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	GetStats(ctx context.Context, userID string, period string) (*PaymentStats, error)
}

// PaymentStats holds aggregated payment statistics for a user.
type PaymentStats struct {
	TotalPayments int    `json:"total_payments"`
	Successful    int    `json:"successful"`
	Failed        int    `json:"failed"`
	Pending       int    `json:"pending"`
	TotalSpentWei string `json:"total_spent_wei"`
	TotalSpent    string `json:"total_spent"`
	TotalGasUsed  uint64 `json:"total_gas_used"`
}

// --- Auth ---

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID string
}

// AuthService signs users in with a wallet signature.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (string, time.Time, error) // token, expiry, error
}

// LoginRequest is a wallet sign-in attempt.
type LoginRequest struct {
	Address   string
	Timestamp int64
	Signature string
}

// --- Audit ---

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
