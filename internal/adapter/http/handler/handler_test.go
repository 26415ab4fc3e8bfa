package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agent-payment-engine/internal/adapter/http/dto"
	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/core/ports/mocks"
	"agent-payment-engine/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUser      = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
	otherUser     = "0x0000000000000000000000000000000000000abc"
	testRecipient = "0x2222222222222222222222222222222222222222"
	testToken     = "test-token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testDeps struct {
	auth    *mocks.MockAuthService
	payment *mocks.MockPaymentService
	signer  *mocks.MockSignatureService
	policy  *mocks.MockPolicyService
	risk    *mocks.MockRiskAssessmentService
	history *mocks.MockHistoryService
	router  *gin.Engine
}

func setupRouter(t *testing.T, admins ...string) *testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate(testToken).Return(&ports.TokenClaims{UserID: testUser}, nil).AnyTimes()
	tokenSvc.EXPECT().Validate(gomock.Not(testToken)).Return(nil, errors.New("invalid")).AnyTimes()

	d := &testDeps{
		auth:    mocks.NewMockAuthService(ctrl),
		payment: mocks.NewMockPaymentService(ctrl),
		signer:  mocks.NewMockSignatureService(ctrl),
		policy:  mocks.NewMockPolicyService(ctrl),
		risk:    mocks.NewMockRiskAssessmentService(ctrl),
		history: mocks.NewMockHistoryService(ctrl),
	}
	d.router = SetupRouter(RouterDeps{
		AuthSvc:        d.auth,
		PaymentSvc:     d.payment,
		SignatureSvc:   d.signer,
		PolicySvc:      d.policy,
		RiskSvc:        d.risk,
		HistorySvc:     d.history,
		TokenSvc:       tokenSvc,
		AdminAddresses: admins,
		Logger:         zerolog.Nop(),
	})
	return d
}

func (d *testDeps) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ErrorCode
}

func testIntent(user string) domain.PaymentIntent {
	return domain.PaymentIntent{
		User:      user,
		Action:    domain.ActionTransfer,
		Amount:    "0.05",
		Recipient: testRecipient,
		Nonce:     42,
		Timestamp: 1_700_000_000,
		Expires:   1_700_000_300,
	}
}

// --- Auth ---

func TestLogin_Success(t *testing.T) {
	d := setupRouter(t)
	expiry := time.Now().Add(24 * time.Hour)
	sig := "0x" + strings.Repeat("ab", 65)

	d.auth.EXPECT().Login(gomock.Any(), ports.LoginRequest{
		Address:   "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		Timestamp: 1_700_000_000,
		Signature: sig,
	}).Return("jwt-token-123", expiry, nil)

	w := d.do(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Address:   "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		Timestamp: 1_700_000_000,
		Signature: sig,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, "Bearer", data["token_type"])
	assert.Equal(t, testUser, data["address"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ValidationError(t *testing.T) {
	d := setupRouter(t)
	w := d.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"address": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_000", decodeErrorCode(t, w))
}

func TestLogin_BadSignature(t *testing.T) {
	d := setupRouter(t)
	d.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := d.do(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Address:   "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		Timestamp: 1_700_000_000,
		Signature: "0x" + strings.Repeat("cd", 65),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decodeErrorCode(t, w))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	d := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/policy", nil)
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Health & metrics ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()
	rd := mocks.NewMockHealthChecker(ctrl)
	rd.EXPECT().Name().Return("redis").AnyTimes()

	r := gin.New()
	r.GET("/health", HealthCheck(pg, rd))

	t.Run("healthy", func(t *testing.T) {
		pg.EXPECT().Ping(gomock.Any()).Return(nil)
		rd.EXPECT().Ping(gomock.Any()).Return(nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	})

	t.Run("degraded", func(t *testing.T) {
		pg.EXPECT().Ping(gomock.Any()).Return(nil)
		rd.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	d := setupRouter(t)
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

// --- Sessions ---

func TestStartSession(t *testing.T) {
	d := setupRouter(t)
	session := &domain.PaymentSession{SessionID: "sess-1", UserID: testUser, AgentAction: domain.ActionSwap, Nonce: 9}
	d.payment.EXPECT().InitializePaymentSession(gomock.Any(), testUser, domain.ActionSwap).Return(session, nil)

	w := d.do(t, http.MethodPost, "/api/v1/payments/sessions", dto.SessionRequest{Action: "SWAP"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sess-1", decodeData(t, w)["session_id"])
}

func TestGetSession_OtherUserIsNotFound(t *testing.T) {
	d := setupRouter(t)
	d.payment.EXPECT().GetSession("sess-1").Return(&domain.PaymentSession{SessionID: "sess-1", UserID: otherUser}, nil)

	w := d.do(t, http.MethodGet, "/api/v1/payments/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SES_001", decodeErrorCode(t, w))
}

func TestEndSession(t *testing.T) {
	d := setupRouter(t)
	d.payment.EXPECT().GetSession("sess-1").Return(&domain.PaymentSession{SessionID: "sess-1", UserID: testUser}, nil)
	d.payment.EXPECT().EndSession("sess-1").Return(nil)

	w := d.do(t, http.MethodDelete, "/api/v1/payments/sessions/sess-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

// --- Prepare / sign / verify / execute ---

func TestPrepare_Success(t *testing.T) {
	d := setupRouter(t)
	intent := testIntent(testUser)
	d.payment.EXPECT().PreparePayment(gomock.Any(), ports.PrepareRequest{
		UserID:    testUser,
		Action:    domain.ActionTransfer,
		Amount:    "0.05",
		Recipient: testRecipient,
	}).Return(&ports.PreparedPayment{
		Payment:           intent,
		GasEstimate:       domain.NewGasEstimate(21000, big.NewInt(20_000_000_000)),
		PolicyCompliant:   true,
		RequiresSignature: true,
		Warnings:          []string{},
	}, nil)

	w := d.do(t, http.MethodPost, "/api/v1/payments/prepare", dto.PrepareRequest{
		Action:    "transfer",
		Amount:    " 0.05 ",
		Recipient: testRecipient,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["policy_compliant"])
	assert.Equal(t, true, data["requires_signature"])
}

func TestPrepare_PolicyViolation(t *testing.T) {
	d := setupRouter(t)
	d.payment.EXPECT().PreparePayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrPolicyViolation([]string{"Amount 0.5 exceeds single transaction limit of 0.1"}))

	w := d.do(t, http.MethodPost, "/api/v1/payments/prepare", dto.PrepareRequest{Amount: "0.5", Recipient: testRecipient})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "POL_001", decodeErrorCode(t, w))
	assert.Contains(t, w.Body.String(), "single transaction limit")
}

func TestPrepare_BadAmount(t *testing.T) {
	d := setupRouter(t)
	w := d.do(t, http.MethodPost, "/api/v1/payments/prepare", dto.PrepareRequest{Amount: "-1", Recipient: testRecipient})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSign(t *testing.T) {
	t.Run("signs a compliant intent for the caller", func(t *testing.T) {
		d := setupRouter(t)
		intent := testIntent("")
		owned := testIntent(testUser)
		d.policy.EXPECT().CheckPolicyCompliance(gomock.Any(), owned, testUser).
			Return(domain.ComplianceResult{Compliant: true})
		d.signer.EXPECT().GeneratePaymentSignature(owned).
			Return(&domain.SignedPayment{Signature: "0xsig", Payload: owned, MessageHash: "0xhash"}, nil)

		w := d.do(t, http.MethodPost, "/api/v1/payments/sign", dto.IntentRequest{Payment: &intent})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0xsig", decodeData(t, w)["signature"])
	})

	t.Run("refuses another user's intent", func(t *testing.T) {
		d := setupRouter(t)
		intent := testIntent(otherUser)
		w := d.do(t, http.MethodPost, "/api/v1/payments/sign", dto.IntentRequest{Payment: &intent})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "AUTH_004", decodeErrorCode(t, w))
	})

	t.Run("refuses a non-compliant intent", func(t *testing.T) {
		d := setupRouter(t)
		intent := testIntent(testUser)
		d.policy.EXPECT().CheckPolicyCompliance(gomock.Any(), intent, testUser).
			Return(domain.ComplianceResult{Compliant: false, Violations: []string{"Daily transaction limit of 1 reached"}})

		w := d.do(t, http.MethodPost, "/api/v1/payments/sign", dto.IntentRequest{Payment: &intent})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "POL_001", decodeErrorCode(t, w))
	})
}

func TestVerify(t *testing.T) {
	d := setupRouter(t)
	intent := testIntent(testUser)

	d.payment.EXPECT().VerifyPayment(gomock.Any(), "0xgood", intent).
		Return(ports.VerifyResult{Success: true, Verified: true})
	w := d.do(t, http.MethodPost, "/api/v1/payments/verify", dto.SignedIntentRequest{Signature: "0xgood", Payment: &intent})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["verified"])

	d.payment.EXPECT().VerifyPayment(gomock.Any(), "0xbad", intent).
		Return(ports.VerifyResult{Error: "Invalid signature"})
	w = d.do(t, http.MethodPost, "/api/v1/payments/verify", dto.SignedIntentRequest{Signature: "0xbad", Payment: &intent})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Invalid signature", decodeData(t, w)["error"])
}

func TestExecute(t *testing.T) {
	d := setupRouter(t)
	intent := testIntent(testUser)

	d.payment.EXPECT().ExecutePayment(gomock.Any(), "0xsig", intent).Return(&domain.Payment{
		UserID:    testUser,
		Action:    domain.ActionTransfer,
		Amount:    "0.05",
		Recipient: testRecipient,
		TxHash:    "0xtx",
		Status:    domain.PaymentStatusSuccess,
	}, nil)
	w := d.do(t, http.MethodPost, "/api/v1/payments/execute", dto.SignedIntentRequest{Signature: "0xsig", Payment: &intent})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0xtx", decodeData(t, w)["tx_hash"])

	d.payment.EXPECT().ExecutePayment(gomock.Any(), "0xsig", intent).Return(nil, apperror.ErrNonceUsed())
	w = d.do(t, http.MethodPost, "/api/v1/payments/execute", dto.SignedIntentRequest{Signature: "0xsig", Payment: &intent})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SIG_003", decodeErrorCode(t, w))
}

func TestExecute_MissingPayment(t *testing.T) {
	d := setupRouter(t)
	w := d.do(t, http.MethodPost, "/api/v1/payments/execute", map[string]any{"signature": "0xsig"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview(t *testing.T) {
	d := setupRouter(t)
	intent := testIntent(testUser)
	d.payment.EXPECT().GetPaymentPreview(gomock.Any(), intent).Return(&ports.PaymentPreview{
		Payment:   intent,
		RiskScore: 0,
		RiskLevel: "low",
	}, nil)

	w := d.do(t, http.MethodPost, "/api/v1/payments/preview", dto.IntentRequest{Payment: &intent})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "low", decodeData(t, w)["risk_level"])
}

func TestAssessRisk(t *testing.T) {
	d := setupRouter(t)
	d.risk.EXPECT().AssessTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, tx domain.TransactionContext) (*domain.RiskAssessment, error) {
			assert.Equal(t, testUser, tx.UserID)
			assert.Equal(t, testUser, tx.From, "from defaults to the caller")
			assert.Equal(t, "50000000000000000", tx.Amount.String())
			return &domain.RiskAssessment{RiskLevel: domain.RiskLow, Risks: []domain.RiskFinding{}, CanExecute: true}, nil
		})

	w := d.do(t, http.MethodPost, "/api/v1/payments/risk", dto.RiskRequest{Amount: "0.05", Recipient: testRecipient})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "LOW", data["risk_level"])
	assert.Equal(t, true, data["can_execute"])
}

// --- History ---

func TestHistory(t *testing.T) {
	d := setupRouter(t)
	failed := domain.PaymentStatusFailed
	d.history.EXPECT().ListPayments(gomock.Any(), domain.PaymentFilter{
		UserID: testUser,
		Status: &failed,
		Limit:  5,
	}).Return([]domain.Payment{{
		Action:    domain.ActionTransfer,
		Amount:    "0.1",
		Recipient: testRecipient,
		Status:    domain.PaymentStatusFailed,
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}}, nil)

	w := d.do(t, http.MethodGet, "/api/v1/payments/history?limit=5&status=failed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["count"])
	item := data["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "failed", item["status"])
	assert.Equal(t, "2025-01-02T03:04:05Z", item["timestamp"])
}

func TestHistory_InvalidQuery(t *testing.T) {
	d := setupRouter(t)
	w := d.do(t, http.MethodGet, "/api/v1/payments/history?status=reverted", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_StorageError(t *testing.T) {
	d := setupRouter(t)
	d.history.EXPECT().ListPayments(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrStorage(errors.New("down")))
	w := d.do(t, http.MethodGet, "/api/v1/payments/history", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SYS_001", decodeErrorCode(t, w))
}

func TestStats(t *testing.T) {
	d := setupRouter(t)
	d.history.EXPECT().GetStats(gomock.Any(), testUser, "week").Return(&ports.PaymentStats{
		TotalPayments: 3,
		Successful:    2,
		TotalSpent:    "0.07",
	}, nil)

	w := d.do(t, http.MethodGet, "/api/v1/payments/stats?period=week", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.07", decodeData(t, w)["total_spent"])
}

// --- Policy ---

func TestPolicy_Get(t *testing.T) {
	d := setupRouter(t)
	d.policy.EXPECT().GetPolicy(gomock.Any(), testUser).Return(domain.DefaultPolicy())

	w := d.do(t, http.MethodGet, "/api/v1/policy", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "1000000000000000000", data["max_daily_spend"])
	assert.Equal(t, float64(100), data["daily_tx_limit"])
}

func TestPolicy_SetSpendingLimit(t *testing.T) {
	d := setupRouter(t)
	updated := domain.DefaultPolicy()
	updated.MaxDailySpend = "2000000000000000000"
	d.policy.EXPECT().SetSpendingLimit(gomock.Any(), testUser, "2").Return(updated, nil)

	w := d.do(t, http.MethodPut, "/api/v1/policy/spending-limit", dto.AmountLimitRequest{Limit: "2"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2000000000000000000", decodeData(t, w)["max_daily_spend"])
}

func TestPolicy_SetSingleTxLimit_InvalidAmount(t *testing.T) {
	d := setupRouter(t)
	d.policy.EXPECT().SetSingleTxLimit(gomock.Any(), testUser, "abc").
		Return(domain.Policy{}, apperror.ErrInvalidAmount("abc"))

	w := d.do(t, http.MethodPut, "/api/v1/policy/single-tx-limit", dto.AmountLimitRequest{Limit: "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_002", decodeErrorCode(t, w))
}

func TestPolicy_SetDailyTxLimit(t *testing.T) {
	d := setupRouter(t)

	w := d.do(t, http.MethodPut, "/api/v1/policy/daily-tx-limit", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "limit is required")

	updated := domain.DefaultPolicy()
	updated.DailyTxLimit = 0
	d.policy.EXPECT().SetDailyTxLimit(gomock.Any(), testUser, 0).Return(updated, nil)
	w = d.do(t, http.MethodPut, "/api/v1/policy/daily-tx-limit", map[string]any{"limit": 0})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPolicy_SetAddressLists(t *testing.T) {
	d := setupRouter(t)
	addrs := []string{testRecipient}

	d.policy.EXPECT().SetAllowedAddresses(gomock.Any(), testUser, addrs).Return(domain.DefaultPolicy(), nil)
	w := d.do(t, http.MethodPut, "/api/v1/policy/allowed-addresses", dto.AddressListRequest{Addresses: addrs})
	assert.Equal(t, http.StatusOK, w.Code)

	d.policy.EXPECT().SetDeniedAddresses(gomock.Any(), testUser, []string{"0x12"}).
		Return(domain.Policy{}, apperror.ErrInvalidAddress("0x12"))
	w = d.do(t, http.MethodPut, "/api/v1/policy/denied-addresses", dto.AddressListRequest{Addresses: []string{"0x12"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decodeErrorCode(t, w))
}

func TestPolicy_SetAllowedActions(t *testing.T) {
	d := setupRouter(t)
	d.policy.EXPECT().SetAllowedActions(gomock.Any(), testUser, []string{"transfer"}).Return(domain.DefaultPolicy(), nil)

	w := d.do(t, http.MethodPut, "/api/v1/policy/allowed-actions", dto.ActionListRequest{Actions: []string{"transfer"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPolicy_Usage(t *testing.T) {
	d := setupRouter(t)
	d.policy.EXPECT().GetPolicy(gomock.Any(), testUser).Return(domain.DefaultPolicy())
	d.policy.EXPECT().GetDailySpending(testUser).Return(domain.MustParseNative("0.25"))
	d.policy.EXPECT().GetDailyTransactionCount(testUser).Return(3)

	w := d.do(t, http.MethodGet, "/api/v1/policy/usage", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "250000000000000000", data["daily_spent_wei"])
	assert.Equal(t, "750000000000000000", data["remaining_daily_wei"])
	assert.Equal(t, float64(97), data["remaining_daily_txns"])
}

// --- Admin ---

func TestAdminRoutes(t *testing.T) {
	t.Run("disabled without admin addresses", func(t *testing.T) {
		d := setupRouter(t)
		w := d.do(t, http.MethodPost, "/api/v1/admin/risk/blocked-addresses", dto.BlockAddressRequest{Address: testRecipient})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("forbidden for non-admins", func(t *testing.T) {
		d := setupRouter(t, otherUser)
		w := d.do(t, http.MethodPost, "/api/v1/admin/risk/blocked-addresses", dto.BlockAddressRequest{Address: testRecipient})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin manages the blocklist", func(t *testing.T) {
		d := setupRouter(t, testUser)

		d.risk.EXPECT().AddBadAddress(testRecipient)
		w := d.do(t, http.MethodPost, "/api/v1/admin/risk/blocked-addresses", dto.BlockAddressRequest{Address: testRecipient})
		assert.Equal(t, http.StatusCreated, w.Code)

		d.risk.EXPECT().IsBadAddress(testRecipient).Return(true)
		w = d.do(t, http.MethodGet, "/api/v1/admin/risk/blocked-addresses/"+testRecipient, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeData(t, w)["blocked"])

		d.risk.EXPECT().RemoveBadAddress(testRecipient)
		w = d.do(t, http.MethodDelete, "/api/v1/admin/risk/blocked-addresses/"+testRecipient, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = d.do(t, http.MethodDelete, "/api/v1/admin/risk/blocked-addresses/not-an-address", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// --- Docs ---

func TestSwaggerRoutes(t *testing.T) {
	d := setupRouter(t)
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "no document, no routes")

	r := SetupRouter(RouterDeps{OpenAPISpec: []byte("openapi: 3.0.3\n"), Logger: zerolog.Nop()})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/spec", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "openapi: 3.0.3\n", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}
