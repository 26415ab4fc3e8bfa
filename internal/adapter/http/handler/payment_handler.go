package handler

import (
	"net/http"
	"strings"

	"agent-payment-engine/internal/adapter/http/dto"
	"agent-payment-engine/internal/adapter/http/middleware"
	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/pkg/apperror"
	"agent-payment-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the payment lifecycle endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
	signer     ports.SignatureService
	policySvc  ports.PolicyService
	riskSvc    ports.RiskAssessmentService
	historySvc ports.HistoryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	paymentSvc ports.PaymentService,
	signer ports.SignatureService,
	policySvc ports.PolicyService,
	riskSvc ports.RiskAssessmentService,
	historySvc ports.HistoryService,
) *PaymentHandler {
	return &PaymentHandler{
		paymentSvc: paymentSvc,
		signer:     signer,
		policySvc:  policySvc,
		riskSvc:    riskSvc,
		historySvc: historySvc,
	}
}

// StartSession handles POST /api/v1/payments/sessions.
func (h *PaymentHandler) StartSession(c *gin.Context) {
	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	session, err := h.paymentSvc.InitializePaymentSession(c.Request.Context(),
		middleware.UserID(c), domain.ActionKind(strings.ToLower(req.Action)))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GetSession handles GET /api/v1/payments/sessions/:id.
func (h *PaymentHandler) GetSession(c *gin.Context) {
	session, ok := h.ownSession(c)
	if !ok {
		return
	}
	response.OK(c, session)
}

// EndSession handles DELETE /api/v1/payments/sessions/:id.
func (h *PaymentHandler) EndSession(c *gin.Context) {
	if _, ok := h.ownSession(c); !ok {
		return
	}
	if err := h.paymentSvc.EndSession(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Sessions of other users are reported as missing.
func (h *PaymentHandler) ownSession(c *gin.Context) (*domain.PaymentSession, bool) {
	session, err := h.paymentSvc.GetSession(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if !strings.EqualFold(session.UserID, middleware.UserID(c)) {
		response.Error(c, apperror.ErrSessionNotFound())
		return nil, false
	}
	return session, true
}

// Prepare handles POST /api/v1/payments/prepare.
func (h *PaymentHandler) Prepare(c *gin.Context) {
	var req dto.PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	prepared, err := h.paymentSvc.PreparePayment(c.Request.Context(), ports.PrepareRequest{
		UserID:    middleware.UserID(c),
		Action:    domain.ActionKind(strings.ToLower(req.Action)),
		Amount:    req.Amount,
		Recipient: req.Recipient,
		Token:     req.Token,
		Data:      req.Data,
		Metadata:  req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, prepared)
}

// Sign handles POST /api/v1/payments/sign. Only compliant intents are signed.
func (h *PaymentHandler) Sign(c *gin.Context) {
	var req dto.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	intent, ok := ownIntent(c, req.Payment)
	if !ok {
		return
	}

	compliance := h.policySvc.CheckPolicyCompliance(c.Request.Context(), intent, intent.User)
	if !compliance.Compliant {
		response.Error(c, apperror.ErrPolicyViolation(compliance.Violations))
		return
	}

	signed, err := h.signer.GeneratePaymentSignature(intent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, signed)
}

// Verify handles POST /api/v1/payments/verify. A rejected intent is a 422 with the reason.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.SignedIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	intent, ok := ownIntent(c, req.Payment)
	if !ok {
		return
	}

	result := h.paymentSvc.VerifyPayment(c.Request.Context(), req.Signature, intent)
	status := http.StatusOK
	if !result.Verified {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result)
}

// Execute handles POST /api/v1/payments/execute.
func (h *PaymentHandler) Execute(c *gin.Context) {
	var req dto.SignedIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	intent, ok := ownIntent(c, req.Payment)
	if !ok {
		return
	}

	payment, err := h.paymentSvc.ExecutePayment(c.Request.Context(), req.Signature, intent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payment)
}

// Preview handles POST /api/v1/payments/preview.
func (h *PaymentHandler) Preview(c *gin.Context) {
	var req dto.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	intent, ok := ownIntent(c, req.Payment)
	if !ok {
		return
	}

	preview, err := h.paymentSvc.GetPaymentPreview(c.Request.Context(), intent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, preview)
}

// AssessRisk handles POST /api/v1/payments/risk.
func (h *PaymentHandler) AssessRisk(c *gin.Context) {
	var req dto.RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := domain.ParseNative(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount(req.Amount))
		return
	}
	user := middleware.UserID(c)
	from := req.From
	if from == "" {
		from = user
	}

	assessment, err := h.riskSvc.AssessTransaction(c.Request.Context(), domain.TransactionContext{
		UserID:    user,
		From:      from,
		Recipient: req.Recipient,
		Amount:    amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assessment)
}

// History handles GET /api/v1/payments/history.
func (h *PaymentHandler) History(c *gin.Context) {
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	filter := domain.PaymentFilter{
		UserID:    middleware.UserID(c),
		Recipient: q.Recipient,
		Limit:     q.Limit,
	}
	if q.Status != "" {
		status := domain.PaymentStatus(q.Status)
		filter.Status = &status
	}

	payments, err := h.historySvc.ListPayments(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, dto.NewPaymentResponse(p))
	}
	response.OK(c, dto.PaymentListResponse{Items: items, Count: len(items)})
}

// Stats handles GET /api/v1/payments/stats.
func (h *PaymentHandler) Stats(c *gin.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	stats, err := h.historySvc.GetStats(c.Request.Context(), middleware.UserID(c), q.Period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// ownIntent binds an intent to the caller. An empty user is filled in;
// an intent for another user is forbidden.
func ownIntent(c *gin.Context, intent *domain.PaymentIntent) (domain.PaymentIntent, bool) {
	caller := middleware.UserID(c)
	out := *intent
	if out.User == "" {
		out.User = caller
	}
	if !strings.EqualFold(out.User, caller) {
		response.Error(c, apperror.ErrForbidden())
		return domain.PaymentIntent{}, false
	}
	return out, true
}
