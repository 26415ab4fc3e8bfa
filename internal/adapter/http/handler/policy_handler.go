package handler

import (
	"context"
	"math/big"

	"agent-payment-engine/internal/adapter/http/dto"
	"agent-payment-engine/internal/adapter/http/middleware"
	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/pkg/apperror"
	"agent-payment-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// PolicyHandler exposes a user's payment policy.
type PolicyHandler struct {
	policySvc ports.PolicyService
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(policySvc ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{policySvc: policySvc}
}

// Get handles GET /api/v1/policy.
func (h *PolicyHandler) Get(c *gin.Context) {
	response.OK(c, h.policySvc.GetPolicy(c.Request.Context(), middleware.UserID(c)))
}

// SetSpendingLimit handles PUT /api/v1/policy/spending-limit.
func (h *PolicyHandler) SetSpendingLimit(c *gin.Context) {
	h.setAmount(c, h.policySvc.SetSpendingLimit)
}

// SetSingleTxLimit handles PUT /api/v1/policy/single-tx-limit.
func (h *PolicyHandler) SetSingleTxLimit(c *gin.Context) {
	h.setAmount(c, h.policySvc.SetSingleTxLimit)
}

func (h *PolicyHandler) setAmount(c *gin.Context, set func(context.Context, string, string) (domain.Policy, error)) {
	var req dto.AmountLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	policy, err := set(c.Request.Context(), middleware.UserID(c), req.Limit)
	respondPolicy(c, policy, err)
}

// SetDailyTxLimit handles PUT /api/v1/policy/daily-tx-limit.
func (h *PolicyHandler) SetDailyTxLimit(c *gin.Context) {
	var req dto.CountLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	policy, err := h.policySvc.SetDailyTxLimit(c.Request.Context(), middleware.UserID(c), *req.Limit)
	respondPolicy(c, policy, err)
}

// SetAllowedAddresses handles PUT /api/v1/policy/allowed-addresses.
func (h *PolicyHandler) SetAllowedAddresses(c *gin.Context) {
	h.setList(c, h.policySvc.SetAllowedAddresses)
}

// SetDeniedAddresses handles PUT /api/v1/policy/denied-addresses.
func (h *PolicyHandler) SetDeniedAddresses(c *gin.Context) {
	h.setList(c, h.policySvc.SetDeniedAddresses)
}

func (h *PolicyHandler) setList(c *gin.Context, set func(context.Context, string, []string) (domain.Policy, error)) {
	var req dto.AddressListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	policy, err := set(c.Request.Context(), middleware.UserID(c), req.Addresses)
	respondPolicy(c, policy, err)
}

// SetAllowedActions handles PUT /api/v1/policy/allowed-actions.
func (h *PolicyHandler) SetAllowedActions(c *gin.Context) {
	var req dto.ActionListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	policy, err := h.policySvc.SetAllowedActions(c.Request.Context(), middleware.UserID(c), req.Actions)
	respondPolicy(c, policy, err)
}

// Usage handles GET /api/v1/policy/usage.
func (h *PolicyHandler) Usage(c *gin.Context) {
	user := middleware.UserID(c)
	policy := h.policySvc.GetPolicy(c.Request.Context(), user)
	spent := h.policySvc.GetDailySpending(user)
	count := h.policySvc.GetDailyTransactionCount(user)

	remaining := new(big.Int)
	if maxDaily, err := domain.ParseWei(policy.MaxDailySpend); err == nil && maxDaily.Cmp(spent) > 0 {
		remaining.Sub(maxDaily, spent)
	}
	remainingTxns := policy.DailyTxLimit - count
	if remainingTxns < 0 {
		remainingTxns = 0
	}

	response.OK(c, dto.PolicyUsageResponse{
		DailySpentWei:      spent.String(),
		DailySpent:         domain.FormatNative(spent),
		DailyTxCount:       count,
		MaxDailySpend:      policy.MaxDailySpend,
		RemainingDailyWei:  remaining.String(),
		RemainingDailyTxns: remainingTxns,
	})
}

func respondPolicy(c *gin.Context, policy domain.Policy, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, policy)
}
