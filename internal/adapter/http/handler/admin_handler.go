package handler

import (
	"strings"

	"agent-payment-engine/internal/adapter/http/dto"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/pkg/apperror"
	"agent-payment-engine/pkg/response"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AdminHandler manages the risk blocklist.
type AdminHandler struct {
	riskSvc ports.RiskAssessmentService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(riskSvc ports.RiskAssessmentService) *AdminHandler {
	return &AdminHandler{riskSvc: riskSvc}
}

// BlockAddress handles POST /api/v1/admin/risk/blocked-addresses.
func (h *AdminHandler) BlockAddress(c *gin.Context) {
	var req dto.BlockAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	h.riskSvc.AddBadAddress(req.Address)
	response.Created(c, gin.H{"address": strings.ToLower(req.Address), "blocked": true})
}

// UnblockAddress handles DELETE /api/v1/admin/risk/blocked-addresses/:address.
func (h *AdminHandler) UnblockAddress(c *gin.Context) {
	addr := c.Param("address")
	if !common.IsHexAddress(addr) {
		response.Error(c, apperror.ErrInvalidAddress(addr))
		return
	}
	h.riskSvc.RemoveBadAddress(addr)
	response.NoContent(c)
}

// CheckAddress handles GET /api/v1/admin/risk/blocked-addresses/:address.
func (h *AdminHandler) CheckAddress(c *gin.Context) {
	addr := c.Param("address")
	if !common.IsHexAddress(addr) {
		response.Error(c, apperror.ErrInvalidAddress(addr))
		return
	}
	response.OK(c, gin.H{"address": strings.ToLower(addr), "blocked": h.riskSvc.IsBadAddress(addr)})
}
