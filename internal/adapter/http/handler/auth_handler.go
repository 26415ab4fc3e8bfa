package handler

import (
	"strings"

	"agent-payment-engine/internal/adapter/http/dto"
	"agent-payment-engine/internal/adapter/http/middleware"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/pkg/apperror"
	"agent-payment-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/v1/auth/login. The wallet proves control of the
// address by signing the login message; the token's subject is that address.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	login := ports.LoginRequest{Address: req.Address, Timestamp: req.Timestamp, Signature: req.Signature}
	token, expiry, err := h.authSvc.Login(c.Request.Context(), login)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet := strings.ToLower(req.Address)
	// Login is public, so the audit middleware learns the caller here.
	c.Set(middleware.CtxUserID, wallet)
	response.OK(c, dto.LoginResponse{
		Address:   wallet,
		Token:     token,
		TokenType: "Bearer",
		Expiry:    expiry.Unix(),
	})
}
