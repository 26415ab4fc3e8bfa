package handler

import (
	"agent-payment-engine/internal/adapter/http/middleware"
	"agent-payment-engine/internal/core/ports"
	"agent-payment-engine/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	PaymentSvc     ports.PaymentService
	SignatureSvc   ports.SignatureService
	PolicySvc      ports.PolicyService
	RiskSvc        ports.RiskAssessmentService
	HistorySvc     ports.HistoryService
	TokenSvc       ports.TokenService
	RateLimiter    ports.RateLimiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	AdminAddresses []string           // empty = admin routes disabled
	OpenAPISpec    []byte             // nil = no /swagger routes
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", metrics.Handler())

	registerDocs(r, deps.OpenAPISpec)

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.SignatureSvc, deps.PolicySvc, deps.RiskSvc, deps.HistorySvc)
	payments := v1.Group("/payments", jwtAuth)
	{
		payments.POST("/sessions", rl("payments_write"), paymentHandler.StartSession)
		payments.GET("/sessions/:id", rl("payments_read"), paymentHandler.GetSession)
		payments.DELETE("/sessions/:id", rl("payments_write"), paymentHandler.EndSession)
		payments.POST("/prepare", rl("payments_write"), paymentHandler.Prepare)
		payments.POST("/sign", rl("payments_write"), paymentHandler.Sign)
		payments.POST("/verify", rl("payments_read"), paymentHandler.Verify)
		payments.POST("/execute", rl("payments_write"), paymentHandler.Execute)
		payments.POST("/preview", rl("payments_read"), paymentHandler.Preview)
		payments.POST("/risk", rl("payments_read"), paymentHandler.AssessRisk)
		payments.GET("/history", rl("payments_read"), paymentHandler.History)
		payments.GET("/stats", rl("payments_read"), paymentHandler.Stats)
	}

	policyHandler := NewPolicyHandler(deps.PolicySvc)
	policy := v1.Group("/policy", jwtAuth, rl("policy"))
	{
		policy.GET("", policyHandler.Get)
		policy.GET("/usage", policyHandler.Usage)
		policy.PUT("/spending-limit", policyHandler.SetSpendingLimit)
		policy.PUT("/single-tx-limit", policyHandler.SetSingleTxLimit)
		policy.PUT("/daily-tx-limit", policyHandler.SetDailyTxLimit)
		policy.PUT("/allowed-addresses", policyHandler.SetAllowedAddresses)
		policy.PUT("/denied-addresses", policyHandler.SetDeniedAddresses)
		policy.PUT("/allowed-actions", policyHandler.SetAllowedActions)
	}

	// --- Operator routes ---
	if len(deps.AdminAddresses) > 0 {
		adminHandler := NewAdminHandler(deps.RiskSvc)
		admin := v1.Group("/admin/risk", jwtAuth, middleware.AdminOnly(deps.AdminAddresses), rl("admin"))
		{
			admin.POST("/blocked-addresses", adminHandler.BlockAddress)
			admin.GET("/blocked-addresses/:address", adminHandler.CheckAddress)
			admin.DELETE("/blocked-addresses/:address", adminHandler.UnblockAddress)
		}
	}

	return r
}
