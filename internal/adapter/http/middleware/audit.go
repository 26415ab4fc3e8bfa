package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"agent-payment-engine/internal/core/domain"
	"agent-payment-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// Routes are matched by their registered pattern.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.Param("address")
		}

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       UserID(c),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/auth/login" && method == http.MethodPost:
		return domain.AuditActionLogin, "session"
	case route == "/api/v1/payments/sessions" && method == http.MethodPost:
		return domain.AuditActionSessionStart, "payment_session"
	case route == "/api/v1/payments/sessions/:id" && method == http.MethodDelete:
		return domain.AuditActionSessionEnd, "payment_session"
	case route == "/api/v1/payments/sign" && method == http.MethodPost:
		return domain.AuditActionPaymentSign, "payment"
	case route == "/api/v1/payments/execute" && method == http.MethodPost:
		return domain.AuditActionPaymentExecute, "payment"
	case strings.HasPrefix(route, "/api/v1/policy/") && method == http.MethodPut:
		return domain.AuditActionPolicyUpdate, "policy"
	case strings.HasPrefix(route, "/api/v1/admin/risk/blocked-addresses"):
		return domain.AuditActionRiskBlocklist, "risk_blocklist"
	}
	return "", ""
}
