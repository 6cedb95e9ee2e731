package middleware

import (
	"time"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditMiddleware records state-changing HTTP requests as audit entries.
type AuditMiddleware struct {
	auditSvc services.AuditService
}

func NewAuditMiddleware(auditSvc services.AuditService) *AuditMiddleware {
	return &AuditMiddleware{auditSvc: auditSvc}
}

// AuditRequest runs the handler, then records mutating requests (and any
// failed request) against the resolved tenant. Recording is fire-and-forget
// and never alters the handler's outcome.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			ctx := c.Request().Context()
			tenantID, ok := common.GetTenantIDFromContext(ctx)
			if !ok {
				// Nothing to attribute the entry to.
				return err
			}

			method := c.Request().Method
			if !shouldAudit(method, err) {
				return err
			}

			entry := &models.AuditLog{
				TenantID:   tenantID,
				Action:     method + " " + c.Path(),
				EntityType: "http_request",
				EntityID:   c.Path(),
				Metadata: models.JSONB{
					"method":    method,
					"path":      c.Path(),
					"timestamp": time.Now().Format(time.RFC3339),
				},
			}
			if userID, ok := common.GetUserIDFromContext(ctx); ok {
				entry.UserID = &userID
			}
			ip := c.RealIP()
			ua := c.Request().UserAgent()
			entry.IPAddress = &ip
			entry.UserAgent = &ua
			if err != nil {
				entry.Metadata["error"] = err.Error()
			}

			m.auditSvc.Record(ctx, entry)
			return err
		}
	}
}

func shouldAudit(method string, reqErr error) bool {
	if reqErr != nil {
		return true
	}
	switch method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}
