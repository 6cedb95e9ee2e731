package middleware

import (
	"fmt"
	"net/http"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/labstack/echo/v4"
)

// FeatureMiddleware gates routes behind per-tenant feature entitlements.
type FeatureMiddleware struct {
	featureSvc services.FeatureService
	auditSvc   services.AuditService
}

func NewFeatureMiddleware(featureSvc services.FeatureService, auditSvc services.AuditService) *FeatureMiddleware {
	return &FeatureMiddleware{featureSvc: featureSvc, auditSvc: auditSvc}
}

// RequireFeature rejects the request with an upgrade prompt when the
// resolved tenant does not have the named feature enabled. Denials are
// recorded as PERMISSION_DENIED audit entries (fire-and-forget).
func (m *FeatureMiddleware) RequireFeature(featureName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			tenant, ok := GetTenantFromContext(ctx)
			if !ok {
				return common.SendNotFoundError(c, "Organization")
			}

			if m.featureSvc.HasFeature(ctx, tenant, featureName) {
				return next(c)
			}

			actorID, hasActor := common.GetUserIDFromContext(ctx)
			entry := &models.AuditLog{
				TenantID:   tenant.ID,
				Action:     models.ActionPermissionDenied,
				EntityType: "feature",
				EntityID:   featureName,
				Metadata:   models.JSONB{"path": c.Path(), "plan": tenant.Plan},
			}
			if hasActor {
				entry.UserID = &actorID
			}
			m.auditSvc.Record(ctx, entry)

			details := map[string]string{"current_plan": tenant.Plan}
			message := fmt.Sprintf("The %q feature is not available on your plan", featureName)
			if minPlan, ok := models.MinimumPlanFor(featureName); ok {
				details["minimum_plan"] = minPlan
				message = fmt.Sprintf("The %q feature requires at least the %s plan (current plan: %s)", featureName, minPlan, tenant.Plan)
			}

			return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FEATURE_NOT_AVAILABLE", message, details))
		}
	}
}
