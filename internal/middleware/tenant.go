package middleware

import (
	"context"
	"net/http"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TenantHeader carries a pre-resolved tenant id set by an upstream proxy or
// handler, so downstream handlers skip re-resolution.
const TenantHeader = "X-Tenant-ID"

// TenantMiddleware attaches the resolved tenant to the request context.
type TenantMiddleware struct {
	resolver services.TenantResolver
}

func NewTenantMiddleware(resolver services.TenantResolver) *TenantMiddleware {
	return &TenantMiddleware{resolver: resolver}
}

// Resolve determines the request's tenant from, in order of precedence:
// the X-Tenant-ID header, an explicit slug (route param or ?tenant= query),
// then the Host header. An unresolved tenant yields a 404 "organization
// not found" response; a resolution infrastructure failure yields a 500.
func (m *TenantMiddleware) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if header := c.Request().Header.Get(TenantHeader); header != "" {
				tenantID, err := uuid.Parse(header)
				if err != nil {
					return common.SendClientError(c, "Invalid tenant ID header")
				}
				setTenant(c, &models.Tenant{ID: tenantID})
				return next(c)
			}

			explicitSlug := c.Param("slug")
			if explicitSlug == "" {
				explicitSlug = c.QueryParam("tenant")
			}

			tenant, err := m.resolver.Resolve(c.Request().Context(), c.Request().Host, explicitSlug)
			if err != nil {
				c.Logger().Errorf("tenant resolution failed: %v", err)
				return common.SendServerError(c, "Unable to resolve organization")
			}
			if tenant == nil {
				return c.JSON(http.StatusNotFound, common.CreateErrorResponse(
					"ORGANIZATION_NOT_FOUND",
					"No organization matches this address",
					map[string]string{"hint": "check the workspace URL or create a new organization"},
				))
			}
			if tenant.Status == models.TenantStatusSuspended {
				return c.JSON(http.StatusForbidden, common.CreateErrorResponse(
					"ORGANIZATION_SUSPENDED", "This organization is suspended", nil))
			}

			setTenant(c, tenant)
			return next(c)
		}
	}
}

func setTenant(c echo.Context, tenant *models.Tenant) {
	ctx := context.WithValue(c.Request().Context(), common.TenantIDKey, tenant.ID)
	ctx = context.WithValue(ctx, common.TenantKey, tenant)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetTenantFromContext extracts the resolved tenant from the request context
func GetTenantFromContext(ctx context.Context) (*models.Tenant, bool) {
	tenant, ok := ctx.Value(common.TenantKey).(*models.Tenant)
	return tenant, ok
}
