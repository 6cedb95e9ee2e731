package handlers

import (
	"net/http"

	"roomly/internal/common"
	"roomly/internal/middleware"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FeatureHandlers handles feature entitlement HTTP requests
type FeatureHandlers struct {
	featureService services.FeatureService
	auditService   services.AuditService
}

func NewFeatureHandlers(featureService services.FeatureService, auditService services.AuditService) *FeatureHandlers {
	return &FeatureHandlers{
		featureService: featureService,
		auditService:   auditService,
	}
}

// ListDefinedFeatures returns the global feature catalog
func (h *FeatureHandlers) ListDefinedFeatures(c echo.Context) error {
	features, err := h.featureService.ListDefined(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("failed to list features: %v", err)
		return common.SendServerError(c, "Failed to list features")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"features": features})
}

// ListTenantFeatures returns the resolved tenant's feature associations
func (h *FeatureHandlers) ListTenantFeatures(c echo.Context) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	associations, err := h.featureService.ListForTenant(c.Request().Context(), tenantID)
	if err != nil {
		c.Logger().Errorf("failed to list tenant features: %v", err)
		return common.SendServerError(c, "Failed to list features")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"features": associations})
}

// CheckFeature answers whether a single feature is enabled for the tenant
func (h *FeatureHandlers) CheckFeature(c echo.Context) error {
	ctx := c.Request().Context()
	tenant, ok := middleware.GetTenantFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	featureName := c.Param("name")
	if featureName == "" {
		return common.SendClientError(c, "Feature name is required")
	}

	enabled := h.featureService.HasFeature(ctx, tenant, featureName)

	resp := map[string]interface{}{
		"feature": featureName,
		"enabled": enabled,
	}
	if enabled {
		settings, err := h.featureService.GetFeatureSettings(ctx, tenant, featureName)
		if err == nil && settings != nil {
			resp["settings"] = settings
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// EnableFeatureRequest represents a feature toggle payload
type EnableFeatureRequest struct {
	Settings models.JSONB `json:"settings"`
}

// EnableFeature turns a feature on for the resolved tenant (idempotent)
func (h *FeatureHandlers) EnableFeature(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	featureName := c.Param("name")
	if featureName == "" {
		return common.SendClientError(c, "Feature name is required")
	}

	var req EnableFeatureRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.featureService.Enable(ctx, tenantID, featureName, req.Settings); err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Feature")
		}
		c.Logger().Errorf("failed to enable feature %s: %v", featureName, err)
		return common.SendServerError(c, "Failed to enable feature")
	}

	h.recordToggle(c, tenantID, featureName, true)
	return c.JSON(http.StatusOK, map[string]interface{}{"feature": featureName, "enabled": true})
}

// DisableFeature turns a feature off, preserving its settings
func (h *FeatureHandlers) DisableFeature(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	featureName := c.Param("name")
	if featureName == "" {
		return common.SendClientError(c, "Feature name is required")
	}

	if err := h.featureService.Disable(ctx, tenantID, featureName); err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Feature")
		}
		c.Logger().Errorf("failed to disable feature %s: %v", featureName, err)
		return common.SendServerError(c, "Failed to disable feature")
	}

	h.recordToggle(c, tenantID, featureName, false)
	return c.JSON(http.StatusOK, map[string]interface{}{"feature": featureName, "enabled": false})
}

func (h *FeatureHandlers) recordToggle(c echo.Context, tenantID uuid.UUID, featureName string, enabled bool) {
	ctx := c.Request().Context()

	entry := &models.AuditLog{
		TenantID:   tenantID,
		Action:     models.ActionUpdate,
		EntityType: "feature",
		EntityID:   featureName,
		Metadata:   models.JSONB{"enabled": enabled},
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		entry.UserID = &userID
	}
	h.auditService.Record(ctx, entry)
}
