package handlers

import (
	"net/http"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers handles organization-level HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

// CreateTenantRequest represents the organization signup payload
type CreateTenantRequest struct {
	Name     string       `json:"name" validate:"required"`
	Slug     string       `json:"slug" validate:"required"`
	Domain   *string      `json:"domain"`
	Plan     string       `json:"plan"`
	Settings models.JSONB `json:"settings"`
}

// CreateTenant handles organization signup
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	createReq := &services.CreateTenantRequest{
		Name:     req.Name,
		Slug:     req.Slug,
		Domain:   req.Domain,
		Plan:     req.Plan,
		Settings: req.Settings,
	}
	if userID, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
		createReq.ActorID = &userID
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), createReq)
	if err != nil {
		if common.IsConflict(err) {
			return common.SendConflictError(c, "An organization with that slug or domain already exists", map[string]string{
				"suggested_slug": h.tenantService.SuggestSlug(req.Slug),
			})
		}
		if errorIsValidation(err) {
			return common.SendClientError(c, err.Error())
		}
		c.Logger().Errorf("failed to create tenant: %v", err)
		return common.SendServerError(c, "Failed to create organization")
	}

	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant returns organization details by ID
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), tenantID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Organization")
		}
		c.Logger().Errorf("failed to get tenant: %v", err)
		return common.SendServerError(c, "Failed to load organization")
	}

	return c.JSON(http.StatusOK, tenant)
}

// GetCurrentTenant returns the tenant resolved for this request
func (h *TenantHandlers) GetCurrentTenant(c echo.Context) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), tenantID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Organization")
		}
		c.Logger().Errorf("failed to get current tenant: %v", err)
		return common.SendServerError(c, "Failed to load organization")
	}

	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenantRequest represents the organization update payload
type UpdateTenantRequest struct {
	Name     *string      `json:"name"`
	Domain   *string      `json:"domain"`
	Plan     *string      `json:"plan"`
	Settings models.JSONB `json:"settings"`
	Status   *string      `json:"status"`
}

// UpdateTenant handles organization updates (settings, plan, domain, status)
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	updateReq := &services.UpdateTenantRequest{
		ID:       tenantID,
		Name:     req.Name,
		Domain:   req.Domain,
		Plan:     req.Plan,
		Settings: req.Settings,
		Status:   req.Status,
	}
	if userID, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
		updateReq.ActorID = &userID
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), updateReq)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Organization")
		}
		if common.IsConflict(err) {
			return common.SendConflictError(c, "That domain is already in use", nil)
		}
		if errorIsValidation(err) {
			return common.SendClientError(c, err.Error())
		}
		c.Logger().Errorf("failed to update tenant: %v", err)
		return common.SendServerError(c, "Failed to update organization")
	}

	return c.JSON(http.StatusOK, tenant)
}

// ListTenantsRequest represents query parameters for listing organizations
type ListTenantsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListTenants handles listing organizations (platform admin surface)
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	var req ListTenantsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	tenants, err := h.tenantService.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.Logger().Errorf("failed to list tenants: %v", err)
		return common.SendServerError(c, "Failed to list organizations")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"limit":   req.Limit,
		"offset":  req.Offset,
	})
}
