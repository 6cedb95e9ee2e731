package handlers

import (
	"net/http"
	"time"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers exposes the audit query surface
type AuditLogsHandlers struct {
	auditService services.AuditService
}

func NewAuditLogsHandlers(auditService services.AuditService) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditService: auditService}
}

// ListAuditLogsRequest represents audit query parameters
type ListAuditLogsRequest struct {
	UserID     string `query:"user_id"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// ListAuditLogs returns filtered audit entries newest first with a total count
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	var req ListAuditLogsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	filters := &models.AuditLogFilters{}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return common.SendValidationError(c, "user_id", "must be a valid UUID")
		}
		filters.UserID = &userID
	}
	if req.Action != "" {
		filters.Action = &req.Action
	}
	if req.EntityType != "" {
		filters.EntityType = &req.EntityType
	}
	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return common.SendValidationError(c, "start_date", "must be an RFC 3339 timestamp")
		}
		filters.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return common.SendValidationError(c, "end_date", "must be an RFC 3339 timestamp")
		}
		filters.EndDate = &end
	}
	if filters.StartDate != nil && filters.EndDate != nil {
		if err := common.ValidateDateRange(*filters.StartDate, *filters.EndDate); err != nil {
			return common.SendClientError(c, err.Error())
		}
	}

	entries, total, err := h.auditService.Query(c.Request().Context(), tenantID, filters, req.Limit, req.Offset)
	if err != nil {
		c.Logger().Errorf("failed to query audit logs: %v", err)
		return common.SendServerError(c, "Failed to query audit logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
		"limit":   req.Limit,
		"offset":  req.Offset,
	})
}

// GetSuspiciousActivity returns last-24h heuristic counts for the tenant
func (h *AuditLogsHandlers) GetSuspiciousActivity(c echo.Context) error {
	tenantID, ok := common.GetTenantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	report, err := h.auditService.DetectSuspicious(c.Request().Context(), tenantID)
	if err != nil {
		c.Logger().Errorf("failed to scan audit activity: %v", err)
		return common.SendServerError(c, "Failed to scan audit activity")
	}

	return c.JSON(http.StatusOK, report)
}
