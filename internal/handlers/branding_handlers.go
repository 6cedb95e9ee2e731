package handlers

import (
	"net/http"
	"time"

	"roomly/internal/common"
	"roomly/internal/services"

	"github.com/labstack/echo/v4"
)

const logoURLExpiry = 15 * time.Minute

// BrandingHandlers handles tenant branding asset requests
type BrandingHandlers struct {
	assetService services.AssetService
}

func NewBrandingHandlers(assetService services.AssetService) *BrandingHandlers {
	return &BrandingHandlers{assetService: assetService}
}

// UploadLogo stores the tenant's logo from a multipart form upload
func (h *BrandingHandlers) UploadLogo(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return common.SendClientError(c, "A logo file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/svg+xml" {
		return common.SendClientError(c, "Logo must be a PNG, JPEG or SVG image")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName, err := h.assetService.UploadLogo(ctx, tenantID, src, fileHeader.Size, contentType)
	if err != nil {
		c.Logger().Errorf("failed to upload logo: %v", err)
		return common.SendServerError(c, "Failed to store logo")
	}

	return c.JSON(http.StatusCreated, map[string]string{"object": objectName})
}

// GetLogo returns a short-lived presigned URL for the tenant's logo
func (h *BrandingHandlers) GetLogo(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	url, err := h.assetService.LogoURL(tenantID, logoURLExpiry)
	if err != nil {
		c.Logger().Errorf("failed to presign logo URL: %v", err)
		return common.SendServerError(c, "Failed to load logo")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DeleteLogo removes the tenant's logo
func (h *BrandingHandlers) DeleteLogo(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	if err := h.assetService.DeleteLogo(ctx, tenantID); err != nil {
		c.Logger().Errorf("failed to delete logo: %v", err)
		return common.SendServerError(c, "Failed to delete logo")
	}

	return c.NoContent(http.StatusNoContent)
}
