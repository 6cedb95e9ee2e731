package handlers

import (
	"net/http"

	"roomly/internal/common"
	"roomly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingHandlers handles booking HTTP requests
type BookingHandlers struct {
	bookingService services.BookingService
}

func NewBookingHandlers(bookingService services.BookingService) *BookingHandlers {
	return &BookingHandlers{bookingService: bookingService}
}

// CreateBookingRequest represents the booking creation payload
type CreateBookingRequest struct {
	RoomID    string `json:"room_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	roomID, err := common.ValidateUUID(req.RoomID, "room_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	booking, err := h.bookingService.Create(ctx, &services.CreateBookingRequest{
		TenantID:  tenantID,
		RoomID:    roomID,
		UserID:    userID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Room")
		}
		if common.IsConflict(err) {
			return common.SendConflictError(c, "The room is already booked for that time", nil)
		}
		if errorIsValidation(err) {
			return common.SendClientError(c, err.Error())
		}
		c.Logger().Errorf("failed to create booking: %v", err)
		return common.SendServerError(c, "Failed to create booking")
	}

	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandlers) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	bookingID, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	booking, err := h.bookingService.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Booking")
		}
		c.Logger().Errorf("failed to get booking: %v", err)
		return common.SendServerError(c, "Failed to load booking")
	}

	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) CancelBooking(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	bookingID, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}

	if err := h.bookingService.Cancel(ctx, tenantID, bookingID, actorID); err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Booking")
		}
		c.Logger().Errorf("failed to cancel booking: %v", err)
		return common.SendServerError(c, "Failed to cancel booking")
	}

	return c.NoContent(http.StatusNoContent)
}

// ListBookingsRequest represents query parameters for listing bookings
type ListBookingsRequest struct {
	RoomID string `query:"room_id"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *BookingHandlers) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	var req ListBookingsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	var roomID *uuid.UUID
	if req.RoomID != "" {
		id, err := common.ValidateUUID(req.RoomID, "room_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		roomID = &id
	}

	bookings, err := h.bookingService.List(ctx, tenantID, roomID, req.Limit, req.Offset)
	if err != nil {
		c.Logger().Errorf("failed to list bookings: %v", err)
		return common.SendServerError(c, "Failed to list bookings")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}
