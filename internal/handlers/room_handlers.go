package handlers

import (
	"net/http"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RoomHandlers handles room management HTTP requests
type RoomHandlers struct {
	roomService services.RoomService
}

func NewRoomHandlers(roomService services.RoomService) *RoomHandlers {
	return &RoomHandlers{roomService: roomService}
}

// CreateRoomRequest represents the room creation payload
type CreateRoomRequest struct {
	Name      string       `json:"name" validate:"required"`
	Location  *string      `json:"location"`
	Capacity  int          `json:"capacity"`
	Amenities models.JSONB `json:"amenities"`
}

func (h *RoomHandlers) CreateRoom(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	var req CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	createReq := &services.CreateRoomRequest{
		TenantID:  tenantID,
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Amenities: req.Amenities,
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		createReq.ActorID = &userID
	}

	room, err := h.roomService.Create(ctx, createReq)
	if err != nil {
		if errorIsValidation(err) {
			return common.SendClientError(c, err.Error())
		}
		c.Logger().Errorf("failed to create room: %v", err)
		return common.SendServerError(c, "Failed to create room")
	}

	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandlers) GetRoom(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	roomID, err := common.ValidateUUID(c.Param("id"), "room id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	room, err := h.roomService.GetByID(ctx, tenantID, roomID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Room")
		}
		c.Logger().Errorf("failed to get room: %v", err)
		return common.SendServerError(c, "Failed to load room")
	}

	return c.JSON(http.StatusOK, room)
}

// UpdateRoomRequest represents the room update payload
type UpdateRoomRequest struct {
	Name      *string      `json:"name"`
	Location  *string      `json:"location"`
	Capacity  *int         `json:"capacity"`
	Amenities models.JSONB `json:"amenities"`
	Status    *string      `json:"status"`
}

func (h *RoomHandlers) UpdateRoom(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	roomID, err := common.ValidateUUID(c.Param("id"), "room id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	updateReq := &services.UpdateRoomRequest{
		TenantID:  tenantID,
		ID:        roomID,
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Amenities: req.Amenities,
		Status:    req.Status,
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		updateReq.ActorID = &userID
	}

	room, err := h.roomService.Update(ctx, updateReq)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Room")
		}
		if errorIsValidation(err) {
			return common.SendClientError(c, err.Error())
		}
		c.Logger().Errorf("failed to update room: %v", err)
		return common.SendServerError(c, "Failed to update room")
	}

	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandlers) DeleteRoom(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	roomID, err := common.ValidateUUID(c.Param("id"), "room id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var actorID *uuid.UUID
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		actorID = &userID
	}

	err = h.roomService.Delete(ctx, tenantID, roomID, actorID)
	if err != nil {
		if common.IsNotFound(err) {
			return common.SendNotFoundError(c, "Room")
		}
		c.Logger().Errorf("failed to delete room: %v", err)
		return common.SendServerError(c, "Failed to delete room")
	}

	return c.NoContent(http.StatusNoContent)
}

// ListRoomsRequest represents query parameters for listing rooms
type ListRoomsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *RoomHandlers) ListRooms(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return common.SendNotFoundError(c, "Organization")
	}

	var req ListRoomsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	rooms, err := h.roomService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		c.Logger().Errorf("failed to list rooms: %v", err)
		return common.SendServerError(c, "Failed to list rooms")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"rooms":  rooms,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}
