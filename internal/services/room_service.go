package services

import (
	"context"
	"fmt"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"

	"github.com/google/uuid"
)

type RoomService interface {
	Create(ctx context.Context, req *CreateRoomRequest) (*models.Room, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Room, error)
	Update(ctx context.Context, req *UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID, actorID *uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Room, error)
}

type roomService struct {
	roomRepo repositories.RoomRepository
	auditSvc AuditService
}

func NewRoomService(roomRepo repositories.RoomRepository, auditSvc AuditService) RoomService {
	return &roomService{roomRepo: roomRepo, auditSvc: auditSvc}
}

type CreateRoomRequest struct {
	TenantID  uuid.UUID    `json:"-"`
	Name      string       `json:"name" validate:"required"`
	Location  *string      `json:"location"`
	Capacity  int          `json:"capacity"`
	Amenities models.JSONB `json:"amenities"`
	ActorID   *uuid.UUID   `json:"-"`
}

type UpdateRoomRequest struct {
	TenantID  uuid.UUID    `json:"-"`
	ID        uuid.UUID    `json:"-"`
	Name      *string      `json:"name"`
	Location  *string      `json:"location"`
	Capacity  *int         `json:"capacity"`
	Amenities models.JSONB `json:"amenities"`
	Status    *string      `json:"status"`
	ActorID   *uuid.UUID   `json:"-"`
}

func (s *roomService) Create(ctx context.Context, req *CreateRoomRequest) (*models.Room, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive: %w", common.ErrValidation)
	}

	room := &models.Room{
		ID:        uuid.New(),
		TenantID:  req.TenantID,
		Name:      req.Name,
		Location:  req.Location,
		Capacity:  req.Capacity,
		Amenities: req.Amenities,
		Status:    models.RoomStatusAvailable,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   room.TenantID,
		UserID:     req.ActorID,
		Action:     models.ActionCreate,
		EntityType: "room",
		EntityID:   room.ID.String(),
		Metadata:   models.JSONB{"name": room.Name, "capacity": room.Capacity},
	})

	return room, nil
}

func (s *roomService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Room, error) {
	return s.roomRepo.GetByID(ctx, tenantID, id)
}

func (s *roomService) Update(ctx context.Context, req *UpdateRoomRequest) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
		}
		room.Name = *req.Name
	}
	if req.Location != nil {
		room.Location = req.Location
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, fmt.Errorf("capacity must be positive: %w", common.ErrValidation)
		}
		room.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if req.Status != nil {
		switch *req.Status {
		case models.RoomStatusAvailable, models.RoomStatusMaintenance, models.RoomStatusRetired:
			room.Status = *req.Status
		default:
			return nil, fmt.Errorf("unknown room status %q: %w", *req.Status, common.ErrValidation)
		}
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   room.TenantID,
		UserID:     req.ActorID,
		Action:     models.ActionUpdate,
		EntityType: "room",
		EntityID:   room.ID.String(),
		Metadata:   models.JSONB{"name": room.Name},
	})

	return room, nil
}

func (s *roomService) Delete(ctx context.Context, tenantID, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.roomRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   tenantID,
		UserID:     actorID,
		Action:     models.ActionDelete,
		EntityType: "room",
		EntityID:   id.String(),
	})

	return nil
}

func (s *roomService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Room, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.roomRepo.List(ctx, tenantID, limit, offset)
}
