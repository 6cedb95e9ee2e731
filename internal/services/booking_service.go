package services

import (
	"context"
	"fmt"

	"roomly/internal/common"
	"roomly/internal/models"
	"roomly/internal/repositories"

	"github.com/google/uuid"
)

type BookingService interface {
	Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID, actorID *uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, roomID *uuid.UUID, limit, offset int) ([]*models.Booking, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	roomRepo    repositories.RoomRepository
	auditSvc    AuditService
}

func NewBookingService(bookingRepo repositories.BookingRepository, roomRepo repositories.RoomRepository, auditSvc AuditService) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		auditSvc:    auditSvc,
	}
}

type CreateBookingRequest struct {
	TenantID  uuid.UUID `json:"-"`
	RoomID    uuid.UUID `json:"room_id"`
	UserID    uuid.UUID `json:"-"`
	Title     string    `json:"title" validate:"required"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

func (s *bookingService) Create(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	start, err := common.ParseTimestamp(req.StartTime, "start_time")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	end, err := common.ParseTimestamp(req.EndTime, "end_time")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end_time must be after start_time: %w", common.ErrValidation)
	}

	room, err := s.roomRepo.GetByID(ctx, req.TenantID, req.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusAvailable {
		return nil, fmt.Errorf("room %q is not available for booking: %w", room.Name, common.ErrValidation)
	}

	overlap, err := s.bookingRepo.HasOverlap(ctx, req.TenantID, req.RoomID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, fmt.Errorf("room is already booked for that time: %w", common.ErrConflict)
	}

	booking := &models.Booking{
		ID:        uuid.New(),
		TenantID:  req.TenantID,
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		Title:     req.Title,
		StartTime: start,
		EndTime:   end,
		Status:    models.BookingStatusConfirmed,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   booking.TenantID,
		UserID:     &req.UserID,
		Action:     models.ActionCreate,
		EntityType: "booking",
		EntityID:   booking.ID.String(),
		Metadata: models.JSONB{
			"room_id": booking.RoomID.String(),
			"start":   booking.StartTime,
			"end":     booking.EndTime,
		},
	})

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, tenantID, id)
}

func (s *bookingService) Cancel(ctx context.Context, tenantID, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.bookingRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.bookingRepo.Cancel(ctx, tenantID, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, &models.AuditLog{
		TenantID:   tenantID,
		UserID:     actorID,
		Action:     models.ActionUpdate,
		EntityType: "booking",
		EntityID:   id.String(),
		Metadata:   models.JSONB{"status": models.BookingStatusCancelled},
	})

	return nil
}

func (s *bookingService) List(ctx context.Context, tenantID uuid.UUID, roomID *uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.bookingRepo.List(ctx, tenantID, roomID, limit, offset)
}
