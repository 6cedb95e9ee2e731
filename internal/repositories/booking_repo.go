package repositories

import (
	"context"
	"time"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, roomID *uuid.UUID, limit, offset int) ([]*models.Booking, error)
	// HasOverlap reports whether any confirmed booking for the room
	// intersects the [start, end) interval.
	HasOverlap(ctx context.Context, tenantID, roomID uuid.UUID, start, end time.Time) (bool, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = "id, tenant_id, room_id, user_id, title, start_time, end_time, status, created_at, updated_at"

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, tenant_id, room_id, user_id, title, start_time, end_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.TenantID, booking.RoomID, booking.UserID, booking.Title, booking.StartTime, booking.EndTime, booking.Status)
	return mapError(err)
}

func (r *bookingRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&booking.ID, &booking.TenantID, &booking.RoomID, &booking.UserID, &booking.Title,
		&booking.StartTime, &booking.EndTime, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return booking, nil
}

func (r *bookingRepo) Cancel(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND status != $1
	`
	_, err := r.db.Exec(ctx, query, models.BookingStatusCancelled, tenantID, id)
	return mapError(err)
}

func (r *bookingRepo) List(ctx context.Context, tenantID uuid.UUID, roomID *uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1`
	args := []any{tenantID}

	if roomID != nil {
		query += ` AND room_id = $2 ORDER BY start_time DESC LIMIT $3 OFFSET $4`
		args = append(args, *roomID, limit, offset)
	} else {
		query += ` ORDER BY start_time DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(&booking.ID, &booking.TenantID, &booking.RoomID, &booking.UserID, &booking.Title, &booking.StartTime, &booking.EndTime, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) HasOverlap(ctx context.Context, tenantID, roomID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE tenant_id = $1 AND room_id = $2 AND status = $3
			AND start_time < $4 AND end_time > $5
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, tenantID, roomID, models.BookingStatusConfirmed, end, start).Scan(&exists)
	return exists, err
}
