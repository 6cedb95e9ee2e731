package repositories

import (
	"context"

	"roomly/internal/models"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Room, error)
}

type roomRepo struct {
	db Database
}

func NewRoomRepo(db Database) RoomRepository {
	return &roomRepo{db: db}
}

const roomColumns = "id, tenant_id, name, location, capacity, amenities, status, created_at, updated_at"

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, tenant_id, name, location, capacity, amenities, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	amenitiesBytes, err := marshalSettings(room.Amenities)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, room.ID, room.TenantID, room.Name, room.Location, room.Capacity, amenitiesBytes, room.Status)
	return mapError(err)
}

func (r *roomRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Room, error) {
	room := &models.Room{}
	var amenitiesBytes []byte

	query := `SELECT ` + roomColumns + ` FROM rooms WHERE tenant_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&room.ID, &room.TenantID, &room.Name, &room.Location, &room.Capacity, &amenitiesBytes, &room.Status, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if err := unmarshalSettings(amenitiesBytes, &room.Amenities); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepo) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, location = $2, capacity = $3, amenities = $4, status = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`

	amenitiesBytes, err := marshalSettings(room.Amenities)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, query, room.Name, room.Location, room.Capacity, amenitiesBytes, room.Status, room.TenantID, room.ID)
	return mapError(err)
}

func (r *roomRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM rooms WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return mapError(err)
}

func (r *roomRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room := &models.Room{}
		var amenitiesBytes []byte
		if err := rows.Scan(&room.ID, &room.TenantID, &room.Name, &room.Location, &room.Capacity, &amenitiesBytes, &room.Status, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalSettings(amenitiesBytes, &room.Amenities); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
