package models

import (
	"time"

	"github.com/google/uuid"
)

// Room statuses
const (
	RoomStatusAvailable   = "available"
	RoomStatusMaintenance = "maintenance"
	RoomStatusRetired     = "retired"
)

type Room struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location" db:"location"`
	Capacity  int       `json:"capacity" db:"capacity"`
	Amenities JSONB     `json:"amenities" db:"amenities"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
