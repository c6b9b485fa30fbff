package models

import "time"

// AuditLog records an admin action performed through the gateway.
// Reservations and the rest of the agenda live in the backend; only the
// trail of who did what from here is stored locally.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     *uint  `json:"user_id"`
	ActorEmail string `gorm:"size:150" json:"actor_email"`
	Action     string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
