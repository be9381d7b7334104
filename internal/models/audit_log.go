package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorID *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"`
	Action  string     `gorm:"size:50;not null;index" json:"action"`

	Entity   string         `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID     `gorm:"type:uuid" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
