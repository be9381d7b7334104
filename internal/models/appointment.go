package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Date   datatypes.Date `gorm:"not null;index" json:"date"`
	Status string         `gorm:"type:appointment_status;not null;default:'pending';index" json:"status"`

	CancelReason *string    `gorm:"size:255" json:"cancel_reason"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *User     `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AdminID *uuid.UUID `gorm:"type:uuid;index" json:"admin_id"`
	Admin   *User      `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// PreferredAdminID is the admin the client asked for. Capacity is
	// reserved against this admin until someone confirms.
	PreferredAdminID *uuid.UUID `gorm:"type:uuid;index" json:"preferred_admin_id"`
	PreferredAdmin   *User      `gorm:"foreignKey:PreferredAdminID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	// Version is bumped by every write; conditional updates match on it.
	Version int `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	for i := range a.Services {
		a.Services[i].AppointmentID = a.ID
	}
	return nil
}

func (a *Appointment) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Services))
	for _, s := range a.Services {
		ids = append(ids, s.ServiceID)
	}
	return ids
}

// AppointmentService links an appointment to one catalog service.
type AppointmentService struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ServiceID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`
	Service       *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`
}
