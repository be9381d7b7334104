package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminDailyLimit caps how many appointments an admin takes on a weekday.
type AdminDailyLimit struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AdminID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_admin_week_day,priority:1" json:"admin_id"`
	Admin   *User     `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	WeekDay string `gorm:"type:week_day;not null;uniqueIndex:uq_admin_week_day,priority:2" json:"week_day"`
	Limit   int    `gorm:"column:daily_limit;not null" json:"limit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *AdminDailyLimit) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
