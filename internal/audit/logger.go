package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// Logger persists events into audit_logs and serves them back.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Handle(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		CreatedAt: ev.OccurredAt,
	}

	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			entry.Metadata = datatypes.JSON(b)
		}
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}

type ListFilter struct {
	Action string
	Entity string
	From   *time.Time
	// To is inclusive: the whole day is covered.
	To *time.Time

	Page int
	Size int
}

func (l *Logger) List(ctx context.Context, f ListFilter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if total == 0 {
		return logs, 0, nil
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	err := q.
		Order("created_at DESC").
		Limit(f.Size).
		Offset((page - 1) * f.Size).
		Find(&logs).Error
	return logs, total, err
}
