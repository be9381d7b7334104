package capacity

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type Repository interface {
	Create(ctx context.Context, l *models.AdminDailyLimit) error
	Update(ctx context.Context, l *models.AdminDailyLimit) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminDailyLimit, error)

	// GetByWeekDay returns nil, nil when the admin has no limit for day.
	GetByWeekDay(ctx context.Context, adminID uuid.UUID, day WeekDay) (*models.AdminDailyLimit, error)

	// GetByWeekDayForUpdate is GetByWeekDay holding a row lock until the
	// surrounding transaction ends.
	GetByWeekDayForUpdate(ctx context.Context, adminID uuid.UUID, day WeekDay) (*models.AdminDailyLimit, error)

	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.AdminDailyLimit, error)
}
