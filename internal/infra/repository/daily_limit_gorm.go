package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointment-services/internal/domain/capacity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type DailyLimitGormRepository struct {
	db *gorm.DB
}

func NewDailyLimitGormRepository(db *gorm.DB) *DailyLimitGormRepository {
	return &DailyLimitGormRepository{db: db}
}

func dailyLimitNotFound(id uuid.UUID) error {
	return httperr.ErrNotFound("admin_daily_limit_not_found", "admin daily limit with id %s not found", id)
}

func (r *DailyLimitGormRepository) Create(ctx context.Context, l *models.AdminDailyLimit) error {
	return translate("create daily limit", conn(ctx, r.db).Create(l).Error, nil)
}

func (r *DailyLimitGormRepository) Update(ctx context.Context, l *models.AdminDailyLimit) error {
	res := conn(ctx, r.db).
		Model(&models.AdminDailyLimit{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"week_day":    l.WeekDay,
			"daily_limit": l.Limit,
		})
	if res.Error != nil {
		return translate("update daily limit", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return dailyLimitNotFound(l.ID)
	}
	return nil
}

func (r *DailyLimitGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&models.AdminDailyLimit{})
	if res.Error != nil {
		return translate("delete daily limit", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return dailyLimitNotFound(id)
	}
	return nil
}

func (r *DailyLimitGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminDailyLimit, error) {
	var l models.AdminDailyLimit
	if err := conn(ctx, r.db).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, translate("get daily limit", err, dailyLimitNotFound(id))
	}
	return &l, nil
}

func (r *DailyLimitGormRepository) GetByWeekDay(
	ctx context.Context,
	adminID uuid.UUID,
	day capacity.WeekDay,
) (*models.AdminDailyLimit, error) {
	return r.findByWeekDay(conn(ctx, r.db), adminID, day)
}

func (r *DailyLimitGormRepository) GetByWeekDayForUpdate(
	ctx context.Context,
	adminID uuid.UUID,
	day capacity.WeekDay,
) (*models.AdminDailyLimit, error) {
	return r.findByWeekDay(
		conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}),
		adminID,
		day,
	)
}

func (r *DailyLimitGormRepository) findByWeekDay(
	q *gorm.DB,
	adminID uuid.UUID,
	day capacity.WeekDay,
) (*models.AdminDailyLimit, error) {

	var l models.AdminDailyLimit
	err := q.
		Where("admin_id = ? AND week_day = ?", adminID, string(day)).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("get daily limit by week day", err, nil)
	}
	return &l, nil
}

func (r *DailyLimitGormRepository) ListByAdmin(
	ctx context.Context,
	adminID uuid.UUID,
) ([]models.AdminDailyLimit, error) {

	var limits []models.AdminDailyLimit
	if err := conn(ctx, r.db).
		Where("admin_id = ?", adminID).
		Order("week_day ASC").
		Find(&limits).Error; err != nil {
		return nil, translate("list daily limits", err, nil)
	}
	return limits, nil
}

// Compile-time check
var _ capacity.Repository = (*DailyLimitGormRepository)(nil)
