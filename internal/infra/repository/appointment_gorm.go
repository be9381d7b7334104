package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

const dateLayout = "2006-01-02"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Services.Service").
		Preload("Client")
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) Save(
	ctx context.Context,
	ap *models.Appointment,
) (*models.Appointment, error) {

	if err := conn(ctx, r.db).Create(ap).Error; err != nil {
		return nil, translate("save appointment", err, nil)
	}

	return r.GetByID(ctx, ap.ID)
}

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.withRelations(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translate("get appointment", err, domain.ErrNotFound(id))
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAll(
	ctx context.Context,
	f domain.ListFilter,
) (domain.Page, error) {

	page := domain.Page{Items: []models.Appointment{}, Page: f.Page, Size: f.Size}

	q := conn(ctx, r.db).Model(&models.Appointment{})

	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.AdminID != nil {
		q = q.Where("admin_id = ?", *f.AdminID)
	}
	if f.Unassigned {
		q = q.Where("admin_id IS NULL")
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", f.DateFrom.Format(dateLayout))
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", f.DateTo.Format(dateLayout))
	}

	q = q.Session(&gorm.Session{})

	if err := q.Count(&page.Total).Error; err != nil {
		return domain.Page{}, translate("count appointments", err, nil)
	}
	if page.Total == 0 {
		return page, nil
	}

	if err := q.
		Preload("Services.Service").
		Preload("Client").
		Order("created_at DESC").
		Limit(f.Size).
		Offset(offset(f.Page, f.Size)).
		Find(&page.Items).Error; err != nil {
		return domain.Page{}, translate("list appointments", err, nil)
	}

	return page, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Version,
	replaceServices bool,
) (*models.Appointment, error) {

	write := func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ? AND version = ?", ap.ID, string(from.Status), from.Number).
			Updates(map[string]any{
				"date":          ap.Date,
				"status":        ap.Status,
				"cancel_reason": ap.CancelReason,
				"cancelled_at":  ap.CancelledAt,
				"completed_at":  ap.CompletedAt,
				"updated_at":    ap.UpdatedAt.UTC(),
				"version":       gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.missOrChanged(tx, ap.ID)
		}

		if !replaceServices {
			return nil
		}

		if err := tx.
			Where("appointment_id = ?", ap.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		if len(ap.Services) == 0 {
			return nil
		}

		links := make([]models.AppointmentService, 0, len(ap.Services))
		for _, s := range ap.Services {
			links = append(links, models.AppointmentService{
				AppointmentID: ap.ID,
				ServiceID:     s.ServiceID,
			})
		}
		return tx.Create(&links).Error
	}

	var err error
	if replaceServices {
		err = NewGormTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
			return write(conn(ctx, r.db))
		})
	} else {
		err = write(conn(ctx, r.db))
	}
	if err != nil {
		return nil, translate("update appointment", err, nil)
	}

	return r.GetByID(ctx, ap.ID)
}

// missOrChanged explains a conditional write that matched no row.
func (r *AppointmentGormRepository) missOrChanged(tx *gorm.DB, id uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Appointment{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound(id)
	}
	return domain.ErrChanged(id)
}

func (r *AppointmentGormRepository) ConfirmIfUnassigned(
	ctx context.Context,
	id uuid.UUID,
	adminID uuid.UUID,
	now time.Time,
) (bool, error) {

	res := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("id = ? AND admin_id IS NULL AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]any{
			"admin_id":   adminID,
			"status":     string(domain.StatusConfirmed),
			"updated_at": now.UTC(),
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, translate("confirm appointment", res.Error, nil)
	}

	return res.RowsAffected == 1, nil
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := conn(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return translate("delete appointment", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound(id)
	}

	return nil
}

// --------------------------------------------------
// Capacity
// --------------------------------------------------

func (r *AppointmentGormRepository) CountActiveForAdminOnDate(
	ctx context.Context,
	adminID uuid.UUID,
	date time.Time,
) (int64, error) {

	var count int64
	if err := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", date.Format(dateLayout), string(domain.StatusCancelled)).
		Where("admin_id = ? OR (admin_id IS NULL AND preferred_admin_id = ?)", adminID, adminID).
		Count(&count).Error; err != nil {
		return 0, translate("count admin appointments", err, nil)
	}

	return count, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
