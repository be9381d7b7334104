package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type ListFilter struct {
	ClientID   *uuid.UUID
	AdminID    *uuid.UUID
	Unassigned bool
	Status     *Status

	// DateFrom and DateTo bound the appointment date, both inclusive.
	DateFrom *time.Time
	DateTo   *time.Time

	Page int
	Size int
}

type Page struct {
	Items []models.Appointment
	Total int64
	Page  int
	Size  int
}

type Repository interface {
	// -------- Appointment (create / read) --------
	Save(
		ctx context.Context,
		ap *models.Appointment,
	) (*models.Appointment, error)

	GetByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	GetAll(
		ctx context.Context,
		filter ListFilter,
	) (Page, error)

	// -------- Appointment (state change) --------

	// Update persists scalar columns, conditional on the stored row still
	// matching from; otherwise it fails with ErrChanged. When replaceServices
	// is set the whole service set is replaced by ap.Services. updated_at is
	// taken from ap.UpdatedAt.
	Update(
		ctx context.Context,
		ap *models.Appointment,
		from Version,
		replaceServices bool,
	) (*models.Appointment, error)

	// ConfirmIfUnassigned assigns adminID and confirms the appointment only
	// while it is pending and unassigned. It reports whether a row changed.
	ConfirmIfUnassigned(
		ctx context.Context,
		id uuid.UUID,
		adminID uuid.UUID,
		now time.Time,
	) (bool, error)

	Delete(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Capacity --------
	CountActiveForAdminOnDate(
		ctx context.Context,
		adminID uuid.UUID,
		date time.Time,
	) (int64, error)
}

// Transactor runs fn in one database transaction. Repositories called with
// the ctx passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CapacityChecker decides whether an admin can take one more appointment on
// a date.
type CapacityChecker interface {
	HasRoom(ctx context.Context, adminID uuid.UUID, date time.Time) (bool, error)
}
