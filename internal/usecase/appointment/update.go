package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/catalog"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
)

// UpdateAppointmentInput is a partial update. A nil field is left as is; a
// non-nil empty ServiceIDs is rejected.
type UpdateAppointmentInput struct {
	Date       *time.Time
	ServiceIDs []uuid.UUID
}

type UpdateAppointment struct {
	repo     domain.Repository
	tx       domain.Transactor
	capacity domain.CapacityChecker
	services catalog.Repository
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

func NewUpdateAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	capacity domain.CapacityChecker,
	services catalog.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		tx:       tx,
		capacity: capacity,
		services: services,
		audit:    audit,
		clock:    clock,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsClient() || ap.ClientID != actor.UserID {
		return nil, httperr.ErrInvalidState("not_owner", "only the client who booked the appointment can change it")
	}
	if err := domain.CanUpdate(domain.Status(ap.Status)); err != nil {
		return nil, err
	}
	from := domain.VersionOf(ap)

	// --------------------------------------------------
	// Patch
	// --------------------------------------------------
	dateChanged := false
	if in.Date != nil {
		date, err := checkDate(uc.clock, *in.Date)
		if err != nil {
			return nil, err
		}
		dateChanged = !date.Equal(dateOf(ap))
		ap.Date = datatypes.Date(date)
	}

	replaceServices := in.ServiceIDs != nil
	if replaceServices {
		if err := checkServices(ctx, uc.services, in.ServiceIDs); err != nil {
			return nil, err
		}
		domain.ReplaceServices(ap, in.ServiceIDs)
	}

	if !dateChanged && !replaceServices {
		return ap, nil
	}

	var updated *models.Appointment
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if dateChanged && ap.PreferredAdminID != nil {
			ok, err := uc.capacity.HasRoom(ctx, *ap.PreferredAdminID, dateOf(ap))
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAdminNotAvailable(*ap.PreferredAdminID, dateOf(ap))
			}
		}

		ap.UpdatedAt = uc.clock.Now().UTC()

		var err error
		updated, err = uc.repo.Update(ctx, ap, from, replaceServices)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_updated", updated, map[string]any{
		"date_changed":     dateChanged,
		"services_changed": replaceServices,
	}))

	return updated, nil
}
