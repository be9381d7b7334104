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
	"github.com/BruksfildServices01/appointment-services/internal/domain/user"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Date       time.Time
	ServiceIDs []uuid.UUID

	// PreferredAdminID asks for a specific admin. The admin's daily limit is
	// enforced right away; the assignment itself happens on confirmation.
	PreferredAdminID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	tx       domain.Transactor
	capacity domain.CapacityChecker
	services catalog.Repository
	users    user.Repository
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	capacity domain.CapacityChecker,
	services catalog.Repository,
	users user.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		tx:       tx,
		capacity: capacity,
		services: services,
		users:    users,
		audit:    audit,
		clock:    clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsClient() {
		return nil, httperr.ErrForbidden("client_only", "only clients can book appointments")
	}

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	date, err := checkDate(uc.clock, in.Date)
	if err != nil {
		return nil, err
	}

	if err := checkServices(ctx, uc.services, in.ServiceIDs); err != nil {
		return nil, err
	}

	if in.PreferredAdminID != nil {
		if err := uc.checkAdmin(ctx, *in.PreferredAdminID); err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		Date:             datatypes.Date(date),
		Status:           string(domain.InitialStatus()),
		ClientID:         actor.UserID,
		PreferredAdminID: in.PreferredAdminID,
	}
	domain.ReplaceServices(ap, in.ServiceIDs)

	// --------------------------------------------------
	// 2. Capacity + insert, atomically
	// --------------------------------------------------
	var saved *models.Appointment
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if in.PreferredAdminID != nil {
			ok, err := uc.capacity.HasRoom(ctx, *in.PreferredAdminID, date)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAdminNotAvailable(*in.PreferredAdminID, date)
			}
		}

		var err error
		saved, err = uc.repo.Save(ctx, ap)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(event(actor, "appointment_created", saved, map[string]any{
		"services": len(in.ServiceIDs),
	}))

	return saved, nil
}

func (uc *CreateAppointment) checkAdmin(ctx context.Context, id uuid.UUID) error {
	admin, err := uc.users.GetByID(ctx, id)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return httperr.ErrInvalidData("unknown_admin", "admin %s does not exist", id)
	}
	if err != nil {
		return err
	}
	if !admin.IsAdmin() {
		return httperr.ErrInvalidData("unknown_admin", "user %s is not an admin", id)
	}
	return nil
}
