package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
)

type ConfirmAppointment struct {
	repo     domain.Repository
	tx       domain.Transactor
	capacity domain.CapacityChecker
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

func NewConfirmAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	capacity domain.CapacityChecker,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		tx:       tx,
		capacity: capacity,
		audit:    audit,
		clock:    clock,
	}
}

// Execute assigns the calling admin. Concurrent confirmations race on a
// conditional update; exactly one admin wins.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only", "only admins can confirm appointments")
	}
	if actor.UserID == uuid.Nil {
		return nil, httperr.ErrInvalidState("missing_admin", "an admin id is required to confirm")
	}
	adminID := actor.UserID

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// State
	// --------------------------------------------------
	status := domain.Status(ap.Status)
	if status.IsTerminal() {
		return nil, domain.CanConfirm(status)
	}
	if ap.AdminID != nil {
		if *ap.AdminID == adminID {
			return ap, nil
		}
		return nil, domain.ErrAlreadyAssigned()
	}
	if err := domain.CanConfirm(status); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Capacity + assignment
	// --------------------------------------------------
	date := dateOf(ap)
	now := uc.clock.Now()

	// an appointment booked for this admin already holds a slot
	counted := ap.PreferredAdminID != nil && *ap.PreferredAdminID == adminID

	var current *models.Appointment
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if !counted {
			ok, err := uc.capacity.HasRoom(ctx, adminID, date)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAdminNotAvailable(adminID, date)
			}
		}

		won, err := uc.repo.ConfirmIfUnassigned(ctx, ap.ID, adminID, now)
		if err != nil {
			return err
		}
		if won {
			return nil
		}

		current, err = uc.repo.GetByID(ctx, ap.ID)
		if err != nil {
			return err
		}
		if current.AdminID != nil && *current.AdminID == adminID {
			return nil
		}
		if current.AdminID == nil {
			if err := domain.CanConfirm(domain.Status(current.Status)); err != nil {
				return err
			}
		}
		return domain.ErrAlreadyAssigned()
	})
	if err != nil {
		return nil, err
	}

	// lost the race to ourselves: nothing changed here
	if current != nil {
		return current, nil
	}

	domain.Confirm(ap, adminID, now)

	uc.audit.Dispatch(event(actor, "appointment_confirmed", ap, nil))

	return ap, nil
}
