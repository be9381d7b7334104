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

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only", "only admins can complete appointments")
	}

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if ap.AdminID == nil || *ap.AdminID != actor.UserID {
		return nil, httperr.ErrInvalidState("not_assigned_admin", "only the assigned admin can complete the appointment")
	}

	from := domain.VersionOf(ap)
	if err := domain.Complete(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, ap, from, false)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_completed", updated, nil))

	return updated, nil
}
