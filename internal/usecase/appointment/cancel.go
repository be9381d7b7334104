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

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute cancels on behalf of the owning client or the assigned admin.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !canCancel(actor, ap) {
		return nil, httperr.ErrInvalidState("not_participant", "only the client or the assigned admin can cancel the appointment")
	}

	from := domain.VersionOf(ap)
	if err := domain.Cancel(ap, reason, uc.clock.Now()); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, ap, from, false)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(actor, "appointment_cancelled", updated, map[string]any{
		"reason": *updated.CancelReason,
		"by":     actor.Role,
	}))

	return updated, nil
}

func canCancel(actor identity.Actor, ap *models.Appointment) bool {
	if actor.IsClient() {
		return ap.ClientID == actor.UserID
	}
	return ap.AdminID != nil && *ap.AdminID == actor.UserID
}
