package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, audit: audit}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	appointmentID uuid.UUID,
) error {

	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only", "only admins can delete appointments")
	}

	if err := uc.repo.Delete(ctx, appointmentID); err != nil {
		return err
	}

	actorID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
