package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment to its client or to any admin.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
) (*models.Appointment, error) {

	if err := requireActor(actor); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() || domain.IsParticipant(ap, actor.UserID) {
		return ap, nil
	}

	return nil, httperr.ErrForbidden("not_participant", "appointment %s belongs to another user", id)
}
