package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/catalog"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
)

const dateLayout = "2006-01-02"

func requireActor(actor identity.Actor) error {
	if !actor.Valid() {
		return httperr.ErrUnauthorized("unauthenticated", "a valid user is required")
	}
	return nil
}

func dateOf(ap *models.Appointment) time.Time {
	return time.Time(ap.Date)
}

// checkDate normalizes date to a calendar day and refuses days before today.
func checkDate(clock timezone.Clock, date time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, httperr.ErrInvalidData("missing_date", "date is required")
	}
	day := domain.DateOnly(date)
	if day.Before(clock.Today()) {
		return time.Time{}, httperr.ErrInvalidData("date_in_past", "date %s is in the past", day.Format(dateLayout))
	}
	return day, nil
}

// checkServices makes sure the list is not empty and every id exists.
// Duplicates are left for the storage layer to reject.
func checkServices(ctx context.Context, services catalog.Repository, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return httperr.ErrInvalidData("services_required", "at least one service is required")
	}

	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	found, err := services.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if found != int64(len(unique)) {
		return httperr.ErrInvalidData("unknown_service", "one or more services do not exist")
	}
	return nil
}

func event(actor identity.Actor, action string, ap *models.Appointment, meta map[string]any) audit.Event {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["date"] = dateOf(ap).Format(dateLayout)
	meta["status"] = ap.Status

	actorID := actor.UserID
	entityID := ap.ID
	ev := audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &entityID,
		Metadata: meta,
	}
	if ap.Client != nil {
		ev.Recipient = ap.Client.Email
		ev.RecipientName = ap.Client.Name
	}
	return ev
}
