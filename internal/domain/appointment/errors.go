package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

func ErrNotFound(id uuid.UUID) error {
	return httperr.ErrNotFound("appointment_not_found", "appointment with id %s not found", id)
}

// ErrAdminNotAvailable reports that the admin reached the daily limit.
func ErrAdminNotAvailable(adminID uuid.UUID, date time.Time) error {
	return httperr.ErrInvalidState(
		"admin_not_available",
		"admin %s has no capacity left on %s",
		adminID,
		date.Format("2006-01-02"),
	)
}

func ErrAlreadyAssigned() error {
	return httperr.ErrInvalidState("already_assigned", "appointment is already assigned to another admin")
}

// ErrChanged reports that the appointment moved on since it was read.
func ErrChanged(id uuid.UUID) error {
	return httperr.ErrInvalidState("appointment_changed", "appointment %s was changed by another request, reload and retry", id)
}
