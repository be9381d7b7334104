package appointment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// Version is the row state a change was computed from. A write only lands
// while the stored row still has this status and version number.
type Version struct {
	Status Status
	Number int
}

func VersionOf(ap *models.Appointment) Version {
	return Version{Status: Status(ap.Status), Number: ap.Version}
}

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return httperr.ErrInvalidData("missing_cancel_reason", "cancel reason is required")
	}

	at := now.UTC()
	ap.Status = string(StatusCancelled)
	ap.CancelReason = &reason
	ap.CancelledAt = &at
	ap.UpdatedAt = at
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	at := now.UTC()
	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &at
	ap.UpdatedAt = at
	return nil
}

// Confirm mirrors in memory what the conditional update did in storage.
func Confirm(ap *models.Appointment, adminID uuid.UUID, now time.Time) {
	ap.AdminID = &adminID
	ap.Status = string(StatusConfirmed)
	ap.UpdatedAt = now.UTC()
	ap.Version++
}

// ReplaceServices drops the current service links and attaches one link per
// id, in order. Duplicates are kept.
func ReplaceServices(ap *models.Appointment, serviceIDs []uuid.UUID) {
	ap.Services = make([]models.AppointmentService, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		ap.Services = append(ap.Services, models.AppointmentService{
			AppointmentID: ap.ID,
			ServiceID:     id,
		})
	}
}

// IsParticipant reports whether userID is the owning client or the assigned admin.
func IsParticipant(ap *models.Appointment, userID uuid.UUID) bool {
	if ap.ClientID == userID {
		return true
	}
	return ap.AdminID != nil && *ap.AdminID == userID
}
