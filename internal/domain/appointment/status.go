package appointment

import (
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParseStatus(raw string) (Status, error) {
	for _, s := range allStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", httperr.ErrInvalidData("invalid_status", "unknown appointment status %q", raw)
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// CanUpdate guards client edits: only while nobody acted on the appointment.
func CanUpdate(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("not_pending", "appointment is %s, only pending appointments can be changed", current)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrInvalidState("invalid_state", "appointment is %s and cannot be cancelled", current)
	}
	return nil
}

func CanConfirm(current Status) error {
	switch current {
	case StatusPending:
		return nil
	case StatusConfirmed:
		return httperr.ErrInvalidState("already_confirmed", "appointment is already confirmed")
	case StatusCancelled:
		return httperr.ErrInvalidState("appointment_cancelled", "appointment is cancelled")
	default:
		return httperr.ErrInvalidState("invalid_state", "appointment is %s and cannot be confirmed", current)
	}
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrInvalidState("invalid_state", "appointment is %s, only confirmed appointments can be completed", current)
	}
	return nil
}
