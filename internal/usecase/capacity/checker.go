package capacity

import (
	"context"
	"time"

	"github.com/google/uuid"

	appointment "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/capacity"
)

// Checker answers whether an admin can take another appointment on a date.
//
// Call it inside the transaction that writes the appointment: the limit row
// stays locked until commit, so two bookings for the same admin and weekday
// cannot both see the last free slot.
type Checker struct {
	limits       domain.Repository
	appointments appointment.Repository
}

func NewChecker(limits domain.Repository, appointments appointment.Repository) *Checker {
	return &Checker{limits: limits, appointments: appointments}
}

func (c *Checker) HasRoom(ctx context.Context, adminID uuid.UUID, date time.Time) (bool, error) {
	day := appointment.DateOnly(date)

	limit, err := c.limits.GetByWeekDayForUpdate(ctx, adminID, domain.WeekDayOf(day))
	if err != nil {
		return false, err
	}
	// no limit configured: unlimited
	if limit == nil {
		return true, nil
	}

	taken, err := c.appointments.CountActiveForAdminOnDate(ctx, adminID, day)
	if err != nil {
		return false, err
	}

	return taken < int64(limit.Limit), nil
}

var _ appointment.CapacityChecker = (*Checker)(nil)
