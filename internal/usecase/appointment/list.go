package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/pagination"
	"github.com/BruksfildServices01/appointment-services/internal/timezone"
)

type ListAppointmentsInput struct {
	Page int
	Size int

	// Status and DateFilter are raw query values; empty means no filter.
	Status     string
	DateFilter string

	// Unassigned lists appointments nobody confirmed yet. For admins it
	// switches from their own agenda to the open pool.
	Unassigned bool
}

type ListAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointments(repo domain.Repository, clock timezone.Clock) *ListAppointments {
	return &ListAppointments{repo: repo, clock: clock}
}

// Execute never fails on an empty result: the page is just empty.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor identity.Actor,
	in ListAppointmentsInput,
) (domain.Page, error) {

	if err := requireActor(actor); err != nil {
		return domain.Page{}, err
	}

	f := domain.ListFilter{}
	f.Page, f.Size = pagination.Normalize(in.Page, in.Size)

	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return domain.Page{}, err
		}
		f.Status = &s
	}

	if in.DateFilter != "" {
		df, err := domain.ParseFutureDateFilter(in.DateFilter)
		if err != nil {
			return domain.Page{}, err
		}
		from, to := df.Window(uc.clock.Today())
		f.DateFrom, f.DateTo = &from, &to
	}

	userID := actor.UserID
	switch {
	case actor.IsClient():
		f.ClientID = &userID
		f.Unassigned = in.Unassigned
	case in.Unassigned:
		f.Unassigned = true
		if f.Status == nil {
			pending := domain.StatusPending
			f.Status = &pending
		}
	default:
		f.AdminID = &userID
	}

	page, err := uc.repo.GetAll(ctx, f)
	if err != nil {
		return domain.Page{}, err
	}
	if page.Items == nil {
		page.Items = []models.Appointment{}
	}
	return page, nil
}
