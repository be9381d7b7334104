package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// memRepo is an in-memory domain.Repository. ConfirmIfUnassigned and Update
// are conditional and atomic like the SQL updates they stand in for.
type memRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]models.Appointment
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]models.Appointment{}}
}

func clone(ap models.Appointment) *models.Appointment {
	ap.Services = append([]models.AppointmentService(nil), ap.Services...)
	if ap.AdminID != nil {
		id := *ap.AdminID
		ap.AdminID = &id
	}
	return &ap
}

func (r *memRepo) Save(_ context.Context, ap *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	for i := range ap.Services {
		ap.Services[i].AppointmentID = ap.ID
	}
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	ap.Version = 1
	r.items[ap.ID] = *clone(*ap)
	return clone(r.items[ap.ID]), nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound(id)
	}
	return clone(ap), nil
}

func (r *memRepo) GetAll(_ context.Context, f domain.ListFilter) (domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	page := domain.Page{Items: []models.Appointment{}, Page: f.Page, Size: f.Size}
	for _, ap := range r.items {
		if f.ClientID != nil && ap.ClientID != *f.ClientID {
			continue
		}
		if f.AdminID != nil && (ap.AdminID == nil || *ap.AdminID != *f.AdminID) {
			continue
		}
		if f.Unassigned && ap.AdminID != nil {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		page.Items = append(page.Items, *clone(ap))
	}
	page.Total = int64(len(page.Items))
	return page, nil
}

func (r *memRepo) Update(_ context.Context, ap *models.Appointment, from domain.Version, _ bool) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[ap.ID]
	if !ok {
		return nil, domain.ErrNotFound(ap.ID)
	}
	if domain.VersionOf(&stored) != from {
		return nil, domain.ErrChanged(ap.ID)
	}

	next := *clone(*ap)
	next.Version = stored.Version + 1
	r.items[ap.ID] = next
	return clone(next), nil
}

func (r *memRepo) ConfirmIfUnassigned(_ context.Context, id, adminID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.items[id]
	if !ok || ap.AdminID != nil || ap.Status != string(domain.StatusPending) {
		return false, nil
	}
	ap.AdminID = &adminID
	ap.Status = string(domain.StatusConfirmed)
	ap.UpdatedAt = now
	ap.Version++
	r.items[id] = ap
	return true, nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound(id)
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo) CountActiveForAdminOnDate(_ context.Context, adminID uuid.UUID, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, ap := range r.items {
		if !time.Time(ap.Date).Equal(date) || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		assigned := ap.AdminID != nil && *ap.AdminID == adminID
		preferred := ap.AdminID == nil && ap.PreferredAdminID != nil && *ap.PreferredAdminID == adminID
		if assigned || preferred {
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*memRepo)(nil)

// racingRepo runs before once, just ahead of the next Update, to stand in
// for a request that commits between a use case's read and its write.
type racingRepo struct {
	*memRepo
	before func()
}

func (r *racingRepo) Update(ctx context.Context, ap *models.Appointment, from domain.Version, replaceServices bool) (*models.Appointment, error) {
	if fn := r.before; fn != nil {
		r.before = nil
		fn()
	}
	return r.memRepo.Update(ctx, ap, from, replaceServices)
}
