// Package mocks holds testify mocks of the repository contracts, shared by
// the use case and handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/appointment-services/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Save(ctx context.Context, ap *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, ap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *AppointmentRepository) GetAll(ctx context.Context, f domain.ListFilter) (domain.Page, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(domain.Page), args.Error(1)
}

func (m *AppointmentRepository) Update(ctx context.Context, ap *models.Appointment, from domain.Version, replaceServices bool) (*models.Appointment, error) {
	args := m.Called(ctx, ap, from, replaceServices)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *AppointmentRepository) ConfirmIfUnassigned(ctx context.Context, id, adminID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, adminID, now)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AppointmentRepository) CountActiveForAdminOnDate(ctx context.Context, adminID uuid.UUID, date time.Time) (int64, error) {
	args := m.Called(ctx, adminID, date)
	return args.Get(0).(int64), args.Error(1)
}

type CapacityChecker struct {
	mock.Mock
}

func (m *CapacityChecker) HasRoom(ctx context.Context, adminID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, adminID, date)
	return args.Bool(0), args.Error(1)
}

// Transactor runs fn directly and counts the calls.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

var (
	_ domain.Repository      = (*AppointmentRepository)(nil)
	_ domain.CapacityChecker = (*CapacityChecker)(nil)
	_ domain.Transactor      = (*Transactor)(nil)
)
