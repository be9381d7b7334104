package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/appointment-services/internal/domain/capacity"
	"github.com/BruksfildServices01/appointment-services/internal/domain/catalog"
	"github.com/BruksfildServices01/appointment-services/internal/domain/user"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// -------------------- users --------------------

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) ListClients(ctx context.Context, f user.ClientFilter) ([]models.User, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// -------------------- services --------------------

type ServiceRepository struct {
	mock.Mock
}

func (m *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *ServiceRepository) FindByName(ctx context.Context, name string) (*models.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *ServiceRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// -------------------- daily limits --------------------

type DailyLimitRepository struct {
	mock.Mock
}

func (m *DailyLimitRepository) Create(ctx context.Context, l *models.AdminDailyLimit) error {
	return m.Called(ctx, l).Error(0)
}

func (m *DailyLimitRepository) Update(ctx context.Context, l *models.AdminDailyLimit) error {
	return m.Called(ctx, l).Error(0)
}

func (m *DailyLimitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *DailyLimitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminDailyLimit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminDailyLimit), args.Error(1)
}

func (m *DailyLimitRepository) GetByWeekDay(ctx context.Context, adminID uuid.UUID, day capacity.WeekDay) (*models.AdminDailyLimit, error) {
	args := m.Called(ctx, adminID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminDailyLimit), args.Error(1)
}

func (m *DailyLimitRepository) GetByWeekDayForUpdate(ctx context.Context, adminID uuid.UUID, day capacity.WeekDay) (*models.AdminDailyLimit, error) {
	args := m.Called(ctx, adminID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminDailyLimit), args.Error(1)
}

func (m *DailyLimitRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]models.AdminDailyLimit, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminDailyLimit), args.Error(1)
}

var (
	_ user.Repository     = (*UserRepository)(nil)
	_ catalog.Repository  = (*ServiceRepository)(nil)
	_ capacity.Repository = (*DailyLimitRepository)(nil)
)
