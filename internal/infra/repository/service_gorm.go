package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/domain/catalog"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func serviceNotFound(id uuid.UUID) error {
	return httperr.ErrNotFound("service_not_found", "service with id %s not found", id)
}

func (r *ServiceGormRepository) Create(ctx context.Context, s *models.Service) error {
	return translate("create service", conn(ctx, r.db).Create(s).Error, nil)
}

func (r *ServiceGormRepository) Update(ctx context.Context, s *models.Service) error {
	res := conn(ctx, r.db).
		Model(&models.Service{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":        s.Name,
			"description": s.Description,
			"price":       s.Price,
		})
	if res.Error != nil {
		return translate("update service", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return serviceNotFound(s.ID)
	}
	return nil
}

func (r *ServiceGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Service{})
	if res.Error != nil {
		return translate("delete service", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return serviceNotFound(id)
	}
	return nil
}

func (r *ServiceGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate("get service", err, serviceNotFound(id))
	}
	return &s, nil
}

func (r *ServiceGormRepository) FindByName(ctx context.Context, name string) (*models.Service, error) {
	var s models.Service
	err := conn(ctx, r.db).Where("name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("find service by name", err, nil)
	}
	return &s, nil
}

func (r *ServiceGormRepository) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := conn(ctx, r.db).Order("name ASC").Find(&services).Error; err != nil {
		return nil, translate("list services", err, nil)
	}
	return services, nil
}

func (r *ServiceGormRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error) {
	unique := distinct(ids)
	if len(unique) == 0 {
		return 0, nil
	}

	var count int64
	if err := conn(ctx, r.db).
		Model(&models.Service{}).
		Where("id IN ?", unique).
		Count(&count).Error; err != nil {
		return 0, translate("count services", err, nil)
	}
	return count, nil
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Compile-time check
var _ catalog.Repository = (*ServiceGormRepository)(nil)
