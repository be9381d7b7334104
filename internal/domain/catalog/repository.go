package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)

	// FindByName returns nil, nil when no service has the name.
	FindByName(ctx context.Context, name string) (*models.Service, error)

	List(ctx context.Context) ([]models.Service, error)

	// CountExisting counts how many of the distinct ids exist.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
}
