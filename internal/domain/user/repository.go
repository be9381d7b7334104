package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type ClientFilter struct {
	Name         string
	Email        string
	CreatedSince *time.Time

	Page int
	Size int
}

type Repository interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail returns nil, nil when no user has the address.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	ListClients(ctx context.Context, filter ClientFilter) ([]models.User, int64, error)
}
