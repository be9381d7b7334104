package identity

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func Client(id uuid.UUID) Actor {
	return Actor{UserID: id, Role: models.RoleClient}
}

func Admin(id uuid.UUID) Actor {
	return Actor{UserID: id, Role: models.RoleAdmin}
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) IsClient() bool {
	return a.Role == models.RoleClient
}

func (a Actor) Valid() bool {
	return a.UserID != uuid.Nil && (a.IsAdmin() || a.IsClient())
}
