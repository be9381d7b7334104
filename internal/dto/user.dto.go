package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDTO struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewUser(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewUsers(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, NewUser(&list[i]))
	}
	return out
}
