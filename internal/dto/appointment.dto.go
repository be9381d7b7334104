package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

const dateLayout = "2006-01-02"

type ServiceDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
}

type AppointmentDTO struct {
	ID               uuid.UUID    `json:"id"`
	Date             string       `json:"date"`
	Status           string       `json:"status"`
	ClientID         uuid.UUID    `json:"client_id"`
	AdminID          *uuid.UUID   `json:"admin_id"`
	PreferredAdminID *uuid.UUID   `json:"preferred_admin_id,omitempty"`
	CancelReason     *string      `json:"cancel_reason,omitempty"`
	CancelledAt      *time.Time   `json:"cancelled_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	Services         []ServiceDTO `json:"services"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func NewService(s *models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(2),
	}
}

func NewServices(list []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(list))
	for i := range list {
		out = append(out, NewService(&list[i]))
	}
	return out
}

func NewAppointment(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:               ap.ID,
		Date:             time.Time(ap.Date).Format(dateLayout),
		Status:           ap.Status,
		ClientID:         ap.ClientID,
		AdminID:          ap.AdminID,
		PreferredAdminID: ap.PreferredAdminID,
		CancelReason:     ap.CancelReason,
		CancelledAt:      ap.CancelledAt,
		CompletedAt:      ap.CompletedAt,
		Services:         make([]ServiceDTO, 0, len(ap.Services)),
		CreatedAt:        ap.CreatedAt,
		UpdatedAt:        ap.UpdatedAt,
	}

	for _, link := range ap.Services {
		if link.Service != nil {
			out.Services = append(out.Services, NewService(link.Service))
			continue
		}
		// not preloaded: id only
		out.Services = append(out.Services, ServiceDTO{ID: link.ServiceID})
	}
	return out
}

func NewAppointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, NewAppointment(&list[i]))
	}
	return out
}
