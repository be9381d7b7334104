package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/appointment-services/internal/models"
)

func TestNewAppointment(t *testing.T) {
	svcID := uuid.New()
	ap := &models.Appointment{
		ID:     uuid.New(),
		Date:   datatypes.Date(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Status: "pending",
		Services: []models.AppointmentService{
			{ServiceID: svcID, Service: &models.Service{ID: svcID, Name: "Haircut", Price: decimal.NewFromFloat(25.5)}},
			{ServiceID: uuid.New()},
		},
	}

	out := NewAppointment(ap)
	assert.Equal(t, "2025-06-01", out.Date)
	require.Len(t, out.Services, 2)
	assert.Equal(t, "25.50", out.Services[0].Price)
	assert.Empty(t, out.Services[1].Name)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"admin_id":null`)
	assert.NotContains(t, string(raw), "cancel_reason")
}

func TestNewAppointments_NeverNil(t *testing.T) {
	assert.NotNil(t, NewAppointments(nil))
	assert.NotNil(t, NewUsers(nil))
	assert.NotNil(t, NewServices(nil))
}
