package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func TestCompose(t *testing.T) {
	subject, body, ok := Compose(audit.Event{
		Action:        "appointment_cancelled",
		Recipient:     "ana@example.com",
		RecipientName: "Ana",
		Metadata:      map[string]any{"date": "2025-06-01", "reason": "schedule conflict"},
	})

	require.True(t, ok)
	assert.Equal(t, "Your appointment was cancelled", subject)
	assert.Contains(t, body, "Hello Ana")
	assert.Contains(t, body, "2025-06-01")
	assert.Contains(t, body, "Reason: schedule conflict")
}

func TestCompose_Skips(t *testing.T) {
	_, _, ok := Compose(audit.Event{Action: "appointment_created", Recipient: "ana@example.com"})
	assert.False(t, ok)

	_, _, ok = Compose(audit.Event{Action: "appointment_confirmed"})
	assert.False(t, ok)
}

func TestSink_Handle(t *testing.T) {
	m := new(mockMailer)
	m.On("Send", "ana@example.com", "Your appointment was confirmed", mock.Anything).Return(nil).Once()

	s := NewSink(m)
	err := s.Handle(context.Background(), audit.Event{
		Action:    "appointment_confirmed",
		Recipient: "ana@example.com",
	})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestSink_HandleWrapsMailerError(t *testing.T) {
	m := new(mockMailer)
	m.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := NewSink(m).Handle(context.Background(), audit.Event{
		Action:    "appointment_completed",
		Recipient: "ana@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ana@example.com")
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("from@x.io", "to@x.io", "Hi", "body")
	assert.True(t, strings.HasPrefix(msg, "From: from@x.io\r\nTo: to@x.io\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nbody\r\n"))
}
