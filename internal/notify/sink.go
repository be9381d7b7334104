package notify

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
)

type template struct {
	subject string
	body    string
}

// only these lifecycle changes reach the client's inbox
var templates = map[string]template{
	"appointment_confirmed": {
		subject: "Your appointment was confirmed",
		body:    "Hello %s,\n\nyour appointment on %s was confirmed.",
	},
	"appointment_cancelled": {
		subject: "Your appointment was cancelled",
		body:    "Hello %s,\n\nyour appointment on %s was cancelled.",
	},
	"appointment_completed": {
		subject: "Thank you for your visit",
		body:    "Hello %s,\n\nyour appointment on %s is complete.",
	},
}

// Sink is an audit.Sink that e-mails the client about lifecycle changes.
type Sink struct {
	mailer Mailer
}

func NewSink(m Mailer) *Sink {
	return &Sink{mailer: m}
}

func (s *Sink) Handle(_ context.Context, ev audit.Event) error {
	subject, body, ok := Compose(ev)
	if !ok {
		return nil
	}
	if err := s.mailer.Send(ev.Recipient, subject, body); err != nil {
		return fmt.Errorf("notify %s: %w", ev.Recipient, err)
	}
	return nil
}

// Compose renders the message for ev. ok is false when ev needs no mail.
func Compose(ev audit.Event) (subject, body string, ok bool) {
	tpl, known := templates[ev.Action]
	if !known || ev.Recipient == "" {
		return "", "", false
	}

	date := "the scheduled date"
	if meta, isMap := ev.Metadata.(map[string]any); isMap {
		if d, isString := meta["date"].(string); isString && d != "" {
			date = d
		}
	}

	name := ev.RecipientName
	if name == "" {
		name = "there"
	}

	body = fmt.Sprintf(tpl.body, name, date)
	if meta, isMap := ev.Metadata.(map[string]any); isMap {
		if reason, isString := meta["reason"].(string); isString && reason != "" {
			body += "\nReason: " + reason
		}
	}

	return tpl.subject, body, true
}
