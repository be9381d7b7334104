package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail. Credentials are optional; without them
// the relay must accept unauthenticated submissions.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@appointment-services.local"
	}

	m := &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
	if user != "" {
		m.auth = smtp.PlainAuth("", user, password, host)
	}
	return m
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := buildMessage(m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
