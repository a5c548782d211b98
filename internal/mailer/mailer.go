package mailer

import (
	mail "github.com/go-mail/mail/v2"
)

// Mailer delivers confirmation codes. Services depend on this interface so
// tests can swap in a fake.
type Mailer interface {
	SendConfirmationCode(to, code string) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *SMTPMailer) SendConfirmationCode(to, code string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirmation code")
	msg.SetBody("text/plain", code)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return d.DialAndSend(msg)
}
