package infra

import (
	"fmt"
	"net/smtp"

	"github.com/alexhcferreira/toolcare-backend/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text notification mail over SMTP.
type Mailer struct {
	host string
	port int
	auth smtp.Auth
	from string
}

func NewMailer(cfg *config.Config) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		auth: auth,
		from: cfg.SMTPUser,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	return e.Send(fmt.Sprintf("%s:%d", m.host, m.port), m.auth)
}
