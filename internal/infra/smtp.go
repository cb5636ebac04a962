package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"auromart/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends invoice e-mails with the PDF attached.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

func (m *Mailer) Enabled() bool { return m.host != "" }

// SendInvoice mails pdf as filename. An empty pdf sends the text only.
func (m *Mailer) SendInvoice(to, subject, body, filename string, pdf []byte) error {
	e := buildInvoiceEmail(m.user, to, subject, body)
	if len(pdf) > 0 {
		if _, err := e.Attach(bytes.NewReader(pdf), filename, "application/pdf"); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}

func buildInvoiceEmail(from, to, subject, body string) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	return e
}
