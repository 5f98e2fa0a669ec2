package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"family-gifts/pkg/config"
)

// Mailer delivers outbound email. Services depend on this interface so tests
// can substitute a fake.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through the SMTP server from the configuration.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{cfg: config.GlobalConfig.SMTP}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Host == "" || m.cfg.Port == 0 {
		return fmt.Errorf("missing SMTP configuration")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(b.String()))
}
