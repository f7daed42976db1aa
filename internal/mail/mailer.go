package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/spec-kit/customer-portal/internal/config"
)

// Mailer sends a single message. Services hold this interface so tests can
// substitute a fake and mail failures stay best-effort.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers over implicit TLS (port 465 style).
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer builds a mailer from config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send delivers a single HTML message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", m.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := m.host + ":" + m.port

	tlsConfig := &tls.Config{ServerName: m.host}
	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
