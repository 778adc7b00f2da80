// internal/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Email is a fully-prepared message ready for transport.
type Email struct {
	To        string
	Subject   string
	HTML      string
	FromEmail string
	FromName  string
}

// Sender is the minimal interface a mail transport must implement.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SMTPSender delivers over plain SMTP with AUTH PLAIN. Works against any
// standard relay, including the AWS SES SMTP endpoint.
type SMTPSender struct {
	Host     string
	Port     string
	Username string
	Password string
}

func NewSMTPSender(host, port, username, password string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	if s.Host == "" {
		return fmt.Errorf("mail transport is not configured: missing SMTP host")
	}
	if email.To == "" {
		return fmt.Errorf("email has no recipient")
	}

	from := email.FromEmail
	if email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", email.FromName, email.FromEmail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + email.To + "\r\n")
	b.WriteString("Subject: " + email.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.HTML)

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := s.Host + ":" + s.Port

	if err := smtp.SendMail(addr, auth, email.FromEmail, []string{email.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", email.To, err)
	}
	return nil
}

var _ Sender = (*SMTPSender)(nil)
