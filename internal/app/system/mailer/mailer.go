// Package mailer delivers admin notification email over SMTP. The target
// deployments are Mailpit in development and SES in production, so plain
// auth and STARTTLS negotiated by net/smtp cover both.
package mailer

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer sends email through one configured SMTP endpoint.
type Mailer struct {
	addr     string
	host     string
	auth     smtp.Auth
	from     string
	fromName string
	log      *zap.Logger
}

// Config holds the SMTP settings for creating a Mailer.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// New creates a Mailer. An empty user/pass pair disables auth, which is
// what Mailpit expects.
func New(cfg Config, log *zap.Logger) *Mailer {
	var auth smtp.Auth
	if cfg.User != "" && cfg.Pass != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}
	return &Mailer{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host:     cfg.Host,
		auth:     auth,
		from:     cfg.From,
		fromName: cfg.FromName,
		log:      log,
	}
}

// FromName returns the configured sender display name, used as the
// application name in notification templates.
func (m *Mailer) FromName() string {
	return m.fromName
}

// Email is one outgoing message. All recipients share a single SMTP
// session and appear together in the To header.
type Email struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Send delivers one email to every recipient in a single session. When
// HTMLBody is set the message goes out as multipart/alternative with the
// plain text first.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	msg := m.build(email)
	if err := smtp.SendMail(m.addr, m.auth, m.from, email.To, msg); err != nil {
		m.log.Error("failed to send email",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("email sent",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func (m *Mailer) build(email Email) []byte {
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(email.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody == "" {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(email.TextBody)
		return msg.Bytes()
	}

	boundary := randomBoundary()
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(email.TextBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(email.HTMLBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)
	return msg.Bytes()
}

// randomBoundary generates a random boundary string for multipart emails.
func randomBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return "----=_Part_" + hex.EncodeToString(b)
}
