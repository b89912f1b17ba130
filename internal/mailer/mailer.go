package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"learnhub/internal/config"

	"github.com/rs/zerolog"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// New returns an SMTP mailer, or a mailer that only logs when no SMTP host is set.
func New(cfg *config.Config, logger zerolog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger.With().Str("component", "mailer").Logger()}
	}
	return &SMTPMailer{
		addr:     net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

type SMTPMailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

// Send delivers an HTML message. net/smtp has no context support, so ctx is
// only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, BuildMessage(m.from, to, subject, htmlBody)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// BuildMessage renders a UTF-8 HTML email with headers.
func BuildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

type logMailer struct {
	logger zerolog.Logger
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("SMTP not configured, email not sent")
	return nil
}
