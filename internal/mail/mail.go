// Package mail sends transactional email over SMTP. The only traffic today
// is admin invite messages, so the package stays deliberately small: one
// Sender interface and one net/smtp implementation.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mkamel/corsite-backend/internal/config"
	"github.com/mkamel/corsite-backend/internal/logger"
)

// ErrNotConfigured is returned when SMTP settings are missing. Callers may
// treat it as a soft failure in development environments.
var ErrNotConfigured = errors.New("mail transport is not configured")

// Sender delivers one email message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPSender is the production [Sender] backed by net/smtp with PLAIN auth.
type SMTPSender struct {
	cfg    config.Mail
	logger *logger.Logger
}

// NewSMTPSender constructs an [SMTPSender] from the mail configuration.
func NewSMTPSender(cfg config.Mail, logger *logger.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers a single HTML email to the given recipient. The context is
// consulted before dialing; net/smtp itself does not support cancellation
// mid-session.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.cfg.Host == "" || s.cfg.User == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.User + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	if err := smtp.SendMail(addr, auth, s.cfg.User, []string{to}, []byte(msg.String())); err != nil {
		s.logger.Err(err).Str("to", to).Msg("sending email failed")
		return fmt.Errorf("sending email: %w", err)
	}

	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
