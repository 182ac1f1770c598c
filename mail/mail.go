// Package mail delivers password-reset verification codes. Delivery is
// fire-and-forget: callers get an error for immediate failures but no
// delivery guarantee.
package mail

import (
	"fmt"
	"io"
	"log/slog"

	gomail "gopkg.in/gomail.v2"
)

// SMTP sends verification codes through an SMTP relay.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	log    *slog.Logger
}

// NewSMTP configures an SMTP mailer. The from address doubles as the
// authentication username when username is empty.
func NewSMTP(host string, port int, username, password, from string, logger *slog.Logger) *SMTP {
	if username == "" {
		username = from
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    logger,
	}
}

// SendVerificationCode emails a password-reset code.
func (m *SMTP) SendVerificationCode(to, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Email Verification Code")
	msg.SetBody("text/plain", "Your verification code is: "+code)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}
	m.log.Info("verification code sent", "to", to)
	return nil
}

// Console writes verification codes to a local writer. It stands in for SMTP
// when no relay is configured, which keeps the reset flow usable in
// development.
type Console struct {
	Out io.Writer
}

// SendVerificationCode prints the code instead of emailing it.
func (c *Console) SendVerificationCode(to, code string) error {
	_, err := fmt.Fprintf(c.Out, "[mail disabled] verification code for %s: %s\n", to, code)
	return err
}
