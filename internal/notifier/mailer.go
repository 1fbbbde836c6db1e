// Package notifier delivers prediction alerts to subscribers over SMTP.
package notifier

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Mailer sends HTML alert emails through a plain-auth SMTP relay.
type Mailer struct {
	Server   string
	Port     int
	Sender   string
	Password string
}

// NewMailer creates a mailer for the given SMTP relay.
func NewMailer(server string, port int, sender, password string) *Mailer {
	return &Mailer{Server: server, Port: port, Sender: sender, Password: password}
}

// Configured reports whether sending credentials are present.
func (m *Mailer) Configured() bool {
	return m.Sender != "" && m.Password != ""
}

// Send delivers one message per recipient and returns how many went out.
// Missing credentials or an empty recipient list is a no-op, not an error.
// Per-recipient failures are skipped so one bad mailbox cannot block the rest.
func (m *Mailer) Send(rec *model.PredictionRecord, recipients []string) (int, error) {
	if !m.Configured() {
		log.Warn().Str("ticker", rec.Ticker).Msg("email credentials not configured, skipping alerts")
		return 0, nil
	}
	if len(recipients) == 0 {
		log.Debug().Str("ticker", rec.Ticker).Msg("no subscribers, skipping alerts")
		return 0, nil
	}

	subject := Subject(rec)
	body := HTMLBody(rec)
	addr := fmt.Sprintf("%s:%d", m.Server, m.Port)
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Server)

	sent := 0
	var failed []string
	var lastErr error
	for _, rcpt := range recipients {
		msg := buildMessage(m.Sender, rcpt, subject, body)
		if err := smtp.SendMail(addr, auth, m.Sender, []string{rcpt}, msg); err != nil {
			log.Warn().Err(err).Str("ticker", rec.Ticker).Str("recipient", rcpt).Msg("email send failed")
			failed = append(failed, rcpt)
			lastErr = err
			continue
		}
		sent++
	}
	if len(failed) > 0 {
		return sent, fmt.Errorf("send to %d of %d recipients failed: %w", len(failed), len(recipients), lastErr)
	}
	return sent, nil
}

// buildMessage assembles an RFC 5322 message with an HTML part. The subject
// is Q-encoded so non-ASCII survives strict relays.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
