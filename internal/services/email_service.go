package services

import "log/slog"

// Mailer simulates outbound email by logging the message. Real delivery is a
// deployment concern; nothing in the API depends on it succeeding.
type Mailer struct {
	sender string
}

func NewMailer(sender string) *Mailer {
	return &Mailer{sender: sender}
}

func (m *Mailer) Send(to, subject, body string) {
	slog.Info("simulated email send",
		"from", m.sender,
		"to", to,
		"subject", subject,
		"body", body,
	)
}
