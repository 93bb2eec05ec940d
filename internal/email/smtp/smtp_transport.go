// Package smtp delivers mail over authenticated SMTP with STARTTLS.
package smtp

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"mathsolver/internal/port"
)

type smtpTransport struct {
	server   string
	port     int
	sender   string
	password string
}

// NewTransport creates an SMTP-backed MailTransport. It fails fast when the
// sender credentials are missing, so notifications are disabled rather than
// silently dropped.
func NewTransport(server string, portNum int, sender, password string) (port.MailTransport, error) {
	if server == "" {
		return nil, fmt.Errorf("smtp server not configured")
	}
	if sender == "" || password == "" {
		return nil, fmt.Errorf("sender credentials not configured")
	}
	if portNum == 0 {
		portNum = 587
	}
	return &smtpTransport{
		server:   server,
		port:     portNum,
		sender:   sender,
		password: password,
	}, nil
}

func (t *smtpTransport) Send(ctx context.Context, m port.OutboundMail) error {
	msg := mail.NewMsg()
	if err := msg.From(t.sender); err != nil {
		return fmt.Errorf("set sender %s: %w", t.sender, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("set recipient %s: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.TextBody)
	if m.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTMLBody)
	}

	client, err := mail.NewClient(t.server,
		mail.WithPort(t.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.sender),
		mail.WithPassword(t.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
