package noop

import (
	"context"
	"log"

	"mathsolver/internal/port"
)

type noopTransport struct{}

// NewTransport creates a no-op MailTransport that logs messages to stdout.
// Used when email credentials are not configured.
func NewTransport() port.MailTransport {
	return noopTransport{}
}

func (noopTransport) Send(_ context.Context, m port.OutboundMail) error {
	log.Printf("[NOOP EMAIL] to=%s subject=%q", m.To, m.Subject)
	return nil
}
