package port

import "context"

// OutboundMail is a fully rendered message ready for a transport.
type OutboundMail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// MailTransport delivers rendered messages. Implementations live under
// internal/email (smtp, ses, noop).
type MailTransport interface {
	Send(ctx context.Context, mail OutboundMail) error
}
