// internal/mail/transport.go
package mail

import "context"

// Message is the provider-neutral email shape. Any transport that can send
// it (SMTP, transactional API) is interchangeable.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Transport delivers a message through one concrete email provider. Transports
// do not retry; delivery guarantees are the provider's concern.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}
