package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"skybook/pkg/logger"
)

var (
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrEmptyMessage     = errors.New("message has no body")
)

// Message carries both renderings of a mail. Either body may be empty, not both.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) Validate() error {
	if _, err := mail.ParseAddress(strings.TrimSpace(m.To)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, m.To)
	}
	if m.Text == "" && m.HTML == "" {
		return ErrEmptyMessage
	}
	return nil
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of relaying them. It is used
// when no relay credentials are configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	m.log.WithRequest(ctx).Info("Mail relay not configured, message logged",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
