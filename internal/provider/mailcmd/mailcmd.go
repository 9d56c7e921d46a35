// Package mailcmd implements a Provider that delivers messages through the
// local mail transfer command.
package mailcmd

import (
	"context"
	"log/slog"

	mail "github.com/curry-packages/mail-utils"
)

// Provider dispatches messages through a mail.Mailer, which shells out to
// the configured mail command.
type Provider struct {
	mailer *mail.Mailer
}

// New creates a mailcmd Provider for the given command name. An empty
// command selects mail.DefaultCommand.
func New(command string, logger *slog.Logger) *Provider {
	return &Provider{
		mailer: mail.New(mail.MailerConfig{
			Command: command,
			Logger:  logger,
		}),
	}
}

// NewWithMailer creates a Provider around an existing Mailer. This is
// useful for testing with fake collaborators.
func NewWithMailer(m *mail.Mailer) *Provider {
	return &Provider{mailer: m}
}

// Send dispatches the message through the local mail command.
func (p *Provider) Send(ctx context.Context, msg *mail.Message) error {
	return p.mailer.Send(ctx, msg)
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mailcmd"
}
