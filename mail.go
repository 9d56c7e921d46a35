// Package mail sends messages through a local mail transfer command and
// renders previews of would-be messages for debugging and testing.
//
// The core is pure: recipient options are partitioned into To/Cc/Bcc groups
// and turned into either an ordered command argument list or a textual
// preview. The process boundary sits behind the Locator and Runner
// interfaces so the core stays testable without spawning real processes.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultCommand is the mail command invoked when none is configured.
const DefaultCommand = "mailx"

// ErrCommandNotFound reports that the mail command is absent from the
// search path. No invocation is attempted in that case.
var ErrCommandNotFound = errors.New("mail command not found")

// ErrNoRecipients reports a send with no To addresses. Messages without a
// primary recipient are rejected before the mail command is consulted.
var ErrNoRecipients = errors.New("message has no To recipients")

// SendError reports a mail command invocation that exited non-zero. It
// carries the captured output streams so callers can surface diagnostics.
type SendError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// Message is a fully assembled outbound message.
type Message struct {
	From       string
	Subject    string
	Recipients []RecipientOption
	Body       string
}

// Preview renders the message as text without any side effect.
func (m *Message) Preview() string {
	return RenderPreview(m.From, m.Subject, m.Recipients, m.Body)
}

// MailerConfig holds the collaborators and settings for a Mailer.
// Zero-value fields are replaced with working defaults by New.
type MailerConfig struct {
	// Command is the name of the mail command, defaulting to DefaultCommand.
	Command string
	// Locator checks for the command on the search path.
	Locator Locator
	// Runner invokes the command.
	Runner Runner
	// Logger receives diagnostic output captured from the command.
	Logger *slog.Logger
}

// Mailer dispatches messages through the local mail command. It holds no
// mutable state and is safe for concurrent use.
type Mailer struct {
	cmd     string
	locator Locator
	runner  Runner
	log     *slog.Logger
}

// New creates a Mailer, filling in system defaults for any collaborator
// left unset in the config.
func New(cfg MailerConfig) *Mailer {
	if cfg.Command == "" {
		cfg.Command = DefaultCommand
	}
	if cfg.Locator == nil {
		cfg.Locator = execLocator{}
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Mailer{
		cmd:     cfg.Command,
		locator: cfg.Locator,
		runner:  cfg.Runner,
		log:     cfg.Logger,
	}
}

// SendWithOptions sends a message to the recipients named by options. The
// body has its carriage returns stripped before it is fed to the mail
// command over stdin. Captured stdout is logged at info and stderr at warn,
// stdout first, regardless of the exit code; a non-zero exit is returned as
// a *SendError.
func (m *Mailer) SendWithOptions(ctx context.Context, from, subject string, options []RecipientOption, body string) error {
	to, _, _ := Partition(options)
	if len(to) == 0 {
		return ErrNoRecipients
	}

	if !m.locator.Exists(m.cmd) {
		return fmt.Errorf("%w: %q", ErrCommandNotFound, m.cmd)
	}

	args := BuildHeaderArguments(from, subject, options)
	res, err := m.runner.Run(ctx, m.cmd, args, sanitizeBody(body))
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", m.cmd, err)
	}

	if res.Stdout != "" {
		m.log.Info("mail command output",
			"command", m.cmd,
			"stdout", res.Stdout,
		)
	}
	if res.Stderr != "" {
		m.log.Warn("mail command error output",
			"command", m.cmd,
			"stderr", res.Stderr,
		)
	}

	if res.ExitCode != 0 {
		return &SendError{
			Command:  m.cmd,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return nil
}

// SendSimple sends a message with a single To recipient.
func (m *Mailer) SendSimple(ctx context.Context, from, to, subject, body string) error {
	return m.SendWithOptions(ctx, from, subject, []RecipientOption{To(to)}, body)
}

// Send dispatches an assembled Message.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	return m.SendWithOptions(ctx, msg.From, msg.Subject, msg.Recipients, msg.Body)
}

// SendWithOptions sends a message through a Mailer with default
// collaborators.
func SendWithOptions(ctx context.Context, from, subject string, options []RecipientOption, body string) error {
	return New(MailerConfig{}).SendWithOptions(ctx, from, subject, options, body)
}

// SendSimple sends a single-recipient message through a Mailer with default
// collaborators.
func SendSimple(ctx context.Context, from, to, subject, body string) error {
	return New(MailerConfig{}).SendSimple(ctx, from, to, subject, body)
}
