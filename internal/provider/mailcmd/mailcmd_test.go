package mailcmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	mail "github.com/curry-packages/mail-utils"
)

// fakeLocator reports a fixed answer.
type fakeLocator struct {
	found bool
}

func (l fakeLocator) Exists(string) bool {
	return l.found
}

// fakeRunner records the invocation and returns a canned result.
type fakeRunner struct {
	result    mail.RunResult
	callCount int
	lastArgs  []string
	lastStdin string
}

func (r *fakeRunner) Run(_ context.Context, _ string, args []string, stdin string) (mail.RunResult, error) {
	r.callCount++
	r.lastArgs = args
	r.lastStdin = stdin
	return r.result, nil
}

func newTestProvider(loc fakeLocator, run *fakeRunner) *Provider {
	return NewWithMailer(mail.New(mail.MailerConfig{
		Locator: loc,
		Runner:  run,
		Logger:  slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}))
}

func TestName(t *testing.T) {
	t.Parallel()

	p := newTestProvider(fakeLocator{found: true}, &fakeRunner{})
	if got := p.Name(); got != "mailcmd" {
		t.Errorf("Name(): got %q, want %q", got, "mailcmd")
	}
}

func TestSend_DelegatesToMailer(t *testing.T) {
	t.Parallel()

	run := &fakeRunner{}
	p := newTestProvider(fakeLocator{found: true}, run)

	msg := &mail.Message{
		From:       "me@x",
		Subject:    "Hi",
		Recipients: []mail.RecipientOption{mail.To("a@x"), mail.Cc("b@x")},
		Body:       "hello\r\nthere",
	}
	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if run.callCount != 1 {
		t.Fatalf("runner call count: got %d, want 1", run.callCount)
	}
	if run.lastStdin != "hello\nthere" {
		t.Errorf("stdin: got %q, want CR-stripped body", run.lastStdin)
	}
}

func TestSend_CommandNotFound(t *testing.T) {
	t.Parallel()

	p := newTestProvider(fakeLocator{found: false}, &fakeRunner{})

	msg := &mail.Message{
		From:       "me@x",
		Subject:    "Hi",
		Recipients: []mail.RecipientOption{mail.To("a@x")},
		Body:       "hello",
	}
	err := p.Send(context.Background(), msg)
	if !errors.Is(err, mail.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}
