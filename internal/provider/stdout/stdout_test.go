package stdout

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mail "github.com/curry-packages/mail-utils"
)

func TestName(t *testing.T) {
	t.Parallel()

	if got := New().Name(); got != "stdout" {
		t.Errorf("Name(): got %q, want %q", got, "stdout")
	}
}

func TestSend_BasicMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &mail.Message{
		From:    "sender@example.com",
		Subject: "Monthly Report",
		Recipients: []mail.RecipientOption{
			mail.To("alice@example.com"),
			mail.To("bob@example.com"),
		},
		Body: "Please find the numbers below.",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "From: sender@example.com") {
		t.Error("output missing From line")
	}
	if !strings.Contains(output, "To  : alice@example.com, bob@example.com") {
		t.Error("output missing To line")
	}
	if !strings.Contains(output, "Subject: Monthly Report") {
		t.Error("output missing Subject line")
	}
	if !strings.Contains(output, "Please find the numbers below.") {
		t.Error("output missing body text")
	}
	if !strings.HasPrefix(output, separator) {
		t.Error("output should start with separator line")
	}
	if !strings.HasSuffix(output, separator) {
		t.Error("output should end with separator line")
	}
}

func TestSend_WithCcAndBcc(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &mail.Message{
		From:    "sender@example.com",
		Subject: "With copies",
		Recipients: []mail.RecipientOption{
			mail.To("alice@example.com"),
			mail.Cc("carol@example.com"),
			mail.Bcc("dave@example.com"),
		},
		Body: "Hello",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Cc  : carol@example.com") {
		t.Error("output missing Cc line")
	}
	if !strings.Contains(output, "Bcc : dave@example.com") {
		t.Error("output missing Bcc line")
	}
}

func TestSend_NoCc(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &mail.Message{
		From:       "sender@example.com",
		Subject:    "No copies",
		Recipients: []mail.RecipientOption{mail.To("alice@example.com")},
		Body:       "Body",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "Cc") {
		t.Error("output should not contain a Cc line when there are no Cc recipients")
	}
}

func TestSend_ShowsBodyUnsanitized(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &mail.Message{
		From:       "sender@example.com",
		Subject:    "CRs",
		Recipients: []mail.RecipientOption{mail.To("alice@example.com")},
		Body:       "line1\r\nline2\r",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "line1\r\nline2\r") {
		t.Error("preview should show the body verbatim, carriage returns included")
	}
}
