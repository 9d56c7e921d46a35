// Package provider defines the interface for mail delivery backends.
package provider

import (
	"context"

	mail "github.com/curry-packages/mail-utils"
)

// Provider is the interface that mail delivery backends must implement.
// Each backend handles the actual dispatch of an assembled message, whether
// through the local mail command, an HTTP API, or a preview sink.
type Provider interface {
	// Send delivers a message through this backend.
	// It returns an error if the delivery fails.
	Send(ctx context.Context, msg *mail.Message) error

	// Name returns the human-readable name of this backend.
	Name() string
}
