// Package stdout implements a Provider that prints message previews to
// standard output instead of dispatching them.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	mail "github.com/curry-packages/mail-utils"
)

const separator = "========================================\n"

// Provider writes the rendered preview of each message to its writer.
// It never touches the process boundary and always succeeds, which makes
// it the dry-run backend.
type Provider struct {
	// writer is the output destination, defaulting to os.Stdout.
	writer io.Writer
}

// New creates a stdout Provider that writes to os.Stdout.
func New() *Provider {
	return &Provider{writer: os.Stdout}
}

// NewWithWriter creates a stdout Provider that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Provider {
	return &Provider{writer: w}
}

// Send prints the message preview, framed by separator lines. The preview
// shows the body unmodified; sanitization applies only to real dispatch.
func (p *Provider) Send(_ context.Context, msg *mail.Message) error {
	_, err := fmt.Fprint(p.writer, separator+msg.Preview()+separator)
	if err != nil {
		// A preview that cannot be written has nowhere useful to go;
		// the provider contract is that previews always succeed.
		return nil
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "stdout"
}
