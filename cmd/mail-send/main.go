// Package main is the entry point for the mail-send tool. It assembles a
// message from flags and standard input, then dispatches it through the
// configured delivery backend or renders a preview of it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	mail "github.com/curry-packages/mail-utils"
	"github.com/curry-packages/mail-utils/internal/config"
	"github.com/curry-packages/mail-utils/internal/provider"
	"github.com/curry-packages/mail-utils/internal/provider/graph"
	"github.com/curry-packages/mail-utils/internal/provider/mailcmd"
	"github.com/curry-packages/mail-utils/internal/provider/ses"
	"github.com/curry-packages/mail-utils/internal/provider/stdout"
)

// addressList collects a repeatable address flag in the order given on the
// command line.
type addressList []string

func (a *addressList) String() string {
	return strings.Join(*a, ",")
}

func (a *addressList) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	var to, cc, bcc addressList
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	from := flag.String("from", "", "sender address (overrides mail.from from the config)")
	subject := flag.String("subject", "", "message subject")
	preview := flag.Bool("preview", false, "render the message to stdout instead of sending it")
	flag.Var(&to, "to", "To recipient address (repeatable)")
	flag.Var(&cc, "cc", "Cc recipient address (repeatable)")
	flag.Var(&bcc, "bcc", "Bcc recipient address (repeatable)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogger(cfg.Logging.Level)

	sender := *from
	if sender == "" {
		sender = cfg.Mail.From
	}
	if sender == "" {
		slog.Error("no sender address: pass -from or set mail.from / MAIL_FROM")
		os.Exit(2)
	}

	// The body arrives over stdin so it can be piped from other tools.
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.Error("failed to read message body from stdin", "error", err)
		os.Exit(1)
	}

	msg := &mail.Message{
		From:       sender,
		Subject:    *subject,
		Recipients: buildOptions(to, cc, bcc),
		Body:       string(body),
	}

	prov := selectProvider(cfg, *preview)

	slog.Info("dispatching message",
		"provider", prov.Name(),
		"to", len(to),
		"cc", len(cc),
		"bcc", len(bcc),
	)

	if err := prov.Send(context.Background(), msg); err != nil {
		reportSendFailure(err)
		os.Exit(1)
	}
}

// buildOptions turns the three flag lists into a single option list. The
// grouping into header and positional arguments happens later; here the
// per-kind order is all that matters.
func buildOptions(to, cc, bcc []string) []mail.RecipientOption {
	options := make([]mail.RecipientOption, 0, len(to)+len(cc)+len(bcc))
	for _, addr := range to {
		options = append(options, mail.To(addr))
	}
	for _, addr := range cc {
		options = append(options, mail.Cc(addr))
	}
	for _, addr := range bcc {
		options = append(options, mail.Bcc(addr))
	}
	return options
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// selectProvider chooses the delivery backend. A preview run always uses
// the stdout backend. Otherwise the provider config key decides; when it is
// empty, a fully configured API backend is auto-detected before falling
// back to the local mail command.
func selectProvider(cfg *config.Config, preview bool) provider.Provider {
	if preview {
		return stdout.New()
	}

	switch cfg.Provider {
	case "ses":
		if !cfg.SESConfigured() {
			slog.Error("SES provider selected but SES_REGION and SES_SENDER are required")
			os.Exit(1)
		}
		return newSESProvider(cfg)

	case "msgraph", "graph":
		if !cfg.GraphConfigured() {
			slog.Error("Graph provider selected but GRAPH_TENANT_ID, GRAPH_CLIENT_ID, GRAPH_CLIENT_SECRET, and GRAPH_SENDER are required")
			os.Exit(1)
		}
		return newGraphProvider(cfg)

	case "stdout":
		return stdout.New()

	case "mailcmd":
		return mailcmd.New(cfg.Mail.Command, slog.Default())

	case "":
		// Auto-detection: a configured API backend wins over the local command.
		if cfg.GraphConfigured() {
			slog.Info("using Microsoft Graph provider (auto-detected)",
				"sender", cfg.Graph.Sender,
			)
			return newGraphProvider(cfg)
		}
		if cfg.SESConfigured() {
			slog.Info("using AWS SES provider (auto-detected)",
				"region", cfg.SES.Region,
				"sender", cfg.SES.Sender,
			)
			return newSESProvider(cfg)
		}
		return mailcmd.New(cfg.Mail.Command, slog.Default())

	default:
		slog.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
		return nil
	}
}

func newSESProvider(cfg *config.Config) provider.Provider {
	p, err := ses.New(context.Background(), ses.ProviderConfig{
		Region:          cfg.SES.Region,
		AccessKeyID:     cfg.SES.AccessKeyID,
		SecretAccessKey: cfg.SES.SecretAccessKey,
		Sender:          cfg.SES.Sender,
	})
	if err != nil {
		slog.Error("failed to create SES provider", "error", err)
		os.Exit(1)
	}
	return p
}

func newGraphProvider(cfg *config.Config) provider.Provider {
	return graph.New(graph.ProviderConfig{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		Sender:       cfg.Graph.Sender,
	})
}

// reportSendFailure logs a failed dispatch with as much structure as the
// error carries.
func reportSendFailure(err error) {
	var sendErr *mail.SendError
	switch {
	case errors.As(err, &sendErr):
		slog.Error("send failed",
			"command", sendErr.Command,
			"exit_code", sendErr.ExitCode,
		)
	case errors.Is(err, mail.ErrCommandNotFound):
		slog.Error("mail command not found on PATH", "error", err)
	case errors.Is(err, mail.ErrNoRecipients):
		fmt.Fprintln(os.Stderr, "mail-send: at least one -to recipient is required")
	default:
		slog.Error("send failed", "error", err)
	}
}
