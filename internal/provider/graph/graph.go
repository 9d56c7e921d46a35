package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mail "github.com/curry-packages/mail-utils"
)

// ProviderConfig holds the configuration for creating a Provider.
type ProviderConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Sender       string
}

// Provider sends messages via the Microsoft Graph API using OAuth2 client
// credentials authentication. Unlike the mailcmd backend there is no exit
// code to inspect; failures arrive as HTTP error responses.
type Provider struct {
	sender     string
	graphURL   string
	httpClient *http.Client
	token      *tokenSource
}

// New creates a Provider with the given configuration.
func New(cfg ProviderConfig) *Provider {
	tokenURL := fmt.Sprintf(
		"https://login.microsoftonline.com/%s/oauth2/v2.0/token",
		cfg.TenantID,
	)

	client := &http.Client{Timeout: 30 * time.Second}

	return &Provider{
		sender:     cfg.Sender,
		graphURL:   fmt.Sprintf("https://graph.microsoft.com/v1.0/users/%s/sendMail", cfg.Sender),
		httpClient: client,
		token:      newTokenSource(tokenURL, cfg.ClientID, cfg.ClientSecret, client),
	}
}

// newWithOverrides creates a Provider with custom URLs and HTTP client,
// used for testing.
func newWithOverrides(cfg ProviderConfig, graphURL, tokenURL string, client *http.Client) *Provider {
	return &Provider{
		sender:     cfg.Sender,
		graphURL:   graphURL,
		httpClient: client,
		token:      newTokenSource(tokenURL, cfg.ClientID, cfg.ClientSecret, client),
	}
}

// Send delivers a message via the Graph API sendMail endpoint. A 401
// triggers one token re-fetch and a second attempt; every other failure is
// returned to the caller as-is, with no retrying of transient errors.
func (p *Provider) Send(ctx context.Context, msg *mail.Message) error {
	reqBody := buildSendMailRequest(msg)
	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	err = p.doSendRequest(ctx, bodyJSON)
	if apiErr, ok := err.(*apiError); ok && apiErr.statusCode == http.StatusUnauthorized {
		if _, refreshErr := p.token.invalidate(ctx); refreshErr != nil {
			return fmt.Errorf("token refresh failed: %w", refreshErr)
		}
		return p.doSendRequest(ctx, bodyJSON)
	}
	return err
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "msgraph"
}

// doSendRequest performs a single HTTP request to the sendMail endpoint.
func (p *Provider) doSendRequest(ctx context.Context, bodyJSON []byte) error {
	token, err := p.token.get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.graphURL, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendMail request failed: %w", err)
	}
	defer resp.Body.Close()

	// HTTP 202 Accepted is success for sendMail
	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)

	var graphErrResp graphErrorResponse
	if jsonErr := json.Unmarshal(body, &graphErrResp); jsonErr == nil && graphErrResp.Error.Message != "" {
		return &apiError{statusCode: resp.StatusCode, message: graphErrResp.Error.Message}
	}
	return &apiError{statusCode: resp.StatusCode, message: string(body)}
}

// apiError is an error response from the Graph API.
type apiError struct {
	statusCode int
	message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("Graph API error (HTTP %d): %s", e.statusCode, e.message)
}
