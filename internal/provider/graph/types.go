// Package graph implements a Provider that dispatches messages via the
// Microsoft Graph API.
package graph

import (
	mail "github.com/curry-packages/mail-utils"
)

// sendMailRequest is the top-level request body for the Graph API sendMail endpoint.
type sendMailRequest struct {
	Message sendMailMessage `json:"message"`
}

// sendMailMessage represents the message portion of a sendMail request.
type sendMailMessage struct {
	Subject       string      `json:"subject"`
	Body          messageBody `json:"body"`
	ToRecipients  []recipient `json:"toRecipients"`
	CcRecipients  []recipient `json:"ccRecipients,omitempty"`
	BccRecipients []recipient `json:"bccRecipients,omitempty"`
}

// messageBody represents the body of a message.
type messageBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// recipient represents a message recipient.
type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

// emailAddress represents an email address in a Graph API request.
type emailAddress struct {
	Address string `json:"address"`
}

// tokenResponse represents the OAuth2 token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// graphErrorResponse represents an error response from the Graph API.
type graphErrorResponse struct {
	Error graphError `json:"error"`
}

// graphError represents the error detail in a Graph API error response.
type graphError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// buildSendMailRequest converts a mail.Message into a Graph API sendMail
// request body. The recipient options are partitioned into the three
// recipient lists; the body is always sent as plain text.
func buildSendMailRequest(msg *mail.Message) *sendMailRequest {
	to, cc, bcc := mail.Partition(msg.Recipients)

	return &sendMailRequest{
		Message: sendMailMessage{
			Subject: msg.Subject,
			Body: messageBody{
				ContentType: "text",
				Content:     msg.Body,
			},
			ToRecipients:  buildRecipients(to),
			CcRecipients:  buildRecipients(cc),
			BccRecipients: buildRecipients(bcc),
		},
	}
}

func buildRecipients(addrs []string) []recipient {
	recipients := make([]recipient, 0, len(addrs))
	for _, addr := range addrs {
		recipients = append(recipients, recipient{
			EmailAddress: emailAddress{Address: addr},
		})
	}
	return recipients
}
