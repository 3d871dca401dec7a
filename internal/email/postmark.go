// Package email implements the authcove EmailClient port: a Postmark
// HTTP client for production and a recording mock for tests.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/authcove/authcove"
)

// DefaultPostmarkBaseURL is Postmark's single-email endpoint.
const DefaultPostmarkBaseURL = "https://api.postmarkapp.com/email"

const serverTokenHeader = "X-Postmark-Server-Token"

// PostmarkClient delivers mail through the Postmark HTTP API. The
// caller's context bounds each request; the embedded http.Client may
// carry an additional transport-level timeout.
type PostmarkClient struct {
	httpClient *http.Client
	baseURL    string
	sender     authcove.Email
	authToken  string
}

// NewPostmarkClient creates a client sending from sender. An empty
// baseURL means DefaultPostmarkBaseURL; a nil httpClient means
// http.DefaultClient.
func NewPostmarkClient(httpClient *http.Client, baseURL string, sender authcove.Email, authToken string) *PostmarkClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultPostmarkBaseURL
	}
	return &PostmarkClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		sender:     sender,
		authToken:  authToken,
	}
}

type postmarkMessage struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	TextBody      string `json:"TextBody"`
	MessageStream string `json:"MessageStream"`
}

// Send posts a single plain-text message.
func (c *PostmarkClient) Send(ctx context.Context, recipient authcove.Email, subject, content string) error {
	body, err := json.Marshal(postmarkMessage{
		From:          c.sender.String(),
		To:            recipient.String(),
		Subject:       subject,
		TextBody:      content,
		MessageStream: "outbound",
	})
	if err != nil {
		return fmt.Errorf("encode postmark message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build postmark request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(serverTokenHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send postmark request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded slice of the body for the error message;
		// Postmark returns a short JSON explanation.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("postmark responded %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

var _ authcove.EmailClient = (*PostmarkClient)(nil)
