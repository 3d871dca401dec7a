package email

import (
	"context"
	"sync"

	"github.com/authcove/authcove"
)

// SentMessage is one message recorded by MockClient.
type SentMessage struct {
	Recipient authcove.Email
	Subject   string
	Content   string
}

// MockClient records messages instead of delivering them. Set Err to
// force Send failures.
type MockClient struct {
	Err error

	mu   sync.Mutex
	sent []SentMessage
}

// Send records the message, or returns Err when set.
func (c *MockClient) Send(ctx context.Context, recipient authcove.Email, subject, content string) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, SentMessage{
		Recipient: recipient,
		Subject:   subject,
		Content:   content,
	})
	return nil
}

// Sent returns a copy of the recorded messages.
func (c *MockClient) Sent() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}

var _ authcove.EmailClient = (*MockClient)(nil)
