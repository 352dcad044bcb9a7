// Package line implements the messaging channel: inbound webhook
// verification and event parsing, and the outbound reply client.
package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mtakahash/recipedog/internal/domain"
	"github.com/mtakahash/recipedog/internal/logger"
)

// DefaultReplyEndpoint is the production reply API.
const DefaultReplyEndpoint = "https://api.line.me/v2/bot/message/reply"

// Compile-time interface check.
var _ domain.Replier = (*Client)(nil)

// ClientOption configures the reply client.
type ClientOption func(*Client)

// WithEndpoint overrides the reply endpoint, for tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client sends replies through the channel's reply API. Delivery is best
// effort: callers log failures and move on, there is no retry.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      *logger.Logger
}

// NewClient creates a reply client with the channel access token.
func NewClient(token string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultReplyEndpoint,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyPayload struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// Reply sends one text message keyed by the event's reply token.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	body, err := json.Marshal(replyPayload{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("line: marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("line: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	c.log.Debug("POST %s (%d bytes)", c.endpoint, len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("line: reply request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("line: reply API %s: %s", resp.Status, string(respBody))
	}
	return nil
}
