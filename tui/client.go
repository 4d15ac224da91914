package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"meetbot/provider"
	"meetbot/types"
)

// RelayClient is a thin HTTP client for the relay API. It satisfies
// session.Client, so the polling session can drive it directly.
type RelayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient creates a relay client.
func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateBot asks the relay to send a bot into the meeting.
func (c *RelayClient) CreateBot(ctx context.Context, meetingURL string) (*types.Bot, error) {
	payload, err := json.Marshal(types.CreateBotRequest{MeetingURL: meetingURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/create-bot", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doBotRequest(req)
}

// GetBot fetches the bot's current status from the relay.
func (c *RelayClient) GetBot(ctx context.Context, botID string) (*types.Bot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/bot/"+url.PathEscape(botID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.doBotRequest(req)
}

// doBotRequest executes the request and decodes a bot payload. Relay errors
// come back as *provider.APIError so the session can distinguish a 404 from
// transient failures.
func (c *RelayClient) doBotRequest(req *http.Request) (*types.Bot, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var body types.ErrorResponse
		msg := ""
		if err := json.Unmarshal(raw, &body); err == nil {
			msg = body.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &provider.APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	var bot types.Bot
	if err := json.NewDecoder(resp.Body).Decode(&bot); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &bot, nil
}
