// Package provider is the HTTP client for the external meeting-bot service.
// It only consumes the provider's API: create a bot, fetch a bot by id. All
// waiting and retry policy lives in the poll package.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"meetbot/types"
)

// Client talks to the bot provider API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a provider client. The timeout bounds every individual
// HTTP call; retries are layered on top by callers.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateBot asks the provider to join the given meeting and returns the
// created bot resource, including the job identifier used for all
// subsequent polls.
func (c *Client) CreateBot(ctx context.Context, meetingURL string) (*types.Bot, error) {
	payload := map[string]string{"meeting_url": meetingURL}

	var bot types.Bot
	if err := c.doJSONRequest(ctx, http.MethodPost, "/bots", payload, &bot); err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	if bot.ID == "" {
		return nil, fmt.Errorf("create bot: provider returned no bot id")
	}
	return &bot, nil
}

// GetBot fetches the bot resource by id. The provider embeds the current
// status string and any recordings discovered so far.
func (c *Client) GetBot(ctx context.Context, botID string) (*types.Bot, error) {
	var bot types.Bot
	path := "/bots/" + url.PathEscape(botID)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &bot); err != nil {
		return nil, fmt.Errorf("get bot %s: %w", botID, err)
	}
	return &bot, nil
}
