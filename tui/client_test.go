package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbot/provider"
	"meetbot/types"
)

func TestRelayClientCreateBot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/create-bot", r.URL.Path)

		var req types.CreateBotRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://zoom.us/j/123", req.MeetingURL)

		json.NewEncoder(w).Encode(types.Bot{ID: "abc123", Status: "joining"})
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	bot, err := c.CreateBot(context.Background(), "https://zoom.us/j/123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", bot.ID)
}

func TestRelayClientGetBot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/bot/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(types.Bot{ID: "abc123", Status: "joined"})
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	bot, err := c.GetBot(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, types.PhaseJoined, bot.Phase())
}

func TestRelayClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(types.ErrorResponse{Error: "bot not found"})
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL)
	_, err := c.GetBot(context.Background(), "expired")

	// The session relies on 404s staying recognizable through the relay.
	require.Error(t, err)
	assert.True(t, provider.IsNotFound(err))
}
