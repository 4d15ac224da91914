package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbot/types"
)

func TestCreateBot(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bots", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://zoom.us/j/123", req["meeting_url"])

		json.NewEncoder(w).Encode(types.Bot{ID: "abc123", Status: "joining", MeetingURL: req["meeting_url"]})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	bot, err := c.CreateBot(context.Background(), "https://zoom.us/j/123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", bot.ID)
	assert.Equal(t, "joining", bot.Status)
	assert.Equal(t, "Token secret", gotAuth)
}

func TestCreateBotMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "joining"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	_, err := c.CreateBot(context.Background(), "https://zoom.us/j/123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bot id")
}

func TestGetBot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bots/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(types.Bot{
			ID:     "abc123",
			Status: "joined",
			Recordings: []types.Recording{
				{ID: "r1", Status: "processing"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	bot, err := c.GetBot(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, types.PhaseJoined, bot.Phase())
	require.Len(t, bot.Recordings, 1)
	assert.Equal(t, "r1", bot.Recordings[0].ID)
}

func TestGetBotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "bot not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	_, err := c.GetBot(context.Background(), "gone")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, StatusCode(err, 0))
	assert.Contains(t, err.Error(), "bot not found")
}

func TestErrorMessageFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"bad things"}`, "bad things"},
		{"message field", `{"message":"also bad"}`, "also bad"},
		{"detail field", `{"detail":"quite bad"}`, "quite bad"},
		{"raw text", `upstream exploded`, "upstream exploded"},
		{"empty body", ``, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "secret", 5*time.Second)
			_, err := c.GetBot(context.Background(), "abc123")
			require.Error(t, err)
			assert.False(t, IsNotFound(err))
			assert.Contains(t, err.Error(), tc.want)
			assert.Equal(t, http.StatusInternalServerError, StatusCode(err, 0))
		})
	}
}

func TestStatusCodeFallback(t *testing.T) {
	assert.Equal(t, 500, StatusCode(context.DeadlineExceeded, 500))
}
