package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetbot/archive"
	"meetbot/types"
)

type memStore struct {
	objects map[string][]byte
}

func (m *memStore) Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memStore) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, ok := m.objects[bucket+"/"+key]
	return ok, nil
}

func TestArchiveRecording(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("recording bytes"))
	}))
	defer media.Close()

	fake := &fakeProvider{
		onGet: func(call int, w http.ResponseWriter, r *http.Request) {
			writeBot(w, types.Bot{
				ID:     "abc123",
				Status: "ended",
				Recordings: []types.Recording{
					{ID: "r1", Status: "done", DownloadURL: media.URL + "/r1.mp4"},
				},
			})
		},
	}

	store := &memStore{objects: make(map[string][]byte)}
	_, router := newTestServer(t, fake, func(o *Options) {
		o.Archiver = archive.NewArchiver(store, "meet-archive", "", zerolog.Nop())
	})

	w := perform(router, http.MethodPost, "/api/bot/abc123/recordings/r1/archive", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "recordings/abc123/r1.mp4", resp["key"])
	assert.Equal(t, []byte("recording bytes"), store.objects["meet-archive/recordings/abc123/r1.mp4"])
}

func TestArchiveUnknownRecording(t *testing.T) {
	fake := &fakeProvider{
		onGet: func(call int, w http.ResponseWriter, r *http.Request) {
			writeBot(w, types.Bot{ID: "abc123", Status: "ended"})
		},
	}

	store := &memStore{objects: make(map[string][]byte)}
	_, router := newTestServer(t, fake, func(o *Options) {
		o.Archiver = archive.NewArchiver(store, "meet-archive", "", zerolog.Nop())
	})

	w := perform(router, http.MethodPost, "/api/bot/abc123/recordings/nope/archive", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "recording not found", resp.Error)
}
