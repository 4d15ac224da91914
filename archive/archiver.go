// Package archive copies finished recordings from the provider's download
// URLs into an S3 bucket, so they outlive the provider's retention window.
package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/rs/zerolog"

	"meetbot/types"
)

// ObjectStore is the storage surface the archiver needs.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archiver streams recording media into an object store.
type Archiver struct {
	store      ObjectStore
	httpClient *http.Client
	bucket     string
	prefix     string
	log        zerolog.Logger
}

// NewArchiver creates an Archiver writing under bucket/prefix.
func NewArchiver(store ObjectStore, bucket, prefix string, log zerolog.Logger) *Archiver {
	return &Archiver{
		store:      store,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		bucket:     bucket,
		prefix:     prefix,
		log:        log.With().Str("component", "archive").Logger(),
	}
}

// Archive downloads the recording's media and stores it under
// recordings/<botID>/<recordingID>.mp4, returning the object key. Archiving
// the same recording twice is a no-op returning the existing key. The
// recording must have a download URL, i.e. the provider must be done
// processing it.
func (a *Archiver) Archive(ctx context.Context, botID string, rec types.Recording) (string, error) {
	if rec.DownloadURL == "" {
		return "", fmt.Errorf("recording %s has no download URL yet", rec.ID)
	}

	key := path.Join(a.prefix, "recordings", botID, rec.ID+".mp4")

	exists, err := a.store.Exists(ctx, a.bucket, key)
	if err != nil {
		return "", fmt.Errorf("check existing archive: %w", err)
	}
	if exists {
		a.log.Info().Str("key", key).Msg("recording already archived")
		return key, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download recording %s: %w", rec.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download recording %s: unexpected status %d", rec.ID, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	if err := a.store.Put(ctx, a.bucket, key, resp.Body, contentType); err != nil {
		return "", fmt.Errorf("upload recording %s: %w", rec.ID, err)
	}

	a.log.Info().Str("bot_id", botID).Str("recording_id", rec.ID).Str("key", key).Msg("recording archived")
	return key, nil
}
