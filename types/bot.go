package types

import "time"

// Bot is the provider's bot resource. The ID is the single correlation key
// for all status and recording polls and never changes once assigned.
type Bot struct {
	ID         string      `json:"id"`
	MeetingURL string      `json:"meeting_url,omitempty"`
	Status     string      `json:"status"`
	Recordings []Recording `json:"recordings,omitempty"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
}

// Phase returns the normalized lifecycle phase for the bot's current status.
func (b *Bot) Phase() Phase {
	return ParsePhase(b.Status)
}

// Recording describes one captured recording artifact attached to a bot.
// DownloadURL is empty until the provider finishes processing.
type Recording struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	Duration    int       `json:"duration,omitempty"`
}

// CreateBotRequest is the boundary request body for creating a bot.
type CreateBotRequest struct {
	MeetingURL string `json:"meeting_url" binding:"required"`
}

// RecordingsResponse wraps a bot's recordings as a named list field.
type RecordingsResponse struct {
	Recordings []Recording `json:"recordings"`
}

// ErrorResponse is the boundary error shape for all relay endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
