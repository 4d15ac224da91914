package relay

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"meetbot/poll"
	"meetbot/types"
)

// handleCreateBot forwards a join request to the provider and returns the
// created bot payload unmodified. Creation goes through the retry executor
// like every other provider call; the provider deduplicates join requests
// per meeting, so a retried create is safe.
//
// POST /api/create-bot
func (s *Server) handleCreateBot(c *gin.Context) {
	var req types.CreateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "meeting_url is required"})
		return
	}

	bot, err := poll.Do(c.Request.Context(), s.policy, func(ctx context.Context) (*types.Bot, error) {
		return s.provider.CreateBot(ctx, req.MeetingURL)
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.log.Info().Str("bot_id", bot.ID).Str("meeting_url", req.MeetingURL).Msg("bot created")
	s.publishTransition(bot)
	c.JSON(http.StatusOK, bot)
}

// handleGetBot returns the bot's current status, waiting out the "joining"
// phase up to the configured budget so most callers see a settled answer. A
// fresh cached payload short-circuits the provider entirely.
//
// GET /api/bot/:botId
func (s *Server) handleGetBot(c *gin.Context) {
	botID := c.Param("botId")

	if s.cache != nil {
		if bot, ok := s.cache.Get(c.Request.Context(), botID); ok {
			c.JSON(http.StatusOK, bot)
			return
		}
	}

	bot, err := poll.AwaitSettled(c.Request.Context(), s.policy, s.fetchBot(botID))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if s.cache != nil {
		s.cache.Set(c.Request.Context(), bot)
	}
	s.publishTransition(bot)
	c.JSON(http.StatusOK, bot)
}

// handleGetRecordings returns the bot's recordings, waiting briefly for the
// provider to finish processing. An empty list is a valid answer, not an
// error.
//
// GET /api/bot/:botId/recordings
func (s *Server) handleGetRecordings(c *gin.Context) {
	botID := c.Param("botId")

	recordings, err := poll.AwaitRecordings(c.Request.Context(), s.policy, s.fetchBot(botID))
	if err != nil {
		s.writeError(c, err)
		return
	}

	if recordings == nil {
		recordings = []types.Recording{}
	}
	c.JSON(http.StatusOK, types.RecordingsResponse{Recordings: recordings})
}

// handleArchiveRecording copies one finished recording into the configured
// S3 bucket and returns the object key. Responds 501 when no bucket is
// configured.
//
// POST /api/bot/:botId/recordings/:recordingId/archive
func (s *Server) handleArchiveRecording(c *gin.Context) {
	if s.archiver == nil {
		c.JSON(http.StatusNotImplemented, types.ErrorResponse{Error: "recording archive is not configured"})
		return
	}

	botID := c.Param("botId")
	recordingID := c.Param("recordingId")

	bot, err := poll.Do(c.Request.Context(), s.policy, s.fetchBot(botID))
	if err != nil {
		s.writeError(c, err)
		return
	}

	for _, rec := range bot.Recordings {
		if rec.ID != recordingID {
			continue
		}
		key, err := s.archiver.Archive(c.Request.Context(), botID, rec)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": key})
		return
	}

	c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "recording not found"})
}

func (s *Server) fetchBot(botID string) poll.Fetch {
	return func(ctx context.Context) (*types.Bot, error) {
		return s.provider.GetBot(ctx, botID)
	}
}
