// Package relay exposes the boundary HTTP API: a thin mapping from client
// intent to provider calls, with retry and bounded waiting layered in from
// the poll package. The relay holds no durable state — the provider is the
// source of truth and every response is derived from a live (or briefly
// cached) provider payload.
package relay

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"meetbot/archive"
	"meetbot/events"
	"meetbot/poll"
	"meetbot/provider"
	"meetbot/types"
)

// Options wires a Server. Cache, Events and Archiver are optional; nil
// disables the corresponding feature.
type Options struct {
	Provider *provider.Client
	Policy   poll.Policy
	Cache    *Cache
	Events   *events.Publisher
	Archiver *archive.Archiver
	Log      zerolog.Logger
}

// Server handles the relay API.
type Server struct {
	provider *provider.Client
	policy   poll.Policy
	cache    *Cache
	events   *events.Publisher
	archiver *archive.Archiver
	log      zerolog.Logger

	mu         sync.Mutex
	lastPhases map[string]types.Phase
}

// NewServer creates a relay server.
func NewServer(opts Options) *Server {
	return &Server{
		provider:   opts.Provider,
		policy:     opts.Policy,
		cache:      opts.Cache,
		events:     opts.Events,
		archiver:   opts.Archiver,
		log:        opts.Log.With().Str("component", "relay").Logger(),
		lastPhases: make(map[string]types.Phase),
	}
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/create-bot", s.handleCreateBot)
	api.GET("/bot/:botId", s.handleGetBot)
	api.GET("/bot/:botId/recordings", s.handleGetRecordings)
	api.POST("/bot/:botId/recordings/:recordingId/archive", s.handleArchiveRecording)

	return r
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	s.log.Info().Str("port", port).Msg("starting relay server")
	return s.Router().Run(":" + port)
}

// phaseChanged records the phase last observed for a bot and reports whether
// it differs from the previous observation. Entries for ended bots are
// dropped so the map does not grow with dead sessions.
func (s *Server) phaseChanged(botID string, phase types.Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, seen := s.lastPhases[botID]
	if seen && last == phase {
		return false
	}

	if phase.Terminal() {
		delete(s.lastPhases, botID)
	} else {
		s.lastPhases[botID] = phase
	}
	return true
}

// publishTransition emits a lifecycle event when the bot's phase moved since
// the relay last saw it. No-op without a publisher.
func (s *Server) publishTransition(bot *types.Bot) {
	phase := bot.Phase()
	if !s.phaseChanged(bot.ID, phase) {
		return
	}
	if s.events != nil {
		s.events.Publish(bot.ID, phase, bot.Status)
	}
}
