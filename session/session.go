// Package session owns the client-side polling loop for one bot. A Session
// repeatedly fetches bot status on a fixed interval, feeds observations to
// the UI through an update channel, and stops itself on a terminal phase,
// a 404, or too many consecutive failures. Exactly one polling loop is
// active per Session: starting again first cancels the previous loop, so a
// stale bot id can never keep polling in the background.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"meetbot/provider"
	"meetbot/types"
)

// Client fetches a bot resource. Both the relay client and the raw provider
// client satisfy it.
type Client interface {
	GetBot(ctx context.Context, botID string) (*types.Bot, error)
}

// Config is the polling cadence. Zero values fall back to usable defaults.
type Config struct {
	// Interval between status polls. The next poll is armed only after the
	// previous fetch settles, so slow responses never overlap.
	Interval time.Duration

	// ErrorThreshold is the number of consecutive failed polls tolerated
	// before the session stops with a persistent error.
	ErrorThreshold int

	// FinalCheckDelay is the one-shot wait after the meeting ends before
	// checking for recordings.
	FinalCheckDelay time.Duration

	// RecheckSpacing and RecheckAttempts bound the post-meeting recording
	// checks while the provider is still processing.
	RecheckSpacing  time.Duration
	RecheckAttempts int

	// RequestTimeout bounds each individual fetch. Zero means no bound
	// beyond the client's own.
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Second
	}
	if c.ErrorThreshold <= 0 {
		c.ErrorThreshold = 5
	}
	if c.FinalCheckDelay <= 0 {
		c.FinalCheckDelay = 10 * time.Second
	}
	if c.RecheckSpacing <= 0 {
		c.RecheckSpacing = 30 * time.Second
	}
	if c.RecheckAttempts <= 0 {
		c.RecheckAttempts = 5
	}
	return c
}

// Update is one observation pushed to the consumer.
type Update struct {
	BotID      string
	Phase      types.Phase
	Status     string
	StatusText string
	Recordings []types.Recording

	// Err is set on failed polls. With Transient set the UI should keep
	// showing the last status; with Final set the error is persistent.
	Err       error
	Transient bool

	// Final marks that the recurring poll has stopped. A Final update with
	// recordings is the post-meeting recordings result.
	Final bool
}

// Session drives one polling loop at a time.
type Session struct {
	client Client
	cfg    Config

	updates chan Update

	mu         sync.Mutex
	gen        int
	botID      string
	timer      *time.Timer // non-nil iff the recurring poll is armed
	finalTimer *time.Timer // non-nil iff a post-meeting check is pending
	stopc      chan struct{}
	errCount   int
	lastPhase  types.Phase
}

// New creates a Session. No polling starts until Start is called.
func New(client Client, cfg Config) *Session {
	return &Session{
		client:  client,
		cfg:     cfg.withDefaults(),
		updates: make(chan Update, 32),
	}
}

// Updates is the stream of observations. Sends never block: if the consumer
// falls behind, intermediate updates are dropped in favor of newer ones.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Start begins polling botID: one immediate status check, then a repeating
// fixed-delay timer. Any loop already running is cancelled first, including
// its pending post-meeting check; a fetch in flight for the old loop has its
// result discarded.
func (s *Session) Start(botID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.gen++
	gen := s.gen
	s.botID = botID
	s.errCount = 0
	s.lastPhase = types.PhaseUnknown
	s.stopc = make(chan struct{})
	s.timer = time.AfterFunc(0, func() { s.tick(gen) })
}

// Stop cancels the active loop. Safe to call repeatedly and safe to call
// when nothing is running; no callback scheduled before Stop mutates state
// after it.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.gen++
}

// Polling reports whether the recurring status poll is armed.
func (s *Session) Polling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// cancelLocked stops all timers and releases the stop channel. Idempotent.
func (s *Session) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.finalTimer != nil {
		s.finalTimer.Stop()
		s.finalTimer = nil
	}
	if s.stopc != nil {
		close(s.stopc)
		s.stopc = nil
	}
}

// stopRecurringLocked disarms only the repeating poll, leaving the stop
// channel open for the post-meeting check.
func (s *Session) stopRecurringLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) stale(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

// tick is one poll: fetch, interpret, re-arm. It runs on the timer's
// goroutine; the generation guard makes callbacks from a cancelled loop
// no-ops.
func (s *Session) tick(gen int) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	botID := s.botID
	s.mu.Unlock()

	bot, err := s.fetch(botID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}

	if err != nil {
		s.handleTickError(gen, botID, err)
		return
	}

	s.errCount = 0
	phase := bot.Phase()
	s.lastPhase = phase

	up := Update{
		BotID:      botID,
		Phase:      phase,
		Status:     bot.Status,
		StatusText: phase.Text(),
		Recordings: bot.Recordings,
	}

	if phase.Terminal() {
		s.stopRecurringLocked()
		up.Final = true
		s.emit(up)

		stopc := s.stopc
		s.finalTimer = time.AfterFunc(s.cfg.FinalCheckDelay, func() {
			s.finalRecordingsCheck(gen, botID, stopc)
		})
		return
	}

	s.emit(up)
	s.timer = time.AfterFunc(s.cfg.Interval, func() { s.tick(gen) })
}

func (s *Session) handleTickError(gen int, botID string, err error) {
	if provider.IsNotFound(err) {
		s.cancelLocked()
		s.emit(Update{
			BotID:      botID,
			Phase:      s.lastPhase,
			StatusText: "Bot not found or expired",
			Err:        err,
			Final:      true,
		})
		return
	}

	s.errCount++
	if s.errCount >= s.cfg.ErrorThreshold {
		s.cancelLocked()
		s.emit(Update{
			BotID:      botID,
			Phase:      s.lastPhase,
			StatusText: "Lost contact with the server",
			Err:        fmt.Errorf("%d consecutive poll failures, giving up: %w", s.errCount, err),
			Final:      true,
		})
		return
	}

	// Single-tick failure: report it but keep the last status on screen
	// and keep polling.
	s.emit(Update{
		BotID:      botID,
		Phase:      s.lastPhase,
		StatusText: s.lastPhase.Text(),
		Err:        err,
		Transient:  true,
	})
	s.timer = time.AfterFunc(s.cfg.Interval, func() { s.tick(gen) })
}

// finalRecordingsCheck runs once after the meeting ends. It re-checks on a
// longer spacing while the provider reports no recordings, bounded by
// RecheckAttempts, then reports whatever it last saw.
func (s *Session) finalRecordingsCheck(gen int, botID string, stopc chan struct{}) {
	defer func() {
		s.mu.Lock()
		if gen == s.gen {
			s.finalTimer = nil
		}
		s.mu.Unlock()
	}()

	for attempt := 1; ; attempt++ {
		if s.stale(gen) {
			return
		}

		bot, err := s.fetch(botID)
		if s.stale(gen) {
			return
		}

		if err == nil && len(bot.Recordings) > 0 {
			s.emit(Update{
				BotID:      botID,
				Phase:      types.PhaseEnded,
				Status:     bot.Status,
				StatusText: "Recording is ready",
				Recordings: bot.Recordings,
				Final:      true,
			})
			return
		}
		if provider.IsNotFound(err) {
			s.emit(Update{BotID: botID, Phase: types.PhaseEnded, StatusText: "Bot not found or expired", Err: err, Final: true})
			return
		}

		if attempt >= s.cfg.RecheckAttempts {
			s.emit(Update{
				BotID:      botID,
				Phase:      types.PhaseEnded,
				StatusText: "Recording is still processing, check back later",
				Final:      true,
			})
			return
		}

		select {
		case <-time.After(s.cfg.RecheckSpacing):
		case <-stopc:
			return
		}
	}
}

func (s *Session) fetch(botID string) (*types.Bot, error) {
	ctx := context.Background()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	return s.client.GetBot(ctx, botID)
}

func (s *Session) emit(u Update) {
	select {
	case s.updates <- u:
	default:
	}
}
