package config

import "time"

// Server defaults
const (
	// DefaultPort is the relay's listening port.
	DefaultPort = "3000"
)

// Provider defaults
const (
	// DefaultProviderBaseURL points at a locally running provider stub.
	DefaultProviderBaseURL = "http://localhost:4000/api/v1"

	// DefaultRequestTimeout bounds a single provider HTTP call.
	DefaultRequestTimeout = 30 * time.Second
)

// Retry defaults for provider calls
const (
	// DefaultMaxRetries is the attempt budget per logical provider call.
	DefaultMaxRetries = 5

	// DefaultRetryDelay is the wait between retry attempts.
	DefaultRetryDelay = 3 * time.Second
)

// Client polling defaults
const (
	// DefaultPollInterval is the cadence of the recurring status poll.
	DefaultPollInterval = 5 * time.Second

	// DefaultPollErrorThreshold is the number of consecutive failed polls
	// tolerated before the session stops and surfaces a persistent error.
	DefaultPollErrorThreshold = 5

	// DefaultFinalCheckDelay is the one-shot wait after a meeting ends
	// before fetching recordings.
	DefaultFinalCheckDelay = 10 * time.Second

	// DefaultRecheckSpacing is the wait between recording re-checks while
	// the provider is still processing.
	DefaultRecheckSpacing = 30 * time.Second

	// DefaultMaxRecheckAttempts bounds the post-meeting recording re-checks.
	DefaultMaxRecheckAttempts = 5
)

// Optional integration defaults
const (
	// DefaultStatusCacheTTL is how long a cached bot payload stays fresh.
	DefaultStatusCacheTTL = 3 * time.Second

	// DefaultKafkaTopic receives bot lifecycle events.
	DefaultKafkaTopic = "bot-lifecycle-events"
)
