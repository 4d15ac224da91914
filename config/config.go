package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Every option has a hard-coded
// default; only the provider token is required.
type Config struct {
	// Relay server
	Port string

	// Provider API
	ProviderBaseURL string
	ProviderToken   string
	RequestTimeout  time.Duration

	// Retry policy for provider calls
	MaxRetries int
	RetryDelay time.Duration

	// Client polling cadence
	PollInterval       time.Duration
	PollErrorThreshold int
	FinalCheckDelay    time.Duration
	RecheckSpacing     time.Duration
	MaxRecheckAttempts int

	// Optional status cache (disabled when RedisAddr is empty)
	RedisAddr      string
	StatusCacheTTL time.Duration

	// Optional lifecycle event publishing (disabled when no brokers)
	KafkaBrokers []string
	KafkaTopic   string

	// Optional recording archive (disabled when S3Bucket is empty)
	S3Bucket string
	S3Region string
	S3Prefix string
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file is loaded if present (non-fatal when missing).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", DefaultPort),
		ProviderBaseURL:    strings.TrimRight(getEnvOrDefault("BOT_API_URL", DefaultProviderBaseURL), "/"),
		ProviderToken:      os.Getenv("BOT_API_TOKEN"),
		RequestTimeout:     getEnvSeconds("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeout),
		MaxRetries:         getEnvInt("MAX_RETRIES", DefaultMaxRetries),
		RetryDelay:         getEnvMillis("RETRY_DELAY_MS", DefaultRetryDelay),
		PollInterval:       getEnvMillis("POLL_INTERVAL_MS", DefaultPollInterval),
		PollErrorThreshold: getEnvInt("POLL_ERROR_THRESHOLD", DefaultPollErrorThreshold),
		FinalCheckDelay:    getEnvMillis("FINAL_RECORDINGS_DELAY_MS", DefaultFinalCheckDelay),
		RecheckSpacing:     getEnvMillis("RECORDINGS_RECHECK_SPACING_MS", DefaultRecheckSpacing),
		MaxRecheckAttempts: getEnvInt("RECORDINGS_RECHECK_ATTEMPTS", DefaultMaxRecheckAttempts),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		StatusCacheTTL:     getEnvMillis("STATUS_CACHE_TTL_MS", DefaultStatusCacheTTL),
		KafkaTopic:         getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3Region:           os.Getenv("S3_REGION"),
		S3Prefix:           os.Getenv("S3_PREFIX"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ProviderToken == "" {
		return fmt.Errorf("missing required configuration: BOT_API_TOKEN")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("MAX_RETRIES must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvMillis(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return defaultVal
}

func getEnvSeconds(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return defaultVal
}
