package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"meetbot/archive"
	"meetbot/config"
	"meetbot/events"
	"meetbot/poll"
	"meetbot/provider"
	"meetbot/relay"
	"meetbot/session"
	"meetbot/tui"
)

var rootCmd = &cobra.Command{
	Use:   "meetbot",
	Short: "Relay and watch client for meeting recording bots",
	Long: `meetbot sends an automated participant into a meeting via an external
bot provider, relays its status, and retrieves the recording once the
meeting ends.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var (
	watchRelayURL string
	watchBotID    string
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow a bot's meeting from the terminal",
	Long: `watch submits a meeting URL to the relay (or attaches to an existing
bot with --bot) and polls its status until the meeting ends and the
recording is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchRelayURL, "relay-url", "http://localhost:3000", "base URL of the relay server")
	watchCmd.Flags().StringVar(&watchBotID, "bot", "", "attach to an existing bot id instead of creating one")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", config.DefaultPollInterval, "status polling interval")

	rootCmd.AddCommand(serveCmd, watchCmd)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	var w = os.Stderr
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if os.Getenv("LOG_PRETTY") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w})
	}
	return logger
}

func runServe() error {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	opts := relay.Options{
		Provider: provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderToken, cfg.RequestTimeout),
		Policy:   poll.Policy{MaxAttempts: cfg.MaxRetries, Delay: cfg.RetryDelay},
		Log:      log,
	}

	if cfg.RedisAddr != "" {
		opts.Cache = relay.NewCache(cfg.RedisAddr, cfg.StatusCacheTTL, log)
		log.Info().Str("addr", cfg.RedisAddr).Msg("status cache enabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return fmt.Errorf("connect event publisher: %w", err)
		}
		defer pub.Close()
		opts.Events = pub
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("lifecycle events enabled")
	}

	if cfg.S3Bucket != "" {
		store, err := archive.NewS3(context.Background(), archive.S3Config{Region: cfg.S3Region})
		if err != nil {
			return fmt.Errorf("connect object store: %w", err)
		}
		opts.Archiver = archive.NewArchiver(store, cfg.S3Bucket, cfg.S3Prefix, log)
		log.Info().Str("bucket", cfg.S3Bucket).Msg("recording archive enabled")
	}

	return relay.NewServer(opts).Run(cfg.Port)
}

func runWatch() error {
	client := tui.NewRelayClient(watchRelayURL)

	sess := session.New(client, session.Config{
		Interval:        watchInterval,
		ErrorThreshold:  config.DefaultPollErrorThreshold,
		FinalCheckDelay: config.DefaultFinalCheckDelay,
		RecheckSpacing:  config.DefaultRecheckSpacing,
		RecheckAttempts: config.DefaultMaxRecheckAttempts,
	})
	defer sess.Stop()

	model := tui.NewModel(client, sess, watchBotID)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
