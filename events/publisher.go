// Package events publishes bot lifecycle transitions to Kafka for
// downstream consumers (billing, analytics, notification fan-out). The
// client UI never consumes these — it only polls the relay. Publishing is
// best effort: a broker outage is logged and never fails the request that
// triggered it.
package events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"meetbot/types"
)

// Event is one observed lifecycle transition.
type Event struct {
	BotID  string      `json:"bot_id"`
	Phase  types.Phase `json:"phase"`
	Status string      `json:"status"`
	At     time.Time   `json:"at"`
}

// Publisher writes lifecycle events to a single topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewPublisher connects a sync producer to the given brokers.
func NewPublisher(brokers []string, topic string, log zerolog.Logger) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	return newPublisher(producer, topic, log), nil
}

func newPublisher(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		log:      log.With().Str("component", "events").Logger(),
	}
}

// Publish emits one event, keyed by bot id so transitions for the same bot
// stay ordered within a partition. Failures are logged, not returned.
func (p *Publisher) Publish(botID string, phase types.Phase, status string) {
	event := Event{
		BotID:  botID,
		Phase:  phase,
		Status: status,
		At:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("bot_id", botID).Msg("failed to encode lifecycle event")
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(botID),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.Error().Err(err).Str("bot_id", botID).Str("phase", string(phase)).Msg("failed to publish lifecycle event")
		return
	}

	p.log.Debug().Str("bot_id", botID).Str("phase", string(phase)).Msg("lifecycle event published")
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
