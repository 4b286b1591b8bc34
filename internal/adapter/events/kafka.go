package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"debate-bot/internal/domain"
)

const defaultWriteTimeout = 5 * time.Second

// MessageWriter is the subset of *kafka.Writer the exporter uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaExporter publishes domain events to a Kafka topic keyed by
// conversation id, so one conversation's events stay ordered in a partition.
type KafkaExporter struct {
	w       MessageWriter
	topic   string
	logger  *slog.Logger
	timeout time.Duration
}

// NewKafkaExporter creates an exporter writing to topic on brokers.
func NewKafkaExporter(brokers []string, topic string, logger *slog.Logger) (*KafkaExporter, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka exporter: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka exporter: topic is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaExporterWithWriter(w, topic, logger), nil
}

// NewKafkaExporterWithWriter wraps an existing writer. The writer must not
// set its own Topic.
func NewKafkaExporterWithWriter(w MessageWriter, topic string, logger *slog.Logger) *KafkaExporter {
	return &KafkaExporter{
		w:       w,
		topic:   topic,
		logger:  logger.With("component", "kafka_exporter", "topic", topic),
		timeout: defaultWriteTimeout,
	}
}

// Subscribe exports every event on bus.
func (k *KafkaExporter) Subscribe(bus domain.EventBus) func() {
	return bus.SubscribeAll(func(ctx context.Context, e domain.Event) {
		if err := k.Export(ctx, e); err != nil {
			k.logger.Warn("event export failed", "event", string(e.Type), "conversation_id", e.ConversationID, "error", err)
		}
	})
}

// Export writes e as a JSON message.
func (k *KafkaExporter) Export(ctx context.Context, e domain.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	return k.w.WriteMessages(ctx, kafka.Message{
		Topic: k.topic,
		Key:   []byte(e.ConversationID),
		Value: value,
		Time:  e.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
}

// Close flushes and closes the underlying writer.
func (k *KafkaExporter) Close() error { return k.w.Close() }
