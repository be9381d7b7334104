package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
)

// KafkaSink publishes audit events to a topic, keyed by entity id so that the
// events of one appointment stay ordered within a partition.
type KafkaSink struct {
	writer *kafka.Writer
	logger *slog.Logger
}

type message struct {
	Action     string          `json:"action"`
	Entity     string          `json:"entity"`
	EntityID   string          `json:"entity_id,omitempty"`
	ActorID    string          `json:"actor_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger.With("component", "kafka_sink"),
	}
}

func (s *KafkaSink) Handle(ctx context.Context, ev audit.Event) error {
	msg, err := Encode(ev)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, msg)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// Encode builds the kafka message of ev.
func Encode(ev audit.Event) (kafka.Message, error) {
	body := message{
		Action:     ev.Action,
		Entity:     ev.Entity,
		OccurredAt: ev.OccurredAt.UTC(),
	}
	if ev.EntityID != nil {
		body.EntityID = ev.EntityID.String()
	}
	if ev.ActorID != nil {
		body.ActorID = ev.ActorID.String()
	}
	if ev.Metadata != nil {
		raw, err := json.Marshal(ev.Metadata)
		if err != nil {
			return kafka.Message{}, err
		}
		body.Metadata = raw
	}

	value, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(body.EntityID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Action)},
		},
	}, nil
}
