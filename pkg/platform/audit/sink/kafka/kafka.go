// Package kafka publishes audit events to a Kafka topic, keyed by subject
// hash so all events for one subject land in the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "peselgate/pkg/platform/audit"
)

// Sink is the Kafka audit sink. Events are produced synchronously; the
// publisher already decouples request latency from fan-out when its async
// buffer is enabled.
type Sink struct {
	client *kgo.Client
	topic  string
}

// payload is the JSON structure written to the topic. Field names are the
// consumer contract; change them only with a topic version bump.
type payload struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	Outcome     string `json:"outcome,omitempty"`
	Reason      string `json:"reason,omitempty"`
	SubjectHash string `json:"subject_hash,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	ClientIP    string `json:"client_ip,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}

// New connects to the brokers and returns a Sink producing to topic.
func New(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

// Publish produces one event and waits for broker acknowledgement.
func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(payload{
		ID:          event.ID,
		Category:    string(event.Category),
		Timestamp:   event.Timestamp.Format(time.RFC3339Nano),
		Action:      event.Action,
		Outcome:     event.Outcome,
		Reason:      event.Reason,
		SubjectHash: event.SubjectHash,
		RequestID:   event.RequestID,
		ClientIP:    event.ClientIP,
		UserAgent:   event.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.SubjectHash),
		Value: value,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (s *Sink) Close() {
	s.client.Close()
}
