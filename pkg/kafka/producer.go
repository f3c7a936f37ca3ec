package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"resourcehub/pkg/logger"
)

const publishTimeout = 5 * time.Second

// Producer publishes listing events. A nil Producer is a no-op so the service
// runs unchanged when no brokers are configured.
type Producer struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger
	closed bool
	mu     sync.RWMutex
}

func NewProducer(brokers []string, topic, source string, log *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by listing id for per-listing ordering
		RequiredAcks: kafka.RequireOne,
		Compression:  compress.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...any) { log.Error(fmt.Sprintf(msg, args...)) }),
	}

	return &Producer{
		writer: writer,
		source: source,
		log:    log,
	}, nil
}

// Publish sends one event, fire-and-forget: failures are logged and never
// fail the request that triggered them.
func (p *Producer) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}

	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		p.log.Warn("Dropping event on closed producer", "event_type", event.EventType)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode event", "event_type", event.EventType, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.ListingID),
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.EventID)},
			{Key: HeaderEventType, Value: []byte(event.EventType)},
			{Key: HeaderSource, Value: []byte(p.source)},
			{Key: HeaderTimestamp, Value: []byte(event.OccurredAt.Format(time.RFC3339Nano))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish event",
			"event_type", event.EventType,
			"listing_id", event.ListingID,
			"error", err,
		)
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
