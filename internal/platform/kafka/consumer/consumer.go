// Package consumer runs a Kafka consumer group loop on franz-go and hands
// each record to a Handler. Offsets are committed after a poll batch has
// been handled, so a crash redelivers at most one batch.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"fordeling/pkg/platform/sentinel"
)

// Message is a consumed record detached from the client library.
type Message struct {
	Topic     string
	Partition int32
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Handler processes one message. Returning an error asks for a retry;
// handlers return nil for messages that can never succeed so the offset
// moves on.
type Handler interface {
	Handle(ctx context.Context, msg *Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg *Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg *Message) error { return f(ctx, msg) }

// Config configures the consumer group.
type Config struct {
	Brokers      []string
	Topic        string
	Group        string
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Consumer polls a single topic within a consumer group.
type Consumer struct {
	client  *kgo.Client
	admin   *kadm.Client
	handler Handler
	cfg     Config
	logger  *slog.Logger
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Consumer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates the underlying client. No network I/O happens until Run.
func New(cfg Config, handler Handler, opts ...Option) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if cfg.Topic == "" || cfg.Group == "" {
		return nil, errors.New("kafka topic and group are required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	c := &Consumer{
		client:  client,
		admin:   kadm.NewClient(client),
		handler: handler,
		cfg:     cfg,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run polls until ctx is cancelled or the client is closed.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "kafka consumer started",
		"topic", c.cfg.Topic,
		"group", c.cfg.Group,
	)
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.deliver(ctx, toMessage(iter.Next()))
			if ctx.Err() != nil {
				return nil
			}
		}

		if err := c.client.CommitUncommittedOffsets(ctx); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "kafka offset commit failed", "error", err)
		}
	}
}

// deliver hands msg to the handler, retrying with a linear backoff. After
// the last attempt the message is logged and skipped.
func (c *Consumer) deliver(ctx context.Context, msg *Message) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Headers))
	ctx, span := otel.Tracer("fordeling/kafka").Start(ctx, msg.Topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.destination.partition.id", int(msg.Partition)),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	var err error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err = c.handler.Handle(ctx, msg); err == nil {
			return
		}
		span.AddEvent("retry", trace.WithAttributes(attribute.Int("attempt", attempt)))
		c.logger.WarnContext(ctx, "kafka handler failed",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
			"error", err,
		)
		if attempt == c.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * c.cfg.RetryBackoff):
		}
	}
	span.SetStatus(codes.Error, "skipped after retries")
	c.logger.ErrorContext(ctx, "kafka message skipped after retries",
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"key", string(msg.Key),
		"error", err,
	)
}

// Health reports whether the consumed topic exists and its metadata can be
// read from the cluster.
func (c *Consumer) Health(ctx context.Context) error {
	topics, err := c.admin.ListTopics(ctx, c.cfg.Topic)
	if err != nil {
		return fmt.Errorf("list topics: %w: %w", sentinel.ErrUnavailable, err)
	}
	detail, ok := topics[c.cfg.Topic]
	if !ok || errors.Is(detail.Err, kerr.UnknownTopicOrPartition) {
		return fmt.Errorf("topic %s: %w", c.cfg.Topic, sentinel.ErrNotFound)
	}
	if detail.Err != nil {
		return fmt.Errorf("topic %s: %w", c.cfg.Topic, detail.Err)
	}
	return nil
}

// Close leaves the group and releases the client.
func (c *Consumer) Close() {
	c.client.Close()
}

func toMessage(rec *kgo.Record) *Message {
	msg := &Message{
		Topic:     rec.Topic,
		Partition: rec.Partition,
		Offset:    rec.Offset,
		Key:       rec.Key,
		Value:     rec.Value,
		Timestamp: rec.Timestamp,
	}
	if len(rec.Headers) > 0 {
		msg.Headers = make(map[string]string, len(rec.Headers))
		for _, h := range rec.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}
	}
	return msg
}
