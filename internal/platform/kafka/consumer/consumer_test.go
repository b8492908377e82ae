package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func newTestConsumer(t *testing.T, h Handler, attempts int) *Consumer {
	t.Helper()
	c, err := New(Config{
		Brokers:      []string{"127.0.0.1:1"},
		Topic:        "eessi-basis-sedmottatt-v1",
		Group:        "fordeling",
		MaxAttempts:  attempts,
		RetryBackoff: time.Millisecond,
	}, h)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Topic: "t", Group: "g"}, HandlerFunc(func(context.Context, *Message) error { return nil }))
	assert.Error(t, err)

	_, err = New(Config{Brokers: []string{"b:9092"}}, HandlerFunc(func(context.Context, *Message) error { return nil }))
	assert.Error(t, err)
}

func TestDeliver_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	c := newTestConsumer(t, HandlerFunc(func(context.Context, *Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}), 3)

	c.deliver(context.Background(), &Message{Topic: "t"})
	assert.Equal(t, 3, calls)
}

func TestDeliver_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	c := newTestConsumer(t, HandlerFunc(func(context.Context, *Message) error {
		calls++
		return errors.New("permanent")
	}), 2)

	c.deliver(context.Background(), &Message{Topic: "t"})
	assert.Equal(t, 2, calls)
}

func TestDeliver_StopsOnCancel(t *testing.T) {
	calls := 0
	c := newTestConsumer(t, HandlerFunc(func(context.Context, *Message) error {
		calls++
		return errors.New("transient")
	}), 5)
	c.cfg.RetryBackoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.deliver(ctx, &Message{Topic: "t"})
	assert.Equal(t, 1, calls)
}

func TestToMessage(t *testing.T) {
	ts := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	msg := toMessage(&kgo.Record{
		Topic:     "t",
		Partition: 2,
		Offset:    41,
		Key:       []byte("k"),
		Value:     []byte("v"),
		Timestamp: ts,
		Headers:   []kgo.RecordHeader{{Key: "Nav-Call-Id", Value: []byte("abc")}},
	})

	assert.Equal(t, "t", msg.Topic)
	assert.Equal(t, int32(2), msg.Partition)
	assert.Equal(t, int64(41), msg.Offset)
	assert.Equal(t, "k", string(msg.Key))
	assert.Equal(t, ts, msg.Timestamp)
	assert.Equal(t, "abc", msg.Headers["Nav-Call-Id"])
}
