package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() ports.MatchConfirmedEvent {
	return ports.MatchConfirmedEvent{
		PairKey:     "ana@example.com|ben@example.com",
		UserA:       "ana@example.com",
		UserB:       "ben@example.com",
		RoomID:      "101",
		Score:       70,
		ConfirmedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishMatchConfirmed(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(ch, "match.confirmed", zap.NewNop())

	require.NoError(t, broker.PublishMatchConfirmed(context.Background(), sampleEvent()))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "match.confirmed", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, ports.EventMatchConfirmed, msg.Type)

	var decoded ports.MatchConfirmedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, sampleEvent(), decoded)
}

func TestPublishMatchConfirmed_ExpiredContext(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(ch, "match.confirmed", zap.NewNop())

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := broker.PublishMatchConfirmed(ctx, sampleEvent())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, ch.published)
}

func TestPublishMatchConfirmed_BreakerOpens(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	broker := newBroker(ch, "match.confirmed", zap.NewNop())

	for i := 0; i < 3; i++ {
		assert.Error(t, broker.PublishMatchConfirmed(context.Background(), sampleEvent()))
	}

	ch.err = nil
	err := broker.PublishMatchConfirmed(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Empty(t, ch.published)
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	broker := newBroker(ch, "match.confirmed", zap.NewNop())

	require.NoError(t, broker.Close())
	assert.True(t, ch.closed)
}
