package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishOrderPlaced(t *testing.T) {
	w := &fakeWriter{}
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &KafkaPublisher{w: w, now: func() time.Time { return at }}

	err := p.PublishOrderPlaced(context.Background(), &domain.Order{
		ID:            "665f1c2e8b3c4a00aaaaaaaa",
		PlantID:       "p1",
		Quantity:      2,
		Price:         20,
		Customer:      domain.Customer{Email: "carol@example.com"},
		Seller:        "s@example.com",
		TransactionID: "pi_42",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "665f1c2e8b3c4a00aaaaaaaa", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, EventOrderPlaced, string(msg.Headers[0].Value))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, EventOrderPlaced, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.True(t, env.OccurredAt.Equal(at))
	assert.NotEmpty(t, env.EventID)

	var payload OrderPlacedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "p1", payload.PlantID)
	assert.Equal(t, "carol@example.com", payload.CustomerEmail)
	assert.Equal(t, "s@example.com", payload.SellerEmail)
	assert.Equal(t, "pi_42", payload.TransactionID)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &KafkaPublisher{w: w, now: time.Now}

	err := p.PublishOrderPlaced(context.Background(), &domain.Order{ID: "o1"})
	assert.ErrorContains(t, err, EventOrderPlaced)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishOrderPlaced(context.Background(), &domain.Order{}))
}
