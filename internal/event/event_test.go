package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, log: zap.NewNop()}

	occurred := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := p.Publish(context.Background(), BookingEvent{
		Type:       BookingConfirmed,
		BookingID:  "BK0000000001",
		TravelID:   "FL12345678",
		Seats:      3,
		TotalPrice: 300,
		OccurredAt: occurred,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "BK0000000001", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "booking.confirmed", string(msg.Headers[0].Value))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, BookingConfirmed, decoded.Type)
	assert.Equal(t, 3, decoded.Seats)
	assert.True(t, occurred.Equal(decoded.OccurredAt))
}

func TestKafkaPublisher_StampsOccurredAt(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, log: zap.NewNop()}

	require.NoError(t, p.Publish(context.Background(), BookingEvent{Type: BookingCreated, BookingID: "BK1"}))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.False(t, decoded.OccurredAt.IsZero())
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &KafkaPublisher{writer: w, log: zap.NewNop()}

	err := p.Publish(context.Background(), BookingEvent{Type: PaymentFailed, BookingID: "BK1"})
	assert.ErrorContains(t, err, "broker down")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
