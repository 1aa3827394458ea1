package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"expensync/internal/domain/event"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	e := event.New(event.TransactionCreated, 3, "tx-1", "Food", decimal.NewFromInt(-12), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return b
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name        string
		body        func(t *testing.T) []byte
		redelivered bool
		handlerErr  error
		want        outcome
		wantAck     bool
		wantNack    bool
		wantRequeue bool
	}{
		{
			name:    "success acks",
			body:    eventBody,
			want:    acked,
			wantAck: true,
		},
		{
			name:     "malformed payload rejected",
			body:     func(t *testing.T) []byte { return []byte(`{"userId":"nope"`) },
			want:     rejected,
			wantNack: true,
		},
		{
			name:        "handler failure requeues",
			body:        eventBody,
			handlerErr:  errors.New("db down"),
			want:        requeued,
			wantNack:    true,
			wantRequeue: true,
		},
		{
			name:        "second failure is dropped",
			body:        eventBody,
			redelivered: true,
			handlerErr:  errors.New("db down"),
			want:        rejected,
			wantNack:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			var got event.Event
			handler := func(ctx context.Context, e event.Event) error {
				got = e
				return tt.handlerErr
			}

			assert.Equal(t, tt.want, process(context.Background(), tt.body(t), tt.redelivered, ack, handler))
			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, tt.wantNack, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
			if tt.handlerErr != nil || tt.want == acked {
				assert.Equal(t, int64(3), got.UserID)
				assert.True(t, got.Amount.Equal(decimal.NewFromInt(-12)))
			}
		})
	}
}
