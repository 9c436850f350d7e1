package pubsub

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillBridge_PublishWaitsForHandler(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled atomic.Bool
	err := bridge.Subscribe(ctx, "test.topic", func(ctx context.Context, msg Message) error {
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, "user123", msg.UserID)
		assert.Equal(t, "req-123", msg.Metadata["request_id"])
		handled.Store(true)
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{
		Topic:    "test.topic",
		UserID:   "user123",
		Payload:  []byte(`{"hello":"world"}`),
		Metadata: map[string]string{"request_id": "req-123"},
	})
	require.NoError(t, err)
	assert.True(t, handled.Load(), "publish returns after the subscriber acknowledged")
}

func TestWatermillBridge_NoSubscribers(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	err := bridge.Publish(context.Background(), Message{Topic: "nobody.listens", Payload: []byte("x")})
	assert.NoError(t, err)
}

func TestWatermillBridge_HandlerErrorDoesNotRedeliver(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, bridge.Subscribe(ctx, "failing", func(ctx context.Context, msg Message) error {
		calls.Add(1)
		return assert.AnError
	}))

	require.NoError(t, bridge.Publish(ctx, Message{Topic: "failing", Payload: []byte("x")}))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

type greeting struct {
	Name string `json:"name"`
}

func TestTypedEvent(t *testing.T) {
	bridge := NewWatermillBridge()
	defer bridge.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	event := NewEvent[greeting]("greetings")
	got := make(chan greeting, 1)
	require.NoError(t, Subscribe(ctx, bridge, event, func(ctx context.Context, g greeting) error {
		got <- g
		return nil
	}))

	require.NoError(t, Publish(ctx, bridge, event, "u1", greeting{Name: "Ada"}))

	select {
	case g := <-got:
		assert.Equal(t, "Ada", g.Name)
	case <-time.After(time.Second):
		t.Fatal("typed event was not delivered")
	}
}
