package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"queuecare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "канал подписки закрыт")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("событие не получено")
		return nil
	}
}

func TestHub_DeliversInPublishOrder(t *testing.T) {
	hub, _ := startHub(t)
	ctx := context.Background()

	first, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	second, err := hub.Subscribe(ctx)
	require.NoError(t, err)

	ticket := sampleTicket()
	require.NoError(t, hub.Publish(ctx, Inserted{Ticket: ticket}))
	ticket.Status = models.StatusInProgress
	require.NoError(t, hub.Publish(ctx, Updated{Ticket: ticket}))
	require.NoError(t, hub.Publish(ctx, Deleted{ID: ticket.ID}))

	for _, sub := range []*Subscription{first, second} {
		assert.IsType(t, Inserted{}, receive(t, sub))
		upd := receive(t, sub).(Updated)
		assert.Equal(t, models.StatusInProgress, upd.Ticket.Status)
		assert.Equal(t, Deleted{ID: "t1"}, receive(t, sub))
	}
	assert.Equal(t, 2, hub.Subscribers())
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub, _ := startHub(t)
	ctx := context.Background()

	slow, err := hub.Subscribe(ctx)
	require.NoError(t, err)

	for i := 0; i <= subscriberBuffer; i++ {
		require.NoError(t, hub.Publish(ctx, Deleted{ID: fmt.Sprintf("t%d", i)}))
	}

	received := 0
	timeout := time.After(2 * time.Second)
	for open := true; open; {
		select {
		case _, open = <-slow.Events():
			if open {
				received++
			}
		case <-timeout:
			t.Fatal("подписка не была закрыта")
		}
	}
	assert.Equal(t, subscriberBuffer, received)
	assert.ErrorIs(t, slow.Err(), ErrSlowSubscriber)
	assert.NoError(t, slow.Close())
}

func TestSubscription_CloseIdempotent(t *testing.T) {
	hub, _ := startHub(t)

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.NoError(t, sub.Err())

	var nilSub *Subscription
	assert.NoError(t, nilSub.Close())
}

func TestHub_Stopped(t *testing.T) {
	hub := NewHub()
	counts := make(chan int, 4)
	hub.OnSubscribersChanged = func(n int) { counts <- n }
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, <-counts)

	cancel()
	_, open := <-sub.Events()
	assert.False(t, open)
	assert.ErrorIs(t, sub.Err(), ErrHubClosed)
	assert.Equal(t, 0, <-counts)

	assert.ErrorIs(t, hub.Publish(context.Background(), Deleted{ID: "t1"}), ErrHubClosed)
	_, err = hub.Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrHubClosed)
	assert.NoError(t, sub.Close())
}

func TestHub_AcceptedEventsDeliveredOnShutdown(t *testing.T) {
	for round := 0; round < 50; round++ {
		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		go hub.Run(ctx)

		sub, err := hub.Subscribe(context.Background())
		require.NoError(t, err)

		accepted := make(chan int, 1)
		go func() {
			n := 0
			for i := 0; i < 20; i++ {
				if hub.Publish(context.Background(), Deleted{ID: fmt.Sprintf("t%d", i)}) == nil {
					n++
				}
			}
			accepted <- n
		}()
		cancel()

		received := 0
		for range sub.Events() {
			received++
		}
		require.Equal(t, <-accepted, received, "раунд %d", round)
		assert.ErrorIs(t, sub.Err(), ErrHubClosed)
	}
}

func TestHub_Disconnect(t *testing.T) {
	hub, _ := startHub(t)
	ctx := context.Background()
	cause := errors.New("relay lost")

	first, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	second, err := hub.Subscribe(ctx)
	require.NoError(t, err)

	hub.Disconnect(cause)
	for _, sub := range []*Subscription{first, second} {
		_, open := <-sub.Events()
		assert.False(t, open)
		assert.ErrorIs(t, sub.Err(), cause)
		assert.NoError(t, sub.Close())
	}
	assert.Equal(t, 0, hub.Subscribers())

	again, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	defer again.Close()
	require.NoError(t, hub.Publish(ctx, Deleted{ID: "t1"}))
	assert.Equal(t, Deleted{ID: "t1"}, receive(t, again))
}
