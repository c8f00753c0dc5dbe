package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func receive(t *testing.T, ch <-chan any) any {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func assertClosed(t *testing.T, ch <-chan any) {
	t.Helper()
	deadline := time.After(waitFor)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed")
		}
	}
}

func TestFanOut(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := bus.Subscribe(ctx, TopicBookAdded)
	b := bus.Subscribe(ctx, TopicBookAdded)
	other := bus.Subscribe(ctx, TopicAuthorUpdated)

	bus.Publish(TopicBookAdded, "first")
	bus.Publish(TopicBookAdded, "second")

	for _, ch := range []<-chan any{a, b} {
		assert.Equal(t, "first", receive(t, ch))
		assert.Equal(t, "second", receive(t, ch))
	}

	select {
	case v := <-other:
		t.Fatalf("unexpected payload on other topic: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNoReplay(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus.Publish(TopicAuthorUpdated, "before")
	ch := bus.Subscribe(ctx, TopicAuthorUpdated)
	bus.Publish(TopicAuthorUpdated, "after")

	assert.Equal(t, "after", receive(t, ch))
}

func TestPublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := bus.Subscribe(ctx, TopicBookAdded)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10_000; i++ {
			bus.Publish(TopicBookAdded, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("publish blocked on an idle subscriber")
	}

	for i := 0; i < 10_000; i++ {
		require.Equal(t, i, receive(t, ch))
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Publish(TopicBookAdded, "nobody listens") })
}

func TestUnsubscribeOnCancel(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())

	ch := bus.Subscribe(ctx, TopicBookAdded)
	assert.Equal(t, 1, bus.SubscriberCount(TopicBookAdded))

	cancel()
	assertClosed(t, ch)
	assert.Eventually(t, func() bool {
		return bus.SubscriberCount(TopicBookAdded) == 0
	}, waitFor, 10*time.Millisecond)

	assert.NotPanics(t, func() { bus.Publish(TopicBookAdded, "late") })
}

func TestClose(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe(context.Background(), TopicAuthorUpdated)
	bus.Close()
	assertClosed(t, ch)

	assertClosed(t, bus.Subscribe(context.Background(), TopicAuthorUpdated))
}
