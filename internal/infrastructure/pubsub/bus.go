// Package pubsub is the in-process change notification channel behind the
// graph subscriptions.
package pubsub

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Topic names a stream of change notifications.
type Topic string

const (
	TopicBookAdded     Topic = "BOOK_ADDED"
	TopicAuthorUpdated Topic = "AUTHOR_UPDATED"
)

// Bus fans published payloads out to every subscriber registered on a topic
// at publish time. Delivery is best effort and in publish order per
// subscriber; nothing is replayed to late subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic]map[*subscriber]struct{}
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[*subscriber]struct{})}
}

// Publish delivers payload to the current subscribers of topic. It never blocks.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs[topic] {
		s.push(payload)
	}
}

// Subscribe registers a subscriber on topic. The returned channel receives
// every payload published while the subscription is live and is closed once
// ctx is done or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic Topic) <-chan any {
	ctx, cancel := context.WithCancel(ctx)
	s := &subscriber{
		notify: make(chan struct{}, 1),
		out:    make(chan any),
		cancel: cancel,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		close(s.out)
		return s.out
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscriber]struct{})
	}
	b.subs[topic][s] = struct{}{}
	b.mu.Unlock()

	log.Debug().Str("topic", string(topic)).Msg("subscriber registered")

	go func() {
		s.pump(ctx)
		b.remove(topic, s)
		close(s.out)
		log.Debug().Str("topic", string(topic)).Msg("subscriber removed")
	}()

	return s.out
}

// SubscriberCount returns the number of live subscribers on topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// Close ends every subscription. Later Subscribe calls get a closed channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for _, set := range b.subs {
		for s := range set {
			s.cancel()
		}
	}
}

func (b *Bus) remove(topic Topic, s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs[topic], s)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// subscriber owns an unbounded queue drained into out by its pump goroutine,
// so a slow reader never stalls the publisher.
type subscriber struct {
	mu     sync.Mutex
	queue  []any
	notify chan struct{}
	out    chan any
	cancel context.CancelFunc
}

func (s *subscriber) push(payload any) {
	s.mu.Lock()
	s.queue = append(s.queue, payload)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscriber) pump(ctx context.Context) {
	defer s.cancel()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.notify:
				continue
			case <-ctx.Done():
				return
			}
		}
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- next:
		case <-ctx.Done():
			return
		}
	}
}
