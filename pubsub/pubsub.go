// Package pubsub fans published values out to filtered subscribers.
package pubsub

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var plog zerolog.Logger

func init() {
	plog = log.With().Str("component", "pubsub").Logger()
}

// DefaultBuffer is the channel capacity given to each subscriber.
const DefaultBuffer = 16

type SubscriptionID int64

type subscriber[T any] struct {
	ch     chan T
	filter func(T) bool
}

type Pubsub[T any] struct {
	nextID      SubscriptionID
	subscribers map[SubscriptionID]subscriber[T]
	buffer      int
	mu          sync.RWMutex
}

func New[T any]() *Pubsub[T] {
	return NewBuffered[T](DefaultBuffer)
}

// NewBuffered returns a Pubsub whose subscriber channels hold up to size
// pending values. Values published to a full subscriber are dropped.
func NewBuffered[T any](size int) *Pubsub[T] {
	return &Pubsub[T]{
		subscribers: make(map[SubscriptionID]subscriber[T]),
		buffer:      max(size, 0),
	}
}

// Subscribe registers a subscriber receiving every value for which filter
// returns true. A nil filter accepts everything.
func (ps *Pubsub[T]) Subscribe(filter func(T) bool) (SubscriptionID, <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan T, ps.buffer)
	id := ps.nextID

	ps.subscribers[id] = subscriber[T]{ch: ch, filter: filter}
	ps.nextID += 1

	plog.Debug().Int64("subscription_id", int64(id)).Msg("Subscribed")
	return id, ch
}

func (ps *Pubsub[T]) Unsubscribe(id SubscriptionID) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	sub, ok := ps.subscribers[id]
	if !ok {
		return
	}

	delete(ps.subscribers, id)
	close(sub.ch)
	plog.Debug().Int64("subscription_id", int64(id)).Msg("Unsubscribed")
}

// Publish delivers msg to every interested subscriber without blocking and
// returns how many received it.
func (ps *Pubsub[T]) Publish(msg T) int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	delivered := 0
	for id, sub := range ps.subscribers {
		if sub.filter != nil && !sub.filter(msg) {
			continue
		}
		select {
		case sub.ch <- msg:
			delivered++
		default:
			plog.Warn().
				Int64("subscription_id", int64(id)).
				Interface("message", msg).
				Msg("Message dropped, channel full")
		}
	}
	return delivered
}

func (ps *Pubsub[T]) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	return len(ps.subscribers)
}
