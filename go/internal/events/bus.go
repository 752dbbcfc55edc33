package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Subscriber receives every event published on the bus.
type Subscriber func(event *SessionEvent)

// Bus is the in-process fan-out for session events. Publishing never blocks
// the controller; a full bus drops the event with a warning.
type Bus struct {
	ch   chan *SessionEvent
	subs []Subscriber
	mu   sync.RWMutex
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{
		ch: make(chan *SessionEvent, buffer),
	}
}

// Subscribe registers a subscriber. Must be called before Run.
func (b *Bus) Subscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
}

// Publish enqueues an event for dispatch.
func (b *Bus) Publish(event *SessionEvent) {
	select {
	case b.ch <- event:
	default:
		log.Warn().
			Str("event_type", string(event.Type)).
			Str("session_id", event.SessionID).
			Msg("event bus full, dropping event")
	}
}

// Run dispatches events to subscribers until the context is cancelled.
func (b *Bus) Run(ctx context.Context) {
	log.Info().Msg("event bus started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event bus shutting down")
			return
		case event := <-b.ch:
			b.mu.RLock()
			subs := b.subs
			b.mu.RUnlock()

			for _, sub := range subs {
				sub(event)
			}

			log.Debug().
				Str("event_type", string(event.Type)).
				Str("session_id", event.SessionID).
				Int("subscribers", len(subs)).
				Msg("event dispatched")
		}
	}
}
