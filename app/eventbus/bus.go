package eventbus

import (
	"log/slog"
	"sync"

	"session-service/app/domain"
)

const subscriberBuffer = 16

// Bus is a process-wide publish/subscribe channel for auth lifecycle
// events. Subscriptions are explicit and tied to the consumer's lifetime
// through the returned unsubscribe function, so listeners cannot leak.
//
// Logout events deduplicate on the credential token that caused them: if
// N in-flight requests all come back rejected for the same credential,
// subscribers observe exactly one logout.
type Bus struct {
	mu          sync.Mutex
	subscribers map[int]chan domain.AuthEvent
	nextID      int

	// lastLogoutToken remembers the credential most recently logged
	// out, so repeated rejections of the same token collapse.
	lastLogoutToken string

	logger *slog.Logger
}

// New creates an event bus.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[int]chan domain.AuthEvent),
		logger:      logger.With("component", "eventbus"),
	}
}

// Subscribe registers a consumer. The returned function removes the
// subscription and closes the channel; call it when the consumer's
// lifetime ends.
func (b *Bus) Subscribe() (<-chan domain.AuthEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan domain.AuthEvent, subscriberBuffer)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Publish delivers an event to all current subscribers without blocking.
// A subscriber whose buffer is full misses the event; the bus is a
// signal channel, not a durable queue.
func (b *Bus) Publish(event domain.AuthEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if event.Kind == domain.AuthEventLogout {
		if event.Token != "" && event.Token == b.lastLogoutToken {
			b.logger.Debug("suppressing duplicate logout event",
				"reason", string(event.Reason))
			return
		}
		b.lastLogoutToken = event.Token
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Warn("subscriber buffer full, dropping event",
				"kind", string(event.Kind))
		}
	}
}

// Reset clears the logout deduplication state. Called after a new
// credential is written so a later rejection of it publishes again.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastLogoutToken = ""
}

// SubscriberCount reports the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
