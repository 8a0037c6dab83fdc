package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
)

// EventStatus is the only event type published today.
const EventStatus = "status"

// Event describes a status change pushed to feed subscribers.
type Event struct {
	Type           string              `json:"type"`
	Candidate      candidate.Candidate `json:"candidate"`
	PreviousStatus candidate.Status    `json:"previousStatus"`
	At             time.Time           `json:"at"`
}

// Observer receives subscriber lifecycle and drop notifications.
type Observer interface {
	SubscriberAdded()
	SubscriberRemoved()
	IncrementDropped()
}

// Broker fans events out to every active subscriber without blocking publishers.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	buffer      int
	observer    Observer
	logger      *zap.Logger
}

// NewBroker creates a broker whose subscribers buffer up to buffer events.
func NewBroker(buffer int, observer Observer, logger *zap.Logger) *Broker {
	if buffer < 1 {
		buffer = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		subscribers: make(map[string]chan Event),
		buffer:      buffer,
		observer:    observer,
		logger:      logger,
	}
}

// Subscribe registers a subscriber for the lifetime of ctx.
// The returned channel is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context) <-chan Event {
	id := uuid.NewString()
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	if b.observer != nil {
		b.observer.SubscriberAdded()
	}
	b.logger.Debug("feed subscriber added", zap.String("subscriber", id))

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subscribers, id)
		close(ch)
		b.mu.Unlock()
		if b.observer != nil {
			b.observer.SubscriberRemoved()
		}
		b.logger.Debug("feed subscriber removed", zap.String("subscriber", id))
	}()

	return ch
}

// Publish delivers evt to every subscriber with room in its buffer.
func (b *Broker) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			if b.observer != nil {
				b.observer.IncrementDropped()
			}
			b.logger.Warn("feed subscriber buffer full, dropping event",
				zap.String("subscriber", id),
				zap.String("candidate", evt.Candidate.ID))
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
