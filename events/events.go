package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCollectionCompleted   EventType = "collection_completed"
	EventTypeSummonerBatchUpserted EventType = "summoner_batch_upserted"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CollectionCompletedEvent represents a finished collection run
type CollectionCompletedEvent struct {
	RunID             int64
	Region            string
	Tier              string
	Division          string
	EntriesSeen       int
	SummonersUpserted int
	RequestsMade      int
	Duration          time.Duration
}

func (e CollectionCompletedEvent) Type() EventType {
	return EventTypeCollectionCompleted
}

// SummonerBatchUpsertedEvent represents a batch of summoners written to the store
type SummonerBatchUpsertedEvent struct {
	Region string
	Tier   string
	Count  int
}

func (e SummonerBatchUpsertedEvent) Type() EventType {
	return EventTypeSummonerBatchUpserted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	inflight sync.WaitGroup
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking the collector
	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// Wait blocks until every handler dispatched so far has returned. One-shot
// commands drain the bus before exiting so in-flight notifications are not
// cut off.
func (b *Bus) Wait() {
	b.inflight.Wait()
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus over the real one
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush
func (b *TransactionalBus) Publish(event Event) {
	b.pending = append(b.pending, event)
}

// Flush emits all pending events, called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to event bus")

	// Events outlive the transaction that produced them
	eventCtx := context.Background()
	for _, event := range b.pending {
		b.real.Emit(eventCtx, event)
	}
	b.pending = nil
}

// Discard drops pending events, called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
