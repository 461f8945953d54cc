package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{})

	bus.Subscribe(EventTypeCollectionCompleted, func(ctx context.Context, event Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		close(done)
	})

	bus.Emit(context.Background(), CollectionCompletedEvent{
		Region:            "NA",
		Tier:              "MASTER",
		SummonersUpserted: 42,
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	event, ok := received[0].(CollectionCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, "NA", event.Region)
	assert.Equal(t, 42, event.SummonersUpserted)
}

func TestBus_EmitWithoutHandlers(t *testing.T) {
	bus := NewBus()
	// Must not panic or block
	bus.Emit(context.Background(), SummonerBatchUpsertedEvent{Region: "NA", Count: 1})
}

func TestBus_HandlerOnlyReceivesSubscribedType(t *testing.T) {
	bus := NewBus()

	calls := make(chan EventType, 2)
	bus.Subscribe(EventTypeSummonerBatchUpserted, func(ctx context.Context, event Event) {
		calls <- event.Type()
	})

	bus.Emit(context.Background(), CollectionCompletedEvent{Region: "NA"})
	bus.Emit(context.Background(), SummonerBatchUpsertedEvent{Region: "NA", Count: 3})

	select {
	case eventType := <-calls:
		assert.Equal(t, EventTypeSummonerBatchUpserted, eventType)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	select {
	case eventType := <-calls:
		t.Fatalf("unexpected extra event: %s", eventType)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_WaitForHandlers(t *testing.T) {
	bus := NewBus()

	var delivered atomic.Bool
	bus.Subscribe(EventTypeCollectionCompleted, func(ctx context.Context, event Event) {
		time.Sleep(20 * time.Millisecond)
		delivered.Store(true)
	})

	bus.Emit(context.Background(), CollectionCompletedEvent{Region: "NA"})
	bus.Wait()

	assert.True(t, delivered.Load(), "handler must have finished once Wait returns")
}

func TestTransactionalBus_FlushThenWaitDelivers(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	var delivered atomic.Bool
	bus.Subscribe(EventTypeCollectionCompleted, func(ctx context.Context, event Event) {
		time.Sleep(5 * time.Millisecond)
		delivered.Store(true)
	})

	txBus.Publish(CollectionCompletedEvent{Region: "NA", Tier: "MASTER"})
	txBus.Flush(context.Background())
	bus.Wait()

	assert.True(t, delivered.Load(), "flushed notification must complete before Wait returns")
}

func TestTransactionalBus_FlushDeliversPending(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	received := make(chan Event, 1)
	bus.Subscribe(EventTypeCollectionCompleted, func(ctx context.Context, event Event) {
		received <- event
	})

	txBus.Publish(CollectionCompletedEvent{Region: "EUW", Tier: "GOLD"})

	// Nothing is emitted before Flush
	select {
	case <-received:
		t.Fatal("event delivered before flush")
	case <-time.After(50 * time.Millisecond):
	}

	txBus.Flush(context.Background())

	select {
	case event := <-received:
		completed, ok := event.(CollectionCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "EUW", completed.Region)
	case <-time.After(time.Second):
		t.Fatal("event not delivered after flush")
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	received := make(chan Event, 1)
	bus.Subscribe(EventTypeCollectionCompleted, func(ctx context.Context, event Event) {
		received <- event
	})

	txBus.Publish(CollectionCompletedEvent{Region: "KR"})
	txBus.Discard()
	txBus.Flush(context.Background())

	select {
	case <-received:
		t.Fatal("discarded event was delivered")
	case <-time.After(50 * time.Millisecond):
	}
}
