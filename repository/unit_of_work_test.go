package repository

import (
	"context"
	"testing"
	"time"

	"harvester/events"
	"harvester/models"
	"harvester/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeCollectionCompleted, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB, bus)
	uow := factory.Create()
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))

	_, err := uow.SummonerRepository().BatchUpsert(ctx, []*models.Summoner{
		testutil.CreateTestSummoner("puuid-uow"),
	})
	require.NoError(t, err)

	uow.EventBus().Publish(events.CollectionCompletedEvent{Region: "NA", Tier: "MASTER"})

	// Event must not fire before commit
	select {
	case <-received:
		t.Fatal("event delivered before commit")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, uow.Commit())

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("event not delivered after commit")
	}

	got, err := NewSummonerRepository(testDB).GetByPUUID(ctx, "puuid-uow")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeCollectionCompleted, func(ctx context.Context, event events.Event) {
		received <- event
	})

	factory := NewUnitOfWorkFactory(testDB, bus)
	uow := factory.Create()
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))

	_, err := uow.SummonerRepository().BatchUpsert(ctx, []*models.Summoner{
		testutil.CreateTestSummoner("puuid-rollback"),
	})
	require.NoError(t, err)
	uow.EventBus().Publish(events.CollectionCompletedEvent{Region: "NA"})

	require.NoError(t, uow.Rollback())

	got, err := NewSummonerRepository(testDB).GetByPUUID(ctx, "puuid-rollback")
	require.NoError(t, err)
	assert.Nil(t, got)

	select {
	case <-received:
		t.Fatal("event delivered after rollback")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB, events.NewBus())
	uow := factory.Create()
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}

func TestUnitOfWork_CommitWithoutBeginFails(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB, events.NewBus())
	uow := factory.Create()

	assert.Error(t, uow.Commit())
}
