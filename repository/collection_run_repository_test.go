package repository

import (
	"context"
	"testing"

	"harvester/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRunRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCollectionRunRepository(testDB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		run := testutil.CreateTestCollectionRunWithCounts(30, 28)
		run.Summary = map[string]interface{}{
			"skipped":       2,
			"pages_fetched": 1,
		}

		err := repo.Create(ctx, run)
		require.NoError(t, err)
		assert.NotZero(t, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("nil summary", func(t *testing.T) {
		run := testutil.CreateTestCollectionRun()
		run.Summary = nil

		err := repo.Create(ctx, run)
		require.NoError(t, err)
		assert.NotZero(t, run.ID)
	})
}

func TestCollectionRunRepository_GetLatest(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCollectionRunRepository(testDB)
	ctx := context.Background()

	t.Run("no runs", func(t *testing.T) {
		run, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		assert.Nil(t, run)
	})

	t.Run("returns most recent", func(t *testing.T) {
		first := testutil.CreateTestCollectionRunWithCounts(10, 10)
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestCollectionRunWithCounts(20, 19)
		second.Region = "EUW"
		second.Summary = map[string]interface{}{"skipped": 1}
		require.NoError(t, repo.Create(ctx, second))

		latest, err := repo.GetLatest(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, "EUW", latest.Region)
		assert.Equal(t, 19, latest.SummonersUpserted)

		// JSON summary survives the round trip
		require.NotNil(t, latest.Summary)
		assert.EqualValues(t, 1, latest.Summary["skipped"])
	})
}

func TestCollectionRunRepository_ListRecent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewCollectionRunRepository(testDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := testutil.CreateTestCollectionRunWithCounts(i+1, i+1)
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Greater(t, runs[1].ID, runs[2].ID)
	assert.Equal(t, 5, runs[0].EntriesSeen)
}
